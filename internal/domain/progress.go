// Package domain holds the pure types of the Upward progress engine.
// Streaks, XP, badges, goals, wins, challenges and relationships — no
// infrastructure dependencies, so every rule here is unit-testable.
package domain

import "time"

// ─── Streak Types ───────────────────────────────────────────────────────────

// Streak tracks consecutive calendar days with at least one qualifying
// recorded activity. LastActiveDay is always a midnight-truncated day in
// the user's configured location; zero means no activity yet.
type Streak struct {
	CurrentDays   int       `json:"current_days"`
	LongestDays   int       `json:"longest_days"`
	LastActiveDay time.Time `json:"last_active_day"`
}

// DayOf truncates a timestamp to its calendar day in the given location.
// The day boundary is the user's local midnight.
func DayOf(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// DaysBetween returns the number of calendar days from a to b.
// Compares civil dates so daylight-saving shifts cannot skew the count.
func DaysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	ua := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	ub := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua) / (24 * time.Hour))
}

// ─── XP / Level Types ───────────────────────────────────────────────────────

// LevelInfo is the user's derived level state. Level and Title are never
// stored — always recomputed from TotalXP.
type LevelInfo struct {
	Level   int    `json:"level"`
	Title   string `json:"title"`
	TotalXP int64  `json:"total_xp"`
}

// LevelChange reports the outcome of an XP award.
type LevelChange struct {
	OldLevel  int  `json:"old_level"`
	NewLevel  int  `json:"new_level"`
	LeveledUp bool `json:"leveled_up"`
}

// XPSource categorizes how XP was earned. Recorded in the XP journal.
type XPSource string

const (
	XPActionCompleted    XPSource = "ACTION_COMPLETED"
	XPWinLogged          XPSource = "WIN_LOGGED"
	XPChallengeCompleted XPSource = "CHALLENGE_COMPLETED"
	XPInteractionLogged  XPSource = "INTERACTION_LOGGED"
	XPBadgeUnlocked      XPSource = "BADGE_UNLOCKED"
	XPMilestone          XPSource = "MILESTONE"
)

// JournalEntry is one row of the append-only XP journal. Balance is the
// running total after the entry was applied.
type JournalEntry struct {
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Source    XPSource  `json:"source"`
	Amount    int64     `json:"amount"`
	Balance   int64     `json:"balance"`
	Detail    string    `json:"detail"`
}

// ─── Milestone Types ────────────────────────────────────────────────────────

// Milestone is a goal-progress threshold crossing.
type Milestone string

const (
	MilestoneQuarter      Milestone = "quarter"
	MilestoneHalf         Milestone = "half"
	MilestoneThreeQuarter Milestone = "three_quarter"
	MilestoneComplete     Milestone = "complete"
)

// Threshold returns the progress fraction this milestone sits at.
func (m Milestone) Threshold() float64 {
	switch m {
	case MilestoneQuarter:
		return 0.25
	case MilestoneHalf:
		return 0.50
	case MilestoneThreeQuarter:
		return 0.75
	case MilestoneComplete:
		return 1.0
	}
	return 0
}

// RewardXP returns the XP bonus awarded when this milestone is crossed.
func (m Milestone) RewardXP() int64 {
	switch m {
	case MilestoneQuarter:
		return 50
	case MilestoneHalf:
		return 100
	case MilestoneThreeQuarter:
		return 150
	case MilestoneComplete:
		return 300
	}
	return 0
}

// Label returns a short human-readable name.
func (m Milestone) Label() string {
	switch m {
	case MilestoneQuarter:
		return "25% milestone"
	case MilestoneHalf:
		return "halfway milestone"
	case MilestoneThreeQuarter:
		return "75% milestone"
	case MilestoneComplete:
		return "goal complete"
	}
	return string(m)
}

// ─── Engine Events ──────────────────────────────────────────────────────────

// EventKind categorizes engine events emitted for the UI feed.
type EventKind string

const (
	EventBadgeUnlocked      EventKind = "badge_unlocked"
	EventLevelUp            EventKind = "level_up"
	EventMilestone          EventKind = "milestone"
	EventChallengeCompleted EventKind = "challenge_completed"
	EventStreakExtended     EventKind = "streak_extended"
)

// Event is a fire-and-forget engine event. The engine only emits these;
// rendering (toast, haptic, confetti) is the UI layer's concern.
type Event struct {
	ID        int64     `json:"id"`
	Kind      EventKind `json:"kind"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	Seen      bool      `json:"seen"`
}
