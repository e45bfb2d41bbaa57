package domain

import "time"

// ─── Badge Types ────────────────────────────────────────────────────────────

// BadgeTrigger groups badge conditions by the event that can satisfy them.
// The evaluator only checks the trigger's group, never the whole catalog.
type BadgeTrigger string

const (
	TriggerActionCompleted    BadgeTrigger = "action_completed"
	TriggerWinLogged          BadgeTrigger = "win_logged"
	TriggerChallengeCompleted BadgeTrigger = "challenge_completed"
	TriggerInteractionLogged  BadgeTrigger = "interaction_logged"
	TriggerStreakUpdated      BadgeTrigger = "streak_updated"
)

// BadgeDef defines a single badge: a threshold condition over aggregate
// counters plus an XP reward. Conditions are monotonic (counts only grow),
// so "newly satisfied" reduces to a membership test against the earned set.
type BadgeDef struct {
	ID        string               `json:"id"`
	Name      string               `json:"name"`
	Trigger   BadgeTrigger         `json:"trigger"`
	Icon      string               `json:"icon"`
	RewardXP  int64                `json:"reward_xp"`
	Predicate func(Snapshot) bool  `json:"-"`
}

// EarnedBadge records when a badge was unlocked. Badges are permanent and
// monotonic — never revoked, never re-awarded.
type EarnedBadge struct {
	ID       string    `json:"id"`
	EarnedAt time.Time `json:"earned_at"`
}

// Snapshot is the aggregate state fed to badge predicates. All counters are
// pre-fetched by the orchestrator before evaluation; predicates never touch
// the store.
type Snapshot struct {
	TotalActions         int                       `json:"total_actions"`
	CompletedHour        int                       `json:"completed_hour"`
	CurrentStreak        int                       `json:"current_streak"`
	TotalWins            int                       `json:"total_wins"`
	HasBigWin            bool                      `json:"has_big_win"`
	TotalChallenges      int                       `json:"total_challenges"`
	ChallengesByCategory map[ChallengeCategory]int `json:"challenges_by_category"`
	EpicChallenges       int                       `json:"epic_challenges"`
	TotalInteractions    int                       `json:"total_interactions"`
	MentorInteractions   int                       `json:"mentor_interactions"`
	HealthyRelationships int                       `json:"healthy_relationships"`

	// FirstReachOut is set by the orchestrator when the very first
	// interaction across all relationships was initiated by the user.
	FirstReachOut bool `json:"first_reach_out"`
}

// CategoryCompletions returns the completed-challenge count for a category.
func (s Snapshot) CategoryCompletions(cat ChallengeCategory) int {
	if s.ChallengesByCategory == nil {
		return 0
	}
	return s.ChallengesByCategory[cat]
}
