package domain

import "time"

// ─── Goal / Action Types ────────────────────────────────────────────────────

// Goal owns an ordered collection of actions. Progress is derived from the
// action counts, never stored.
type Goal struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Category         string    `json:"category"`
	CreatedAt        time.Time `json:"created_at"`
	TotalActions     int       `json:"total_actions"`
	CompletedActions int       `json:"completed_actions"`
}

// Progress returns the completion fraction in [0,1]. A goal with no
// actions has progress 0.
func (g Goal) Progress() float64 {
	if g.TotalActions == 0 {
		return 0
	}
	return float64(g.CompletedActions) / float64(g.TotalActions)
}

// Action is a micro-step toward a goal.
type Action struct {
	ID          string    `json:"id"`
	GoalID      string    `json:"goal_id"`
	Title       string    `json:"title"`
	Position    int       `json:"position"`
	Done        bool      `json:"done"`
	CreatedAt   time.Time `json:"created_at"`
	CompletedAt time.Time `json:"completed_at,omitzero"`
}

// ─── Win Types ──────────────────────────────────────────────────────────────

// WinSize grades a win from tiny to massive.
type WinSize string

const (
	SizeTiny    WinSize = "tiny"
	SizeSmall   WinSize = "small"
	SizeMedium  WinSize = "medium"
	SizeBig     WinSize = "big"
	SizeMassive WinSize = "massive"
)

// rank orders win sizes for threshold comparisons.
func (s WinSize) rank() int {
	switch s {
	case SizeTiny:
		return 1
	case SizeSmall:
		return 2
	case SizeMedium:
		return 3
	case SizeBig:
		return 4
	case SizeMassive:
		return 5
	}
	return 0
}

// AtLeast reports whether s is the same size as other or larger.
func (s WinSize) AtLeast(other WinSize) bool {
	return s.rank() >= other.rank()
}

// Win is a recorded accomplishment. Wins are either user-authored or
// auto-created by the orchestrator (milestones, challenge completions,
// first reach-out); the two are indistinguishable in storage apart from
// the description text.
type Win struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	Size        WinSize   `json:"size"`
	Emotion     int       `json:"emotion"` // 1–5, 0 when not rated
	GoalID      string    `json:"goal_id,omitempty"`
	ActionID    string    `json:"action_id,omitempty"`
	Category    string    `json:"category,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
