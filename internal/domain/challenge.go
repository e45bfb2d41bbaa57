package domain

import "time"

// ─── Challenge Types ────────────────────────────────────────────────────────

// ChallengeCategory groups challenges by theme.
type ChallengeCategory string

const (
	CatMindset    ChallengeCategory = "mindset"
	CatHealth     ChallengeCategory = "health"
	CatSocial     ChallengeCategory = "social"
	CatGrowth     ChallengeCategory = "growth"
	CatCourage    ChallengeCategory = "courage"
	CatDiscipline ChallengeCategory = "discipline"
)

// AllChallengeCategories lists every category in catalog order.
func AllChallengeCategories() []ChallengeCategory {
	return []ChallengeCategory{
		CatMindset, CatHealth, CatSocial, CatGrowth, CatCourage, CatDiscipline,
	}
}

// Difficulty grades a challenge. Epic is the rarest tier and carries a
// one-time distinguished win on first completion.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
	DifficultyEpic   Difficulty = "epic"
)

// WinSize maps a challenge difficulty to the size of its auto-created win.
// The table is fixed: easy→small, medium→medium, hard→big, epic→massive.
func (d Difficulty) WinSize() WinSize {
	switch d {
	case DifficultyEasy:
		return SizeSmall
	case DifficultyMedium:
		return SizeMedium
	case DifficultyHard:
		return SizeBig
	case DifficultyEpic:
		return SizeMassive
	}
	return SizeMedium
}

// Duration is the advisory time window of a challenge.
type Duration string

const (
	DurationDaily   Duration = "daily"
	DurationWeekly  Duration = "weekly"
	DurationMonthly Duration = "monthly"
)

// ChallengeTemplate is an inert catalog entry a challenge is created from.
type ChallengeTemplate struct {
	ID         string            `json:"id"`
	Title      string            `json:"title"`
	Category   ChallengeCategory `json:"category"`
	Difficulty Difficulty        `json:"difficulty"`
	Duration   Duration          `json:"duration"`
	RewardXP   int64             `json:"reward_xp"`
}

// Reflection is the optional note attached when completing a challenge.
type Reflection struct {
	Notes        string `json:"notes"`
	Emotion      int    `json:"emotion"` // 1–5, 0 when not rated
	PhotoRef     string `json:"photo_ref,omitempty"`
	VoiceMemoRef string `json:"voice_memo_ref,omitempty"`
}

// Challenge is an accepted challenge instance.
// Lifecycle: accepted (active) → completed (terminal) or abandoned.
// ExpiresAt is advisory — a UI countdown, never enforced server-side.
type Challenge struct {
	ID         string            `json:"id"`
	TemplateID string            `json:"template_id"`
	Title      string            `json:"title"`
	Category   ChallengeCategory `json:"category"`
	Difficulty Difficulty        `json:"difficulty"`
	Duration   Duration          `json:"duration"`
	RewardXP   int64             `json:"reward_xp"`
	Active     bool              `json:"active"`
	Completed  bool              `json:"completed"`
	StartedAt  time.Time         `json:"started_at"`
	ExpiresAt  time.Time         `json:"expires_at"`
	CompletedAt time.Time        `json:"completed_at,omitzero"`
	Reflection *Reflection       `json:"reflection,omitempty"`
}

// IsExpired reports whether the advisory deadline has passed.
func (c Challenge) IsExpired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}
