// Package challenge manages the challenge catalog and lifecycle: suggest
// from the template pool, accept, complete with a reflection, abandon.
package challenge

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/upward-labs/upward/internal/app/progress"
	"github.com/upward-labs/upward/internal/domain"
	"github.com/upward-labs/upward/internal/infra/metrics"
	"github.com/upward-labs/upward/internal/infra/sqlite"
)

// Service manages challenges. Completion runs through the orchestrator so
// rewards, badges and the auto-win commit with the terminal mark.
type Service struct {
	db   *sqlite.DB
	orch *progress.Orchestrator
	loc  *time.Location
}

// NewService creates a challenge service.
func NewService(db *sqlite.DB, orch *progress.Orchestrator, loc *time.Location) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{db: db, orch: orch, loc: loc}
}

// templatePool is the fixed challenge catalog.
var templatePool = []domain.ChallengeTemplate{
	// mindset
	{ID: "mindset-gratitude", Title: "Write down three things you are grateful for", Category: domain.CatMindset, Difficulty: domain.DifficultyEasy, Duration: domain.DurationDaily, RewardXP: 50},
	{ID: "mindset-no-complaints", Title: "Go a full day without complaining", Category: domain.CatMindset, Difficulty: domain.DifficultyMedium, Duration: domain.DurationDaily, RewardXP: 100},
	{ID: "mindset-journal-week", Title: "Journal every evening for a week", Category: domain.CatMindset, Difficulty: domain.DifficultyHard, Duration: domain.DurationWeekly, RewardXP: 250},

	// health
	{ID: "health-walk", Title: "Take a 30-minute walk", Category: domain.CatHealth, Difficulty: domain.DifficultyEasy, Duration: domain.DurationDaily, RewardXP: 50},
	{ID: "health-no-sugar", Title: "Skip added sugar for a day", Category: domain.CatHealth, Difficulty: domain.DifficultyMedium, Duration: domain.DurationDaily, RewardXP: 100},
	{ID: "health-workout-week", Title: "Work out four times this week", Category: domain.CatHealth, Difficulty: domain.DifficultyHard, Duration: domain.DurationWeekly, RewardXP: 250},
	{ID: "health-month-streak", Title: "Exercise every day for a month", Category: domain.CatHealth, Difficulty: domain.DifficultyEpic, Duration: domain.DurationMonthly, RewardXP: 600},

	// social
	{ID: "social-old-friend", Title: "Message a friend you have not talked to in a month", Category: domain.CatSocial, Difficulty: domain.DifficultyEasy, Duration: domain.DurationDaily, RewardXP: 50},
	{ID: "social-call-family", Title: "Call a family member just to catch up", Category: domain.CatSocial, Difficulty: domain.DifficultyEasy, Duration: domain.DurationDaily, RewardXP: 50},
	{ID: "social-host", Title: "Host a dinner or game night", Category: domain.CatSocial, Difficulty: domain.DifficultyHard, Duration: domain.DurationWeekly, RewardXP: 250},

	// growth
	{ID: "growth-read", Title: "Read 20 pages of a book", Category: domain.CatGrowth, Difficulty: domain.DifficultyEasy, Duration: domain.DurationDaily, RewardXP: 50},
	{ID: "growth-new-skill", Title: "Spend an hour learning a new skill", Category: domain.CatGrowth, Difficulty: domain.DifficultyMedium, Duration: domain.DurationDaily, RewardXP: 100},
	{ID: "growth-finish-course", Title: "Finish an online course this month", Category: domain.CatGrowth, Difficulty: domain.DifficultyEpic, Duration: domain.DurationMonthly, RewardXP: 600},

	// courage
	{ID: "courage-stranger", Title: "Start a conversation with a stranger", Category: domain.CatCourage, Difficulty: domain.DifficultyMedium, Duration: domain.DurationDaily, RewardXP: 100},
	{ID: "courage-ask", Title: "Ask for something you normally would not", Category: domain.CatCourage, Difficulty: domain.DifficultyMedium, Duration: domain.DurationDaily, RewardXP: 100},
	{ID: "courage-public-speak", Title: "Speak up in front of a group this week", Category: domain.CatCourage, Difficulty: domain.DifficultyHard, Duration: domain.DurationWeekly, RewardXP: 250},

	// discipline
	{ID: "discipline-early-rise", Title: "Get up before 6:30 every day this week", Category: domain.CatDiscipline, Difficulty: domain.DifficultyHard, Duration: domain.DurationWeekly, RewardXP: 250},
	{ID: "discipline-no-phone", Title: "No phone for the first hour of the day", Category: domain.CatDiscipline, Difficulty: domain.DifficultyMedium, Duration: domain.DurationDaily, RewardXP: 100},
	{ID: "discipline-cold-month", Title: "Cold shower every morning for a month", Category: domain.CatDiscipline, Difficulty: domain.DifficultyEpic, Duration: domain.DurationMonthly, RewardXP: 600},
}

// Templates returns the full challenge catalog.
func (s *Service) Templates() []domain.ChallengeTemplate {
	out := make([]domain.ChallengeTemplate, len(templatePool))
	copy(out, templatePool)
	return out
}

// TemplateByID looks up a catalog entry.
func (s *Service) TemplateByID(id string) (domain.ChallengeTemplate, error) {
	for _, t := range templatePool {
		if t.ID == id {
			return t, nil
		}
	}
	return domain.ChallengeTemplate{}, fmt.Errorf("%w: %s", domain.ErrTemplateNotFound, id)
}

// Suggest picks up to n random templates, avoiding categories the user
// already has an active challenge in.
func (s *Service) Suggest(n int) ([]domain.ChallengeTemplate, error) {
	active, err := s.db.ListActiveChallenges()
	if err != nil {
		return nil, err
	}
	busy := make(map[domain.ChallengeCategory]bool, len(active))
	for _, c := range active {
		busy[c.Category] = true
	}

	var pool []domain.ChallengeTemplate
	for _, t := range templatePool {
		if !busy[t.Category] {
			pool = append(pool, t)
		}
	}
	rand.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	if n > len(pool) {
		n = len(pool)
	}
	return pool[:n], nil
}

// Accept creates an active challenge from a template. The expiry is
// advisory only: the UI shows a countdown, nothing is enforced.
func (s *Service) Accept(templateID string, now time.Time) (*domain.Challenge, error) {
	tmpl, err := s.TemplateByID(templateID)
	if err != nil {
		return nil, err
	}

	ch := domain.Challenge{
		ID:         uuid.NewString(),
		TemplateID: tmpl.ID,
		Title:      tmpl.Title,
		Category:   tmpl.Category,
		Difficulty: tmpl.Difficulty,
		Duration:   tmpl.Duration,
		RewardXP:   tmpl.RewardXP,
		Active:     true,
		StartedAt:  now,
		ExpiresAt:  expiryFor(tmpl.Duration, now, s.loc),
	}
	if err := s.db.InsertChallenge(ch); err != nil {
		return nil, fmt.Errorf("insert challenge: %w", err)
	}

	metrics.ChallengesAccepted.WithLabelValues(string(ch.Category)).Inc()
	return &ch, nil
}

// Active returns the user's active challenges in expiry order.
func (s *Service) Active() ([]domain.Challenge, error) {
	return s.db.ListActiveChallenges()
}

// Get returns a single challenge.
func (s *Service) Get(id string) (*domain.Challenge, error) {
	return s.db.GetChallenge(id)
}

// Complete marks a challenge done and triggers its rewards. Completion is
// terminal and idempotent: a second call returns ErrChallengeCompleted.
// A reflection's emotion 0 means the user skipped the rating (1–5).
func (s *Service) Complete(id string, reflection *domain.Reflection, now time.Time) (*progress.Result, error) {
	if reflection != nil && (reflection.Emotion < 0 || reflection.Emotion > 5) {
		return nil, domain.ErrInvalidEmotion
	}
	return s.orch.RecordChallengeCompletion(id, reflection, now)
}

// Abandon deactivates a challenge without rewards.
func (s *Service) Abandon(id string) error {
	if err := s.db.AbandonChallenge(id); err != nil {
		return err
	}
	metrics.ChallengesAbandoned.Inc()
	return nil
}

// expiryFor computes the advisory deadline for a duration: daily ends at
// the next local midnight, weekly at next Monday 00:00, monthly on the
// first of the next month.
func expiryFor(d domain.Duration, now time.Time, loc *time.Location) time.Time {
	now = now.In(loc)
	switch d {
	case domain.DurationWeekly:
		days := (8 - int(now.Weekday())) % 7
		if days == 0 {
			days = 7
		}
		next := now.AddDate(0, 0, days)
		return time.Date(next.Year(), next.Month(), next.Day(), 0, 0, 0, 0, loc)
	case domain.DurationMonthly:
		return time.Date(now.Year(), now.Month()+1, 1, 0, 0, 0, 0, loc)
	default: // daily
		next := now.AddDate(0, 0, 1)
		return time.Date(next.Year(), next.Month(), next.Day(), 0, 0, 0, 0, loc)
	}
}
