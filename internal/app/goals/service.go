// Package goals manages goals, their micro-actions, and win logging.
package goals

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/upward-labs/upward/internal/app/progress"
	"github.com/upward-labs/upward/internal/domain"
	"github.com/upward-labs/upward/internal/infra/sqlite"
)

// Service manages goals and actions. Action completion runs through the
// orchestrator, which owns the reward sequence.
type Service struct {
	db   *sqlite.DB
	orch *progress.Orchestrator
}

// NewService creates a goals service.
func NewService(db *sqlite.DB, orch *progress.Orchestrator) *Service {
	return &Service{db: db, orch: orch}
}

// CreateGoal creates a goal with optional initial action titles.
func (s *Service) CreateGoal(title, category string, actionTitles []string, now time.Time) (*domain.Goal, error) {
	goal := domain.Goal{
		ID:        uuid.NewString(),
		Title:     title,
		Category:  category,
		CreatedAt: now,
	}

	err := s.db.WithTx(func(st *sqlite.Store) error {
		if err := st.InsertGoal(goal); err != nil {
			return fmt.Errorf("insert goal: %w", err)
		}
		for i, t := range actionTitles {
			a := domain.Action{
				ID:        uuid.NewString(),
				GoalID:    goal.ID,
				Title:     t,
				Position:  i,
				CreatedAt: now,
			}
			if err := st.InsertAction(a); err != nil {
				return fmt.Errorf("insert action: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	goal.TotalActions = len(actionTitles)
	return &goal, nil
}

// Get returns a goal with derived progress counts.
func (s *Service) Get(id string) (*domain.Goal, error) {
	return s.db.GetGoal(id)
}

// List returns all goals, newest first.
func (s *Service) List() ([]domain.Goal, error) {
	return s.db.ListGoals()
}

// Delete removes a goal. Its actions go with it; wins stay but lose
// the goal link.
func (s *Service) Delete(id string) error {
	return s.db.WithTx(func(st *sqlite.Store) error {
		return st.DeleteGoal(id)
	})
}

// AddAction appends an action to a goal.
func (s *Service) AddAction(goalID, title string, now time.Time) (*domain.Action, error) {
	goal, err := s.db.GetGoal(goalID)
	if err != nil {
		return nil, err
	}

	a := domain.Action{
		ID:        uuid.NewString(),
		GoalID:    goal.ID,
		Title:     title,
		Position:  goal.TotalActions,
		CreatedAt: now,
	}
	if err := s.db.InsertAction(a); err != nil {
		return nil, fmt.Errorf("insert action: %w", err)
	}
	return &a, nil
}

// Actions returns a goal's actions in position order.
func (s *Service) Actions(goalID string) ([]domain.Action, error) {
	return s.db.ListActions(goalID)
}

// CompleteAction marks an action done and runs the full reward sequence:
// XP, streak, badges, and any goal milestone crossed by the new progress.
func (s *Service) CompleteAction(actionID string, now time.Time) (*progress.Result, error) {
	return s.orch.RecordActionCompletion(actionID, now)
}

// LogWin records a user-authored win. Emotion 0 means the user skipped the
// rating; ratings themselves are 1–5.
func (s *Service) LogWin(win domain.Win, now time.Time) (*progress.Result, error) {
	switch win.Size {
	case domain.SizeTiny, domain.SizeSmall, domain.SizeMedium, domain.SizeBig, domain.SizeMassive:
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidWinSize, win.Size)
	}
	if win.Emotion < 0 || win.Emotion > 5 {
		return nil, domain.ErrInvalidEmotion
	}
	if win.GoalID != "" {
		if _, err := s.db.GetGoal(win.GoalID); err != nil {
			return nil, err
		}
	}
	return s.orch.RecordWinLogged(win, now)
}

// Wins returns recent wins, newest first.
func (s *Service) Wins(limit int) ([]domain.Win, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.db.ListWins(limit)
}
