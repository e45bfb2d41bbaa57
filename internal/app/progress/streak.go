// Package progress implements the Upward gamification and progress engine:
// XP ledger, streak tracker, badge catalog and evaluator, milestone
// detector, and the achievement orchestrator that ties them together.
package progress

import (
	"fmt"
	"strconv"
	"time"

	"github.com/upward-labs/upward/internal/domain"
	"github.com/upward-labs/upward/internal/infra/sqlite"
)

// Tracker manages the consecutive-day activity streak.
// A day counts when at least one action is completed; wins and challenge
// completions do not touch the streak.
type Tracker struct {
	db  *sqlite.DB
	loc *time.Location
}

// NewTracker creates a streak tracker with the given day-boundary location.
func NewTracker(db *sqlite.DB, loc *time.Location) *Tracker {
	if loc == nil {
		loc = time.Local
	}
	return &Tracker{db: db, loc: loc}
}

// Transition reports the outcome of a streak update.
type Transition struct {
	Extended bool `json:"extended"` // streak grew (first day counts)
	Reset    bool `json:"reset"`    // a gap broke the streak
	Current  int  `json:"current"`
}

// Current loads the streak state from the store.
func (t *Tracker) Current() (domain.Streak, error) {
	return loadStreak(t.db.Store)
}

// RecordActivity records qualifying activity at the given time.
// Same day: no-op. Next day: extend. Gap of 2+ days: reset to 1.
func (t *Tracker) RecordActivity(now time.Time) (Transition, error) {
	var tr Transition
	err := t.db.WithTx(func(s *sqlite.Store) error {
		streak, err := loadStreak(s)
		if err != nil {
			return err
		}
		updated, transition := advanceStreak(streak, domain.DayOf(now, t.loc))
		tr = transition
		return saveStreak(s, updated)
	})
	return tr, err
}

// advanceStreak is the pure streak state machine.
// day must already be midnight-truncated via domain.DayOf.
func advanceStreak(streak domain.Streak, day time.Time) (domain.Streak, Transition) {
	// Compare in the caller's day-boundary location
	if !streak.LastActiveDay.IsZero() {
		streak.LastActiveDay = streak.LastActiveDay.In(day.Location())
	}

	switch {
	case streak.LastActiveDay.IsZero():
		// First activity ever
		streak.CurrentDays = 1
		streak.LastActiveDay = day
		return clampLongest(streak), Transition{Extended: true, Current: 1}

	case domain.DaysBetween(streak.LastActiveDay, day) == 0:
		// Same day — already counted
		return streak, Transition{Current: streak.CurrentDays}

	case domain.DaysBetween(streak.LastActiveDay, day) == 1:
		// Consecutive day — extend
		streak.CurrentDays++
		streak.LastActiveDay = day
		return clampLongest(streak), Transition{Extended: true, Current: streak.CurrentDays}

	default:
		// Gap of 2+ days — streak breaks
		streak.CurrentDays = 1
		streak.LastActiveDay = day
		return clampLongest(streak), Transition{Reset: true, Extended: true, Current: 1}
	}
}

func clampLongest(streak domain.Streak) domain.Streak {
	if streak.CurrentDays > streak.LongestDays {
		streak.LongestDays = streak.CurrentDays
	}
	return streak
}

// loadStreak reads streak state from the progress KV table.
func loadStreak(s *sqlite.Store) (domain.Streak, error) {
	var streak domain.Streak

	current, err := s.GetProgress("streak_current")
	if err != nil {
		return streak, fmt.Errorf("get streak_current: %w", err)
	}
	if current != "" {
		streak.CurrentDays, _ = strconv.Atoi(current)
	}

	longest, err := s.GetProgress("streak_longest")
	if err != nil {
		return streak, fmt.Errorf("get streak_longest: %w", err)
	}
	if longest != "" {
		streak.LongestDays, _ = strconv.Atoi(longest)
	}

	lastDay, err := s.GetProgress("streak_last_day")
	if err != nil {
		return streak, fmt.Errorf("get streak_last_day: %w", err)
	}
	if lastDay != "" {
		ts, _ := strconv.ParseInt(lastDay, 10, 64)
		streak.LastActiveDay = time.Unix(ts, 0)
	}

	return streak, nil
}

// saveStreak persists streak state to the progress KV table.
func saveStreak(s *sqlite.Store, streak domain.Streak) error {
	pairs := map[string]string{
		"streak_current":  strconv.Itoa(streak.CurrentDays),
		"streak_longest":  strconv.Itoa(streak.LongestDays),
		"streak_last_day": strconv.FormatInt(streak.LastActiveDay.Unix(), 10),
	}
	for k, v := range pairs {
		if err := s.SetProgress(k, v); err != nil {
			return fmt.Errorf("save %s: %w", k, err)
		}
	}
	return nil
}
