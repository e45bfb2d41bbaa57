package progress

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/upward-labs/upward/internal/domain"
	"github.com/upward-labs/upward/internal/infra/metrics"
	"github.com/upward-labs/upward/internal/infra/sqlite"
)

// Orchestrator sequences the reward pipeline for every trigger: XP, streak,
// badges, milestones, auto-created wins and engine events. Each trigger's
// writes commit in one transaction, so a crash mid-sequence never leaves a
// half-rewarded state.
type Orchestrator struct {
	db  *sqlite.DB
	loc *time.Location
}

// NewOrchestrator creates an orchestrator with the given day-boundary
// location.
func NewOrchestrator(db *sqlite.DB, loc *time.Location) *Orchestrator {
	if loc == nil {
		loc = time.Local
	}
	return &Orchestrator{db: db, loc: loc}
}

// Result summarizes everything one trigger unlocked.
type Result struct {
	XPAwarded int64              `json:"xp_awarded"`
	Level     domain.LevelChange `json:"level"`
	Streak    *Transition        `json:"streak,omitempty"`
	Badges    []domain.BadgeDef  `json:"badges,omitempty"`
	Wins      []domain.Win       `json:"wins,omitempty"`
	Milestone string             `json:"milestone,omitempty"`
}

// RecordActionCompletion marks an action done and runs the action sequence:
// base XP, streak update, badge evaluation, goal milestone detection.
// Completing an already-done action returns domain.ErrActionDone and
// changes nothing.
func (o *Orchestrator) RecordActionCompletion(actionID string, now time.Time) (*Result, error) {
	var res *Result
	err := o.db.WithTx(func(s *sqlite.Store) error {
		action, err := s.GetAction(actionID)
		if err != nil {
			return err
		}
		goal, err := s.GetGoal(action.GoalID)
		if err != nil {
			return err
		}
		prevProgress := goal.Progress()

		if err := s.MarkActionDone(actionID, now); err != nil {
			return err
		}
		if goal, err = s.GetGoal(action.GoalID); err != nil {
			return err
		}

		snap, earned, err := gatherState(s, now)
		if err != nil {
			return err
		}
		streak, err := loadStreak(s)
		if err != nil {
			return err
		}

		d := decideActionCompletion(snap, earned, streak, *action, *goal,
			prevProgress, now, o.loc)
		res, err = applyDecision(s, d, now)
		return err
	})
	if err != nil {
		return nil, err
	}

	metrics.ActionsCompleted.Inc()
	observeResult(res)
	return res, nil
}

// RecordWinLogged stores a user-authored win and evaluates win badges.
func (o *Orchestrator) RecordWinLogged(win domain.Win, now time.Time) (*Result, error) {
	if win.ID == "" {
		win.ID = uuid.NewString()
	}
	if win.CreatedAt.IsZero() {
		win.CreatedAt = now
	}

	var res *Result
	err := o.db.WithTx(func(s *sqlite.Store) error {
		snap, earned, err := gatherState(s, now)
		if err != nil {
			return err
		}
		d := decideWinLogged(snap, earned, win)
		res, err = applyDecision(s, d, now)
		return err
	})
	if err != nil {
		return nil, err
	}

	metrics.WinsLogged.WithLabelValues(string(win.Size)).Inc()
	observeResult(res)
	return res, nil
}

// RecordChallengeCompletion marks a challenge terminal and runs the
// challenge sequence: reward XP, auto-win sized by difficulty, the
// one-time epic bonus, badge evaluation.
func (o *Orchestrator) RecordChallengeCompletion(challengeID string, reflection *domain.Reflection, now time.Time) (*Result, error) {
	var res *Result
	var ch *domain.Challenge
	err := o.db.WithTx(func(s *sqlite.Store) error {
		var err error
		if ch, err = s.GetChallenge(challengeID); err != nil {
			return err
		}
		if ch.Completed {
			return domain.ErrChallengeCompleted
		}
		if !ch.Active {
			return domain.ErrChallengeNotActive
		}
		ch.Reflection = reflection
		ch.CompletedAt = now

		snap, earned, err := gatherState(s, now)
		if err != nil {
			return err
		}
		d := decideChallengeCompletion(snap, earned, *ch, now)
		res, err = applyDecision(s, d, now)
		return err
	})
	if err != nil {
		return nil, err
	}

	metrics.ChallengesCompleted.
		WithLabelValues(string(ch.Category), string(ch.Difficulty)).Inc()
	observeResult(res)
	return res, nil
}

// RecordInteraction stores an interaction and runs the interaction
// sequence: first-reach-out special case, badge evaluation, base XP.
func (o *Orchestrator) RecordInteraction(i domain.Interaction, now time.Time) (*Result, error) {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	if i.CreatedAt.IsZero() {
		i.CreatedAt = now
	}

	var res *Result
	err := o.db.WithTx(func(s *sqlite.Store) error {
		rel, err := s.GetRelationship(i.RelationshipID)
		if err != nil {
			return err
		}
		if err := s.InsertInteraction(i); err != nil {
			return err
		}

		snap, earned, err := gatherState(s, now)
		if err != nil {
			return err
		}
		d := decideInteraction(snap, earned, i, *rel, now)
		res, err = applyDecision(s, d, now)
		return err
	})
	if err != nil {
		return nil, err
	}

	metrics.InteractionsLogged.WithLabelValues(string(i.Type)).Inc()
	observeResult(res)
	return res, nil
}

// EarnedBadges returns every unlocked badge, newest first.
func (o *Orchestrator) EarnedBadges() ([]domain.EarnedBadge, error) {
	return o.db.ListBadges()
}

// gatherState pre-fetches the badge snapshot and the earned set. Runs
// inside the trigger's transaction so predicates see consistent counts.
func gatherState(s *sqlite.Store, now time.Time) (domain.Snapshot, map[string]bool, error) {
	var snap domain.Snapshot
	var err error

	if snap.TotalActions, err = s.CountCompletedActions(); err != nil {
		return snap, nil, fmt.Errorf("count actions: %w", err)
	}
	if snap.TotalWins, err = s.CountWins(); err != nil {
		return snap, nil, fmt.Errorf("count wins: %w", err)
	}
	if snap.HasBigWin, err = s.HasWinAtLeast(domain.SizeBig, domain.SizeMassive); err != nil {
		return snap, nil, fmt.Errorf("check big win: %w", err)
	}
	if snap.TotalChallenges, err = s.CountCompletedChallenges(); err != nil {
		return snap, nil, fmt.Errorf("count challenges: %w", err)
	}
	if snap.ChallengesByCategory, err = s.CompletedChallengesByCategory(); err != nil {
		return snap, nil, fmt.Errorf("challenges by category: %w", err)
	}
	if snap.EpicChallenges, err = s.CountCompletedByDifficulty(domain.DifficultyEpic); err != nil {
		return snap, nil, fmt.Errorf("count epics: %w", err)
	}
	if snap.TotalInteractions, err = s.CountInteractions(); err != nil {
		return snap, nil, fmt.Errorf("count interactions: %w", err)
	}
	if snap.MentorInteractions, err = s.CountInteractionsByCategory(domain.RelMentor); err != nil {
		return snap, nil, fmt.Errorf("count mentor interactions: %w", err)
	}

	rels, err := s.ListRelationships()
	if err != nil {
		return snap, nil, fmt.Errorf("list relationships: %w", err)
	}
	for _, r := range rels {
		if r.Health(now) == domain.HealthHealthy {
			snap.HealthyRelationships++
		}
	}

	streak, err := loadStreak(s)
	if err != nil {
		return snap, nil, err
	}
	snap.CurrentStreak = streak.CurrentDays

	earned, err := s.EarnedBadgeSet()
	if err != nil {
		return snap, nil, fmt.Errorf("earned badges: %w", err)
	}
	return snap, earned, nil
}

// applyDecision writes a decision against the transaction-bound store and
// builds the result. Order matters: the challenge's terminal mark comes
// first so a double-complete aborts before any reward lands.
func applyDecision(s *sqlite.Store, d Decision, now time.Time) (*Result, error) {
	res := &Result{}

	if d.CompletedChallenge != nil {
		ch := d.CompletedChallenge
		if err := s.CompleteChallenge(ch.ID, now, ch.Reflection); err != nil {
			return nil, err
		}
	}

	if d.Streak != nil {
		if err := saveStreak(s, *d.Streak); err != nil {
			return nil, err
		}
		tr := d.StreakT
		res.Streak = &tr
		if tr.Extended {
			d.Events = append(d.Events, domain.Event{
				Kind:      domain.EventStreakExtended,
				Title:     fmt.Sprintf("%d-day streak", tr.Current),
				CreatedAt: now,
			})
		}
	}

	for _, w := range d.Wins {
		if err := s.InsertWin(w); err != nil {
			return nil, fmt.Errorf("insert win: %w", err)
		}
	}
	res.Wins = d.Wins

	for _, b := range d.Badges {
		newly, err := s.InsertBadge(b.ID, now)
		if err != nil {
			return nil, fmt.Errorf("insert badge %s: %w", b.ID, err)
		}
		if !newly {
			continue
		}
		res.Badges = append(res.Badges, b)
		d.Events = append(d.Events, domain.Event{
			Kind:      domain.EventBadgeUnlocked,
			Title:     b.Name,
			Body:      fmt.Sprintf("%s  +%d XP", b.Icon, b.RewardXP),
			CreatedAt: now,
		})
	}

	var change domain.LevelChange
	for i, award := range d.XP {
		c, err := creditXP(s, award.Amount, award.Source, award.Detail, now)
		if err != nil {
			return nil, err
		}
		if i == 0 {
			change.OldLevel = c.OldLevel
		}
		change.NewLevel = c.NewLevel
		res.XPAwarded += award.Amount
		metrics.XPAwarded.WithLabelValues(string(award.Source)).Add(float64(award.Amount))
	}
	if len(d.XP) == 0 {
		xp, err := totalXP(s)
		if err != nil {
			return nil, err
		}
		change.OldLevel = LevelForXP(xp)
		change.NewLevel = change.OldLevel
	}
	change.LeveledUp = change.NewLevel > change.OldLevel
	res.Level = change

	if change.LeveledUp {
		d.Events = append(d.Events, domain.Event{
			Kind:      domain.EventLevelUp,
			Title:     fmt.Sprintf("Level %d", change.NewLevel),
			Body:      "You are now a " + TitleForLevel(change.NewLevel),
			CreatedAt: now,
		})
	}
	if d.Milestone != "" {
		res.Milestone = string(d.Milestone)
	}

	for _, e := range d.Events {
		if _, err := s.InsertEvent(e); err != nil {
			return nil, fmt.Errorf("insert event: %w", err)
		}
	}
	return res, nil
}

// observeResult updates engine metrics after a committed trigger.
func observeResult(res *Result) {
	if res == nil {
		return
	}
	if res.Level.LeveledUp {
		metrics.LevelUps.Inc()
	}
	metrics.CurrentLevel.Set(float64(res.Level.NewLevel))
	for _, b := range res.Badges {
		metrics.BadgesUnlocked.WithLabelValues(string(b.Trigger)).Inc()
	}
	if res.Streak != nil {
		metrics.StreakDays.Set(float64(res.Streak.Current))
		if res.Streak.Reset {
			metrics.StreakResets.Inc()
		}
	}
	if res.Milestone != "" {
		metrics.MilestonesCrossed.WithLabelValues(res.Milestone).Inc()
	}
}
