package progress

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/upward-labs/upward/internal/domain"
)

// Base XP for the act itself. Badge and milestone rewards come on top.
const (
	XPPerAction      = 25
	XPPerInteraction = 15
)

// xpAward is one pending XP credit.
type xpAward struct {
	Amount int64
	Source domain.XPSource
	Detail string
}

// Decision is the complete outcome of one trigger. The decide functions
// below compute it from a snapshot without touching the store; the
// orchestrator applies it in a single transaction afterwards.
type Decision struct {
	XP                 []xpAward
	Badges             []domain.BadgeDef
	Wins               []domain.Win
	Streak             *domain.Streak
	StreakT            Transition
	Milestone          domain.Milestone // "" when no threshold crossed
	CompletedChallenge *domain.Challenge
	Events             []domain.Event
}

// unlock evaluates one trigger group against the snapshot and queues every
// newly satisfied badge with its XP reward. earned is updated in place so
// later groups in the same decision see earlier unlocks.
func (d *Decision) unlock(snap *domain.Snapshot, earned map[string]bool, trigger domain.BadgeTrigger) {
	for _, b := range badgesForTrigger(trigger) {
		if earned[b.ID] || !b.Predicate(*snap) {
			continue
		}
		earned[b.ID] = true
		d.Badges = append(d.Badges, b)
		d.XP = append(d.XP, xpAward{
			Amount: b.RewardXP,
			Source: domain.XPBadgeUnlocked,
			Detail: "Badge unlocked: " + b.Name,
		})
	}
}

// countWins folds queued wins into the snapshot before win badges run.
func (d *Decision) countWins(snap *domain.Snapshot) {
	for _, w := range d.Wins {
		snap.TotalWins++
		if w.Size.AtLeast(domain.SizeBig) {
			snap.HasBigWin = true
		}
	}
}

// decideActionCompletion runs the full action-completion sequence:
// base XP, streak advance, streak badges, time-of-day and count badges,
// then the goal milestone check with its win and win badges.
// The snapshot's action count must already include the completed action.
func decideActionCompletion(snap domain.Snapshot, earned map[string]bool,
	streak domain.Streak, action domain.Action, goal domain.Goal,
	prevProgress float64, now time.Time, loc *time.Location) Decision {

	var d Decision
	d.XP = append(d.XP, xpAward{
		Amount: XPPerAction,
		Source: domain.XPActionCompleted,
		Detail: "Completed action: " + action.Title,
	})

	updated, tr := advanceStreak(streak, domain.DayOf(now, loc))
	d.Streak = &updated
	d.StreakT = tr

	snap.CurrentStreak = updated.CurrentDays
	snap.CompletedHour = now.In(loc).Hour()

	// Streak badges only when the streak actually moved; a same-day
	// repeat leaves the count untouched.
	if tr.Extended {
		d.unlock(&snap, earned, domain.TriggerStreakUpdated)
	}
	d.unlock(&snap, earned, domain.TriggerActionCompleted)

	if m, ok := CheckMilestone(prevProgress, goal.Progress()); ok {
		d.Milestone = m
		d.XP = append(d.XP, xpAward{
			Amount: m.RewardXP(),
			Source: domain.XPMilestone,
			Detail: fmt.Sprintf("%s: %s", m.Label(), goal.Title),
		})

		desc := fmt.Sprintf("Reached the %s on %q", m.Label(), goal.Title)
		if m == domain.MilestoneComplete {
			desc = fmt.Sprintf("Completed goal %q", goal.Title)
		}
		d.Wins = append(d.Wins, domain.Win{
			ID:          uuid.NewString(),
			Description: desc,
			Size:        winSizeForMilestone(m),
			GoalID:      goal.ID,
			Category:    goal.Category,
			CreatedAt:   now,
		})
		d.Events = append(d.Events, domain.Event{
			Kind:      domain.EventMilestone,
			Title:     m.Label(),
			Body:      goal.Title,
			CreatedAt: now,
		})

		d.countWins(&snap)
		d.unlock(&snap, earned, domain.TriggerWinLogged)
	}

	return d
}

// decideWinLogged queues a user-authored win and its badge fallout.
// The snapshot must NOT yet include the new win.
func decideWinLogged(snap domain.Snapshot, earned map[string]bool, win domain.Win) Decision {
	d := Decision{Wins: []domain.Win{win}}
	d.countWins(&snap)
	d.unlock(&snap, earned, domain.TriggerWinLogged)
	return d
}

// decideChallengeCompletion runs the challenge-completion sequence: reward
// XP, the auto-created win sized by difficulty, the one-time epic bonus
// win, then challenge and win badges. The snapshot must not yet count the
// completing challenge.
func decideChallengeCompletion(snap domain.Snapshot, earned map[string]bool,
	ch domain.Challenge, now time.Time) Decision {

	d := Decision{CompletedChallenge: &ch}
	d.XP = append(d.XP, xpAward{
		Amount: ch.RewardXP,
		Source: domain.XPChallengeCompleted,
		Detail: "Completed challenge: " + ch.Title,
	})

	snap.TotalChallenges++
	if snap.ChallengesByCategory == nil {
		snap.ChallengesByCategory = make(map[domain.ChallengeCategory]int)
	}
	snap.ChallengesByCategory[ch.Category]++
	if ch.Difficulty == domain.DifficultyEpic {
		snap.EpicChallenges++
	}

	d.Wins = append(d.Wins, domain.Win{
		ID:          uuid.NewString(),
		Description: "Completed challenge: " + ch.Title,
		Size:        ch.Difficulty.WinSize(),
		Category:    string(ch.Category),
		CreatedAt:   now,
	})

	// One extra win the first time an epic falls. Checked before unlock
	// marks epicConqueror earned.
	if ch.Difficulty == domain.DifficultyEpic && !earned["epicConqueror"] {
		d.Wins = append(d.Wins, domain.Win{
			ID:          uuid.NewString(),
			Description: "Conquered a first epic challenge: " + ch.Title,
			Size:        domain.SizeBig,
			Category:    string(ch.Category),
			CreatedAt:   now,
		})
	}

	d.unlock(&snap, earned, domain.TriggerChallengeCompleted)
	d.countWins(&snap)
	d.unlock(&snap, earned, domain.TriggerWinLogged)

	d.Events = append(d.Events, domain.Event{
		Kind:      domain.EventChallengeCompleted,
		Title:     ch.Title,
		Body:      fmt.Sprintf("+%d XP", ch.RewardXP),
		CreatedAt: now,
	})
	return d
}

// decideInteraction runs the interaction sequence: the first-reach-out
// special case, interaction badges, then base XP last.
// The snapshot's interaction counts must already include this interaction.
func decideInteraction(snap domain.Snapshot, earned map[string]bool,
	i domain.Interaction, rel domain.Relationship, now time.Time) Decision {

	var d Decision

	if snap.TotalInteractions == 1 && i.InitiatedBy == domain.InitiatedByMe {
		snap.FirstReachOut = true
		d.Wins = append(d.Wins, domain.Win{
			ID:          uuid.NewString(),
			Description: "Reached out first to " + rel.Name,
			Size:        domain.SizeSmall,
			CreatedAt:   now,
		})
	}

	d.unlock(&snap, earned, domain.TriggerInteractionLogged)

	if len(d.Wins) > 0 {
		d.countWins(&snap)
		d.unlock(&snap, earned, domain.TriggerWinLogged)
	}

	d.XP = append(d.XP, xpAward{
		Amount: XPPerInteraction,
		Source: domain.XPInteractionLogged,
		Detail: "Logged " + string(i.Type) + " with " + rel.Name,
	})
	return d
}
