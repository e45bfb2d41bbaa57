package progress

import (
	"fmt"

	"github.com/upward-labs/upward/internal/domain"
)

// Catalog returns every badge definition in catalog order.
func Catalog() []domain.BadgeDef {
	return catalog
}

// BadgeByID looks up a badge definition.
func BadgeByID(id string) (domain.BadgeDef, error) {
	for _, b := range catalog {
		if b.ID == id {
			return b, nil
		}
	}
	return domain.BadgeDef{}, fmt.Errorf("%w: %s", domain.ErrUnknownBadge, id)
}

// badgesForTrigger filters the catalog to one trigger group.
func badgesForTrigger(trigger domain.BadgeTrigger) []domain.BadgeDef {
	var defs []domain.BadgeDef
	for _, b := range catalog {
		if b.Trigger == trigger {
			defs = append(defs, b)
		}
	}
	return defs
}

// catalog is the fixed badge set. Predicates are monotonic threshold checks
// over the snapshot, so a badge once satisfiable stays satisfiable.
var catalog = []domain.BadgeDef{
	// ─── Action badges ──────────────────────────────────────────────────
	{
		ID: "firstStep", Name: "First Step", Icon: "👣",
		Trigger: domain.TriggerActionCompleted, RewardXP: 100,
		Predicate: func(s domain.Snapshot) bool { return s.TotalActions >= 1 },
	},
	{
		ID: "momentum", Name: "Momentum", Icon: "🏃",
		Trigger: domain.TriggerActionCompleted, RewardXP: 50,
		Predicate: func(s domain.Snapshot) bool { return s.TotalActions >= 10 },
	},
	{
		ID: "workhorse", Name: "Workhorse", Icon: "🐴",
		Trigger: domain.TriggerActionCompleted, RewardXP: 100,
		Predicate: func(s domain.Snapshot) bool { return s.TotalActions >= 50 },
	},
	{
		ID: "centurion", Name: "Centurion", Icon: "🏛️",
		Trigger: domain.TriggerActionCompleted, RewardXP: 200,
		Predicate: func(s domain.Snapshot) bool { return s.TotalActions >= 100 },
	},
	{
		ID: "earlyBird", Name: "Early Bird", Icon: "🌅",
		Trigger: domain.TriggerActionCompleted, RewardXP: 50,
		Predicate: func(s domain.Snapshot) bool { return s.CompletedHour < 7 },
	},
	{
		ID: "nightOwl", Name: "Night Owl", Icon: "🦉",
		Trigger: domain.TriggerActionCompleted, RewardXP: 50,
		Predicate: func(s domain.Snapshot) bool { return s.CompletedHour >= 22 },
	},

	// ─── Streak badges ──────────────────────────────────────────────────
	{
		ID: "weekWarrior", Name: "Week Warrior", Icon: "🔥",
		Trigger: domain.TriggerStreakUpdated, RewardXP: 100,
		Predicate: func(s domain.Snapshot) bool { return s.CurrentStreak >= 7 },
	},
	{
		ID: "monthlyMaster", Name: "Monthly Master", Icon: "📅",
		Trigger: domain.TriggerStreakUpdated, RewardXP: 250,
		Predicate: func(s domain.Snapshot) bool { return s.CurrentStreak >= 30 },
	},
	{
		ID: "unstoppable", Name: "Unstoppable", Icon: "⚡",
		Trigger: domain.TriggerStreakUpdated, RewardXP: 500,
		Predicate: func(s domain.Snapshot) bool { return s.CurrentStreak >= 100 },
	},

	// ─── Win badges ─────────────────────────────────────────────────────
	{
		ID: "firstWin", Name: "First Win", Icon: "🏅",
		Trigger: domain.TriggerWinLogged, RewardXP: 50,
		Predicate: func(s domain.Snapshot) bool { return s.TotalWins >= 1 },
	},
	{
		ID: "winCollector", Name: "Win Collector", Icon: "🗃️",
		Trigger: domain.TriggerWinLogged, RewardXP: 100,
		Predicate: func(s domain.Snapshot) bool { return s.TotalWins >= 10 },
	},
	{
		ID: "winMachine", Name: "Win Machine", Icon: "🏆",
		Trigger: domain.TriggerWinLogged, RewardXP: 200,
		Predicate: func(s domain.Snapshot) bool { return s.TotalWins >= 25 },
	},
	{
		ID: "bigLeague", Name: "Big League", Icon: "🎯",
		Trigger: domain.TriggerWinLogged, RewardXP: 100,
		Predicate: func(s domain.Snapshot) bool { return s.HasBigWin },
	},

	// ─── Challenge badges ───────────────────────────────────────────────
	{
		ID: "firstChallenge", Name: "Challenge Accepted", Icon: "🤝",
		Trigger: domain.TriggerChallengeCompleted, RewardXP: 50,
		Predicate: func(s domain.Snapshot) bool { return s.TotalChallenges >= 1 },
	},
	{
		ID: "challengeChampion", Name: "Challenge Champion", Icon: "🥇",
		Trigger: domain.TriggerChallengeCompleted, RewardXP: 150,
		Predicate: func(s domain.Snapshot) bool { return s.TotalChallenges >= 10 },
	},
	{
		ID: "challengeLegend", Name: "Challenge Legend", Icon: "🐉",
		Trigger: domain.TriggerChallengeCompleted, RewardXP: 300,
		Predicate: func(s domain.Snapshot) bool { return s.TotalChallenges >= 25 },
	},
	{
		ID: "epicConqueror", Name: "Epic Conqueror", Icon: "⚔️",
		Trigger: domain.TriggerChallengeCompleted, RewardXP: 250,
		Predicate: func(s domain.Snapshot) bool { return s.EpicChallenges >= 1 },
	},
	categoryBadge(domain.CatMindset, "mindsetExplorer", "Mindset Explorer", "🧠"),
	categoryBadge(domain.CatHealth, "healthExplorer", "Health Explorer", "💪"),
	categoryBadge(domain.CatSocial, "socialExplorer", "Social Explorer", "🗣️"),
	categoryBadge(domain.CatGrowth, "growthExplorer", "Growth Explorer", "🌱"),
	categoryBadge(domain.CatCourage, "courageExplorer", "Courage Explorer", "🦁"),
	categoryBadge(domain.CatDiscipline, "disciplineExplorer", "Discipline Explorer", "⏰"),

	// ─── Interaction badges ─────────────────────────────────────────────
	{
		ID: "firstReachOut", Name: "First Reach Out", Icon: "👋",
		Trigger: domain.TriggerInteractionLogged, RewardXP: 50,
		Predicate: func(s domain.Snapshot) bool { return s.FirstReachOut },
	},
	{
		ID: "socialButterfly", Name: "Social Butterfly", Icon: "🦋",
		Trigger: domain.TriggerInteractionLogged, RewardXP: 100,
		Predicate: func(s domain.Snapshot) bool { return s.TotalInteractions >= 20 },
	},
	{
		ID: "connector", Name: "Connector", Icon: "🔗",
		Trigger: domain.TriggerInteractionLogged, RewardXP: 200,
		Predicate: func(s domain.Snapshot) bool { return s.TotalInteractions >= 50 },
	},
	{
		ID: "mentorMentee", Name: "Mentor & Mentee", Icon: "🎓",
		Trigger: domain.TriggerInteractionLogged, RewardXP: 100,
		Predicate: func(s domain.Snapshot) bool { return s.MentorInteractions >= 5 },
	},
	{
		ID: "circleKeeper", Name: "Circle Keeper", Icon: "⭕",
		Trigger: domain.TriggerInteractionLogged, RewardXP: 150,
		Predicate: func(s domain.Snapshot) bool { return s.HealthyRelationships >= 5 },
	},
}

// categoryBadge builds the per-category challenge explorer badge, earned
// at three completions in that category.
func categoryBadge(cat domain.ChallengeCategory, id, name, icon string) domain.BadgeDef {
	return domain.BadgeDef{
		ID: id, Name: name, Icon: icon,
		Trigger: domain.TriggerChallengeCompleted, RewardXP: 75,
		Predicate: func(s domain.Snapshot) bool {
			return s.CategoryCompletions(cat) >= 3
		},
	}
}
