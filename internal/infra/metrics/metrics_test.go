package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func gatheredNames(t *testing.T) map[string]bool {
	t.Helper()
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		t.Fatalf("Gather() error: %v", err)
	}
	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}
	return names
}

func TestProgressMetrics(t *testing.T) {
	XPAwarded.WithLabelValues("action").Add(25)
	LevelUps.Inc()
	CurrentLevel.Set(3)
	BadgesUnlocked.WithLabelValues("action_completed").Inc()
	StreakDays.Set(7)
	StreakResets.Inc()
	MilestonesCrossed.WithLabelValues("half").Inc()

	names := gatheredNames(t)
	expected := []string{
		"upward_xp_awarded_total",
		"upward_level_ups_total",
		"upward_level_current",
		"upward_badges_unlocked_total",
		"upward_streak_days",
		"upward_streak_resets_total",
		"upward_milestones_crossed_total",
	}
	for _, name := range expected {
		if !names[name] {
			t.Errorf("metric %q not found", name)
		}
	}
}

func TestRecordMetrics(t *testing.T) {
	ActionsCompleted.Inc()
	WinsLogged.WithLabelValues("big").Inc()

	names := gatheredNames(t)
	if !names["upward_actions_completed_total"] {
		t.Error("upward_actions_completed_total not found")
	}
	if !names["upward_wins_logged_total"] {
		t.Error("upward_wins_logged_total not found")
	}
}

func TestChallengeMetrics(t *testing.T) {
	ChallengesAccepted.WithLabelValues("health").Inc()
	ChallengesCompleted.WithLabelValues("health", "easy").Inc()
	ChallengesAbandoned.Inc()

	names := gatheredNames(t)
	expected := []string{
		"upward_challenges_accepted_total",
		"upward_challenges_completed_total",
		"upward_challenges_abandoned_total",
	}
	for _, name := range expected {
		if !names[name] {
			t.Errorf("metric %q not found", name)
		}
	}
}

func TestAPIMetrics(t *testing.T) {
	APIRequests.WithLabelValues("/api/progress/level", "200").Inc()
	APILatency.WithLabelValues("/api/progress/level").Observe(0.002)
	InteractionsLogged.WithLabelValues("call").Inc()

	names := gatheredNames(t)
	if !names["upward_api_requests_total"] {
		t.Error("upward_api_requests_total not found")
	}
	if !names["upward_api_latency_seconds"] {
		t.Error("upward_api_latency_seconds not found")
	}
	if !names["upward_interactions_logged_total"] {
		t.Error("upward_interactions_logged_total not found")
	}
}

func TestAllMetricsGatherable(t *testing.T) {
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		t.Fatalf("Gather() error: %v", err)
	}

	count := 0
	for _, f := range families {
		if len(f.GetName()) > 7 && f.GetName()[:7] == "upward_" {
			count++
		}
	}
	if count < 12 {
		t.Errorf("expected at least 12 upward_ metric families, got %d", count)
	}
}
