// Package metrics provides Prometheus metrics for Upward — counters and
// gauges for the progress engine, records, challenges and relationships.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Progress Engine ────────────────────────────────────────────────────────

// XPAwarded tracks XP credited by source.
var XPAwarded = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "upward",
	Name:      "xp_awarded_total",
	Help:      "Total XP awarded.",
}, []string{"source"})

// LevelUps tracks level-up occurrences.
var LevelUps = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "upward",
	Name:      "level_ups_total",
	Help:      "Total level-ups.",
})

// CurrentLevel tracks the user's current level.
var CurrentLevel = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "upward",
	Name:      "level_current",
	Help:      "Current user level.",
})

// BadgesUnlocked tracks badge unlocks by trigger group.
var BadgesUnlocked = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "upward",
	Name:      "badges_unlocked_total",
	Help:      "Total badges unlocked.",
}, []string{"trigger"})

// StreakDays tracks the current streak length.
var StreakDays = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "upward",
	Name:      "streak_days",
	Help:      "Current consecutive-day streak.",
})

// StreakResets tracks streak breaks.
var StreakResets = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "upward",
	Name:      "streak_resets_total",
	Help:      "Total streak resets.",
})

// MilestonesCrossed tracks goal milestone crossings by threshold.
var MilestonesCrossed = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "upward",
	Name:      "milestones_crossed_total",
	Help:      "Total goal milestones crossed.",
}, []string{"milestone"})

// ─── Records ────────────────────────────────────────────────────────────────

// ActionsCompleted tracks completed actions.
var ActionsCompleted = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "upward",
	Name:      "actions_completed_total",
	Help:      "Total completed actions.",
})

// WinsLogged tracks logged wins by size.
var WinsLogged = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "upward",
	Name:      "wins_logged_total",
	Help:      "Total wins logged.",
}, []string{"size"})

// ─── Challenges ─────────────────────────────────────────────────────────────

// ChallengesAccepted tracks accepted challenges by category.
var ChallengesAccepted = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "upward",
	Name:      "challenges_accepted_total",
	Help:      "Total challenges accepted.",
}, []string{"category"})

// ChallengesCompleted tracks completed challenges by category and difficulty.
var ChallengesCompleted = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "upward",
	Name:      "challenges_completed_total",
	Help:      "Total challenges completed.",
}, []string{"category", "difficulty"})

// ChallengesAbandoned tracks abandoned challenges.
var ChallengesAbandoned = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "upward",
	Name:      "challenges_abandoned_total",
	Help:      "Total challenges abandoned.",
})

// ─── Relationships ──────────────────────────────────────────────────────────

// InteractionsLogged tracks logged interactions by type.
var InteractionsLogged = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "upward",
	Name:      "interactions_logged_total",
	Help:      "Total interactions logged.",
}, []string{"type"})

// ─── API ────────────────────────────────────────────────────────────────────

// APIRequests tracks HTTP API requests by route and status.
var APIRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "upward",
	Name:      "api_requests_total",
	Help:      "Total HTTP API requests.",
}, []string{"route", "status"})

// APILatency tracks HTTP request duration in seconds.
var APILatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "upward",
	Name:      "api_latency_seconds",
	Help:      "HTTP request duration in seconds.",
	Buckets:   prometheus.DefBuckets,
}, []string{"route"})
