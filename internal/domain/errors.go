package domain

import "errors"

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Domain errors are pure — no infrastructure dependency.

var (
	// Goal / action errors
	ErrGoalNotFound   = errors.New("goal not found")
	ErrActionNotFound = errors.New("action not found")
	ErrActionDone     = errors.New("action already completed")

	// Win errors
	ErrInvalidWinSize = errors.New("invalid win size")
	ErrInvalidEmotion = errors.New("emotion rating must be between 1 and 5")

	// Challenge errors
	ErrTemplateNotFound    = errors.New("challenge template not found")
	ErrChallengeNotFound   = errors.New("challenge not found")
	ErrChallengeNotActive  = errors.New("challenge is not active")
	ErrChallengeCompleted  = errors.New("challenge already completed")

	// Relationship errors
	ErrRelationshipNotFound = errors.New("relationship not found")

	// Engine errors
	ErrUnknownBadge     = errors.New("unknown badge identifier")
	ErrNonPositiveXP    = errors.New("xp amount must be positive")
	ErrEventNotFound    = errors.New("event not found")
)
