package domain

import "time"

// ─── Relationship Types ─────────────────────────────────────────────────────

// RelationshipCategory groups relationships by role.
type RelationshipCategory string

const (
	RelFriend    RelationshipCategory = "friend"
	RelFamily    RelationshipCategory = "family"
	RelPartner   RelationshipCategory = "partner"
	RelMentor    RelationshipCategory = "mentor"
	RelColleague RelationshipCategory = "colleague"
)

// HealthStatus is the computed warmth of a relationship. Never stored —
// derived from the last interaction timestamp at read time.
type HealthStatus string

const (
	HealthNew     HealthStatus = "new"
	HealthHealthy HealthStatus = "healthy"
	HealthCooling HealthStatus = "cooling"
	HealthDormant HealthStatus = "dormant"
)

// Relationship owns an ordered list of interactions. InteractionCount and
// LastInteractionAt are aggregates filled in by the store at read time.
type Relationship struct {
	ID                string               `json:"id"`
	Name              string               `json:"name"`
	Category          RelationshipCategory `json:"category"`
	CreatedAt         time.Time            `json:"created_at"`
	InteractionCount  int                  `json:"interaction_count"`
	LastInteractionAt time.Time            `json:"last_interaction_at,omitzero"`
}

// Health computes the relationship's status as of now.
// Healthy within 14 days of contact, cooling within 45, dormant beyond.
func (r Relationship) Health(now time.Time) HealthStatus {
	if r.LastInteractionAt.IsZero() {
		return HealthNew
	}
	since := now.Sub(r.LastInteractionAt)
	switch {
	case since <= 14*24*time.Hour:
		return HealthHealthy
	case since <= 45*24*time.Hour:
		return HealthCooling
	default:
		return HealthDormant
	}
}

// Initiator identifies who started an interaction.
type Initiator string

const (
	InitiatedByMe   Initiator = "me"
	InitiatedByThem Initiator = "them"
)

// InteractionType categorizes an interaction.
type InteractionType string

const (
	InteractionCall    InteractionType = "call"
	InteractionMessage InteractionType = "message"
	InteractionMeetup  InteractionType = "meetup"
	InteractionGift    InteractionType = "gift"
	InteractionFavor   InteractionType = "favor"
)

// Interaction is one logged touchpoint with a relationship.
type Interaction struct {
	ID             string          `json:"id"`
	RelationshipID string          `json:"relationship_id"`
	Type           InteractionType `json:"type"`
	InitiatedBy    Initiator       `json:"initiated_by"`
	Notes          string          `json:"notes,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}
