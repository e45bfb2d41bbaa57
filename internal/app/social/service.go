// Package social manages relationships and interaction logging.
package social

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/upward-labs/upward/internal/app/progress"
	"github.com/upward-labs/upward/internal/domain"
	"github.com/upward-labs/upward/internal/infra/sqlite"
)

// Service manages relationships. Interaction logging runs through the
// orchestrator, which owns the reward sequence.
type Service struct {
	db   *sqlite.DB
	orch *progress.Orchestrator
}

// NewService creates a social service.
func NewService(db *sqlite.DB, orch *progress.Orchestrator) *Service {
	return &Service{db: db, orch: orch}
}

// RelationshipView is a relationship with its computed health status.
type RelationshipView struct {
	domain.Relationship
	Health domain.HealthStatus `json:"health"`
}

// CreateRelationship adds a person to the circle.
func (s *Service) CreateRelationship(name string, cat domain.RelationshipCategory, now time.Time) (*domain.Relationship, error) {
	switch cat {
	case domain.RelFriend, domain.RelFamily, domain.RelPartner, domain.RelMentor, domain.RelColleague:
	default:
		return nil, fmt.Errorf("unknown relationship category %q", cat)
	}

	r := domain.Relationship{
		ID:        uuid.NewString(),
		Name:      name,
		Category:  cat,
		CreatedAt: now,
	}
	if err := s.db.InsertRelationship(r); err != nil {
		return nil, fmt.Errorf("insert relationship: %w", err)
	}
	return &r, nil
}

// Get returns one relationship with its health.
func (s *Service) Get(id string, now time.Time) (*RelationshipView, error) {
	r, err := s.db.GetRelationship(id)
	if err != nil {
		return nil, err
	}
	return &RelationshipView{Relationship: *r, Health: r.Health(now)}, nil
}

// List returns the circle with health computed as of now.
func (s *Service) List(now time.Time) ([]RelationshipView, error) {
	rels, err := s.db.ListRelationships()
	if err != nil {
		return nil, err
	}
	views := make([]RelationshipView, 0, len(rels))
	for _, r := range rels {
		views = append(views, RelationshipView{Relationship: r, Health: r.Health(now)})
	}
	return views, nil
}

// LogInteraction records a touchpoint and runs the reward sequence.
func (s *Service) LogInteraction(i domain.Interaction, now time.Time) (*progress.Result, error) {
	switch i.Type {
	case domain.InteractionCall, domain.InteractionMessage, domain.InteractionMeetup,
		domain.InteractionGift, domain.InteractionFavor:
	default:
		return nil, fmt.Errorf("unknown interaction type %q", i.Type)
	}
	switch i.InitiatedBy {
	case domain.InitiatedByMe, domain.InitiatedByThem:
	default:
		return nil, fmt.Errorf("unknown initiator %q", i.InitiatedBy)
	}
	return s.orch.RecordInteraction(i, now)
}

// Interactions returns a relationship's history, newest first.
func (s *Service) Interactions(relationshipID string) ([]domain.Interaction, error) {
	if _, err := s.db.GetRelationship(relationshipID); err != nil {
		return nil, err
	}
	return s.db.ListInteractions(relationshipID)
}
