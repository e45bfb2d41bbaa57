package sqlite

import (
	"database/sql"
	"time"

	"github.com/upward-labs/upward/internal/domain"
)

// ─── Relationships ──────────────────────────────────────────────────────────

// InsertRelationship creates a relationship.
func (s *Store) InsertRelationship(r domain.Relationship) error {
	_, err := s.q.Exec(
		`INSERT INTO relationships (id, name, category, created_at) VALUES (?, ?, ?, ?)`,
		r.ID, r.Name, string(r.Category), r.CreatedAt.Unix(),
	)
	return err
}

// GetRelationship retrieves a relationship with interaction aggregates.
func (s *Store) GetRelationship(id string) (*domain.Relationship, error) {
	row := s.q.QueryRow(
		`SELECT r.id, r.name, r.category, r.created_at,
		        COUNT(i.id), MAX(i.created_at)
		 FROM relationships r LEFT JOIN interactions i ON i.relationship_id = r.id
		 WHERE r.id = ? GROUP BY r.id`, id,
	)
	r, err := scanRelationship(row)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrRelationshipNotFound
	}
	return r, nil
}

// ListRelationships returns all relationships with interaction aggregates.
func (s *Store) ListRelationships() ([]domain.Relationship, error) {
	rows, err := s.q.Query(
		`SELECT r.id, r.name, r.category, r.created_at,
		        COUNT(i.id), MAX(i.created_at)
		 FROM relationships r LEFT JOIN interactions i ON i.relationship_id = r.id
		 GROUP BY r.id ORDER BY r.created_at ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rels []domain.Relationship
	for rows.Next() {
		r, err := scanRelationship(rows)
		if err != nil {
			return nil, err
		}
		rels = append(rels, *r)
	}
	return rels, rows.Err()
}

// ─── Interactions ───────────────────────────────────────────────────────────

// InsertInteraction logs an interaction against a relationship.
func (s *Store) InsertInteraction(i domain.Interaction) error {
	_, err := s.q.Exec(
		`INSERT INTO interactions (id, relationship_id, type, initiated_by, notes, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		i.ID, i.RelationshipID, string(i.Type), string(i.InitiatedBy),
		i.Notes, i.CreatedAt.Unix(),
	)
	return err
}

// ListInteractions returns a relationship's interactions, newest first.
func (s *Store) ListInteractions(relationshipID string) ([]domain.Interaction, error) {
	rows, err := s.q.Query(
		`SELECT id, relationship_id, type, initiated_by, notes, created_at
		 FROM interactions WHERE relationship_id = ?
		 ORDER BY created_at DESC, id DESC`, relationshipID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var interactions []domain.Interaction
	for rows.Next() {
		var i domain.Interaction
		var createdAt int64
		if err := rows.Scan(&i.ID, &i.RelationshipID, &i.Type, &i.InitiatedBy,
			&i.Notes, &createdAt); err != nil {
			return nil, err
		}
		i.CreatedAt = time.Unix(createdAt, 0)
		interactions = append(interactions, i)
	}
	return interactions, rows.Err()
}

// CountInteractions returns the all-time interaction count across all
// relationships.
func (s *Store) CountInteractions() (int, error) {
	var count int
	err := s.q.QueryRow(`SELECT COUNT(*) FROM interactions`).Scan(&count)
	return count, err
}

// CountInteractionsByCategory returns interactions whose relationship has
// the given category.
func (s *Store) CountInteractionsByCategory(cat domain.RelationshipCategory) (int, error) {
	var count int
	err := s.q.QueryRow(
		`SELECT COUNT(*) FROM interactions i
		 JOIN relationships r ON r.id = i.relationship_id
		 WHERE r.category = ?`, string(cat),
	).Scan(&count)
	return count, err
}

func scanRelationship(sc scanner) (*domain.Relationship, error) {
	var r domain.Relationship
	var createdAt int64
	var lastInteraction sql.NullInt64

	err := sc.Scan(&r.ID, &r.Name, &r.Category, &createdAt,
		&r.InteractionCount, &lastInteraction)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	r.CreatedAt = time.Unix(createdAt, 0)
	if lastInteraction.Valid {
		r.LastInteractionAt = time.Unix(lastInteraction.Int64, 0)
	}
	return &r, nil
}
