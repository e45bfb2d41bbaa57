package sqlite

import (
	"database/sql"
	"time"

	"github.com/upward-labs/upward/internal/domain"
)

// ─── Challenges ─────────────────────────────────────────────────────────────

// InsertChallenge creates an accepted challenge.
func (s *Store) InsertChallenge(c domain.Challenge) error {
	_, err := s.q.Exec(
		`INSERT INTO challenges (id, template_id, title, category, difficulty, duration,
		                         reward_xp, active, completed, started_at, expires_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.TemplateID, c.Title, string(c.Category), string(c.Difficulty),
		string(c.Duration), c.RewardXP, c.Active, c.Completed,
		c.StartedAt.Unix(), c.ExpiresAt.Unix(),
	)
	return err
}

// GetChallenge retrieves a challenge by ID.
func (s *Store) GetChallenge(id string) (*domain.Challenge, error) {
	row := s.q.QueryRow(
		`SELECT id, template_id, title, category, difficulty, duration, reward_xp,
		        active, completed, started_at, expires_at, completed_at,
		        notes, emotion, photo_ref, voice_ref
		 FROM challenges WHERE id = ?`, id,
	)
	c, err := scanChallenge(row)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrChallengeNotFound
	}
	return c, nil
}

// ListActiveChallenges returns active, uncompleted challenges by expiry.
func (s *Store) ListActiveChallenges() ([]domain.Challenge, error) {
	rows, err := s.q.Query(
		`SELECT id, template_id, title, category, difficulty, duration, reward_xp,
		        active, completed, started_at, expires_at, completed_at,
		        notes, emotion, photo_ref, voice_ref
		 FROM challenges WHERE active = 1 AND completed = 0 ORDER BY expires_at ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var challenges []domain.Challenge
	for rows.Next() {
		c, err := scanChallenge(rows)
		if err != nil {
			return nil, err
		}
		challenges = append(challenges, *c)
	}
	return challenges, rows.Err()
}

// CompleteChallenge marks a challenge terminal and stores its reflection.
// Completion is terminal: active drops, completed is permanent.
func (s *Store) CompleteChallenge(id string, at time.Time, r *domain.Reflection) error {
	notes, emotion, photo, voice := "", 0, "", ""
	if r != nil {
		notes, emotion, photo, voice = r.Notes, r.Emotion, r.PhotoRef, r.VoiceMemoRef
	}
	result, err := s.q.Exec(
		`UPDATE challenges
		 SET active = 0, completed = 1, completed_at = ?,
		     notes = ?, emotion = ?, photo_ref = ?, voice_ref = ?
		 WHERE id = ? AND completed = 0`,
		at.Unix(), notes, emotion, photo, voice, id,
	)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return domain.ErrChallengeCompleted
	}
	return nil
}

// AbandonChallenge deactivates a challenge without completing it.
func (s *Store) AbandonChallenge(id string) error {
	result, err := s.q.Exec(
		`UPDATE challenges SET active = 0 WHERE id = ? AND active = 1 AND completed = 0`, id,
	)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return domain.ErrChallengeNotActive
	}
	return nil
}

// CountCompletedChallenges returns the all-time completed challenge count.
func (s *Store) CountCompletedChallenges() (int, error) {
	var count int
	err := s.q.QueryRow(`SELECT COUNT(*) FROM challenges WHERE completed = 1`).Scan(&count)
	return count, err
}

// CompletedChallengesByCategory returns completed counts per category.
func (s *Store) CompletedChallengesByCategory() (map[domain.ChallengeCategory]int, error) {
	rows, err := s.q.Query(
		`SELECT category, COUNT(*) FROM challenges WHERE completed = 1 GROUP BY category`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.ChallengeCategory]int)
	for rows.Next() {
		var cat string
		var n int
		if err := rows.Scan(&cat, &n); err != nil {
			return nil, err
		}
		counts[domain.ChallengeCategory(cat)] = n
	}
	return counts, rows.Err()
}

// CountCompletedByDifficulty returns the completed count for a difficulty.
func (s *Store) CountCompletedByDifficulty(d domain.Difficulty) (int, error) {
	var count int
	err := s.q.QueryRow(
		`SELECT COUNT(*) FROM challenges WHERE completed = 1 AND difficulty = ?`,
		string(d),
	).Scan(&count)
	return count, err
}

func scanChallenge(sc scanner) (*domain.Challenge, error) {
	var c domain.Challenge
	var startedAt, expiresAt int64
	var completedAt sql.NullInt64
	var notes, photo, voice string
	var emotion int

	err := sc.Scan(&c.ID, &c.TemplateID, &c.Title, &c.Category, &c.Difficulty,
		&c.Duration, &c.RewardXP, &c.Active, &c.Completed,
		&startedAt, &expiresAt, &completedAt,
		&notes, &emotion, &photo, &voice)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	c.StartedAt = time.Unix(startedAt, 0)
	c.ExpiresAt = time.Unix(expiresAt, 0)
	if completedAt.Valid {
		c.CompletedAt = time.Unix(completedAt.Int64, 0)
	}
	if notes != "" || emotion != 0 || photo != "" || voice != "" {
		c.Reflection = &domain.Reflection{
			Notes: notes, Emotion: emotion, PhotoRef: photo, VoiceMemoRef: voice,
		}
	}
	return &c, nil
}
