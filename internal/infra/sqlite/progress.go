package sqlite

import (
	"database/sql"
	"time"

	"github.com/upward-labs/upward/internal/domain"
)

// ─── Progress Key-Value ─────────────────────────────────────────────────────

// SetProgress stores a progress key-value pair.
func (s *Store) SetProgress(key, value string) error {
	_, err := s.q.Exec(
		`INSERT INTO progress (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value=excluded.value`,
		key, value,
	)
	return err
}

// GetProgress retrieves a progress value by key.
// Returns "" if key not found.
func (s *Store) GetProgress(key string) (string, error) {
	var value string
	err := s.q.QueryRow(`SELECT value FROM progress WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return value, err
}

// ─── Badges ─────────────────────────────────────────────────────────────────

// InsertBadge records a badge as earned.
// Returns false if already earned (idempotent).
func (s *Store) InsertBadge(id string, at time.Time) (bool, error) {
	result, err := s.q.Exec(
		`INSERT OR IGNORE INTO badges (id, earned_at) VALUES (?, ?)`,
		id, at.Unix(),
	)
	if err != nil {
		return false, err
	}
	n, _ := result.RowsAffected()
	return n > 0, nil // true = newly earned
}

// IsBadgeEarned checks whether a badge has been earned.
func (s *Store) IsBadgeEarned(id string) (bool, error) {
	var count int
	err := s.q.QueryRow(`SELECT COUNT(*) FROM badges WHERE id = ?`, id).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListBadges returns all earned badges, newest first.
func (s *Store) ListBadges() ([]domain.EarnedBadge, error) {
	rows, err := s.q.Query(
		`SELECT id, earned_at FROM badges ORDER BY earned_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var badges []domain.EarnedBadge
	for rows.Next() {
		var b domain.EarnedBadge
		var earnedAt int64
		if err := rows.Scan(&b.ID, &earnedAt); err != nil {
			return nil, err
		}
		b.EarnedAt = time.Unix(earnedAt, 0)
		badges = append(badges, b)
	}
	return badges, rows.Err()
}

// EarnedBadgeSet returns the earned badge IDs as a set.
func (s *Store) EarnedBadgeSet() (map[string]bool, error) {
	badges, err := s.ListBadges()
	if err != nil {
		return nil, err
	}
	set := make(map[string]bool, len(badges))
	for _, b := range badges {
		set[b.ID] = true
	}
	return set, nil
}

// BadgeCount returns the total number of earned badges.
func (s *Store) BadgeCount() (int, error) {
	var count int
	err := s.q.QueryRow(`SELECT COUNT(*) FROM badges`).Scan(&count)
	return count, err
}

// ─── XP Journal ─────────────────────────────────────────────────────────────

// InsertJournalEntry appends an XP journal row.
func (s *Store) InsertJournalEntry(e domain.JournalEntry) (int64, error) {
	result, err := s.q.Exec(
		`INSERT INTO xp_journal (timestamp, source, amount, balance, detail)
		 VALUES (?, ?, ?, ?, ?)`,
		e.Timestamp.Unix(), string(e.Source), e.Amount, e.Balance, e.Detail,
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// JournalEntries returns the most recent journal rows, newest first.
func (s *Store) JournalEntries(limit int) ([]domain.JournalEntry, error) {
	rows, err := s.q.Query(
		`SELECT id, timestamp, source, amount, balance, detail
		 FROM xp_journal ORDER BY id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.JournalEntry
	for rows.Next() {
		var e domain.JournalEntry
		var ts int64
		if err := rows.Scan(&e.ID, &ts, &e.Source, &e.Amount, &e.Balance, &e.Detail); err != nil {
			return nil, err
		}
		e.Timestamp = time.Unix(ts, 0)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ─── Engine Events ──────────────────────────────────────────────────────────

// InsertEvent creates a new engine event.
func (s *Store) InsertEvent(e domain.Event) (int64, error) {
	result, err := s.q.Exec(
		`INSERT INTO events (kind, title, body, created_at, seen)
		 VALUES (?, ?, ?, ?, 0)`,
		string(e.Kind), e.Title, e.Body, e.CreatedAt.Unix(),
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// ListPendingEvents returns unseen events, newest first.
func (s *Store) ListPendingEvents(limit int) ([]domain.Event, error) {
	rows, err := s.q.Query(
		`SELECT id, kind, title, body, created_at, seen
		 FROM events WHERE seen = 0 ORDER BY created_at DESC, id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		var e domain.Event
		var createdAt int64
		if err := rows.Scan(&e.ID, &e.Kind, &e.Title, &e.Body, &createdAt, &e.Seen); err != nil {
			return nil, err
		}
		e.CreatedAt = time.Unix(createdAt, 0)
		events = append(events, e)
	}
	return events, rows.Err()
}

// MarkEventSeen marks an event as seen.
func (s *Store) MarkEventSeen(id int64) error {
	result, err := s.q.Exec(`UPDATE events SET seen = 1 WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}
