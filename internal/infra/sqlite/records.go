package sqlite

import (
	"database/sql"
	"time"

	"github.com/upward-labs/upward/internal/domain"
)

// ─── Goals ──────────────────────────────────────────────────────────────────

// InsertGoal creates a new goal.
func (s *Store) InsertGoal(g domain.Goal) error {
	_, err := s.q.Exec(
		`INSERT INTO goals (id, title, category, created_at) VALUES (?, ?, ?, ?)`,
		g.ID, g.Title, g.Category, g.CreatedAt.Unix(),
	)
	return err
}

// GetGoal retrieves a goal with its action counts.
func (s *Store) GetGoal(id string) (*domain.Goal, error) {
	row := s.q.QueryRow(
		`SELECT g.id, g.title, g.category, g.created_at,
		        COUNT(a.id), COALESCE(SUM(a.done), 0)
		 FROM goals g LEFT JOIN actions a ON a.goal_id = g.id
		 WHERE g.id = ? GROUP BY g.id`, id,
	)
	g, err := scanGoal(row)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, domain.ErrGoalNotFound
	}
	return g, nil
}

// ListGoals returns all goals with action counts, newest first.
func (s *Store) ListGoals() ([]domain.Goal, error) {
	rows, err := s.q.Query(
		`SELECT g.id, g.title, g.category, g.created_at,
		        COUNT(a.id), COALESCE(SUM(a.done), 0)
		 FROM goals g LEFT JOIN actions a ON a.goal_id = g.id
		 GROUP BY g.id ORDER BY g.created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var goals []domain.Goal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, *g)
	}
	return goals, rows.Err()
}

// DeleteGoal removes a goal. Actions cascade via the schema; wins keep
// their row but lose the goal link.
func (s *Store) DeleteGoal(id string) error {
	if _, err := s.q.Exec(`UPDATE wins SET goal_id = NULL WHERE goal_id = ?`, id); err != nil {
		return err
	}
	result, err := s.q.Exec(`DELETE FROM goals WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return domain.ErrGoalNotFound
	}
	return nil
}

// ─── Actions ────────────────────────────────────────────────────────────────

// InsertAction adds an action to a goal.
func (s *Store) InsertAction(a domain.Action) error {
	_, err := s.q.Exec(
		`INSERT INTO actions (id, goal_id, title, position, done, created_at)
		 VALUES (?, ?, ?, ?, 0, ?)`,
		a.ID, a.GoalID, a.Title, a.Position, a.CreatedAt.Unix(),
	)
	return err
}

// GetAction retrieves a single action.
func (s *Store) GetAction(id string) (*domain.Action, error) {
	row := s.q.QueryRow(
		`SELECT id, goal_id, title, position, done, created_at, completed_at
		 FROM actions WHERE id = ?`, id,
	)
	a, err := scanAction(row)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrActionNotFound
	}
	return a, nil
}

// ListActions returns a goal's actions in position order.
func (s *Store) ListActions(goalID string) ([]domain.Action, error) {
	rows, err := s.q.Query(
		`SELECT id, goal_id, title, position, done, created_at, completed_at
		 FROM actions WHERE goal_id = ? ORDER BY position ASC, created_at ASC`, goalID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var actions []domain.Action
	for rows.Next() {
		a, err := scanAction(rows)
		if err != nil {
			return nil, err
		}
		actions = append(actions, *a)
	}
	return actions, rows.Err()
}

// MarkActionDone marks an action complete at the given time.
func (s *Store) MarkActionDone(id string, at time.Time) error {
	result, err := s.q.Exec(
		`UPDATE actions SET done = 1, completed_at = ? WHERE id = ? AND done = 0`,
		at.Unix(), id,
	)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return domain.ErrActionDone
	}
	return nil
}

// CountCompletedActions returns the all-time completed action count.
func (s *Store) CountCompletedActions() (int, error) {
	var count int
	err := s.q.QueryRow(`SELECT COUNT(*) FROM actions WHERE done = 1`).Scan(&count)
	return count, err
}

// ─── Wins ───────────────────────────────────────────────────────────────────

// InsertWin records a win.
func (s *Store) InsertWin(w domain.Win) error {
	_, err := s.q.Exec(
		`INSERT INTO wins (id, description, size, emotion, goal_id, action_id, category, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		w.ID, w.Description, string(w.Size), w.Emotion,
		nullableStr(w.GoalID), nullableStr(w.ActionID), w.Category, w.CreatedAt.Unix(),
	)
	return err
}

// ListWins returns recent wins, newest first.
func (s *Store) ListWins(limit int) ([]domain.Win, error) {
	rows, err := s.q.Query(
		`SELECT id, description, size, emotion, goal_id, action_id, category, created_at
		 FROM wins ORDER BY created_at DESC, id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var wins []domain.Win
	for rows.Next() {
		w, err := scanWin(rows)
		if err != nil {
			return nil, err
		}
		wins = append(wins, *w)
	}
	return wins, rows.Err()
}

// CountWins returns the all-time win count.
func (s *Store) CountWins() (int, error) {
	var count int
	err := s.q.QueryRow(`SELECT COUNT(*) FROM wins`).Scan(&count)
	return count, err
}

// HasWinAtLeast reports whether any win of the given sizes exists.
func (s *Store) HasWinAtLeast(sizes ...domain.WinSize) (bool, error) {
	if len(sizes) == 0 {
		return false, nil
	}
	query := `SELECT COUNT(*) FROM wins WHERE size IN (?` // first placeholder
	args := []any{string(sizes[0])}
	for _, sz := range sizes[1:] {
		query += `, ?`
		args = append(args, string(sz))
	}
	query += `)`

	var count int
	err := s.q.QueryRow(query, args...).Scan(&count)
	return count > 0, err
}

// ─── Scanners ───────────────────────────────────────────────────────────────

func scanGoal(sc scanner) (*domain.Goal, error) {
	var g domain.Goal
	var createdAt int64
	err := sc.Scan(&g.ID, &g.Title, &g.Category, &createdAt,
		&g.TotalActions, &g.CompletedActions)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	g.CreatedAt = time.Unix(createdAt, 0)
	return &g, nil
}

func scanAction(sc scanner) (*domain.Action, error) {
	var a domain.Action
	var createdAt int64
	var completedAt sql.NullInt64
	err := sc.Scan(&a.ID, &a.GoalID, &a.Title, &a.Position, &a.Done,
		&createdAt, &completedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	a.CreatedAt = time.Unix(createdAt, 0)
	if completedAt.Valid {
		a.CompletedAt = time.Unix(completedAt.Int64, 0)
	}
	return &a, nil
}

func scanWin(sc scanner) (*domain.Win, error) {
	var w domain.Win
	var createdAt int64
	var goalID, actionID sql.NullString
	err := sc.Scan(&w.ID, &w.Description, &w.Size, &w.Emotion,
		&goalID, &actionID, &w.Category, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	w.GoalID = goalID.String
	w.ActionID = actionID.String
	w.CreatedAt = time.Unix(createdAt, 0)
	return &w, nil
}

func nullableStr(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
