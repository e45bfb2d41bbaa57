package progress

import (
	"fmt"
	"strconv"
	"time"

	"github.com/upward-labs/upward/internal/domain"
	"github.com/upward-labs/upward/internal/infra/sqlite"
)

// XPPerLevel is the flat XP cost of each level.
const XPPerLevel = 500

// LevelForXP returns the level for a given XP amount.
// Level is always derived: floor(totalXP / 500) + 1, never stored.
func LevelForXP(xp int64) int {
	if xp < 0 {
		xp = 0
	}
	return int(xp/XPPerLevel) + 1
}

// TitleForLevel returns the title band for a level.
func TitleForLevel(level int) string {
	switch {
	case level <= 5:
		return "Newcomer"
	case level <= 10:
		return "Explorer"
	case level <= 20:
		return "Pathfinder"
	case level <= 35:
		return "Achiever"
	case level <= 50:
		return "Trailblazer"
	case level <= 75:
		return "Luminary"
	default:
		return "Summit"
	}
}

// XPToNextLevel returns XP remaining until the next level.
func XPToNextLevel(xp int64) int64 {
	if xp < 0 {
		xp = 0
	}
	return int64(LevelForXP(xp))*XPPerLevel - xp
}

// LevelProgress returns progress through the current level in [0,1].
func LevelProgress(xp int64) float64 {
	if xp < 0 {
		xp = 0
	}
	return float64(xp%XPPerLevel) / float64(XPPerLevel)
}

// Ledger manages total XP and its derived level state. Every award is
// recorded in the append-only XP journal with a running balance, so the
// total is auditable after the fact.
type Ledger struct {
	db *sqlite.DB
}

// NewLedger creates an XP ledger.
func NewLedger(db *sqlite.DB) *Ledger {
	return &Ledger{db: db}
}

// Current returns the user's level, title and XP.
func (l *Ledger) Current() (domain.LevelInfo, error) {
	xp, err := totalXP(l.db.Store)
	if err != nil {
		return domain.LevelInfo{}, err
	}
	level := LevelForXP(xp)
	return domain.LevelInfo{Level: level, Title: TitleForLevel(level), TotalXP: xp}, nil
}

// AddXP adds experience points and reports whether a level-up occurred.
// The XP write and its journal row commit together.
func (l *Ledger) AddXP(amount int64, source domain.XPSource, detail string, now time.Time) (domain.LevelChange, error) {
	var change domain.LevelChange
	err := l.db.WithTx(func(s *sqlite.Store) error {
		var err error
		change, err = creditXP(s, amount, source, detail, now)
		return err
	})
	return change, err
}

// Journal returns the most recent XP journal entries.
func (l *Ledger) Journal(limit int) ([]domain.JournalEntry, error) {
	return l.db.JournalEntries(limit)
}

// totalXP reads the stored XP total.
func totalXP(s *sqlite.Store) (int64, error) {
	raw, err := s.GetProgress("xp")
	if err != nil {
		return 0, fmt.Errorf("get xp: %w", err)
	}
	if raw == "" {
		return 0, nil
	}
	xp, _ := strconv.ParseInt(raw, 10, 64)
	return xp, nil
}

// creditXP applies a single XP award against a store (transaction-bound
// when called from the orchestrator's apply).
func creditXP(s *sqlite.Store, amount int64, source domain.XPSource, detail string, now time.Time) (domain.LevelChange, error) {
	var change domain.LevelChange
	if amount <= 0 {
		return change, fmt.Errorf("%w: got %d", domain.ErrNonPositiveXP, amount)
	}

	current, err := totalXP(s)
	if err != nil {
		return change, err
	}

	newXP := current + amount
	if err := s.SetProgress("xp", strconv.FormatInt(newXP, 10)); err != nil {
		return change, fmt.Errorf("save xp: %w", err)
	}

	if _, err := s.InsertJournalEntry(domain.JournalEntry{
		Timestamp: now,
		Source:    source,
		Amount:    amount,
		Balance:   newXP,
		Detail:    detail,
	}); err != nil {
		return change, fmt.Errorf("journal entry: %w", err)
	}

	change.OldLevel = LevelForXP(current)
	change.NewLevel = LevelForXP(newXP)
	change.LeveledUp = change.NewLevel > change.OldLevel
	return change, nil
}
