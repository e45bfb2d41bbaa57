package progress

import (
	"github.com/upward-labs/upward/internal/domain"
	"github.com/upward-labs/upward/internal/infra/sqlite"
)

// Feed exposes the engine event stream to the UI. The engine only emits
// events; rendering them is the client's concern.
type Feed struct {
	db *sqlite.DB
}

// NewFeed creates an event feed.
func NewFeed(db *sqlite.DB) *Feed {
	return &Feed{db: db}
}

// Pending returns unseen events, newest first.
func (f *Feed) Pending(limit int) ([]domain.Event, error) {
	if limit <= 0 {
		limit = 50
	}
	return f.db.ListPendingEvents(limit)
}

// MarkSeen acknowledges a single event.
func (f *Feed) MarkSeen(id int64) error {
	return f.db.MarkEventSeen(id)
}
