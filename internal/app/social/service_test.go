package social_test

import (
	"testing"
	"time"

	"github.com/upward-labs/upward/internal/app/progress"
	"github.com/upward-labs/upward/internal/app/social"
	"github.com/upward-labs/upward/internal/domain"
	"github.com/upward-labs/upward/internal/infra/sqlite"
)

func testService(t *testing.T) (*social.Service, *sqlite.DB) {
	t.Helper()
	dir := t.TempDir()
	db, err := sqlite.Open(dir)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	orch := progress.NewOrchestrator(db, time.UTC)
	return social.NewService(db, orch), db
}

func TestCreateRelationship_RejectsUnknownCategory(t *testing.T) {
	svc, _ := testService(t)

	if _, err := svc.CreateRelationship("Maya", "nemesis", time.Now()); err == nil {
		t.Fatal("expected error for unknown category")
	}
}

func TestLogInteraction_RejectsUnknownTypeAndInitiator(t *testing.T) {
	svc, _ := testService(t)
	now := time.Now()

	rel, err := svc.CreateRelationship("Maya", domain.RelFriend, now)
	if err != nil {
		t.Fatalf("CreateRelationship: %v", err)
	}

	_, err = svc.LogInteraction(domain.Interaction{
		RelationshipID: rel.ID, Type: "telepathy", InitiatedBy: domain.InitiatedByMe,
	}, now)
	if err == nil {
		t.Error("expected error for unknown interaction type")
	}

	_, err = svc.LogInteraction(domain.Interaction{
		RelationshipID: rel.ID, Type: domain.InteractionCall, InitiatedBy: "ghost",
	}, now)
	if err == nil {
		t.Error("expected error for unknown initiator")
	}
}

func TestRelationshipHealth(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		last time.Time
		want domain.HealthStatus
	}{
		{"never contacted", time.Time{}, domain.HealthNew},
		{"today", now, domain.HealthHealthy},
		{"two weeks ago", now.AddDate(0, 0, -14), domain.HealthHealthy},
		{"three weeks ago", now.AddDate(0, 0, -21), domain.HealthCooling},
		{"45 days ago", now.AddDate(0, 0, -45), domain.HealthCooling},
		{"two months ago", now.AddDate(0, -2, 0), domain.HealthDormant},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := domain.Relationship{LastInteractionAt: tt.last}
			if got := r.Health(now); got != tt.want {
				t.Errorf("Health() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestListIncludesHealthView(t *testing.T) {
	svc, _ := testService(t)
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	if _, err := svc.CreateRelationship("Maya", domain.RelFriend, now); err != nil {
		t.Fatalf("CreateRelationship: %v", err)
	}

	views, err := svc.List(now)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("got %d relationships, want 1", len(views))
	}
	if views[0].Health != domain.HealthNew {
		t.Errorf("fresh relationship health = %q, want %q", views[0].Health, domain.HealthNew)
	}
}
