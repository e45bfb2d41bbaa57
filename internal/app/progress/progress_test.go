package progress_test

import (
	"testing"
	"time"

	"github.com/upward-labs/upward/internal/app/progress"
	"github.com/upward-labs/upward/internal/domain"
	"github.com/upward-labs/upward/internal/infra/sqlite"
)

// testDB creates a temporary SQLite database for testing.
func testDB(t *testing.T) *sqlite.DB {
	t.Helper()
	dir := t.TempDir()
	db, err := sqlite.Open(dir)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// ═══════════════════════════════════════════════════════════════════════════
// Level Math Tests
// ═══════════════════════════════════════════════════════════════════════════

func TestLevelForXP(t *testing.T) {
	tests := []struct {
		xp   int64
		want int
	}{
		{0, 1},
		{499, 1},
		{500, 2},
		{999, 2},
		{1000, 3},
		{4999, 10},
		{5000, 11},
		{-50, 1}, // negative clamps
	}
	for _, tt := range tests {
		if got := progress.LevelForXP(tt.xp); got != tt.want {
			t.Errorf("LevelForXP(%d) = %d, want %d", tt.xp, got, tt.want)
		}
	}
}

func TestTitleForLevel(t *testing.T) {
	tests := []struct {
		level int
		want  string
	}{
		{1, "Newcomer"},
		{5, "Newcomer"},
		{6, "Explorer"},
		{10, "Explorer"},
		{11, "Pathfinder"},
		{20, "Pathfinder"},
		{21, "Achiever"},
		{35, "Achiever"},
		{36, "Trailblazer"},
		{50, "Trailblazer"},
		{51, "Luminary"},
		{75, "Luminary"},
		{76, "Summit"},
		{200, "Summit"},
	}
	for _, tt := range tests {
		if got := progress.TitleForLevel(tt.level); got != tt.want {
			t.Errorf("TitleForLevel(%d) = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestXPToNextLevel(t *testing.T) {
	if got := progress.XPToNextLevel(0); got != 500 {
		t.Errorf("XPToNextLevel(0) = %d, want 500", got)
	}
	if got := progress.XPToNextLevel(450); got != 50 {
		t.Errorf("XPToNextLevel(450) = %d, want 50", got)
	}
	if got := progress.XPToNextLevel(500); got != 500 {
		t.Errorf("XPToNextLevel(500) = %d, want 500", got)
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// XP Ledger Tests
// ═══════════════════════════════════════════════════════════════════════════

func TestLedger_AddXP(t *testing.T) {
	ledger := progress.NewLedger(testDB(t))
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	change, err := ledger.AddXP(100, domain.XPActionCompleted, "test", now)
	if err != nil {
		t.Fatalf("AddXP: %v", err)
	}
	if change.LeveledUp {
		t.Error("100 XP should not level up from zero")
	}

	info, err := ledger.Current()
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if info.TotalXP != 100 {
		t.Errorf("TotalXP = %d, want 100", info.TotalXP)
	}
	if info.Level != 1 || info.Title != "Newcomer" {
		t.Errorf("got level %d %q, want 1 Newcomer", info.Level, info.Title)
	}
}

func TestLedger_LevelUp(t *testing.T) {
	ledger := progress.NewLedger(testDB(t))
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	if _, err := ledger.AddXP(450, domain.XPWinLogged, "seed", now); err != nil {
		t.Fatalf("AddXP: %v", err)
	}
	change, err := ledger.AddXP(100, domain.XPWinLogged, "cross", now)
	if err != nil {
		t.Fatalf("AddXP: %v", err)
	}
	if !change.LeveledUp {
		t.Error("crossing 500 XP should level up")
	}
	if change.OldLevel != 1 || change.NewLevel != 2 {
		t.Errorf("got %d→%d, want 1→2", change.OldLevel, change.NewLevel)
	}
}

func TestLedger_RejectsNonPositiveXP(t *testing.T) {
	ledger := progress.NewLedger(testDB(t))
	now := time.Now()

	if _, err := ledger.AddXP(0, domain.XPActionCompleted, "zero", now); err == nil {
		t.Error("AddXP(0) should fail")
	}
	if _, err := ledger.AddXP(-10, domain.XPActionCompleted, "neg", now); err == nil {
		t.Error("AddXP(-10) should fail")
	}
}

func TestLedger_JournalBalances(t *testing.T) {
	ledger := progress.NewLedger(testDB(t))
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	ledger.AddXP(25, domain.XPActionCompleted, "a", now)
	ledger.AddXP(100, domain.XPBadgeUnlocked, "b", now.Add(time.Minute))
	ledger.AddXP(50, domain.XPMilestone, "c", now.Add(2*time.Minute))

	entries, err := ledger.Journal(10)
	if err != nil {
		t.Fatalf("Journal: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	// Newest first: running balance 175, 125, 25
	wantBalances := []int64{175, 125, 25}
	for i, want := range wantBalances {
		if entries[i].Balance != want {
			t.Errorf("entry %d balance = %d, want %d", i, entries[i].Balance, want)
		}
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Streak Tests
// ═══════════════════════════════════════════════════════════════════════════

func TestStreak_FirstActivity(t *testing.T) {
	tracker := progress.NewTracker(testDB(t), time.UTC)

	day := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tr, err := tracker.RecordActivity(day)
	if err != nil {
		t.Fatalf("RecordActivity: %v", err)
	}
	if !tr.Extended || tr.Current != 1 {
		t.Errorf("first activity: got %+v, want extended with current 1", tr)
	}

	streak, _ := tracker.Current()
	if streak.CurrentDays != 1 || streak.LongestDays != 1 {
		t.Errorf("streak = %+v, want 1/1", streak)
	}
}

func TestStreak_ConsecutiveDays(t *testing.T) {
	tracker := progress.NewTracker(testDB(t), time.UTC)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		if _, err := tracker.RecordActivity(base.AddDate(0, 0, i)); err != nil {
			t.Fatalf("day %d: %v", i, err)
		}
	}

	streak, _ := tracker.Current()
	if streak.CurrentDays != 5 {
		t.Errorf("CurrentDays = %d, want 5", streak.CurrentDays)
	}
}

func TestStreak_SameDayIdempotent(t *testing.T) {
	tracker := progress.NewTracker(testDB(t), time.UTC)

	day := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	tracker.RecordActivity(day)
	tr, _ := tracker.RecordActivity(day.Add(3 * time.Hour))
	if tr.Extended {
		t.Error("same-day activity should not extend the streak")
	}
	if tr.Current != 1 {
		t.Errorf("Current = %d, want 1", tr.Current)
	}
}

func TestStreak_GapResets(t *testing.T) {
	tracker := progress.NewTracker(testDB(t), time.UTC)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tracker.RecordActivity(base)
	tracker.RecordActivity(base.AddDate(0, 0, 1))
	tracker.RecordActivity(base.AddDate(0, 0, 2))

	// Two-day gap breaks the streak
	tr, err := tracker.RecordActivity(base.AddDate(0, 0, 5))
	if err != nil {
		t.Fatalf("RecordActivity: %v", err)
	}
	if !tr.Reset {
		t.Error("gap of 2+ days should reset")
	}
	if tr.Current != 1 {
		t.Errorf("Current = %d, want 1 after reset", tr.Current)
	}

	streak, _ := tracker.Current()
	if streak.LongestDays != 3 {
		t.Errorf("LongestDays = %d, want 3 preserved across reset", streak.LongestDays)
	}
}

func TestStreak_MidnightBoundary(t *testing.T) {
	tracker := progress.NewTracker(testDB(t), time.UTC)

	// 23:59 and 00:01 the next day are consecutive days
	tracker.RecordActivity(time.Date(2026, 3, 1, 23, 59, 0, 0, time.UTC))
	tr, _ := tracker.RecordActivity(time.Date(2026, 3, 2, 0, 1, 0, 0, time.UTC))
	if !tr.Extended || tr.Current != 2 {
		t.Errorf("crossing midnight: got %+v, want extended to 2", tr)
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Milestone Tests
// ═══════════════════════════════════════════════════════════════════════════

func TestCheckMilestone_SingleCrossing(t *testing.T) {
	tests := []struct {
		prev, cur float64
		want      domain.Milestone
		found     bool
	}{
		{0.20, 0.25, domain.MilestoneQuarter, true},
		{0.25, 0.30, "", false}, // already at threshold, no crossing
		{0.40, 0.50, domain.MilestoneHalf, true},
		{0.70, 0.75, domain.MilestoneThreeQuarter, true},
		{0.90, 1.00, domain.MilestoneComplete, true},
		{0.50, 0.50, "", false},
		{0.60, 0.40, "", false}, // progress moved backwards
	}
	for _, tt := range tests {
		got, found := progress.CheckMilestone(tt.prev, tt.cur)
		if found != tt.found || got != tt.want {
			t.Errorf("CheckMilestone(%.2f, %.2f) = %q/%t, want %q/%t",
				tt.prev, tt.cur, got, found, tt.want, tt.found)
		}
	}
}

func TestCheckMilestone_JumpReportsHighestOnly(t *testing.T) {
	// One update crossing several thresholds fires only the top one
	got, found := progress.CheckMilestone(0, 1)
	if !found || got != domain.MilestoneComplete {
		t.Errorf("CheckMilestone(0, 1) = %q, want complete", got)
	}

	got, found = progress.CheckMilestone(0.1, 0.8)
	if !found || got != domain.MilestoneThreeQuarter {
		t.Errorf("CheckMilestone(0.1, 0.8) = %q, want three_quarter", got)
	}
}

func TestCheckMilestone_ClampsInputs(t *testing.T) {
	got, found := progress.CheckMilestone(-0.5, 1.7)
	if !found || got != domain.MilestoneComplete {
		t.Errorf("CheckMilestone(-0.5, 1.7) = %q/%t, want complete/true", got, found)
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Badge Catalog Tests
// ═══════════════════════════════════════════════════════════════════════════

func TestCatalog_UniqueIDs(t *testing.T) {
	seen := make(map[string]bool)
	for _, b := range progress.Catalog() {
		if seen[b.ID] {
			t.Errorf("duplicate badge id %q", b.ID)
		}
		seen[b.ID] = true
		if b.Predicate == nil {
			t.Errorf("badge %q has no predicate", b.ID)
		}
		if b.RewardXP <= 0 {
			t.Errorf("badge %q has non-positive reward", b.ID)
		}
	}
}

func TestBadgeByID(t *testing.T) {
	b, err := progress.BadgeByID("firstStep")
	if err != nil {
		t.Fatalf("BadgeByID(firstStep): %v", err)
	}
	if b.RewardXP != 100 {
		t.Errorf("firstStep reward = %d, want 100", b.RewardXP)
	}
	if _, err := progress.BadgeByID("noSuchBadge"); err == nil {
		t.Error("unknown badge should error")
	}
}

func TestBadgePredicates(t *testing.T) {
	check := func(id string, snap domain.Snapshot, want bool) {
		t.Helper()
		b, err := progress.BadgeByID(id)
		if err != nil {
			t.Fatalf("BadgeByID(%s): %v", id, err)
		}
		if got := b.Predicate(snap); got != want {
			t.Errorf("%s predicate = %t, want %t (snap %+v)", id, got, want, snap)
		}
	}

	check("firstStep", domain.Snapshot{TotalActions: 1, CompletedHour: 12}, true)
	check("firstStep", domain.Snapshot{TotalActions: 0, CompletedHour: 12}, false)
	check("earlyBird", domain.Snapshot{TotalActions: 1, CompletedHour: 6}, true)
	check("earlyBird", domain.Snapshot{TotalActions: 1, CompletedHour: 7}, false)
	check("nightOwl", domain.Snapshot{TotalActions: 1, CompletedHour: 22}, true)
	check("nightOwl", domain.Snapshot{TotalActions: 1, CompletedHour: 21}, false)
	check("weekWarrior", domain.Snapshot{CurrentStreak: 7}, true)
	check("weekWarrior", domain.Snapshot{CurrentStreak: 6}, false)
	check("bigLeague", domain.Snapshot{HasBigWin: true}, true)
	check("mindsetExplorer", domain.Snapshot{
		ChallengesByCategory: map[domain.ChallengeCategory]int{domain.CatMindset: 3},
	}, true)
	check("mindsetExplorer", domain.Snapshot{
		ChallengesByCategory: map[domain.ChallengeCategory]int{domain.CatMindset: 2},
	}, false)
	check("circleKeeper", domain.Snapshot{HealthyRelationships: 5}, true)
	check("firstReachOut", domain.Snapshot{FirstReachOut: true}, true)
}

// ═══════════════════════════════════════════════════════════════════════════
// Event Feed Tests
// ═══════════════════════════════════════════════════════════════════════════

func TestFeed_PendingAndMarkSeen(t *testing.T) {
	db := testDB(t)
	feed := progress.NewFeed(db)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	id, err := db.InsertEvent(domain.Event{
		Kind: domain.EventBadgeUnlocked, Title: "First Step", CreatedAt: now,
	})
	if err != nil {
		t.Fatalf("InsertEvent: %v", err)
	}

	pending, err := feed.Pending(10)
	if err != nil {
		t.Fatalf("Pending: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("got %d pending, want 1", len(pending))
	}

	if err := feed.MarkSeen(id); err != nil {
		t.Fatalf("MarkSeen: %v", err)
	}
	pending, _ = feed.Pending(10)
	if len(pending) != 0 {
		t.Errorf("got %d pending after MarkSeen, want 0", len(pending))
	}

	if err := feed.MarkSeen(9999); err == nil {
		t.Error("MarkSeen on unknown id should error")
	}
}
