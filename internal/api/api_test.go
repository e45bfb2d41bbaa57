package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/upward-labs/upward/internal/api"
	"github.com/upward-labs/upward/internal/app/challenge"
	"github.com/upward-labs/upward/internal/app/goals"
	"github.com/upward-labs/upward/internal/app/progress"
	"github.com/upward-labs/upward/internal/app/social"
	"github.com/upward-labs/upward/internal/infra/sqlite"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	dir := t.TempDir()
	db, err := sqlite.Open(dir)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	orch := progress.NewOrchestrator(db, time.UTC)
	srv := api.NewServer(api.Services{
		Ledger:     progress.NewLedger(db),
		Streaks:    progress.NewTracker(db, time.UTC),
		Orch:       orch,
		Feed:       progress.NewFeed(db),
		Goals:      goals.NewService(db, orch),
		Challenges: challenge.NewService(db, orch, time.UTC),
		Social:     social.NewService(db, orch),
	})
	return srv.Handler()
}

// do issues a request against the handler and decodes the JSON response.
func do(t *testing.T, h http.Handler, method, path string, body any) (int, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var out map[string]any
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
			t.Fatalf("decode response %q: %v", rec.Body.String(), err)
		}
	}
	return rec.Code, out
}

// ═══════════════════════════════════════════════════════════════════════════
// Basics
// ═══════════════════════════════════════════════════════════════════════════

func TestHealthAndVersion(t *testing.T) {
	h := newTestHandler(t)

	code, body := do(t, h, "GET", "/health", nil)
	if code != http.StatusOK || body["status"] != "ok" {
		t.Errorf("health = %d %v", code, body)
	}

	code, body = do(t, h, "GET", "/api/version", nil)
	if code != http.StatusOK || body["version"] == "" {
		t.Errorf("version = %d %v", code, body)
	}
}

func TestLevel_FreshUser(t *testing.T) {
	h := newTestHandler(t)

	code, body := do(t, h, "GET", "/api/progress/level", nil)
	if code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if body["level"].(float64) != 1 || body["title"] != "Newcomer" {
		t.Errorf("fresh user level = %v %v", body["level"], body["title"])
	}
	if body["total_xp"].(float64) != 0 {
		t.Errorf("total_xp = %v, want 0", body["total_xp"])
	}
	if body["xp_to_next_level"].(float64) != 500 {
		t.Errorf("xp_to_next_level = %v, want 500", body["xp_to_next_level"])
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Goals & actions
// ═══════════════════════════════════════════════════════════════════════════

func TestGoalLifecycle(t *testing.T) {
	h := newTestHandler(t)

	code, goal := do(t, h, "POST", "/api/goals", map[string]any{
		"title":    "Run a 10k",
		"category": "health",
		"actions":  []string{"Buy shoes", "First training run"},
	})
	if code != http.StatusCreated {
		t.Fatalf("create goal = %d %v", code, goal)
	}
	goalID := goal["id"].(string)

	code, body := do(t, h, "GET", "/api/goals/"+goalID, nil)
	if code != http.StatusOK {
		t.Fatalf("get goal = %d", code)
	}
	if body["progress"].(float64) != 0 {
		t.Errorf("fresh goal progress = %v, want 0", body["progress"])
	}

	code, body = do(t, h, "GET", "/api/goals/"+goalID+"/actions", nil)
	if code != http.StatusOK {
		t.Fatalf("list actions = %d", code)
	}
	actions := body["actions"].([]any)
	if len(actions) != 2 {
		t.Fatalf("got %d actions, want 2", len(actions))
	}

	// Completing an action awards XP through the full reward sequence.
	actionID := actions[0].(map[string]any)["id"].(string)
	code, res := do(t, h, "POST", "/api/actions/"+actionID+"/complete", nil)
	if code != http.StatusOK {
		t.Fatalf("complete action = %d %v", code, res)
	}
	if res["xp_awarded"].(float64) == 0 {
		t.Error("completion awarded no XP")
	}

	// Second completion conflicts.
	code, _ = do(t, h, "POST", "/api/actions/"+actionID+"/complete", nil)
	if code != http.StatusConflict {
		t.Errorf("double complete = %d, want 409", code)
	}
}

func TestCreateGoal_ValidationError(t *testing.T) {
	h := newTestHandler(t)

	code, _ := do(t, h, "POST", "/api/goals", map[string]any{"category": "health"})
	if code != http.StatusBadRequest {
		t.Errorf("missing title = %d, want 400", code)
	}
}

func TestGetGoal_NotFound(t *testing.T) {
	h := newTestHandler(t)

	code, _ := do(t, h, "GET", "/api/goals/nope", nil)
	if code != http.StatusNotFound {
		t.Errorf("unknown goal = %d, want 404", code)
	}
}

func TestDeleteGoal(t *testing.T) {
	h := newTestHandler(t)

	_, goal := do(t, h, "POST", "/api/goals", map[string]any{"title": "Temp"})
	goalID := goal["id"].(string)

	code, body := do(t, h, "DELETE", "/api/goals/"+goalID, nil)
	if code != http.StatusOK || body["deleted"] != true {
		t.Fatalf("delete = %d %v", code, body)
	}
	if code, _ := do(t, h, "GET", "/api/goals/"+goalID, nil); code != http.StatusNotFound {
		t.Errorf("deleted goal still readable (%d)", code)
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Wins
// ═══════════════════════════════════════════════════════════════════════════

func TestLogWin(t *testing.T) {
	h := newTestHandler(t)

	code, res := do(t, h, "POST", "/api/wins", map[string]any{
		"description": "Gave a talk at the meetup",
		"size":        "big",
		"emotion":     5,
	})
	if code != http.StatusCreated {
		t.Fatalf("log win = %d %v", code, res)
	}
	if res["xp_awarded"].(float64) == 0 {
		t.Error("first big win should unlock badges worth XP")
	}

	code, body := do(t, h, "GET", "/api/wins", nil)
	if code != http.StatusOK || len(body["wins"].([]any)) != 1 {
		t.Errorf("list wins = %d %v", code, body)
	}
}

func TestLogWin_InvalidSize(t *testing.T) {
	h := newTestHandler(t)

	code, _ := do(t, h, "POST", "/api/wins", map[string]any{
		"description": "???",
		"size":        "gigantic",
	})
	if code != http.StatusBadRequest {
		t.Errorf("invalid size = %d, want 400", code)
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Challenges
// ═══════════════════════════════════════════════════════════════════════════

func TestChallengeLifecycle(t *testing.T) {
	h := newTestHandler(t)

	code, body := do(t, h, "GET", "/api/challenges/templates", nil)
	if code != http.StatusOK || len(body["templates"].([]any)) == 0 {
		t.Fatalf("templates = %d %v", code, body)
	}

	code, ch := do(t, h, "POST", "/api/challenges", map[string]any{"template_id": "health-walk"})
	if code != http.StatusCreated {
		t.Fatalf("accept = %d %v", code, ch)
	}
	chID := ch["id"].(string)

	code, body = do(t, h, "GET", "/api/challenges", nil)
	if code != http.StatusOK || len(body["challenges"].([]any)) != 1 {
		t.Fatalf("active = %d %v", code, body)
	}

	code, res := do(t, h, "POST", "/api/challenges/"+chID+"/complete", map[string]any{
		"notes":   "felt great",
		"emotion": 4,
	})
	if code != http.StatusOK {
		t.Fatalf("complete = %d %v", code, res)
	}
	if res["xp_awarded"].(float64) == 0 {
		t.Error("completion awarded no XP")
	}

	// Terminal: completing twice conflicts.
	code, _ = do(t, h, "POST", "/api/challenges/"+chID+"/complete", nil)
	if code != http.StatusConflict {
		t.Errorf("double complete = %d, want 409", code)
	}
}

func TestAcceptChallenge_UnknownTemplate(t *testing.T) {
	h := newTestHandler(t)

	code, _ := do(t, h, "POST", "/api/challenges", map[string]any{"template_id": "nope"})
	if code != http.StatusNotFound {
		t.Errorf("unknown template = %d, want 404", code)
	}
}

func TestAbandonChallenge(t *testing.T) {
	h := newTestHandler(t)

	_, ch := do(t, h, "POST", "/api/challenges", map[string]any{"template_id": "health-walk"})
	chID := ch["id"].(string)

	code, body := do(t, h, "POST", "/api/challenges/"+chID+"/abandon", nil)
	if code != http.StatusOK || body["abandoned"] != true {
		t.Fatalf("abandon = %d %v", code, body)
	}
	code, _ = do(t, h, "POST", "/api/challenges/"+chID+"/complete", nil)
	if code != http.StatusConflict {
		t.Errorf("complete after abandon = %d, want 409", code)
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Relationships & interactions
// ═══════════════════════════════════════════════════════════════════════════

func TestRelationshipAndInteraction(t *testing.T) {
	h := newTestHandler(t)

	code, rel := do(t, h, "POST", "/api/relationships", map[string]any{
		"name":     "Maya",
		"category": "friend",
	})
	if code != http.StatusCreated {
		t.Fatalf("create relationship = %d %v", code, rel)
	}
	relID := rel["id"].(string)

	code, res := do(t, h, "POST", "/api/relationships/"+relID+"/interactions", map[string]any{
		"type":         "call",
		"initiated_by": "me",
		"notes":        "caught up after the move",
	})
	if code != http.StatusCreated {
		t.Fatalf("log interaction = %d %v", code, res)
	}
	if res["xp_awarded"].(float64) == 0 {
		t.Error("interaction awarded no XP")
	}

	code, body := do(t, h, "GET", "/api/relationships/"+relID+"/interactions", nil)
	if code != http.StatusOK || len(body["interactions"].([]any)) != 1 {
		t.Errorf("list interactions = %d %v", code, body)
	}
}

func TestCreateRelationship_InvalidCategory(t *testing.T) {
	h := newTestHandler(t)

	code, _ := do(t, h, "POST", "/api/relationships", map[string]any{
		"name":     "Maya",
		"category": "nemesis",
	})
	if code != http.StatusBadRequest {
		t.Errorf("invalid category = %d, want 400", code)
	}
}

func TestLogInteraction_UnknownRelationship(t *testing.T) {
	h := newTestHandler(t)

	code, _ := do(t, h, "POST", "/api/relationships/nope/interactions", map[string]any{
		"type":         "call",
		"initiated_by": "me",
	})
	if code != http.StatusNotFound {
		t.Errorf("unknown relationship = %d, want 404", code)
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Progress surface
// ═══════════════════════════════════════════════════════════════════════════

func TestSummaryReflectsActivity(t *testing.T) {
	h := newTestHandler(t)

	_, goal := do(t, h, "POST", "/api/goals", map[string]any{
		"title":   "Read more",
		"actions": []string{"Pick a book"},
	})
	_, body := do(t, h, "GET", "/api/goals/"+goal["id"].(string)+"/actions", nil)
	actionID := body["actions"].([]any)[0].(map[string]any)["id"].(string)
	do(t, h, "POST", "/api/actions/"+actionID+"/complete", nil)

	code, sum := do(t, h, "GET", "/api/progress/summary", nil)
	if code != http.StatusOK {
		t.Fatalf("summary = %d", code)
	}
	if sum["total_xp"].(float64) == 0 {
		t.Error("summary shows no XP after a completed action")
	}
	if sum["badges_earned"].(float64) == 0 {
		t.Error("summary shows no badges after first action")
	}
	streak := sum["streak"].(map[string]any)
	if streak["current_days"].(float64) != 1 {
		t.Errorf("streak = %v, want 1", streak["current_days"])
	}
}

func TestEventsFeed(t *testing.T) {
	h := newTestHandler(t)

	_, goal := do(t, h, "POST", "/api/goals", map[string]any{
		"title":   "Stretch",
		"actions": []string{"Morning stretch"},
	})
	_, body := do(t, h, "GET", "/api/goals/"+goal["id"].(string)+"/actions", nil)
	actionID := body["actions"].([]any)[0].(map[string]any)["id"].(string)
	do(t, h, "POST", "/api/actions/"+actionID+"/complete", nil)

	code, body := do(t, h, "GET", "/api/progress/events", nil)
	if code != http.StatusOK {
		t.Fatalf("events = %d", code)
	}
	events := body["events"].([]any)
	if len(events) == 0 {
		t.Fatal("no pending events after first completion")
	}

	id := events[0].(map[string]any)["id"].(float64)
	code, seen := do(t, h, "POST", fmt.Sprintf("/api/progress/events/%d/seen", int64(id)), nil)
	if code != http.StatusOK || seen["seen"] != true {
		t.Fatalf("mark seen = %d %v", code, seen)
	}

	code, _ = do(t, h, "POST", "/api/progress/events/abc/seen", nil)
	if code != http.StatusBadRequest {
		t.Errorf("bad event id = %d, want 400", code)
	}
}

func TestBadgeEndpoints(t *testing.T) {
	h := newTestHandler(t)

	code, body := do(t, h, "GET", "/api/progress/badges/catalog", nil)
	if code != http.StatusOK || len(body["badges"].([]any)) == 0 {
		t.Fatalf("catalog = %d %v", code, body)
	}
	total := len(body["badges"].([]any))

	code, body = do(t, h, "GET", "/api/progress/badges", nil)
	if code != http.StatusOK {
		t.Fatalf("badges = %d", code)
	}
	if int(body["total"].(float64)) != total {
		t.Errorf("badge total = %v, want %d", body["total"], total)
	}
}
