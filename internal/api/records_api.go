package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/upward-labs/upward/internal/domain"
)

// ─── Goals & Actions ────────────────────────────────────────────────────────

type createGoalRequest struct {
	Title    string   `json:"title" validate:"required,min=1,max=200"`
	Category string   `json:"category" validate:"max=50"`
	Actions  []string `json:"actions" validate:"dive,min=1,max=200"`
}

// POST /api/goals
func (s *Server) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	var req createGoalRequest
	if err := decodeValid(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	goal, err := s.goals.CreateGoal(req.Title, req.Category, req.Actions, time.Now())
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, goal)
}

// GET /api/goals
func (s *Server) handleListGoals(w http.ResponseWriter, r *http.Request) {
	list, err := s.goals.List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"goals": list})
}

// GET /api/goals/{id}
func (s *Server) handleGetGoal(w http.ResponseWriter, r *http.Request) {
	goal, err := s.goals.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"goal":     goal,
		"progress": goal.Progress(),
	})
}

// DELETE /api/goals/{id}
func (s *Server) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	if err := s.goals.Delete(chi.URLParam(r, "id")); err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// GET /api/goals/{id}/actions
func (s *Server) handleListActions(w http.ResponseWriter, r *http.Request) {
	goalID := chi.URLParam(r, "id")
	if _, err := s.goals.Get(goalID); err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	actions, err := s.goals.Actions(goalID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"actions": actions})
}

type addActionRequest struct {
	Title string `json:"title" validate:"required,min=1,max=200"`
}

// POST /api/goals/{id}/actions
func (s *Server) handleAddAction(w http.ResponseWriter, r *http.Request) {
	var req addActionRequest
	if err := decodeValid(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	action, err := s.goals.AddAction(chi.URLParam(r, "id"), req.Title, time.Now())
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, action)
}

// POST /api/actions/{id}/complete
func (s *Server) handleCompleteAction(w http.ResponseWriter, r *http.Request) {
	res, err := s.goals.CompleteAction(chi.URLParam(r, "id"), time.Now())
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// ─── Wins ───────────────────────────────────────────────────────────────────

type logWinRequest struct {
	Description string `json:"description" validate:"required,min=1,max=500"`
	Size        string `json:"size" validate:"required"`
	Emotion     int    `json:"emotion" validate:"min=0,max=5"`
	GoalID      string `json:"goal_id"`
	Category    string `json:"category" validate:"max=50"`
}

// POST /api/wins
func (s *Server) handleLogWin(w http.ResponseWriter, r *http.Request) {
	var req logWinRequest
	if err := decodeValid(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	res, err := s.goals.LogWin(domain.Win{
		Description: req.Description,
		Size:        domain.WinSize(req.Size),
		Emotion:     req.Emotion,
		GoalID:      req.GoalID,
		Category:    req.Category,
	}, time.Now())
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

// GET /api/wins?limit=N
func (s *Server) handleListWins(w http.ResponseWriter, r *http.Request) {
	wins, err := s.goals.Wins(queryLimit(r, 50))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"wins": wins})
}

// ─── Challenges ─────────────────────────────────────────────────────────────

// GET /api/challenges/templates
func (s *Server) handleTemplates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"templates": s.challenges.Templates(),
	})
}

// GET /api/challenges/suggest?limit=N
func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	suggested, err := s.challenges.Suggest(queryLimit(r, 3))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"templates": suggested})
}

// GET /api/challenges
func (s *Server) handleActiveChallenges(w http.ResponseWriter, r *http.Request) {
	active, err := s.challenges.Active()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"challenges": active})
}

type acceptChallengeRequest struct {
	TemplateID string `json:"template_id" validate:"required"`
}

// POST /api/challenges
func (s *Server) handleAcceptChallenge(w http.ResponseWriter, r *http.Request) {
	var req acceptChallengeRequest
	if err := decodeValid(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	ch, err := s.challenges.Accept(req.TemplateID, time.Now())
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, ch)
}

// GET /api/challenges/{id}
func (s *Server) handleGetChallenge(w http.ResponseWriter, r *http.Request) {
	ch, err := s.challenges.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, ch)
}

type completeChallengeRequest struct {
	Notes        string `json:"notes" validate:"max=2000"`
	Emotion      int    `json:"emotion" validate:"min=0,max=5"`
	PhotoRef     string `json:"photo_ref" validate:"max=500"`
	VoiceMemoRef string `json:"voice_memo_ref" validate:"max=500"`
}

// POST /api/challenges/{id}/complete
func (s *Server) handleCompleteChallenge(w http.ResponseWriter, r *http.Request) {
	var req completeChallengeRequest
	if r.ContentLength > 0 {
		if err := decodeValid(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	var reflection *domain.Reflection
	if req != (completeChallengeRequest{}) {
		reflection = &domain.Reflection{
			Notes:        req.Notes,
			Emotion:      req.Emotion,
			PhotoRef:     req.PhotoRef,
			VoiceMemoRef: req.VoiceMemoRef,
		}
	}

	res, err := s.challenges.Complete(chi.URLParam(r, "id"), reflection, time.Now())
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// POST /api/challenges/{id}/abandon
func (s *Server) handleAbandonChallenge(w http.ResponseWriter, r *http.Request) {
	if err := s.challenges.Abandon(chi.URLParam(r, "id")); err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"abandoned": true})
}

// ─── Relationships & Interactions ───────────────────────────────────────────

type createRelationshipRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Category string `json:"category" validate:"required,oneof=friend family partner mentor colleague"`
}

// POST /api/relationships
func (s *Server) handleCreateRelationship(w http.ResponseWriter, r *http.Request) {
	var req createRelationshipRequest
	if err := decodeValid(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	rel, err := s.social.CreateRelationship(req.Name,
		domain.RelationshipCategory(req.Category), time.Now())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, rel)
}

// GET /api/relationships
func (s *Server) handleListRelationships(w http.ResponseWriter, r *http.Request) {
	rels, err := s.social.List(time.Now())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"relationships": rels})
}

// GET /api/relationships/{id}
func (s *Server) handleGetRelationship(w http.ResponseWriter, r *http.Request) {
	rel, err := s.social.Get(chi.URLParam(r, "id"), time.Now())
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, rel)
}

// GET /api/relationships/{id}/interactions
func (s *Server) handleListInteractions(w http.ResponseWriter, r *http.Request) {
	interactions, err := s.social.Interactions(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"interactions": interactions})
}

type logInteractionRequest struct {
	Type        string `json:"type" validate:"required,oneof=call message meetup gift favor"`
	InitiatedBy string `json:"initiated_by" validate:"required,oneof=me them"`
	Notes       string `json:"notes" validate:"max=1000"`
}

// POST /api/relationships/{id}/interactions
func (s *Server) handleLogInteraction(w http.ResponseWriter, r *http.Request) {
	var req logInteractionRequest
	if err := decodeValid(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	res, err := s.social.LogInteraction(domain.Interaction{
		RelationshipID: chi.URLParam(r, "id"),
		Type:           domain.InteractionType(req.Type),
		InitiatedBy:    domain.Initiator(req.InitiatedBy),
		Notes:          req.Notes,
	}, time.Now())
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, res)
}
