package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tilematch/backend/internal/api/request"
	"github.com/tilematch/backend/internal/api/response"
	"github.com/tilematch/backend/internal/model"
	"github.com/tilematch/backend/internal/services/achievement"
)

// AchievementHandler handles achievement endpoints
type AchievementHandler struct {
	achievementService *achievement.Service
}

// NewAchievementHandler creates a new achievement handler
func NewAchievementHandler(achievementService *achievement.Service) *AchievementHandler {
	return &AchievementHandler{
		achievementService: achievementService,
	}
}

// ReportProgress handles POST /api/v1/achievements/progress
func (h *AchievementHandler) ReportProgress(w http.ResponseWriter, r *http.Request) {
	var req request.AchievementProgressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.UserID == "" {
		WriteError(w, NewInvalidRequestError("userId is required"))
		return
	}
	if req.AchievementType == "" {
		WriteError(w, NewInvalidRequestError("achievementType is required"))
		return
	}
	if req.Name == "" {
		WriteError(w, NewInvalidRequestError("name is required"))
		return
	}
	if req.Progress == nil {
		WriteError(w, NewInvalidRequestError("progress is required"))
		return
	}

	a, unlocked, err := h.achievementService.ReportProgress(
		r.Context(),
		model.UserID(req.UserID),
		req.AchievementType,
		req.Name,
		req.Description,
		*req.Progress,
	)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AchievementReport{
		Achievement: response.AchievementFromModel(a),
		Unlocked:    unlocked,
	})
}

// Unlock handles POST /api/v1/achievements/unlock
func (h *AchievementHandler) Unlock(w http.ResponseWriter, r *http.Request) {
	var req request.AchievementUnlockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.UserID == "" {
		WriteError(w, NewInvalidRequestError("userId is required"))
		return
	}
	if req.AchievementType == "" {
		WriteError(w, NewInvalidRequestError("achievementType is required"))
		return
	}
	if req.Name == "" {
		WriteError(w, NewInvalidRequestError("name is required"))
		return
	}

	a, unlocked, err := h.achievementService.Unlock(
		r.Context(),
		model.UserID(req.UserID),
		req.AchievementType,
		req.Name,
		req.Description,
	)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AchievementReport{
		Achievement: response.AchievementFromModel(a),
		Unlocked:    unlocked,
	})
}

// List handles GET /api/v1/achievements/{user_id}
func (h *AchievementHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := model.UserID(mux.Vars(r)["user_id"])

	achievements, err := h.achievementService.ListForUser(r.Context(), userID)
	if err != nil {
		WriteError(w, err)
		return
	}

	out := make([]response.Achievement, len(achievements))
	for i, a := range achievements {
		out[i] = response.AchievementFromModel(a)
	}
	response.JSON(w, http.StatusOK, out)
}

// GetStats handles GET /api/v1/achievements/{user_id}/stats
func (h *AchievementHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	userID := model.UserID(mux.Vars(r)["user_id"])

	stats, err := h.achievementService.GetStats(r.Context(), userID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AchievementStatsFromService(stats))
}
