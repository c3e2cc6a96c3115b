package handler

import (
	"net/http"
	"strings"

	"github.com/tilematch/backend/internal/api/response"
	"github.com/tilematch/backend/internal/services/leaderboard"
)

// LeaderboardHandler handles leaderboard endpoints
type LeaderboardHandler struct {
	leaderboardService *leaderboard.Service
}

// NewLeaderboardHandler creates a new leaderboard handler
func NewLeaderboardHandler(leaderboardService *leaderboard.Service) *LeaderboardHandler {
	return &LeaderboardHandler{
		leaderboardService: leaderboardService,
	}
}

// Get handles GET /api/v1/leaderboard
func (h *LeaderboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	// Mode defaults to arcade; anything that isn't ARCADE reads the
	// adventure board, so the endpoint never fails on the mode parameter.
	mode := leaderboard.ModeArcade
	if raw := r.URL.Query().Get("mode"); raw != "" {
		if strings.ToUpper(raw) != string(leaderboard.ModeArcade) {
			mode = leaderboard.ModeAdventure
		}
	}

	entries, err := h.leaderboardService.Get(r.Context(), mode, parseLimit(r, leaderboard.DefaultLimit))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.LeaderboardFromEntries(mode, entries))
}
