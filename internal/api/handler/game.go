package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/tilematch/backend/internal/api/request"
	"github.com/tilematch/backend/internal/api/response"
	"github.com/tilematch/backend/internal/model"
	"github.com/tilematch/backend/internal/services/ingest"
	"github.com/tilematch/backend/internal/services/multiplayer"
	"github.com/tilematch/backend/internal/services/progression"
)

// GameHandler handles game result submission and progress endpoints
type GameHandler struct {
	ingestFacade       *ingest.Facade
	progressionService *progression.Service
	multiplayerService *multiplayer.Service
}

// NewGameHandler creates a new game handler
func NewGameHandler(
	ingestFacade *ingest.Facade,
	progressionService *progression.Service,
	multiplayerService *multiplayer.Service,
) *GameHandler {
	return &GameHandler{
		ingestFacade:       ingestFacade,
		progressionService: progressionService,
		multiplayerService: multiplayerService,
	}
}

// SubmitLevelResult handles POST /api/v1/game/level-result
func (h *GameHandler) SubmitLevelResult(w http.ResponseWriter, r *http.Request) {
	var req request.LevelResultRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	outcome, err := h.ingestFacade.SubmitLevel(r.Context(), ingest.LevelSubmission{
		UserID:      req.UserID,
		LevelNumber: req.LevelNumber,
		Score:       req.Score,
		TimeTaken:   req.TimeTaken,
		Moves:       req.Moves,
		Theme:       req.Theme,
		Completed:   req.Completed,
		IsWin:       req.IsWin,
	})
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.LevelResult{
		Success:      outcome.Success,
		StarsEarned:  outcome.StarsEarned,
		IsNewBest:    outcome.IsNewBest,
		UnlockedNext: outcome.UnlockedNext,
	})
}

// SubmitArcadeResult handles POST /api/v1/game/arcade-result
func (h *GameHandler) SubmitArcadeResult(w http.ResponseWriter, r *http.Request) {
	var req request.ArcadeResultRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	outcome, err := h.ingestFacade.SubmitArcade(r.Context(), ingest.ArcadeSubmission{
		UserID:    req.UserID,
		SessionID: req.SessionID,
		Score:     req.Score,
		Time:      req.Time,
		Moves:     req.Moves,
		Bonus:     req.Bonus,
		Stars:     req.Stars,
		Theme:     req.Theme,
		GridSize:  req.GridSize,
	})
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ArcadeResult{
		Success:   outcome.Success,
		SessionID: string(outcome.SessionID),
		Score:     outcome.Score,
	})
}

// SubmitMultiplayerResult handles POST /api/v1/game/multiplayer-result
func (h *GameHandler) SubmitMultiplayerResult(w http.ResponseWriter, r *http.Request) {
	var req request.MultiplayerResultRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	outcome, err := h.ingestFacade.SubmitMultiplayer(r.Context(), ingest.MultiplayerSubmission{
		UserID:       req.UserID,
		Theme:        req.Theme,
		Player1Score: req.Player1Score,
		Player2Score: req.Player2Score,
		TimeTaken:    req.TimeTaken,
		TotalMoves:   req.TotalMoves,
		Timestamp:    req.Timestamp,
	})
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MultiplayerResult{
		GameID: string(outcome.GameID),
		Winner: string(outcome.Winner),
	})
}

// GetProgress handles GET /api/v1/game/progress/{user_id}
func (h *GameHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	userID := model.UserID(mux.Vars(r)["user_id"])

	summary, err := h.progressionService.GetProgress(r.Context(), userID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ProgressFromSummary(summary))
}

// GetSessions handles GET /api/v1/game/sessions/{user_id}
func (h *GameHandler) GetSessions(w http.ResponseWriter, r *http.Request) {
	userID := model.UserID(mux.Vars(r)["user_id"])
	limit := parseLimit(r, 20)

	sessions, err := h.progressionService.RecentSessions(r.Context(), userID, limit)
	if err != nil {
		WriteError(w, err)
		return
	}

	out := make([]response.ArcadeSession, len(sessions))
	for i, s := range sessions {
		out[i] = response.ArcadeSessionFromModel(s)
	}
	response.JSON(w, http.StatusOK, out)
}

// GetMultiplayerHistory handles GET /api/v1/game/multiplayer/{user_id}
func (h *GameHandler) GetMultiplayerHistory(w http.ResponseWriter, r *http.Request) {
	userID := model.UserID(mux.Vars(r)["user_id"])
	limit := parseLimit(r, 20)

	games, err := h.multiplayerService.History(r.Context(), userID, limit)
	if err != nil {
		WriteError(w, err)
		return
	}

	out := make([]response.MultiplayerGame, len(games))
	for i, g := range games {
		out[i] = response.MultiplayerGameFromModel(g)
	}
	response.JSON(w, http.StatusOK, out)
}

// parseLimit reads a limit query parameter, falling back to a default
func parseLimit(r *http.Request, def int) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return def
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return def
	}
	return limit
}
