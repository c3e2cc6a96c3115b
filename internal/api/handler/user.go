package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tilematch/backend/internal/api/middleware"
	"github.com/tilematch/backend/internal/api/request"
	"github.com/tilematch/backend/internal/api/response"
	"github.com/tilematch/backend/internal/model"
	"github.com/tilematch/backend/internal/services/identity"
	"github.com/tilematch/backend/internal/services/user"
)

// UserHandler handles user profile endpoints
type UserHandler struct {
	userService     *user.Service
	identityService *identity.Service
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *user.Service, identityService *identity.Service) *UserHandler {
	return &UserHandler{
		userService:     userService,
		identityService: identityService,
	}
}

// GetProfile handles GET /api/v1/users/{user_id}
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID := model.UserID(mux.Vars(r)["user_id"])

	profile, err := h.userService.GetProfile(r.Context(), userID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.UserFromProfile(profile))
}

// UpdateSettings handles PATCH /api/v1/users/{user_id}/settings
func (h *UserHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	userID := model.UserID(mux.Vars(r)["user_id"])
	if !h.authorize(w, r, userID) {
		return
	}

	var req request.UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if len(req.Settings) == 0 {
		WriteError(w, NewInvalidRequestError("settings is required"))
		return
	}

	u, err := h.userService.UpdateSettings(r.Context(), userID, req.Settings)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.UserFromModel(u))
}

// Delete handles DELETE /api/v1/users/{user_id}
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := model.UserID(mux.Vars(r)["user_id"])
	if !h.authorize(w, r, userID) {
		return
	}

	if err := h.identityService.DeleteUser(r.Context(), userID); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// authorize ensures the authenticated user is acting on their own account
func (h *UserHandler) authorize(w http.ResponseWriter, r *http.Request, userID model.UserID) bool {
	caller := middleware.MustGetUser(r.Context())
	if caller.ID != userID {
		WriteError(w, NewUnauthorizedError())
		return false
	}
	return true
}
