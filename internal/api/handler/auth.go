package handler

import (
	"encoding/json"
	"net/http"

	"github.com/tilematch/backend/internal/api/middleware"
	"github.com/tilematch/backend/internal/api/request"
	"github.com/tilematch/backend/internal/api/response"
	"github.com/tilematch/backend/internal/services/identity"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	identityService *identity.Service
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(identityService *identity.Service) *AuthHandler {
	return &AuthHandler{
		identityService: identityService,
	}
}

// Register handles POST /api/v1/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Email == "" {
		WriteError(w, NewInvalidRequestError("email is required"))
		return
	}
	if req.Username == "" {
		WriteError(w, NewInvalidRequestError("username is required"))
		return
	}
	if req.Password == "" {
		WriteError(w, NewInvalidRequestError("password is required"))
		return
	}

	session, err := h.identityService.Register(r.Context(), req.Email, req.Username, req.Password)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.AuthResponseFromSession(session))
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Email == "" {
		WriteError(w, NewInvalidRequestError("email is required"))
		return
	}
	if req.Password == "" {
		WriteError(w, NewInvalidRequestError("password is required"))
		return
	}

	session, err := h.identityService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AuthResponseFromSession(session))
}

// Logout handles POST /api/v1/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSession(r.Context())
	if session != nil {
		h.identityService.InvalidateSession(session.Token)
	}
	response.NoContent(w)
}

// GetMe handles GET /api/v1/auth/me
func (h *AuthHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	u := middleware.MustGetUser(r.Context())
	response.JSON(w, http.StatusOK, response.UserFromModel(u))
}
