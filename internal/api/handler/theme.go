package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tilematch/backend/internal/api/response"
	"github.com/tilematch/backend/internal/services/theme"
)

// ThemeHandler handles theme catalog endpoints
type ThemeHandler struct {
	themeService *theme.Service
}

// NewThemeHandler creates a new theme handler
func NewThemeHandler(themeService *theme.Service) *ThemeHandler {
	return &ThemeHandler{
		themeService: themeService,
	}
}

// List handles GET /api/v1/themes
func (h *ThemeHandler) List(w http.ResponseWriter, r *http.Request) {
	themes, err := h.themeService.List(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	out := make([]response.Theme, len(themes))
	for i, t := range themes {
		out[i] = response.ThemeFromModel(t)
	}
	response.JSON(w, http.StatusOK, out)
}

// Get handles GET /api/v1/themes/{name}
func (h *ThemeHandler) Get(w http.ResponseWriter, r *http.Request) {
	t, err := h.themeService.Get(r.Context(), mux.Vars(r)["name"])
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ThemeFromModel(t))
}
