package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/eytgaming/eytgaming/internal/api/middleware"
	"github.com/eytgaming/eytgaming/internal/api/request"
	"github.com/eytgaming/eytgaming/internal/api/response"
	"github.com/eytgaming/eytgaming/internal/model"
	"github.com/eytgaming/eytgaming/internal/services/gameprofile"
)

// GameProfileHandler handles game profile endpoints. All routes operate on
// the authenticated user's own profiles.
type GameProfileHandler struct {
	profileService *gameprofile.Service
}

// NewGameProfileHandler creates a new game profile handler
func NewGameProfileHandler(profileService *gameprofile.Service) *GameProfileHandler {
	return &GameProfileHandler{
		profileService: profileService,
	}
}

// Create handles POST /api/v1/profiles
func (h *GameProfileHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())

	var req request.CreateGameProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Game == "" {
		WriteError(w, NewInvalidRequestError("game is required"))
		return
	}
	if req.InGameName == "" {
		WriteError(w, NewInvalidRequestError("in_game_name is required"))
		return
	}
	if req.SkillRating < 0 {
		WriteError(w, NewInvalidRequestError("skill_rating must not be negative"))
		return
	}

	profile, err := h.profileService.Create(r.Context(), user.ID, req.Game, req.InGameName, req.SkillRating, req.AsMain)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.GameProfileFromModel(profile))
}

// List handles GET /api/v1/profiles
func (h *GameProfileHandler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())

	profiles, err := h.profileService.List(r.Context(), user.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameProfilesFromModel(profiles))
}

// Get handles GET /api/v1/profiles/{id}
func (h *GameProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())
	profileID := model.GameProfileID(mux.Vars(r)["id"])

	profile, err := h.profileService.Get(r.Context(), user.ID, profileID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameProfileFromModel(profile))
}

// GetMain handles GET /api/v1/profiles/main
func (h *GameProfileHandler) GetMain(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())

	profile, err := h.profileService.GetMain(r.Context(), user.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameProfileFromModel(profile))
}

// SetMain handles PUT /api/v1/profiles/{id}/main
func (h *GameProfileHandler) SetMain(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())
	profileID := model.GameProfileID(mux.Vars(r)["id"])

	if err := h.profileService.SetMain(r.Context(), user.ID, profileID); err != nil {
		WriteError(w, err)
		return
	}

	profile, err := h.profileService.Get(r.Context(), user.ID, profileID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameProfileFromModel(profile))
}

// Delete handles DELETE /api/v1/profiles/{id}
func (h *GameProfileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())
	profileID := model.GameProfileID(mux.Vars(r)["id"])

	if err := h.profileService.Delete(r.Context(), user.ID, profileID); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}
