package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/eytgaming/eytgaming/internal/api/middleware"
	"github.com/eytgaming/eytgaming/internal/api/request"
	"github.com/eytgaming/eytgaming/internal/api/response"
	"github.com/eytgaming/eytgaming/internal/model"
	"github.com/eytgaming/eytgaming/internal/services/team"
)

// TeamHandler handles team endpoints
type TeamHandler struct {
	teamService *team.Service
}

// NewTeamHandler creates a new team handler
func NewTeamHandler(teamService *team.Service) *TeamHandler {
	return &TeamHandler{
		teamService: teamService,
	}
}

// Create handles POST /api/v1/teams
func (h *TeamHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())

	var req request.CreateTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Name == "" {
		WriteError(w, NewInvalidRequestError("name is required"))
		return
	}
	if req.Tag == "" {
		WriteError(w, NewInvalidRequestError("tag is required"))
		return
	}

	created, err := h.teamService.Create(r.Context(), user.ID, req.Name, req.Tag)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.TeamFromModel(created, true))
}

// Get handles GET /api/v1/teams/{id}
func (h *TeamHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())
	teamID := model.TeamID(mux.Vars(r)["id"])

	t, err := h.teamService.Get(r.Context(), teamID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.TeamFromModel(t, t.HasMember(user.ID)))
}

// Join handles POST /api/v1/teams/join
func (h *TeamHandler) Join(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())

	var req request.JoinTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.JoinCode == "" {
		WriteError(w, NewInvalidRequestError("join_code is required"))
		return
	}

	joined, err := h.teamService.Join(r.Context(), user.ID, req.JoinCode)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.TeamFromModel(joined, true))
}

// Leave handles POST /api/v1/teams/{id}/leave
func (h *TeamHandler) Leave(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())
	teamID := model.TeamID(mux.Vars(r)["id"])

	if err := h.teamService.Leave(r.Context(), user.ID, teamID); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// ListMine handles GET /api/v1/teams
func (h *TeamHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())

	teams, err := h.teamService.ListForUser(r.Context(), user.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.TeamsFromModel(teams, user.ID))
}

// Mutual handles GET /api/v1/teams/mutual/{user_id}
func (h *TeamHandler) Mutual(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())
	otherID := model.UserID(mux.Vars(r)["user_id"])

	teams, err := h.teamService.Mutual(r.Context(), user.ID, otherID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.TeamsFromModel(teams, user.ID))
}
