package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/eytgaming/eytgaming/internal/api/middleware"
	"github.com/eytgaming/eytgaming/internal/api/response"
	"github.com/eytgaming/eytgaming/internal/model"
	"github.com/eytgaming/eytgaming/internal/services/account"
	"github.com/eytgaming/eytgaming/internal/services/bundle"
	"github.com/eytgaming/eytgaming/internal/services/visibility"
)

// UserHandler handles public user profile endpoints
type UserHandler struct {
	accountService *account.Service
	bundleService  *bundle.Service
	gate           *visibility.Gate
}

// NewUserHandler creates a new user handler
func NewUserHandler(accountService *account.Service, bundleService *bundle.Service, gate *visibility.Gate) *UserHandler {
	return &UserHandler{
		accountService: accountService,
		bundleService:  bundleService,
		gate:           gate,
	}
}

// Get handles GET /api/v1/users/{id}
//
// The public profile card: available to any viewer including anonymous
// ones. Sections the viewer may not see are absent from the response.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	viewer := middleware.GetViewer(r.Context())
	userID := model.UserID(mux.Vars(r)["id"])

	owner, err := h.accountService.GetUser(r.Context(), userID)
	if err != nil {
		WriteError(w, err)
		return
	}

	full, err := h.bundleService.Assemble(r.Context(), owner)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, h.gate.FilterBundle(viewer, owner, full))
}

// GetProfile handles GET /api/v1/users/{id}/profile
//
// The full-profile view. Private profiles are only visible to their owner,
// and anonymous viewers are never granted access. Granted viewers still
// only see the sections the owner's flags allow.
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	viewer := middleware.GetViewer(r.Context())
	userID := model.UserID(mux.Vars(r)["id"])

	owner, err := h.accountService.GetUser(r.Context(), userID)
	if err != nil {
		WriteError(w, err)
		return
	}

	if !h.gate.CanViewProfile(viewer, owner) {
		WriteError(w, NewForbiddenError("This profile is not visible to you"))
		return
	}

	full, err := h.bundleService.Assemble(r.Context(), owner)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, h.gate.FilterBundle(viewer, owner, full))
}
