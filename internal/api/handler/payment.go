package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/eytgaming/eytgaming/internal/api/middleware"
	"github.com/eytgaming/eytgaming/internal/api/request"
	"github.com/eytgaming/eytgaming/internal/api/response"
	"github.com/eytgaming/eytgaming/internal/model"
	"github.com/eytgaming/eytgaming/internal/services/payment"
)

// PaymentHandler handles payment method endpoints. All routes operate on
// the authenticated user's own payment methods.
type PaymentHandler struct {
	paymentService *payment.Service
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentService *payment.Service) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

// Add handles POST /api/v1/payment-methods
func (h *PaymentHandler) Add(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())

	var req request.AddPaymentMethodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Kind == "" {
		WriteError(w, NewInvalidRequestError("kind is required"))
		return
	}
	if req.Label == "" {
		WriteError(w, NewInvalidRequestError("label is required"))
		return
	}

	method, err := h.paymentService.Add(r.Context(), user.ID, req.Kind, req.Label, req.AsDefault)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.PaymentMethodFromModel(method))
}

// List handles GET /api/v1/payment-methods
func (h *PaymentHandler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())

	methods, err := h.paymentService.List(r.Context(), user.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PaymentMethodsFromModel(methods))
}

// Get handles GET /api/v1/payment-methods/{id}
func (h *PaymentHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())
	methodID := model.PaymentMethodID(mux.Vars(r)["id"])

	method, err := h.paymentService.Get(r.Context(), user.ID, methodID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PaymentMethodFromModel(method))
}

// GetDefault handles GET /api/v1/payment-methods/default
func (h *PaymentHandler) GetDefault(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())

	method, err := h.paymentService.GetDefault(r.Context(), user.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PaymentMethodFromModel(method))
}

// SetDefault handles PUT /api/v1/payment-methods/{id}/default
func (h *PaymentHandler) SetDefault(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())
	methodID := model.PaymentMethodID(mux.Vars(r)["id"])

	if err := h.paymentService.SetDefault(r.Context(), user.ID, methodID); err != nil {
		WriteError(w, err)
		return
	}

	method, err := h.paymentService.Get(r.Context(), user.ID, methodID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PaymentMethodFromModel(method))
}

// Deactivate handles POST /api/v1/payment-methods/{id}/deactivate
func (h *PaymentHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())
	methodID := model.PaymentMethodID(mux.Vars(r)["id"])

	if err := h.paymentService.Deactivate(r.Context(), user.ID, methodID); err != nil {
		WriteError(w, err)
		return
	}

	method, err := h.paymentService.Get(r.Context(), user.ID, methodID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PaymentMethodFromModel(method))
}

// Reactivate handles POST /api/v1/payment-methods/{id}/reactivate
func (h *PaymentHandler) Reactivate(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())
	methodID := model.PaymentMethodID(mux.Vars(r)["id"])

	if err := h.paymentService.Reactivate(r.Context(), user.ID, methodID); err != nil {
		WriteError(w, err)
		return
	}

	method, err := h.paymentService.Get(r.Context(), user.ID, methodID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PaymentMethodFromModel(method))
}

// Delete handles DELETE /api/v1/payment-methods/{id}
func (h *PaymentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())
	methodID := model.PaymentMethodID(mux.Vars(r)["id"])

	if err := h.paymentService.Delete(r.Context(), user.ID, methodID); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}
