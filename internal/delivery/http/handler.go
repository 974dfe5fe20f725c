package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/ndiaye-labs/gatepass/internal/domain"
	"github.com/ndiaye-labs/gatepass/internal/service"
	"github.com/ndiaye-labs/gatepass/internal/validation"
	"github.com/ndiaye-labs/gatepass/monitoring"
	"github.com/ndiaye-labs/gatepass/pkg/logger"
	"github.com/ndiaye-labs/gatepass/pkg/util"
)

type HTTPHandler struct {
	gate      service.GateService
	logger    logger.Logger
	validator *validator.Validate
}

func NewHTTPHandler(gate service.GateService, l logger.Logger) *HTTPHandler {
	return &HTTPHandler{
		gate:      gate,
		logger:    l,
		validator: validator.New(),
	}
}

// Routes wires the API. Purchasing is public; scanning needs a controller
// token, order/stat views a vendor token.
func (h *HTTPHandler) Routes(auth *AuthMiddleware) chi.Router {
	r := chi.NewRouter()
	r.Use(RequestID(h.logger))

	r.Get("/health", h.HealthCheck)
	r.Method(http.MethodGet, "/metrics", monitoring.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/orders", h.Purchase)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireRole(RoleController, RoleAdmin))
			r.Post("/scan", h.Redeem)
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireRole(RoleVendor, RoleAdmin))
			r.Get("/orders", h.ListOrders)
			r.Get("/orders/{orderID}", h.GetOrder)
			r.Get("/stats", h.Stats)
		})
	})

	return r
}

func (h *HTTPHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]any{
		"status":  "healthy",
		"service": "gatepass",
	})
}

func (h *HTTPHandler) Purchase(w http.ResponseWriter, r *http.Request) {
	var req service.PurchaseInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := h.validator.Struct(req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Validation failed", err)
		return
	}

	out, err := h.gate.Purchase(r.Context(), req)
	if err != nil {
		var attendeeErr *domain.InvalidAttendeeError
		switch {
		case errors.Is(err, domain.ErrEmptyOrder):
			h.respondError(w, http.StatusBadRequest, "Order must contain at least one attendee", err)
		case errors.Is(err, domain.ErrMissingBuyerContact):
			h.respondError(w, http.StatusBadRequest, "Buyer contact is required", err)
		case errors.Is(err, domain.ErrUnknownCategory):
			h.respondError(w, http.StatusBadRequest, "Unknown ticket category", err)
		case errors.As(err, &attendeeErr):
			h.respondError(w, http.StatusBadRequest, attendeeErr.Error(), err)
		case errors.Is(err, domain.ErrDuplicateTicketID), errors.Is(err, domain.ErrDuplicateOrderID):
			h.logger.Errorf(r.Context(), "delivery.http.Purchase: integrity failure: %v", err)
			h.respondError(w, http.StatusConflict, "Purchase could not be recorded", err)
		default:
			h.logger.Errorf(r.Context(), "delivery.http.Purchase: %v", err)
			h.respondError(w, http.StatusInternalServerError, "Failed to complete purchase", err)
		}
		return
	}

	h.respondJSON(w, http.StatusCreated, out)
}

func (h *HTTPHandler) Redeem(w http.ResponseWriter, r *http.Request) {
	var req service.RedeemInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := h.validator.Struct(req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Validation failed", err)
		return
	}

	out, err := h.gate.Redeem(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyScan):
			h.respondError(w, http.StatusBadRequest, "Scan input is empty", err)
		default:
			h.logger.Errorf(r.Context(), "delivery.http.Redeem: %v", err)
			h.respondError(w, http.StatusInternalServerError, "Failed to process scan", err)
		}
		return
	}

	// Outcomes are results, not errors: each renders its own message and
	// status so gate staff see a distinct verdict per case.
	switch out.Outcome {
	case validation.OutcomeAccepted:
		h.respondJSON(w, http.StatusOK, redeemResponse{
			Outcome: out.Outcome,
			Message: "Ticket valid, entry authorized",
			Ticket:  out.Ticket,
		})
	case validation.OutcomeAlreadyUsed:
		h.respondJSON(w, http.StatusConflict, redeemResponse{
			Outcome: out.Outcome,
			Message: fmt.Sprintf("Ticket already used at %s", util.FormatDateTime(*out.UsedAt)),
			Ticket:  out.Ticket,
		})
	default:
		h.respondJSON(w, http.StatusNotFound, redeemResponse{
			Outcome: out.Outcome,
			Message: "Ticket not found",
		})
	}
}

func (h *HTTPHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderID")
	if orderID == "" {
		h.respondError(w, http.StatusBadRequest, "Order ID is required", nil)
		return
	}

	out, err := h.gate.GetOrder(r.Context(), orderID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrOrderNotFound):
			h.respondError(w, http.StatusNotFound, "Order not found", err)
		default:
			h.logger.Errorf(r.Context(), "delivery.http.GetOrder: %s: %v", orderID, err)
			h.respondError(w, http.StatusInternalServerError, "Failed to load order", err)
		}
		return
	}

	h.respondJSON(w, http.StatusOK, out)
}

func (h *HTTPHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	out, err := h.gate.ListOrders(r.Context())
	if err != nil {
		h.logger.Errorf(r.Context(), "delivery.http.ListOrders: %v", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to list orders", err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]any{"orders": out})
}

func (h *HTTPHandler) Stats(w http.ResponseWriter, r *http.Request) {
	out, err := h.gate.Stats(r.Context())
	if err != nil {
		h.logger.Errorf(r.Context(), "delivery.http.Stats: %v", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to compute stats", err)
		return
	}

	h.respondJSON(w, http.StatusOK, out)
}

type redeemResponse struct {
	Outcome validation.Outcome    `json:"outcome"`
	Message string                `json:"message"`
	Ticket  *service.TicketOutput `json:"ticket,omitempty"`
}

func (h *HTTPHandler) respondJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Errorf(context.Background(), "delivery.http.respondJSON: %v", err)
	}
}

func (h *HTTPHandler) respondError(w http.ResponseWriter, statusCode int, message string, err error) {
	if err != nil {
		h.logger.Debugf(context.Background(), "delivery.http.respondError: %s: %v", message, err)
	}

	h.respondJSON(w, statusCode, map[string]any{
		"error": message,
		"code":  statusCode,
	})
}
