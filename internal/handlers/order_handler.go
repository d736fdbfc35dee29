package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/te-mata-wananga/apparel-order-api/internal/models"
	"github.com/te-mata-wananga/apparel-order-api/internal/service"
)

// OrderHandler handles order submission HTTP requests
type OrderHandler struct {
	orderService *service.OrderService
	production   bool
	log          *slog.Logger
}

// NewOrderHandler creates a new order handler. production suppresses
// diagnostic detail in error responses.
func NewOrderHandler(orderService *service.OrderService, production bool, log *slog.Logger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		production:   production,
		log:          log,
	}
}

// SubmitOrder handles POST /api/order and POST /submit-order
func (h *OrderHandler) SubmitOrder(w http.ResponseWriter, r *http.Request) {
	var req models.OrderRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Error("failed to decode order submission", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.details(err), h.log)
		return
	}

	result, err := h.orderService.SubmitOrder(r.Context(), req)
	if err != nil {
		h.log.Error("failed to process order submission", "error", err)

		var validationErr *models.ValidationError
		switch {
		case errors.As(err, &validationErr):
			WriteError(w, http.StatusBadRequest, validationErr.Error(), "", h.log)
		case errors.Is(err, service.ErrNotification):
			WriteError(w, http.StatusInternalServerError, "Failed to send confirmation email", h.details(err), h.log)
		default:
			WriteError(w, http.StatusInternalServerError, "Failed to process order", h.details(err), h.log)
		}
		return
	}

	WriteJSON(w, http.StatusOK, SuccessResponse{
		Success:     true,
		Message:     "Order processed successfully",
		OrderNumber: result.OrderNumber,
	}, h.log)

	h.log.Info("order processed successfully",
		"order_number", result.OrderNumber,
		"attached", result.Attached,
	)
}

// details exposes the underlying error outside production only
func (h *OrderHandler) details(err error) string {
	if h.production {
		return ""
	}
	return err.Error()
}
