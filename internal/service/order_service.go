package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/te-mata-wananga/apparel-order-api/internal/models"
	"github.com/te-mata-wananga/apparel-order-api/internal/payment"
)

// ErrNotification marks a failed confirmation delivery. Unlike rendering
// and ledger recording this is fatal: an order whose confirmation could not
// be sent is not considered submitted.
var ErrNotification = errors.New("confirmation email could not be sent")

// Renderer produces the printable salary deduction form for an order
type Renderer interface {
	RenderOrderForm(ctx context.Context, order *models.Order, schedule payment.Schedule) ([]byte, error)
}

// Notifier delivers the confirmation email, with the form attached when
// pdfBytes is non-nil
type Notifier interface {
	SendConfirmation(ctx context.Context, order *models.Order, schedule payment.Schedule, pdfBytes []byte) error
}

// Ledger appends one row per submitted order to the back-office ledger.
// Implementations report errors; the pipeline deliberately discards them
// after logging, and that policy must not be tightened without changing the
// success contract of SubmitOrder.
type Ledger interface {
	AppendOrder(ctx context.Context, order *models.Order) error
}

// OrderService runs the order submission pipeline
type OrderService struct {
	renderer  Renderer // nil when PDF generation is disabled
	notifier  Notifier
	ledger    Ledger // nil when ledger recording is disabled
	planDates [3]string
	log       *slog.Logger
}

// NewOrderService creates the pipeline with its collaborators. renderer and
// ledger may be nil to run without PDF generation or ledger recording.
func NewOrderService(renderer Renderer, notifier Notifier, ledger Ledger, planDates [3]string, log *slog.Logger) *OrderService {
	return &OrderService{
		renderer:  renderer,
		notifier:  notifier,
		ledger:    ledger,
		planDates: planDates,
		log:       log,
	}
}

// Result is the terminal outcome of a successful submission
type Result struct {
	OrderNumber string
	Attached    bool // whether the confirmation carried the deduction form
}

// SubmitOrder runs the pipeline: validate, render the deduction form
// (best-effort), send the confirmation (fatal on failure), record to the
// ledger (failure swallowed).
func (s *OrderService) SubmitOrder(ctx context.Context, req models.OrderRequest) (*Result, error) {
	order, err := models.Normalize(req)
	if err != nil {
		return nil, err
	}

	s.log.Info("processing order submission",
		"order_number", order.OrderNumber,
		"campus", order.Campus,
		"items", len(order.Items),
	)

	// The total is the caller's figure and is what gets printed and
	// recorded; a mismatch against the line totals is worth knowing about.
	if itemsTotal := order.ItemsTotal(); !itemsTotal.Equal(order.Total) {
		s.log.Warn("submitted total does not match sum of line totals",
			"order_number", order.OrderNumber,
			"submitted", order.Total.StringFixed(2),
			"computed", itemsTotal.StringFixed(2),
		)
	}

	schedule := payment.Compute(order.PaymentType, order.PaymentDate, order.Total, s.planDates)

	var pdfBytes []byte
	if s.renderer != nil {
		s.log.Info("generating salary deduction form", "order_number", order.OrderNumber)
		pdfBytes, err = s.renderer.RenderOrderForm(ctx, order, schedule)
		if err != nil {
			// A renderer outage degrades the email but never blocks the order
			s.log.Warn("salary deduction form could not be rendered, continuing without attachment",
				"order_number", order.OrderNumber,
				"error", err,
			)
			pdfBytes = nil
		}
	}

	s.log.Info("sending confirmation email", "order_number", order.OrderNumber)
	notifyErr := s.notifier.SendConfirmation(ctx, order, schedule, pdfBytes)

	// Recording is an audit trail independent of the notification outcome;
	// its own failures are logged and discarded
	if s.ledger != nil {
		s.log.Info("recording order to ledger", "order_number", order.OrderNumber)
		if err := s.ledger.AppendOrder(ctx, order); err != nil {
			s.log.Error("ledger recording failed",
				"order_number", order.OrderNumber,
				"error", err,
			)
		}
	}

	// An order whose confirmation was not delivered is not submitted
	if notifyErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotification, notifyErr)
	}

	return &Result{
		OrderNumber: order.OrderNumber,
		Attached:    len(pdfBytes) > 0,
	}, nil
}
