package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment type values recognised by the schedule policy. Anything else is
// treated as "payment date to be determined".
const (
	PaymentTypePlan = "plan"
	PaymentTypeFull = "full"
)

// PaymentDateNA is the sentinel stored when no payment date was supplied.
const PaymentDateNA = "N/A"

// OrderRequest represents a raw order form submission.
// Items and total are kept undecoded: the form sometimes posts items as a
// JSON-encoded string rather than an array, and total as either a number or
// a string. Normalize resolves both.
type OrderRequest struct {
	OrderNumber    string          `json:"orderNumber"`
	KaimahiName    string          `json:"kaimahiName"`
	EmployeeNumber string          `json:"employeeNumber"`
	Campus         string          `json:"campus"`
	Email          string          `json:"email"`
	Items          json.RawMessage `json:"items"`
	Total          json.RawMessage `json:"total"`
	PaymentType    string          `json:"paymentType"`
	PaymentDate    string          `json:"paymentDate"`
}

// OrderItem represents a single line of an order
type OrderItem struct {
	Name     string          `json:"name"`
	Size     string          `json:"size"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// LineTotal returns quantity × unit price
func (i OrderItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Order is the canonical record of one form submission. It is constructed
// once by Normalize and never mutated afterwards.
type Order struct {
	OrderNumber    string
	KaimahiName    string
	EmployeeNumber string
	Campus         string
	Email          string
	Items          []OrderItem
	Total          decimal.Decimal
	PaymentType    string
	PaymentDate    string
	Timestamp      string // UTC, RFC 3339
	OrderDate      string // local calendar date, dd/mm/yyyy
}

// ItemsTotal returns the sum of all line totals. The order's Total field is
// what the caller submitted; the two are not guaranteed to agree.
func (o *Order) ItemsTotal() decimal.Decimal {
	sum := decimal.Zero
	for _, item := range o.Items {
		sum = sum.Add(item.LineTotal())
	}
	return sum
}

// ValidationError reports a missing or malformed submission field
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid field %s: %s", e.Field, e.Reason)
	}
	return "missing required field: " + e.Field
}

func missingField(field string) *ValidationError {
	return &ValidationError{Field: field}
}

func invalidField(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// Normalize validates a raw submission and produces the canonical Order.
// Timestamps are derived here, not supplied by the caller.
func Normalize(req OrderRequest) (*Order, error) {
	required := []struct {
		name  string
		value string
	}{
		{"kaimahiName", req.KaimahiName},
		{"employeeNumber", req.EmployeeNumber},
		{"campus", req.Campus},
		{"email", req.Email},
	}
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			return nil, missingField(field.name)
		}
	}
	if rawAbsent(req.Items) {
		return nil, missingField("items")
	}
	if rawAbsent(req.Total) {
		return nil, missingField("total")
	}
	if strings.TrimSpace(req.PaymentType) == "" {
		return nil, missingField("paymentType")
	}

	items, err := decodeItems(req.Items)
	if err != nil {
		return nil, err
	}

	total, err := decodeTotal(req.Total)
	if err != nil {
		return nil, err
	}

	orderNumber := req.OrderNumber
	if orderNumber == "" {
		orderNumber = generateOrderNumber()
	}

	paymentDate := req.PaymentDate
	if paymentDate == "" {
		paymentDate = PaymentDateNA
	}

	now := time.Now()

	return &Order{
		OrderNumber:    orderNumber,
		KaimahiName:    req.KaimahiName,
		EmployeeNumber: req.EmployeeNumber,
		Campus:         req.Campus,
		Email:          req.Email,
		Items:          items,
		Total:          total,
		PaymentType:    req.PaymentType,
		PaymentDate:    paymentDate,
		Timestamp:      now.UTC().Format(time.RFC3339),
		OrderDate:      now.Format("02/01/2006"),
	}, nil
}

func rawAbsent(raw json.RawMessage) bool {
	trimmed := strings.TrimSpace(string(raw))
	return trimmed == "" || trimmed == "null" || trimmed == `""`
}

// decodeItems accepts either a JSON array of items or that same array
// double-encoded as a JSON string, which is how the form widget posts it.
func decodeItems(raw json.RawMessage) ([]OrderItem, error) {
	trimmed := strings.TrimSpace(string(raw))

	data := raw
	if trimmed != "" && trimmed[0] == '"' {
		var encoded string
		if err := json.Unmarshal(raw, &encoded); err != nil {
			return nil, invalidField("items", "not valid JSON")
		}
		data = []byte(encoded)
	}

	var items []OrderItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, invalidField("items", "not valid JSON")
	}

	return items, nil
}

func decodeTotal(raw json.RawMessage) (decimal.Decimal, error) {
	// Strings like "150.00" are accepted alongside plain numbers
	trimmed := strings.Trim(strings.TrimSpace(string(raw)), `"`)
	total, err := decimal.NewFromString(strings.TrimSpace(trimmed))
	if err != nil {
		return decimal.Zero, invalidField("total", "not a number")
	}

	return total, nil
}

// generateOrderNumber builds the fallback order number used when the form
// did not supply one. The uuid suffix keeps concurrent submissions from
// colliding on the millisecond timestamp.
func generateOrderNumber() string {
	return fmt.Sprintf("TMW-%d-%s", time.Now().UnixMilli(), uuid.New().String()[:4])
}
