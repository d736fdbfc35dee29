// Package sheets appends submitted orders to the shared Google Sheets
// ledger used by the back office.
package sheets

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/te-mata-wananga/apparel-order-api/internal/models"
)

// statusPending is the initial status written for every new order row;
// the back office advances it by hand.
const statusPending = "Pending"

// Recorder appends one positional row per order to the ledger spreadsheet
type Recorder struct {
	svc           *sheets.Service
	spreadsheetID string
	appendRange   string
	blankColumns  int
	log           *slog.Logger
}

// NewRecorder creates a recorder authenticated with service-account
// credentials. blankColumns is the number of trailing empty cells reserved
// for manual annotation (notes, payroll received, order fulfilled).
func NewRecorder(ctx context.Context, credentialsJSON []byte, spreadsheetID, appendRange string, blankColumns int, log *slog.Logger) (*Recorder, error) {
	svc, err := sheets.NewService(ctx,
		option.WithCredentialsJSON(credentialsJSON),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return &Recorder{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		appendRange:   appendRange,
		blankColumns:  blankColumns,
		log:           log,
	}, nil
}

// AppendOrder appends one row for the order
func (r *Recorder) AppendOrder(ctx context.Context, order *models.Order) error {
	values := &sheets.ValueRange{
		Values: [][]interface{}{buildRow(order, r.blankColumns)},
	}

	_, err := r.svc.Spreadsheets.Values.
		Append(r.spreadsheetID, r.appendRange, values).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append ledger row: %w", err)
	}

	r.log.Info("ledger row appended", "order_number", order.OrderNumber)

	return nil
}

// buildRow lays the order out positionally; the ledger has no named columns
// so the ordering here is the contract.
func buildRow(order *models.Order, blankColumns int) []interface{} {
	row := []interface{}{
		order.OrderNumber,
		order.Timestamp,
		order.OrderDate,
		order.KaimahiName,
		order.EmployeeNumber,
		order.Campus,
		order.Email,
		ItemsSummary(order.Items),
		order.Total.StringFixed(2),
		order.PaymentType,
		order.PaymentDate,
		statusPending,
	}
	for i := 0; i < blankColumns; i++ {
		row = append(row, "")
	}
	return row
}

// ItemsSummary flattens the order's items into the single-cell summary
// string, e.g. "T-Shirt (M) x2, Crewneck (L) x1".
func ItemsSummary(items []models.OrderItem) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, fmt.Sprintf("%s (%s) x%d", item.Name, item.Size, item.Quantity))
	}
	return strings.Join(parts, ", ")
}
