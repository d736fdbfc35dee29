package pdf

import (
	"bytes"
	"html/template"

	"github.com/te-mata-wananga/apparel-order-api/internal/models"
	"github.com/te-mata-wananga/apparel-order-api/internal/payment"
)

// displayNames maps the short item names used by the order form to the
// formal descriptions printed on the deduction form.
var displayNames = map[string]string{
	"T-Shirt":  "Apakura - Te Mata Wānanga T-Shirt",
	"Crewneck": "Apakura - Te Mata Wānanga Crew Jersey",
}

// catalogPrefix is prepended to item names with no catalog entry
const catalogPrefix = "Apakura - Te Mata Wānanga "

// DisplayName returns the formal description for an item name
func DisplayName(name string) string {
	if description, ok := displayNames[name]; ok {
		return description
	}
	return catalogPrefix + name
}

type formRow struct {
	Description string
	Size        string
	Quantity    int
	LineTotal   string
}

type formData struct {
	KaimahiName     string
	EmployeeNumber  string
	Campus          string
	Rows            []formRow
	Total           string
	PaymentDateText string
}

// BuildHTML produces the self-contained markup for the salary deduction
// form. All styling is inline so the renderer needs no external resources.
func BuildHTML(order *models.Order, schedule payment.Schedule) (string, error) {
	data := formData{
		KaimahiName:     order.KaimahiName,
		EmployeeNumber:  order.EmployeeNumber,
		Campus:          order.Campus,
		Total:           order.Total.StringFixed(2),
		PaymentDateText: schedule.CommencementText(),
	}

	for _, item := range order.Items {
		data.Rows = append(data.Rows, formRow{
			Description: DisplayName(item.Name),
			Size:        item.Size,
			Quantity:    item.Quantity,
			LineTotal:   item.LineTotal().StringFixed(2),
		})
	}

	var buf bytes.Buffer
	if err := formTemplate.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

var formTemplate = template.Must(template.New("deduction-form").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>Salary Deduction Form - Te Mata Wānanga</title>
  <style>
    body {
      font-family: 'Times New Roman', serif;
      margin: 0;
      padding: 20px;
      color: #333;
      line-height: 1.4;
      font-size: 12pt;
    }

    .form-container {
      max-width: 800px;
      margin: 0 auto;
    }

    .header {
      text-align: center;
      margin-bottom: 30px;
      border-bottom: 2px solid #333;
      padding-bottom: 20px;
    }

    .header h1 {
      font-size: 16pt;
      font-weight: bold;
      margin: 0;
      line-height: 1.2;
    }

    .notice {
      background: #f8f9fa;
      border: 2px solid #333;
      padding: 15px;
      margin: 30px 0;
      text-align: center;
    }

    .details {
      margin: 30px 0;
    }

    .detail-row {
      display: flex;
      gap: 40px;
      margin-bottom: 20px;
      border-bottom: 1px solid #ddd;
      padding-bottom: 10px;
    }

    .detail-item {
      flex: 1;
    }

    .detail-item.full-width {
      flex: 100%;
    }

    .detail-item strong {
      display: block;
      font-weight: bold;
      margin-bottom: 5px;
    }

    .detail-value {
      border-bottom: 1px solid #333;
      min-height: 25px;
      padding: 5px 0;
    }

    .items-table {
      margin: 40px 0;
    }

    .items-table table {
      width: 100%;
      border-collapse: collapse;
      border: 2px solid #333;
    }

    .items-table th,
    .items-table td {
      border: 1px solid #333;
      padding: 12px;
      text-align: left;
    }

    .items-table th {
      background: #f8f9fa;
      font-weight: bold;
    }

    .total-row {
      background: #f8f9fa;
      font-weight: bold;
    }

    .payment-section {
      margin: 40px 0;
      border: 1px solid #333;
      padding: 20px;
    }

    .payment-section strong {
      display: block;
      margin-bottom: 10px;
    }

    .payment-value {
      border-bottom: 1px solid #333;
      min-height: 25px;
      padding: 5px 0;
    }

    .signature-section {
      margin-top: 60px;
    }

    .signature-row {
      display: flex;
      gap: 40px;
      align-items: flex-end;
    }

    .signature-item {
      flex: 1;
    }

    .signature-item strong {
      display: block;
      margin-bottom: 10px;
    }

    .signature-line {
      border-bottom: 1px solid #333;
      height: 40px;
    }

    .signature-line.short {
      max-width: 200px;
    }

    @media print {
      .form-container {
        max-width: none;
      }
    }
  </style>
</head>
<body>
  <div class="form-container">
    <div class="header">
      <h1>APAKURA TE MATA<br>WĀNANGA KĀKAHU<br>SALARY/WAGE DEDUCTION<br>FORM</h1>
    </div>

    <div class="notice">
      <p><strong><em>Please ensure you have filled the online form to order your kākahu and that this form is sent to payroll@twoa.ac.nz</em></strong></p>
    </div>

    <div class="details">
      <div class="detail-row">
        <div class="detail-item">
          <strong>Kaimahi Name</strong>
          <div class="detail-value">{{.KaimahiName}}</div>
        </div>
        <div class="detail-item">
          <strong>Employee #</strong>
          <div class="detail-value">{{.EmployeeNumber}}</div>
        </div>
      </div>

      <div class="detail-row">
        <div class="detail-item full-width">
          <strong>Campus</strong>
          <div class="detail-value">{{.Campus}}</div>
        </div>
      </div>
    </div>

    <div class="items-table">
      <table>
        <thead>
          <tr>
            <th>Description</th>
            <th>Size</th>
            <th>Quantity</th>
            <th>Total</th>
          </tr>
        </thead>
        <tbody>
          {{range .Rows}}
          <tr>
            <td><em>{{.Description}}</em></td>
            <td>{{.Size}}</td>
            <td>{{.Quantity}}</td>
            <td>{{.LineTotal}}</td>
          </tr>
          {{end}}
        </tbody>
        <tfoot>
          <tr class="total-row">
            <td colspan="3"><strong>Overall Total</strong></td>
            <td><strong>{{.Total}}</strong></td>
          </tr>
        </tfoot>
      </table>
    </div>

    <div class="payment-section">
      <strong>Date to commence payments</strong>
      <div class="payment-value">{{.PaymentDateText}}</div>
    </div>

    <div class="signature-section">
      <div class="signature-row">
        <div class="signature-item">
          <strong>Kaimahi signature</strong>
          <div class="signature-line"></div>
        </div>
        <div class="signature-item">
          <strong>Date</strong>
          <div class="signature-line short"></div>
        </div>
      </div>
    </div>
  </div>
</body>
</html>
`))
