package email

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/te-mata-wananga/apparel-order-api/internal/models"
	"github.com/te-mata-wananga/apparel-order-api/internal/payment"
)

// AttachmentFilename returns the filename the deduction form is attached
// under, derived from the order number.
func AttachmentFilename(orderNumber string) string {
	return fmt.Sprintf("Salary_Deduction_Form_%s.pdf", orderNumber)
}

// Subject returns the confirmation subject line for an order
func Subject(orderNumber string) string {
	return fmt.Sprintf("Order Confirmation - %s - Te Mata Wānanga Apparel", orderNumber)
}

type confirmationItem struct {
	Name      string
	Size      string
	Quantity  int
	LineTotal string
}

type confirmationInstallment struct {
	Number  int
	Date    string
	Amount  string
	Percent int
}

type confirmationData struct {
	KaimahiName    string
	OrderNumber    string
	OrderDate      string
	EmployeeNumber string
	Campus         string
	Items          []confirmationItem
	Total          string

	// payment schedule block, selected by policy
	ShowPlan     bool
	Installments []confirmationInstallment
	ShowFull     bool
	PaymentDate  string

	// next-steps wording branches on whether the form could be attached
	Attached     bool
	PayrollEmail string
	OrdersEmail  string
}

// BuildConfirmation produces the HTML body of the confirmation email.
// attached reports whether the deduction form was rendered and will travel
// with the message; when false the body directs the kaimahi to payroll
// instead of the print-and-sign instructions.
func BuildConfirmation(order *models.Order, schedule payment.Schedule, attached bool, payrollEmail, ordersEmail string) (string, error) {
	data := confirmationData{
		KaimahiName:    order.KaimahiName,
		OrderNumber:    order.OrderNumber,
		OrderDate:      order.OrderDate,
		EmployeeNumber: order.EmployeeNumber,
		Campus:         order.Campus,
		Total:          order.Total.StringFixed(2),
		Attached:       attached,
		PayrollEmail:   payrollEmail,
		OrdersEmail:    ordersEmail,
	}

	for _, item := range order.Items {
		data.Items = append(data.Items, confirmationItem{
			Name:      item.Name,
			Size:      item.Size,
			Quantity:  item.Quantity,
			LineTotal: item.LineTotal().StringFixed(2),
		})
	}

	switch schedule.Kind {
	case payment.KindPlan:
		data.ShowPlan = true
		for i, inst := range schedule.Installments {
			data.Installments = append(data.Installments, confirmationInstallment{
				Number:  i + 1,
				Date:    inst.Date,
				Amount:  inst.Amount.StringFixed(2),
				Percent: inst.Percent,
			})
		}
	case payment.KindFull:
		data.ShowFull = true
		data.PaymentDate = schedule.PaymentDate
	}

	var buf bytes.Buffer
	if err := confirmationTemplate.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

var confirmationTemplate = template.Must(template.New("confirmation").Parse(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; color: #333;">
  <div style="background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); color: white; padding: 2rem; text-align: center; border-radius: 10px 10px 0 0;">
    <h1 style="margin: 0; font-size: 24px;">Kia ora {{.KaimahiName}}!</h1>
    <p style="margin: 10px 0 0 0; opacity: 0.9;">Your Te Mata Wānanga apparel order has been confirmed</p>
  </div>

  <div style="padding: 2rem; border: 1px solid #ddd; border-top: none; border-radius: 0 0 10px 10px;">
    <div style="background: #f8f9fa; padding: 1rem; border-radius: 8px; margin-bottom: 2rem;">
      <h2 style="color: #667eea; margin-top: 0;">Order Details</h2>
      <p><strong>Order Number:</strong> {{.OrderNumber}}</p>
      <p><strong>Order Date:</strong> {{.OrderDate}}</p>
      <p><strong>Employee Number:</strong> {{.EmployeeNumber}}</p>
      <p><strong>Campus:</strong> {{.Campus}}</p>
    </div>

    <h3 style="color: #667eea;">Items Ordered:</h3>
    <ul style="background: #f8f9fa; padding: 1rem; border-radius: 8px;">
      {{range .Items}}<li>{{.Name}} (Size: {{.Size}}, Quantity: {{.Quantity}}) - ${{.LineTotal}}</li>
      {{end}}
    </ul>

    <div style="background: #e8f5e8; padding: 1rem; border-radius: 8px; margin: 1rem 0;">
      <p style="margin: 0; font-size: 18px;"><strong>Total: ${{.Total}}</strong></p>
    </div>

    {{if .ShowPlan}}
    <h3>Payment Plan Schedule:</h3>
    <ul>
      {{range .Installments}}<li><strong>Payment {{.Number}}:</strong> {{.Date}} - ${{.Amount}} ({{.Percent}}%)</li>
      {{end}}
    </ul>
    {{else if .ShowFull}}
    <h3>Payment Details:</h3>
    <p><strong>Payment Date:</strong> {{.PaymentDate}}</p>
    <p><strong>Amount:</strong> ${{.Total}} (Payment in Full)</p>
    {{end}}

    {{if .Attached}}
    <div style="background: #fff3cd; border: 1px solid #ffeaa7; padding: 1rem; border-radius: 8px; margin: 2rem 0;">
      <h3 style="color: #856404; margin-top: 0;">⚠️ Important - Next Steps:</h3>
      <ol style="margin: 0; padding-left: 20px;">
        <li><strong>Print</strong> the attached salary deduction form</li>
        <li><strong>Sign</strong> the form where indicated</li>
        <li><strong>Email</strong> the signed form to: <a href="mailto:{{.PayrollEmail}}" style="color: #667eea;">{{.PayrollEmail}}</a></li>
      </ol>
      <p style="margin: 1rem 0 0 0; font-size: 14px; color: #856404;">
        <strong>Note:</strong> Your order will not be processed until the signed salary deduction form is received by payroll.
      </p>
    </div>
    {{else}}
    <div style="background: #fff3cd; border: 1px solid #ffeaa7; padding: 1rem; border-radius: 8px; margin: 2rem 0;">
      <h3 style="color: #856404; margin-top: 0;">⚠️ Important - Next Steps:</h3>
      <ol style="margin: 0; padding-left: 20px;">
        <li><strong>Contact payroll</strong> at <a href="mailto:{{.PayrollEmail}}" style="color: #667eea;">{{.PayrollEmail}}</a> to request your salary deduction form</li>
        <li><strong>Quote</strong> your order number: {{.OrderNumber}}</li>
        <li><strong>Sign and return</strong> the form to payroll</li>
      </ol>
      <p style="margin: 1rem 0 0 0; font-size: 14px; color: #856404;">
        <strong>Note:</strong> We could not attach your salary deduction form to this email. Your order will not be processed until payroll receives the signed form.
      </p>
    </div>
    {{end}}

    <div style="text-align: center; margin-top: 2rem; padding: 1rem; background: #f8f9fa; border-radius: 8px;">
      <p style="margin: 0; color: #666;">
        If you have any questions about your order, please contact us at
        <a href="mailto:{{.OrdersEmail}}" style="color: #667eea;">{{.OrdersEmail}}</a>
      </p>
    </div>
  </div>
</div>
`))
