// Package email assembles and delivers the order confirmation message.
package email

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/te-mata-wananga/apparel-order-api/internal/models"
	"github.com/te-mata-wananga/apparel-order-api/internal/payment"
)

// Notifier sends order confirmations through SendGrid
type Notifier struct {
	client       *sendgrid.Client
	fromEmail    string
	fromName     string
	payrollEmail string
	ordersEmail  string
	log          *slog.Logger
}

// NewNotifier creates a notifier backed by a SendGrid API key
func NewNotifier(apiKey, fromEmail, fromName, payrollEmail, ordersEmail string, log *slog.Logger) *Notifier {
	return &Notifier{
		client:       sendgrid.NewSendClient(apiKey),
		fromEmail:    fromEmail,
		fromName:     fromName,
		payrollEmail: payrollEmail,
		ordersEmail:  ordersEmail,
		log:          log,
	}
}

// SendConfirmation emails the order confirmation to the kaimahi. pdfBytes
// may be nil when the deduction form could not be rendered; the body then
// carries the contact-payroll instructions instead of an attachment.
func (n *Notifier) SendConfirmation(ctx context.Context, order *models.Order, schedule payment.Schedule, pdfBytes []byte) error {
	attached := len(pdfBytes) > 0

	body, err := BuildConfirmation(order, schedule, attached, n.payrollEmail, n.ordersEmail)
	if err != nil {
		return fmt.Errorf("build confirmation body: %w", err)
	}

	message := mail.NewV3Mail()
	message.SetFrom(mail.NewEmail(n.fromName, n.fromEmail))
	message.Subject = Subject(order.OrderNumber)

	personalization := mail.NewPersonalization()
	personalization.AddTos(mail.NewEmail(order.KaimahiName, order.Email))
	message.AddPersonalizations(personalization)

	message.AddContent(mail.NewContent("text/html", body))

	if attached {
		attachment := mail.NewAttachment()
		attachment.SetContent(base64.StdEncoding.EncodeToString(pdfBytes))
		attachment.SetType("application/pdf")
		attachment.SetFilename(AttachmentFilename(order.OrderNumber))
		attachment.SetDisposition("attachment")
		message.AddAttachment(attachment)
	}

	response, err := n.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("send confirmation: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("send confirmation: sendgrid returned status %d: %s", response.StatusCode, response.Body)
	}

	n.log.Info("confirmation email sent",
		"order_number", order.OrderNumber,
		"recipient", order.Email,
		"attached", attached,
	)

	return nil
}
