// utils/email.go
package utils

import (
	"fmt"
	"html"

	"github.com/keighl/postmark"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"stem-inspires/models"
)

// senderName is the display name on outgoing mail
const senderName = "STEM Inspires"

// mailTransport delivers a single message
type mailTransport interface {
	send(toName, toEmail, subject, htmlBody, textBody string) error
}

type postmarkTransport struct {
	client *postmark.Client
	from   string
}

func (t *postmarkTransport) send(_, toEmail, subject, htmlBody, textBody string) error {
	_, err := t.client.SendEmail(postmark.Email{
		From:     t.from,
		To:       toEmail,
		Subject:  subject,
		HtmlBody: htmlBody,
		TextBody: textBody,
	})
	return err
}

type sendgridTransport struct {
	client *sendgrid.Client
	from   string
}

func (t *sendgridTransport) send(toName, toEmail, subject, htmlBody, textBody string) error {
	msg := mail.NewSingleEmail(
		mail.NewEmail(senderName, t.from),
		subject,
		mail.NewEmail(toName, toEmail),
		textBody,
		htmlBody,
	)
	resp, err := t.client.Send(msg)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid responded %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}

// EmailService handles sending donor emails through Postmark or SendGrid
type EmailService struct {
	transport mailTransport
}

// NewEmailService picks the transport named by cfg.MailProvider. It returns
// nil when mail is disabled; a nil *EmailService silently drops messages.
func NewEmailService(cfg *Config) *EmailService {
	switch cfg.MailProvider {
	case "postmark":
		return &EmailService{transport: &postmarkTransport{
			client: postmark.NewClient(cfg.PostmarkToken, ""),
			from:   cfg.EmailSender,
		}}
	case "sendgrid":
		return &EmailService{transport: &sendgridTransport{
			client: sendgrid.NewSendClient(cfg.SendGridKey),
			from:   cfg.EmailSender,
		}}
	}
	return nil
}

// SendEmail sends a basic email to the specified recipient
func (es *EmailService) SendEmail(toName, toEmail, subject, htmlContent, textContent string) error {
	if es == nil || es.transport == nil {
		return nil
	}
	if err := es.transport.send(toName, toEmail, subject, htmlContent, textContent); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// SendDonationReceipt thanks the donor for a recorded payment
func (es *EmailService) SendDonationReceipt(p models.Payment) error {
	subject, htmlContent, textContent := DonationReceipt(p)
	return es.SendEmail(p.Name, p.Email, subject, htmlContent, textContent)
}

// DonationReceipt renders the subject and bodies of a donation thank-you
func DonationReceipt(p models.Payment) (subject, htmlContent, textContent string) {
	kind := "one-time donation"
	if p.Type == models.PaymentMonthly {
		kind = "monthly donation"
	}
	subject = "Thank you for supporting STEM Inspires"
	htmlContent = fmt.Sprintf(
		"<strong>Dear %s,</strong><br><br>Thank you for your %s of <strong>$%.2f</strong>. Your checkout is being processed by %s.<br><br>STEM Inspires",
		html.EscapeString(p.Name), kind, p.Amount, p.Provider,
	)
	textContent = fmt.Sprintf(
		"Dear %s,\n\nThank you for your %s of $%.2f. Your checkout is being processed by %s.\n\nSTEM Inspires\n",
		p.Name, kind, p.Amount, p.Provider,
	)
	return subject, htmlContent, textContent
}
