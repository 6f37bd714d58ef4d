package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"smarttax-backend/internal/domain"
	"smarttax-backend/internal/logger"
)

type sendGridEmailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewSendGridEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &sendGridEmailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *sendGridEmailService) send(to, toName, subject, plainText, htmlContent string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, to)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, htmlContent)

	logger.ExternalServiceCall("sendgrid", "Send", "to", to, "subject", subject)
	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	logger.ExternalServiceResult("sendgrid", "Send", err)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}

func (s *sendGridEmailService) SendSubmissionConfirmation(ctx context.Context, toEmail, toName string, tr *domain.TaxReturn) error {
	subject := fmt.Sprintf("Tax Return Submitted for %s", tr.FinancialYear)
	plainText := fmt.Sprintf(
		"Your tax return for %s has been submitted.\nAcknowledgement number: %s\nKeep this number for your records.",
		tr.FinancialYear, tr.AcknowledgementNumber,
	)
	htmlContent := fmt.Sprintf(`
		<html>
		<body>
			<h2>Tax Return Submitted</h2>
			<p>Your tax return for <strong>%s</strong> has been submitted.</p>
			<p>Acknowledgement number: <strong>%s</strong></p>
			<p>Keep this number for your records.</p>
		</body>
		</html>`,
		tr.FinancialYear, tr.AcknowledgementNumber,
	)
	return s.send(toEmail, toName, subject, plainText, htmlContent)
}

func (s *sendGridEmailService) SendFilingReminder(ctx context.Context, toEmail, toName string, deadline domain.FilingDeadline) error {
	due := deadline.DueDate.Format("02 Jan 2006")
	subject := fmt.Sprintf("Reminder: %s due %s", deadline.ReturnType, due)
	plainText := fmt.Sprintf("Your %s is due on %s. File before the deadline to avoid late fees.", deadline.ReturnType, due)
	htmlContent := fmt.Sprintf(`
		<html>
		<body>
			<h2>Filing Deadline Approaching</h2>
			<p>Your <strong>%s</strong> is due on <strong>%s</strong>.</p>
			<p>File before the deadline to avoid late fees.</p>
		</body>
		</html>`,
		deadline.ReturnType, due,
	)
	return s.send(toEmail, toName, subject, plainText, htmlContent)
}
