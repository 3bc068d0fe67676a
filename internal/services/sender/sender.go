// Package sender содержит сервис отправки писем пользователям:
// письмо со ссылкой на сброс пароля и подтверждение успешного сброса.
package sender

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/magabrotheeeer/ecommerce-backend/internal/lib/sl"
	"github.com/magabrotheeeer/ecommerce-backend/internal/lib/smtp"
)

// SenderService отправляет транзакционные письма через SMTP транспорт.
type SenderService struct {
	transport smtp.TransportInterface
	log       *slog.Logger
}

// NewSenderService создает новый экземпляр SenderService.
func NewSenderService(log *slog.Logger, transport smtp.TransportInterface) *SenderService {
	return &SenderService{
		transport: transport,
		log:       log,
	}
}

// SendPasswordResetEmail отправляет письмо со ссылкой для сброса пароля.
// Сам токен в теле ответа API не возвращается, ссылка — единственный канал доставки.
func (s *SenderService) SendPasswordResetEmail(email, resetURL string) error {
	subject := "Password reset requested"
	bodyText := fmt.Sprintf("Hello!\n\n"+
		"We received a request to reset the password for your account.\n"+
		"Follow the link below to choose a new password. The link is valid for one hour:\n\n%s\n\n"+
		"If you did not request a reset, you can safely ignore this email.", resetURL)

	return s.sendEmail([]string{email}, subject, bodyText)
}

// SendResetSuccessEmail отправляет подтверждение, что пароль был изменен.
func (s *SenderService) SendResetSuccessEmail(email string) error {
	subject := "Your password has been changed"
	bodyText := "Hello!\n\n" +
		"The password for your account was just changed.\n" +
		"If this was not you, please contact support immediately."

	return s.sendEmail([]string{email}, subject, bodyText)
}

func (s *SenderService) sendEmail(to []string, subject, bodyText string) error {
	msg := strings.Join([]string{
		"From: " + s.transport.GetSMTPUser(),
		"To: " + strings.Join(to, ";"),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		bodyText,
	}, "\r\n")

	client, err := s.transport.Connect()
	if err != nil {
		s.log.Error("Failed to connect to SMTP server", "error", sl.Err(err))
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	if err := client.Mail(s.transport.GetSMTPUser()); err != nil {
		s.log.Error("Failed to set MAIL FROM", "from", s.transport.GetSMTPUser(), "error", sl.Err(err))
		return err
	}

	for _, addr := range to {
		if err := client.Rcpt(addr); err != nil {
			s.log.Error("Failed to set RCPT TO", "recipient", addr, "error", sl.Err(err))
			return err
		}
	}

	wc, err := client.Data()
	if err != nil {
		s.log.Error("Failed to get Data writer", "error", sl.Err(err))
		return err
	}

	_, err = wc.Write([]byte(msg))
	if err != nil {
		s.log.Error("Failed to write email body", "error", sl.Err(err))
		return err
	}

	if err = wc.Close(); err != nil {
		s.log.Error("Failed to close Data writer", "error", sl.Err(err))
		return err
	}

	if err = client.Quit(); err != nil {
		s.log.Error("Failed to quit SMTP client", "error", sl.Err(err))
		return err
	}

	s.log.Info("email sent successfully", "to", to)
	return nil
}
