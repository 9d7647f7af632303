package services

import (
	"crypto/tls"
	"fmt"
	"net/smtp"

	"github.com/aurelhaus/backend/internal/config"
)

// EmailService sends mail over SMTP. It is the delivery collaborator behind
// the contact relay.
type EmailService struct {
	cfg *config.Config
}

func NewEmailService(cfg *config.Config) *EmailService {
	return &EmailService{cfg: cfg}
}

// SendContactMessage forwards a contact form submission to the site owner.
// The visitor's address goes into Reply-To so the owner can answer directly.
func (s *EmailService) SendContactMessage(msg ContactMessage) error {
	subject := fmt.Sprintf("Contact form message from %s", msg.Name)

	body := fmt.Sprintf("Name: %s\nEmail: %s\n\n%s\n", msg.Name, msg.Email, msg.Body)

	from := fmt.Sprintf("%s <%s>", s.cfg.SMTPFromName, s.cfg.SMTPFrom)
	message := fmt.Sprintf("From: %s\r\n", from)
	message += fmt.Sprintf("To: %s\r\n", s.cfg.ContactTo)
	message += fmt.Sprintf("Reply-To: %s\r\n", msg.Email)
	message += fmt.Sprintf("Subject: %s\r\n", subject)
	message += "Content-Type: text/plain; charset=\"UTF-8\"\r\n"
	message += "\r\n"
	message += body

	return s.sendSMTP(s.cfg.ContactTo, []byte(message))
}

// sendSMTP sends an email via SMTP
func (s *EmailService) sendSMTP(to string, message []byte) error {
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	addr := fmt.Sprintf("%s:%d", s.cfg.SMTPHost, s.cfg.SMTPPort)

	// Implicit TLS (port 465)
	if s.cfg.SMTPPort == 465 {
		tlsConfig := &tls.Config{
			ServerName: s.cfg.SMTPHost,
		}

		conn, err := tls.Dial("tcp", addr, tlsConfig)
		if err != nil {
			return fmt.Errorf("failed to connect to SMTP server: %w", err)
		}
		defer conn.Close()

		client, err := smtp.NewClient(conn, s.cfg.SMTPHost)
		if err != nil {
			return fmt.Errorf("failed to create SMTP client: %w", err)
		}
		defer client.Close()

		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("SMTP authentication failed: %w", err)
		}

		if err := client.Mail(s.cfg.SMTPFrom); err != nil {
			return err
		}
		if err := client.Rcpt(to); err != nil {
			return err
		}

		w, err := client.Data()
		if err != nil {
			return err
		}
		if _, err = w.Write(message); err != nil {
			return err
		}
		if err = w.Close(); err != nil {
			return err
		}

		return client.Quit()
	}

	// STARTTLS (port 587) and plain connections
	return smtp.SendMail(addr, auth, s.cfg.SMTPFrom, []string{to}, message)
}
