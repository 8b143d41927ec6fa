package services

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"
)

// Mailer dispatches one-time codes to customers. Delivery is best-effort:
// a failed send never invalidates the stored code.
type Mailer interface {
	SendCode(email, code string) error
}

// EmailService sends OTP mail over SMTP.
type EmailService struct {
	host     string
	port     int
	username string
	password string
	from     string
	fromName string
}

// NewEmailService creates an EmailService with the given SMTP settings.
func NewEmailService(host string, port int, username, password, from, fromName string) *EmailService {
	return &EmailService{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
		fromName: fromName,
	}
}

// SendCode emails the one-time code to the given address.
func (s *EmailService) SendCode(email, code string) error {
	if s.host == "" {
		log.Printf("[Email] SMTP not configured, code for %s not sent", email)
		return nil
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s <%s>\r\n", s.fromName, s.from)
	fmt.Fprintf(&msg, "To: %s\r\n", email)
	msg.WriteString("Subject: Your login code\r\n")
	msg.WriteString("MIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n")
	fmt.Fprintf(&msg, "<html><body><p>Your one-time login code is:</p><h1>%s</h1>", code)
	msg.WriteString("<p>This code expires in <strong>5 minutes</strong>. ")
	msg.WriteString("If you did not request it, ignore this email.</p></body></html>\r\n")

	addr := fmt.Sprintf("%s:%d", s.host, s.port)
	auth := smtp.PlainAuth("", s.username, s.password, s.host)

	if err := smtp.SendMail(addr, auth, s.from, []string{email}, []byte(msg.String())); err != nil {
		return fmt.Errorf("send otp email to %s: %w", email, err)
	}
	return nil
}
