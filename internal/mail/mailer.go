// Package mail sends welcome emails over SMTP. Delivery failures are
// reported to the caller but are never fatal to the import row that
// triggered them.
package mail

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/capitolyouth/admin/internal/config"
	"github.com/capitolyouth/admin/internal/roster"
)

// SMTPMailer implements roster.Mailer against an SMTP relay.
type SMTPMailer struct {
	cfg config.MailConfig
}

// NewSMTPMailer creates a mailer from config.
func NewSMTPMailer(cfg config.MailConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

// SendWelcomeEmail delivers one welcome message. Returns (false, nil) when
// mail is disabled or no relay is configured, so imports stay usable in
// environments without SMTP.
func (m *SMTPMailer) SendWelcomeEmail(ctx context.Context, msg roster.WelcomeEmail) (bool, error) {
	if !m.cfg.Enabled || m.cfg.SMTPHost == "" {
		return false, nil
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}

	body := buildWelcomeBody(m.cfg.From, msg)
	addr := fmt.Sprintf("%s:%d", m.cfg.SMTPHost, m.cfg.SMTPPort)

	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.SMTPHost)
	}

	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{msg.Email}, body); err != nil {
		return false, fmt.Errorf("smtp send: %w", err)
	}
	return true, nil
}

// buildWelcomeBody renders the plain-text welcome message.
func buildWelcomeBody(from string, msg roster.WelcomeEmail) []byte {
	var b strings.Builder

	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", msg.Email)
	fmt.Fprintf(&b, "Subject: Welcome to %s %d\r\n", msg.ProgramName, msg.Year)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")

	fmt.Fprintf(&b, "Hello %s %s,\r\n\r\n", msg.FirstName, msg.LastName)
	if msg.Kind == roster.KindStaff && msg.RoleLabel != "" {
		fmt.Fprintf(&b, "You have been registered as %s staff (%s) for %s %d.\r\n\r\n",
			msg.ProgramName, msg.RoleLabel, msg.ProgramName, msg.Year)
	} else {
		fmt.Fprintf(&b, "You have been registered as a delegate for %s %d.\r\n\r\n",
			msg.ProgramName, msg.Year)
	}
	if msg.TempPassword != "" {
		fmt.Fprintf(&b, "Your temporary password is: %s\r\n", msg.TempPassword)
		b.WriteString("Please sign in and change it as soon as possible.\r\n")
	}

	return []byte(b.String())
}
