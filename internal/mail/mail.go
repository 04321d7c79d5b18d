package mail

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/smtp"
	"strings"
	"time"
)

// PasswordReset is the content of a reset email.
type PasswordReset struct {
	To       string
	Username string
	ResetURL string
	Expiry   time.Duration
}

// Subject returns the email subject line.
func (m PasswordReset) Subject() string {
	return "Password Reset Request - Activity Tracker"
}

// Body returns the plain text email body.
func (m PasswordReset) Body() string {
	return fmt.Sprintf("Hello %s,\n\n"+
		"You have requested to reset your password for your Activity Tracker account.\n\n"+
		"Please click the link below to reset your password:\n"+
		"%s\n\n"+
		"This link will expire in %d minutes.\n\n"+
		"If you did not request this password reset, please ignore this email and your password will remain unchanged.\n",
		m.Username, m.ResetURL, int(m.Expiry.Minutes()))
}

// Mailer delivers outgoing email.
type Mailer interface {
	SendPasswordReset(ctx context.Context, msg PasswordReset) error
}

// SMTPConfig holds the connection settings of an SMTP relay.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPMailer sends mail through an SMTP relay with PLAIN auth.
type SMTPMailer struct {
	cfg  SMTPConfig
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg, send: smtp.SendMail}
}

func (m *SMTPMailer) SendPasswordReset(ctx context.Context, msg PasswordReset) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	addr := net.JoinHostPort(m.cfg.Host, fmt.Sprint(m.cfg.Port))
	if err := m.send(addr, auth, m.cfg.From, []string{msg.To}, m.compose(msg)); err != nil {
		return fmt.Errorf("failed to send password reset email: %w", err)
	}
	return nil
}

func (m *SMTPMailer) compose(msg PasswordReset) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", m.cfg.From)
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject())
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n\r\n")
	b.WriteString(strings.ReplaceAll(msg.Body(), "\n", "\r\n"))
	return []byte(b.String())
}

// LogMailer writes messages to the log instead of sending them.
// Used when no SMTP relay is configured.
type LogMailer struct {
	logger *slog.Logger
}

func NewLogMailer(logger *slog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) SendPasswordReset(_ context.Context, msg PasswordReset) error {
	m.logger.Info("password reset email", "to", msg.To, "reset_url", msg.ResetURL)
	return nil
}
