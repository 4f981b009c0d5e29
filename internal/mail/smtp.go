package mail

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net"
	"net/smtp"
	"time"

	gomail "github.com/emersion/go-message/mail"
)

// SMTPSender delivers email over SMTP with STARTTLS when the server offers
// it. Each Send dials a fresh connection; submission volume does not justify
// connection pooling.
type SMTPSender struct {
	addr     string // host:port
	username string
	password string
	timeout  time.Duration
}

// NewSMTPSender creates an SMTPSender. username may be empty for servers
// without authentication. timeout bounds the whole delivery attempt.
func NewSMTPSender(addr, username, password string, timeout time.Duration) *SMTPSender {
	return &SMTPSender{addr: addr, username: username, password: password, timeout: timeout}
}

var _ Sender = (*SMTPSender)(nil)

// Send composes the MIME message and delivers it. The context deadline and
// the sender timeout both bound the attempt; whichever is sooner wins.
func (s *SMTPSender) Send(ctx context.Context, email *Email) error {
	body, err := Compose(email)
	if err != nil {
		return fmt.Errorf("composing email: %w", err)
	}

	deadline := time.Now().Add(s.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	conn, err := net.DialTimeout("tcp", s.addr, time.Until(deadline))
	if err != nil {
		return fmt.Errorf("connecting to %s: %w", s.addr, err)
	}
	if err := conn.SetDeadline(deadline); err != nil {
		conn.Close()
		return err
	}

	host, _, err := net.SplitHostPort(s.addr)
	if err != nil {
		host = s.addr
	}

	client, err := smtp.NewClient(conn, host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp handshake with %s: %w", s.addr, err)
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: host}); err != nil {
			return fmt.Errorf("starttls: %w", err)
		}
	}

	if s.username != "" {
		auth := smtp.PlainAuth("", s.username, s.password, host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("smtp auth: %w", err)
		}
	}

	if err := client.Mail(email.From.Email); err != nil {
		return fmt.Errorf("mail from %s: %w", email.From.Email, err)
	}
	if err := client.Rcpt(email.To.Email); err != nil {
		return fmt.Errorf("rcpt to %s: %w", email.To.Email, err)
	}

	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(body); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	return client.Quit()
}

// Compose renders the email into RFC 5322 wire format with a single inline
// HTML part.
func Compose(email *Email) ([]byte, error) {
	var buf bytes.Buffer

	var h gomail.Header
	h.SetDate(time.Now())
	h.SetSubject(email.Subject)
	h.SetAddressList("From", []*gomail.Address{
		{Name: email.From.Name, Address: email.From.Email},
	})
	h.SetAddressList("To", []*gomail.Address{
		{Name: email.To.Name, Address: email.To.Email},
	})
	h.SetContentType("text/html", map[string]string{"charset": "utf-8"})

	w, err := gomail.CreateSingleInlineWriter(&buf, h)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write([]byte(email.HTML)); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// LogSender writes the would-be email to the log instead of delivering it.
// Used when no SMTP server is configured (local development).
type LogSender struct{}

var _ Sender = (*LogSender)(nil)

// Send logs the email and reports success.
func (LogSender) Send(ctx context.Context, email *Email) error {
	slog.Info("email delivery skipped (no SMTP configured)",
		"to", email.To.String(),
		"from", email.From.String(),
		"subject", email.Subject,
	)
	return nil
}
