package mailer

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"
	"go.uber.org/zap"
)

// SMTPSettings are the credentials of the outgoing mailbox.
type SMTPSettings struct {
	Host     string
	Port     int
	Username string
	Password string
}

type smtpSender interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

// SMTPTransport sends through an authenticated SMTP relay (Gmail with an
// application password in production).
type SMTPTransport struct {
	sender smtpSender
	logger *zap.Logger
}

// NewSMTPTransport builds a go-mail client with PLAIN auth. Port 465 speaks
// TLS from the first byte; any other port must offer STARTTLS.
func NewSMTPTransport(s SMTPSettings, logger *zap.Logger) (*SMTPTransport, error) {
	c, err := mail.NewClient(s.Host, smtpOptions(s)...)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}
	return newSMTPTransport(c, logger), nil
}

func smtpOptions(s SMTPSettings) []mail.Option {
	opts := []mail.Option{
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(s.Username),
		mail.WithPassword(s.Password),
	}
	if implicitTLS(s.Port) {
		return append(opts, mail.WithSSLPort(false))
	}
	return append(opts, mail.WithPort(s.Port), mail.WithTLSPortPolicy(mail.TLSMandatory))
}

func implicitTLS(port int) bool { return port == mail.DefaultPortSSL }

func newSMTPTransport(sender smtpSender, logger *zap.Logger) *SMTPTransport {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SMTPTransport{sender: sender, logger: logger}
}

func (t *SMTPTransport) Send(ctx context.Context, msg Message) error {
	m, err := buildMsg(msg)
	if err != nil {
		return err
	}
	if err := t.sender.DialAndSendWithContext(ctx, m); err != nil {
		t.logger.Error("smtp send failed", zap.String("subject", msg.Subject), zap.Error(err))
		return fmt.Errorf("smtp send: %w", err)
	}
	t.logger.Info("email sent", zap.String("via", "smtp"), zap.String("subject", msg.Subject))
	return nil
}

func buildMsg(msg Message) (*mail.Msg, error) {
	if err := msg.validate(); err != nil {
		return nil, err
	}
	m := mail.NewMsg()
	if msg.FromName != "" {
		if err := m.FromFormat(msg.FromName, msg.FromAddr); err != nil {
			return nil, fmt.Errorf("from: %w", err)
		}
	} else if err := m.From(msg.FromAddr); err != nil {
		return nil, fmt.Errorf("from: %w", err)
	}
	if err := m.To(msg.To...); err != nil {
		return nil, fmt.Errorf("to: %w", err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextHTML, msg.HTML)
	return m, nil
}
