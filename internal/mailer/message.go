package mailer

import (
	"context"
	"errors"
)

// Message is a single HTML e-mail.
type Message struct {
	FromName string
	FromAddr string
	To       []string
	Subject  string
	HTML     string
}

var ErrNoRecipients = errors.New("mailer: message has no recipients")

func (m Message) validate() error {
	if len(m.To) == 0 {
		return ErrNoRecipients
	}
	if m.FromAddr == "" {
		return errors.New("mailer: message has no sender")
	}
	return nil
}

// Transport delivers messages. Implementations make a single attempt.
type Transport interface {
	Send(ctx context.Context, msg Message) error
}

const (
	SenderName = "Entre Alas y Raíces"

	// DefaultNoReply is the sender used for internal notifications when none
	// is configured.
	DefaultNoReply = "no-reply@entrealasyraices.cl"
)
