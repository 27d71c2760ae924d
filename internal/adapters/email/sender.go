// Package email delivers member notifications through an external provider.
package email

import (
	"context"
	"errors"
	"time"
)

// Message is one outgoing email. Text is required; HTML is optional.
type Message struct {
	To      []string
	From    string // empty uses the sender's default
	ReplyTo string
	Subject string
	Text    string
	HTML    string
	Tag     string // booking_confirmed, reminder, enquiry, ...
}

// ErrNoRecipients is returned for a message without recipients.
var ErrNoRecipients = errors.New("email has no recipients")

// Validate checks the minimum a provider needs.
func (m Message) Validate() error {
	if len(m.To) == 0 {
		return ErrNoRecipients
	}
	if m.Subject == "" {
		return errors.New("email subject cannot be empty")
	}
	if m.Text == "" && m.HTML == "" {
		return errors.New("email body cannot be empty")
	}
	return nil
}

// Receipt is the provider's acknowledgement.
type Receipt struct {
	MessageID string
	SentAt    time.Time
}

// Sender sends emails.
type Sender interface {
	Send(ctx context.Context, msg Message) (Receipt, error)
	SendBatch(ctx context.Context, msgs []Message) ([]Receipt, error)
}
