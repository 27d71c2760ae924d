package email

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/resend/resend-go/v2"
)

// resendBatchLimit is the most emails Resend accepts per batch call.
const resendBatchLimit = 100

// ResendSender sends emails via the Resend API.
type ResendSender struct {
	client  *resend.Client
	from    string
	replyTo string
}

// NewResendSender creates a sender with default from and reply-to addresses.
// PRE: apiKey is a valid Resend API key
func NewResendSender(apiKey, from, replyTo string) *ResendSender {
	return &ResendSender{client: resend.NewClient(apiKey), from: from, replyTo: replyTo}
}

func (s *ResendSender) request(msg Message) *resend.SendEmailRequest {
	req := &resend.SendEmailRequest{
		From:    msg.From,
		To:      msg.To,
		Subject: msg.Subject,
		Text:    msg.Text,
		Html:    msg.HTML,
		ReplyTo: msg.ReplyTo,
	}
	if req.From == "" {
		req.From = s.from
	}
	if req.ReplyTo == "" {
		req.ReplyTo = s.replyTo
	}
	if msg.Tag != "" {
		req.Tags = []resend.Tag{{Name: "category", Value: msg.Tag}}
	}
	return req
}

// Send delivers a single email.
// PRE: msg passes Validate
// POST: Email is queued; returns the Resend message ID
func (s *ResendSender) Send(ctx context.Context, msg Message) (Receipt, error) {
	if err := msg.Validate(); err != nil {
		return Receipt{}, err
	}
	sent, err := s.client.Emails.SendWithContext(ctx, s.request(msg))
	if err != nil {
		slog.Error("email_event", "event", "send_failed", "tag", msg.Tag, "error", err)
		return Receipt{}, fmt.Errorf("resend send: %w", err)
	}
	slog.Info("email_event", "event", "sent", "tag", msg.Tag, "message_id", sent.Id)
	return Receipt{MessageID: sent.Id, SentAt: time.Now()}, nil
}

// SendBatch delivers msgs in chunks of resendBatchLimit.
// POST: on error, receipts for the chunks already accepted are returned
func (s *ResendSender) SendBatch(ctx context.Context, msgs []Message) ([]Receipt, error) {
	var receipts []Receipt
	for start := 0; start < len(msgs); start += resendBatchLimit {
		end := min(start+resendBatchLimit, len(msgs))
		chunk := make([]*resend.SendEmailRequest, 0, end-start)
		for _, msg := range msgs[start:end] {
			if err := msg.Validate(); err != nil {
				return receipts, err
			}
			chunk = append(chunk, s.request(msg))
		}

		resp, err := s.client.Batch.SendWithContext(ctx, chunk)
		if err != nil {
			slog.Error("email_event", "event", "batch_failed", "size", len(chunk), "error", err)
			return receipts, fmt.Errorf("resend batch: %w", err)
		}
		for _, item := range resp.Data {
			receipts = append(receipts, Receipt{MessageID: item.Id, SentAt: time.Now()})
		}
		slog.Info("email_event", "event", "batch_sent", "size", len(chunk))
	}
	return receipts, nil
}
