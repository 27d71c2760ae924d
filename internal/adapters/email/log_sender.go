package email

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// LogSender is the development sender: it logs each message and keeps the
// most recent ones in memory for the admin outbox view instead of delivering.
type LogSender struct {
	mu    sync.Mutex
	sent  []Message
	limit int
}

// NewLogSender keeps up to limit messages (50 when limit <= 0).
func NewLogSender(limit int) *LogSender {
	if limit <= 0 {
		limit = 50
	}
	return &LogSender{limit: limit}
}

// Send records msg.
func (s *LogSender) Send(_ context.Context, msg Message) (Receipt, error) {
	if err := msg.Validate(); err != nil {
		return Receipt{}, err
	}
	slog.Info("email_event", "event", "logged", "tag", msg.Tag, "to", msg.To, "subject", msg.Subject)
	s.mu.Lock()
	s.sent = append(s.sent, msg)
	if len(s.sent) > s.limit {
		s.sent = s.sent[len(s.sent)-s.limit:]
	}
	s.mu.Unlock()
	return Receipt{MessageID: "log-" + uuid.NewString(), SentAt: time.Now()}, nil
}

// SendBatch records each message in order.
func (s *LogSender) SendBatch(ctx context.Context, msgs []Message) ([]Receipt, error) {
	receipts := make([]Receipt, 0, len(msgs))
	for _, m := range msgs {
		r, err := s.Send(ctx, m)
		if err != nil {
			return receipts, err
		}
		receipts = append(receipts, r)
	}
	return receipts, nil
}

// Sent returns a copy of the retained messages, oldest first.
func (s *LogSender) Sent() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Message(nil), s.sent...)
}
