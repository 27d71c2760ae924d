package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"gymportal/internal/adapters/email"
	"gymportal/internal/domain/training"
	"gymportal/internal/i18n"
)

// SendTrainingEnquiryDeps holds dependencies for SendTrainingEnquiry.
type SendTrainingEnquiryDeps struct {
	Content    *training.Content
	Sender     email.Sender
	To         string // the gym's enquiry inbox
	Translator *i18n.Translator
}

// ExecuteSendTrainingEnquiry forwards a personal training enquiry to the gym.
// The enquirer's address is set as Reply-To so staff can answer directly.
// PRE: Content is loaded
// POST: One email sent to deps.To
func ExecuteSendTrainingEnquiry(ctx context.Context, input training.Enquiry, deps SendTrainingEnquiryDeps) error {
	if err := input.Validate(deps.Content); err != nil {
		return err
	}
	t := deps.Translator
	if t == nil {
		t = i18n.FromContext(ctx)
	}

	var body strings.Builder
	fmt.Fprintf(&body, "Name: %s\nEmail: %s\n", strings.TrimSpace(input.Name), strings.TrimSpace(input.Email))
	if input.Package != "" {
		fmt.Fprintf(&body, "Package: %s\n", input.Package)
	}
	fmt.Fprintf(&body, "Language: %s\n\n%s\n", t.Lang(), strings.TrimSpace(input.Message))

	msg := email.Message{
		To:      []string{deps.To},
		ReplyTo: strings.TrimSpace(input.Email),
		Subject: t.T("email.enquiry.subject", strings.TrimSpace(input.Name)),
		Text:    body.String(),
		Tag:     "training_enquiry",
	}
	if _, err := deps.Sender.Send(ctx, msg); err != nil {
		return fmt.Errorf("send enquiry: %w", err)
	}

	slog.Info("training_event", "event", "enquiry_sent", "package", input.Package, "lang", t.Lang())
	return nil
}
