package notify

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog/log"
)

// ResendNotifier sends notifications as e-mail through Resend.
type ResendNotifier struct {
	client *resend.Client
	from   string
}

func NewResendNotifier(apiKey, from string) *ResendNotifier {
	return &ResendNotifier{
		client: resend.NewClient(apiKey),
		from:   from,
	}
}

func (n *ResendNotifier) Publish(ctx context.Context, msg Message) error {
	params := &resend.SendEmailRequest{
		From:    n.from,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    msg.HTML,
	}

	sent, err := n.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	log.Info().Str("id", sent.Id).Str("to", msg.To).Msg("email sent")
	return nil
}

// New picks the Resend notifier when an API key is configured.
func New(apiKey, from string) Notifier {
	if apiKey == "" {
		log.Warn().Msg("RESEND_API_KEY not set, notifications will only be logged")
		return NewLogNotifier()
	}
	return NewResendNotifier(apiKey, from)
}
