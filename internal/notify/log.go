package notify

import (
	"context"

	"github.com/rs/zerolog/log"
)

// LogNotifier implements Notifier by logging messages. It is used when no
// mail provider is configured.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) Publish(ctx context.Context, msg Message) error {
	log.Info().Str("to", msg.To).Str("subject", msg.Subject).Msg("[dev mode] notification not sent")
	return nil
}
