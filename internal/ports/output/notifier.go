package output

import (
	"context"

	"randohub/internal/domain"
)

// Payload holds template data for a notification (event name, date, recipient name...).
type Payload map[string]any

// Notifier delivers one rendered message to one recipient. A nil error means
// the message was handed to the transport.
type Notifier interface {
	Send(ctx context.Context, to string, kind domain.TemplateKind, payload Payload) error
}
