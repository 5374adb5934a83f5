package notify

import (
	"context"

	"github.com/rs/zerolog"

	"randohub/internal/domain"
	"randohub/internal/ports/output"
)

var _ output.Notifier = (*Fanout)(nil)

// Fanout sends through primary and then through every mirror. Only the
// primary's error is returned; mirror failures are logged.
type Fanout struct {
	primary output.Notifier
	mirrors []output.Notifier
	log     zerolog.Logger
}

func NewFanout(primary output.Notifier, log zerolog.Logger, mirrors ...output.Notifier) *Fanout {
	return &Fanout{primary: primary, mirrors: mirrors, log: log}
}

func (f *Fanout) Send(ctx context.Context, to string, kind domain.TemplateKind, payload output.Payload) error {
	if err := f.primary.Send(ctx, to, kind, payload); err != nil {
		return err
	}
	for _, m := range f.mirrors {
		if err := m.Send(ctx, to, kind, payload); err != nil {
			f.log.Warn().Err(err).Str("kind", string(kind)).Msg("notification mirror failed")
		}
	}
	return nil
}

// LogSender stands in for email when no SMTP host is configured.
type LogSender struct {
	renderer *Renderer
	log      zerolog.Logger
}

var _ output.Notifier = (*LogSender)(nil)

func NewLogSender(renderer *Renderer, log zerolog.Logger) *LogSender {
	return &LogSender{renderer: renderer, log: log}
}

func (s *LogSender) Send(_ context.Context, to string, kind domain.TemplateKind, payload output.Payload) error {
	subject, _ := s.renderer.Render(kind, payload)
	s.log.Info().Str("to", to).Str("kind", string(kind)).Str("subject", subject).Msg("notification (smtp disabled)")
	return nil
}
