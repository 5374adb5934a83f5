package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/wneessen/go-mail"

	"randohub/internal/domain"
	"randohub/internal/ports/output"
)

var _ output.Notifier = (*EmailSender)(nil)

// SMTPConfig holds the outgoing mail server settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	Timeout  time.Duration
}

// EmailSender delivers notifications over SMTP. Each Send dials a fresh
// connection.
type EmailSender struct {
	cfg      SMTPConfig
	renderer *Renderer
	log      zerolog.Logger
}

func NewEmailSender(cfg SMTPConfig, renderer *Renderer, log zerolog.Logger) *EmailSender {
	if cfg.Timeout == 0 {
		cfg.Timeout = 15 * time.Second
	}
	return &EmailSender{cfg: cfg, renderer: renderer, log: log.With().Str("component", "email").Logger()}
}

func (s *EmailSender) Send(ctx context.Context, to string, kind domain.TemplateKind, payload output.Payload) error {
	subject, body := s.renderer.Render(kind, payload)
	msg, err := s.message(to, subject, body)
	if err != nil {
		return err
	}

	opts := []mail.Option{
		mail.WithPort(s.cfg.Port),
		mail.WithTimeout(s.cfg.Timeout),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if s.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(s.cfg.Username),
			mail.WithPassword(s.cfg.Password),
		)
	}
	client, err := mail.NewClient(s.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send %s to %s: %w", kind, to, err)
	}
	s.log.Debug().Str("to", to).Str("kind", string(kind)).Msg("email sent")
	return nil
}

func (s *EmailSender) message(to, subject, body string) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(s.cfg.From); err != nil {
		return nil, fmt.Errorf("from address %q: %w", s.cfg.From, err)
	}
	if err := msg.To(to); err != nil {
		return nil, fmt.Errorf("to address %q: %w", to, err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, body)
	return msg, nil
}
