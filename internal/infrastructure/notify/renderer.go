package notify

import (
	"html"
	"time"

	"randohub/internal/domain"
	"randohub/internal/ports/output"
	"randohub/pkg/tz"
)

// Renderer turns a template kind and its payload into a localized subject and
// HTML body.
type Renderer struct {
	t      output.T
	locale string
}

func NewRenderer(t output.T, locale string) *Renderer {
	return &Renderer{t: t, locale: locale}
}

// Render localizes kind. A time.Time under "Date" is exposed to templates as
// DateText, formatted in Paris time. String values are HTML-escaped in the
// body only; the subject is a plain-text header.
func (r *Renderer) Render(kind domain.TemplateKind, payload output.Payload) (subject, body string) {
	plain := make(map[string]any, len(payload)+1)
	escaped := make(map[string]any, len(payload)+1)
	for k, v := range payload {
		plain[k] = v
		if str, ok := v.(string); ok {
			escaped[k] = html.EscapeString(str)
		} else {
			escaped[k] = v
		}
	}
	if d, ok := payload["Date"].(time.Time); ok {
		plain["DateText"] = tz.FormatEventDate(d)
		escaped["DateText"] = html.EscapeString(tz.FormatEventDate(d))
	}
	prefix := "notification." + string(kind)
	return r.t.T(r.locale, prefix+".subject", plain), r.t.T(r.locale, prefix+".body", escaped)
}

// Mirror returns the one-line summary posted to the Discord channel.
func (r *Renderer) Mirror(to, subject string) string {
	return r.t.T(r.locale, "notification.mirror", map[string]any{"To": to, "Subject": subject})
}
