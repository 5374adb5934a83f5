package i18n

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestTranslatorT(t *testing.T) {
	tr := NewTranslator("fr", zerolog.Nop())

	assert.Equal(t, "Événement non trouvé", tr.T("fr", "error.event_not_found", nil))
	assert.Equal(t, "Event not found", tr.T("en", "error.event_not_found", nil))
	assert.Equal(t, "Rappel : Lac Blanc", tr.T("", "notification.event_reminder.subject", map[string]any{"EventName": "Lac Blanc"}))
}

func TestTranslatorFallbacks(t *testing.T) {
	tr := NewTranslator("fr", zerolog.Nop())

	// Unknown locale falls back to the default.
	assert.Equal(t, "Erreur serveur", tr.T("de", "error.internal", nil))
	assert.Equal(t, "no.such.key", tr.T("fr", "no.such.key", nil))
	assert.Empty(t, tr.T("fr", "", nil))
}

func TestNewTranslatorBadLocale(t *testing.T) {
	tr := NewTranslator("???", zerolog.Nop())
	assert.Equal(t, "Erreur serveur", tr.T("", "error.internal", nil))
}
