package output

// T resolves message keys for notification templates and API error
// messages. data fills template placeholders and may be nil. An unknown key
// renders as the key itself.
type T interface {
	T(locale, key string, data map[string]any) string
}
