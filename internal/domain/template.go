package domain

// TemplateKind identifies which message a notifier renders for a recipient.
type TemplateKind string

const (
	TemplateVerificationCode         TemplateKind = "verification_code"
	TemplateRegistrationConfirmation TemplateKind = "registration_confirmation"
	TemplateCancellationConfirmation TemplateKind = "cancellation_confirmation"
	TemplateEventReminder            TemplateKind = "event_reminder"
)
