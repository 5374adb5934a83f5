package domain

import "errors"

// Domain errors.
var (
	ErrEventNotFound           = errors.New("événement non trouvé")
	ErrEventInPast             = errors.New("impossible de s'inscrire à un événement passé")
	ErrParticipationNotFound   = errors.New("participation non trouvée")
	ErrAlreadyRegistered       = errors.New("vous êtes déjà inscrit à cet événement")
	ErrParticipantConflict     = errors.New("participation déjà existante pour ce couple utilisateur/événement")
	ErrParticipantAttended     = errors.New("participation déjà marquée comme présente")
	ErrUserNotFound            = errors.New("utilisateur non trouvé")
	ErrUserExists              = errors.New("un compte existe déjà pour cet email")
	ErrUserNotVerified         = errors.New("compte non vérifié")
	ErrInvalidCredentials      = errors.New("identifiants invalides")
	ErrInvalidVerificationCode = errors.New("code de vérification invalide")
	ErrForbidden               = errors.New("action non autorisée")
	ErrInvalidFilter           = errors.New("filtre invalide")
	ErrInvalidDifficulty       = errors.New("la difficulté doit être facile, moyenne ou difficile")
	ErrUnknownField            = errors.New("champ inconnu")
	ErrInvalidValue            = errors.New("valeur invalide")
)

var codes = []struct {
	err  error
	code string
}{
	{ErrEventNotFound, "event_not_found"},
	{ErrEventInPast, "event_in_past"},
	{ErrParticipationNotFound, "participation_not_found"},
	{ErrAlreadyRegistered, "already_registered"},
	{ErrParticipantConflict, "already_registered"},
	{ErrParticipantAttended, "participant_attended"},
	{ErrUserNotFound, "user_not_found"},
	{ErrUserExists, "user_exists"},
	{ErrUserNotVerified, "user_not_verified"},
	{ErrInvalidCredentials, "invalid_credentials"},
	{ErrInvalidVerificationCode, "invalid_verification_code"},
	{ErrForbidden, "forbidden"},
	{ErrInvalidFilter, "invalid_filter"},
	{ErrInvalidDifficulty, "invalid_difficulty"},
	{ErrUnknownField, "unknown_field"},
	{ErrInvalidValue, "invalid_value"},
}

// Code returns the stable snake_case code of the first domain error found in
// err's chain, or "" when err carries no domain error.
func Code(err error) string {
	if err == nil {
		return ""
	}
	for _, c := range codes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}
	return ""
}
