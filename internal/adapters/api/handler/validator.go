package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// echoValidator wraps go-playground/validator so Echo can call c.Validate(req).
type echoValidator struct {
	v *validator.Validate
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
func NewValidator() *echoValidator {
	return &echoValidator{v: validator.New()}
}

func (ev *echoValidator) Validate(i any) error {
	if err := ev.v.Struct(i); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			msgs := make([]string, 0, len(ve))
			for _, fe := range ve {
				msgs = append(msgs, fieldError(fe))
			}
			return fmt.Errorf("%s", strings.Join(msgs, "; "))
		}
		return err
	}
	return nil
}

func fieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " est requis"
	case "email":
		return field + " doit être un email valide"
	case "gt":
		return fmt.Sprintf("%s doit être supérieur à %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s doit être supérieur ou égal à %s", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s doit contenir au moins %s caractères", field, fe.Param())
	case "len":
		return fmt.Sprintf("%s doit contenir %s caractères", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s doit être l'une des valeurs : %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s invalide (%s)", field, fe.Tag())
	}
}
