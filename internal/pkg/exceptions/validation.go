package exceptions

import (
	"fmt"
	"medassist-service/internal/pkg/constvars"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FormatFirstValidationError turns the first failed validator tag into a
// client-facing message like "text is required".
func FormatFirstValidationError(err error) string {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok || len(validationErrors) == 0 {
		return constvars.ErrClientCannotProcessRequest
	}

	fieldError := validationErrors[0]
	fieldName := strings.ToLower(fieldError.Field())

	message, found := constvars.CustomValidationErrorMessages[fieldError.Tag()]
	if !found {
		return fmt.Sprintf("%s is invalid", fieldName)
	}

	if strings.Contains(message, "%s") {
		message = fmt.Sprintf(message, fieldError.Param())
	}
	return fmt.Sprintf("%s %s", fieldName, message)
}
