package validator

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

func NewValidator() *validator.Validate {
	validator := validator.New(validator.WithRequiredStructEnabled())

	validator.RegisterValidation("row_letter", validateRowLetter)

	return validator
}

// validateRowLetter accepts exactly one uppercase letter, the full range of
// row labels a room can have.
func validateRowLetter(fl validator.FieldLevel) bool {
	row := fl.Field().String()

	if len(row) != 1 {
		return false
	}

	return row[0] >= 'A' && row[0] <= 'Z'
}

// ValidationMessage converts validator errors into readable messages
func ValidationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s", err.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", err.Param())
	case "row_letter":
		return "must be a single row letter between A and Z"
	default:
		return "is invalid"
	}
}
