package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FormError is a user-facing validation failure. Handlers re-render the
// submitted form with its message and a 400 status.
type FormError struct {
	Message string
}

func (e *FormError) Error() string {
	return e.Message
}

var fieldLabels = map[string]string{
	"FullName":    "Full name",
	"Position":    "Position",
	"Phone":       "Phone",
	"Email":       "Email",
	"Date":        "Date",
	"Type":        "Type",
	"Description": "Description",
}

// bindError turns a binding failure into a FormError naming the first
// offending field.
func bindError(err error) *FormError {
	var validationErrors validator.ValidationErrors

	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return &FormError{Message: "The submitted form could not be read."}
	}

	fieldErr := validationErrors[0]
	label, ok := fieldLabels[fieldErr.Field()]
	if !ok {
		label = fieldErr.Field()
	}

	var message string
	switch fieldErr.Tag() {
	case "required":
		message = fmt.Sprintf("%s is required.", label)
	case "max":
		message = fmt.Sprintf("%s must be at most %s characters.", label, fieldErr.Param())
	case "email":
		message = fmt.Sprintf("%s must be a valid email address.", label)
	default:
		message = fmt.Sprintf("%s is invalid.", label)
	}

	return &FormError{Message: message}
}

func trimAll(values ...*string) {
	for _, value := range values {
		*value = strings.TrimSpace(*value)
	}
}
