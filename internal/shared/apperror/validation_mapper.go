package apperror

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// FieldError names one failed binding rule. Field is the json name.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

func formatFieldName(s string) string {
	// employee_id -> Employee Id
	s = strings.ReplaceAll(s, "_", " ")

	caser := cases.Title(language.English)
	return caser.String(s)
}

// MapValidationError turns a gin binding failure into an INVALID_INPUT error.
// The message names the first offending field; details list all of them.
func MapValidationError(err error) error {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) && len(errs) > 0 {
		fields := make([]FieldError, len(errs))
		for i, fe := range errs {
			// Field() is the json name thanks to the tag func registered in Init.
			fields[i] = FieldError{Field: fe.Field(), Rule: fe.Tag()}
		}

		e := errs[0]
		humanReadableField := formatFieldName(e.Field())

		switch e.Tag() {
		case "required", "notblank":
			return RequiredField(humanReadableField).WithDetails(fields)
		default:
			return InvalidField(humanReadableField).WithDetails(fields)
		}
	}

	return Wrap(err, CodeInvalidInput, "Invalid input", ErrInvalidInput.HTTPStatus)
}
