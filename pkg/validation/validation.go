package validation

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// FormatErrors turns validator errors into one message per failed field.
// Errors that are not validation errors yield a single generic entry.
func FormatErrors(err error) []string {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		messages = append(messages, Message(fe))
	}
	return messages
}

// Message renders one field error, preferring the per-field override
func Message(fe validator.FieldError) string {
	if custom := CustomMessage(fe.StructField()); custom != nil {
		if msg, ok := custom[fe.Tag()]; ok {
			return msg
		}
	}
	return DefaultMessage(fe.Field(), fe.Tag(), fe.Param())
}
