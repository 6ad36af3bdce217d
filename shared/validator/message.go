package validator

import (
	"errors"
	"strings"

	val "github.com/go-playground/validator/v10"
)

var (
	messages = map[string]string{
		"required":    "{field} is required",
		"gte":         "{field} must be greater than or equal to {param}",
		"lte":         "{field} must be less than or equal to {param}",
		"oneof":       "{field} must be one of {param}",
		"max":         "{field} must be less than or equal to {param}",
		"min":         "{field} must be greater than or equal to {param}",
		"email":       "{field} must be a valid email address",
		"url":         "{field} must be a valid URL",
		"mimetypes":   "{field} must be one of the allowed content types",
		"maxfilesize": "{field} exceeds the maximum file size of {param} MB",
	}
)

// fieldMessages flattens validator errors into a field -> message map.
func fieldMessages(err error) map[string]string {
	fields := map[string]string{}

	var valErrors val.ValidationErrors
	if !errors.As(err, &valErrors) {
		fields["_"] = err.Error()

		return fields
	}

	for _, valErr := range valErrors {
		field := strings.ToLower(valErr.Field())

		msg, ok := messages[valErr.Tag()]
		if !ok {
			fields[field] = valErr.Error()

			continue
		}

		msg = strings.ReplaceAll(msg, "{field}", field)
		msg = strings.ReplaceAll(msg, "{param}", valErr.Param())

		fields[field] = msg
	}

	return fields
}
