package utils

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateStruct checks a typed request body against its validate tags and
// returns a field to problem map, or nil when the body is valid.
func ValidateStruct(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"body": err.Error()}
	}

	details := make(map[string]string, len(validationErrors))
	for _, fieldErr := range validationErrors {
		field := strings.ToLower(fieldErr.Field()[:1]) + fieldErr.Field()[1:]
		switch fieldErr.Tag() {
		case "required":
			details[field] = "is required"
		case "email":
			details[field] = "must be a valid email address"
		case "min":
			details[field] = "must be at least " + fieldErr.Param()
		case "max":
			details[field] = "must be at most " + fieldErr.Param()
		case "oneof":
			details[field] = "must be one of: " + fieldErr.Param()
		default:
			details[field] = "is invalid"
		}
	}

	return details
}
