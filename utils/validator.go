package utils

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateStruct runs validator tags over s and flattens the failures into a
// single readable error.
func ValidateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	failures, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	parts := make([]string, 0, len(failures))
	for _, f := range failures {
		parts = append(parts, fieldMessage(f))
	}
	return errors.New(strings.Join(parts, ", "))
}

func fieldMessage(f validator.FieldError) string {
	field := strings.ToLower(f.Field())
	switch f.Tag() {
	case "required":
		return field + " is required"
	case "min":
		return field + " must be at least " + f.Param()
	case "max":
		return field + " must be at most " + f.Param()
	case "email":
		return field + " must be a valid email"
	case "oneof":
		return field + " must be one of " + f.Param()
	default:
		return field + " is invalid"
	}
}
