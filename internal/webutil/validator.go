// internal/webutil/validator.go
package webutil

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"vocab_tutor/internal/model"

	"github.com/go-playground/validator/v10"
)

// Validator is the validator instance shared by the whole application: the
// client validates request DTOs before sending, the stub validates decoded
// bodies.
var Validator *validator.Validate

func init() {
	Validator = validator.New()

	// Report field names by their json tag, not the Go name.
	Validator.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// Validate checks v and converts the first violation into a model.AppError
// wrapping model.ErrInvalidInput, with a message fit for an error body.
func Validate(v any) error {
	err := Validator.Struct(v)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}
	first := validationErrors[0]
	var msg string
	switch first.Tag() {
	case "required":
		msg = fmt.Sprintf("%s is required", first.Field())
	case "min":
		msg = fmt.Sprintf("%s must have at least %s entries", first.Field(), first.Param())
	default:
		msg = fmt.Sprintf("%s is invalid", first.Field())
	}
	return model.NewAppError("VALIDATION_ERROR", msg, first.Field(), model.ErrInvalidInput)
}
