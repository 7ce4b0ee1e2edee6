// Package validation wraps go-playground/validator with the field naming
// and messages used across the dashboard.
package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/yigit/portaladmin/internal/pkg/apperrors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their stored (json) name.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	return v
}

// Engine exposes the shared validator, e.g. for gin's binding.
func Engine() *validator.Validate {
	return validate
}

// Struct validates s and returns an apperrors validation error whose
// message names the first failing field.
func Struct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		msgs := make([]string, 0, len(fieldErrs))
		fields := make(map[string]interface{}, len(fieldErrs))
		for _, fe := range fieldErrs {
			msg := FormatFieldError(fe)
			msgs = append(msgs, msg)
			fields[fe.Field()] = msg
		}
		return apperrors.NewCustomError(apperrors.ErrValidationFailed, strings.Join(msgs, "; ")).
			WithDetails(fields)
	}
	return apperrors.NewValidationError(err.Error())
}

// FormatFieldError creates a human-readable validation error message
func FormatFieldError(e validator.FieldError) string {
	switch e.Tag() {
	case "required", "notblank":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "url":
		return e.Field() + " must be a valid URL"
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}
