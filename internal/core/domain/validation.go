package domain

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// ValidationError lists every problem found in a payload. It unwraps to
// ErrValidation.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string { return strings.Join(e.Problems, "; ") }
func (e *ValidationError) Unwrap() error { return ErrValidation }

var validate = NewValidator()

// NewValidator returns a validator with the platform's custom tags and JSON
// field names registered. The echo adapter and the services share it.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("password", strongPassword)
	return v
}

// Validate checks s against its struct tags and returns a *ValidationError
// describing every failed field.
func Validate(s any) error {
	return ValidationErrorFrom(validate.Struct(s))
}

// ValidationErrorFrom converts a validator error into a *ValidationError.
func ValidationErrorFrom(err error) error {
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	problems := make([]string, 0, len(ve))
	for _, fe := range ve {
		problems = append(problems, fieldError(fe))
	}
	return &ValidationError{Problems: problems}
}

// strongPassword requires at least one uppercase letter and one special
// character. Length is checked by min/max.
func strongPassword(fl validator.FieldLevel) bool {
	var upper, special bool
	for _, r := range fl.Field().String() {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case r == '_' || (!unicode.IsLetter(r) && !unicode.IsDigit(r)):
			special = true
		}
	}
	return upper && special
}

func fieldError(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "password":
		return field + " must contain an uppercase letter and a special character"
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
