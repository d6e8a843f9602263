package handler

import (
	"github.com/go-playground/validator/v10"

	"github.com/storerating/rating-api/internal/core/domain"
)

// echoValidator wraps go-playground/validator so Echo can call c.Validate(req).
type echoValidator struct {
	v *validator.Validate
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
// It shares tags and messages with the domain validator.
func NewValidator() *echoValidator {
	return &echoValidator{v: domain.NewValidator()}
}

// Validate satisfies the echo.Validator interface. Failures are returned as
// *domain.ValidationError.
func (ev *echoValidator) Validate(i any) error {
	return domain.ValidationErrorFrom(ev.v.Struct(i))
}
