// Package validator adapts go-playground/validator to echo's
// request-validation hook.
package validator

import (
	domainerrors "faer/internal/domain/errors"

	playground "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type requestValidator struct {
	validate *playground.Validate
}

// New returns an echo.Validator backed by struct tags.
func New() echo.Validator {
	return &requestValidator{validate: playground.New()}
}

// Validate checks the bound request struct. Any failing field maps to
// the single validation error the API exposes.
func (v *requestValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	return nil
}
