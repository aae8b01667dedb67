// Package validator adapts go-playground/validator to echo's Validator
// interface.
package validator

import (
	validatorv10 "github.com/go-playground/validator/v10"
)

// Validator wraps the validator instance for echo.
type Validator struct {
	validate *validatorv10.Validate
}

// New creates the echo request validator.
func New() *Validator {
	return &Validator{
		validate: validatorv10.New(validatorv10.WithRequiredStructEnabled()),
	}
}

// Validate implements echo.Validator.
func (v *Validator) Validate(i any) error {
	return v.validate.Struct(i)
}
