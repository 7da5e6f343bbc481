package handler

import (
	"github.com/99minutos/record-admin/internal/core/validation"
)

// echoValidator lets Echo call c.Validate(form) with the form rules.
type echoValidator struct {
	v *validation.Validator
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
func NewValidator(v *validation.Validator) *echoValidator {
	return &echoValidator{v: v}
}

// Validate satisfies the echo.Validator interface. Rejections are
// validation.FieldErrors.
func (ev *echoValidator) Validate(i any) error {
	return ev.v.Struct(i)
}
