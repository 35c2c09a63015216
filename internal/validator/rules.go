package validator

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules adds rules the builtin tags don't cover.
func registerCustomRules(v *validator.Validate) error {
	// "required" accepts whitespace-only strings; form metadata must not.
	return v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
}
