package models

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var semverRe = regexp.MustCompile(`^\d+\.\d+\.\d+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("semver", func(fl validator.FieldLevel) bool {
		return semverRe.MatchString(fl.Field().String())
	})
	return v
}

// Validate runs struct tag validation on any model carrying validate tags.
func Validate(v interface{}) error {
	return validate.Struct(v)
}

// ValidateConfig checks a full widget configuration against the schema:
// uuid id, registered-looking type string, semver version, 1..100 name,
// non-negative layout with w/h >= 2.
func ValidateConfig(c *WidgetConfig) error {
	return validate.Struct(c)
}
