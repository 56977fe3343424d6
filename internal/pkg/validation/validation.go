package validation

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var reEmailShape = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// New returns a validator with the custom tags used across the service.
//
//	emailshape: local@domain.tld with no whitespace
//	uuid:       built in
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	//nolint:errcheck
	v.RegisterValidation("emailshape", func(fl validator.FieldLevel) bool {
		return reEmailShape.MatchString(fl.Field().String())
	})
	return v
}

// FirstFailedTag reports the tag of the first failing rule, or "" when err
// does not come from the validator.
func FirstFailedTag(err error) string {
	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return ""
	}
	return errs[0].Tag()
}
