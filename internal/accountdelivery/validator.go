package accountdelivery

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var accountNumberRE = regexp.MustCompile(`^[0-9]{10}$`)

// ValidAccountNumber validates that a field is exactly 10 digits.
var ValidAccountNumber validator.Func = func(fl validator.FieldLevel) bool {
	if n, ok := fl.Field().Interface().(string); ok {
		return accountNumberRE.MatchString(n)
	}

	return false
}
