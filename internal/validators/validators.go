package validators

import (
	"regexp"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var specialRegex = regexp.MustCompile(`[\\^$*.\[\]{}()?"!@#%&/\\,><':;|_~` + "`" + `=+\-]`)

func HasUpper(fl validator.FieldLevel) bool {
	return checkRunes(fl, unicode.IsUpper)
}

func HasLower(fl validator.FieldLevel) bool {
	return checkRunes(fl, unicode.IsLower)
}

func HasDigit(fl validator.FieldLevel) bool {
	return checkRunes(fl, unicode.IsDigit)
}

func HasSpecial(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	return specialRegex.MatchString(val)
}

func checkRunes(fl validator.FieldLevel, match func(rune) bool) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}

	for _, ch := range val {
		if match(ch) {
			return true
		}
	}
	return false
}
