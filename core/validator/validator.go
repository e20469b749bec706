package validator

import (
	"net/url"

	playvalidator "github.com/go-playground/validator/v10"
)

var validate = playvalidator.New()

// IsValidURL reports whether input is an absolute http or https URL with a host.
func IsValidURL(input string) bool {
	if err := validate.Var(input, "required,url"); err != nil {
		return false
	}

	u, err := url.Parse(input)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}

	return u.Host != ""
}
