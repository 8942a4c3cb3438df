package validator

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

const maxAddressLen = 90

// IsValidAddress returns is an address valid or not
func IsValidAddress(address string) bool {
	if address == "" || len(address) > maxAddressLen {
		return false
	}
	if strings.ToLower(address) != address {
		return false
	}
	return strings.IndexFunc(address, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	}) == -1
}

func NewCustomValidator(v *validator.Validate) echo.Validator {
	return &CustomValidator{v}
}

type CustomValidator struct {
	validator *validator.Validate
}

func (v *CustomValidator) Validate(i interface{}) error {
	if err := v.validator.Struct(i); err != nil {
		return err
	}
	return nil
}
