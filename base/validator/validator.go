package validator

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

const addressPrefix = "aura1"

// bech32 charset excludes "1", "b", "i" and "o" after the separator
const bech32Charset = "qpzry9x8gf2tvdw0s3jn54khce6mua7l"

// IsValidAddress returns is an address valid or not
func IsValidAddress(address string) bool {
	if !strings.HasPrefix(address, addressPrefix) {
		return false
	}
	data := address[len(addressPrefix):]
	// 38 data chars for accounts, contract addresses run longer
	if len(data) < 38 {
		return false
	}
	for _, c := range data {
		if !strings.ContainsRune(bech32Charset, c) {
			return false
		}
	}
	return true
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
