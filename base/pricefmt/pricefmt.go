package pricefmt

import (
	"github.com/shopspring/decimal"

	"github.com/aurabay/goapi/domain"
)

// FormatAmount renders a base-unit amount as a display string with the
// token's decimals applied, ex: 1500000 uaura with 6 decimals -> "1.5"
func FormatAmount(amount string, decimals int32) (string, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return "", domain.ErrInvalidNumberFormat
	}
	return d.Shift(-decimals).String(), nil
}

// ToBaseUnits converts a display amount back into base units, floor
// truncated to an integer
func ToBaseUnits(display string, decimals int32) (string, error) {
	d, err := decimal.NewFromString(display)
	if err != nil {
		return "", domain.ErrInvalidNumberFormat
	}
	return d.Shift(decimals).Floor().String(), nil
}
