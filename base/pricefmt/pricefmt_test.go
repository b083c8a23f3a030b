package pricefmt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatAmount(t *testing.T) {
	req := require.New(t)

	res, err := FormatAmount("1500000", 6)
	req.NoError(err)
	req.Equal("1.5", res)

	res, err = FormatAmount("1", 6)
	req.NoError(err)
	req.Equal("0.000001", res)

	_, err = FormatAmount("abc", 6)
	req.Error(err)
}

func TestToBaseUnits(t *testing.T) {
	req := require.New(t)

	res, err := ToBaseUnits("1.5", 6)
	req.NoError(err)
	req.Equal("1500000", res)

	// sub-unit dust truncates
	res, err = ToBaseUnits("0.0000019", 6)
	req.NoError(err)
	req.Equal("1", res)
}
