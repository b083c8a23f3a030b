package validator

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type ValidatorTestSuite struct {
	suite.Suite
}

func (s *ValidatorTestSuite) TestIsValidAddress() {
	tests := []struct {
		desc       string
		address    string
		expIsValid bool
	}{
		{
			desc:       "invalid address - too short",
			address:    "aura1xyz",
			expIsValid: false,
		},
		{
			desc:       "invalid address - wrong prefix",
			address:    "cosmos1vqpjljwsynsn58dugz0w8ut7kun7t8ls2qkmsq",
			expIsValid: false,
		},
		{
			desc:       "invalid address - illegal charset",
			address:    "aura1vqpjljwsynsn58dugz0w8ut7kun7t8lsbqkmsq",
			expIsValid: false,
		},
		{
			desc:       "valid account address",
			address:    "aura1vqpjljwsynsn58dugz0w8ut7kun7t8ls2qkmsq",
			expIsValid: true,
		},
		{
			desc:       "valid contract address",
			address:    "aura14hj2tavq8fpesdwxxcu44rty3hh90vhujrvcmstl4zr3txmfvw9sq2r9g9",
			expIsValid: true,
		},
	}
	for _, t := range tests {
		s.Equal(t.expIsValid, IsValidAddress(t.address), t.desc)
	}
}

func TestValidatorTestSuite(t *testing.T) {
	suite.Run(t, new(ValidatorTestSuite))
}
