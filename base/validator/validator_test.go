package validator

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type ValidatorTestSuite struct {
	suite.Suite
}

func (s *ValidatorTestSuite) SetupTest() {
}

func (s *ValidatorTestSuite) TearDownTest() {
}

func (s *ValidatorTestSuite) SetupSuite() {
}

func (s *ValidatorTestSuite) TearDownSuite() {
}

func (s *ValidatorTestSuite) TestIsValidAddress() {
	tests := []struct {
		desc       string
		address    string
		expIsValid bool
	}{
		{
			desc:       "invalid address - empty",
			address:    "",
			expIsValid: false,
		},
		{
			desc:       "invalid address - upper case",
			address:    "Phoenix1y54exmx84cqtasvjnskf9f63djuuj68p7hqf47",
			expIsValid: false,
		},
		{
			desc:       "invalid address - whitespace",
			address:    "phoenix1 y54exmx84cqtasvjnskf9f63djuuj68p",
			expIsValid: false,
		},
		{
			desc:       "valid address",
			address:    "phoenix1y54exmx84cqtasvjnskf9f63djuuj68p7hqf47",
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
