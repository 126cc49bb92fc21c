package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	dErrors "github.com/alirk24/sejam-porfiling/pkg/domain-errors"
)

// IdentifierSuite tests the identifier domain primitives.
//
// Justification: identifiers cross the trust boundary on every request; the
// parse rules (numeric, max 20 chars) must hold before anything reaches the
// upstream provider or the store.
type IdentifierSuite struct {
	suite.Suite
}

func TestIdentifierSuite(t *testing.T) {
	suite.Run(t, new(IdentifierSuite))
}

func (s *IdentifierSuite) TestParseUniqueIdentifier() {
	s.Run("valid national code", func() {
		id, err := ParseUniqueIdentifier("0012345678")
		s.NoError(err)
		s.Equal("0012345678", id.String())
	})

	s.Run("surrounding whitespace is trimmed", func() {
		id, err := ParseUniqueIdentifier("  0012345678 ")
		s.NoError(err)
		s.Equal("0012345678", id.String())
	})

	s.Run("empty rejected", func() {
		_, err := ParseUniqueIdentifier("")
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.Run("over 20 characters rejected", func() {
		_, err := ParseUniqueIdentifier(strings.Repeat("1", 21))
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.Run("exactly 20 characters accepted", func() {
		_, err := ParseUniqueIdentifier(strings.Repeat("1", 20))
		s.NoError(err)
	})

	s.Run("non-numeric rejected", func() {
		_, err := ParseUniqueIdentifier("00123A5678")
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})
}

func (s *IdentifierSuite) TestParseOTPCode() {
	s.Run("opaque code accepted", func() {
		code, err := ParseOTPCode("12345")
		s.NoError(err)
		s.Equal("12345", code.String())
	})

	s.Run("empty rejected", func() {
		_, err := ParseOTPCode("   ")
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})
}
