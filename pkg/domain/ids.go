// Package domain provides type-safe identifiers to prevent mixing up IDs at compile time.
package domain

import (
	"strings"

	dErrors "github.com/alirk24/sejam-porfiling/pkg/domain-errors"
)

// UniqueIdentifier is the Sejam-issued identifier for a natural or legal person.
// It is the primary key for stored profiles and the subject of every OTP request.
type UniqueIdentifier string

// OTPCode is the one-time passcode released to the person by the provider.
type OTPCode string

// maxIdentifierLen matches the provider contract: identifiers never exceed 20 characters.
const maxIdentifierLen = 20

// ParseUniqueIdentifier validates an identifier at a trust boundary (handlers, API inputs).
func ParseUniqueIdentifier(s string) (UniqueIdentifier, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "unique identifier cannot be empty")
	}
	if len(s) > maxIdentifierLen {
		return "", dErrors.New(dErrors.CodeInvalidInput, "unique identifier exceeds 20 characters")
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return "", dErrors.New(dErrors.CodeInvalidInput, "unique identifier must be numeric")
		}
	}
	return UniqueIdentifier(s), nil
}

// ParseOTPCode validates an OTP code at a trust boundary. Codes are opaque to
// this gateway; only emptiness is rejected here, the provider does the rest.
func ParseOTPCode(s string) (OTPCode, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "otp code cannot be empty")
	}
	return OTPCode(s), nil
}

func (id UniqueIdentifier) String() string { return string(id) }
func (c OTPCode) String() string           { return string(c) }

func (id UniqueIdentifier) IsNil() bool { return id == "" }
func (c OTPCode) IsNil() bool           { return c == "" }
