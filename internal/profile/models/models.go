// Package models holds the canonical profile records persisted by the gateway.
package models

import (
	"encoding/json"
	"time"
)

// PersonKind discriminates the two upstream payload shapes.
type PersonKind string

const (
	PrivatePerson PersonKind = "IranianPrivatePerson"
	LegalPerson   PersonKind = "IranianLegalPerson"
)

// Known reports whether the discriminator is one of the two handled shapes.
func (k PersonKind) Known() bool {
	return k == PrivatePerson || k == LegalPerson
}

// Profile is the canonical record keyed by the Sejam unique identifier.
// Exactly one of the two variant field groups is populated, determined by
// Kind; every string field defaults to empty, never null.
type Profile struct {
	UniqueIdentifier string
	Kind             PersonKind
	Mobile           string
	Email            string

	// Private person fields.
	FirstName    string
	LastName     string
	FatherName   string
	Gender       string
	BirthDate    string
	PlaceOfBirth string
	PlaceOfIssue string

	// Legal person fields.
	CompanyName    string
	EconomicCode   string
	RegisterDate   string
	RegisterPlace  string
	RegisterNumber string

	// Bank information, from the first upstream account/trading-code only.
	TradeCode         string
	Sheba             string
	BankName          string
	BankBranchCode    string
	BankBranchName    string
	BankBranchCity    string
	BankAccountNumber string

	// RawData is the unmodified upstream payload.
	RawData json.RawMessage

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Shareholder belongs to exactly one legal-person profile. The set is
// replaced wholesale on every successful refresh, never merged.
type Shareholder struct {
	ID               int64
	ProfileID        string
	UniqueIdentifier string
	FirstName        string
	LastName         string
	Position         string
}
