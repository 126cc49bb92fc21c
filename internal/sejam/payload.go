package sejam

// ProfileData is the upstream profile payload. The provider returns one of two
// disjoint shapes discriminated by Type: private persons populate
// PrivatePerson, legal persons populate LegalPerson and
// LegalPersonShareholders. Optional sub-objects are pointers so absence and
// null survive decoding without faulting.
type ProfileData struct {
	UniqueIdentifier        string             `json:"uniqueIdentifier"`
	Type                    string             `json:"type"`
	Mobile                  string             `json:"mobile"`
	Email                   string             `json:"email"`
	PrivatePerson           *PrivatePerson     `json:"privatePerson"`
	LegalPerson             *LegalPerson       `json:"legalPerson"`
	LegalPersonShareholders []ShareholderEntry `json:"legalPersonShareholders"`
	TradingCodes            []TradingCode      `json:"tradingCodes"`
	Accounts                []Account          `json:"accounts"`
}

// PrivatePerson carries the natural-person variant fields.
type PrivatePerson struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	FatherName   string `json:"fatherName"`
	Gender       string `json:"gender"`
	BirthDate    string `json:"birthDate"`
	PlaceOfBirth string `json:"placeOfBirth"`
	PlaceOfIssue string `json:"placeOfIssue"`
}

// LegalPerson carries the company variant fields.
type LegalPerson struct {
	CompanyName    string `json:"companyName"`
	EconomicCode   string `json:"economicCode"`
	RegisterDate   string `json:"registerDate"`
	RegisterPlace  string `json:"registerPlace"`
	RegisterNumber string `json:"registerNumber"`
}

// ShareholderEntry is one row of a legal person's shareholder list.
type ShareholderEntry struct {
	UniqueIdentifier string `json:"uniqueIdentifier"`
	FirstName        string `json:"firstName"`
	LastName         string `json:"lastName"`
	PositionType     string `json:"positionType"`
}

// TradingCode is one entry of the upstream trading-codes list.
type TradingCode struct {
	Code string `json:"code"`
}

// Account is one entry of the upstream bank accounts list.
type Account struct {
	Sheba         string      `json:"sheba"`
	BranchCode    string      `json:"branchCode"`
	BranchName    string      `json:"branchName"`
	AccountNumber string      `json:"accountNumber"`
	Bank          *Bank       `json:"bank"`
	BranchCity    *BranchCity `json:"branchCity"`
}

// Bank is the nested bank sub-object; may be null upstream.
type Bank struct {
	Name string `json:"name"`
}

// BranchCity is the nested branch city sub-object; may be null upstream.
type BranchCity struct {
	Name string `json:"name"`
}
