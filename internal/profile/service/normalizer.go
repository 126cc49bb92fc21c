package service

import (
	"strings"

	"github.com/alirk24/sejam-porfiling/internal/profile/models"
	"github.com/alirk24/sejam-porfiling/internal/sejam"
	dErrors "github.com/alirk24/sejam-porfiling/pkg/domain-errors"
)

// normalizeProfile flattens the upstream tagged-union payload into the
// canonical profile record plus its shareholder set.
//
// Every string field is whitespace-trimmed. Only the first trading code and
// the first bank account are kept; the nested bank and branch-city objects
// may be null upstream and collapse to empty strings. The returned
// shareholder slice is always non-nil, so persisting it replaces the stored
// set wholesale: empty for private persons, deduplicated by identifier
// (last entry wins) for legal persons.
func normalizeProfile(fetched *sejam.FetchedProfile) (*models.Profile, []models.Shareholder, error) {
	data := &fetched.Data

	kind := models.PersonKind(strings.TrimSpace(data.Type))
	if !kind.Known() {
		return nil, nil, dErrors.New(dErrors.CodeUnsupportedKind, "unsupported person type "+string(kind))
	}

	p := &models.Profile{
		UniqueIdentifier: strings.TrimSpace(data.UniqueIdentifier),
		Kind:             kind,
		Mobile:           strings.TrimSpace(data.Mobile),
		Email:            strings.TrimSpace(data.Email),
		RawData:          fetched.Raw,
	}

	shareholders := []models.Shareholder{}

	switch kind {
	case models.PrivatePerson:
		if data.PrivatePerson == nil {
			return nil, nil, dErrors.New(dErrors.CodeUpstream, "payload missing privatePerson object")
		}
		pp := data.PrivatePerson
		p.FirstName = strings.TrimSpace(pp.FirstName)
		p.LastName = strings.TrimSpace(pp.LastName)
		p.FatherName = strings.TrimSpace(pp.FatherName)
		p.Gender = strings.TrimSpace(pp.Gender)
		p.BirthDate = strings.TrimSpace(pp.BirthDate)
		p.PlaceOfBirth = strings.TrimSpace(pp.PlaceOfBirth)
		p.PlaceOfIssue = strings.TrimSpace(pp.PlaceOfIssue)

	case models.LegalPerson:
		if data.LegalPerson == nil {
			return nil, nil, dErrors.New(dErrors.CodeUpstream, "payload missing legalPerson object")
		}
		lp := data.LegalPerson
		p.CompanyName = strings.TrimSpace(lp.CompanyName)
		p.EconomicCode = strings.TrimSpace(lp.EconomicCode)
		p.RegisterDate = strings.TrimSpace(lp.RegisterDate)
		p.RegisterPlace = strings.TrimSpace(lp.RegisterPlace)
		p.RegisterNumber = strings.TrimSpace(lp.RegisterNumber)

		// Upstream may repeat an identifier; keep one row per identifier,
		// last entry wins, first occurrence keeps its place in the list.
		seen := make(map[string]int, len(data.LegalPersonShareholders))
		for _, sh := range data.LegalPersonShareholders {
			entry := models.Shareholder{
				ProfileID:        p.UniqueIdentifier,
				UniqueIdentifier: strings.TrimSpace(sh.UniqueIdentifier),
				FirstName:        strings.TrimSpace(sh.FirstName),
				LastName:         strings.TrimSpace(sh.LastName),
				Position:         TranslatePosition(strings.TrimSpace(sh.PositionType)),
			}
			if i, ok := seen[entry.UniqueIdentifier]; ok {
				shareholders[i] = entry
				continue
			}
			seen[entry.UniqueIdentifier] = len(shareholders)
			shareholders = append(shareholders, entry)
		}
	}

	if len(data.TradingCodes) > 0 {
		p.TradeCode = strings.TrimSpace(data.TradingCodes[0].Code)
	}

	if len(data.Accounts) > 0 {
		acc := data.Accounts[0]
		p.Sheba = strings.TrimSpace(acc.Sheba)
		p.BankBranchCode = strings.TrimSpace(acc.BranchCode)
		p.BankBranchName = strings.TrimSpace(acc.BranchName)
		p.BankAccountNumber = strings.TrimSpace(acc.AccountNumber)
		if acc.Bank != nil {
			p.BankName = strings.TrimSpace(acc.Bank.Name)
		}
		if acc.BranchCity != nil {
			p.BankBranchCity = strings.TrimSpace(acc.BranchCity.Name)
		}
	}

	return p, shareholders, nil
}
