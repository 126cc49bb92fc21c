package service

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/alirk24/sejam-porfiling/internal/profile/models"
	"github.com/alirk24/sejam-porfiling/internal/sejam"
	dErrors "github.com/alirk24/sejam-porfiling/pkg/domain-errors"
)

type NormalizerSuite struct {
	suite.Suite
}

func TestNormalizerSuite(t *testing.T) {
	suite.Run(t, new(NormalizerSuite))
}

func (s *NormalizerSuite) fetched(data sejam.ProfileData) *sejam.FetchedProfile {
	raw, err := json.Marshal(data)
	s.Require().NoError(err)
	return &sejam.FetchedProfile{Data: data, Raw: raw}
}

func (s *NormalizerSuite) TestPrivatePerson() {
	f := s.fetched(sejam.ProfileData{
		UniqueIdentifier: " 0012345678 ",
		Type:             "IranianPrivatePerson",
		Mobile:           " 09120000000",
		Email:            "user@example.com ",
		PrivatePerson: &sejam.PrivatePerson{
			FirstName:    " علی ",
			LastName:     "رضایی",
			FatherName:   "حسین",
			Gender:       "Male",
			BirthDate:    "1370/01/01",
			PlaceOfBirth: "تهران",
			PlaceOfIssue: "تهران",
		},
		TradingCodes: []sejam.TradingCode{{Code: " ABC123 "}, {Code: "ignored"}},
		Accounts: []sejam.Account{
			{
				Sheba:         " IR123 ",
				BranchCode:    "001",
				BranchName:    "مرکزی",
				AccountNumber: "987654",
				Bank:          &sejam.Bank{Name: " ملت "},
				BranchCity:    &sejam.BranchCity{Name: "تهران"},
			},
			{Sheba: "IR999"},
		},
	})

	p, shareholders, err := normalizeProfile(f)
	s.Require().NoError(err)
	s.NotNil(shareholders, "private persons must replace any stale set with an empty one")
	s.Empty(shareholders)

	s.Equal("0012345678", p.UniqueIdentifier)
	s.Equal(models.PrivatePerson, p.Kind)
	s.Equal("09120000000", p.Mobile)
	s.Equal("user@example.com", p.Email)
	s.Equal("علی", p.FirstName)
	s.Equal("رضایی", p.LastName)
	s.Equal("ABC123", p.TradeCode)
	s.Equal("IR123", p.Sheba)
	s.Equal("ملت", p.BankName)
	s.Equal("001", p.BankBranchCode)
	s.Equal("مرکزی", p.BankBranchName)
	s.Equal("تهران", p.BankBranchCity)
	s.Equal("987654", p.BankAccountNumber)
	s.JSONEq(string(f.Raw), string(p.RawData))
}

func (s *NormalizerSuite) TestLegalPersonWithShareholders() {
	f := s.fetched(sejam.ProfileData{
		UniqueIdentifier: "10100000001",
		Type:             "IranianLegalPerson",
		LegalPerson: &sejam.LegalPerson{
			CompanyName:    " شرکت نمونه ",
			EconomicCode:   "411111111111",
			RegisterDate:   "1390/05/05",
			RegisterPlace:  "تهران",
			RegisterNumber: "12345",
		},
		LegalPersonShareholders: []sejam.ShareholderEntry{
			{UniqueIdentifier: " 0011111111 ", FirstName: "مریم", LastName: "کریمی", PositionType: "Chairman"},
			{UniqueIdentifier: "0022222222", FirstName: "رضا", LastName: "نادری", PositionType: "Ceo"},
			{UniqueIdentifier: "0033333333", FirstName: "سارا", LastName: "مرادی", PositionType: "Auditor"},
		},
	})

	p, shareholders, err := normalizeProfile(f)
	s.Require().NoError(err)

	s.Equal(models.LegalPerson, p.Kind)
	s.Equal("شرکت نمونه", p.CompanyName)
	s.Equal("12345", p.RegisterNumber)

	s.Require().Len(shareholders, 3)
	s.Equal("0011111111", shareholders[0].UniqueIdentifier)
	s.Equal("رئیس هیئت مدیره", shareholders[0].Position)
	s.Equal("مدیرعامل", shareholders[1].Position)
	s.Equal("Auditor", shareholders[2].Position, "unknown codes pass through")
	for _, sh := range shareholders {
		s.Equal("10100000001", sh.ProfileID)
	}
}

func (s *NormalizerSuite) TestDuplicateShareholdersCollapseLastWins() {
	f := s.fetched(sejam.ProfileData{
		UniqueIdentifier: "10100000001",
		Type:             "IranianLegalPerson",
		LegalPerson:      &sejam.LegalPerson{CompanyName: "شرکت نمونه"},
		LegalPersonShareholders: []sejam.ShareholderEntry{
			{UniqueIdentifier: "0011111111", FirstName: "مریم", LastName: "کریمی", PositionType: "Member"},
			{UniqueIdentifier: "0022222222", FirstName: "رضا", LastName: "نادری", PositionType: "Ceo"},
			{UniqueIdentifier: "0011111111", FirstName: "مریم", LastName: "کریمی", PositionType: "Chairman"},
		},
	})

	_, shareholders, err := normalizeProfile(f)
	s.Require().NoError(err)

	s.Require().Len(shareholders, 2, "one row per shareholder identifier")
	s.Equal("0011111111", shareholders[0].UniqueIdentifier)
	s.Equal("رئیس هیئت مدیره", shareholders[0].Position, "the later entry wins")
	s.Equal("0022222222", shareholders[1].UniqueIdentifier)
}

func (s *NormalizerSuite) TestLegalPersonEmptyShareholderList() {
	f := s.fetched(sejam.ProfileData{
		UniqueIdentifier: "10100000002",
		Type:             "IranianLegalPerson",
		LegalPerson:      &sejam.LegalPerson{CompanyName: "شرکت"},
	})

	_, shareholders, err := normalizeProfile(f)
	s.Require().NoError(err)
	s.NotNil(shareholders, "empty set must still replace the stored one")
	s.Empty(shareholders)
}

func (s *NormalizerSuite) TestUnknownPersonType() {
	f := s.fetched(sejam.ProfileData{
		UniqueIdentifier: "0012345678",
		Type:             "ForeignPrivatePerson",
	})

	_, _, err := normalizeProfile(f)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeUnsupportedKind))
}

func (s *NormalizerSuite) TestMissingVariantObject() {
	f := s.fetched(sejam.ProfileData{
		UniqueIdentifier: "0012345678",
		Type:             "IranianPrivatePerson",
	})

	_, _, err := normalizeProfile(f)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeUpstream))
}

func (s *NormalizerSuite) TestNullBankObjects() {
	f := s.fetched(sejam.ProfileData{
		UniqueIdentifier: "0012345678",
		Type:             "IranianPrivatePerson",
		PrivatePerson:    &sejam.PrivatePerson{FirstName: "علی"},
		Accounts: []sejam.Account{
			{Sheba: "IR123", AccountNumber: "42"},
		},
	})

	p, _, err := normalizeProfile(f)
	s.Require().NoError(err)
	s.Equal("IR123", p.Sheba)
	s.Equal("", p.BankName)
	s.Equal("", p.BankBranchCity)
}

func (s *NormalizerSuite) TestNoAccountsOrTradingCodes() {
	f := s.fetched(sejam.ProfileData{
		UniqueIdentifier: "0012345678",
		Type:             "IranianPrivatePerson",
		PrivatePerson:    &sejam.PrivatePerson{FirstName: "علی"},
	})

	p, _, err := normalizeProfile(f)
	s.Require().NoError(err)
	s.Equal("", p.TradeCode)
	s.Equal("", p.Sheba)
	s.Equal("", p.BankAccountNumber)
}

func (s *NormalizerSuite) TestTranslatePosition() {
	s.Equal("نایب رئیس هیئت مدیره", TranslatePosition("DeputyChairman"))
	s.Equal("عضو هیئت مدیره", TranslatePosition("Member"))
	s.Equal("Secretary", TranslatePosition("Secretary"))
}
