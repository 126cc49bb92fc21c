//go:build integration

package store_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/alirk24/sejam-porfiling/internal/profile/models"
	"github.com/alirk24/sejam-porfiling/internal/profile/store"
	"github.com/alirk24/sejam-porfiling/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	pg    *containers.PostgresContainer
	store *store.PostgresStore
	ctx   context.Context
}

func TestPostgresStoreSuite(t *testing.T) {
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.ctx = context.Background()
	s.pg = containers.NewPostgresContainer(s.T())
	s.store = store.NewPostgresStore(s.pg.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.pg.TruncateAll(s.ctx))
}

func (s *PostgresStoreSuite) privateProfile(id string) *models.Profile {
	raw, err := json.Marshal(map[string]string{"uniqueIdentifier": id})
	s.Require().NoError(err)
	return &models.Profile{
		UniqueIdentifier: id,
		Kind:             models.PrivatePerson,
		Mobile:           "09120000000",
		FirstName:        "علی",
		LastName:         "رضایی",
		BankName:         "ملت",
		RawData:          raw,
	}
}

func (s *PostgresStoreSuite) TestSaveAndFind() {
	p := s.privateProfile("0012345678")

	s.Require().NoError(s.store.Save(s.ctx, p, nil))

	got, err := s.store.Find(s.ctx, "0012345678")
	s.Require().NoError(err)
	s.Equal("علی", got.FirstName)
	s.Equal(models.PrivatePerson, got.Kind)
	s.Equal("ملت", got.BankName)
	s.False(got.CreatedAt.IsZero())
	s.JSONEq(string(p.RawData), string(got.RawData))
}

func (s *PostgresStoreSuite) TestFindMissing() {
	_, err := s.store.Find(s.ctx, "9999999999")
	s.ErrorIs(err, store.ErrNotFound)
}

func (s *PostgresStoreSuite) TestUpsertUpdatesInPlace() {
	p := s.privateProfile("0012345678")
	s.Require().NoError(s.store.Save(s.ctx, p, nil))

	p.Mobile = "09125555555"
	s.Require().NoError(s.store.Save(s.ctx, p, nil))

	got, err := s.store.Find(s.ctx, "0012345678")
	s.Require().NoError(err)
	s.Equal("09125555555", got.Mobile)

	var count int
	s.Require().NoError(s.pg.QueryRow(s.ctx,
		"SELECT COUNT(*) FROM profiles WHERE unique_identifier = $1", "0012345678").Scan(&count))
	s.Equal(1, count)
}

func (s *PostgresStoreSuite) TestShareholderReplacement() {
	raw, err := json.Marshal(map[string]string{"uniqueIdentifier": "10100000001"})
	s.Require().NoError(err)
	p := &models.Profile{
		UniqueIdentifier: "10100000001",
		Kind:             models.LegalPerson,
		CompanyName:      "شرکت نمونه",
		RawData:          raw,
	}

	first := []models.Shareholder{
		{ProfileID: p.UniqueIdentifier, UniqueIdentifier: "0011111111", FirstName: "مریم", LastName: "کریمی", Position: "رئیس هیئت مدیره"},
		{ProfileID: p.UniqueIdentifier, UniqueIdentifier: "0022222222", FirstName: "رضا", LastName: "نادری", Position: "مدیرعامل"},
	}
	s.Require().NoError(s.store.Save(s.ctx, p, first))

	second := []models.Shareholder{
		{ProfileID: p.UniqueIdentifier, UniqueIdentifier: "0033333333", FirstName: "سارا", LastName: "مرادی", Position: "عضو هیئت مدیره"},
	}
	s.Require().NoError(s.store.Save(s.ctx, p, second))

	got, err := s.store.Shareholders(s.ctx, p.UniqueIdentifier)
	s.Require().NoError(err)
	s.Require().Len(got, 1, "the old set must be replaced, not merged")
	s.Equal("0033333333", got[0].UniqueIdentifier)
}

func (s *PostgresStoreSuite) TestNilShareholdersLeaveSetUntouched() {
	raw, err := json.Marshal(map[string]string{"uniqueIdentifier": "10100000001"})
	s.Require().NoError(err)
	p := &models.Profile{
		UniqueIdentifier: "10100000001",
		Kind:             models.LegalPerson,
		RawData:          raw,
	}

	sh := []models.Shareholder{
		{ProfileID: p.UniqueIdentifier, UniqueIdentifier: "0011111111", FirstName: "مریم", LastName: "کریمی", Position: "رئیس هیئت مدیره"},
	}
	s.Require().NoError(s.store.Save(s.ctx, p, sh))
	s.Require().NoError(s.store.Save(s.ctx, p, nil))

	got, err := s.store.Shareholders(s.ctx, p.UniqueIdentifier)
	s.Require().NoError(err)
	s.Len(got, 1)
}

func (s *PostgresStoreSuite) TestDeleteCascades() {
	raw, err := json.Marshal(map[string]string{"uniqueIdentifier": "10100000001"})
	s.Require().NoError(err)
	p := &models.Profile{
		UniqueIdentifier: "10100000001",
		Kind:             models.LegalPerson,
		RawData:          raw,
	}
	sh := []models.Shareholder{
		{ProfileID: p.UniqueIdentifier, UniqueIdentifier: "0011111111", FirstName: "مریم", LastName: "کریمی", Position: "رئیس هیئت مدیره"},
	}
	s.Require().NoError(s.store.Save(s.ctx, p, sh))

	s.Require().NoError(s.store.Delete(s.ctx, p.UniqueIdentifier))

	_, err = s.store.Find(s.ctx, p.UniqueIdentifier)
	s.ErrorIs(err, store.ErrNotFound)

	var count int
	s.Require().NoError(s.pg.QueryRow(s.ctx,
		"SELECT COUNT(*) FROM shareholders WHERE profile_id = $1", p.UniqueIdentifier).Scan(&count))
	s.Equal(0, count)
}

func (s *PostgresStoreSuite) TestDeleteMissing() {
	err := s.store.Delete(s.ctx, "9999999999")
	s.ErrorIs(err, store.ErrNotFound)
}
