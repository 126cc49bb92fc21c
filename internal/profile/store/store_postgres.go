package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alirk24/sejam-porfiling/internal/profile/models"
)

// PostgresStore persists profiles and shareholder sets in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore constructs a PostgreSQL-backed profile store.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const profileColumns = `
	unique_identifier, person_type, mobile, email,
	first_name, last_name, father_name, gender, birth_date, place_of_birth, place_of_issue,
	company_name, economic_code, register_date, register_place, register_number,
	trade_code, sheba, bank_name, bank_branch_code, bank_branch_name, bank_branch_city, bank_account_number,
	raw_data, created_at, updated_at
`

func (s *PostgresStore) Find(ctx context.Context, uniqueIdentifier string) (*models.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE unique_identifier = $1`
	row := s.db.QueryRowContext(ctx, query, uniqueIdentifier)

	var p models.Profile
	var rawData []byte
	err := row.Scan(
		&p.UniqueIdentifier, &p.Kind, &p.Mobile, &p.Email,
		&p.FirstName, &p.LastName, &p.FatherName, &p.Gender, &p.BirthDate, &p.PlaceOfBirth, &p.PlaceOfIssue,
		&p.CompanyName, &p.EconomicCode, &p.RegisterDate, &p.RegisterPlace, &p.RegisterNumber,
		&p.TradeCode, &p.Sheba, &p.BankName, &p.BankBranchCode, &p.BankBranchName, &p.BankBranchCity, &p.BankAccountNumber,
		&rawData, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find profile: %w", err)
	}
	p.RawData = rawData
	return &p, nil
}

// Save upserts the profile and, when shareholders is non-nil, replaces the
// shareholder set in the same transaction (delete-all then insert-many).
func (s *PostgresStore) Save(ctx context.Context, p *models.Profile, shareholders []models.Shareholder) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin profile save: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	query := `
		INSERT INTO profiles (
			unique_identifier, person_type, mobile, email,
			first_name, last_name, father_name, gender, birth_date, place_of_birth, place_of_issue,
			company_name, economic_code, register_date, register_place, register_number,
			trade_code, sheba, bank_name, bank_branch_code, bank_branch_name, bank_branch_city, bank_account_number,
			raw_data
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24)
		ON CONFLICT (unique_identifier) DO UPDATE SET
			person_type = EXCLUDED.person_type,
			mobile = EXCLUDED.mobile,
			email = EXCLUDED.email,
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			father_name = EXCLUDED.father_name,
			gender = EXCLUDED.gender,
			birth_date = EXCLUDED.birth_date,
			place_of_birth = EXCLUDED.place_of_birth,
			place_of_issue = EXCLUDED.place_of_issue,
			company_name = EXCLUDED.company_name,
			economic_code = EXCLUDED.economic_code,
			register_date = EXCLUDED.register_date,
			register_place = EXCLUDED.register_place,
			register_number = EXCLUDED.register_number,
			trade_code = EXCLUDED.trade_code,
			sheba = EXCLUDED.sheba,
			bank_name = EXCLUDED.bank_name,
			bank_branch_code = EXCLUDED.bank_branch_code,
			bank_branch_name = EXCLUDED.bank_branch_name,
			bank_branch_city = EXCLUDED.bank_branch_city,
			bank_account_number = EXCLUDED.bank_account_number,
			raw_data = EXCLUDED.raw_data,
			updated_at = now()
	`
	_, err = tx.ExecContext(ctx, query,
		p.UniqueIdentifier, p.Kind, p.Mobile, p.Email,
		p.FirstName, p.LastName, p.FatherName, p.Gender, p.BirthDate, p.PlaceOfBirth, p.PlaceOfIssue,
		p.CompanyName, p.EconomicCode, p.RegisterDate, p.RegisterPlace, p.RegisterNumber,
		p.TradeCode, p.Sheba, p.BankName, p.BankBranchCode, p.BankBranchName, p.BankBranchCity, p.BankAccountNumber,
		[]byte(p.RawData),
	)
	if err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}

	if shareholders != nil {
		if _, err := tx.ExecContext(ctx, `DELETE FROM shareholders WHERE profile_id = $1`, p.UniqueIdentifier); err != nil {
			return fmt.Errorf("delete shareholders: %w", err)
		}
		insert := `
			INSERT INTO shareholders (profile_id, unique_identifier, first_name, last_name, position)
			VALUES ($1, $2, $3, $4, $5)
		`
		for _, sh := range shareholders {
			if _, err := tx.ExecContext(ctx, insert, p.UniqueIdentifier, sh.UniqueIdentifier, sh.FirstName, sh.LastName, sh.Position); err != nil {
				return fmt.Errorf("insert shareholder %s: %w", sh.UniqueIdentifier, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit profile save: %w", err)
	}
	return nil
}

func (s *PostgresStore) Shareholders(ctx context.Context, profileID string) ([]models.Shareholder, error) {
	query := `
		SELECT id, profile_id, unique_identifier, first_name, last_name, position
		FROM shareholders
		WHERE profile_id = $1
		ORDER BY id
	`
	rows, err := s.db.QueryContext(ctx, query, profileID)
	if err != nil {
		return nil, fmt.Errorf("list shareholders: %w", err)
	}
	defer rows.Close()

	var out []models.Shareholder
	for rows.Next() {
		var sh models.Shareholder
		if err := rows.Scan(&sh.ID, &sh.ProfileID, &sh.UniqueIdentifier, &sh.FirstName, &sh.LastName, &sh.Position); err != nil {
			return nil, fmt.Errorf("scan shareholder: %w", err)
		}
		out = append(out, sh)
	}
	return out, rows.Err()
}

// Delete removes a profile; shareholders go with it via ON DELETE CASCADE.
func (s *PostgresStore) Delete(ctx context.Context, uniqueIdentifier string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM profiles WHERE unique_identifier = $1`, uniqueIdentifier)
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
