package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alirk24/sejam-porfiling/internal/token"
)

// PostgresStore persists the cached access token in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore constructs a PostgreSQL-backed token store.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Current(ctx context.Context) (*token.AccessToken, error) {
	query := `
		SELECT token, expires_at, created_at
		FROM access_tokens
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`
	var tok token.AccessToken
	err := s.db.QueryRowContext(ctx, query).Scan(&tok.Token, &tok.ExpiresAt, &tok.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, token.ErrNotFound
		}
		return nil, fmt.Errorf("find current token: %w", err)
	}
	return &tok, nil
}

// Replace discards all stored tokens and inserts the new one in a single
// transaction, so concurrent readers never see zero tokens.
func (s *PostgresStore) Replace(ctx context.Context, tok *token.AccessToken) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin token replace: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx, `DELETE FROM access_tokens`); err != nil {
		return fmt.Errorf("delete stale tokens: %w", err)
	}

	query := `INSERT INTO access_tokens (token, expires_at, created_at) VALUES ($1, $2, $3)`
	if _, err := tx.ExecContext(ctx, query, tok.Token, tok.ExpiresAt, tok.CreatedAt); err != nil {
		return fmt.Errorf("insert token: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit token replace: %w", err)
	}
	return nil
}
