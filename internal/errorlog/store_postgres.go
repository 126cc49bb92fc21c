package errorlog

import (
	"context"
	"database/sql"
	"fmt"
)

// PostgresStore persists error log entries in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore constructs a PostgreSQL-backed error log.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Append(ctx context.Context, payload string) error {
	query := `INSERT INTO error_logs (error_data) VALUES ($1)`
	if _, err := s.db.ExecContext(ctx, query, payload); err != nil {
		return fmt.Errorf("append error log: %w", err)
	}
	return nil
}

func (s *PostgresStore) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 100
	}
	query := `
		SELECT id, error_data, created_at
		FROM error_logs
		ORDER BY id DESC
		LIMIT $1
	`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list error logs: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Payload, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("scan error log: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
