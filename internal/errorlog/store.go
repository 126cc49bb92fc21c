package errorlog

import "context"

// Store persists error log entries. Append must never fail the business
// operation that triggered it; callers log and continue on append errors.
type Store interface {
	Append(ctx context.Context, payload string) error
	List(ctx context.Context, limit int) ([]Entry, error)
}
