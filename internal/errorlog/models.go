package errorlog

import "time"

// Entry captures the raw detail of a failed upstream call or normalization.
// Entries are append-only; the caller only ever sees a generic message, so
// this is the forensic record of what actually went wrong.
type Entry struct {
	ID        int64
	Payload   string
	Timestamp time.Time
}
