package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"sync"
)

var (
	// ErrNotFound is returned when no record exists under the requested key.
	ErrNotFound = errors.New("record not found")
	// ErrConditionFailed is returned by Update when the supplied condition
	// does not hold against the stored record.
	ErrConditionFailed = errors.New("update condition failed")
)

// Record is a single row of the record table. The table is a single-table
// design: every entity lives under a (PK, SK) pair, with Type, SiteID and
// EloScore doubling as the secondary index columns.
type Record struct {
	PK        string          `json:"pk"`
	SK        string          `json:"sk"`
	Type      string          `json:"type"`
	SiteID    string          `json:"site_id,omitempty"`
	EloScore  *int            `json:"elo_score,omitempty"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt int64           `json:"created_at"`
}

// Condition restricts an Update to records whose current state matches.
// Used as a compare-and-swap guard on rating writes.
type Condition struct {
	EloScoreEquals int
}

// store handles all database operations for the record table.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}
