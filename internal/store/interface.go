package store

import "context"

// RecordStore is the key-value storage contract the league workflows are
// written against: point reads, unconditional and conditional writes, a
// transactional batch put, and the secondary lookups backing leaderboards
// and per-site/per-player listings.
type RecordStore interface {
	// Get returns the record under (pk, sk), or ErrNotFound.
	Get(ctx context.Context, pk, sk string) (*Record, error)
	// Put unconditionally upserts a record.
	Put(ctx context.Context, rec *Record) error
	// Update merges fields into the record's payload (mirroring elo_score
	// and site_id into their index columns) and returns the updated
	// record. A non-nil cond turns the write into a compare-and-swap:
	// ErrConditionFailed is returned when the stored rating differs.
	Update(ctx context.Context, pk, sk string, fields map[string]any, cond *Condition) (*Record, error)
	// BatchPut writes all records in a single transaction; any failure
	// rolls back the whole batch.
	BatchPut(ctx context.Context, recs []*Record) error
	// QueryPrefix lists records under a partition whose sort key starts
	// with skPrefix, newest sort key first.
	QueryPrefix(ctx context.Context, pk, skPrefix string, limit int) ([]*Record, error)
	// QueryByType lists records of one entity type, highest rating first
	// for rated records and newest first otherwise. A non-nil minElo
	// keeps only records rated strictly above it.
	QueryByType(ctx context.Context, entityType string, limit int, minElo *int) ([]*Record, error)
	// QueryBySite lists records of one entity type belonging to a site,
	// newest first.
	QueryBySite(ctx context.Context, siteID, entityType string, limit int) ([]*Record, error)
}
