package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/log"
)

// New creates a new RecordStore backed by the given database.
func New(db *sql.DB) RecordStore {
	return &store{
		db: db,
	}
}

func (s *store) Get(ctx context.Context, pk, sk string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT pk, sk, entity_type, site_id, elo_score, payload_json, created_at
		FROM records
		WHERE pk = ? AND sk = ?
	`, pk, sk)

	rec, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get record %s/%s: %w", pk, sk, err)
	}
	return rec, nil
}

func (s *store) Put(ctx context.Context, rec *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, upsertSQL, upsertArgs(rec)...)
	if err != nil {
		return fmt.Errorf("failed to put record %s/%s: %w", rec.PK, rec.SK, err)
	}
	return nil
}

func (s *store) BatchPut(ctx context.Context, recs []*Record) error {
	if len(recs) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, upsertSQL)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, rec := range recs {
		if _, err := stmt.ExecContext(ctx, upsertArgs(rec)...); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to batch put record %s/%s: %w", rec.PK, rec.SK, err)
		}
	}

	return tx.Commit()
}

func (s *store) Update(ctx context.Context, pk, sk string, fields map[string]any, cond *Condition) (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx, `
		SELECT pk, sk, entity_type, site_id, elo_score, payload_json, created_at
		FROM records
		WHERE pk = ? AND sk = ?
	`, pk, sk)

	rec, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read record %s/%s for update: %w", pk, sk, err)
	}

	if cond != nil {
		if rec.EloScore == nil || *rec.EloScore != cond.EloScoreEquals {
			return nil, ErrConditionFailed
		}
	}

	payload := map[string]any{}
	if len(rec.Payload) > 0 {
		if err := json.Unmarshal(rec.Payload, &payload); err != nil {
			return nil, fmt.Errorf("failed to decode payload of %s/%s: %w", pk, sk, err)
		}
	}
	for key, value := range fields {
		payload[key] = value
		switch key {
		case "elo_score":
			score, ok := toInt(value)
			if !ok {
				return nil, fmt.Errorf("elo_score update for %s/%s is not an integer", pk, sk)
			}
			rec.EloScore = &score
		case "site_id":
			if siteID, ok := value.(string); ok {
				rec.SiteID = siteID
			}
		}
	}

	merged, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode payload of %s/%s: %w", pk, sk, err)
	}
	rec.Payload = merged

	_, err = tx.ExecContext(ctx, `
		UPDATE records SET site_id = ?, elo_score = ?, payload_json = ?
		WHERE pk = ? AND sk = ?
	`, nullString(rec.SiteID), nullInt(rec.EloScore), string(merged), pk, sk)
	if err != nil {
		return nil, fmt.Errorf("failed to update record %s/%s: %w", pk, sk, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *store) QueryPrefix(ctx context.Context, pk, skPrefix string, limit int) ([]*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT pk, sk, entity_type, site_id, elo_score, payload_json, created_at
		FROM records
		WHERE pk = ? AND sk LIKE ? || '%'
		ORDER BY sk DESC
		LIMIT ?
	`, pk, skPrefix, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query partition %s: %w", pk, err)
	}
	return collectRecords(rows)
}

func (s *store) QueryByType(ctx context.Context, entityType string, limit int, minElo *int) ([]*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT pk, sk, entity_type, site_id, elo_score, payload_json, created_at
		FROM records
		WHERE entity_type = ?`
	args := []any{entityType}
	if minElo != nil {
		query += " AND elo_score > ?"
		args = append(args, *minElo)
	}
	// Rated records sort by rating; for everything else elo_score is NULL
	// (sorted last under DESC) and created_at decides.
	query += `
		ORDER BY elo_score DESC, created_at DESC
		LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query type %s: %w", entityType, err)
	}
	return collectRecords(rows)
}

func (s *store) QueryBySite(ctx context.Context, siteID, entityType string, limit int) ([]*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT pk, sk, entity_type, site_id, elo_score, payload_json, created_at
		FROM records
		WHERE site_id = ? AND entity_type = ?
		ORDER BY created_at DESC
		LIMIT ?
	`, siteID, entityType, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query site %s type %s: %w", siteID, entityType, err)
	}
	return collectRecords(rows)
}

const upsertSQL = `
	INSERT INTO records (pk, sk, entity_type, site_id, elo_score, payload_json, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(pk, sk) DO UPDATE SET
		entity_type = excluded.entity_type,
		site_id = excluded.site_id,
		elo_score = excluded.elo_score,
		payload_json = excluded.payload_json,
		created_at = excluded.created_at;
`

func upsertArgs(rec *Record) []any {
	payload := rec.Payload
	if len(payload) == 0 {
		payload = json.RawMessage("{}")
	}
	return []any{
		rec.PK, rec.SK, rec.Type,
		nullString(rec.SiteID), nullInt(rec.EloScore),
		string(payload), rec.CreatedAt,
	}
}

func scanRecord(scanner interface{ Scan(...any) error }) (*Record, error) {
	var rec Record
	var siteID sql.NullString
	var eloScore sql.NullInt64
	var payload string

	err := scanner.Scan(&rec.PK, &rec.SK, &rec.Type, &siteID, &eloScore, &payload, &rec.CreatedAt)
	if err != nil {
		return nil, err
	}

	rec.SiteID = siteID.String
	if eloScore.Valid {
		score := int(eloScore.Int64)
		rec.EloScore = &score
	}
	rec.Payload = json.RawMessage(payload)
	return &rec, nil
}

func collectRecords(rows *sql.Rows) ([]*Record, error) {
	defer rows.Close()

	var recs []*Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			log.Error("Failed to scan record row", "error", err)
			continue
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullInt(i *int) any {
	if i == nil {
		return nil
	}
	return *i
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}
