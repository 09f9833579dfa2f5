package store

import (
	"context"
	"sync"
)

// MockStore is a mock implementation of the RecordStore interface for
// testing. It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	GetFunc         func(ctx context.Context, pk, sk string) (*Record, error)
	PutFunc         func(ctx context.Context, rec *Record) error
	UpdateFunc      func(ctx context.Context, pk, sk string, fields map[string]any, cond *Condition) (*Record, error)
	BatchPutFunc    func(ctx context.Context, recs []*Record) error
	QueryPrefixFunc func(ctx context.Context, pk, skPrefix string, limit int) ([]*Record, error)
	QueryByTypeFunc func(ctx context.Context, entityType string, limit int, minElo *int) ([]*Record, error)
	QueryBySiteFunc func(ctx context.Context, siteID, entityType string, limit int) ([]*Record, error)

	// Call records
	GetCalls []struct {
		PK string
		SK string
	}
	PutCalls      []*Record
	BatchPutCalls [][]*Record
	UpdateCalls   []struct {
		PK     string
		SK     string
		Fields map[string]any
		Cond   *Condition
	}
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

func (m *MockStore) Get(ctx context.Context, pk, sk string) (*Record, error) {
	m.mu.Lock()
	m.GetCalls = append(m.GetCalls, struct {
		PK string
		SK string
	}{pk, sk})
	m.mu.Unlock()
	if m.GetFunc != nil {
		return m.GetFunc(ctx, pk, sk)
	}
	return nil, ErrNotFound
}

func (m *MockStore) Put(ctx context.Context, rec *Record) error {
	m.mu.Lock()
	m.PutCalls = append(m.PutCalls, rec)
	m.mu.Unlock()
	if m.PutFunc != nil {
		return m.PutFunc(ctx, rec)
	}
	return nil
}

func (m *MockStore) Update(ctx context.Context, pk, sk string, fields map[string]any, cond *Condition) (*Record, error) {
	m.mu.Lock()
	m.UpdateCalls = append(m.UpdateCalls, struct {
		PK     string
		SK     string
		Fields map[string]any
		Cond   *Condition
	}{pk, sk, fields, cond})
	m.mu.Unlock()
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, pk, sk, fields, cond)
	}
	return &Record{PK: pk, SK: sk}, nil
}

func (m *MockStore) BatchPut(ctx context.Context, recs []*Record) error {
	m.mu.Lock()
	m.BatchPutCalls = append(m.BatchPutCalls, recs)
	m.mu.Unlock()
	if m.BatchPutFunc != nil {
		return m.BatchPutFunc(ctx, recs)
	}
	return nil
}

func (m *MockStore) QueryPrefix(ctx context.Context, pk, skPrefix string, limit int) ([]*Record, error) {
	if m.QueryPrefixFunc != nil {
		return m.QueryPrefixFunc(ctx, pk, skPrefix, limit)
	}
	return nil, nil
}

func (m *MockStore) QueryByType(ctx context.Context, entityType string, limit int, minElo *int) ([]*Record, error) {
	if m.QueryByTypeFunc != nil {
		return m.QueryByTypeFunc(ctx, entityType, limit, minElo)
	}
	return nil, nil
}

func (m *MockStore) QueryBySite(ctx context.Context, siteID, entityType string, limit int) ([]*Record, error) {
	if m.QueryBySiteFunc != nil {
		return m.QueryBySiteFunc(ctx, siteID, entityType, limit)
	}
	return nil, nil
}
