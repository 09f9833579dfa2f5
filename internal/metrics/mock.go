package metrics

import "sync"

// MockMetrics is a mock implementation of the Metrics interface for testing.
type MockMetrics struct {
	mu sync.Mutex

	GamesRecordedCount   int
	GamesFailedCount     int
	RatingConflictsCount int
	RecordDurations      []float64
	ReportBatchesCount   int
	StartupTimes         []float64
}

var _ Metrics = (*MockMetrics)(nil)

// NewMock creates a new mock instance.
func NewMock() *MockMetrics {
	return &MockMetrics{}
}

func (m *MockMetrics) IncGamesRecorded() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GamesRecordedCount++
}

func (m *MockMetrics) IncGamesFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GamesFailedCount++
}

func (m *MockMetrics) IncRatingConflicts() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RatingConflictsCount++
}

func (m *MockMetrics) ObserveRecordDuration(seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RecordDurations = append(m.RecordDurations, seconds)
}

func (m *MockMetrics) IncReportBatches() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ReportBatchesCount++
}

func (m *MockMetrics) SetStartupTime(seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StartupTimes = append(m.StartupTimes, seconds)
}
