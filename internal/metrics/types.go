package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds the Prometheus collectors for the leaderboard backend.
type Service struct {
	GamesRecorded      prometheus.Counter
	GamesFailed        prometheus.Counter
	RatingConflicts    prometheus.Counter
	RecordDuration     prometheus.Histogram
	ReportBatches      prometheus.Counter
	StartupTimeSeconds prometheus.Gauge
}
