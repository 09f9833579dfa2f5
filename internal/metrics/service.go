package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		GamesRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "leaderboard_games_recorded_total",
			Help: "The total number of games recorded successfully.",
		}),
		GamesFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "leaderboard_games_failed_total",
			Help: "The total number of game recordings that failed.",
		}),
		RatingConflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "leaderboard_rating_conflicts_total",
			Help: "The total number of conditional rating writes that hit a conflict and were retried.",
		}),
		RecordDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "leaderboard_game_record_duration_seconds",
			Help:    "The duration of individual game recordings, reads and writes included.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		ReportBatches: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "leaderboard_report_batches_total",
			Help: "The total number of game-report batches accepted from Pub/Sub.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "leaderboard_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.GamesRecorded,
		s.GamesFailed,
		s.RatingConflicts,
		s.RecordDuration,
		s.ReportBatches,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncGamesRecorded() {
	s.GamesRecorded.Inc()
}

func (s *Service) IncGamesFailed() {
	s.GamesFailed.Inc()
}

func (s *Service) IncRatingConflicts() {
	s.RatingConflicts.Inc()
}

func (s *Service) ObserveRecordDuration(seconds float64) {
	s.RecordDuration.Observe(seconds)
}

func (s *Service) IncReportBatches() {
	s.ReportBatches.Inc()
}

func (s *Service) SetStartupTime(seconds float64) {
	s.StartupTimeSeconds.Set(seconds)
}
