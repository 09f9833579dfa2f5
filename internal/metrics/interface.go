package metrics

// Metrics is the instrumentation surface the workflows record against.
type Metrics interface {
	IncGamesRecorded()
	IncGamesFailed()
	IncRatingConflicts()
	ObserveRecordDuration(seconds float64)
	IncReportBatches()
	SetStartupTime(seconds float64)
}
