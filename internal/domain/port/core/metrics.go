package core

import "time"

// ProcessingMetrics records the results of file processing runs
type ProcessingMetrics interface {
	// ObserveFile records one orchestrator run by resulting status and failure cause ("" on success)
	ObserveFile(status, cause string, elapsed time.Duration)
	// ObserveLines records decoded line counts for one file
	ObserveLines(valid, invalid int)
	// ObserveRetry records a redelivery of a file after a transient failure
	ObserveRetry()
	// ObserveDeadLetter records a file dropped after a permanent failure or exhausted retries
	ObserveDeadLetter(cause string)
}
