package output

import "time"

// MetricsCollector defines the secondary port for metrics collection.
type MetricsCollector interface {
	// IncFilesIngested increments the per-file ingestion counter.
	IncFilesIngested(kind, outcome string)

	// ObserveBatchDuration records how long a batch took.
	ObserveBatchDuration(kind string, duration time.Duration)

	// SetOverlayCount sets the current overlay count for a kind.
	SetOverlayCount(kind string, count int)

	// SetPhotoCount sets the current photo marker count.
	SetPhotoCount(count int)

	// IncStorageOperations increments the seed storage operation counter.
	IncStorageOperations(operation string, success bool)

	// ObserveStorageDuration records seed storage operation duration.
	ObserveStorageDuration(operation string, duration time.Duration)
}

// NoOpMetrics is a no-op implementation of MetricsCollector.
type NoOpMetrics struct{}

// IncFilesIngested implements MetricsCollector.
func (n *NoOpMetrics) IncFilesIngested(_, _ string) {}

// ObserveBatchDuration implements MetricsCollector.
func (n *NoOpMetrics) ObserveBatchDuration(_ string, _ time.Duration) {}

// SetOverlayCount implements MetricsCollector.
func (n *NoOpMetrics) SetOverlayCount(_ string, _ int) {}

// SetPhotoCount implements MetricsCollector.
func (n *NoOpMetrics) SetPhotoCount(_ int) {}

// IncStorageOperations implements MetricsCollector.
func (n *NoOpMetrics) IncStorageOperations(_ string, _ bool) {}

// ObserveStorageDuration implements MetricsCollector.
func (n *NoOpMetrics) ObserveStorageDuration(_ string, _ time.Duration) {}
