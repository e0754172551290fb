package domain

// FileOutcome classifies what happened to a single file in a batch.
type FileOutcome string

// File outcomes. Skipped covers expected absence conditions (no markup entry
// in an archive, no GPS metadata in a photo, empty geometry); Failed covers
// genuine parse or extraction errors. Neither aborts the batch.
const (
	OutcomeAccepted FileOutcome = "accepted"
	OutcomeSkipped  FileOutcome = "skipped"
	OutcomeFailed   FileOutcome = "failed"
)

// FileResult records the outcome of one file in a batch.
type FileResult struct {
	Name    string      `json:"name"`
	Outcome FileOutcome `json:"outcome"`
	Detail  string      `json:"detail,omitempty"`
}

// BatchReport summarizes one upload batch. The only batch-level user-facing
// signal is NoGeotaggedPhotos, raised when an entire photo batch yields no
// markers.
type BatchReport struct {
	Kind              string       `json:"kind"`
	Accepted          int          `json:"accepted"`
	Skipped           int          `json:"skipped"`
	Failed            int          `json:"failed"`
	Files             []FileResult `json:"files"`
	NoGeotaggedPhotos bool         `json:"no_geotagged_photos,omitempty"`
}

// NewBatchReport creates an empty report for the given batch kind.
func NewBatchReport(kind string) *BatchReport {
	return &BatchReport{Kind: kind}
}

// Add records a per-file outcome.
func (r *BatchReport) Add(name string, outcome FileOutcome, detail string) {
	r.Files = append(r.Files, FileResult{Name: name, Outcome: outcome, Detail: detail})
	switch outcome {
	case OutcomeAccepted:
		r.Accepted++
	case OutcomeSkipped:
		r.Skipped++
	case OutcomeFailed:
		r.Failed++
	}
}

// Total returns the number of files processed.
func (r *BatchReport) Total() int {
	return len(r.Files)
}
