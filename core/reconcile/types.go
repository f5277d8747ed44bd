package reconcile

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrDecode marks a raw document that cannot be turned into a record.
	ErrDecode = errors.New("failed to decode document")
	// ErrPanic marks a document whose processing panicked.
	ErrPanic = errors.New("document processing panicked")
)

// Stage identifies where in the pipeline a document failed.
type Stage string

const (
	// StageDecode covers decoding and validation of the raw document.
	StageDecode Stage = "decode"
	// StageLookup covers loading the persisted record by natural key.
	StageLookup Stage = "lookup"
	// StageEnrich covers provider lookups and media relocation for inserts.
	StageEnrich Stage = "enrich"
	// StageMerge covers applying the merge rules to an existing record.
	StageMerge Stage = "merge"
	// StageSave covers committing the record.
	StageSave Stage = "save"
)

// DocumentError is the reason a single document was skipped.
type DocumentError struct {
	// Stage is the pipeline step that failed.
	Stage Stage
	// Key is the natural key, empty when the document did not decode.
	Key string
	// Err is the underlying failure.
	Err error
}

func (e *DocumentError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Stage, e.Key, e.Err)
}

func (e *DocumentError) Unwrap() error {
	return e.Err
}

// Failure is the serialisable form of a skipped document.
type Failure struct {
	// Index is the position of the document in its batch.
	Index int `json:"index"`
	// Key is the natural key, if it could be decoded.
	Key string `json:"key,omitempty"`
	// Stage is the pipeline step that failed.
	Stage Stage `json:"stage"`
	// Reason is the error message.
	Reason string `json:"reason"`
}

// Summary provides aggregate counts for one content-type run.
type Summary struct {
	// ContentType is the name of the reconciled content type (e.g., "movies").
	ContentType string `json:"content_type"`

	// Total is the number of documents in the batch.
	Total int `json:"total"`

	// Inserted counts records persisted for the first time.
	Inserted int `json:"inserted"`

	// Updated counts existing records merged and saved again.
	Updated int `json:"updated"`

	// Skipped counts documents that failed at any stage.
	Skipped int `json:"skipped"`

	// Failures lists why each skipped document was skipped.
	Failures []Failure `json:"failures,omitempty"`

	// StartedAt is when the run began.
	StartedAt time.Time `json:"started_at"`

	// Duration is how long the run took.
	Duration time.Duration `json:"duration"`
}

// Processed returns the number of documents the run got through.
func (s Summary) Processed() int {
	return s.Inserted + s.Updated + s.Skipped
}
