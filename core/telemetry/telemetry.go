package telemetry

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Outcome is the result of reconciling a single document.
type Outcome string

const (
	OutcomeInserted Outcome = "inserted"
	OutcomeUpdated  Outcome = "updated"
	OutcomeSkipped  Outcome = "skipped"
)

// DocumentEvent describes one processed document of a content-type run.
type DocumentEvent struct {
	ContentType string
	Key         string
	Title       string
	Outcome     Outcome
	Duration    time.Duration
	// Processed is the 1-based position of the document in its batch,
	// skipped documents included.
	Processed int
	// Committed is the running count of documents inserted or updated so far
	// in the run, this one included.
	Committed int
	Total     int
	Err       error
}

// Sink receives traces, exceptions and per-document events.
// Implementations must be safe for concurrent use and must never block the pipeline.
type Sink interface {
	TrackTrace(message string, fields ...zap.Field)
	TrackException(err error, fields ...zap.Field)
	TrackDocument(event DocumentEvent)
}

// ZapSink writes telemetry as structured log entries.
type ZapSink struct {
	log *zap.Logger
}

// NewZapSink returns a Sink backed by the given logger.
func NewZapSink(log *zap.Logger) *ZapSink {
	if log == nil {
		log = zap.NewNop()
	}
	return &ZapSink{log: log.Named("telemetry")}
}

func (s *ZapSink) TrackTrace(message string, fields ...zap.Field) {
	s.log.Info(message, fields...)
}

func (s *ZapSink) TrackException(err error, fields ...zap.Field) {
	if err == nil {
		return
	}
	s.log.Error("Exception tracked", append(fields, zap.Error(err))...)
}

func (s *ZapSink) TrackDocument(event DocumentEvent) {
	fields := []zap.Field{
		zap.String("content_type", event.ContentType),
		zap.String("key", event.Key),
		zap.String("title", event.Title),
		zap.String("outcome", string(event.Outcome)),
		zap.Duration("duration", event.Duration),
		zap.Int("processed", event.Processed),
		zap.Int("committed", event.Committed),
		zap.Int("total", event.Total),
	}

	if event.Err != nil {
		s.log.Warn("Document skipped", append(fields, zap.Error(event.Err))...)
		return
	}
	s.log.Info("Document reconciled", fields...)
}

// Recorder is an in-memory Sink, useful to inspect a run after the fact.
type Recorder struct {
	mu         sync.Mutex
	Traces     []string
	Exceptions []error
	Documents  []DocumentEvent
}

func (r *Recorder) TrackTrace(message string, _ ...zap.Field) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Traces = append(r.Traces, message)
}

func (r *Recorder) TrackException(err error, _ ...zap.Field) {
	if err == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Exceptions = append(r.Exceptions, err)
}

func (r *Recorder) TrackDocument(event DocumentEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Documents = append(r.Documents, event)
}

// Snapshot returns copies of everything recorded so far.
func (r *Recorder) Snapshot() ([]string, []error, []DocumentEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.Traces...),
		append([]error(nil), r.Exceptions...),
		append([]DocumentEvent(nil), r.Documents...)
}
