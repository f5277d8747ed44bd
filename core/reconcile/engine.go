package reconcile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"catalog-export/core/source"
	"catalog-export/core/telemetry"

	"go.uber.org/zap"
)

// Engine reconciles batches of raw documents into persisted records.
type Engine[R any] struct {
	adapter Adapter[R]
	open    Opener[R]
	sink    telemetry.Sink
	log     *zap.Logger
}

// NewEngine creates an engine for one content type.
func NewEngine[R any](adapter Adapter[R], open Opener[R], sink telemetry.Sink, log *zap.Logger) *Engine[R] {
	if log == nil {
		log = zap.NewNop()
	}
	if sink == nil {
		sink = telemetry.NewZapSink(log)
	}
	return &Engine[R]{adapter: adapter, open: open, sink: sink, log: log}
}

// Name returns the content type this engine reconciles.
func (e *Engine[R]) Name() string {
	return e.adapter.Name()
}

// Run processes docs one at a time, in batch order. A failing document is
// skipped and recorded in the summary; it never stops the loop. Run only
// returns an error when the persistence session cannot be opened or ctx is done.
func (e *Engine[R]) Run(ctx context.Context, docs []source.Document) (summary Summary, err error) {
	summary = Summary{
		ContentType: e.adapter.Name(),
		Total:       len(docs),
		StartedAt:   time.Now(),
	}
	defer func() { summary.Duration = time.Since(summary.StartedAt) }()

	store, err := e.open(ctx)
	if err != nil {
		return summary, fmt.Errorf("failed to open %s store: %w", e.adapter.Name(), err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			e.log.Warn("Failed to close store", zap.String("content_type", e.adapter.Name()), zap.Error(err))
		}
	}()

	for i, doc := range docs {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		start := time.Now()
		outcome, rec, err := e.process(ctx, store, doc)

		event := telemetry.DocumentEvent{
			ContentType: e.adapter.Name(),
			Outcome:     outcome,
			Duration:    time.Since(start),
			Processed:   i + 1,
			Total:       len(docs),
		}
		if rec.key != "" {
			event.Key = rec.key
			event.Title = rec.label
		}

		switch outcome {
		case telemetry.OutcomeInserted:
			summary.Inserted++
		case telemetry.OutcomeUpdated:
			summary.Updated++
		default:
			summary.Skipped++
			event.Err = err
			summary.Failures = append(summary.Failures, toFailure(i, err))
			e.sink.TrackException(err,
				zap.String("content_type", e.adapter.Name()),
				zap.String("key", rec.key),
				zap.Int("index", i))
		}

		event.Committed = summary.Inserted + summary.Updated
		e.sink.TrackDocument(event)
	}

	return summary, nil
}

type identity struct {
	key   string
	label string
}

func (e *Engine[R]) process(ctx context.Context, store Store[R], doc source.Document) (outcome telemetry.Outcome, id identity, err error) {
	stage := StageDecode
	defer func() {
		if r := recover(); r != nil {
			outcome = telemetry.OutcomeSkipped
			err = &DocumentError{Stage: stage, Key: id.key, Err: fmt.Errorf("%w: %v", ErrPanic, r)}
		}
	}()

	record, err := e.adapter.Decode(doc)
	if err != nil {
		if !errors.Is(err, ErrDecode) {
			err = fmt.Errorf("%w: %w", ErrDecode, err)
		}
		return telemetry.OutcomeSkipped, id, &DocumentError{Stage: StageDecode, Err: err}
	}
	id = identity{key: e.adapter.Key(record), label: e.adapter.Label(record)}

	stage = StageLookup
	existing, found, err := store.FindExisting(ctx, id.key)
	if err != nil {
		return telemetry.OutcomeSkipped, id, &DocumentError{Stage: StageLookup, Key: id.key, Err: err}
	}

	if !found {
		stage = StageEnrich
		enriched, err := e.adapter.Enrich(ctx, record)
		if err != nil {
			return telemetry.OutcomeSkipped, id, &DocumentError{Stage: StageEnrich, Key: id.key, Err: err}
		}
		stage = StageSave
		if err := store.Save(ctx, enriched); err != nil {
			return telemetry.OutcomeSkipped, id, &DocumentError{Stage: StageSave, Key: id.key, Err: err}
		}
		return telemetry.OutcomeInserted, id, nil
	}

	stage = StageMerge
	merged, err := e.adapter.Merge(ctx, existing, record)
	if err != nil {
		return telemetry.OutcomeSkipped, id, &DocumentError{Stage: StageMerge, Key: id.key, Err: err}
	}
	stage = StageSave
	if err := store.Save(ctx, merged); err != nil {
		return telemetry.OutcomeSkipped, id, &DocumentError{Stage: StageSave, Key: id.key, Err: err}
	}
	return telemetry.OutcomeUpdated, id, nil
}

func toFailure(index int, err error) Failure {
	f := Failure{Index: index, Reason: err.Error()}
	var docErr *DocumentError
	if errors.As(err, &docErr) {
		f.Key = docErr.Key
		f.Stage = docErr.Stage
		f.Reason = docErr.Err.Error()
	}
	return f
}
