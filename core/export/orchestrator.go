package export

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"catalog-export/core/reconcile"
	"catalog-export/core/telemetry"

	"go.uber.org/zap"
)

var (
	// ErrAlreadyRunning is returned when a run is requested while one is in progress.
	ErrAlreadyRunning = errors.New("export already running")
	// ErrUnknownType is returned when a filter names a content type with no job.
	ErrUnknownType = errors.New("unknown content type")
)

// JobReport is the outcome of one content type.
type JobReport struct {
	// Name is the content type.
	Name string `json:"name"`
	// Summary holds the reconciliation counts.
	Summary reconcile.Summary `json:"summary"`
	// Error is set when the content type failed as a whole.
	Error string `json:"error,omitempty"`
}

// RunReport is the outcome of a whole export run.
type RunReport struct {
	StartedAt  time.Time     `json:"started_at"`
	FinishedAt time.Time     `json:"finished_at"`
	Duration   time.Duration `json:"duration"`
	Jobs       []JobReport   `json:"jobs"`
}

// Failed reports whether any content type failed as a whole.
func (r RunReport) Failed() bool {
	for _, j := range r.Jobs {
		if j.Error != "" {
			return true
		}
	}
	return false
}

// Orchestrator runs every registered job concurrently.
type Orchestrator struct {
	jobs []Job
	sink telemetry.Sink
	log  *zap.Logger

	running atomic.Bool
	mu      sync.RWMutex
	last    *RunReport
}

// NewOrchestrator creates an orchestrator over jobs.
func NewOrchestrator(sink telemetry.Sink, log *zap.Logger, jobs ...Job) *Orchestrator {
	if log == nil {
		log = zap.NewNop()
	}
	if sink == nil {
		sink = telemetry.NewZapSink(log)
	}
	return &Orchestrator{jobs: jobs, sink: sink, log: log}
}

// Types returns the registered content types in registration order.
func (o *Orchestrator) Types() []string {
	names := make([]string, 0, len(o.jobs))
	for _, j := range o.jobs {
		names = append(names, j.Name())
	}
	return names
}

// Running reports whether a run is in progress.
func (o *Orchestrator) Running() bool {
	return o.running.Load()
}

// LastReport returns the report of the latest finished run, if any.
func (o *Orchestrator) LastReport() (RunReport, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	if o.last == nil {
		return RunReport{}, false
	}
	return *o.last, true
}

// Run exports every content type, or only those named in types.
// Failures of one content type are tracked and reported; they never cancel
// the others. Run returns an error only when the run could not start.
func (o *Orchestrator) Run(ctx context.Context, types ...string) (RunReport, error) {
	jobs, err := o.selectJobs(types)
	if err != nil {
		return RunReport{}, err
	}

	if !o.running.CompareAndSwap(false, true) {
		return RunReport{}, ErrAlreadyRunning
	}
	defer o.running.Store(false)

	return o.run(ctx, jobs), nil
}

// Start begins a run in the background and returns as soon as it owns the
// running flag. The channel receives the report once the run has ended.
func (o *Orchestrator) Start(ctx context.Context, types ...string) (<-chan RunReport, error) {
	jobs, err := o.selectJobs(types)
	if err != nil {
		return nil, err
	}
	if !o.running.CompareAndSwap(false, true) {
		return nil, ErrAlreadyRunning
	}

	done := make(chan RunReport, 1)
	go func() {
		defer close(done)
		report := o.run(ctx, jobs)
		o.running.Store(false)
		done <- report
	}()
	return done, nil
}

func (o *Orchestrator) run(ctx context.Context, jobs []Job) RunReport {
	report := RunReport{StartedAt: time.Now()}
	o.sink.TrackTrace("Export started at "+stamp(report.StartedAt), zap.Strings("types", names(jobs)))

	reports := make([]JobReport, len(jobs))
	var wg sync.WaitGroup
	for i, job := range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			reports[i] = o.runJob(ctx, job)
		}()
	}
	wg.Wait()

	report.Jobs = reports
	report.FinishedAt = time.Now()
	report.Duration = report.FinishedAt.Sub(report.StartedAt)
	o.sink.TrackTrace("Export ended at "+stamp(report.FinishedAt), zap.Duration("duration", report.Duration))

	o.mu.Lock()
	o.last = &report
	o.mu.Unlock()

	return report
}

func (o *Orchestrator) runJob(ctx context.Context, job Job) (jr JobReport) {
	jr.Name = job.Name()
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("export %s panicked: %v", jr.Name, r)
			o.sink.TrackException(err, zap.String("content_type", jr.Name))
			jr.Error = err.Error()
		}
	}()

	summary, err := job.Run(ctx)
	jr.Summary = summary
	if err != nil {
		o.sink.TrackException(err, zap.String("content_type", jr.Name))
		jr.Error = err.Error()
	}
	return jr
}

func (o *Orchestrator) selectJobs(types []string) ([]Job, error) {
	if len(types) == 0 {
		return o.jobs, nil
	}

	selected := make([]Job, 0, len(types))
	for _, t := range types {
		idx := slices.IndexFunc(o.jobs, func(j Job) bool { return j.Name() == t })
		if idx < 0 {
			return nil, fmt.Errorf("%w: %s", ErrUnknownType, t)
		}
		if !slices.Contains(selected, o.jobs[idx]) {
			selected = append(selected, o.jobs[idx])
		}
	}
	return selected, nil
}

func names(jobs []Job) []string {
	out := make([]string, len(jobs))
	for i, j := range jobs {
		out[i] = j.Name()
	}
	return out
}
