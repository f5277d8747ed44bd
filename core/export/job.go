package export

import (
	"context"
	"fmt"
	"time"

	"catalog-export/core/reconcile"
	"catalog-export/core/source"
	"catalog-export/core/telemetry"

	"go.uber.org/zap"
)

// Job exports one content type.
type Job interface {
	Name() string
	Run(ctx context.Context) (reconcile.Summary, error)
}

// Runner is the reconciliation side of a Job, satisfied by *reconcile.Engine.
type Runner interface {
	Name() string
	Run(ctx context.Context, docs []source.Document) (reconcile.Summary, error)
}

type contentJob struct {
	runner Runner
	loader source.Loader
	sink   telemetry.Sink
}

// NewJob loads the batch of the runner's content type and reconciles it.
func NewJob(runner Runner, loader source.Loader, sink telemetry.Sink) Job {
	return &contentJob{runner: runner, loader: loader, sink: sink}
}

func (j *contentJob) Name() string {
	return j.runner.Name()
}

func (j *contentJob) Run(ctx context.Context) (reconcile.Summary, error) {
	name := j.runner.Name()

	docs, err := j.loader.LoadBatch(ctx, name)
	if err != nil {
		return reconcile.Summary{ContentType: name}, fmt.Errorf("failed to load %s: %w", name, err)
	}

	j.sink.TrackTrace(fmt.Sprintf("Import %s started at %s", name, stamp(time.Now())),
		zap.String("content_type", name),
		zap.Int("documents", len(docs)))

	summary, err := j.runner.Run(ctx, docs)

	j.sink.TrackTrace(fmt.Sprintf("Import %s ended at %s", name, stamp(time.Now())),
		zap.String("content_type", name),
		zap.Int("inserted", summary.Inserted),
		zap.Int("updated", summary.Updated),
		zap.Int("skipped", summary.Skipped))

	return summary, err
}

func stamp(t time.Time) string {
	return t.Format("02/01/2006 15:04:05.000")
}

// PerRun returns a Runner named name that calls build at the start of every
// run and delegates to the Runner it returns.
func PerRun(name string, build func(ctx context.Context) Runner) Runner {
	return &perRun{name: name, build: build}
}

type perRun struct {
	name  string
	build func(ctx context.Context) Runner
}

func (p *perRun) Name() string {
	return p.name
}

func (p *perRun) Run(ctx context.Context, docs []source.Document) (reconcile.Summary, error) {
	return p.build(ctx).Run(ctx, docs)
}
