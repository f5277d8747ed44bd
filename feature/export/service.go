package export

import (
	"context"
	"strings"

	"catalog-export/core/export"

	"go.uber.org/zap"
)

// Status describes the export state served by the API.
type Status struct {
	// Running is true while a run is in progress.
	Running bool `json:"running"`
	// Types lists the content types that can be exported.
	Types []string `json:"types"`
	// LastRun is the report of the latest finished run.
	LastRun *export.RunReport `json:"last_run,omitempty"`
}

// Service exposes the orchestrator to HTTP handlers.
type Service struct {
	orchestrator *export.Orchestrator
	ctx          context.Context
	logger       *zap.Logger
}

// NewService creates a Service. Runs triggered through it live as long as ctx.
func NewService(ctx context.Context, orchestrator *export.Orchestrator, logger *zap.Logger) *Service {
	return &Service{orchestrator: orchestrator, ctx: ctx, logger: logger}
}

// Status returns the current export state.
func (s *Service) Status() Status {
	st := Status{
		Running: s.orchestrator.Running(),
		Types:   s.orchestrator.Types(),
	}
	if last, ok := s.orchestrator.LastReport(); ok {
		st.LastRun = &last
	}
	return st
}

// Trigger starts a background run of the given content types (all when empty).
// It fails with export.ErrAlreadyRunning or export.ErrUnknownType.
func (s *Service) Trigger(types []string) error {
	done, err := s.orchestrator.Start(s.ctx, types...)
	if err != nil {
		return err
	}

	go func() {
		report := <-done
		fields := []zap.Field{zap.Duration("duration", report.Duration)}
		for _, j := range report.Jobs {
			fields = append(fields, zap.Int(j.Name+"_processed", j.Summary.Processed()))
		}
		if report.Failed() {
			s.logger.Warn("Triggered export finished with failures", fields...)
			return
		}
		s.logger.Info("Triggered export finished", fields...)
	}()
	return nil
}

// ParseTypes splits a comma separated list of content types.
func ParseTypes(raw string) []string {
	var out []string
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
