// Package telemetry carries the exporter's observability events.
//
// The pipeline reports to a single Sink: free-form traces (run start and end
// markers), tracked exceptions, and one DocumentEvent per processed document.
// ZapSink renders them as structured log lines; Recorder keeps them in memory.
//
// Sinks are fire-and-forget. Nothing in the pipeline checks their result, and a
// sink must not slow a run down.
package telemetry
