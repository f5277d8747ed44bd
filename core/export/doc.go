// Package export runs the catalog export across content types.
//
// Each content type is a Job: load its batch from the source store, then hand
// it to the reconciliation engine. The Orchestrator starts every job
// concurrently, waits for all of them and returns a RunReport. A failing or
// panicking job is tracked through the telemetry sink and recorded in its
// JobReport; the other jobs run to completion.
//
// Start and end markers are emitted as traces for the run and for each job.
// Only one run may be in progress per Orchestrator.
package export
