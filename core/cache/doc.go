// Package cache stores provider responses between runs.
//
// Movie and show details rarely change, and the provider enforces request quotas,
// so responses are cached by request key. Redis is used when several exporter
// instances share a quota; the in-memory cache serves single-process runs and tests.
package cache
