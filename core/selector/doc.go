// Package selector picks the best of several optional candidates.
//
// It replaces the nil-guarded pairwise reduction used to choose one provider image
// per media slot. Metrics are plain functions; the provider package defines the
// image metrics in use (widest backdrop, best voted poster).
package selector
