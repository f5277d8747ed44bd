package selector

// Prefer reports whether next should replace the current winner.
type Prefer[T any] func(current, next *T) bool

// Best folds candidates from the left, replacing the winner whenever prefer
// favours the next candidate. Nil candidates never win over a non-nil one and
// the first non-nil candidate wins ties. It returns nil when every candidate is
// nil or the slice is empty.
func Best[T any](candidates []*T, prefer Prefer[T]) *T {
	var winner *T
	for _, next := range candidates {
		if next == nil {
			continue
		}
		if winner == nil || prefer(winner, next) {
			winner = next
		}
	}
	return winner
}

// Higher builds a Prefer that favours a strictly larger metric.
func Higher[T any](metric func(*T) float64) Prefer[T] {
	return func(current, next *T) bool {
		return metric(next) > metric(current)
	}
}

// Pointers returns a pointer to every element of values, for use with Best.
func Pointers[T any](values []T) []*T {
	out := make([]*T, len(values))
	for i := range values {
		out[i] = &values[i]
	}
	return out
}
