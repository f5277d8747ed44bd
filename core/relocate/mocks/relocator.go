package mocks

import (
	"context"
	"slices"
	"sync"

	"catalog-export/core/relocate"
)

// PublicBase prefixes every path returned by Relocator.
const PublicBase = "https://cdn.test/catalog/"

// Relocator records relocations and maps each path onto PublicBase.
type Relocator struct {
	// Fail maps source URLs to the error returned for them.
	Fail map[string]error

	mu    sync.Mutex
	calls map[string]string
}

var _ relocate.Relocator = (*Relocator)(nil)

func (r *Relocator) Relocate(_ context.Context, destinationPath, sourceURL string) (string, error) {
	if err := r.Fail[sourceURL]; err != nil {
		return "", err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.calls == nil {
		r.calls = make(map[string]string)
	}
	r.calls[destinationPath] = sourceURL
	return PublicBase + destinationPath, nil
}

// Paths returns the relocated destination paths, sorted.
func (r *Relocator) Paths() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.calls))
	for p := range r.calls {
		out = append(out, p)
	}
	slices.Sort(out)
	return out
}

// Source returns the source URL relocated to destinationPath.
func (r *Relocator) Source(destinationPath string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls[destinationPath]
}
