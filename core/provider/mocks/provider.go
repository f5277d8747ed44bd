package mocks

import (
	"context"

	"catalog-export/core/provider"

	"github.com/stretchr/testify/mock"
)

// Provider is a mock implementation of provider.Provider
type Provider struct {
	mock.Mock
}

func (m *Provider) Available() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *Provider) SearchByTitle(ctx context.Context, kind provider.Kind, title string) ([]provider.SearchResult, error) {
	args := m.Called(ctx, kind, title)
	if res, ok := args.Get(0).([]provider.SearchResult); ok {
		return res, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Provider) FetchDetails(ctx context.Context, kind provider.Kind, id string, withImages, withSimilar bool) (*provider.Details, error) {
	args := m.Called(ctx, kind, id, withImages, withSimilar)
	if d, ok := args.Get(0).(*provider.Details); ok {
		return d, args.Error(1)
	}
	return nil, args.Error(1)
}

// ResolveImageURL is not mocked; it mimics the real base URL joining.
func (m *Provider) ResolveImageURL(size, path string) string {
	if path == "" {
		return ""
	}
	return "https://image.test/" + size + path
}

func (m *Provider) ExternalIDs(ctx context.Context, kind provider.Kind, id int) (*provider.ExternalIDs, error) {
	args := m.Called(ctx, kind, id)
	if ids, ok := args.Get(0).(*provider.ExternalIDs); ok {
		return ids, args.Error(1)
	}
	return nil, args.Error(1)
}
