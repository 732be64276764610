package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/bengalibuddy/internal/images"
)

// MockFetcher is a mock implementation of images.Fetcher
type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) Fetch(ctx context.Context, rawURL string) (*images.Image, error) {
	args := m.Called(ctx, rawURL)
	if img := args.Get(0); img != nil {
		return img.(*images.Image), args.Error(1)
	}
	return nil, args.Error(1)
}

var _ images.Fetcher = (*MockFetcher)(nil)
