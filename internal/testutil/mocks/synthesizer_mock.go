package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/bengalibuddy/internal/speech"
)

// MockSynthesizer is a mock implementation of speech.Synthesizer
type MockSynthesizer struct {
	mock.Mock
}

func (m *MockSynthesizer) Synthesize(ctx context.Context, req speech.Request) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

var _ speech.Synthesizer = (*MockSynthesizer)(nil)
