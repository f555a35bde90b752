package services

import (
	"StegoGuard/internal/core/domain"
	"StegoGuard/internal/core/ports"
	"context"

	"github.com/stretchr/testify/mock"
)

// --- Mocks ---

// MockIdentityProvider
type MockIdentityProvider struct {
	mock.Mock
}

var _ ports.IdentityProvider = (*MockIdentityProvider)(nil)

func (m *MockIdentityProvider) CurrentIdentity(ctx context.Context) (*domain.Identity, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Identity), args.Error(1)
}

// MockImageOracle
type MockImageOracle struct {
	mock.Mock
}

var _ ports.ImageOracle = (*MockImageOracle)(nil)

func (m *MockImageOracle) Validate(ctx context.Context, name string, data []byte) (domain.Verdict, error) {
	args := m.Called(ctx, name, data)
	return args.Get(0).(domain.Verdict), args.Error(1)
}

// passthroughCompressor returns its input unchanged.
type passthroughCompressor struct{}

func (passthroughCompressor) Compress(data []byte) ([]byte, error)   { return data, nil }
func (passthroughCompressor) Decompress(data []byte) ([]byte, error) { return data, nil }

// MockEventBus
type MockEventBus struct {
	mock.Mock
}

var _ ports.EventBus = (*MockEventBus)(nil)

func (m *MockEventBus) Publish(ctx context.Context, topic string, data interface{}) error {
	args := m.Called(ctx, topic, data)
	return args.Error(0)
}

func (m *MockEventBus) Subscribe(topic string, handler ports.EventHandler) {
	m.Called(topic, handler)
}
