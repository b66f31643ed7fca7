package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// MockHost is the fake object store that mock URLs point at
const MockHost = "https://mock-s3.local"

// Mock fabricates upload URLs with an opaque "mock" signature.
// It never contacts a real store and never fails.
type Mock struct {
	now   func() time.Time
	newID func() string
}

// MockOption customises a Mock
type MockOption func(*Mock)

// WithClock overrides the time source used for the key's date segment
func WithClock(now func() time.Time) MockOption {
	return func(m *Mock) { m.now = now }
}

// WithIDSource overrides the unique token generator
func WithIDSource(newID func() string) MockOption {
	return func(m *Mock) { m.newID = newID }
}

// NewMock creates a mock generator
func NewMock(opts ...MockOption) *Mock {
	m := &Mock{
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// CreatePresignedUploadURL implements Generator
func (m *Mock) CreatePresignedUploadURL(_ context.Context, fileName, _ string) (*PresignedUpload, error) {
	key := ObjectKey(fileName, m.now(), m.newID())

	return &PresignedUpload{
		UploadURL:        fmt.Sprintf("%s/object/%s?signature=mock&expires=%d", MockHost, key, ExpirySeconds),
		ObjectKey:        key,
		ExpiresInSeconds: ExpirySeconds,
	}, nil
}

// Health always succeeds for the mock
func (m *Mock) Health(context.Context) error {
	return nil
}
