// Package storage issues presigned upload URLs for voice recordings.
// A mock backend fabricates URLs for local development, and an S3-compatible
// backend (AWS or MinIO) signs real PutObject requests. The backend is chosen
// once at startup from configuration.
package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"emodiary/internal/config"
)

// ExpirySeconds is how long an issued upload URL stays valid
const ExpirySeconds int64 = 600

// ErrBackendUnavailable reports that the object store could not sign a request
var ErrBackendUnavailable = errors.New("storage backend unavailable")

// PresignedUpload is a time-bounded permission to PUT one object
type PresignedUpload struct {
	UploadURL        string
	ObjectKey        string
	ExpiresInSeconds int64
}

// Generator creates presigned upload URLs
type Generator interface {
	// CreatePresignedUploadURL derives an object key from fileName and signs an upload for it
	CreatePresignedUploadURL(ctx context.Context, fileName, mimeType string) (*PresignedUpload, error)
}

// HealthChecker is implemented by backends that can probe their object store
type HealthChecker interface {
	Health(ctx context.Context) error
}

// New builds the generator selected by cfg.Backend
func New(ctx context.Context, cfg config.StorageConfig, log *slog.Logger) (Generator, error) {
	switch cfg.Backend {
	case config.BackendMock, "":
		log.Info("Using mock storage backend")
		return NewMock(), nil
	case config.BackendS3:
		s, err := NewS3(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
