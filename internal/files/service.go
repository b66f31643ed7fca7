package files

import (
	"context"
	"fmt"
	"strings"

	"emodiary/internal/metrics"
	"emodiary/internal/storage"
)

// Presign outcomes reported to metrics
const (
	OutcomeIssued      = "issued"
	OutcomeRejected    = "rejected"
	OutcomeUnavailable = "unavailable"
)

// Service handles business logic for voice upload presigning
type Service struct {
	generator storage.Generator
	metrics   *metrics.Metrics
}

// NewService creates a new files service. m may be nil.
func NewService(generator storage.Generator, m *metrics.Metrics) *Service {
	return &Service{
		generator: generator,
		metrics:   m,
	}
}

// ValidateMimeType checks that the content type is an audio type
func ValidateMimeType(mimeType string) error {
	if !strings.HasPrefix(mimeType, AudioMimePrefix) {
		return fmt.Errorf("%w: got %q", ErrInvalidMimeType, mimeType)
	}
	return nil
}

// Presign issues an upload URL for an audio file. Non-audio types are
// rejected before the generator is consulted.
func (s *Service) Presign(ctx context.Context, req *PresignRequest) (*PresignResponse, error) {
	if err := ValidateMimeType(req.MimeType); err != nil {
		s.metrics.RecordPresign(OutcomeRejected)
		return nil, err
	}

	upload, err := s.generator.CreatePresignedUploadURL(ctx, req.FileName, req.MimeType)
	if err != nil {
		s.metrics.RecordPresign(OutcomeUnavailable)
		return nil, fmt.Errorf("failed to generate upload URL: %w", err)
	}

	s.metrics.RecordPresign(OutcomeIssued)
	return &PresignResponse{
		UploadURL: upload.UploadURL,
		Key:       upload.ObjectKey,
		Expires:   upload.ExpiresInSeconds,
	}, nil
}

// HealthCheck probes the storage backend when it supports it
func (s *Service) HealthCheck(ctx context.Context) error {
	if hc, ok := s.generator.(storage.HealthChecker); ok {
		return hc.Health(ctx)
	}
	return nil
}
