package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"emodiary/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// S3 signs uploads against an S3-compatible store
type S3 struct {
	client          *s3.Client
	publicPresigner *s3.PresignClient
	bucketName      string
	now             func() time.Time
	newID           func() string
	log             *slog.Logger
}

// NewS3 creates an S3 generator. Presigned URLs are signed for the public
// endpoint when one is configured so browsers can reach them.
func NewS3(ctx context.Context, cfg config.StorageConfig, log *slog.Logger) (*S3, error) {
	if cfg.Endpoint == "" || cfg.AccessKey == "" || cfg.SecretKey == "" || cfg.BucketName == "" {
		return nil, fmt.Errorf("s3 storage requires endpoint, credentials and bucket name")
	}

	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	protocol := "http"
	if cfg.UseSSL {
		protocol = "https"
	}

	client := newPathStyleClient(awsCfg, fmt.Sprintf("%s://%s", protocol, cfg.Endpoint))

	publicEndpoint := cfg.PublicEndpoint
	if publicEndpoint == "" {
		publicEndpoint = cfg.Endpoint
	}
	publicClient := client
	if publicEndpoint != cfg.Endpoint {
		publicClient = newPathStyleClient(awsCfg, fmt.Sprintf("%s://%s", protocol, publicEndpoint))
	}
	log.Info("Using S3 storage backend",
		"endpoint", cfg.Endpoint,
		"public_endpoint", publicEndpoint,
		"bucket", cfg.BucketName,
	)

	return &S3{
		client:          client,
		publicPresigner: s3.NewPresignClient(publicClient),
		bucketName:      cfg.BucketName,
		now:             time.Now,
		newID:           uuid.NewString,
		log:             log,
	}, nil
}

// MinIO requires path-style addressing
func newPathStyleClient(cfg aws.Config, endpointURL string) *s3.Client {
	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpointURL)
		o.UsePathStyle = true
	})
}

// CreatePresignedUploadURL implements Generator
func (s *S3) CreatePresignedUploadURL(ctx context.Context, fileName, mimeType string) (*PresignedUpload, error) {
	key := ObjectKey(fileName, s.now(), s.newID())

	request, err := s.publicPresigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucketName),
		Key:         aws.String(key),
		ContentType: aws.String(mimeType),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = time.Duration(ExpirySeconds) * time.Second
	})
	if err != nil {
		return nil, fmt.Errorf("%w: presign upload for key %s: %w", ErrBackendUnavailable, key, err)
	}

	return &PresignedUpload{
		UploadURL:        request.URL,
		ObjectKey:        key,
		ExpiresInSeconds: ExpirySeconds,
	}, nil
}

// EnsureBucket creates the bucket if it doesn't already exist
func (s *S3) EnsureBucket(ctx context.Context) error {
	if _, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucketName),
	}); err == nil {
		return nil
	}

	if _, err := s.client.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(s.bucketName),
	}); err != nil {
		return fmt.Errorf("%w: create bucket %s: %w", ErrBackendUnavailable, s.bucketName, err)
	}

	s.log.Info("Created S3 bucket", "bucket", s.bucketName)
	return nil
}

// Health checks that the bucket is reachable
func (s *S3) Health(ctx context.Context) error {
	if _, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucketName),
	}); err != nil {
		return fmt.Errorf("%w: head bucket %s: %w", ErrBackendUnavailable, s.bucketName, err)
	}
	return nil
}
