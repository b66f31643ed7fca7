//go:build integration

package storage

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"emodiary/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startMinIO(t *testing.T, ctx context.Context) string {
	t.Helper()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "minio/minio:latest",
			Cmd:          []string{"server", "/data"},
			ExposedPorts: []string{"9000/tcp"},
			Env: map[string]string{
				"MINIO_ROOT_USER":     "minioadmin",
				"MINIO_ROOT_PASSWORD": "minioadmin",
			},
			WaitingFor: wait.ForHTTP("/minio/health/live").
				WithPort("9000/tcp").
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate minio: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "9000/tcp")
	require.NoError(t, err)

	return host + ":" + port.Port()
}

func TestS3_UploadThroughPresignedURL(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	endpoint := startMinIO(t, ctx)

	s, err := NewS3(ctx, config.StorageConfig{
		Backend:    config.BackendS3,
		Endpoint:   endpoint,
		AccessKey:  "minioadmin",
		SecretKey:  "minioadmin",
		BucketName: "voices",
	}, discardLogger())
	require.NoError(t, err)

	require.NoError(t, s.EnsureBucket(ctx))
	require.NoError(t, s.EnsureBucket(ctx), "second call must be a no-op")
	require.NoError(t, s.Health(ctx))

	presigned, err := s.CreatePresignedUploadURL(ctx, "voice.m4a", "audio/mp4")
	require.NoError(t, err)

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, presigned.UploadURL, strings.NewReader("fake audio"))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "audio/mp4")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
