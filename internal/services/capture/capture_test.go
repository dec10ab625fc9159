package capture_test

import (
	"context"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/harshit2704/capture-sync/env"
	"github.com/harshit2704/capture-sync/internal/mocks"
	"github.com/harshit2704/capture-sync/internal/services/capture"
	"github.com/harshit2704/capture-sync/internal/services/repository"
)

func TestCapture(t *testing.T) {
	ctx := context.Background()

	repo := mocks.NewRepository()
	files := mocks.NewFileStorage()
	uploads := &mocks.Uploader{}

	producer, err := capture.New(repo, files, uploads, zap.NewNop().Sugar())
	require.NoError(t, err)

	payload := []byte("jpeg bytes")
	artifact, err := producer.Capture(ctx, payload, "holiday.jpg")
	require.NoError(t, err)
	require.Equal(t, "holiday.jpg", artifact.Name)
	require.Equal(t, repository.UploadStatusPending, artifact.Status)
	require.Equal(t, int64(len(payload)), artifact.Size)

	// payload was durably stored under the artifact's storage uri
	reader, err := files.Open(ctx, artifact.StorageURI)
	require.NoError(t, err)
	stored, err := io.ReadAll(reader)
	require.NoError(t, err)
	require.Equal(t, payload, stored)

	// record persisted and upload initiated
	found, err := repo.GetArtifact(ctx, artifact.ID)
	require.NoError(t, err)
	require.Equal(t, repository.UploadStatusPending, found.Status)
	require.Equal(t, []string{artifact.ID}, uploads.Initiated())
}

func TestCaptureDefaultName(t *testing.T) {
	ctx := context.Background()

	producer, err := capture.New(mocks.NewRepository(), mocks.NewFileStorage(), &mocks.Uploader{}, zap.NewNop().Sugar())
	require.NoError(t, err)

	artifact, err := producer.Capture(ctx, []byte("jpeg bytes"), "")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(artifact.Name, "Image_"))
	require.True(t, strings.HasSuffix(artifact.Name, ".jpg"))
}

func TestCapturePayloadTooLarge(t *testing.T) {
	ctx := context.Background()

	_ = os.Setenv(env.MaxPayloadSize, "4")
	defer func() {
		_ = os.Unsetenv(env.MaxPayloadSize)
	}()

	uploads := &mocks.Uploader{}
	producer, err := capture.New(mocks.NewRepository(), mocks.NewFileStorage(), uploads, zap.NewNop().Sugar())
	require.NoError(t, err)

	_, err = producer.Capture(ctx, []byte("way too many jpeg bytes"), "big.jpg")
	require.ErrorIs(t, err, capture.ErrPayloadTooLarge)
	require.Empty(t, uploads.Initiated())
}

func TestCaptureCreateFailure(t *testing.T) {
	ctx := context.Background()

	repo := mocks.NewRepository()
	repo.FailUpdates = true

	uploads := &mocks.Uploader{}
	producer, err := capture.New(repo, mocks.NewFileStorage(), uploads, zap.NewNop().Sugar())
	require.NoError(t, err)

	_, err = producer.Capture(ctx, []byte("jpeg bytes"), "lost.jpg")
	require.ErrorIs(t, err, mocks.ErrUpdateFailed)
	require.Empty(t, uploads.Initiated())
}
