package uploader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/harshit2704/capture-sync/env"
	"github.com/harshit2704/capture-sync/internal/services/cache"
	"github.com/harshit2704/capture-sync/internal/services/encoder"
	"github.com/harshit2704/capture-sync/internal/services/filestorage"
	"github.com/harshit2704/capture-sync/internal/services/repository"
)

const (
	multipartFieldName = "image"
	payloadSubtype     = "jpeg"
)

var (
	ErrNotFailed  = errors.New("artifact is not failed")
	ErrRetryLimit = errors.New("retry limit reached")
)

// Uploader owns the per-artifact upload state machine:
// pending -> uploading -> {uploaded | failed}, failed -> uploading on retry.
// Uploaded is terminal. At most one attempt is in flight per artifact id.
type Uploader interface {
	// InitiateUpload begins an upload attempt and returns immediately. The
	// call is a no-op when an attempt for the same artifact is already in
	// flight.
	InitiateUpload(ctx context.Context, artifact *repository.Artifact)

	// Retry re-initiates the upload of a failed artifact. Artifacts in any
	// other status are left untouched.
	Retry(ctx context.Context, id string) error

	// Resume re-initiates every stored artifact that never reached the
	// uploaded status. Called once on startup.
	Resume(ctx context.Context) error

	// OnProgress and OnCompletion are invoked by the transport. A single
	// attempt produces zero or more progress calls followed by exactly one
	// completion call.
	OnProgress(ctx context.Context, id string, sentBytes, totalBytes int64)
	OnCompletion(ctx context.Context, id string, statusCode int, transportErr error)

	Watch() <-chan Event
}

func New(
	repo repository.Repository,
	files filestorage.FileStorage,
	transport Transport,
	notifier Notifier,
	inflight cache.Cache,
	log *zap.SugaredLogger,
) (Uploader, error) {
	maxAttempts, err := strconv.Atoi(env.GetOptional(env.MaxAttempts, "0"))
	if err != nil {
		return nil, fmt.Errorf("%s is not integer", env.MaxAttempts)
	}

	maxPayloadSize, err := strconv.ParseInt(env.GetOptional(env.MaxPayloadSize, "0"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%s is not integer", env.MaxPayloadSize)
	}

	return &uploader{
		repo:           repo,
		files:          files,
		transport:      transport,
		notifier:       notifier,
		inflight:       inflight,
		log:            log,
		maxAttempts:    maxAttempts,
		maxPayloadSize: maxPayloadSize,
	}, nil
}

type uploader struct {
	repo           repository.Repository
	files          filestorage.FileStorage
	transport      Transport
	notifier       Notifier
	inflight       cache.Cache
	log            *zap.SugaredLogger
	maxAttempts    int
	maxPayloadSize int64

	subsLocker sync.Mutex
	subs       []chan Event
}

func (u *uploader) InitiateUpload(ctx context.Context, artifact *repository.Artifact) {
	if err := u.inflight.Acquire(artifact.ID); err != nil {
		return
	}

	payload := artifact.Payload
	if payload == nil {
		var err error
		payload, err = u.loadPayload(ctx, artifact.StorageURI)
		if err != nil {
			u.log.With("err", err, "artifact", artifact.ID).Error("failed to read payload")
			u.markFailed(ctx, artifact.ID)
			u.inflight.Release(artifact.ID)
			return
		}
	}

	if u.maxPayloadSize > 0 && int64(len(payload)) > u.maxPayloadSize {
		u.log.With("artifact", artifact.ID, "size", len(payload)).Error("payload exceeds the configured size limit")
		u.markFailed(ctx, artifact.ID)
		u.inflight.Release(artifact.ID)
		return
	}

	// a failed status write must not block the attempt itself
	if err := u.repo.BeginArtifactAttempt(ctx, artifact.ID); err != nil {
		u.log.With("err", err, "artifact", artifact.ID).Error("failed to persist upload start")
	}
	u.publish(Event{ArtifactID: artifact.ID, Status: repository.UploadStatusUploading})

	body := encoder.Encode(payload, multipartFieldName, artifact.Name, payloadSubtype)

	go u.perform(artifact.ID, body)
}

func (u *uploader) perform(id string, body encoder.Body) {
	ctx := context.Background()
	defer u.inflight.Release(id)

	statusCode, err := u.transport.Upload(ctx, body, func(sent, total int64) {
		u.OnProgress(ctx, id, sent, total)
	})

	u.OnCompletion(ctx, id, statusCode, err)
}

func (u *uploader) OnProgress(ctx context.Context, id string, sentBytes, totalBytes int64) {
	var progress float64
	if totalBytes > 0 {
		progress = float64(sentBytes) / float64(totalBytes)
	}
	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}

	if err := u.repo.UpdateArtifactProgress(ctx, id, progress); err != nil {
		u.log.With("err", err, "artifact", id).Error("failed to persist progress")
	}
	u.publish(Event{ArtifactID: id, Status: repository.UploadStatusUploading, Progress: progress})
}

func (u *uploader) OnCompletion(ctx context.Context, id string, statusCode int, transportErr error) {
	if transportErr == nil && statusCode == http.StatusOK {
		if err := u.repo.UpdateArtifact(ctx, id, repository.UpdateArtifactInput{
			Status:   repository.UploadStatusUploaded,
			Progress: 1,
		}); err != nil {
			u.log.With("err", err, "artifact", id).Error("failed to persist completion")
		}

		message := "Upload completed"
		if artifact, err := u.repo.GetArtifact(ctx, id); err == nil {
			message = fmt.Sprintf("Upload completed: %s", artifact.Name)
		}
		u.notifier.Notify(message)

		u.publish(Event{ArtifactID: id, Status: repository.UploadStatusUploaded, Progress: 1})
		return
	}

	if transportErr != nil {
		u.log.With("err", transportErr, "artifact", id).Error("upload failed")
	} else {
		u.log.With("status_code", statusCode, "artifact", id).Error("upload rejected by the server")
	}

	u.markFailed(ctx, id)
}

func (u *uploader) Retry(ctx context.Context, id string) error {
	artifact, err := u.repo.GetArtifact(ctx, id)
	if err != nil {
		return err
	}

	if artifact.Status != repository.UploadStatusFailed {
		return ErrNotFailed
	}

	if u.maxAttempts > 0 && artifact.Attempts >= u.maxAttempts {
		return ErrRetryLimit
	}

	u.InitiateUpload(ctx, artifact)
	return nil
}

func (u *uploader) Resume(ctx context.Context) error {
	artifacts, err := u.repo.FindArtifacts(ctx)
	if err != nil {
		return err
	}

	for _, artifact := range artifacts {
		if artifact.Status == repository.UploadStatusUploaded {
			continue
		}
		u.InitiateUpload(ctx, artifact)
	}

	return nil
}

func (u *uploader) loadPayload(ctx context.Context, storageURI string) ([]byte, error) {
	exists, err := u.files.Exists(ctx, storageURI)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, filestorage.ErrNotFound
	}

	reader, err := u.files.Open(ctx, storageURI)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = reader.Close()
	}()

	return io.ReadAll(reader)
}

func (u *uploader) markFailed(ctx context.Context, id string) {
	if err := u.repo.UpdateArtifact(ctx, id, repository.UpdateArtifactInput{
		Status:   repository.UploadStatusFailed,
		Progress: 0,
	}); err != nil {
		u.log.With("err", err, "artifact", id).Error("failed to persist failure")
	}
	u.publish(Event{ArtifactID: id, Status: repository.UploadStatusFailed})
}
