package capture

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/harshit2704/capture-sync/env"
	"github.com/harshit2704/capture-sync/internal/services/filestorage"
	"github.com/harshit2704/capture-sync/internal/services/repository"
	"github.com/harshit2704/capture-sync/internal/services/uploader"
)

const (
	contentTypeJPEG = "image/jpeg"
)

var (
	ErrPayloadTooLarge = errors.New("payload is too large")
)

// Producer turns freshly captured JPEG bytes into a pending artifact: the
// payload goes to local file storage, the record to the repository, and an
// upload attempt is initiated right away.
type Producer interface {
	Capture(ctx context.Context, payload []byte, name string) (*repository.Artifact, error)
}

func New(
	repo repository.Repository,
	files filestorage.FileStorage,
	uploads uploader.Uploader,
	log *zap.SugaredLogger,
) (Producer, error) {
	maxPayloadSize, err := strconv.ParseInt(env.GetOptional(env.MaxPayloadSize, "0"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%s is not integer", env.MaxPayloadSize)
	}

	return &producer{
		repo:           repo,
		files:          files,
		uploads:        uploads,
		log:            log,
		maxPayloadSize: maxPayloadSize,
	}, nil
}

type producer struct {
	repo           repository.Repository
	files          filestorage.FileStorage
	uploads        uploader.Uploader
	log            *zap.SugaredLogger
	maxPayloadSize int64
}

func (p *producer) Capture(ctx context.Context, payload []byte, name string) (*repository.Artifact, error) {
	if p.maxPayloadSize > 0 && int64(len(payload)) > p.maxPayloadSize {
		return nil, ErrPayloadTooLarge
	}

	if name == "" {
		name = fmt.Sprintf("Image_%d.jpg", time.Now().Unix())
	}

	storageURI := fmt.Sprintf("Image_%s.jpg", uuid.NewString())

	writer, err := p.files.Create(ctx, storageURI)
	if err != nil {
		return nil, err
	}

	_, werr := writer.Write(payload)
	if err = multierror.Append(werr, writer.Close()).ErrorOrNil(); err != nil {
		return nil, err
	}

	artifact := repository.NewArtifact(name, storageURI, contentTypeJPEG, int64(len(payload)))
	artifact.Payload = payload

	// a create failure means the artifact was never durably recorded; the
	// caller may submit the capture again
	if err = p.repo.CreateArtifact(ctx, &artifact); err != nil {
		return nil, err
	}

	p.uploads.InitiateUpload(ctx, &artifact)

	return &artifact, nil
}
