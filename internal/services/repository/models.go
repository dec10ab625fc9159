package repository

import (
	"time"

	"github.com/google/uuid"
)

type UploadStatus string

const (
	UploadStatusPending   UploadStatus = "pending"
	UploadStatusUploading UploadStatus = "uploading"
	UploadStatusUploaded  UploadStatus = "uploaded"
	UploadStatusFailed    UploadStatus = "failed"
)

// Artifact is one captured photo plus its upload state. Payload holds the
// raw bytes right after capture; after a restart it is nil and the bytes
// are reloaded from StorageURI.
type Artifact struct {
	ID          string
	Name        string
	StorageURI  string
	ContentType string
	Size        int64
	Status      UploadStatus
	Progress    float64
	Attempts    int
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Payload []byte `gorm:"-"`
}

func NewArtifact(name, storageURI, contentType string, size int64) Artifact {
	now := time.Now().UTC()
	return Artifact{
		ID:          uuid.NewString(),
		Name:        name,
		StorageURI:  storageURI,
		ContentType: contentType,
		Size:        size,
		Status:      UploadStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
