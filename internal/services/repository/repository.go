package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const (
	ConstraintErrorCode = "23505"
)

var (
	ErrAlreadyExists = errors.New("already exists")
	ErrNotFound      = errors.New("not found")
)

type UpdateArtifactInput struct {
	Status   UploadStatus
	Progress float64
}

type Repository interface {
	CreateArtifact(ctx context.Context, artifact *Artifact) error
	GetArtifact(ctx context.Context, id string) (*Artifact, error)
	FindArtifacts(ctx context.Context) ([]*Artifact, error)

	// BeginArtifactAttempt marks a new upload attempt: status becomes
	// uploading, progress resets to zero and the attempt counter grows.
	BeginArtifactAttempt(ctx context.Context, id string) error
	UpdateArtifact(ctx context.Context, id string, input UpdateArtifactInput) error
	UpdateArtifactProgress(ctx context.Context, id string, progress float64) error
}

type storage struct {
	db *gorm.DB
}

func New(db *gorm.DB) Repository {
	return &storage{
		db: db,
	}
}

func (s storage) CreateArtifact(ctx context.Context, artifact *Artifact) error {
	tx := s.db.WithContext(ctx).Create(artifact)
	if tx.Error != nil {
		if e, ok := tx.Error.(*pgconn.PgError); ok && e.Code == ConstraintErrorCode {
			return ErrAlreadyExists
		}
		return tx.Error
	}
	return nil
}

func (s storage) GetArtifact(ctx context.Context, id string) (*Artifact, error) {
	var artifact Artifact
	tx := s.db.WithContext(ctx).Table("artifacts").Where("id = ?", id).Find(&artifact)
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	return &artifact, nil
}

func (s storage) FindArtifacts(ctx context.Context) ([]*Artifact, error) {
	var artifacts []*Artifact
	tx := s.db.WithContext(ctx).Table("artifacts").
		Order("created_at").Find(&artifacts)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return artifacts, nil
}

func (s storage) BeginArtifactAttempt(ctx context.Context, id string) error {
	tx := s.db.WithContext(ctx).Table("artifacts").Where("id = ?", id).
		Updates(map[string]any{
			"status":     UploadStatusUploading,
			"progress":   0.0,
			"attempts":   gorm.Expr("attempts + 1"),
			"updated_at": time.Now(),
		})

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func (s storage) UpdateArtifact(ctx context.Context, id string, input UpdateArtifactInput) error {
	tx := s.db.WithContext(ctx).Table("artifacts").Where("id = ?", id).
		Updates(map[string]any{
			"status":     input.Status,
			"progress":   input.Progress,
			"updated_at": time.Now(),
		})

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func (s storage) UpdateArtifactProgress(ctx context.Context, id string, progress float64) error {
	tx := s.db.WithContext(ctx).Table("artifacts").Where("id = ?", id).
		Updates(map[string]any{
			"progress":   progress,
			"updated_at": time.Now(),
		})

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
