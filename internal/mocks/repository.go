package mocks

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/harshit2704/capture-sync/internal/services/repository"
)

var ErrUpdateFailed = errors.New("update failed")

// Repository is an in-memory repository.Repository. It records the status
// history of every artifact so tests can assert on transition paths.
type Repository struct {
	locker    sync.Mutex
	artifacts []*repository.Artifact
	history   map[string][]repository.UploadStatus

	// FailUpdates makes every mutation return ErrUpdateFailed without
	// touching the stored records.
	FailUpdates bool
}

var _ repository.Repository = (*Repository)(nil)

func NewRepository() *Repository {
	return &Repository{
		history: make(map[string][]repository.UploadStatus),
	}
}

func (r *Repository) CreateArtifact(ctx context.Context, artifact *repository.Artifact) error {
	r.locker.Lock()
	defer r.locker.Unlock()

	if r.FailUpdates {
		return ErrUpdateFailed
	}

	for _, a := range r.artifacts {
		if a.ID == artifact.ID {
			return repository.ErrAlreadyExists
		}
	}

	stored := *artifact
	stored.Payload = nil
	r.artifacts = append(r.artifacts, &stored)
	r.history[artifact.ID] = append(r.history[artifact.ID], artifact.Status)
	return nil
}

func (r *Repository) GetArtifact(ctx context.Context, id string) (*repository.Artifact, error) {
	r.locker.Lock()
	defer r.locker.Unlock()

	artifact, err := r.find(id)
	if err != nil {
		return nil, err
	}

	copied := *artifact
	return &copied, nil
}

func (r *Repository) FindArtifacts(ctx context.Context) ([]*repository.Artifact, error) {
	r.locker.Lock()
	defer r.locker.Unlock()

	found := make([]*repository.Artifact, 0, len(r.artifacts))
	for _, artifact := range r.artifacts {
		copied := *artifact
		found = append(found, &copied)
	}
	return found, nil
}

func (r *Repository) BeginArtifactAttempt(ctx context.Context, id string) error {
	r.locker.Lock()
	defer r.locker.Unlock()

	if r.FailUpdates {
		return ErrUpdateFailed
	}

	artifact, err := r.find(id)
	if err != nil {
		return err
	}

	artifact.Status = repository.UploadStatusUploading
	artifact.Progress = 0
	artifact.Attempts++
	r.history[id] = append(r.history[id], artifact.Status)
	return nil
}

func (r *Repository) UpdateArtifact(ctx context.Context, id string, input repository.UpdateArtifactInput) error {
	r.locker.Lock()
	defer r.locker.Unlock()

	if r.FailUpdates {
		return ErrUpdateFailed
	}

	artifact, err := r.find(id)
	if err != nil {
		return err
	}

	artifact.Status = input.Status
	artifact.Progress = input.Progress
	r.history[id] = append(r.history[id], artifact.Status)
	return nil
}

func (r *Repository) UpdateArtifactProgress(ctx context.Context, id string, progress float64) error {
	r.locker.Lock()
	defer r.locker.Unlock()

	if r.FailUpdates {
		return ErrUpdateFailed
	}

	artifact, err := r.find(id)
	if err != nil {
		return err
	}

	artifact.Progress = progress
	return nil
}

// History returns every status the artifact has passed through, starting
// with the status it was created with.
func (r *Repository) History(id string) []repository.UploadStatus {
	r.locker.Lock()
	defer r.locker.Unlock()

	copied := make([]repository.UploadStatus, len(r.history[id]))
	copy(copied, r.history[id])
	return copied
}

func (r *Repository) find(id string) (*repository.Artifact, error) {
	for _, artifact := range r.artifacts {
		if artifact.ID == id {
			return artifact, nil
		}
	}
	return nil, repository.ErrNotFound
}
