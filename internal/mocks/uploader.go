package mocks

import (
	"context"
	"sync"

	"github.com/harshit2704/capture-sync/internal/services/repository"
	"github.com/harshit2704/capture-sync/internal/services/uploader"
)

// Uploader records initiated uploads without touching the network.
type Uploader struct {
	// RetryErr is returned from every Retry call when set.
	RetryErr error

	locker    sync.Mutex
	initiated []string
	retried   []string
}

var _ uploader.Uploader = (*Uploader)(nil)

func (u *Uploader) InitiateUpload(ctx context.Context, artifact *repository.Artifact) {
	u.locker.Lock()
	defer u.locker.Unlock()
	u.initiated = append(u.initiated, artifact.ID)
}

func (u *Uploader) Retry(ctx context.Context, id string) error {
	u.locker.Lock()
	defer u.locker.Unlock()
	u.retried = append(u.retried, id)
	return u.RetryErr
}

func (u *Uploader) Resume(ctx context.Context) error {
	return nil
}

func (u *Uploader) OnProgress(ctx context.Context, id string, sentBytes, totalBytes int64) {}

func (u *Uploader) OnCompletion(ctx context.Context, id string, statusCode int, transportErr error) {
}

func (u *Uploader) Watch() <-chan uploader.Event {
	return nil
}

func (u *Uploader) Initiated() []string {
	u.locker.Lock()
	defer u.locker.Unlock()

	copied := make([]string, len(u.initiated))
	copy(copied, u.initiated)
	return copied
}

func (u *Uploader) Retried() []string {
	u.locker.Lock()
	defer u.locker.Unlock()

	copied := make([]string, len(u.retried))
	copy(copied, u.retried)
	return copied
}
