package mocks

import (
	"context"
	"sync"

	"github.com/harshit2704/capture-sync/internal/services/encoder"
)

// Transport is a scripted uploader.Transport. Each Upload call plays the
// configured progress events and returns the next status code from
// StatusCodes (the last one repeats once the script is exhausted).
type Transport struct {
	locker      sync.Mutex
	uploads     int
	statusCodes []int
	err         error

	// Progress pairs of (sentBytes, totalBytes) reported before completion.
	Progress [][2]int64

	// Hold, when set, blocks every Upload call until the channel is closed.
	Hold chan struct{}
}

func NewTransport(statusCodes ...int) *Transport {
	return &Transport{statusCodes: statusCodes}
}

func NewFailingTransport(err error) *Transport {
	return &Transport{err: err}
}

func (t *Transport) Upload(ctx context.Context, body encoder.Body, progress func(sent, total int64)) (int, error) {
	t.locker.Lock()
	attempt := t.uploads
	t.uploads++
	t.locker.Unlock()

	if t.Hold != nil {
		<-t.Hold
	}

	for _, p := range t.Progress {
		progress(p[0], p[1])
	}

	if t.err != nil {
		return 0, t.err
	}

	if attempt >= len(t.statusCodes) {
		attempt = len(t.statusCodes) - 1
	}
	return t.statusCodes[attempt], nil
}

func (t *Transport) Uploads() int {
	t.locker.Lock()
	defer t.locker.Unlock()
	return t.uploads
}
