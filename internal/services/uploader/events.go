package uploader

import "github.com/harshit2704/capture-sync/internal/services/repository"

const watchBuffer = 16

// Event is a status or progress change of a single artifact, delivered to
// Watch subscribers in the order the changes were applied to the store.
type Event struct {
	ArtifactID string
	Status     repository.UploadStatus
	Progress   float64
}

// Watch returns a channel of status changes. Delivery is best effort: a
// subscriber that falls behind misses events and is expected to re-read
// the store.
func (u *uploader) Watch() <-chan Event {
	ch := make(chan Event, watchBuffer)

	u.subsLocker.Lock()
	u.subs = append(u.subs, ch)
	u.subsLocker.Unlock()

	return ch
}

func (u *uploader) publish(event Event) {
	u.subsLocker.Lock()
	defer u.subsLocker.Unlock()

	for _, ch := range u.subs {
		select {
		case ch <- event:
		default:
		}
	}
}
