package mocks

import "sync"

// Notifier records every delivered message.
type Notifier struct {
	locker   sync.Mutex
	messages []string
}

func (n *Notifier) Notify(message string) {
	n.locker.Lock()
	defer n.locker.Unlock()
	n.messages = append(n.messages, message)
}

func (n *Notifier) Messages() []string {
	n.locker.Lock()
	defer n.locker.Unlock()

	copied := make([]string, len(n.messages))
	copy(copied, n.messages)
	return copied
}
