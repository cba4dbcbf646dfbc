// Package lock provides per-conversation mutual exclusion. Every operation
// that reads and rewrites a conversation's ledger runs under that
// conversation's lock, so two commands for the same chat can never interleave
// even if the transport delivers them concurrently.
package lock

import "sync"

// ChatLock hands out one mutex per conversation key.
type ChatLock struct {
	locks sync.Map // map[string]*sync.Mutex
}

// NewChatLock creates a new ChatLock instance.
func NewChatLock() *ChatLock {
	return &ChatLock{}
}

func (cl *ChatLock) getLock(chatID string) *sync.Mutex {
	if v, ok := cl.locks.Load(chatID); ok {
		return v.(*sync.Mutex)
	}
	actual, _ := cl.locks.LoadOrStore(chatID, &sync.Mutex{})
	return actual.(*sync.Mutex)
}

// Lock acquires the lock for a conversation.
func (cl *ChatLock) Lock(chatID string) {
	cl.getLock(chatID).Lock()
}

// Unlock releases the lock for a conversation.
func (cl *ChatLock) Unlock(chatID string) {
	if v, ok := cl.locks.Load(chatID); ok {
		v.(*sync.Mutex).Unlock()
	}
}

// TryLock attempts to acquire the lock without blocking.
func (cl *ChatLock) TryLock(chatID string) bool {
	return cl.getLock(chatID).TryLock()
}

// WithLock executes fn while holding the conversation's lock.
func (cl *ChatLock) WithLock(chatID string, fn func() error) error {
	cl.Lock(chatID)
	defer cl.Unlock(chatID)
	return fn()
}
