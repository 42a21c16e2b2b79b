package whitelist

import "sync"

// keyedMutex serializes mutations per resolved name, so a double-click on
// the same application (or duplicate submissions for one player) cannot
// race the uniqueness check, while approvals for different players stay
// independent. Keys are never evicted; the key space is player names at
// a human pace.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for a key and returns its unlock function
func (k *keyedMutex) Lock(key string) func() {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m.Unlock
}
