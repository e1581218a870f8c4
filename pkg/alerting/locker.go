package alerting

import "sync"

// SourceLocker serializes the open-alert check and insert per hub: hub_id -> mutex.
// Entries are reference counted and dropped once no caller holds or waits on them.
type SourceLocker struct {
	mu    sync.Mutex
	locks map[string]*sourceLock
}

type sourceLock struct {
	mu   sync.Mutex
	refs int
}

func NewSourceLocker() *SourceLocker {
	return &SourceLocker{locks: make(map[string]*sourceLock)}
}

// Lock blocks until the hub's lock is held and returns the function releasing it.
func (l *SourceLocker) Lock(hubID string) (unlock func()) {
	l.mu.Lock()
	entry, exists := l.locks[hubID]
	if !exists {
		entry = &sourceLock{}
		l.locks[hubID] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()

	return func() {
		entry.mu.Unlock()

		l.mu.Lock()
		defer l.mu.Unlock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.locks, hubID)
		}
	}
}

func (l *SourceLocker) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
