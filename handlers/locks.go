package handlers

import "sync"

// turnLocks serializes turns per user. Entries are dropped once no turn for
// that user is running or waiting.
type turnLocks struct {
	mu    sync.Mutex
	users map[string]*userLock
}

type userLock struct {
	sync.Mutex
	refs int
}

func newTurnLocks() *turnLocks {
	return &turnLocks{users: make(map[string]*userLock)}
}

// lock blocks until userID has no other turn in flight and returns the unlock func.
func (t *turnLocks) lock(userID string) func() {
	t.mu.Lock()
	l, ok := t.users[userID]
	if !ok {
		l = &userLock{}
		t.users[userID] = l
	}
	l.refs++
	t.mu.Unlock()

	l.Lock()
	return func() {
		l.Unlock()
		t.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(t.users, userID)
		}
		t.mu.Unlock()
	}
}
