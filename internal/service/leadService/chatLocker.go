package leadService

import "sync"

// chatLocker serialises work on one chat's session. telebot runs every
// update in its own goroutine, so two taps of the same chat may race.
type chatLocker struct {
	mu    sync.Mutex
	locks map[int64]*chatLock
}

type chatLock struct {
	mu      sync.Mutex
	waiters int
}

func newChatLocker() *chatLocker {
	return &chatLocker{locks: make(map[int64]*chatLock)}
}

// Lock blocks until chatID is free and returns the unlock func.
func (l *chatLocker) Lock(chatID int64) (unlock func()) {
	l.mu.Lock()
	lock, ok := l.locks[chatID]
	if !ok {
		lock = &chatLock{}
		l.locks[chatID] = lock
	}
	lock.waiters++
	l.mu.Unlock()

	lock.mu.Lock()

	return func() {
		lock.mu.Unlock()

		l.mu.Lock()
		lock.waiters--
		if lock.waiters == 0 {
			delete(l.locks, chatID)
		}
		l.mu.Unlock()
	}
}
