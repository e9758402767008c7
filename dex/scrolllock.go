package dex

import "sync"

// ScrollLock suspends scroll-driven loading while an overlay is open.
// Each acquisition is released exactly once, however often release is called.
type ScrollLock struct {
	mu      sync.Mutex
	holders int
}

// Acquire takes the lock and returns its release function.
func (l *ScrollLock) Acquire() (release func()) {
	l.mu.Lock()
	l.holders++
	l.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			l.holders--
			l.mu.Unlock()
		})
	}
}

// Locked reports whether any acquisition is outstanding.
func (l *ScrollLock) Locked() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.holders > 0
}
