package gateway

import (
	"context"
	"sync"
)

// RefreshLock is a two state lock, idle or refreshing. Besides the usual
// acquire and release it lets callers wait for the current holder to finish
// without taking the lock themselves.
//
// The zero value is an idle lock.
type RefreshLock struct {
	mu       sync.Mutex
	released chan struct{} // nil while idle
}

// TryAcquire takes the lock if it is idle and reports whether it did.
func (l *RefreshLock) TryAcquire() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.released != nil {
		return false
	}
	l.released = make(chan struct{})
	return true
}

// Acquire blocks until the lock is taken or ctx is done.
func (l *RefreshLock) Acquire(ctx context.Context) error {
	for {
		if l.TryAcquire() {
			return nil
		}
		if err := l.WaitForUnlock(ctx); err != nil {
			return err
		}
	}
}

// Release returns the lock to idle and wakes every waiter. Releasing an idle
// lock is a no-op.
func (l *RefreshLock) Release() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.released == nil {
		return
	}
	close(l.released)
	l.released = nil
}

// WaitForUnlock returns once the holder at the time of the call has released
// the lock. It returns immediately when the lock is idle.
func (l *RefreshLock) WaitForUnlock(ctx context.Context) error {
	l.mu.Lock()
	released := l.released
	l.mu.Unlock()

	if released == nil {
		return nil
	}
	select {
	case <-released:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (l *RefreshLock) Locked() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.released != nil
}
