package gateway

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefreshLockTryAcquire(t *testing.T) {
	var l RefreshLock
	assert.False(t, l.Locked())

	require.True(t, l.TryAcquire())
	assert.True(t, l.Locked())
	assert.False(t, l.TryAcquire())

	l.Release()
	assert.False(t, l.Locked())
	assert.True(t, l.TryAcquire())
	l.Release()

	assert.NotPanics(t, l.Release)
}

func TestRefreshLockWaitForUnlockIdle(t *testing.T) {
	var l RefreshLock
	assert.NoError(t, l.WaitForUnlock(context.Background()))
}

func TestRefreshLockReleaseWakesAllWaiters(t *testing.T) {
	var l RefreshLock
	require.True(t, l.TryAcquire())

	const waiters = 10
	var wg sync.WaitGroup
	woke := make(chan struct{}, waiters)
	for i := 0; i < waiters; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := l.WaitForUnlock(context.Background()); err == nil {
				woke <- struct{}{}
			}
		}()
	}

	time.Sleep(20 * time.Millisecond)
	assert.Len(t, woke, 0)

	l.Release()
	wg.Wait()
	assert.Len(t, woke, waiters)
	assert.False(t, l.Locked())
}

func TestRefreshLockWaitForUnlockCancelled(t *testing.T) {
	var l RefreshLock
	require.True(t, l.TryAcquire())
	defer l.Release()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	assert.ErrorIs(t, l.WaitForUnlock(ctx), context.DeadlineExceeded)
	assert.True(t, l.Locked())
}

func TestRefreshLockAcquireSerializes(t *testing.T) {
	var l RefreshLock
	var mu sync.Mutex
	holders, maxHolders := 0, 0

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			require.NoError(t, l.Acquire(context.Background()))
			mu.Lock()
			holders++
			if holders > maxHolders {
				maxHolders = holders
			}
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			holders--
			mu.Unlock()
			l.Release()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxHolders)
	assert.False(t, l.Locked())
}
