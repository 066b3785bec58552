package quickaccess

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestCache(adapter Adapter) *handleCache {
	return newHandleCache(adapter, newTestGovernor(4), discardLogger())
}

func TestHandleCacheReusesHandle(t *testing.T) {
	var creations atomic.Int32
	adapter := &stubAdapter{
		newHandle: func(ctx context.Context, kind OpKind, cat Category) (*ExecutionHandle, error) {
			creations.Add(1)
			return &ExecutionHandle{Kind: kind, Category: cat, ScriptPath: "stub", CreatedAt: time.Now()}, nil
		},
	}
	c := newTestCache(adapter)

	h1, err := c.getOrCreate(context.Background(), OpQuery, RecentFiles)
	require.NoError(t, err)
	h2, err := c.getOrCreate(context.Background(), OpQuery, RecentFiles)
	require.NoError(t, err)

	require.Same(t, h1, h2)
	require.Equal(t, int32(1), creations.Load())
}

func TestHandleCacheSlotsAreIndependent(t *testing.T) {
	var creations atomic.Int32
	adapter := &stubAdapter{
		newHandle: func(ctx context.Context, kind OpKind, cat Category) (*ExecutionHandle, error) {
			creations.Add(1)
			return &ExecutionHandle{Kind: kind, Category: cat}, nil
		},
	}
	c := newTestCache(adapter)

	hr, err := c.getOrCreate(context.Background(), OpQuery, RecentFiles)
	require.NoError(t, err)
	hf, err := c.getOrCreate(context.Background(), OpQuery, FrequentFolders)
	require.NoError(t, err)
	ha, err := c.getOrCreate(context.Background(), OpAdd, FrequentFolders)
	require.NoError(t, err)

	require.Equal(t, int32(3), creations.Load())
	require.NotSame(t, hr, hf)
	require.NotSame(t, hf, ha)
}

func TestHandleCacheSingleFlightUnderContention(t *testing.T) {
	var creations atomic.Int32
	adapter := &stubAdapter{
		newHandle: func(ctx context.Context, kind OpKind, cat Category) (*ExecutionHandle, error) {
			creations.Add(1)
			// Slow enough that every waiter piles onto this initialization.
			time.Sleep(50 * time.Millisecond)
			return &ExecutionHandle{Kind: kind, Category: cat}, nil
		},
	}
	c := newTestCache(adapter)

	const callers = 16
	handles := make([]*ExecutionHandle, callers)
	errs := make([]error, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			handles[i], errs[i] = c.getOrCreate(context.Background(), OpQuery, RecentFiles)
		}(i)
	}
	wg.Wait()

	require.Equal(t, int32(1), creations.Load())
	for i := range handles {
		require.NoError(t, errs[i])
		require.Same(t, handles[0], handles[i])
	}
}

func TestHandleCacheFailedInitIsNotCached(t *testing.T) {
	var creations atomic.Int32
	adapter := &stubAdapter{
		newHandle: func(ctx context.Context, kind OpKind, cat Category) (*ExecutionHandle, error) {
			if creations.Add(1) == 1 {
				return nil, errors.New("interpreter missing")
			}
			return &ExecutionHandle{Kind: kind, Category: cat}, nil
		},
	}
	c := newTestCache(adapter)

	_, err := c.getOrCreate(context.Background(), OpQuery, RecentFiles)
	require.ErrorIs(t, err, ErrHandleCreate)

	h, err := c.getOrCreate(context.Background(), OpQuery, RecentFiles)
	require.NoError(t, err)
	require.NotNil(t, h)
	require.Equal(t, int32(2), creations.Load())
}

func TestHandleCacheInvalidateForcesRecreation(t *testing.T) {
	var creations atomic.Int32
	adapter := &stubAdapter{
		newHandle: func(ctx context.Context, kind OpKind, cat Category) (*ExecutionHandle, error) {
			creations.Add(1)
			return &ExecutionHandle{Kind: kind, Category: cat}, nil
		},
	}
	c := newTestCache(adapter)

	h1, err := c.getOrCreate(context.Background(), OpQuery, RecentFiles)
	require.NoError(t, err)

	c.invalidate(OpQuery, RecentFiles)

	h2, err := c.getOrCreate(context.Background(), OpQuery, RecentFiles)
	require.NoError(t, err)
	require.NotSame(t, h1, h2)
	require.Equal(t, int32(2), creations.Load())
}

func TestHandleCacheInvalidateAllDropsEverySlot(t *testing.T) {
	var creations atomic.Int32
	adapter := &stubAdapter{
		newHandle: func(ctx context.Context, kind OpKind, cat Category) (*ExecutionHandle, error) {
			creations.Add(1)
			return &ExecutionHandle{Kind: kind, Category: cat}, nil
		},
	}
	c := newTestCache(adapter)

	_, err := c.getOrCreate(context.Background(), OpQuery, RecentFiles)
	require.NoError(t, err)
	_, err = c.getOrCreate(context.Background(), OpRemove, FrequentFolders)
	require.NoError(t, err)

	c.invalidateAll()

	_, err = c.getOrCreate(context.Background(), OpQuery, RecentFiles)
	require.NoError(t, err)
	_, err = c.getOrCreate(context.Background(), OpRemove, FrequentFolders)
	require.NoError(t, err)
	require.Equal(t, int32(4), creations.Load())
}

func TestHandleCacheCreationTimeoutIsNotWrapped(t *testing.T) {
	adapter := &stubAdapter{
		newHandle: func(ctx context.Context, kind OpKind, cat Category) (*ExecutionHandle, error) {
			time.Sleep(1 * time.Second)
			return &ExecutionHandle{}, nil
		},
	}
	c := newTestCache(adapter)

	_, err := c.getOrCreate(context.Background(), OpQuery, RecentFiles)
	require.ErrorIs(t, err, ErrTimeout)
	require.NotErrorIs(t, err, ErrHandleCreate)
}
