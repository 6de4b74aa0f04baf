package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_GetOrLoad_UsesSingleFlight(t *testing.T) {
	t.Parallel()

	store := NewStore[[]int](time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) ([]int, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return []int{1, 2, 3}, nil
	}

	const workers = 32
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)
	errCh := make(chan error, workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err := store.GetOrLoad(context.Background(), "ledger:m1:1:3", loader)
			if err != nil {
				errCh <- err
				return
			}
			if len(v) != 3 {
				errCh <- errUnexpectedValue
			}
		}()
	}

	close(start)
	wg.Wait()
	close(errCh)
	for err := range errCh {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_ExpiresEntries(t *testing.T) {
	t.Parallel()

	store := NewStore[string](time.Minute)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	store.Set(context.Background(), "k", "v")
	if got, ok := store.Get(context.Background(), "k"); !ok || got != "v" {
		t.Fatalf("expected cached value, got %q %t", got, ok)
	}

	now = now.Add(2 * time.Minute)
	if _, ok := store.Get(context.Background(), "k"); ok {
		t.Fatalf("expected entry to expire")
	}
	if store.Len() != 0 {
		t.Fatalf("expected expired entry to be evicted, len=%d", store.Len())
	}
}

func TestStore_LoaderErrorIsNotCached(t *testing.T) {
	t.Parallel()

	store := NewStore[int](0)
	boom := errors.New("boom")

	if _, err := store.GetOrLoad(context.Background(), "k", func(context.Context) (int, error) { return 0, boom }); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	got, err := store.GetOrLoad(context.Background(), "k", func(context.Context) (int, error) { return 7, nil })
	if err != nil || got != 7 {
		t.Fatalf("expected reload, got %d %v", got, err)
	}
}

func TestStore_DeletePrefix(t *testing.T) {
	t.Parallel()

	store := NewStore[int](0)
	ctx := context.Background()
	store.Set(ctx, "ledger:m1:1:1", 1)
	store.Set(ctx, "ledger:m1:1:2", 2)
	store.Set(ctx, "ledger:m2:1:1", 3)

	if removed := store.DeletePrefix(ctx, "ledger:m1:"); removed != 2 {
		t.Fatalf("expected 2 removed, got %d", removed)
	}
	if _, ok := store.Get(ctx, "ledger:m2:1:1"); !ok {
		t.Fatalf("expected other match to stay cached")
	}
}

var errUnexpectedValue = errors.New("unexpected loaded value")
