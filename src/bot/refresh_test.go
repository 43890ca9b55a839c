package bot

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beer-league/faqbot/src/rulebook"
)

func TestRefreshLoop_SurvivesRepeatedFailures(t *testing.T) {
	var calls atomic.Int64
	fetch := func(ctx context.Context) (string, error) {
		if calls.Add(1) == 1 {
			return "good document", nil
		}
		return "", fmt.Errorf("remote gone")
	}

	fallback := filepath.Join(t.TempDir(), "rulebook.txt")
	require.NoError(t, os.WriteFile(fallback, []byte("local"), 0o644))
	cache := rulebook.NewCache(fetch, fallback)

	_, err := cache.Get(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	b := &Bot{cache: cache, refreshEvery: 5 * time.Millisecond, ctx: ctx, cancel: cancel}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		b.refreshLoop()
	}()

	// Let several refresh cycles fail, then shut the loop down.
	for calls.Load() < 3 {
		time.Sleep(5 * time.Millisecond)
	}
	cancel()
	wg.Wait()

	doc, err := cache.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "good document", doc.Text, "failed refreshes must keep last-known-good")
	assert.GreaterOrEqual(t, calls.Load(), int64(3), "loop must continue after failures")
}

func TestRefreshLoop_StopsOnCancel(t *testing.T) {
	fetch := func(ctx context.Context) (string, error) { return "doc", nil }
	cache := rulebook.NewCache(fetch, "")

	ctx, cancel := context.WithCancel(context.Background())
	b := &Bot{cache: cache, refreshEvery: time.Hour, ctx: ctx, cancel: cancel}

	done := make(chan struct{})
	go func() {
		b.refreshLoop()
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("refresh loop did not stop on cancel")
	}
}
