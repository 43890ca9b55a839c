package rulebook

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFallback(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rulebook.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func fetchReturning(text string) FetchFunc {
	return func(ctx context.Context) (string, error) { return text, nil }
}

func fetchFailing(msg string) FetchFunc {
	return func(ctx context.Context) (string, error) { return "", fmt.Errorf("%s", msg) }
}

func TestCache_GetLoadsRemoteOnce(t *testing.T) {
	calls := 0
	fetch := func(ctx context.Context) (string, error) {
		calls++
		return "remote rulebook", nil
	}
	cache := NewCache(fetch, writeFallback(t, "local rulebook"))

	first, err := cache.Get(context.Background())
	require.NoError(t, err)
	second, err := cache.Get(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "remote rulebook", first.Text)
	assert.Equal(t, first.Text, second.Text)
	assert.Equal(t, SourceRemote, first.Source)
	assert.Equal(t, 1, calls, "second Get must not re-fetch")
}

func TestCache_GetFallsBackToLocalCopy(t *testing.T) {
	cache := NewCache(fetchFailing("connection refused"), writeFallback(t, "local rulebook\n"))

	doc, err := cache.Get(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "local rulebook", doc.Text)
	assert.Equal(t, SourceLocal, doc.Source)
}

func TestCache_GetFailsWhenRemoteAndLocalUnavailable(t *testing.T) {
	cache := NewCache(fetchFailing("connection refused"), filepath.Join(t.TempDir(), "missing.txt"))

	_, err := cache.Get(context.Background())

	require.Error(t, err)
}

func TestCache_RefreshReplacesDocument(t *testing.T) {
	cache := NewCache(fetchReturning("v1"), writeFallback(t, "local"))
	_, err := cache.Get(context.Background())
	require.NoError(t, err)

	cache.fetch = fetchReturning("v2")
	require.NoError(t, cache.Refresh(context.Background()))

	doc, err := cache.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "v2", doc.Text)
	assert.Equal(t, SourceRemote, doc.Source)
}

func TestCache_RefreshFailureKeepsPriorDocument(t *testing.T) {
	cache := NewCache(fetchReturning("v1"), writeFallback(t, "local"))
	_, err := cache.Get(context.Background())
	require.NoError(t, err)

	cache.fetch = fetchFailing("remote gone")

	// Two consecutive failures must both leave the last-known-good value.
	require.Error(t, cache.Refresh(context.Background()))
	require.Error(t, cache.Refresh(context.Background()))

	doc, err := cache.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "v1", doc.Text)
}

func TestCache_CurrentReportsLoadState(t *testing.T) {
	cache := NewCache(fetchReturning("doc"), writeFallback(t, "local"))

	_, ok := cache.Current()
	assert.False(t, ok)

	_, err := cache.Get(context.Background())
	require.NoError(t, err)

	doc, ok := cache.Current()
	assert.True(t, ok)
	assert.Equal(t, "doc", doc.Text)
}

func TestCache_ConcurrentFirstLoadNeverYieldsPartialValue(t *testing.T) {
	cache := NewCache(fetchReturning("whole document value"), writeFallback(t, "local"))

	var wg sync.WaitGroup
	docs := make([]Document, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			doc, err := cache.Get(context.Background())
			assert.NoError(t, err)
			docs[i] = doc
		}(i)
	}
	wg.Wait()

	for _, doc := range docs {
		assert.Equal(t, "whole document value", doc.Text)
	}
}
