package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/unitscope/internal/analysis"
	"github.com/leapstack-labs/unitscope/internal/testutil"
)

func TestRun_InvalidatesOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "foo.spec.unit")
	require.NoError(t, os.WriteFile(path, []byte("unit foo spec\nend\n"), 0o600))

	actx := analysis.NewContext()
	_, err := actx.UnitFromFile(path, "", false)
	require.NoError(t, err)
	require.True(t, actx.Cached(path))

	var mu sync.Mutex
	var changed []string
	w := New([]string{dir}, actx, testutil.NewTestLogger(t), func(p string) {
		mu.Lock()
		changed = append(changed, p)
		mu.Unlock()
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// Let the watcher register the directory before touching the file.
	time.Sleep(200 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("unit foo spec\ndef x\nend\n"), 0o600))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(changed) > 0
	}, 10*time.Second, 20*time.Millisecond)

	mu.Lock()
	assert.Equal(t, path, changed[0])
	mu.Unlock()
	assert.False(t, actx.Cached(path))

	cancel()
	require.ErrorIs(t, <-done, context.Canceled)
}

func TestRun_IgnoresNonUnitFiles(t *testing.T) {
	dir := t.TempDir()

	actx := analysis.NewContext()
	var mu sync.Mutex
	var changed []string
	w := New([]string{dir}, actx, nil, func(p string) {
		mu.Lock()
		changed = append(changed, p)
		mu.Unlock()
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	time.Sleep(200 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o600))
	time.Sleep(300 * time.Millisecond)

	mu.Lock()
	assert.Empty(t, changed)
	mu.Unlock()

	cancel()
	<-done
}

func TestRun_MissingDir(t *testing.T) {
	w := New([]string{filepath.Join(t.TempDir(), "ghost")}, analysis.NewContext(), nil, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	// WalkDir tolerates the missing root; Run just waits for cancellation.
	require.ErrorIs(t, w.Run(ctx), context.DeadlineExceeded)
}
