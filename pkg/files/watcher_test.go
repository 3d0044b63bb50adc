package files

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/cmsdesk/cmsdesk-cli/pkg/models"
)

func TestWatcherReportsPageWrites(t *testing.T) {
	defer goleak.VerifyNone(t)
	setupProject(t)

	w, err := NewWatcher(20 * time.Millisecond)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))

	require.NoError(t, WritePage(&models.Page{Title: "Watched"}))

	select {
	case ev := <-w.Events():
		assert.Equal(t, models.KindPage, ev.Kind)
		assert.Equal(t, "watched", ev.Name)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for change event")
	}

	w.Stop()

	// drains any late events and returns once the channel is closed
	for range w.Events() {
	}
}

func TestWatcherStopWithoutStart(t *testing.T) {
	defer goleak.VerifyNone(t)
	setupProject(t)

	w, err := NewWatcher(0)
	require.NoError(t, err)
	assert.NotPanics(t, w.Stop)
}

func TestWatcherWaitsForQuietPeriod(t *testing.T) {
	defer goleak.VerifyNone(t)
	setupProject(t)

	w, err := NewWatcher(100 * time.Millisecond)
	require.NoError(t, err)
	defer w.Stop()

	dir, err := DirFor(models.KindPage)
	require.NoError(t, err)
	path := filepath.Join(dir, "home.yaml")

	t0 := time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC)
	w.record(fsnotify.Event{Name: path, Op: fsnotify.Create}, t0)
	w.record(fsnotify.Event{Name: path, Op: fsnotify.Write}, t0.Add(80*time.Millisecond))

	ctx := context.Background()
	require.True(t, w.flush(ctx, t0.Add(120*time.Millisecond)))
	assert.Empty(t, w.events, "a write inside the quiet period restarts it")

	require.True(t, w.flush(ctx, t0.Add(180*time.Millisecond)))
	require.Len(t, w.events, 1)
	ev := <-w.events
	assert.Equal(t, "home", ev.Name)
	assert.True(t, ev.Op.Has(fsnotify.Create))
	assert.True(t, ev.Op.Has(fsnotify.Write))

	require.True(t, w.flush(ctx, t0.Add(time.Second)))
	assert.Empty(t, w.events)
}
