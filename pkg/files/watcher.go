package files

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/cmsdesk/cmsdesk-cli/internal/logging"
	"github.com/cmsdesk/cmsdesk-cli/pkg/models"
)

// ChangeEvent reports that a stored resource changed on disk
type ChangeEvent struct {
	Kind models.ResourceKind
	Name string
	Op   fsnotify.Op
}

// Watcher watches the content directories and emits debounced change
// events: a file is reported once it has been quiet for the debounce
// period, with the operations seen meanwhile merged.
type Watcher struct {
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	dirs     map[string]models.ResourceKind
	pending  map[string]pendingChange
	debounce time.Duration
	events   chan ChangeEvent
	stopCh   chan struct{}
	doneCh   chan struct{}
	running  bool
}

// NewWatcher creates a watcher over the pages, templates and assets dirs
// of the project in the current directory.
func NewWatcher(debounce time.Duration) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = 250 * time.Millisecond
	}

	dirs := make(map[string]models.ResourceKind)
	for _, kind := range []models.ResourceKind{models.KindPage, models.KindTemplate, models.KindAsset} {
		dir, _ := DirFor(kind)
		dirs[filepath.Clean(dir)] = kind
	}

	return &Watcher{
		watcher:  fw,
		dirs:     dirs,
		pending:  make(map[string]pendingChange),
		debounce: debounce,
		events:   make(chan ChangeEvent, 64),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

type pendingChange struct {
	event ChangeEvent
	due   time.Time
}

// Events delivers debounced changes. It is closed when the watcher stops.
func (w *Watcher) Events() <-chan ChangeEvent {
	return w.events
}

// Start begins watching. It does not block.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	log := logging.Get(logging.CategoryWatcher)
	for dir := range w.dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Warn("failed to create content dir", zap.String("dir", dir), zap.Error(err))
			continue
		}
		if err := w.watcher.Add(dir); err != nil {
			log.Warn("failed to watch content dir", zap.String("dir", dir), zap.Error(err))
			continue
		}
		log.Debug("watching", zap.String("dir", dir))
	}

	go w.run(ctx)
	return nil
}

// Stop ends the watch loop and waits for it to exit
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		w.watcher.Close()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh

	if err := w.watcher.Close(); err != nil {
		logging.Get(logging.CategoryWatcher).Error("error closing watcher", zap.Error(err))
	}
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)
	defer close(w.events)

	tick := w.debounce / 4
	if tick < 10*time.Millisecond {
		tick = 10 * time.Millisecond
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	log := logging.Get(logging.CategoryWatcher)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.record(event, time.Now())
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Error("watch error", zap.Error(err))
		case now := <-ticker.C:
			if !w.flush(ctx, now) {
				return
			}
		}
	}
}

// record merges event into the file's pending change and restarts its
// quiet period
func (w *Watcher) record(event fsnotify.Event, at time.Time) {
	if !strings.HasSuffix(event.Name, fileExt) {
		return
	}
	kind, ok := w.dirs[filepath.Clean(filepath.Dir(event.Name))]
	if !ok {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	prev := w.pending[event.Name]
	w.pending[event.Name] = pendingChange{
		event: ChangeEvent{
			Kind: kind,
			Name: strings.TrimSuffix(filepath.Base(event.Name), fileExt),
			Op:   prev.event.Op | event.Op,
		},
		due: at.Add(w.debounce),
	}
}

// flush sends the changes whose quiet period ended by now; it returns
// false when the loop must exit
func (w *Watcher) flush(ctx context.Context, now time.Time) bool {
	w.mu.Lock()
	var batch []ChangeEvent
	for path, p := range w.pending {
		if p.due.After(now) {
			continue
		}
		batch = append(batch, p.event)
		delete(w.pending, path)
	}
	w.mu.Unlock()

	for _, ev := range batch {
		select {
		case w.events <- ev:
		case <-ctx.Done():
			return false
		case <-w.stopCh:
			return false
		}
	}
	return true
}
