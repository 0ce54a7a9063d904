package skeleton

import (
	"context"
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/appshell/internal/logfields"
	"git.home.luguber.info/inful/appshell/internal/retry"
)

// watchDebounce coalesces the burst of events editors emit for a single save.
const watchDebounce = 300 * time.Millisecond

// Watch regenerates skeletons for layout documents created or written in InputDir
// until ctx is canceled.
func (g *Generator) Watch(ctx context.Context) error {
	if _, err := g.layoutFiles(); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(g.InputDir); err != nil {
		return fmt.Errorf("watch %s: %w", g.InputDir, err)
	}
	g.logger().Info("Watching for layout changes", logfields.Path(g.InputDir))

	var mu sync.Mutex
	pending := map[string]struct{}{}
	rebuildReq, trigger := newDebouncer(watchDebounce)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isRegenerateEvent(ev) {
				continue
			}
			mu.Lock()
			pending[ev.Name] = struct{}{}
			mu.Unlock()
			trigger()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			g.logger().Warn("watcher error", logfields.Error(err))
		case <-rebuildReq:
			mu.Lock()
			batch := slices.Sorted(maps.Keys(pending))
			clear(pending)
			mu.Unlock()
			for _, path := range batch {
				g.regenerate(ctx, path)
			}
		}
	}
}

// regenerate retries generation while the document fails to load, then reports once.
func (g *Generator) regenerate(ctx context.Context, path string) {
	var out string
	err := retry.Do(ctx, g.Retry, func() error {
		var genErr error
		out, genErr = g.generate(path)
		return genErr
	})
	if ctx.Err() != nil {
		return
	}
	_, _ = g.report(path, out, err)
}

// isRegenerateEvent reports whether ev touched a visible layout document.
func isRegenerateEvent(ev fsnotify.Event) bool {
	base := filepath.Base(ev.Name)
	if strings.HasPrefix(base, ".") || !isLayoutFile(base) {
		return false
	}
	return ev.Has(fsnotify.Create) || ev.Has(fsnotify.Write)
}

// newDebouncer returns a request channel and a trigger that fires it once per quiet period.
func newDebouncer(wait time.Duration) (<-chan struct{}, func()) {
	var mu sync.Mutex
	var timer *time.Timer
	req := make(chan struct{}, 1)

	trigger := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(wait, func() {
			select {
			case req <- struct{}{}:
			default:
			}
		})
	}
	return req, trigger
}
