package mdpress

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// defaultDebounce coalesces the bursts of write events editors produce for
// a single save.
const defaultDebounce = 200 * time.Millisecond

// Watcher re-runs a conversion whenever watched source files change.
// The zero value is usable.
type Watcher struct {
	// Debounce is the quiet period after the last file event before the
	// conversion runs. Zero means the default of 200ms.
	Debounce time.Duration

	// OnError receives conversion failures during watching. When nil,
	// failures are ignored and watching continues; a broken intermediate
	// save should not end the session.
	OnError func(error)
}

// Watch runs the conversion once, then re-runs it after every change to one
// of the given files until the context is canceled. Parent directories are
// watched rather than the files themselves, so atomic saves (rename over
// the original) keep working.
func (w *Watcher) Watch(ctx context.Context, paths []string, run func(context.Context) error) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWatchSetup, err)
	}
	defer fw.Close()

	watched := make(map[string]bool, len(paths))
	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrWatchSetup, err)
		}
		watched[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := fw.Add(dir); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrWatchSetup, dir, err)
		}
	}

	w.convert(ctx, run)

	debounce := w.Debounce
	if debounce <= 0 {
		debounce = defaultDebounce
	}

	// The timer is armed on the first relevant event and reset by each
	// subsequent one; conversion fires when the burst goes quiet.
	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !watched[event.Name] {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			// An expiry may already sit in timer.C if the timer fired
			// since the last drain; clear it or Reset fires early. The
			// drain is non-blocking because a fired-and-consumed timer
			// leaves the channel empty.
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.report(err)

		case <-timer.C:
			w.convert(ctx, run)
		}
	}
}

func (w *Watcher) convert(ctx context.Context, run func(context.Context) error) {
	if err := run(ctx); err != nil && ctx.Err() == nil {
		w.report(err)
	}
}

func (w *Watcher) report(err error) {
	if w.OnError != nil {
		w.OnError(err)
	}
}
