package manifest

import (
	"context"
	"errors"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/errgroup"
)

// Handler receives every (re)load of the manifest, err is set if it could
// not be read or parsed.
type Handler func(m *Manifest, err error)

// Watch calls fn with the manifest at path right away and again after every
// change to it, until ctx is done. An empty manifest is reported as ErrEmpty. Changes arriving within debounce of each
// other are coalesced, and so are changes arriving while fn runs.
//
// The parent directory is watched rather than the file, editors and
// config management usually replace files by renaming over them.
func Watch(ctx context.Context, path string, debounce time.Duration, fn Handler) error {
	path = filepath.Clean(path)
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	if err := w.Add(filepath.Dir(path)); err != nil {
		return err
	}

	reload := make(chan struct{}, 1)
	reload <- struct{}{}
	trigger := func() {
		select {
		case reload <- struct{}{}:
		default:
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var fire <-chan time.Time
		for {
			select {
			case <-ctx.Done():
				return nil
			case ev, ok := <-w.Events:
				if !ok {
					return nil
				}
				if filepath.Clean(ev.Name) == path && ev.Op != fsnotify.Chmod {
					fire = time.After(debounce)
				}
			case err, ok := <-w.Errors:
				if !ok {
					return nil
				}
				if !errors.Is(err, fsnotify.ErrEventOverflow) {
					return err
				}
				fire = time.After(debounce)
			case <-fire:
				fire = nil
				trigger()
			}
		}
	})
	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-reload:
				fn(load(path, false))
			}
		}
	})
	return g.Wait()
}
