package config

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a config file whenever it changes on disk.
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	onChange func(*Config)
	errs     chan error
	done     chan struct{}
	once     sync.Once
	wg       sync.WaitGroup
	debounce time.Duration
}

// watchDebounce collapses bursts of writes into one reload.
const watchDebounce = 100 * time.Millisecond

// Watch starts watching path. onChange receives every successfully parsed
// config, with flags applied on top.
func Watch(path string, onChange func(*Config)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	// editors replace files, so watch the directory
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch directory: %w", err)
	}

	w := &Watcher{
		path:     path,
		watcher:  fw,
		onChange: onChange,
		errs:     make(chan error, 1),
		done:     make(chan struct{}),
		debounce: watchDebounce,
	}
	w.wg.Add(1)
	go w.loop()
	return w, nil
}

// loop owns the debounce timer and runs every reload, so Close waiting on
// it also waits out a reload in progress.
func (w *Watcher) loop() {
	defer w.wg.Done()

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-w.done:
			return

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(ev.Name) != filepath.Base(w.path) {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(w.debounce)
			fire = timer.C

		case <-fire:
			fire = nil
			w.reload()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.report(err)
		}
	}
}

func (w *Watcher) reload() {
	select {
	case <-w.done:
		return
	default:
	}

	cfg := Default()
	if err := loadFromFile(cfg, w.path); err != nil {
		w.report(fmt.Errorf("reload config: %w", err))
		return
	}
	applyFlags(cfg)

	if w.onChange != nil {
		w.onChange(cfg)
	}
}

func (w *Watcher) report(err error) {
	select {
	case w.errs <- err:
	default:
	}
}

// Errors returns reload and watch errors. Errors are dropped while the
// previous one is unread.
func (w *Watcher) Errors() <-chan error {
	return w.errs
}

// Close stops watching. It waits for a reload in progress, so it must not
// be called from the onChange callback.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.watcher.Close()
		w.wg.Wait()
	})
	return err
}
