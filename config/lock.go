package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/gofrs/flock"
)

var ErrSessionActive = errors.New("another watcher is already running")

var settingsMutex sync.Mutex

// WithLock runs f while holding the settings lock, both within the process
// and across processes sharing the same home.
func WithLock(f func() error) error {
	settingsMutex.Lock()
	defer settingsMutex.Unlock()

	lock := flock.New(filepath.Join(Home(), "config.lock"))
	if err := lock.Lock(); err != nil {
		return err
	}
	defer lock.Unlock()
	return f()
}

func pidFile() string { return filepath.Join(Home(), "session.pid") }

// Session is the exclusive lock held by a running watcher.
type Session struct {
	lock *flock.Flock
}

// AcquireSession takes the session lock without waiting, failing with
// ErrSessionActive if another process holds it.
func AcquireSession() (*Session, error) {
	lock := flock.New(filepath.Join(Home(), "session.lock"))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, err
	}
	if !ok {
		if pid, e := SessionPid(); e == nil {
			return nil, errors.Join(ErrSessionActive, errors.New("pid "+strconv.Itoa(pid)))
		}
		return nil, ErrSessionActive
	}
	os.WriteFile(pidFile(), []byte(strconv.Itoa(os.Getpid())), 0644)
	return &Session{lock: lock}, nil
}

// SessionPid returns the pid recorded by the running watcher.
func SessionPid() (int, error) {
	data, err := os.ReadFile(pidFile())
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(string(data)))
}

func (s *Session) Release() error {
	os.Remove(pidFile())
	return s.lock.Unlock()
}
