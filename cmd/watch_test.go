package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/whales-names/whales/hosts"
	"github.com/whales-names/whales/manifest"
	"github.com/whales-names/whales/retry"
	"github.com/whales-names/whales/util"
	"github.com/whales-names/whales/xlog"
)

type applierLog struct {
	buf *bytes.Buffer
}

func (l applierLog) messages(t *testing.T) (res []map[string]any) {
	t.Helper()
	for _, line := range strings.Split(strings.TrimSpace(l.buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		res = append(res, m)
	}
	return
}

func (l applierLog) count(t *testing.T, msg string) (n int) {
	for _, m := range l.messages(t) {
		if m["msg"] == msg {
			n++
		}
	}
	return
}

func newApplier(t *testing.T, ctx context.Context, path string, policy retry.Policy) (applier, applierLog) {
	t.Helper()
	xlog.SetLoggerLevel(xlog.LevelDebug)
	t.Cleanup(func() { xlog.SetLoggerLevel(xlog.LevelInfo) })

	log := applierLog{buf: &bytes.Buffer{}}
	return applier{
		ctx:    ctx,
		policy: policy,
		logger: xlog.NewDomain("watch.apply", log.buf).Logger(),
		updater: func(*manifest.Manifest) (*hosts.Updater, error) {
			return hosts.New(hosts.WithPath(path), hosts.WithPlatform(hosts.PlatformLinux))
		},
	}, log
}

func fastPolicy(attempts int) retry.Policy {
	return retry.Policy{Attempts: attempts, Backoff: util.Duration(time.Millisecond)}
}

var testManifest = &manifest.Manifest{
	Entries: []manifest.Entry{{Address: "10.0.0.5", Names: util.Many("app1", "app1.local")}},
}

func TestApplierUpdates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hosts")
	require.NoError(t, os.WriteFile(path, []byte("127.0.0.1 localhost\n"), 0644))

	a, log := newApplier(t, context.Background(), path, fastPolicy(3))
	a.apply(testManifest, nil)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, hosts.Apply("127.0.0.1 localhost\n", testManifest.HostEntries(), "\n"), string(data))
	require.Equal(t, 1, log.count(t, "Hosts file updated"))
}

func TestApplierKeepsEntriesOnLoadError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hosts")
	content := hosts.Apply("127.0.0.1 localhost\n", testManifest.HostEntries(), "\n")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	a, log := newApplier(t, context.Background(), path, fastPolicy(3))
	a.apply(nil, errors.New("yaml: line 3: did not find expected key"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, content, string(data))

	msgs := log.messages(t)
	require.Len(t, msgs, 1)
	require.Equal(t, "warn", msgs[0]["l"])
	require.NotEmpty(t, msgs[0]["stack"])
}

func TestApplierRetries(t *testing.T) {
	// Reading a directory fails on every attempt without being permanent.
	path := t.TempDir()

	a, log := newApplier(t, context.Background(), path, fastPolicy(3))
	a.apply(testManifest, nil)

	require.Equal(t, 3, log.count(t, "Update failed"))
	require.Equal(t, 1, log.count(t, "Failed to update hosts file"))
	require.Zero(t, log.count(t, "Hosts file updated"))
}

func TestApplierMissingFileIsPermanent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hosts")

	a, log := newApplier(t, context.Background(), path, fastPolicy(5))
	a.apply(testManifest, nil)

	require.Equal(t, 1, log.count(t, "Update failed"))
	require.Equal(t, 1, log.count(t, "Failed to update hosts file"))
	_, err := os.Stat(path)
	require.True(t, os.IsNotExist(err))
}

func TestRetryable(t *testing.T) {
	denied := &fs.PathError{Op: "open", Path: "/etc/hosts", Err: fs.ErrPermission}
	require.False(t, retry.Retryable(retryable(denied)))
	require.ErrorIs(t, retryable(denied), fs.ErrPermission)

	missing := fmt.Errorf("hosts file %s: %w", "/etc/hosts", hosts.ErrFileNotFound)
	require.False(t, retry.Retryable(retryable(missing)))

	flaky := &fs.PathError{Op: "read", Path: "/etc/hosts", Err: errors.New("input/output error")}
	require.True(t, retry.Retryable(retryable(flaky)))
	require.NoError(t, retryable(nil))
}

func TestApplierStopsWhenCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	a, log := newApplier(t, ctx, t.TempDir(), retry.Policy{
		Attempts: 5,
		Backoff:  util.Duration(time.Hour),
	})
	a.apply(testManifest, nil)

	require.Equal(t, 1, log.count(t, "Update failed"))
	require.Zero(t, log.count(t, "Failed to update hosts file"))
}
