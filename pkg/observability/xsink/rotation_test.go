package xsink

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omeyang/xsink/pkg/observability/xrotate"
)

func waitContent(t *testing.T, path, want string) {
	t.Helper()
	require.Eventually(t, func() bool {
		data, err := os.ReadFile(path)
		return err == nil && string(data) == want
	}, 5*time.Second, 5*time.Millisecond)
}

func TestRotation_DeleteAndRecreate(t *testing.T) {
	path := testPath(t)
	q, cancel := runQueue(t, path)

	require.NoError(t, q.Enqueue("before\n"))
	waitContent(t, path, "before\n")

	require.NoError(t, os.Remove(path))
	require.NoError(t, os.WriteFile(path, nil, 0o640))
	require.Eventually(t, func() bool { return q.Stats().Reopens >= 1 }, 5*time.Second, 5*time.Millisecond)

	require.NoError(t, q.Enqueue("after\n"))
	cancel()
	q.Wait()

	assert.Equal(t, "after\n", readFile(t, path))
	assert.Zero(t, q.Stats().Errors)
}

func TestRotation_RenameAndCreateWithLumberjack(t *testing.T) {
	path := testPath(t)
	dir := filepath.Dir(path)
	q, cancel := runQueue(t, path)

	rot, err := xrotate.NewLumberjack(path, xrotate.WithCompress(false), xrotate.WithMaxBackups(3))
	require.NoError(t, err)
	t.Cleanup(func() { _ = rot.Close() })

	require.NoError(t, q.Enqueue("first\n"))
	waitContent(t, path, "first\n")

	require.NoError(t, rot.Rotate())
	require.Eventually(t, func() bool { return q.Stats().Reopens >= 1 }, 5*time.Second, 5*time.Millisecond)

	require.NoError(t, q.Enqueue("second\n"))
	cancel()
	q.Wait()

	assert.Equal(t, "second\n", readFile(t, path))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var backup string
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), "app-") {
			backup = filepath.Join(dir, e.Name())
		}
	}
	require.NotEmpty(t, backup)
	assert.Equal(t, "first\n", readFile(t, backup))
}

func TestRotation_RecordsBufferedAcrossRename(t *testing.T) {
	path := testPath(t)
	moved := path + ".1"
	q := startQueue(t, path)

	// 未刷新的记录留在旧句柄缓冲中，重开时随旧句柄刷新到被移走的文件
	require.NoError(t, q.Enqueue("buffered\n"))
	drainAll(t, q)
	require.NoError(t, os.Rename(path, moved))
	require.NoError(t, os.WriteFile(path, nil, 0o640))
	require.Eventually(t, q.watcher.Pending, 5*time.Second, 5*time.Millisecond)

	q.maybeReopen(time.Now())
	assert.Equal(t, "buffered\n", readFile(t, moved))
	assert.Equal(t, int64(1), q.Stats().Reopens)
}
