package xsink

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const testIdle = 10 * time.Millisecond

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "app.log")
}

// startQueue 打开文件并启动监视，但不启动 drain goroutine，测试可以逐步驱动。
// 测试结束时执行 shutdown 释放句柄和监视器。
func startQueue(t *testing.T, path string, opts ...Option) *Queue {
	t.Helper()
	opts = append([]Option{WithLogger(discardLogger()), WithIdleInterval(testIdle)}, opts...)
	q, err := newQueue(path, opts...)
	require.NoError(t, err)
	require.NoError(t, q.start())
	t.Cleanup(q.shutdown)
	return q
}

// runQueue 创建并运行 Queue，返回取消函数；测试结束时取消并等待退出。
func runQueue(t *testing.T, path string, opts ...Option) (*Queue, context.CancelFunc) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	opts = append([]Option{WithLogger(discardLogger()), WithIdleInterval(testIdle)}, opts...)
	q, err := New(ctx, path, opts...)
	require.NoError(t, err)
	t.Cleanup(func() {
		cancel()
		q.Wait()
	})
	return q, cancel
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

// drainAll 在测试 goroutine 中写完当前队列中的全部记录。
func drainAll(t *testing.T, q *Queue) {
	t.Helper()
	for {
		record, ok := q.peek()
		if !ok {
			return
		}
		require.NoError(t, q.writeOne(record))
	}
}

// openQueue 与 startQueue 相同，但不注册 shutdown：由测试自己用 runLoop 启动 drain 循环。
func openQueue(t *testing.T, path string, opts ...Option) *Queue {
	t.Helper()
	opts = append([]Option{WithLogger(discardLogger()), WithIdleInterval(testIdle)}, opts...)
	q, err := newQueue(path, opts...)
	require.NoError(t, err)
	require.NoError(t, q.start())
	return q
}

// runLoop 启动 drain 循环；测试结束时取消并等待退出。
func runLoop(t *testing.T, q *Queue) context.CancelFunc {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	q.ctx = ctx
	go q.run()
	t.Cleanup(func() {
		cancel()
		q.Wait()
	})
	return cancel
}

// shutdownNow 以已取消的 ctx 运行 drain 循环，只执行最终排空。
func shutdownNow(q *Queue) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	q.ctx = ctx
	go q.run()
	q.Wait()
}

// breakHandle 关闭底层文件，下一次写入必然失败。
func breakHandle(t *testing.T, q *Queue) {
	t.Helper()
	require.NoError(t, q.h.f.Close())
}
