package xsink

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/omeyang/xsink/pkg/observability/xwatch"
	"github.com/omeyang/xsink/pkg/resilience/xretry"
	"github.com/omeyang/xsink/pkg/util/xfile"
)

// Queue 异步追加写队列
//
// 任意数量的 goroutine 可以并发调用 Enqueue；一个后台 goroutine 按 FIFO 顺序
// 把记录写入目标文件。目标文件被外部工具轮转后自动重开。
// 关闭由构造时传入的 context 驱动，没有 Close 方法。
type Queue struct {
	path string
	opts *options
	ctx  context.Context

	mu      sync.Mutex
	pending []string
	closed  bool // drain 循环已进入最终排空，此后的 Enqueue 一律拒绝

	wake    chan struct{}
	watcher *xwatch.Watcher
	metrics *metrics
	done    chan struct{}

	// 以下字段只由 drain goroutine 访问
	h              *handle
	unflushed      int
	reopenFailures int
	nextReopen     time.Time
	backoff        *xretry.ExponentialBackoff

	stats struct {
		enqueued atomic.Int64
		written  atomic.Int64
		flushes  atomic.Int64
		reopens  atomic.Int64
		errors   atomic.Int64
	}
}

// Stats 运行计数快照
type Stats struct {
	Enqueued int64 // 被接受的记录数
	Written  int64 // 写入句柄的记录数（不代表已刷盘）
	Flushes  int64 // 成功刷新次数
	Reopens  int64 // 成功重开次数
	Errors   int64 // 后台 I/O 错误次数
	Pending  int   // 队列中等待写入的记录数
}

// New 打开目标文件、启动轮转监视和后台 drain 循环。
//
// 文件以追加模式打开，不存在时创建，父目录不存在时以 0750 创建。
// 相对路径（包括 "../logs/app.log"）相对于进程工作目录解析。
// 路径无效、首次打开或监视启动失败都返回包装 [ErrInit] 的错误（路径错误同时包装
// xfile 的预定义错误），选项越界返回 [ErrInvalidConfig]。失败时没有任何后台 goroutine。
//
// ctx 取消后，drain 循环写完取消前已接受的全部记录，刷新并关闭文件，停止监视，
// 然后关闭 [Queue.Done]。
func New(ctx context.Context, path string, opts ...Option) (*Queue, error) {
	if ctx == nil {
		return nil, ErrNilContext
	}

	q, err := newQueue(path, opts...)
	if err != nil {
		return nil, err
	}
	q.ctx = ctx

	if err := q.start(); err != nil {
		return nil, err
	}
	go q.run()
	return q, nil
}

// newQueue 校验配置并构建 Queue，不打开文件也不启动 goroutine。
func newQueue(path string, opts ...Option) (*Queue, error) {
	safePath, err := xfile.SanitizePath(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInit, err)
	}

	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	if err := o.validate(); err != nil {
		return nil, err
	}

	q := &Queue{
		path:    safePath,
		opts:    o,
		ctx:     context.Background(),
		wake:    make(chan struct{}, 1),
		done:    make(chan struct{}),
		backoff: o.backoff(),
	}

	q.metrics, err = newMetrics(o.meterProvider, safePath, func() int64 {
		return int64(q.Len())
	})
	if err != nil {
		return nil, fmt.Errorf("%w: metrics: %w", ErrInit, err)
	}
	return q, nil
}

// start 打开首个句柄并启动监视器。
func (q *Queue) start() error {
	if err := xfile.EnsureDir(q.path); err != nil {
		return q.initFailed("create directory", err)
	}

	err := xretry.Do(q.ctx, func() error {
		h, err := openHandle(q.path, q.opts.fileMode, q.opts.bufferSize)
		if err != nil {
			return err
		}
		q.h = h
		return nil
	}, q.opts.openAttempts, q.opts.openRetryDelay)
	if err != nil {
		return q.initFailed("open", err)
	}

	q.watcher, err = xwatch.New(q.path,
		xwatch.WithNotify(q.signal),
		xwatch.WithOnError(func(err error) { q.report("watch", err) }),
	)
	if err != nil {
		closeErr := q.h.close()
		q.h = nil
		if closeErr != nil {
			q.opts.logger.Warn("xsink: close after failed init",
				slog.String("path", q.path),
				slog.Any("error", closeErr),
			)
		}
		return q.initFailed("watch", err)
	}
	return nil
}

func (q *Queue) initFailed(op string, err error) error {
	_ = q.metrics.unregister()
	return fmt.Errorf("%w: %s %s: %w", ErrInit, op, q.path, err)
}

// Enqueue 追加一条已格式化的记录（调用方负责换行符）。
//
// 取消信号已可见时返回 [ErrCancelled]，记录不会被写入；否则总是成功。
// 队列无界，不会阻塞调用方。
func (q *Queue) Enqueue(record string) error {
	q.mu.Lock()
	if q.closed || q.ctx.Err() != nil {
		q.mu.Unlock()
		return ErrCancelled
	}
	q.pending = append(q.pending, record)
	q.mu.Unlock()

	q.stats.enqueued.Add(1)
	q.metrics.add(q.metrics.enqueued, 1)
	q.signal()
	return nil
}

// Done 在后台循环完成最终排空并释放资源后关闭。
func (q *Queue) Done() <-chan struct{} {
	return q.done
}

// Wait 阻塞直到 [Queue.Done] 关闭。
func (q *Queue) Wait() {
	<-q.done
}

// Path 返回规范化后的目标文件路径。
func (q *Queue) Path() string {
	return q.path
}

// Len 返回等待写入的记录数。
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Stats 返回运行计数快照。
func (q *Queue) Stats() Stats {
	return Stats{
		Enqueued: q.stats.enqueued.Load(),
		Written:  q.stats.written.Load(),
		Flushes:  q.stats.flushes.Load(),
		Reopens:  q.stats.reopens.Load(),
		Errors:   q.stats.errors.Load(),
		Pending:  q.Len(),
	}
}

// signal 非阻塞地唤醒 drain 循环。
func (q *Queue) signal() {
	select {
	case q.wake <- struct{}{}:
	default:
	}
}

// peek 返回队首记录但不移除。
func (q *Queue) peek() (string, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.pending) == 0 {
		return "", false
	}
	return q.pending[0], true
}

// pop 移除队首记录。只有 drain goroutine 会移除，peek 到的记录一定还在队首。
func (q *Queue) pop() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending[0] = ""
	q.pending = q.pending[1:]
	if len(q.pending) == 0 {
		q.pending = nil
	}
}

// closeAndTakeAll 拒绝后续入队并取出剩余记录。
func (q *Queue) closeAndTakeAll() []string {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
	rest := q.pending
	q.pending = nil
	return rest
}
