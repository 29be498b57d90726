package xsink

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"

	"github.com/omeyang/xsink/pkg/resilience/xretry"
)

// 默认配置值
const (
	// DefaultBatchSize 连续写入多少条记录后强制刷新一次
	DefaultBatchSize = 50

	// DefaultIdleInterval 队列为空时的最长等待时间
	DefaultIdleInterval = 100 * time.Millisecond

	// DefaultBufferSize 写缓冲区大小（字节）
	DefaultBufferSize = 4096

	// DefaultFileMode 新建目标文件的权限
	DefaultFileMode os.FileMode = 0o640

	// DefaultReopenInitialDelay 重开失败后的首次退避
	DefaultReopenInitialDelay = 100 * time.Millisecond

	// DefaultReopenMaxDelay 重开失败退避上限
	DefaultReopenMaxDelay = 5 * time.Second
)

// Option Queue 配置选项函数
type Option func(*options)

type options struct {
	batchSize      int
	idleInterval   time.Duration
	bufferSize     int
	fileMode       os.FileMode
	openAttempts   int
	openRetryDelay time.Duration
	reopenInitial  time.Duration
	reopenMax      time.Duration
	identityCheck  bool
	logger         *slog.Logger
	onError        func(error)
	meterProvider  metric.MeterProvider
}

func defaultOptions() *options {
	return &options{
		batchSize:      DefaultBatchSize,
		idleInterval:   DefaultIdleInterval,
		bufferSize:     DefaultBufferSize,
		fileMode:       DefaultFileMode,
		openAttempts:   1,
		openRetryDelay: 10 * time.Millisecond,
		reopenInitial:  DefaultReopenInitialDelay,
		reopenMax:      DefaultReopenMaxDelay,
		identityCheck:  true,
		// 诊断输出固定走 stderr：slog.Default() 可能恰好被路由到本 Queue，
		// 写失败时会形成递归。
		logger:        slog.New(slog.NewTextHandler(os.Stderr, nil)),
		meterProvider: otel.GetMeterProvider(),
	}
}

// WithBatchSize 设置批量刷新阈值，必须 >= 1。
func WithBatchSize(n int) Option {
	return func(o *options) {
		o.batchSize = n
	}
}

// WithIdleInterval 设置空闲轮询间隔，必须 > 0。
//
// 有新记录入队或检测到轮转时会提前唤醒，此值只是上限。
func WithIdleInterval(d time.Duration) Option {
	return func(o *options) {
		o.idleInterval = d
	}
}

// WithBufferSize 设置写缓冲区大小，必须 >= 1。
func WithBufferSize(n int) Option {
	return func(o *options) {
		o.bufferSize = n
	}
}

// WithFileMode 设置新建文件权限，仅允许权限位（0000~0777）。
// 已存在的文件不会被修改权限。Windows 上忽略。
func WithFileMode(mode os.FileMode) Option {
	return func(o *options) {
		o.fileMode = mode
	}
}

// WithOpenRetry 设置首次打开的尝试次数和间隔。
//
// 默认只尝试一次。attempts < 1 按 1 处理。重开（轮转后）不使用此配置，
// 重开失败由 drain 循环按退避策略重试。
func WithOpenRetry(attempts int, delay time.Duration) Option {
	return func(o *options) {
		o.openAttempts = attempts
		o.openRetryDelay = delay
	}
}

// WithReopenBackoff 设置重开失败后的指数退避区间。
//
// 重开失败时旧句柄继续使用，退避期间记录照常写入旧文件。
func WithReopenBackoff(initial, maxDelay time.Duration) Option {
	return func(o *options) {
		o.reopenInitial = initial
		o.reopenMax = maxDelay
	}
}

// WithIdentityCheck 设置空闲时是否比对目标路径与已打开文件的身份
// （Unix 上为 dev+inode，Windows 上为卷序列号+文件索引）。
//
// 默认开启：目录事件丢失（如 inotify 队列溢出）或文件被删除而未重建时，
// 也能在下一个空闲周期发起重开。
func WithIdentityCheck(enable bool) Option {
	return func(o *options) {
		o.identityCheck = enable
	}
}

// WithLogger 设置诊断日志。
//
// 不要传入最终输出到同一 Queue 的 logger，否则写失败时会递归入队。
// nil 被忽略。
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithOnError 设置后台 I/O 错误回调。
//
// 错误包装 [ErrTransientIO]。回调在 drain goroutine 或监视 goroutine 中同步执行，
// 两者可能并发，回调必须并发安全。回调 panic 会被 recover。
func WithOnError(fn func(error)) Option {
	return func(o *options) {
		o.onError = fn
	}
}

// WithMeterProvider 设置 OpenTelemetry MeterProvider，默认使用全局 provider。
// nil 被忽略。
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(o *options) {
		if mp != nil {
			o.meterProvider = mp
		}
	}
}

func (o *options) validate() error {
	if o.batchSize < 1 {
		return fmt.Errorf("%w: batch size %d, want >= 1", ErrInvalidConfig, o.batchSize)
	}
	if o.idleInterval <= 0 {
		return fmt.Errorf("%w: idle interval %s, want > 0", ErrInvalidConfig, o.idleInterval)
	}
	if o.bufferSize < 1 {
		return fmt.Errorf("%w: buffer size %d, want >= 1", ErrInvalidConfig, o.bufferSize)
	}
	if o.fileMode&^os.FileMode(0o777) != 0 {
		return fmt.Errorf("%w: file mode %04o, only permission bits allowed", ErrInvalidConfig, o.fileMode)
	}
	if o.reopenInitial <= 0 || o.reopenMax < o.reopenInitial {
		return fmt.Errorf("%w: reopen backoff [%s, %s]", ErrInvalidConfig, o.reopenInitial, o.reopenMax)
	}
	return nil
}

func (o *options) backoff() *xretry.ExponentialBackoff {
	return xretry.NewExponentialBackoff(
		xretry.WithInitialDelay(o.reopenInitial),
		xretry.WithMaxDelay(o.reopenMax),
	)
}
