package xrun

import (
	"io"
	"log/slog"
	"os"
	"syscall"
)

// Option 配置 Group 的选项函数。
type Option func(*groupOptions)

type groupOptions struct {
	logger          *slog.Logger
	name            string
	signals         []os.Signal
	noSignalHandler bool

	// 测试注入，替代 signal.Notify
	sigChan <-chan os.Signal
}

func defaultOptions() *groupOptions {
	return &groupOptions{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		name:   "xrun",
	}
}

// DefaultSignals 返回 Run 默认监听的信号（SIGINT、SIGTERM）。
func DefaultSignals() []os.Signal {
	return []os.Signal{os.Interrupt, syscall.SIGTERM}
}

// WithLogger 设置生命周期日志，默认丢弃。nil 被忽略。
func WithLogger(logger *slog.Logger) Option {
	return func(o *groupOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithName 设置 Group 名称，出现在日志的 group 字段中。
func WithName(name string) Option {
	return func(o *groupOptions) {
		if name != "" {
			o.name = name
		}
	}
}

// WithSignals 设置 Run 监听的信号，空列表等同于 [DefaultSignals]。
func WithSignals(signals ...os.Signal) Option {
	copied := append([]os.Signal(nil), signals...)
	return func(o *groupOptions) {
		o.signals = copied
	}
}

// WithoutSignalHandler 禁止 Run 注册信号监听。
func WithoutSignalHandler() Option {
	return func(o *groupOptions) {
		o.noSignalHandler = true
	}
}

func withSignalChan(c <-chan os.Signal) Option {
	return func(o *groupOptions) {
		o.sigChan = c
	}
}
