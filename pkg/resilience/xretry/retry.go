package xretry

import (
	"context"
	"time"

	retry "github.com/avast/retry-go/v5"
)

// Do 以固定间隔执行 fn，最多 attempts 次（含首次）。
//
// attempts < 1 按 1 处理，即不重试。delay 为相邻两次尝试之间的间隔，负数按 0 处理。
// 首次尝试总会执行，ctx 只打断尝试之间的等待；返回最后一次的错误。
// fn 返回 [Unrecoverable] 包装的错误时立即返回。
func Do(ctx context.Context, fn func() error, attempts int, delay time.Duration) error {
	if ctx == nil {
		return ErrNilContext
	}
	if fn == nil {
		return ErrNilFunc
	}
	if attempts < 1 {
		attempts = 1
	}
	if delay < 0 {
		delay = 0
	}

	err := fn()
	if err == nil || attempts == 1 || !IsRecoverable(err) {
		return err
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return err
	case <-timer.C:
	}

	return retry.New(
		retry.Context(ctx),
		retry.Attempts(uint(attempts-1)), //nolint:gosec // attempts >= 2
		retry.Delay(delay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(IsRecoverable),
	).Do(fn)
}
