// Package xretry 提供文件操作使用的重试与退避工具。
//
// # 退避策略
//
// [ExponentialBackoff] 按 initialDelay * multiplier^(attempt-1) 计算延迟，
// 可选抖动，结果不超过 maxDelay。它只负责算出延迟，不负责等待，
// 适合在事件循环中记录“下次可尝试时间”的场景（例如 xsink 的句柄重开）。
//
// # 阻塞式重试
//
// [Do] 基于 [avast/retry-go/v5]，以固定间隔重试有限次数，受 context 控制：
//
//	err := xretry.Do(ctx, func() error {
//	    return openFile()
//	}, 3, 10*time.Millisecond)
//
// 用 [Unrecoverable] 包装的错误不会再重试。
//
// [avast/retry-go/v5]: https://github.com/avast/retry-go
package xretry
