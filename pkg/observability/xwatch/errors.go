package xwatch

import "errors"

var (
	// ErrWatchFailed 表示无法建立目录监视（fsnotify 创建或订阅失败）。
	ErrWatchFailed = errors.New("xwatch: failed to start watcher")

	// ErrEventQueue 表示内核事件队列溢出等监视错误，可能有事件丢失。
	ErrEventQueue = errors.New("xwatch: watch error")
)
