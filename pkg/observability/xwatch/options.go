package xwatch

// Option 监视器配置选项
type Option func(*options)

type options struct {
	notify  func()
	onError func(error)
}

// WithNotify 设置标记被置位后的回调。
//
// 回调在 fsnotify 事件 goroutine 中同步执行，必须非阻塞。
// xsink 用它唤醒空闲中的 drain 循环。
func WithNotify(fn func()) Option {
	return func(o *options) {
		o.notify = fn
	}
}

// WithOnError 设置监视错误回调。
//
// fsnotify 的错误（如事件队列溢出）不会终止监视，只通过此回调上报，
// 错误包装 [ErrEventQueue]。
func WithOnError(fn func(error)) Option {
	return func(o *options) {
		o.onError = fn
	}
}
