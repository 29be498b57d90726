package xsink

import "errors"

var (
	// ErrInit 初始化失败：首次打开目标文件或启动目录监视失败。
	// 构造函数同步返回，Queue 不会启动。
	ErrInit = errors.New("xsink: initialization failed")

	// ErrCancelled 取消信号已经可见（或 drain 循环已进入最终排空），Enqueue 被拒绝。
	// 被拒绝的记录不会写入文件。
	ErrCancelled = errors.New("xsink: queue cancelled")

	// ErrTransientIO 后台写入、刷新或重开时的 I/O 错误。
	// 只通过诊断日志和 OnError 回调上报，不会返回给生产者，也不会终止 drain 循环。
	ErrTransientIO = errors.New("xsink: transient io error")

	// ErrNilContext 构造时传入了 nil context。
	ErrNilContext = errors.New("xsink: nil context")

	// ErrInvalidConfig 配置值超出允许范围。
	ErrInvalidConfig = errors.New("xsink: invalid config")
)
