package xrotate

// Rotator 外部轮转器接口
//
// 实现必须是并发安全的：
//   - Rotate 可以在任意时刻调用，每次调用产生一个备份
//   - Close 后调用 Rotate 返回 [ErrClosed]，重复 Close 也返回 [ErrClosed]
type Rotator interface {
	// Rotate 把目标文件重命名为备份，并在原路径创建空文件。
	// 目标文件不存在时只创建空文件。
	Rotate() error

	// Close 释放资源。
	Close() error
}
