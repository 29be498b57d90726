// Package observability 提供日志落盘相关的子包。
//
// 子包列表：
//   - xsink: 异步追加写队列，单 goroutine 落盘，目标文件被轮转后自动重开
//   - xwatch: 目标文件的目录监视，把 Create/Rename 事件折叠为一个重开标记
//   - xrotate: 外部轮转（重命名 + 创建 + 备份清理），基于 lumberjack
//
// 设计原则：
//   - 生产者永不阻塞在 I/O 上
//   - 轮转期间不丢记录，关闭时写完所有已接受的记录
//   - 指标遵循 OpenTelemetry 语义规范
package observability
