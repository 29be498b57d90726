// Package xrotate 对一个正在被写入的日志文件执行外部轮转。
//
// 轮转方式与 logrotate 的默认模式一致：把当前文件重命名为带时间戳的备份，
// 再在原路径创建空文件。写入方（如 xsink.Queue）通过目录事件感知轮转并重开句柄，
// 因此轮转期间不需要与写入方做任何协调。
//
// # 当前实现
//
//   - [NewLumberjack]: 基于 lumberjack v2 的重命名、备份清理和 gzip 压缩
//
// 备份文件名形如 app-2025-01-02T15-04-05.000.log，清理按 MaxBackups 和 MaxAgeDays
// 执行，压缩与清理在 lumberjack 的后台 goroutine 中异步完成；
// 短生命周期的进程用 [WaitCompressed] 等待压缩结束。
//
// # 文件权限
//
// 新文件沿用被轮转文件的权限和属主；原文件不存在时 lumberjack 使用 0600 创建。
package xrotate
