// Package xfile 提供日志目标文件相关的路径工具。
//
// 本包只做路径层面的处理，不持有任何文件句柄：
//
//   - [SanitizePath]: 规范化目标文件路径，拒绝空路径、空字节和目录路径
//   - [SplitTarget]: 将目标文件拆分为父目录和文件名，供目录监视使用
//   - [EnsureDir] / [EnsureDirWithPerm]: 创建目标文件的父目录
//
// # 相对路径
//
// 目标路径来自调用方配置而不是外部输入，"../logs/app.log" 这样的相对路径是合法的，
// 只做 filepath.Clean 规范化，相对于进程工作目录解析。
//
// # 错误处理
//
// 所有错误都包装了本包的预定义错误，可用 [errors.Is] 判断：
//
//	_, err := xfile.SanitizePath("/var/log/")
//	if errors.Is(err, xfile.ErrInvalidPath) {
//	    // 目录不能作为目标文件
//	}
package xfile
