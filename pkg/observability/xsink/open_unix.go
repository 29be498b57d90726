//go:build !windows

package xsink

import "os"

// openAppend 以追加模式打开（必要时创建）目标文件。
//
// Unix 上打开中的文件本来就允许被其他进程 rename/unlink/读取。
func openAppend(path string, mode os.FileMode) (*os.File, error) {
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, mode) // #nosec G304 -- path 已经过 xfile.SanitizePath
}
