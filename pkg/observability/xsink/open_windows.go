//go:build windows

package xsink

import (
	"os"

	"golang.org/x/sys/windows"
)

// openAppend 以追加模式打开（必要时创建）目标文件。
//
// os.OpenFile 不带 FILE_SHARE_DELETE，外部轮转工具无法 rename/删除正在写的文件，
// 因此直接调用 CreateFile。FILE_APPEND_DATA 不含 FILE_WRITE_DATA，
// 每次写入都落在文件末尾。
func openAppend(path string, _ os.FileMode) (*os.File, error) {
	name, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return nil, &os.PathError{Op: "open", Path: path, Err: err}
	}

	h, err := windows.CreateFile(
		name,
		windows.FILE_APPEND_DATA|windows.SYNCHRONIZE,
		windows.FILE_SHARE_READ|windows.FILE_SHARE_WRITE|windows.FILE_SHARE_DELETE,
		nil,
		windows.OPEN_ALWAYS,
		windows.FILE_ATTRIBUTE_NORMAL,
		0,
	)
	if err != nil {
		return nil, &os.PathError{Op: "open", Path: path, Err: err}
	}
	return os.NewFile(uintptr(h), path), nil
}
