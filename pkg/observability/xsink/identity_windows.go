//go:build windows

package xsink

import (
	"os"

	"golang.org/x/sys/windows"
)

// fileID 标识一个文件实体：rename 不改变它，删除重建会改变它。
type fileID struct {
	volume uint32
	index  uint64
}

func idFromHandle(h windows.Handle) (fileID, error) {
	var info windows.ByHandleFileInformation
	if err := windows.GetFileInformationByHandle(h, &info); err != nil {
		return fileID{}, err
	}
	return fileID{
		volume: info.VolumeSerialNumber,
		index:  uint64(info.FileIndexHigh)<<32 | uint64(info.FileIndexLow),
	}, nil
}

func fileIdentity(f *os.File) (fileID, error) {
	return idFromHandle(windows.Handle(f.Fd()))
}

func pathIdentity(path string) (fileID, error) {
	name, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return fileID{}, &os.PathError{Op: "stat", Path: path, Err: err}
	}
	h, err := windows.CreateFile(
		name,
		windows.FILE_READ_ATTRIBUTES,
		windows.FILE_SHARE_READ|windows.FILE_SHARE_WRITE|windows.FILE_SHARE_DELETE,
		nil,
		windows.OPEN_EXISTING,
		windows.FILE_FLAG_BACKUP_SEMANTICS,
		0,
	)
	if err != nil {
		return fileID{}, &os.PathError{Op: "stat", Path: path, Err: err}
	}
	defer windows.CloseHandle(h) //nolint:errcheck // 只读属性句柄

	return idFromHandle(h)
}
