//go:build unix

package xsink

import (
	"os"

	"golang.org/x/sys/unix"
)

// fileID 标识一个文件实体：rename 不改变它，删除重建会改变它。
type fileID struct {
	dev uint64
	ino uint64
}

func fileIdentity(f *os.File) (fileID, error) {
	var st unix.Stat_t
	if err := unix.Fstat(int(f.Fd()), &st); err != nil { //nolint:gosec // fd 不会溢出 int
		return fileID{}, err
	}
	return fileID{dev: uint64(st.Dev), ino: st.Ino}, nil //nolint:unconvert // Dev 在部分平台是有符号类型
}

func pathIdentity(path string) (fileID, error) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return fileID{}, &os.PathError{Op: "stat", Path: path, Err: err}
	}
	return fileID{dev: uint64(st.Dev), ino: st.Ino}, nil //nolint:unconvert // 同上
}
