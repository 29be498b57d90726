package xsink

import (
	"bufio"
	"errors"
	"io/fs"
	"os"
)

// handle 当前打开的目标文件及其写缓冲。
//
// 只由 drain goroutine 访问，不需要加锁。
type handle struct {
	f     *os.File
	w     *bufio.Writer
	id    fileID
	hasID bool

	// bufio.Writer 出错后会一直返回同一个错误，必须换新句柄
	broken bool
}

func openHandle(path string, mode os.FileMode, bufSize int) (*handle, error) {
	f, err := openAppend(path, mode)
	if err != nil {
		return nil, err
	}
	id, idErr := fileIdentity(f)
	return &handle{
		f:     f,
		w:     bufio.NewWriterSize(f, bufSize),
		id:    id,
		hasID: idErr == nil,
	}, nil
}

func (h *handle) write(record string) error {
	if _, err := h.w.WriteString(record); err != nil {
		h.broken = true
		return err
	}
	return nil
}

func (h *handle) flush() error {
	if err := h.w.Flush(); err != nil {
		h.broken = true
		return err
	}
	return nil
}

// close 刷新剩余缓冲并关闭文件，两个错误都会返回。
func (h *handle) close() error {
	return errors.Join(h.w.Flush(), h.f.Close())
}

// sameAs 报告 path 当前是否仍指向本句柄打开的文件。
//
// 路径不存在视为不同；无法获取身份时视为相同，以免无谓重开。
func (h *handle) sameAs(path string) (bool, error) {
	if !h.hasID {
		return true, nil
	}
	id, err := pathIdentity(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return true, err
	}
	return id == h.id, nil
}
