package xwatch

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"

	"github.com/omeyang/xsink/pkg/util/xfile"
)

// Watcher 目标文件轮转监视器
type Watcher struct {
	fs   *fsnotify.Watcher
	dir  string
	name string
	opts options

	// 唯一在多个 goroutine 间真正共享的状态：事件 goroutine 写，drain 循环读并清除
	pending atomic.Bool

	done     chan struct{}
	stopOnce sync.Once
	stopErr  error
}

// New 创建并立即启动监视器。
//
// path 为目标文件路径，文件本身可以暂不存在，但父目录必须存在。
// 任何启动失败都返回包装 [ErrWatchFailed] 的错误。
func New(path string, opts ...Option) (*Watcher, error) {
	dir, name, err := xfile.SplitTarget(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWatchFailed, err)
	}

	var o options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWatchFailed, err)
	}
	if err := fsw.Add(dir); err != nil {
		closeErr := fsw.Close()
		return nil, errors.Join(
			fmt.Errorf("%w: watch directory %s: %w", ErrWatchFailed, dir, err),
			closeErr,
		)
	}

	w := &Watcher{
		fs:   fsw,
		dir:  dir,
		name: name,
		opts: o,
		done: make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Dir 返回被监视的目录。
func (w *Watcher) Dir() string { return w.dir }

// Name 返回被过滤的目标文件名。
func (w *Watcher) Name() string { return w.name }

// Pending 报告是否有未消费的重开请求。
func (w *Watcher) Pending() bool {
	return w.pending.Load()
}

// Take 原子地读取并清除重开标记，返回清除前的值。
func (w *Watcher) Take() bool {
	return w.pending.Swap(false)
}

// Raise 手动置位重开标记。
//
// 消费方在重开失败时调用，保证下一轮继续尝试。
func (w *Watcher) Raise() {
	w.pending.Store(true)
}

// Stop 停止监视并释放 inotify/kqueue 等系统资源。
//
// 幂等，返回后事件 goroutine 已退出，不会再调用 notify/onError。
func (w *Watcher) Stop() error {
	w.stopOnce.Do(func() {
		w.stopErr = w.fs.Close()
		<-w.done
	})
	return w.stopErr
}

func (w *Watcher) run() {
	defer close(w.done)

	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.report(fmt.Errorf("%w: %w", ErrEventQueue, err))
		}
	}
}

// handleEvent 只关心目标文件名上的 Create / Rename。
//
// Rename 在 Linux 上对应“旧名被移走”，Create 对应新文件出现或其他文件被 rename 到目标名。
func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Base(event.Name) != w.name {
		return
	}
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}

	w.pending.Store(true)
	if w.opts.notify != nil {
		w.opts.notify()
	}
}

func (w *Watcher) report(err error) {
	if w.opts.onError == nil {
		return
	}
	defer func() { _ = recover() }() // 回调 panic 不影响监视
	w.opts.onError(err)
}
