package xsink

import (
	"fmt"
	"log/slog"
	"time"
)

// run drain 循环，全程只有这一个 goroutine 访问句柄和计数器。
func (q *Queue) run() {
	defer close(q.done)
	defer q.shutdown()

	for q.ctx.Err() == nil {
		now := time.Now()
		q.maybeReopen(now)

		// 损坏的句柄每次写入都会失败，退避期内不再尝试
		if q.h.broken && now.Before(q.nextReopen) {
			q.pause()
			continue
		}

		record, ok := q.peek()
		if !ok {
			q.flush()
			q.checkIdentity()
			q.sleep()
			continue
		}

		if err := q.writeOne(record); err != nil {
			// 记录留在队首，等重开
			q.pause()
		}
	}
}

// writeOne 写入队首记录，成功后出队；满批量时刷新。
func (q *Queue) writeOne(record string) error {
	if err := q.h.write(record); err != nil {
		q.report("write", err)
		q.watcher.Raise()
		return err
	}
	q.pop()
	q.stats.written.Add(1)
	q.metrics.add(q.metrics.written, 1)

	q.unflushed++
	if q.unflushed >= q.opts.batchSize {
		q.flush()
	}
	return nil
}

func (q *Queue) flush() {
	if q.unflushed == 0 && q.h.w.Buffered() == 0 {
		return
	}
	q.unflushed = 0
	if err := q.h.flush(); err != nil {
		q.report("flush", err)
		q.watcher.Raise()
		return
	}
	q.stats.flushes.Add(1)
	q.metrics.add(q.metrics.flushes, 1)
}

// sleep 最多等待一个空闲周期，取消、入队、轮转事件都会提前唤醒。
func (q *Queue) sleep() {
	timer := time.NewTimer(q.opts.idleInterval)
	defer timer.Stop()

	select {
	case <-q.ctx.Done():
	case <-q.wake:
	case <-timer.C:
	}
}

// pause 等待一个空闲周期，只有取消能提前唤醒。
//
// 写入失败后使用：入队唤醒会让每条新记录都触发一次失败的写入。
func (q *Queue) pause() {
	timer := time.NewTimer(q.opts.idleInterval)
	defer timer.Stop()

	select {
	case <-q.ctx.Done():
	case <-timer.C:
	}
}

// maybeReopen 消费轮转标记。失败时保留旧句柄，重新置位标记并按指数退避推迟下次尝试。
func (q *Queue) maybeReopen(now time.Time) {
	if !q.watcher.Pending() || now.Before(q.nextReopen) {
		return
	}
	if !q.watcher.Take() {
		return
	}

	if err := q.reopen(); err != nil {
		q.watcher.Raise()
		q.reopenFailures++
		delay := q.backoff.NextDelay(q.reopenFailures)
		q.nextReopen = now.Add(delay)
		q.report("reopen", err)
		q.opts.logger.Warn("xsink: reopen deferred",
			slog.String("path", q.path),
			slog.Int("failures", q.reopenFailures),
			slog.Duration("retry_in", delay),
		)
		return
	}
	q.reopenFailures = 0
	q.nextReopen = time.Time{}
}

// reopen 先打开新句柄，成功后才退役旧句柄（刷新并关闭）。
//
// 路径仍指向当前文件且句柄完好时不重开：我们自己在轮转后创建文件也会产生 Create 事件。
func (q *Queue) reopen() error {
	if q.opts.identityCheck && !q.h.broken {
		if same, err := q.h.sameAs(q.path); err == nil && same {
			return nil
		}
	}

	nh, err := openHandle(q.path, q.opts.fileMode, q.opts.bufferSize)
	if err != nil {
		return err
	}

	old := q.h
	q.h = nh
	q.unflushed = 0
	if err := old.close(); err != nil {
		q.report("close", err)
	}

	q.stats.reopens.Add(1)
	q.metrics.add(q.metrics.reopens, 1)
	q.opts.logger.Info("xsink: reopened after rotation", slog.String("path", q.path))
	return nil
}

// checkIdentity 空闲时兜底检查：文件被删除或替换而没有收到事件时置位标记。
func (q *Queue) checkIdentity() {
	if !q.opts.identityCheck || q.watcher.Pending() {
		return
	}
	same, err := q.h.sameAs(q.path)
	if err != nil {
		q.report("stat", err)
		return
	}
	if !same {
		q.watcher.Raise()
		q.signal()
	}
}

// shutdown 最终排空：拒绝后续入队，写完剩余记录，刷新、关闭句柄，停止监视。
//
// 通过 defer 释放句柄和监视器，drain 循环 panic 时也不会泄漏。
func (q *Queue) shutdown() {
	rest := q.closeAndTakeAll()

	defer func() {
		if err := q.metrics.unregister(); err != nil {
			q.opts.logger.Warn("xsink: unregister metrics", slog.Any("error", err))
		}
	}()
	defer func() {
		if err := q.watcher.Stop(); err != nil {
			q.report("watch", err)
		}
	}()
	defer func() {
		if err := q.h.close(); err != nil {
			q.report("close", err)
		}
	}()

	if q.watcher.Take() || q.h.broken {
		if err := q.reopen(); err != nil {
			q.report("reopen", err)
		}
	}

	var dropped int
	for _, record := range rest {
		if err := q.h.write(record); err != nil {
			dropped++
			continue
		}
		q.stats.written.Add(1)
		q.metrics.add(q.metrics.written, 1)
	}
	if dropped > 0 {
		q.report("write", fmt.Errorf("%d records not written during shutdown", dropped))
	}

	q.opts.logger.Debug("xsink: stopped",
		slog.String("path", q.path),
		slog.Int("drained", len(rest)-dropped),
	)
}

// report 记录后台错误：计数、诊断日志、回调。永远不会把错误交还给生产者。
func (q *Queue) report(op string, err error) {
	err = fmt.Errorf("%w: %s %s: %w", ErrTransientIO, op, q.path, err)

	q.stats.errors.Add(1)
	q.metrics.addError(op)
	q.opts.logger.Error("xsink: background io error",
		slog.String("op", op),
		slog.String("path", q.path),
		slog.Any("error", err),
	)

	if q.opts.onError != nil {
		defer func() { _ = recover() }() // 回调 panic 不影响 drain 循环
		q.opts.onError(err)
	}
}
