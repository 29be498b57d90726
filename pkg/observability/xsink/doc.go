// Package xsink 提供异步、可感知轮转的追加写日志落盘队列。
//
// 调用方从任意 goroutine 推入已经格式化好的文本记录；单个后台 goroutine
// 按 FIFO 顺序写入目标文件，周期性刷新，并在外部工具（如 logrotate）
// 重命名或重建目标文件后透明地重开句柄。
//
// # 基本用法
//
//	ctx, cancel := context.WithCancel(context.Background())
//	q, err := xsink.New(ctx, "/var/log/app/app.log")
//	if err != nil {
//	    return err // 包装 xsink.ErrInit
//	}
//
//	_ = q.Enqueue("hello\n")
//
//	cancel()  // 停止接受新记录
//	q.Wait()  // 取消前接受的记录全部写入并刷新后返回
//
// # drain 循环
//
// 每一轮依次：
//
//  1. 若轮转标记已置位且不在退避期内：先打开新句柄，成功后刷新并关闭旧句柄。
//     打开失败时继续使用旧句柄，按指数退避（默认 100ms ~ 5s）稍后重试。
//  2. 队列非空：写入一条记录；连续写满 BatchSize（默认 50）条时刷新。
//  3. 队列为空：立即刷新，然后最多等待 IdleInterval（默认 100ms），
//     入队、轮转事件和取消都会提前唤醒。
//
// 写入、刷新、重开的错误包装 [ErrTransientIO]，写入诊断日志并交给 OnError 回调，
// 循环继续运行。写入失败的记录保留在队首，句柄重开后重试。
//
// # 关闭
//
// 没有 Close 方法，关闭由 New 传入的 context 驱动。取消后：
//
//   - Enqueue 返回 [ErrCancelled]
//   - 已接受的记录全部写入，刷新并关闭文件，停止目录监视
//   - [Queue.Done] 关闭
//
// # 轮转
//
// 轮转检测由 xwatch 完成：目标文件名上的 Create/Rename 事件置位一个电平标记，
// 多次事件合并为一次重开。默认还会在空闲周期比对路径与已打开文件的身份，
// 兜住丢失的事件。轮转前写入但尚未刷新的记录在旧句柄关闭时刷入旧文件，
// 之后的记录进入新文件，不会重复也不会丢失。
//
// # 并发安全
//
// Enqueue、Len、Stats、Done、Wait 可并发调用。队列无界，没有背压。
package xsink
