// Package xwatch 监视单个目标文件是否被外部工具替换（轮转）。
//
// [Watcher] 订阅目标文件所在目录（而不是文件本身），因为 logrotate 等工具
// 通过 rename + create 替换文件，直接监视文件会在 rename 后丢失后续事件。
// 目标文件名上的 Create 或 Rename 事件会把一个粘滞的“需要重开”标记置为 true。
//
// 标记是电平信号而不是事件队列：在消费之前发生的多次事件只会合并为一次重开。
// 消费方（xsink 的 drain 循环）通过 [Watcher.Take] 原子地读取并清除标记。
//
// # 生命周期
//
//	w, err := xwatch.New("/var/log/app.log",
//	    xwatch.WithNotify(func() { wake() }),
//	)
//	if err != nil {
//	    return err
//	}
//	defer w.Stop()
//
//	if w.Take() {
//	    reopen()
//	}
//
// Stop 幂等；返回后不再有回调执行。
package xwatch
