// Package xrun 提供基于 errgroup + context 的进程生命周期管理。
//
// 任一服务返回错误、父 context 取消或收到终止信号时，共享的 context 被取消，
// 所有服务监听 ctx.Done() 退出。对 xsink 这类由 context 驱动关闭的组件，
// 信号就是它们的取消信号。
//
//	err := xrun.Run(ctx, nil,
//	    readStdin,                  // EOF 时返回 nil
//	    xrun.Drained(q, 5*time.Second), // 取消后等待 q 排空
//	)
//	if errors.Is(err, xrun.ErrSignal) {
//	    // 信号退出
//	}
//
// Group 可单独使用：
//
//	g, ctx := xrun.NewGroup(ctx, xrun.WithName("pipe"))
//	g.GoWithName("reader", read)
//	err := g.Wait()
//
// # 退出原因
//
// Wait 过滤普通的 context.Canceled，但保留 Cancel(cause) 设置的原因，
// 信号退出时返回 *[SignalError]，可用 errors.Is(err, ErrSignal) 判断。
package xrun
