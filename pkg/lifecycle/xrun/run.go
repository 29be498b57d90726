package xrun

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"time"
)

// Run 运行服务直到全部退出，期间把终止信号转换为取消。
//
// 收到信号时以 *[SignalError] 取消 Group，Run 返回该错误；
// 所有服务正常返回 nil 时 Run 返回 nil，信号监听随之结束。
func Run(ctx context.Context, opts []Option, services ...func(ctx context.Context) error) error {
	g, _ := NewGroup(ctx, opts...)

	var wg sync.WaitGroup
	for _, svc := range services {
		wg.Add(1)
		g.Go(func(ctx context.Context) error {
			defer wg.Done()
			if svc == nil {
				return ErrNilFunc
			}
			return svc(ctx)
		})
	}

	if !g.opts.noSignalHandler {
		stop := make(chan struct{})
		go func() {
			wg.Wait()
			close(stop)
		}()
		g.Go(func(ctx context.Context) error {
			return g.watchSignals(ctx, stop)
		})
	}
	return g.Wait()
}

// watchSignals 等待信号、取消或全部服务结束。
func (g *Group) watchSignals(ctx context.Context, stop <-chan struct{}) error {
	signals := g.opts.signals
	if len(signals) == 0 {
		signals = DefaultSignals()
	}
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, signals...)
	defer signal.Stop(sigCh)

	var sig os.Signal
	select {
	case sig = <-g.opts.sigChan:
	case sig = <-sigCh:
	case <-ctx.Done():
		return nil
	case <-stop:
		return nil
	}

	g.opts.logger.Info("received signal",
		slog.String("group", g.opts.name),
		slog.String("signal", sig.String()),
	)
	g.cancel(&SignalError{Signal: sig})
	return nil
}

// Drainer 由 context 驱动关闭、完成后关闭 Done 通道的组件，如 xsink.Queue。
type Drainer interface {
	Done() <-chan struct{}
}

// Drained 返回一个服务：ctx 取消后等待 d 完成排空。
//
// timeout <= 0 表示无限等待；超时返回 [ErrDrainTimeout]。
// d 先于取消自行结束时服务直接返回 nil。
func Drained(d Drainer, timeout time.Duration) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if d == nil {
			return ErrNilFunc
		}
		select {
		case <-d.Done():
			return nil
		case <-ctx.Done():
		}

		var deadline <-chan time.Time
		if timeout > 0 {
			timer := time.NewTimer(timeout)
			defer timer.Stop()
			deadline = timer.C
		}
		select {
		case <-d.Done():
			return nil
		case <-deadline:
			return ErrDrainTimeout
		}
	}
}
