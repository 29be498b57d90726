package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/omeyang/xsink/pkg/config/xconf"
	"github.com/omeyang/xsink/pkg/lifecycle/xrun"
	"github.com/omeyang/xsink/pkg/observability/xrotate"
	"github.com/omeyang/xsink/pkg/observability/xsink"
)

const (
	defaultDrainTimeout = 5 * time.Second
	defaultSettle       = 10 * time.Second

	// maxLineSize 单行上限，超出时 pipe 以错误结束
	maxLineSize = 1 << 20

	// configKey 配置文件中 sink 配置所在的键
	configKey = "sink"
)

func (a *app) logger(cmd *cli.Command) *slog.Logger {
	level := slog.LevelInfo
	if cmd.Bool("verbose") {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(a.errOut, &slog.HandlerOptions{Level: level}))
}

func (a *app) pipeCommand() *cli.Command {
	return &cli.Command{
		Name:  "pipe",
		Usage: "把标准输入逐行追加到目标文件",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "目标文件路径（覆盖配置文件中的 sink.path）",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "YAML/JSON 配置文件，读取其中的 sink 段",
			},
			&cli.IntFlag{
				Name:  "batch-size",
				Usage: "连续写入多少行后刷新",
			},
			&cli.DurationFlag{
				Name:  "idle-interval",
				Usage: "空闲轮询间隔",
			},
			&cli.DurationFlag{
				Name:  "drain-timeout",
				Usage: "收到信号后等待排空的最长时间，0 表示一直等待",
				Value: defaultDrainTimeout,
			},
		},
		OnUsageError: onUsageError,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadSinkConfig(cmd.String("config"))
			if err != nil {
				return err
			}
			if cmd.IsSet("file") {
				cfg.Path = cmd.String("file")
			}
			if cmd.IsSet("batch-size") {
				cfg.BatchSize = cmd.Int("batch-size")
			}
			if cmd.IsSet("idle-interval") {
				cfg.IdleInterval = cmd.Duration("idle-interval")
			}
			if cfg.Path == "" {
				return newUsageError("需要 --file 或配置文件中的 %s.path", configKey)
			}

			opts, err := cfg.Options()
			if err != nil {
				return newUsageError("%v", err)
			}
			logger := a.logger(cmd)
			opts = append(opts, xsink.WithLogger(logger))

			n, err := pipe(ctx, a.in, cfg.Path, cmd.Duration("drain-timeout"), logger, opts...)
			if errors.Is(err, xsink.ErrInvalidConfig) {
				return newUsageError("%v", err)
			}
			logger.Debug("pipe finished", slog.String("path", cfg.Path), slog.Int("lines", n))
			return err
		},
	}
}

func loadSinkConfig(path string) (xsink.Config, error) {
	var cfg xsink.Config
	if path == "" {
		return cfg, nil
	}
	c, err := xconf.Load(path)
	if err != nil {
		if errors.Is(err, xconf.ErrUnsupportedFormat) {
			return cfg, newUsageError("%v", err)
		}
		return cfg, err
	}
	if err := c.Unmarshal(configKey, &cfg); err != nil {
		return cfg, newUsageError("%v", err)
	}
	return cfg, nil
}

// pipe 把 in 的每一行作为一条记录写入 path，返回写入的行数。
//
// in 读到 EOF 或收到信号后取消队列并等待排空；信号退出不视为错误。
func pipe(ctx context.Context, in io.Reader, path string, drainTimeout time.Duration,
	logger *slog.Logger, opts ...xsink.Option) (int, error) {
	// 队列只由 stop 关闭：信号先停止读取，再排空
	qctx, stop := context.WithCancel(context.WithoutCancel(ctx))
	defer stop()

	q, err := xsink.New(qctx, path, opts...)
	if err != nil {
		return 0, err
	}

	var lines int
	err = xrun.Run(ctx, []xrun.Option{xrun.WithName("pipe"), xrun.WithLogger(logger)},
		func(ctx context.Context) error {
			defer stop()
			var err error
			lines, err = pump(ctx, in, q)
			return err
		},
		xrun.Drained(q, drainTimeout),
	)
	if errors.Is(err, xrun.ErrSignal) {
		logger.Info("stopped by signal", slog.String("path", path), slog.Any("reason", err))
		return lines, nil
	}
	return lines, err
}

// pump 逐行读取 in 并入队，直到 EOF 或 ctx 取消。
//
// 读取在单独的 goroutine 中进行：阻塞在标准输入上的 Read 无法被取消，
// ctx 取消时 pump 直接返回，读 goroutine 随进程退出。
func pump(ctx context.Context, in io.Reader, q *xsink.Queue) (int, error) {
	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				errc <- nil
				return
			}
		}
		errc <- sc.Err()
	}()

	var n int
	for {
		select {
		case <-ctx.Done():
			return n, nil
		case line, ok := <-lines:
			if !ok {
				if err := <-errc; err != nil {
					return n, fmt.Errorf("read input: %w", err)
				}
				return n, nil
			}
			if err := q.Enqueue(line + "\n"); err != nil {
				return n, err
			}
			n++
		}
	}
}

func (a *app) rotateCommand() *cli.Command {
	return &cli.Command{
		Name:  "rotate",
		Usage: "把文件重命名为带时间戳的备份并在原路径创建空文件",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "file",
				Aliases:  []string{"f"},
				Usage:    "要轮转的文件",
				Required: true,
			},
			&cli.IntFlag{
				Name:  "max-backups",
				Usage: "保留的备份数量，0 表示不按数量清理",
				Value: xrotate.DefaultMaxBackups,
			},
			&cli.IntFlag{
				Name:  "max-age",
				Usage: "保留备份的天数，0 表示不按天数清理",
				Value: xrotate.DefaultMaxAgeDays,
			},
			&cli.BoolFlag{
				Name:  "compress",
				Usage: "gzip 压缩备份",
				Value: xrotate.DefaultCompress,
			},
			&cli.BoolFlag{
				Name:  "local-time",
				Usage: "备份文件名使用本地时间",
			},
			&cli.DurationFlag{
				Name:  "settle",
				Usage: "退出前等待备份压缩完成的最长时间",
				Value: defaultSettle,
			},
		},
		OnUsageError: onUsageError,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path := cmd.String("file")
			r, err := xrotate.NewLumberjack(path,
				xrotate.WithMaxBackups(cmd.Int("max-backups")),
				xrotate.WithMaxAge(cmd.Int("max-age")),
				xrotate.WithCompress(cmd.Bool("compress")),
				xrotate.WithLocalTime(cmd.Bool("local-time")),
			)
			if err != nil {
				return newUsageError("%v", err)
			}
			defer func() { _ = r.Close() }()

			if err := r.Rotate(); err != nil {
				return err
			}
			if cmd.Bool("compress") {
				settleCtx, cancel := context.WithTimeout(ctx, cmd.Duration("settle"))
				defer cancel()
				if err := xrotate.WaitCompressed(settleCtx, path); err != nil {
					a.logger(cmd).Warn("backup compression not finished", slog.String("path", path), slog.Any("error", err))
				}
			}
			fmt.Fprintf(a.out, "rotated %s\n", path)
			return nil
		},
	}
}

func (a *app) versionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "显示版本信息",
		Action: func(context.Context, *cli.Command) error {
			fmt.Fprintf(a.out, "xsinkctl %s\n", Version)
			fmt.Fprintf(a.out, "  commit: %s\n", GitCommit)
			fmt.Fprintf(a.out, "  built:  %s\n", BuildTime)
			fmt.Fprintf(a.out, "  go:     %s\n", runtime.Version())
			return nil
		},
	}
}
