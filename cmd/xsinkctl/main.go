// xsinkctl 是 xsink 的命令行工具。
//
// 用法:
//
//	xsinkctl [全局选项] <命令> [命令参数]
//
// 命令:
//
//	pipe      把标准输入逐行追加到目标文件，目标文件被轮转后自动重开
//	rotate    轮转一个正在被写入的文件（重命名为备份并创建空文件）
//	version   显示版本信息
//
// 退出码:
//
//	0: 成功（pipe 因 SIGINT/SIGTERM 退出且排空完成也视为成功）
//	1: 执行失败
//	2: 参数错误
//
// 示例:
//
//	app | xsinkctl pipe -f /var/log/app.log
//	app | xsinkctl pipe -c /etc/app/sink.yaml
//	xsinkctl rotate -f /var/log/app.log --max-backups 5
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
)

// 版本信息，可通过 -ldflags 注入：
//
//	go build -ldflags "-X main.Version=1.0.0 -X main.GitCommit=$(git rev-parse --short HEAD)"
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

func main() {
	os.Exit(run(context.Background(), os.Args, os.Stdin, os.Stdout, os.Stderr))
}

// usageError 参数错误，退出码 2。
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }

func (e *usageError) Unwrap() error { return e.err }

func newUsageError(format string, args ...any) error {
	return &usageError{err: fmt.Errorf(format, args...)}
}

// onUsageError 把 urfave/cli 的 flag 解析错误和必需 flag 缺失转换为 usageError。
// 每个命令都要设置：urfave/cli 只调用出错命令自己的 OnUsageError。
func onUsageError(_ context.Context, _ *cli.Command, err error, _ bool) error {
	return &usageError{err: err}
}

// app 持有命令的输入输出，便于测试替换。
type app struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer
}

func (a *app) command() *cli.Command {
	return &cli.Command{
		Name:      "xsinkctl",
		Usage:     "轮转安全的追加写日志工具",
		Version:   fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildTime),
		Reader:    a.in,
		Writer:    a.out,
		ErrWriter: a.errOut,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "输出调试级别的诊断日志",
			},
		},
		OnUsageError: onUsageError,
		Commands: []*cli.Command{
			a.pipeCommand(),
			a.rotateCommand(),
			a.versionCommand(),
		},
		// 不让 urfave/cli 直接 os.Exit，错误输出和退出码由 run 统一处理
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
	}
}

func run(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) int {
	a := &app{in: in, out: out, errOut: errOut}
	err := a.command().Run(ctx, args)
	if err == nil {
		return 0
	}

	if isUsageError(err) {
		fmt.Fprintf(errOut, "参数错误: %v\n", err)
		return 2
	}
	fmt.Fprintf(errOut, "错误: %v\n", err)
	return 1
}

// isUsageError 报告 err 是否应以退出码 2 结束。
//
// 命令本身从不返回 cli.ExitCoder，出现时只可能来自 urfave/cli 的帮助命令（主题不存在）。
func isUsageError(err error) bool {
	var usageErr *usageError
	if errors.As(err, &usageErr) {
		return true
	}
	var exitErr cli.ExitCoder
	return errors.As(err, &exitErr)
}
