package xrotate

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const settlePollInterval = 20 * time.Millisecond

// WaitCompressed 等待 filename 的全部备份压缩完成。
//
// lumberjack 在后台 goroutine 中压缩备份，短生命周期的进程（如命令行工具）
// 在 Rotate 后立即退出会留下未压缩的备份。ctx 到期时返回 ctx.Err()。
func WaitCompressed(ctx context.Context, filename string) error {
	dir := filepath.Dir(filename)
	base := filepath.Base(filename)
	ext := filepath.Ext(base)
	prefix := strings.TrimSuffix(base, ext) + "-"

	ticker := time.NewTicker(settlePollInterval)
	defer ticker.Stop()
	for {
		pending, err := uncompressedBackups(dir, base, prefix, ext)
		if err != nil {
			return err
		}
		if pending == 0 {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func uncompressedBackups(dir, base, prefix, ext string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, err
	}
	var n int
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || name == base {
			continue
		}
		if strings.HasPrefix(name, prefix) && strings.HasSuffix(name, ext) {
			n++
		}
	}
	return n, nil
}
