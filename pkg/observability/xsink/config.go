package xsink

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config 文件配置，字段与 [Option] 一一对应，零值表示使用默认值。
//
// 配合 xconf 使用：
//
//	var cfg xsink.Config
//	if err := conf.Unmarshal("sink", &cfg); err != nil {
//	    return err
//	}
//	opts, err := cfg.Options()
type Config struct {
	// Path 目标文件路径
	Path string `koanf:"path"`

	// BatchSize 批量刷新阈值
	BatchSize int `koanf:"batch_size"`

	// IdleInterval 空闲轮询间隔，如 "100ms"
	IdleInterval time.Duration `koanf:"idle_interval"`

	// BufferSize 写缓冲区大小（字节）
	BufferSize int `koanf:"buffer_size"`

	// FileMode 八进制权限字符串，如 "0640"
	FileMode string `koanf:"file_mode"`

	// OpenAttempts 首次打开尝试次数
	OpenAttempts int `koanf:"open_attempts"`

	// OpenRetryDelay 首次打开重试间隔
	OpenRetryDelay time.Duration `koanf:"open_retry_delay"`

	// ReopenInitialDelay / ReopenMaxDelay 重开失败退避区间
	ReopenInitialDelay time.Duration `koanf:"reopen_initial_delay"`
	ReopenMaxDelay     time.Duration `koanf:"reopen_max_delay"`

	// IdentityCheck 是否在空闲时比对文件身份，未设置时使用默认值（开启）
	IdentityCheck *bool `koanf:"identity_check"`
}

// Options 将非零字段转换为 Option 列表。
func (c Config) Options() ([]Option, error) {
	var opts []Option

	if c.BatchSize != 0 {
		opts = append(opts, WithBatchSize(c.BatchSize))
	}
	if c.IdleInterval != 0 {
		opts = append(opts, WithIdleInterval(c.IdleInterval))
	}
	if c.BufferSize != 0 {
		opts = append(opts, WithBufferSize(c.BufferSize))
	}
	if c.FileMode != "" {
		mode, err := strconv.ParseUint(c.FileMode, 8, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: file mode %q: %w", ErrInvalidConfig, c.FileMode, err)
		}
		opts = append(opts, WithFileMode(os.FileMode(mode)))
	}
	if c.OpenAttempts != 0 || c.OpenRetryDelay != 0 {
		delay := c.OpenRetryDelay
		if delay == 0 {
			delay = 10 * time.Millisecond
		}
		opts = append(opts, WithOpenRetry(c.OpenAttempts, delay))
	}
	if c.ReopenInitialDelay != 0 || c.ReopenMaxDelay != 0 {
		initial, maxDelay := c.ReopenInitialDelay, c.ReopenMaxDelay
		if initial == 0 {
			initial = DefaultReopenInitialDelay
		}
		if maxDelay == 0 {
			maxDelay = max(DefaultReopenMaxDelay, initial)
		}
		opts = append(opts, WithReopenBackoff(initial, maxDelay))
	}
	if c.IdentityCheck != nil {
		opts = append(opts, WithIdentityCheck(*c.IdentityCheck))
	}
	return opts, nil
}
