package xconf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// Format 配置格式。
type Format string

// 支持的配置格式。
const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// Config 已加载的配置快照，加载后只读，可并发使用。
type Config struct {
	k      *koanf.Koanf
	path   string
	format Format
	tag    string
}

// Load 读取并解析配置文件，格式由扩展名决定。空文件得到空配置。
func Load(path string, opts ...Option) (*Config, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}

	c, err := LoadBytes(data, format, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	c.path = path
	return c, nil
}

// LoadBytes 解析内存中的配置数据，需显式指定格式。
func LoadBytes(data []byte, format Format, opts ...Option) (*Config, error) {
	parser, err := parserFor(format)
	if err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}

	k := koanf.New(o.delim)
	if len(data) > 0 {
		if err := k.Load(rawbytes.Provider(data), parser); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrParseFailed, err)
		}
	}
	return &Config{k: k, format: format, tag: o.tag}, nil
}

// Unmarshal 将 key 下的配置解码到 target，key 为空时解码整个配置。
// key 不存在时 target 保持原值。
func (c *Config) Unmarshal(key string, target any) error {
	if err := c.k.UnmarshalWithConf(key, target, koanf.UnmarshalConf{Tag: c.tag}); err != nil {
		return fmt.Errorf("%w: %q: %w", ErrUnmarshalFailed, key, err)
	}
	return nil
}

// Exists 报告 key 是否存在。
func (c *Config) Exists(key string) bool {
	return c.k.Exists(key)
}

// Keys 返回全部叶子键，按字典序排列。
func (c *Config) Keys() []string {
	return c.k.Keys()
}

// Path 返回配置文件路径，LoadBytes 创建的配置返回空字符串。
func (c *Config) Path() string {
	return c.path
}

// Format 返回配置格式。
func (c *Config) Format() Format {
	return c.format
}

// DetectFormat 根据扩展名判断配置格式。
func DetectFormat(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: unknown extension %q", ErrUnsupportedFormat, ext)
	}
}

func parserFor(format Format) (koanf.Parser, error) {
	switch format {
	case FormatYAML:
		return yaml.Parser(), nil
	case FormatJSON:
		return json.Parser(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}
