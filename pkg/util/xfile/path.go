package xfile

import (
	"fmt"
	"path/filepath"
	"strings"
)

func containsNullByte(path string) bool {
	return strings.ContainsRune(path, 0)
}

// SanitizePath 校验并规范化目标文件路径。
//
// 规则：
//   - 空路径返回 [ErrEmptyPath]
//   - 含空字节返回 [ErrNullByte]
//   - 以 "/" 或 "\" 结尾（目录）返回 [ErrInvalidPath]
//   - 规范化后没有文件名（如 ".."、"logs/.."）返回 [ErrInvalidPath]
//
// 路径由调用方决定，相对路径（包括 "../logs/app.log"）只做 filepath.Clean，
// "/var/log/../tmp/a.log" 会被规范化为 "/var/tmp/a.log"。
func SanitizePath(filename string) (string, error) {
	if filename == "" {
		return "", fmt.Errorf("filename is required: %w", ErrEmptyPath)
	}
	if containsNullByte(filename) {
		return "", fmt.Errorf("filename contains null byte: %w", ErrNullByte)
	}
	// Clean 会去掉尾部分隔符，必须先检查
	if strings.HasSuffix(filename, "/") || strings.HasSuffix(filename, "\\") {
		return "", fmt.Errorf("path %q is a directory: %w", filename, ErrInvalidPath)
	}

	cleaned := filepath.Clean(filename)

	base := filepath.Base(cleaned)
	if base == "." || base == ".." || base == string(filepath.Separator) {
		return "", fmt.Errorf("no file name in %q: %w", filename, ErrInvalidPath)
	}
	return cleaned, nil
}

// SplitTarget 将目标文件路径拆分为父目录和文件名。
//
// 路径先经过 [SanitizePath] 校验。相对路径的父目录为 "."。
// 目录监视器只能订阅目录，文件名用于过滤事件。
func SplitTarget(filename string) (dir, name string, err error) {
	cleaned, err := SanitizePath(filename)
	if err != nil {
		return "", "", err
	}
	return filepath.Dir(cleaned), filepath.Base(cleaned), nil
}
