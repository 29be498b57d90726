package xretry

import (
	"errors"

	retry "github.com/avast/retry-go/v5"
)

var (
	// ErrNilContext 表示传入了 nil context。
	ErrNilContext = errors.New("xretry: nil context")

	// ErrNilFunc 表示传入了 nil 函数。
	ErrNilFunc = errors.New("xretry: nil function")
)

var (
	// Unrecoverable 将错误标记为不可恢复，[Do] 遇到后立即返回。
	Unrecoverable = retry.Unrecoverable

	// IsRecoverable 判断错误是否可恢复。
	IsRecoverable = retry.IsRecoverable
)
