package xfile

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{name: "绝对路径", input: "/var/log/app.log", want: "/var/log/app.log"},
		{name: "相对路径", input: "logs/app.log", want: "logs/app.log"},
		{name: "文件名包含双点", input: "app..2024.log", want: "app..2024.log"},
		{name: "单点段被规范化", input: "/var/./log/./app.log", want: "/var/log/app.log"},
		{name: "重复斜杠", input: "/var//log///app.log", want: "/var/log/app.log"},
		{name: "绝对路径中的双点被解析", input: "/var/log/../tmp/app.log", want: "/var/tmp/app.log"},
		{name: "空路径", input: "", wantErr: ErrEmptyPath},
		{name: "空字节", input: "/var/log/a\x00.log", wantErr: ErrNullByte},
		{name: "目录路径", input: "/var/log/", wantErr: ErrInvalidPath},
		{name: "Windows 风格目录路径", input: "logs\\", wantErr: ErrInvalidPath},
		{name: "上级相对路径", input: "../logs/app.log", want: "../logs/app.log"},
		{name: "上级相对路径被规范化", input: "logs/../../shared/./app.log", want: "../shared/app.log"},
		{name: "仅双点", input: "..", wantErr: ErrInvalidPath},
		{name: "仅根目录", input: "/", wantErr: ErrInvalidPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SanitizePath(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, filepath.FromSlash(tt.want), got)
		})
	}
}

func TestSplitTarget(t *testing.T) {
	dir, name, err := SplitTarget("/var/log/app/service.log")
	require.NoError(t, err)
	assert.Equal(t, filepath.FromSlash("/var/log/app"), dir)
	assert.Equal(t, "service.log", name)

	dir, name, err = SplitTarget("service.log")
	require.NoError(t, err)
	assert.Equal(t, ".", dir)
	assert.Equal(t, "service.log", name)

	dir, name, err = SplitTarget("../logs/service.log")
	require.NoError(t, err)
	assert.Equal(t, filepath.FromSlash("../logs"), dir)
	assert.Equal(t, "service.log", name)

	_, _, err = SplitTarget("logs/")
	assert.ErrorIs(t, err, ErrInvalidPath)
}

func TestEnsureDir(t *testing.T) {
	base := t.TempDir()
	target := filepath.Join(base, "a", "b", "app.log")

	require.NoError(t, EnsureDir(target))
	assert.DirExists(t, filepath.Join(base, "a", "b"))

	// 幂等
	require.NoError(t, EnsureDir(target))
}

func TestEnsureDirWithPerm_Errors(t *testing.T) {
	assert.ErrorIs(t, EnsureDirWithPerm("", DefaultDirPerm), ErrEmptyPath)
	assert.ErrorIs(t, EnsureDirWithPerm("a\x00/b.log", DefaultDirPerm), ErrNullByte)
	assert.ErrorIs(t, EnsureDirWithPerm(filepath.Join(t.TempDir(), "x", "b.log"), 0640), ErrInvalidPerm)

	// 当前目录下的文件无需创建目录
	assert.NoError(t, EnsureDirWithPerm("app.log", DefaultDirPerm))
}
