package xconf

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sinkSection struct {
	Path          string        `koanf:"path"`
	BatchSize     int           `koanf:"batch_size"`
	IdleInterval  time.Duration `koanf:"idle_interval"`
	FileMode      string        `koanf:"file_mode"`
	IdentityCheck *bool         `koanf:"identity_check"`
}

const yamlDoc = `
sink:
  path: /var/log/app.log
  batch_size: 20
  idle_interval: 250ms
  file_mode: "0600"
  identity_check: false
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "sink.yaml", yamlDoc)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, cfg.Path())
	assert.Equal(t, FormatYAML, cfg.Format())
	assert.True(t, cfg.Exists("sink.batch_size"))
	assert.False(t, cfg.Exists("sink.missing"))

	var s sinkSection
	require.NoError(t, cfg.Unmarshal("sink", &s))
	assert.Equal(t, "/var/log/app.log", s.Path)
	assert.Equal(t, 20, s.BatchSize)
	assert.Equal(t, 250*time.Millisecond, s.IdleInterval)
	assert.Equal(t, "0600", s.FileMode)
	require.NotNil(t, s.IdentityCheck)
	assert.False(t, *s.IdentityCheck)
}

func TestLoad_JSON(t *testing.T) {
	path := writeFile(t, "sink.json", `{"sink": {"path": "a.log", "batch_size": "7"}}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	var s sinkSection
	require.NoError(t, cfg.Unmarshal("sink", &s))
	assert.Equal(t, "a.log", s.Path)
	assert.Equal(t, 7, s.BatchSize, "弱类型转换")
	assert.Nil(t, s.IdentityCheck)
	assert.Equal(t, []string{"sink.batch_size", "sink.path"}, cfg.Keys())
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load("")
	assert.ErrorIs(t, err, ErrEmptyPath)

	_, err = Load("sink.toml")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, ErrLoadFailed)

	_, err = Load(writeFile(t, "bad.json", `{"sink": `))
	assert.ErrorIs(t, err, ErrParseFailed)
}

func TestLoad_EmptyFile(t *testing.T) {
	cfg, err := Load(writeFile(t, "empty.yml", ""))
	require.NoError(t, err)

	s := sinkSection{BatchSize: 50}
	require.NoError(t, cfg.Unmarshal("sink", &s))
	assert.Equal(t, 50, s.BatchSize)
	assert.Empty(t, cfg.Keys())
}

func TestLoadBytes(t *testing.T) {
	cfg, err := LoadBytes([]byte(yamlDoc), FormatYAML)
	require.NoError(t, err)
	assert.Empty(t, cfg.Path())

	var s sinkSection
	require.NoError(t, cfg.Unmarshal("sink", &s))
	assert.Equal(t, 20, s.BatchSize)

	_, err = LoadBytes([]byte(yamlDoc), Format("toml"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestUnmarshal_TypeMismatch(t *testing.T) {
	cfg, err := LoadBytes([]byte("sink:\n  batch_size: lots\n"), FormatYAML)
	require.NoError(t, err)

	var s sinkSection
	assert.ErrorIs(t, cfg.Unmarshal("sink", &s), ErrUnmarshalFailed)
}

func TestOptions(t *testing.T) {
	type section struct {
		Size int `json:"size"`
	}
	cfg, err := LoadBytes([]byte(`{"a": {"b": {"size": 3}}}`), FormatJSON,
		WithDelim("/"), WithTag("json"), WithDelim(""), nil)
	require.NoError(t, err)

	assert.True(t, cfg.Exists("a/b/size"))
	var s section
	require.NoError(t, cfg.Unmarshal("a/b", &s))
	assert.Equal(t, 3, s.Size)
}

func TestDetectFormat(t *testing.T) {
	tests := map[string]Format{
		"a.yaml": FormatYAML,
		"a.YML":  FormatYAML,
		"a.json": FormatJSON,
	}
	for path, want := range tests {
		got, err := DetectFormat(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}
	_, err := DetectFormat("noext")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
