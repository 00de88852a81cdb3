package configutils

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockConfigMerger struct {
	err error
}

func (m *mockConfigMerger) MergeConfig(in io.Reader) error {
	return m.err
}

type mockFlagSet struct {
	value     string
	boolValue bool
	err       error
}

func (m *mockFlagSet) GetString(f string) (string, error) {
	return m.value, m.err
}

func (m *mockFlagSet) GetBool(f string) (bool, error) {
	return m.boolValue, m.err
}

func withGlobalDir(t *testing.T, dir string) {
	t.Helper()
	old := getGlobalConfigDir
	getGlobalConfigDir = func() (string, error) { return dir, nil }
	t.Cleanup(func() { getGlobalConfigDir = old })
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func Test_mergeConfig(t *testing.T) {
	t.Run("returns nil when merge succeeds", func(t *testing.T) {
		err := mergeConfig(nil, &mockConfigMerger{nil})
		assert.Equal(t, nil, err)
	})

	t.Run("returns error when merge fails", func(t *testing.T) {
		vErr := errors.New("mergeFailed")
		err := mergeConfig(nil, &mockConfigMerger{vErr})
		assert.EqualError(t, err, vErr.Error())
	})
}

func Test_fileExists(t *testing.T) {
	t.Run("returns nil if file exists", func(t *testing.T) {
		err := fileExists("", MockFS{MockFileInfo{false}, nil})
		assert.Equal(t, nil, err)
	})

	t.Run("returns error if file does not exists", func(t *testing.T) {
		vErr := errors.New("file does not exist")
		err := fileExists("", MockFS{MockFileInfo{}, vErr})
		assert.EqualError(t, err, vErr.Error())
	})

	t.Run("returns error if file is a directory", func(t *testing.T) {
		err := fileExists("", MockFS{MockFileInfo{true}, nil})
		assert.EqualError(t, err, ErrConfigFileIsDir.Error())
	})
}

func Test_loadFile(t *testing.T) {
	t.Run("fails if file cannot be opened", func(t *testing.T) {
		vErr := errors.New("file err")
		f, err := loadFile("", MockFS{MockFileInfo{}, vErr})
		assert.Nil(t, f)
		assert.EqualError(t, err, vErr.Error())
	})
}

func TestLoadConfigForPath(t *testing.T) {
	t.Run("defaults without any file", func(t *testing.T) {
		withGlobalDir(t, t.TempDir())
		t.Setenv("GITHUB_TOKEN", "")
		t.Setenv("FOLLOWBACK_GITHUB_TOKEN", "")

		v, err := LoadConfigForPath(t.TempDir(), "")
		require.NoError(t, err)

		s, err := SettingsFrom(v)
		require.NoError(t, err)
		assert.Equal(t, "", s.Token)
		assert.Equal(t, "https://api.github.com", s.BaseURL)
		assert.Equal(t, 30*time.Second, s.Timeout)
		assert.Equal(t, 3, s.Retries)
		assert.Equal(t, 15*time.Second, s.Delay)
		assert.Equal(t, 50, s.Cap)
	})

	t.Run("local config overrides global", func(t *testing.T) {
		global := t.TempDir()
		local := t.TempDir()
		withGlobalDir(t, global)
		t.Setenv("GITHUB_TOKEN", "")
		t.Setenv("FOLLOWBACK_GITHUB_TOKEN", "")
		writeFile(t, filepath.Join(global, "config.yaml"), "github:\n  token: global\nbatch:\n  delay: 20s\n")
		writeFile(t, filepath.Join(local, LocalConfigName), "[batch]\ndelay = \"5s\"\n")

		v, err := LoadConfigForPath(local, "")
		require.NoError(t, err)

		s, err := SettingsFrom(v)
		require.NoError(t, err)
		assert.Equal(t, "global", s.Token)
		assert.Equal(t, 5*time.Second, s.Delay)
	})

	t.Run("environment overrides files", func(t *testing.T) {
		global := t.TempDir()
		withGlobalDir(t, global)
		writeFile(t, filepath.Join(global, "config.json"), `{"github":{"token":"from-file"}}`)
		t.Setenv("FOLLOWBACK_GITHUB_TOKEN", "")
		t.Setenv("GITHUB_TOKEN", "from-env")

		v, err := LoadConfigForPath(t.TempDir(), "")
		require.NoError(t, err)
		assert.Equal(t, "from-env", v.GetString(KeyGithubToken))
	})

	t.Run("explicit file", func(t *testing.T) {
		withGlobalDir(t, t.TempDir())
		t.Setenv("GITHUB_TOKEN", "")
		t.Setenv("FOLLOWBACK_GITHUB_TOKEN", "")
		f := filepath.Join(t.TempDir(), "custom.yaml")
		writeFile(t, f, "batch:\n  cap: 10\n")

		v, err := LoadConfigForPath(t.TempDir(), f)
		require.NoError(t, err)
		assert.Equal(t, 10, v.GetInt(KeyBatchCap))
	})

	t.Run("missing explicit file", func(t *testing.T) {
		withGlobalDir(t, t.TempDir())

		_, err := LoadConfigForPath(t.TempDir(), filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("invalid settings", func(t *testing.T) {
		withGlobalDir(t, t.TempDir())
		local := t.TempDir()
		writeFile(t, filepath.Join(local, LocalConfigName), "batch:\n  delay: -1s\n")

		v, err := LoadConfigForPath(local, "")
		require.NoError(t, err)

		_, err = SettingsFrom(v)
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})
}

func TestGetBoolFlagOrDefault(t *testing.T) {
	t.Run("returns default on error", func(t *testing.T) {
		assert.True(t, GetBoolFlagOrDefault(&mockFlagSet{err: errors.New("flag err")}, "", true))
	})

	t.Run("returns value", func(t *testing.T) {
		assert.True(t, GetBoolFlagOrDefault(&mockFlagSet{boolValue: true}, "", false))
	})
}

func TestGetStringFlagOrDefault(t *testing.T) {
	t.Run("returns default on error", func(t *testing.T) {
		assert.Equal(t, "def", GetStringFlagOrDefault(&mockFlagSet{err: errors.New("flag err")}, "", "def"))
	})

	t.Run("returns default on empty", func(t *testing.T) {
		assert.Equal(t, "def", GetStringFlagOrDefault(&mockFlagSet{}, "", "def"))
	})

	t.Run("returns value", func(t *testing.T) {
		assert.Equal(t, "val", GetStringFlagOrDefault(&mockFlagSet{value: "val"}, "", "def"))
	})
}
