package configutils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const (
	AppName         = "followback"
	LocalConfigName = ".followbackcfg"

	KeyGithubToken   = "github.token"
	KeyGithubURL     = "github.url"
	KeyGithubTimeout = "github.timeout"
	KeyGithubRetries = "github.retries"
	KeyBatchDelay    = "batch.delay"
	KeyBatchCap      = "batch.cap"
	KeyLogLevel      = "log.level"
)

var (
	ErrHomeDirNotFound = errors.New("unable to determine the home directory")
	ErrConfigFileIsDir = errors.New("configuration file is a directory")
	ErrInvalidConfig   = errors.New("invalid configuration")
)

var filetypes = []string{"yaml", "json", "toml"}

type FlagSet interface {
	GetString(string) (string, error)
	GetBool(string) (bool, error)
}

// Settings is the resolved configuration every command runs with.
type Settings struct {
	Token    string
	BaseURL  string
	Timeout  time.Duration
	Retries  int
	Delay    time.Duration
	Cap      int
	LogLevel string
}

var loadConfig = func(filename string, v *viper.Viper) error {
	f, err := loadFile(filename, OS{})
	if err != nil {
		return err
	}
	defer f.Close()

	return mergeConfig(f, v)
}

var getGlobalConfigDir = func() (string, error) {
	return homedir.Expand(filepath.Join("~", ".config", AppName))
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyGithubURL, "https://api.github.com")
	v.SetDefault(KeyGithubTimeout, 30*time.Second)
	v.SetDefault(KeyGithubRetries, 3)
	v.SetDefault(KeyBatchDelay, 15*time.Second)
	v.SetDefault(KeyBatchCap, 50)
	v.SetDefault(KeyLogLevel, "warn")
}

func bindEnv(v *viper.Viper) error {
	v.SetEnvPrefix(strings.ToUpper(AppName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return errors.Wrap(
		v.BindEnv(KeyGithubToken, "FOLLOWBACK_GITHUB_TOKEN", "GITHUB_TOKEN"),
		"could not bind environment",
	)
}

// mergeAnyType tries every supported file type for filename. A missing file
// is not an error.
func mergeAnyType(v *viper.Viper, filename string) error {
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	var err error
	for _, ft := range filetypes {
		v.SetConfigType(ft)
		err = loadConfig(filename, v)
		if err == nil {
			log.Debug().Str("file", filename).Str("type", ft).Msg("config loaded")
			return nil
		}
		log.Debug().
			Msgf("config loading failed for type %s, skipping to next filetype", ft)
	}

	return errors.Wrapf(err, "could not load config %s", filename)
}

func MergeGlobalConfig(v *viper.Viper) error {
	dir, err := getGlobalConfigDir()
	if err != nil {
		return ErrHomeDirNotFound
	}

	for _, ft := range filetypes {
		f := filepath.Join(dir, fmt.Sprintf("config.%s", ft))
		if _, err := os.Stat(f); err != nil {
			continue
		}

		v.SetConfigType(ft)
		if err := loadConfig(f, v); err != nil {
			return errors.Wrapf(err, "could not load config %s", f)
		}

		return nil
	}

	return nil
}

func MergeLocalConfig(v *viper.Viper, path string) error {
	return mergeAnyType(v, filepath.Join(path, LocalConfigName))
}

// LoadConfigForPath reads the global config, the local config found in path
// and an optional explicit file, in increasing order of precedence.
func LoadConfigForPath(path, explicit string) (*viper.Viper, error) {
	v := viper.New()
	setDefaults(v)
	if err := bindEnv(v); err != nil {
		return nil, err
	}

	if err := MergeGlobalConfig(v); err != nil {
		return nil, err
	}

	if err := MergeLocalConfig(v, path); err != nil {
		return nil, err
	}

	if explicit != "" {
		f, err := homedir.Expand(explicit)
		if err != nil {
			return nil, ErrHomeDirNotFound
		}
		if err := fileExists(f, OS{}); err != nil {
			return nil, errors.Wrapf(err, "config file %s", explicit)
		}
		if err := mergeAnyType(v, f); err != nil {
			return nil, err
		}
	}

	return v, nil
}

func SettingsFrom(v *viper.Viper) (*Settings, error) {
	s := &Settings{
		Token:    strings.TrimSpace(v.GetString(KeyGithubToken)),
		BaseURL:  v.GetString(KeyGithubURL),
		Timeout:  v.GetDuration(KeyGithubTimeout),
		Retries:  v.GetInt(KeyGithubRetries),
		Delay:    v.GetDuration(KeyBatchDelay),
		Cap:      v.GetInt(KeyBatchCap),
		LogLevel: v.GetString(KeyLogLevel),
	}

	switch {
	case s.Timeout <= 0:
		return nil, errors.Wrapf(ErrInvalidConfig, "%s must be positive", KeyGithubTimeout)
	case s.Retries < 0:
		return nil, errors.Wrapf(ErrInvalidConfig, "%s must not be negative", KeyGithubRetries)
	case s.Delay < 0:
		return nil, errors.Wrapf(ErrInvalidConfig, "%s must not be negative", KeyBatchDelay)
	case s.Cap < 0:
		return nil, errors.Wrapf(ErrInvalidConfig, "%s must not be negative", KeyBatchCap)
	}

	return s, nil
}

func GetBoolFlagOrDefault(fs FlagSet, flag string, d bool) bool {
	v, err := fs.GetBool(flag)
	if err != nil {
		return d
	}

	return v
}

func GetStringFlagOrDefault(fs FlagSet, flag, d string) string {
	s, err := fs.GetString(flag)
	if err != nil || s == "" {
		return d
	}

	return s
}
