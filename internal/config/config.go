// Package config provides configuration types, defaults, and loading for the
// sourceview command.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2/styles"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/iw2rmb/sourceview/internal/log"
)

// EnvPrefix prefixes environment overrides, e.g. SOURCEVIEW_THEME.
const EnvPrefix = "SOURCEVIEW"

const (
	minTabWidth = 1
	maxTabWidth = 16
)

var (
	ErrUnknownTheme    = errors.New("config: unknown theme")
	ErrInvalidTabWidth = errors.New("config: tab width out of range")
)

// Config holds the sourceview settings.
type Config struct {
	Theme           string `mapstructure:"theme" yaml:"theme"`
	TabWidth        int    `mapstructure:"tab_width" yaml:"tab_width"`
	ShowLineNumbers bool   `mapstructure:"show_line_numbers" yaml:"show_line_numbers"`
	Debug           bool   `mapstructure:"debug" yaml:"debug"`
	LogFile         string `mapstructure:"log_file" yaml:"log_file"`
}

func Defaults() Config {
	return Config{
		Theme:           "monokai",
		TabWidth:        4,
		ShowLineNumbers: true,
		LogFile:         "sourceview.log",
	}
}

// Validate checks the theme against the chroma style registry and the tab
// width against [1, 16].
func (c Config) Validate() error {
	if _, ok := styles.Registry[c.Theme]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTheme, c.Theme)
	}
	if c.TabWidth < minTabWidth || c.TabWidth > maxTabWidth {
		return fmt.Errorf("%w: %d (want %d-%d)", ErrInvalidTabWidth, c.TabWidth, minTabWidth, maxTabWidth)
	}
	return nil
}

// Load reads the configuration. Defaults are overlaid with the config file and
// then with SOURCEVIEW_* environment variables.
//
// With an explicit path the file must exist. Otherwise .sourceview.yaml in the
// working directory and ~/.config/sourceview/config.yaml are tried in that
// order, and a missing file is not an error.
func Load(path string) (Config, error) {
	v := viper.New()

	d := Defaults()
	v.SetDefault("theme", d.Theme)
	v.SetDefault("tab_width", d.TabWidth)
	v.SetDefault("show_line_numbers", d.ShowLineNumbers)
	v.SetDefault("debug", d.Debug)
	v.SetDefault("log_file", d.LogFile)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else if _, err := os.Stat(".sourceview.yaml"); err == nil {
		v.SetConfigFile(".sourceview.yaml")
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "sourceview"))
		}
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
		log.Debug(log.CatConfig, "no config file, using defaults")
	} else {
		log.Info(log.CatConfig, "loaded config", "path", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// WriteDefault writes the default configuration as YAML to path, creating
// parent directories.
func WriteDefault(path string) error {
	data, err := yaml.Marshal(Defaults())
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "failed to create config directory", err, "path", path)
		return fmt.Errorf("creating config directory: %w", err)
	}
	header := "# sourceview configuration\n# Environment variables with the " + EnvPrefix + "_ prefix override these values.\n"
	if err := os.WriteFile(path, append([]byte(header), data...), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "failed to write config file", err, "path", path)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "wrote default config", "path", path)
	return nil
}
