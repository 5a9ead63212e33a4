// Package config loads rtab settings from file and environment.
//
// Sources, highest priority first:
//  1. Environment variables (RTAB_*, e.g. RTAB_DISPLAY_SHOW_HIDDEN=true)
//  2. Configuration file ($XDG_CONFIG_HOME/rtab/config.yaml or --config)
//  3. Defaults
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	fsutil "github.com/kk-code-lab/rtab/internal/fs"
	"github.com/kk-code-lab/rtab/internal/tab"
)

// Config is the complete rtab configuration.
type Config struct {
	Display DisplayConfig `mapstructure:"display" yaml:"display"`
	Notify  NotifyConfig  `mapstructure:"notify" yaml:"notify"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
}

// DisplayConfig seeds the display options of new tabs.
type DisplayConfig struct {
	ShowHidden bool       `mapstructure:"show_hidden" yaml:"show_hidden"`
	Filter     string     `mapstructure:"filter" yaml:"filter"`
	Sort       SortConfig `mapstructure:"sort" yaml:"sort"`
}

// SortConfig mirrors fs.SortOptions.
type SortConfig struct {
	Method        string `mapstructure:"method" yaml:"method" validate:"required,oneof=natural lexical size modified"`
	Reverse       bool   `mapstructure:"reverse" yaml:"reverse"`
	DirsFirst     bool   `mapstructure:"dirs_first" yaml:"dirs_first"`
	CaseSensitive bool   `mapstructure:"case_sensitive" yaml:"case_sensitive"`
}

// NotifyConfig controls host terminal notifications.
type NotifyConfig struct {
	// OSC7 announces directory changes to the terminal emulator.
	OSC7 bool `mapstructure:"osc7" yaml:"osc7"`
}

// LogConfig controls the debug log. The terminal belongs to the UI, so logs
// only go to a file; an empty File disables logging.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level" validate:"required,oneof=trace debug info error"`
	File  string `mapstructure:"file" yaml:"file"`
}

// Default returns the built-in configuration.
func Default() Config {
	sort := fsutil.DefaultSortOptions()
	return Config{
		Display: DisplayConfig{
			Sort: SortConfig{
				Method:    string(sort.Method),
				DirsFirst: sort.DirsFirst,
			},
		},
		Notify: NotifyConfig{OSC7: true},
		Log:    LogConfig{Level: "info"},
	}
}

// DisplayOptions converts the display section into tab options.
func (c Config) DisplayOptions() tab.DisplayOptions {
	return tab.DisplayOptions{
		ShowHidden: c.Display.ShowHidden,
		Filter:     c.Display.Filter,
		Sort: fsutil.SortOptions{
			Method:        fsutil.SortMethod(c.Display.Sort.Method),
			Reverse:       c.Display.Sort.Reverse,
			DirsFirst:     c.Display.Sort.DirsFirst,
			CaseSensitive: c.Display.Sort.CaseSensitive,
		},
	}
}

// Load reads configuration from path, or from the default location when path
// is empty. A missing file is not an error.
func Load(path string) (Config, error) {
	v := viper.New()
	setupViper(v, path)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound):
		case path == "" && os.IsNotExist(err):
		default:
			return Config{}, errors.Wrap(err, "couldn't read config file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "couldn't decode config")
	}
	ApplyDefaults(&cfg)
	if err := Validate(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "invalid configuration")
	}
	return cfg, nil
}

func setupViper(v *viper.Viper, path string) {
	def := Default()
	v.SetDefault("display.show_hidden", def.Display.ShowHidden)
	v.SetDefault("display.filter", def.Display.Filter)
	v.SetDefault("display.sort.method", def.Display.Sort.Method)
	v.SetDefault("display.sort.reverse", def.Display.Sort.Reverse)
	v.SetDefault("display.sort.dirs_first", def.Display.Sort.DirsFirst)
	v.SetDefault("display.sort.case_sensitive", def.Display.Sort.CaseSensitive)
	v.SetDefault("notify.osc7", def.Notify.OSC7)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.file", def.Log.File)

	v.SetEnvPrefix("RTAB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		return
	}
	v.AddConfigPath(Dir())
	v.SetConfigName("config")
	v.SetConfigType("yaml")
}

// ApplyDefaults fills values a partial file may leave empty and normalises
// case.
func ApplyDefaults(cfg *Config) {
	def := Default()
	cfg.Display.Sort.Method = strings.ToLower(strings.TrimSpace(cfg.Display.Sort.Method))
	if cfg.Display.Sort.Method == "" {
		cfg.Display.Sort.Method = def.Display.Sort.Method
	}
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	if cfg.Log.Level == "" {
		cfg.Log.Level = def.Log.Level
	}
	if cfg.Log.File != "" {
		cfg.Log.File = expandHome(cfg.Log.File)
	}
}

// Dir returns the configuration directory: $XDG_CONFIG_HOME/rtab, falling
// back to ~/.config/rtab.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "rtab")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "rtab")
}

// DefaultPath returns the default configuration file path.
func DefaultPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

// WriteDefault writes the built-in configuration to path, refusing to
// overwrite an existing file.
func WriteDefault(path string) error {
	if path == "" {
		path = DefaultPath()
	}
	if _, err := os.Stat(path); err == nil {
		return errors.Errorf("config file %s already exists", path)
	}
	data, err := Marshal(Default())
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrapf(err, "couldn't create %s", filepath.Dir(path))
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "couldn't write %s", path)
	}
	return nil
}

// Marshal renders cfg as YAML.
func Marshal(cfg Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "couldn't serialize config as yaml")
	}
	return data, nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
