package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

const (
	AppName               = "milestone"
	DefaultConfigFileName = "config.toml"
	DefaultBaseURL        = "http://127.0.0.1:5000"
	DefaultIcons          = "unicode"
)

type Keymap struct {
	Quit      string `toml:"quit" yaml:"quit"`
	Up        string `toml:"up" yaml:"up"`
	Down      string `toml:"down" yaml:"down"`
	Left      string `toml:"left" yaml:"left"`
	Right     string `toml:"right" yaml:"right"`
	PrevMonth string `toml:"prev_month" yaml:"prev_month"`
	NextMonth string `toml:"next_month" yaml:"next_month"`
	Today     string `toml:"today" yaml:"today"`
	Open      string `toml:"open" yaml:"open"`
	Back      string `toml:"back" yaml:"back"`
	Toggle    string `toml:"toggle" yaml:"toggle"`
	Send      string `toml:"send" yaml:"send"`
	Close     string `toml:"close" yaml:"close"`
	Copy      string `toml:"copy" yaml:"copy"`
	Chat      string `toml:"chat" yaml:"chat"`
	Refresh   string `toml:"refresh" yaml:"refresh"`
}

type Config struct {
	BaseURL     string `toml:"base_url" yaml:"base_url"`
	RefreshCron string `toml:"refresh_cron" yaml:"refresh_cron"`
	LogFile     string `toml:"log_file" yaml:"log_file"`
	LogLevel    string `toml:"log_level" yaml:"log_level"`
	LogFormat   string `toml:"log_format" yaml:"log_format"`
	Icons       string `toml:"icons" yaml:"icons"`
	Keys        Keymap `toml:"keys" yaml:"keys"`
}

// ResolveConfigPath returns $XDG_CONFIG_HOME/milestone/config.toml, falling
// back to ~/.config and finally the working directory.
func ResolveConfigPath() string {
	return filepath.Join(DefaultConfigDir(), DefaultConfigFileName)
}

func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// LoadOrCreate reads the config at path, writing the defaults there first
// if the file does not exist. Files ending in .yaml or .yml are YAML, all
// others TOML.
func LoadOrCreate(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, errors.New("config path is empty")
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if isYAML(path) {
		err = yaml.Unmarshal(data, &cfg)
	} else {
		err = toml.Unmarshal(data, &cfg)
	}
	if err != nil {
		return cfg, err
	}
	cfg.Normalize()
	return cfg, nil
}

// Normalize fills empty fields with defaults so partial files still work.
func (c *Config) Normalize() {
	def := defaultConfig()
	if c.BaseURL == "" {
		c.BaseURL = def.BaseURL
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
	if c.LogFormat == "" {
		c.LogFormat = def.LogFormat
	}
	switch c.Icons {
	case "unicode", "ascii", "none":
	default:
		c.Icons = def.Icons
	}
	fillKeys(&c.Keys, def.Keys)
}

func fillKeys(k *Keymap, def Keymap) {
	set := func(dst *string, v string) {
		if *dst == "" {
			*dst = v
		}
	}
	set(&k.Quit, def.Quit)
	set(&k.Up, def.Up)
	set(&k.Down, def.Down)
	set(&k.Left, def.Left)
	set(&k.Right, def.Right)
	set(&k.PrevMonth, def.PrevMonth)
	set(&k.NextMonth, def.NextMonth)
	set(&k.Today, def.Today)
	set(&k.Open, def.Open)
	set(&k.Back, def.Back)
	set(&k.Toggle, def.Toggle)
	set(&k.Send, def.Send)
	set(&k.Close, def.Close)
	set(&k.Copy, def.Copy)
	set(&k.Chat, def.Chat)
	set(&k.Refresh, def.Refresh)
}

func write(path string, cfg Config) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(cfg)
	} else {
		data, err = toml.Marshal(cfg)
	}
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func defaultConfig() Config {
	return Config{
		BaseURL:   DefaultBaseURL,
		LogLevel:  "info",
		LogFormat: "text",
		Icons:     DefaultIcons,
		Keys: Keymap{
			Quit:      "q",
			Up:        "k",
			Down:      "j",
			Left:      "h",
			Right:     "l",
			PrevMonth: "[",
			NextMonth: "]",
			Today:     "t",
			Open:      "enter",
			Back:      "backspace",
			Toggle:    " ",
			Send:      "ctrl+s",
			Close:     "esc",
			Copy:      "ctrl+y",
			Chat:      "c",
			Refresh:   "r",
		},
	}
}
