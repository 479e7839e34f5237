package internal

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes environment overrides, e.g. DOTCALC_LOCALE=ru-RU.
const EnvPrefix = "DOTCALC"

type Config struct {
	Locale           string `yaml:"locale" json:"locale" mapstructure:"locale"`
	DecimalSeparator string `yaml:"decimal_separator,omitempty" json:"decimal_separator,omitempty" mapstructure:"decimal_separator"`
	Author           Author `yaml:"author" json:"author" mapstructure:"author"`
	LogLevel         string `yaml:"log_level" json:"log_level" mapstructure:"log_level"`
}

func DefaultConfig() *Config {
	return &Config{
		Locale: DefaultLocale,
		Author: Author{
			Name:  DefaultAuthor,
			Email: DefaultEmail,
		},
		LogLevel: "info",
	}
}

// LoadConfig merges the config files of scopes, given highest priority
// first, over the defaults. Environment variables override both. Missing
// files are skipped.
func LoadConfig(scopes ...Scope) (*Config, error) {
	def := DefaultConfig()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetDefault("locale", def.Locale)
	v.SetDefault("decimal_separator", def.DecimalSeparator)
	v.SetDefault("author.name", def.Author.Name)
	v.SetDefault("author.email", def.Author.Email)
	v.SetDefault("log_level", def.LogLevel)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for i := len(scopes) - 1; i >= 0; i-- {
		path := scopes[i].ConfigPath()
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}

		v.SetConfigFile(path)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	return &cfg, nil
}

func SaveConfig(scope Scope, cfg *Config) error {
	if err := os.MkdirAll(scope.DataPath, 0755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(scope.ConfigPath(), data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	return nil
}

// ResolveLocale builds the Locale described by the config. A configured
// decimal separator wins over the one implied by the locale tag.
func (c *Config) ResolveLocale() (Locale, error) {
	tag := c.Locale
	if tag == "" {
		tag = DefaultLocale
	}

	loc, err := NewLocale(tag)
	if err != nil {
		return Locale{}, err
	}
	return loc.WithSeparator(c.DecimalSeparator), nil
}

// Level parses LogLevel, falling back to info.
func (c *Config) Level() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}
