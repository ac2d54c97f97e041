package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const EnvPrefix = "HINTSWEEPER"

type Log struct {
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

type Board struct {
	HintDuration time.Duration `mapstructure:"hint_duration"`
	UndoDepth    int           `mapstructure:"undo_depth"`
	MaxSessions  int           `mapstructure:"max_sessions"`
	IdleTTL      time.Duration `mapstructure:"idle_ttl"`
}

type Token struct {
	Secret        string        `mapstructure:"secret"`
	TokenLifetime time.Duration `mapstructure:"token_lifetime"`
}

type Config struct {
	Addr            string        `mapstructure:"addr"`
	Development     bool          `mapstructure:"development"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	CorsOrigins     []string      `mapstructure:"cors_origins"`
	Log             Log           `mapstructure:"log"`
	Board           Board         `mapstructure:"board"`
	JWT             Token         `mapstructure:"jwt"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("addr", ":8080")
	v.SetDefault("development", false)
	v.SetDefault("shutdown_timeout", 30*time.Second)
	v.SetDefault("cors_origins", []string{"*"})
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 50)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 28)
	v.SetDefault("board.hint_duration", 2500*time.Millisecond)
	v.SetDefault("board.undo_depth", 16)
	v.SetDefault("board.max_sessions", 1024)
	v.SetDefault("board.idle_ttl", 30*time.Minute)
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.token_lifetime", 24*time.Hour)
}

// Load reads defaults, then the optional config file at path, then
// HINTSWEEPER_* env variables, later sources winning.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		path = v.GetString("config")
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("unable to read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.Addr == "" {
		errs = append(errs, errors.New("addr is empty"))
	}
	if c.Board.HintDuration < 0 {
		errs = append(errs, fmt.Errorf("board.hint_duration is negative: %s", c.Board.HintDuration))
	}
	if c.Board.UndoDepth < 0 {
		errs = append(errs, fmt.Errorf("board.undo_depth is negative: %d", c.Board.UndoDepth))
	}
	if c.Board.MaxSessions <= 0 {
		errs = append(errs, fmt.Errorf("board.max_sessions must be positive: %d", c.Board.MaxSessions))
	}
	if c.Board.IdleTTL < 0 {
		errs = append(errs, fmt.Errorf("board.idle_ttl is negative: %s", c.Board.IdleTTL))
	}
	if c.JWT.TokenLifetime <= 0 {
		errs = append(errs, fmt.Errorf("jwt.token_lifetime must be positive: %s", c.JWT.TokenLifetime))
	}
	return errors.Join(errs...)
}

func (c Config) Fields() logrus.Fields {
	return map[string]any{
		"addr":               c.Addr,
		"development":        c.Development,
		"shutdown_timeout":   c.ShutdownTimeout.String(),
		"cors_origins":       c.CorsOrigins,
		"log_file":           c.Log.File,
		"hint_duration":      c.Board.HintDuration.String(),
		"undo_depth":         c.Board.UndoDepth,
		"max_sessions":       c.Board.MaxSessions,
		"idle_ttl":           c.Board.IdleTTL.String(),
		"jwt_secret_set":     c.JWT.Secret != "",
		"jwt_token_lifetime": c.JWT.TokenLifetime.String(),
	}
}
