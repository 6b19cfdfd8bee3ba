// Package config resolves garage settings from flags, GARAGE_* environment
// variables and an optional YAML file, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/guzus/garage/internal/events"
	"github.com/guzus/garage/internal/store"
)

const (
	KeyDB      = "db"
	KeyTick    = "tick"
	KeyState   = "state"
	KeyLogFile = "log-file"
	KeyDebug   = "debug"
	KeyNoColor = "no-color"
	KeyTheme   = "theme"
	KeySeed    = "seed"

	EnvPrefix = "GARAGE"
)

// Themes are the glamour styles the static panels can be rendered with.
var Themes = []string{"dark", "light", "notty"}

// Config is the resolved application configuration.
type Config struct {
	DBPath    string
	Tick      time.Duration
	StatePath string
	LogFile   string
	Debug     bool
	NoColor   bool
	Theme     string
	Seed      int64
}

// Error reports an invalid configuration value.
type Error struct {
	Key string
	msg string
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Key, e.msg)
}

// DefaultStatePath returns ~/.config/garage/state.json, or a relative
// fallback when the home directory is unknown.
func DefaultStatePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".garage", "state.json")
	}
	return filepath.Join(home, ".config", "garage", "state.json")
}

// RegisterFlags adds the configuration flags to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String(KeyDB, store.DefaultPath, "path to the JSON car database")
	fs.Duration(KeyTick, events.DefaultInterval, "redraw interval when idle")
	fs.String(KeyState, "", "path to the UI state file (default ~/.config/garage/state.json)")
	fs.String(KeyLogFile, "", "write logs to this file")
	fs.Bool(KeyDebug, false, "enable debug logging")
	fs.Bool(KeyNoColor, false, "disable colors")
	fs.String(KeyTheme, "dark", "markdown theme: "+strings.Join(Themes, ", "))
	fs.Int64(KeySeed, 0, "random seed for generated cars (0 = time based)")
}

// New returns a viper instance bound to fs and the environment. When
// cfgFile is non-empty it is read as YAML.
func New(fs *pflag.FlagSet, cfgFile string) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if fs != nil {
		if err := v.BindPFlags(fs); err != nil {
			return nil, fmt.Errorf("binding flags: %w", err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", cfgFile, err)
		}
	}
	return v, nil
}

// Load extracts and validates a Config from v.
func Load(v *viper.Viper) (Config, error) {
	v.SetDefault(KeyDB, store.DefaultPath)
	v.SetDefault(KeyTick, events.DefaultInterval)
	v.SetDefault(KeyTheme, "dark")

	cfg := Config{
		DBPath:    v.GetString(KeyDB),
		Tick:      v.GetDuration(KeyTick),
		StatePath: v.GetString(KeyState),
		LogFile:   v.GetString(KeyLogFile),
		Debug:     v.GetBool(KeyDebug),
		NoColor:   v.GetBool(KeyNoColor) || os.Getenv("NO_COLOR") != "",
		Theme:     strings.ToLower(v.GetString(KeyTheme)),
		Seed:      v.GetInt64(KeySeed),
	}
	if cfg.StatePath == "" {
		cfg.StatePath = DefaultStatePath()
	}
	if cfg.NoColor {
		cfg.Theme = "notty"
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	var errs []error
	if strings.TrimSpace(c.DBPath) == "" {
		errs = append(errs, &Error{Key: KeyDB, msg: "must not be empty"})
	}
	if c.Tick <= 0 {
		errs = append(errs, &Error{Key: KeyTick, msg: fmt.Sprintf("must be positive, got %s", c.Tick)})
	}
	valid := false
	for _, t := range Themes {
		if t == c.Theme {
			valid = true
			break
		}
	}
	if !valid {
		errs = append(errs, &Error{Key: KeyTheme, msg: fmt.Sprintf("unknown theme %q (valid: %s)", c.Theme, strings.Join(Themes, ", "))})
	}
	return errors.Join(errs...)
}
