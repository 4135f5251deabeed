package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/ledgerkit/ledger-tui/internal/app"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	File    string
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envPrefix = "LEDGER_TUI"

	keyConfig      = "config"
	keyDatabase    = "database"
	keyMemory      = "memory"
	keyWidth       = "width"
	keyHeight      = "height"
	keyConfirmQuit = "confirm_quit"
	keyLimit       = "notifications.limit"
	keySampleSize  = "sample_size"
	keyShowHelp    = "show_help"
	keyLogFile     = "log.file"
	keyTrace       = "log.trace"

	DefaultDatabase          = "~/.ledger-tui/budget.db"
	DefaultNotificationLimit = 100
	DefaultSampleSize        = 5
)

// flagKeys maps command-line flag names to configuration keys.
var flagKeys = map[string]string{
	"config":       keyConfig,
	"db":           keyDatabase,
	"memory":       keyMemory,
	"width":        keyWidth,
	"height":       keyHeight,
	"confirm-quit": keyConfirmQuit,
	"max-notices":  keyLimit,
	"sample-size":  keySampleSize,
	"help-footer":  keyShowHelp,
	"log-file":     keyLogFile,
	"trace":        keyTrace,
}

// RegisterFlags adds the configuration flags to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "path to a TOML config file (default ~/.ledger-tui/config.toml)")
	fs.String("db", DefaultDatabase, "path to the SQLite database")
	fs.Bool("memory", false, "keep transactions in memory only")
	fs.Int("width", 0, "desired viewport width in cells (0 uses terminal width)")
	fs.Int("height", 0, "desired viewport height in rows (0 uses terminal height)")
	fs.Bool("confirm-quit", false, "always ask before quitting")
	fs.Int("max-notices", DefaultNotificationLimit, "number of notifications kept in the log")
	fs.Int("sample-size", DefaultSampleSize, "rows inserted by the seed hotkey")
	fs.Bool("help-footer", true, "show key help in the footer")
	fs.String("log-file", "", "path to the log file")
	fs.Bool("trace", false, "enable verbose JSON trace logging")
}

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	fs := pflag.NewFlagSet("ledger-tui", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	cfg, err := Resolve(fs, environ)
	if err != nil {
		return Config{}, err
	}
	cfg.Args = append([]string(nil), args...)
	return cfg, nil
}

// Resolve merges parsed flags, environment, config file and defaults, in
// that order of precedence.
func Resolve(fs *pflag.FlagSet, environ []string) (Config, error) {
	v := viper.New()
	setDefaults(v)
	for name, key := range flagKeys {
		if flag := fs.Lookup(name); flag != nil {
			if err := v.BindPFlag(key, flag); err != nil {
				return Config{}, err
			}
		}
	}

	env := parseEnv(environ)
	file, err := readConfigFile(v, fs, env)
	if err != nil {
		return Config{}, err
	}
	applyEnv(v, fs, env)

	database, err := homedir.Expand(v.GetString(keyDatabase))
	if err != nil {
		return Config{}, fmt.Errorf("expand database path: %w", err)
	}
	logFile, err := homedir.Expand(v.GetString(keyLogFile))
	if err != nil {
		return Config{}, fmt.Errorf("expand log path: %w", err)
	}

	cfg := Config{
		App: app.Config{
			Database:          database,
			Memory:            v.GetBool(keyMemory),
			Width:             v.GetInt(keyWidth),
			Height:            v.GetInt(keyHeight),
			ConfirmQuit:       v.GetBool(keyConfirmQuit),
			NotificationLimit: v.GetInt(keyLimit),
			SampleSize:        v.GetInt(keySampleSize),
			ShowHelp:          v.GetBool(keyShowHelp),
		},
		Logging: Logging{
			FilePath: logFile,
			Trace:    v.GetBool(keyTrace),
		},
		File: file,
	}
	cfg.Flags = map[string]string{
		"db":           cfg.App.Database,
		"memory":       strconv.FormatBool(cfg.App.Memory),
		"width":        strconv.Itoa(cfg.App.Width),
		"height":       strconv.Itoa(cfg.App.Height),
		"confirm-quit": strconv.FormatBool(cfg.App.ConfirmQuit),
		"max-notices":  strconv.Itoa(cfg.App.NotificationLimit),
		"sample-size":  strconv.Itoa(cfg.App.SampleSize),
		"help-footer":  strconv.FormatBool(cfg.App.ShowHelp),
		"trace":        strconv.FormatBool(cfg.Logging.Trace),
		"logFile":      cfg.Logging.FilePath,
		"config":       file,
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(keyDatabase, DefaultDatabase)
	v.SetDefault(keyMemory, false)
	v.SetDefault(keyWidth, 0)
	v.SetDefault(keyHeight, 0)
	v.SetDefault(keyConfirmQuit, false)
	v.SetDefault(keyLimit, DefaultNotificationLimit)
	v.SetDefault(keySampleSize, DefaultSampleSize)
	v.SetDefault(keyShowHelp, true)
	v.SetDefault(keyLogFile, "")
	v.SetDefault(keyTrace, false)
}

// readConfigFile loads an explicit config file, failing when it is missing,
// or the default one when present. It returns the path that was read.
func readConfigFile(v *viper.Viper, fs *pflag.FlagSet, env map[string]string) (string, error) {
	path := v.GetString(keyConfig)
	if !changed(fs, keyConfig) {
		if fromEnv, ok := env[envName(keyConfig)]; ok && fromEnv != "" {
			path = fromEnv
		}
	}
	explicit := path != ""
	if !explicit {
		dir, err := homedir.Expand("~/.ledger-tui")
		if err != nil {
			return "", nil
		}
		path = filepath.Join(dir, "config.toml")
	}
	path, err := homedir.Expand(path)
	if err != nil {
		return "", fmt.Errorf("expand config path: %w", err)
	}
	if !explicit {
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
	}
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return "", fmt.Errorf("read config %s: %w", path, err)
	}
	return path, nil
}

// applyEnv copies LEDGER_TUI_* variables over file values unless the
// matching flag was given explicitly.
func applyEnv(v *viper.Viper, fs *pflag.FlagSet, env map[string]string) {
	for _, key := range flagKeys {
		if key == keyConfig || changed(fs, key) {
			continue
		}
		if value, ok := env[envName(key)]; ok && strings.TrimSpace(value) != "" {
			v.Set(key, value)
		}
	}
}

func changed(fs *pflag.FlagSet, key string) bool {
	for name, k := range flagKeys {
		if k == key {
			return fs.Changed(name)
		}
	}
	return false
}

func envName(key string) string {
	return envPrefix + "_" + strings.ToUpper(strings.NewReplacer(".", "_", "-", "_").Replace(key))
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		name, value, ok := strings.Cut(entry, "=")
		if !ok || name == "" {
			continue
		}
		values[name] = value
	}
	return values
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate ensures required minimum configuration is present.
func Validate(cfg Config) error {
	switch {
	case cfg.App.Width < 0:
		return fmt.Errorf("width must be >= 0 (got %d)", cfg.App.Width)
	case cfg.App.Height < 0:
		return fmt.Errorf("height must be >= 0 (got %d)", cfg.App.Height)
	case cfg.App.NotificationLimit < 1:
		return fmt.Errorf("max-notices must be >= 1 (got %d)", cfg.App.NotificationLimit)
	case cfg.App.SampleSize < 1:
		return fmt.Errorf("sample-size must be >= 1 (got %d)", cfg.App.SampleSize)
	case !cfg.App.Memory && strings.TrimSpace(cfg.App.Database) == "":
		return errors.New("database path must not be empty")
	}
	return nil
}
