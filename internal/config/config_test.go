package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mitchellh/go-homedir"
)

func isolatedEnv(t *testing.T) []string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	homedir.DisableCache = true
	return []string{"HOME=" + home}
}

func TestLoadArgsDefaults(t *testing.T) {
	env := isolatedEnv(t)
	cfg, err := LoadArgs(nil, env)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !strings.HasSuffix(cfg.App.Database, filepath.Join(".ledger-tui", "budget.db")) || strings.HasPrefix(cfg.App.Database, "~") {
		t.Fatalf("expected expanded default database, got %q", cfg.App.Database)
	}
	if cfg.App.NotificationLimit != DefaultNotificationLimit || cfg.App.SampleSize != DefaultSampleSize {
		t.Fatalf("unexpected defaults %+v", cfg.App)
	}
	if !cfg.App.ShowHelp || cfg.App.ConfirmQuit || cfg.App.Memory {
		t.Fatalf("unexpected boolean defaults %+v", cfg.App)
	}
	if cfg.File != "" {
		t.Fatalf("expected no config file, got %q", cfg.File)
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("expected defaults to validate: %v", err)
	}
}

func TestLoadArgsFlags(t *testing.T) {
	env := isolatedEnv(t)
	args := []string{"--width", "100", "--height=30", "--memory", "--trace", "--log-file", "/tmp/x.log"}
	cfg, err := LoadArgs(args, env)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.Width != 100 || cfg.App.Height != 30 || !cfg.App.Memory {
		t.Fatalf("unexpected app config %+v", cfg.App)
	}
	if !cfg.Logging.Trace || cfg.Logging.FilePath != "/tmp/x.log" {
		t.Fatalf("unexpected logging config %+v", cfg.Logging)
	}
	if cfg.Flags["width"] != "100" || cfg.Flags["trace"] != "true" {
		t.Fatalf("unexpected flag map %v", cfg.Flags)
	}
	if len(cfg.Args) != len(args) {
		t.Fatalf("expected args recorded, got %v", cfg.Args)
	}
}

func TestEnvironmentAndPrecedence(t *testing.T) {
	env := append(isolatedEnv(t),
		"LEDGER_TUI_WIDTH=90",
		"LEDGER_TUI_CONFIRM_QUIT=true",
		"LEDGER_TUI_NOTIFICATIONS_LIMIT=7",
	)
	cfg, err := LoadArgs([]string{"--width", "40"}, env)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.Width != 40 {
		t.Fatalf("expected flag to win over env, got %d", cfg.App.Width)
	}
	if !cfg.App.ConfirmQuit || cfg.App.NotificationLimit != 7 {
		t.Fatalf("expected env values applied, got %+v", cfg.App)
	}
}

func TestConfigFile(t *testing.T) {
	env := isolatedEnv(t)
	path := filepath.Join(t.TempDir(), "ledger.toml")
	body := "database = \"/srv/budget.db\"\nsample_size = 12\n\n[log]\ntrace = true\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := LoadArgs([]string{"--config", path, "--sample-size", "3"}, append(env, "LEDGER_TUI_DATABASE=/env/budget.db"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.File != path {
		t.Fatalf("expected config file %q, got %q", path, cfg.File)
	}
	if cfg.App.Database != "/env/budget.db" {
		t.Fatalf("expected env to win over file, got %q", cfg.App.Database)
	}
	if cfg.App.SampleSize != 3 {
		t.Fatalf("expected flag to win over file, got %d", cfg.App.SampleSize)
	}
	if !cfg.Logging.Trace {
		t.Fatalf("expected trace from file")
	}
}

func TestDefaultConfigFileIsRead(t *testing.T) {
	env := isolatedEnv(t)
	dir := filepath.Join(os.Getenv("HOME"), ".ledger-tui")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte("confirm_quit = true\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := LoadArgs(nil, env)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !cfg.App.ConfirmQuit {
		t.Fatalf("expected confirm_quit from default file")
	}
}

func TestMissingExplicitConfigFails(t *testing.T) {
	env := isolatedEnv(t)
	if _, err := LoadArgs([]string{"--config", filepath.Join(t.TempDir(), "nope.toml")}, env); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}

func TestLoadArgsRejectsUnknownFlag(t *testing.T) {
	env := isolatedEnv(t)
	if _, err := LoadArgs([]string{"--socket", "x"}, env); err == nil {
		t.Fatalf("expected unknown flag error")
	}
}

func TestValidate(t *testing.T) {
	env := isolatedEnv(t)
	cases := map[string][]string{
		"width":   {"--width", "-1"},
		"height":  {"--height", "-2"},
		"notices": {"--max-notices", "0"},
		"sample":  {"--sample-size", "0"},
		"db":      {"--db", " "},
	}
	for name, args := range cases {
		cfg, err := LoadArgs(args, env)
		if err != nil {
			t.Fatalf("%s: load: %v", name, err)
		}
		if err := Validate(cfg); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}
}
