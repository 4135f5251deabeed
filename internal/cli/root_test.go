package cli

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"

	"github.com/ledgerkit/ledger-tui/internal/app"
	"github.com/ledgerkit/ledger-tui/internal/logging"
)

// executeCommand runs a cobra command with the given args and returns stdout, stderr, and error.
func executeCommand(root *cobra.Command, args ...string) (string, string, error) {
	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

// testEnv isolates HOME and logging, returning common flags.
func testEnv(t *testing.T) (dbPath string, flags []string) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	homedir.DisableCache = true
	t.Cleanup(logging.Close)
	dbPath = filepath.Join(home, "data", "budget.db")
	return dbPath, []string{"--db", dbPath, "--log-file", filepath.Join(home, "ledger.log")}
}

func noDashboard(t *testing.T) dashboardFunc {
	return func(context.Context, app.Config) error {
		t.Fatalf("dashboard should not run")
		return nil
	}
}

func TestRootRunsDashboardWithConfig(t *testing.T) {
	db, flags := testEnv(t)
	var got app.Config
	root := newRootCmd(func(_ context.Context, cfg app.Config) error {
		got = cfg
		return nil
	})
	_, _, err := executeCommand(root, append(flags, "--width", "90", "--confirm-quit")...)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if got.Database != db || got.Width != 90 || !got.ConfirmQuit {
		t.Fatalf("unexpected dashboard config %+v", got)
	}
}

func TestRootPropagatesDashboardError(t *testing.T) {
	_, flags := testEnv(t)
	boom := errors.New("boom")
	root := newRootCmd(func(context.Context, app.Config) error { return boom })
	if _, _, err := executeCommand(root, flags...); !errors.Is(err, boom) {
		t.Fatalf("expected dashboard error, got %v", err)
	}
}

func TestInvalidConfigIsConfigError(t *testing.T) {
	_, flags := testEnv(t)
	root := newRootCmd(noDashboard(t))
	_, _, err := executeCommand(root, append(flags, "--height", "-3")...)
	if !errors.Is(err, ErrConfig) {
		t.Fatalf("expected ErrConfig, got %v", err)
	}
}

func TestRootRejectsArgs(t *testing.T) {
	_, flags := testEnv(t)
	root := newRootCmd(noDashboard(t))
	if _, _, err := executeCommand(root, append(flags, "extra")...); err == nil {
		t.Fatalf("expected error for unexpected argument")
	}
}

func TestListEmpty(t *testing.T) {
	_, flags := testEnv(t)
	root := newRootCmd(noDashboard(t))
	out, _, err := executeCommand(root, append([]string{"list"}, flags...)...)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if strings.TrimSpace(out) != "No transactions." {
		t.Fatalf("expected empty message, got %q", out)
	}
}

func TestSeedThenList(t *testing.T) {
	db, flags := testEnv(t)
	out, _, err := executeCommand(newRootCmd(noDashboard(t)), append([]string{"seed", "3"}, flags...)...)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if !strings.Contains(out, "Inserted 3 sample transactions into "+db) {
		t.Fatalf("unexpected seed output %q", out)
	}

	out, _, err = executeCommand(newRootCmd(noDashboard(t)), append([]string{"list"}, flags...)...)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 6 {
		t.Fatalf("expected header, 3 rows, blank and summary; got %d lines:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "ID") || !strings.HasSuffix(lines[0], "Amount") {
		t.Fatalf("unexpected header %q", lines[0])
	}
	if !strings.Contains(lines[3], "Category #3") || !strings.HasSuffix(lines[3], "2.00") {
		t.Fatalf("unexpected third row %q", lines[3])
	}
	if lines[5] != "3 transactions, total 3.00" {
		t.Fatalf("unexpected summary %q", lines[5])
	}
}

func TestSeedDefaultsToSampleSize(t *testing.T) {
	_, flags := testEnv(t)
	out, _, err := executeCommand(newRootCmd(noDashboard(t)), append([]string{"seed", "--sample-size", "2"}, flags...)...)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if !strings.Contains(out, "Inserted 2 sample") {
		t.Fatalf("unexpected seed output %q", out)
	}
}

func TestSeedRejectsBadCount(t *testing.T) {
	_, flags := testEnv(t)
	for _, arg := range []string{"0", "-1", "many"} {
		_, _, err := executeCommand(newRootCmd(noDashboard(t)), append(append([]string{"seed"}, flags...), "--", arg)...)
		if err == nil {
			t.Fatalf("expected error for count %q", arg)
		}
	}
}
