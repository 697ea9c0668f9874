package commands

import (
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

// runCleanCommand executes "tabclean clean" on a small CSV and returns the
// paths of the cleaned output and the JSON report.
func runCleanCommand(t *testing.T, extra ...string) (out, report string, err error) {
	t.Helper()
	dir := t.TempDir()
	input := filepath.Join(dir, "in.csv")
	if err := os.WriteFile(input, []byte("Name,Age\nBob,25\nAnn,31\n"), 0o644); err != nil {
		t.Fatalf("failed to write input: %v", err)
	}
	out = filepath.Join(dir, "out.csv")
	report = filepath.Join(dir, "report.json")

	args := []string{
		"clean", input,
		"-o", out,
		"--report-format", "json",
		"--report-file", report,
		"--preview", "0",
		"-q",
	}
	rootCmd.SetArgs(append(args, extra...))
	defer rootCmd.SetArgs(nil)

	return out, report, rootCmd.Execute()
}

func TestCleanCommand_CompactReport(t *testing.T) {
	_, report, err := runCleanCommand(t, "--compact")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	raw, err := os.ReadFile(report)
	if err != nil {
		t.Fatalf("failed to read report: %v", err)
	}
	if got := strings.Count(strings.TrimSpace(string(raw)), "\n"); got != 0 {
		t.Errorf("expected a single-line report, got %d line breaks:\n%s", got, raw)
	}
	if !json.Valid(raw) {
		t.Errorf("report is not JSON: %s", raw)
	}
}

// The config tests run last: viper keeps the last explicit config path for
// the rest of the process.

func TestRootCommand_ExplicitConfig(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "tabclean.yaml")
	if err := os.WriteFile(cfgPath, []byte("clean:\n  handle_missing: true\n"), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	defer func() { _ = rootCmd.PersistentFlags().Set("config", "") }()

	_, report, err := runCleanCommand(t, "--config", cfgPath)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	raw, err := os.ReadFile(report)
	if err != nil {
		t.Fatalf("failed to read report: %v", err)
	}
	var got struct {
		Stages []string `json:"stages"`
	}
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("report is not JSON: %v", err)
	}
	if !slices.Contains(got.Stages, "handle_missing") {
		t.Errorf("stages = %q, want handle_missing enabled from config", got.Stages)
	}
}

func TestRootCommand_UnreadableConfigFails(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "missing.yaml")
	defer func() { _ = rootCmd.PersistentFlags().Set("config", "") }()

	out, _, err := runCleanCommand(t, "--config", cfgPath)
	if err == nil {
		t.Fatal("expected error for unreadable config file")
	}
	if !strings.Contains(err.Error(), "reading config") {
		t.Errorf("error = %v, want containing %q", err, "reading config")
	}
	if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
		t.Errorf("expected no output to be written, stat error = %v", statErr)
	}
}
