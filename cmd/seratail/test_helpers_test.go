package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pelletier/go-toml/v2"

	"seratail/internal/config"
	"seratail/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	oldSession string
	newSession string
}

var (
	firstTrack  = testsupport.Record{Title: "First Song", Artist: "Artist One", Style: "House"}
	secondTrack = testsupport.Record{Title: "Second Song", Artist: "Artist Two", Style: "Techno"}
)

func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	cfg := testsupport.NewConfig(t, opts...)
	base := testsupport.BaseDir(cfg)
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv("SERATO_DIR", "")
	t.Setenv("SERATAIL_LOG_LEVEL", "")

	oldSession := testsupport.SessionPath(cfg, "1.session")
	testsupport.WriteSession(t, oldSession, testsupport.Record{Title: "Yesterday"})
	testsupport.Touch(t, oldSession, time.Now().Add(-24*time.Hour))
	time.Sleep(20 * time.Millisecond)

	newSession := testsupport.SessionPath(cfg, "2.session")
	testsupport.WriteSession(t, newSession, firstTrack, secondTrack)

	configPath := filepath.Join(base, "config.toml")
	writeTestConfig(t, configPath, cfg)

	return &cliTestEnv{
		cfg:        cfg,
		configPath: configPath,
		oldSession: oldSession,
		newSession: newSession,
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	return runCLIContext(t, context.Background(), args, configPath)
}

func runCLIContext(t *testing.T, ctx context.Context, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.ExecuteContext(ctx)
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	content, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
