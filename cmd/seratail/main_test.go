package main

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"seratail/internal/sessionlog"
	"seratail/internal/sessions"
	"seratail/internal/testsupport"
)

func TestDumpJSON(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"dump", "--json", env.newSession}, env.configPath)
	if err != nil {
		t.Fatalf("dump: %v", err)
	}
	var got []sessionlog.Track
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode dump output: %v\n%s", err, out)
	}
	want := []sessionlog.Track{
		{Title: "First Song", Artist: "Artist One", Style: "House"},
		{Title: "Second Song", Artist: "Artist Two", Style: "Techno"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("dump mismatch (-want +got):\n%s", diff)
	}
}

func TestDumpDefaultsToLatestSession(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"dump"}, env.configPath)
	if err != nil {
		t.Fatalf("dump: %v", err)
	}
	requireContains(t, out, "Second Song")
	requireContains(t, out, "2 tracks in "+env.newSession)
}

func TestDumpEmptyFile(t *testing.T) {
	env := setupCLITestEnv(t)
	empty := filepath.Join(t.TempDir(), "empty.session")
	if err := os.WriteFile(empty, []byte("vrsn\x00\x00"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, _, err := runCLI(t, []string{"dump", "--json", empty}, env.configPath)
	if err != nil {
		t.Fatalf("dump: %v", err)
	}
	if strings.TrimSpace(out) != "[]" {
		t.Fatalf("expected empty JSON array, got %q", out)
	}
}

func TestLatestAndSessions(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"latest"}, env.configPath)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	requireContains(t, out, env.newSession)

	out, _, err = runCLI(t, []string{"sessions"}, env.configPath)
	if err != nil {
		t.Fatalf("sessions: %v", err)
	}
	requireContains(t, out, "1.session")
	requireContains(t, out, "2.session")
}

func TestLatestWithoutSessions(t *testing.T) {
	env := setupCLITestEnv(t)
	emptyDir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(emptyDir, "History", "Sessions"), 0o755); err != nil {
		t.Fatal(err)
	}

	_, _, err := runCLI(t, []string{"--serato-dir", emptyDir, "latest"}, env.configPath)
	if !errors.Is(err, sessions.ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
}

func TestWatchMissingFolderFails(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{filepath.Join(t.TempDir(), "nope")}, env.configPath)
	if err == nil {
		t.Fatal("expected error for missing serato folder")
	}
}

func TestWatchRejectsInvalidCount(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{"-n", "0"}, env.configPath)
	if err == nil {
		t.Fatal("expected validation error for count 0")
	}
}

func TestWatchRendersTrailingWindow(t *testing.T) {
	env := setupCLITestEnv(t)

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	out, stderr, err := runCLIContext(t, ctx, []string{"-n", "2"}, env.configPath)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	requireContains(t, stderr, "Reading "+env.newSession)
	requireContains(t, out, "  First Song — Artist One — House")
	requireContains(t, out, "> Second Song — Artist Two — Techno")
	if strings.Contains(out, "Yesterday") {
		t.Fatalf("older session should not be rendered: %q", out)
	}
}

func TestWatchPositionalFolderOverridesConfig(t *testing.T) {
	env := setupCLITestEnv(t)

	other := t.TempDir()
	testsupport.WriteSession(t, filepath.Join(other, "History", "Sessions", "9.session"), testsupport.Record{Title: "Elsewhere"})

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	out, _, err := runCLIContext(t, ctx, []string{other}, env.configPath)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	requireContains(t, out, "Elsewhere")
}

func TestWatchFeedsExportAndHistory(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithExport(), testsupport.WithHistory())

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	if _, _, err := runCLIContext(t, ctx, nil, env.configPath); err != nil {
		t.Fatalf("watch: %v", err)
	}

	exported, err := os.ReadFile(env.cfg.Export.Path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if string(exported) != "Artist Two - Second Song" {
		t.Fatalf("export content = %q", exported)
	}

	out, _, err := runCLI(t, []string{"history", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	var plays []struct {
		Title    string `json:"title"`
		Position int    `json:"position"`
	}
	if err := json.Unmarshal([]byte(out), &plays); err != nil {
		t.Fatalf("decode history: %v\n%s", err, out)
	}
	if len(plays) != 2 || plays[0].Title != "Second Song" || plays[0].Position != 1 {
		t.Fatalf("unexpected plays %+v", plays)
	}

	out, _, err = runCLI(t, []string{"history", "--limit", "1"}, env.configPath)
	if err != nil {
		t.Fatalf("history --limit: %v", err)
	}
	requireContains(t, out, "Second Song")
	requireContains(t, out, "Showing 1 of 2 plays")
}

func TestDumpTableReplacesControlCharacters(t *testing.T) {
	env := setupCLITestEnv(t)
	env.cfg.Parser.Sanitize = false
	writeTestConfig(t, env.configPath, env.cfg)

	raw := filepath.Join(t.TempDir(), "raw.session")
	testsupport.WriteSession(t, raw, testsupport.Record{Title: "Bad\x1b[2JTitle", Artist: "Artist"})

	out, _, err := runCLI(t, []string{"dump", raw}, env.configPath)
	if err != nil {
		t.Fatalf("dump: %v", err)
	}
	if strings.Contains(out, "\x1b") {
		t.Fatalf("escape byte reached the terminal: %q", out)
	}
	requireContains(t, out, "Bad?[2JTitle")
	requireContains(t, out, "Artist")
}

func TestHistoryWithoutDatabase(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"history"}, env.configPath)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, out, "No history recorded yet")
}
