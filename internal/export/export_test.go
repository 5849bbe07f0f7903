package export

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofrs/flock"

	"seratail/internal/sessionlog"
	"seratail/internal/watch"
)

func snapshot(tracks ...sessionlog.Track) watch.Snapshot {
	return watch.Snapshot{Session: "s.session", Tracks: tracks, UpdatedAt: time.Now()}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func TestFormat(t *testing.T) {
	track := sessionlog.Track{Title: "Song", Artist: "Band", Style: "House"}
	tests := []struct {
		format string
		want   string
	}{
		{DefaultFormat, "Band - Song"},
		{"{title} [{style}]", "Song [House]"},
		{"  {title}  ", "Song"},
		{"static", "static"},
	}
	for _, tt := range tests {
		if got := Format(tt.format, track); got != tt.want {
			t.Fatalf("Format(%q) = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestPublishWritesLatestTrack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "obs", "now-playing.txt")
	w, err := New(Options{Path: path})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	err = w.Publish(context.Background(), snapshot(
		sessionlog.Track{Title: "Old", Artist: "A"},
		sessionlog.Track{Title: "New", Artist: "B"},
	))
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if got := readFile(t, path); got != "B - New" {
		t.Fatalf("export content = %q", got)
	}
}

func TestPublishSkipsUnchangedContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "now.txt")
	w, err := New(Options{Path: path, Format: "{title}"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	snap := snapshot(sessionlog.Track{Title: "Same"})
	if err := w.Publish(context.Background(), snap); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	past := time.Now().Add(-time.Hour)
	if err := os.Chtimes(path, past, past); err != nil {
		t.Fatal(err)
	}
	if err := w.Publish(context.Background(), snap); err != nil {
		t.Fatalf("second Publish: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if !info.ModTime().Equal(past) {
		t.Fatalf("file was rewritten despite unchanged content")
	}
}

func TestPublishEmptySessionClearsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "now.txt")
	if err := os.WriteFile(path, []byte("stale"), 0o644); err != nil {
		t.Fatal(err)
	}
	w, err := New(Options{Path: path})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := w.Publish(context.Background(), snapshot()); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if got := readFile(t, path); got != "" {
		t.Fatalf("expected empty export, got %q", got)
	}
}

func TestPublishFailsWhenLockHeld(t *testing.T) {
	path := filepath.Join(t.TempDir(), "now.txt")
	other := flock.New(path + ".lock")
	if ok, err := other.TryLock(); err != nil || !ok {
		t.Fatalf("take lock: ok=%v err=%v", ok, err)
	}
	defer func() { _ = other.Unlock() }()

	w, err := New(Options{Path: path})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Millisecond)
	defer cancel()
	if err := w.Publish(ctx, snapshot(sessionlog.Track{Title: "x"})); err == nil {
		t.Fatal("expected lock contention error")
	}
}

func TestNewCreatesMissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "stream", "obs")
	path := filepath.Join(dir, "np.txt")
	w, err := New(Options{Path: path})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Fatalf("expected export directory to exist: %v", err)
	}
	if err := w.Publish(context.Background(), snapshot(sessionlog.Track{Title: "T"})); err != nil {
		t.Fatalf("Publish into fresh directory: %v", err)
	}
	if got := readFile(t, path); got != "T" {
		t.Fatalf("export content = %q", got)
	}
}

func TestNewRequiresPath(t *testing.T) {
	if _, err := New(Options{Path: "  "}); err == nil {
		t.Fatal("expected error for blank path")
	}
}
