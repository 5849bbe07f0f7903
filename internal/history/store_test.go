package history_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"seratail/internal/history"
	"seratail/internal/sessionlog"
	"seratail/internal/testsupport"
	"seratail/internal/watch"
)

func mustOpen(t testing.TB, path string) *history.Store {
	t.Helper()

	store, err := history.Open(path)
	if err != nil {
		t.Fatalf("history.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

func TestRecordIsIdempotentAcrossCycles(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithHistory())
	store := mustOpen(t, cfg.History.Path)
	ctx := context.Background()
	now := time.Now()

	tracks := []sessionlog.Track{
		{Title: "One", Artist: "A", Style: "House"},
		{Title: "Two", Artist: "B"},
	}
	n, err := store.Record(ctx, "s1.session", tracks, "run-1", now)
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if n != 2 {
		t.Fatalf("inserted %d rows, want 2", n)
	}

	n, err = store.Record(ctx, "s1.session", tracks, "run-1", now.Add(time.Second))
	if err != nil {
		t.Fatalf("second Record: %v", err)
	}
	if n != 0 {
		t.Fatalf("re-recording the same list inserted %d rows", n)
	}

	tracks = append(tracks, sessionlog.Track{Title: "Three"})
	n, err = store.Record(ctx, "s1.session", tracks, "run-1", now.Add(2*time.Second))
	if err != nil {
		t.Fatalf("third Record: %v", err)
	}
	if n != 1 {
		t.Fatalf("appended track inserted %d rows, want 1", n)
	}

	count, err := store.Count(ctx, "s1.session")
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 3 {
		t.Fatalf("Count = %d, want 3", count)
	}
}

func TestRecordIgnoresRowsFromEarlierRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	ctx := context.Background()
	tracks := []sessionlog.Track{{Title: "One"}, {Title: "Two"}}

	first := mustOpen(t, path)
	if _, err := first.Record(ctx, "s.session", tracks, "run-1", time.Now()); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	second := mustOpen(t, path)
	n, err := second.Record(ctx, "s.session", tracks, "run-2", time.Now())
	if err != nil {
		t.Fatalf("Record after reopen: %v", err)
	}
	if n != 0 {
		t.Fatalf("reopened store inserted %d duplicate rows", n)
	}

	plays, err := second.List(ctx, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	for _, p := range plays {
		if p.RunID != "run-1" {
			t.Fatalf("play %d has run id %q, want the first run", p.Position, p.RunID)
		}
	}
}

func TestListNewestFirstWithLimit(t *testing.T) {
	store := mustOpen(t, filepath.Join(t.TempDir(), "history.db"))
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 21, 0, 0, 0, time.UTC)

	tracks := []sessionlog.Track{{Title: "One"}}
	if _, err := store.Record(ctx, "s.session", tracks, "run", base); err != nil {
		t.Fatal(err)
	}
	tracks = append(tracks, sessionlog.Track{Title: "Two", Artist: "B", Style: "Disco"})
	if _, err := store.Record(ctx, "s.session", tracks, "run", base.Add(time.Minute)); err != nil {
		t.Fatal(err)
	}

	plays, err := store.List(ctx, 1)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(plays) != 1 {
		t.Fatalf("expected 1 play, got %d", len(plays))
	}
	got := plays[0]
	if diff := cmp.Diff(sessionlog.Track{Title: "Two", Artist: "B", Style: "Disco"}, got.Track); diff != "" {
		t.Fatalf("latest play mismatch (-want +got):\n%s", diff)
	}
	if got.Position != 1 || got.Session != "s.session" {
		t.Fatalf("unexpected play %+v", got)
	}
	if !got.FirstSeen.Equal(base.Add(time.Minute)) {
		t.Fatalf("FirstSeen = %s", got.FirstSeen)
	}
}

func TestPublishRecordsSnapshot(t *testing.T) {
	store := mustOpen(t, filepath.Join(t.TempDir(), "history.db"))
	var sink watch.Sink = store

	snap := watch.Snapshot{
		RunID:     "run-x",
		Session:   "live.session",
		Tracks:    []sessionlog.Track{{Title: "A"}, {Title: "B"}},
		UpdatedAt: time.Now(),
	}
	if err := sink.Publish(context.Background(), snap); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	count, err := store.Count(context.Background(), "")
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 2 {
		t.Fatalf("Count = %d, want 2", count)
	}
}

func TestOpenRejectsSchemaMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	store := mustOpen(t, path)
	if err := store.Close(); err != nil {
		t.Fatal(err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec("UPDATE schema_version SET version = 99"); err != nil {
		t.Fatal(err)
	}
	_ = db.Close()

	if _, err := history.Open(path); !errors.Is(err, history.ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := history.Open(""); err == nil {
		t.Fatal("expected error for empty path")
	}
}
