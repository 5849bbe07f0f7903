package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/flock"

	"seratail/internal/fileutil"
	"seratail/internal/sessionlog"
	"seratail/internal/watch"
)

// DefaultFormat is used when no format is configured.
const DefaultFormat = "{artist} - {title}"

const lockRetryDelay = 50 * time.Millisecond

// Options configures a Writer.
type Options struct {
	Path   string
	Format string
}

// Writer is a watch.Sink that exports the current track.
type Writer struct {
	path   string
	format string
	lock   *flock.Flock

	mu   sync.Mutex
	last string
	init bool
}

// New returns a writer for opts.Path, creating its parent directory.
func New(opts Options) (*Writer, error) {
	path := strings.TrimSpace(opts.Path)
	if path == "" {
		return nil, errors.New("export path is required")
	}
	format := opts.Format
	if strings.TrimSpace(format) == "" {
		format = DefaultFormat
	}
	// The lock file sits beside the export file, so the directory must exist
	// before the first Publish.
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create export directory %q: %w", dir, err)
	}
	return &Writer{
		path:   path,
		format: format,
		lock:   flock.New(path + ".lock"),
	}, nil
}

// Name implements watch.Sink.
func (w *Writer) Name() string { return "export" }

// Path returns the export file location.
func (w *Writer) Path() string { return w.path }

// Publish writes the snapshot's latest track. An empty session exports an
// empty file.
func (w *Writer) Publish(ctx context.Context, snap watch.Snapshot) error {
	content := ""
	if track, ok := snap.Latest(); ok {
		content = Format(w.format, track)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.init && content == w.last {
		return nil
	}

	locked, err := w.lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return fmt.Errorf("lock export file: %w", err)
	}
	if !locked {
		return fmt.Errorf("lock export file %q: held by another process", w.path)
	}
	defer func() { _ = w.lock.Unlock() }()

	same, err := fileutil.SameContent(w.path, []byte(content))
	if err != nil {
		return fmt.Errorf("inspect export file: %w", err)
	}
	if !same {
		if err := fileutil.WriteFileAtomic(w.path, []byte(content), 0o644); err != nil {
			return fmt.Errorf("write export file: %w", err)
		}
	}
	w.last = content
	w.init = true
	return nil
}

// Format substitutes {title}, {artist} and {style} in format with the
// track's fields and trims surrounding whitespace.
func Format(format string, track sessionlog.Track) string {
	r := strings.NewReplacer(
		"{title}", track.Title,
		"{artist}", track.Artist,
		"{style}", track.Style,
	)
	return strings.TrimSpace(r.Replace(format))
}
