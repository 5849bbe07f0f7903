package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"seratail/internal/logging"
	"seratail/internal/sessionlog"
	"seratail/internal/sessions"
)

// Renderer draws the trailing window of the track list. current indexes the
// most recent track in tracks, or is -1 when tracks is empty.
type Renderer interface {
	Render(tracks []sessionlog.Track, current int) error
}

// Sink receives every cycle's snapshot.
type Sink interface {
	Name() string
	Publish(ctx context.Context, snap Snapshot) error
}

// Snapshot is the result of one cycle. Tracks holds the full list in log
// order and must be treated as read-only.
type Snapshot struct {
	RunID     string
	Session   string
	Tracks    []sessionlog.Track
	UpdatedAt time.Time
}

// Latest returns the most recent track.
func (s Snapshot) Latest() (sessionlog.Track, bool) {
	if len(s.Tracks) == 0 {
		return sessionlog.Track{}, false
	}
	return s.Tracks[len(s.Tracks)-1], true
}

// Options configures a Watcher.
type Options struct {
	Path     string
	Count    int
	Interval time.Duration
	Parser   sessionlog.Options
	Now      func() time.Time
}

// Watcher tails one session file.
type Watcher struct {
	opts     Options
	renderer Renderer
	sinks    []Sink
	logger   *slog.Logger
	runID    string
}

// New validates opts and returns a watcher. A nil logger discards output.
func New(opts Options, renderer Renderer, logger *slog.Logger, sinks ...Sink) (*Watcher, error) {
	if opts.Path == "" {
		return nil, errors.New("session path is required")
	}
	if renderer == nil {
		return nil, errors.New("renderer is required")
	}
	if opts.Count <= 0 {
		return nil, fmt.Errorf("display count must be positive, got %d", opts.Count)
	}
	if opts.Interval <= 0 {
		return nil, fmt.Errorf("poll interval must be positive, got %s", opts.Interval)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	runID := uuid.NewString()
	logger = logging.NewComponentLogger(logger, "watch").With(
		logging.String(logging.FieldRunID, runID),
		logging.String(logging.FieldSession, opts.Path),
	)
	return &Watcher{
		opts:     opts,
		renderer: renderer,
		sinks:    sinks,
		logger:   logger,
		runID:    runID,
	}, nil
}

// RunID identifies this watcher in logs and history rows.
func (w *Watcher) RunID() string {
	return w.runID
}

// Run polls until ctx is cancelled, returning nil on shutdown. A read or
// render failure is returned immediately.
func (w *Watcher) Run(ctx context.Context) error {
	w.logger.Info("watching session", logging.Duration("interval", w.opts.Interval), logging.Int("count", w.opts.Count))

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("watch stopped")
			return nil
		case <-timer.C:
			if err := w.Cycle(ctx); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return err
			}
			timer.Reset(w.opts.Interval)
		}
	}
}

// Cycle performs a single read, parse, render, publish pass.
func (w *Watcher) Cycle(ctx context.Context) error {
	data, err := sessions.ReadAll(w.opts.Path)
	if err != nil {
		return err
	}

	tracks := sessionlog.Parse(data, w.opts.Parser)
	window, current := Window(tracks, w.opts.Count)
	if err := w.renderer.Render(window, current); err != nil {
		return err
	}
	w.logger.Debug("cycle complete", logging.Int(logging.FieldTrackCount, len(tracks)), logging.Int("bytes", len(data)))

	snap := Snapshot{
		RunID:     w.runID,
		Session:   w.opts.Path,
		Tracks:    tracks,
		UpdatedAt: w.opts.Now(),
	}
	for _, sink := range w.sinks {
		if err := sink.Publish(ctx, snap); err != nil {
			logging.WarnWithContext(w.logger, "sink publish failed", "sink_publish_failed",
				logging.String("sink", sink.Name()),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check the "+sink.Name()+" settings in the config file"),
			)
		}
	}
	return nil
}

// Window returns the last n tracks and the index of the most recent one
// within the result. Fewer than n tracks yields all of them; an empty list
// yields an empty window and -1.
func Window(tracks []sessionlog.Track, n int) ([]sessionlog.Track, int) {
	if n <= 0 || len(tracks) == 0 {
		return nil, -1
	}
	if len(tracks) > n {
		tracks = tracks[len(tracks)-n:]
	}
	return tracks, len(tracks) - 1
}
