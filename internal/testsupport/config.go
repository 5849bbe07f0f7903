package testsupport

import (
	"path/filepath"
	"testing"

	"seratail/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// The Serato folder is <base>/serato and every optional sink is disabled.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.SeratoDir = filepath.Join(base, "serato")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Display.ClearScreen = false
	cfgVal.Display.Color = "never"
	cfgVal.Export.Path = filepath.Join(base, "export", "nowplaying.txt")
	cfgVal.History.Path = filepath.Join(base, "history", "history.db")
	cfgVal.Overlay.Bind = "127.0.0.1:0"

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithCount overrides the display window size.
func WithCount(n int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Display.Count = n
	}
}

// WithExport enables the now-playing export.
func WithExport() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Export.Enabled = true
	}
}

// WithHistory enables the play history database.
func WithHistory() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.History.Enabled = true
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.SeratoDir)
}

// SessionPath returns the path of a named session file under the config's
// sessions folder.
func SessionPath(cfg *config.Config, name string) string {
	return filepath.Join(cfg.SessionsDir(), name)
}
