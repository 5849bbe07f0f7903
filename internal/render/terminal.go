package render

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"seratail/internal/sessionlog"
	"seratail/internal/textutil"
)

// ClearSequence erases the screen and homes the cursor.
const ClearSequence = "\x1b[2J\x1b[1;1H"

const (
	StyleList  = "list"
	StyleTable = "table"
)

var (
	currentColors = text.Colors{text.Bold, text.FgGreen}
	earlierColors = text.Colors{text.FgHiBlack}
)

// Options configures a Terminal.
type Options struct {
	Style       string
	Colorize    bool
	ClearScreen bool
}

// Terminal renders track windows to a writer.
type Terminal struct {
	out  io.Writer
	opts Options
}

// NewTerminal returns a renderer writing to out.
func NewTerminal(out io.Writer, opts Options) *Terminal {
	if opts.Style == "" {
		opts.Style = StyleList
	}
	return &Terminal{out: out, opts: opts}
}

// Render draws tracks, marking tracks[current] as the most recent. An empty
// window draws nothing.
func (t *Terminal) Render(tracks []sessionlog.Track, current int) error {
	if len(tracks) == 0 {
		return nil
	}

	var b strings.Builder
	if t.opts.ClearScreen {
		b.WriteString(ClearSequence)
	}
	switch t.opts.Style {
	case StyleTable:
		b.WriteString(t.table(tracks, current))
		b.WriteByte('\n')
	default:
		t.list(&b, tracks, current)
	}

	if _, err := io.WriteString(t.out, b.String()); err != nil {
		return fmt.Errorf("render tracks: %w", err)
	}
	return nil
}

func (t *Terminal) list(b *strings.Builder, tracks []sessionlog.Track, current int) {
	for i, track := range tracks {
		line := displayLine(track)
		if len(tracks) > 1 {
			marker := "  "
			if i == current {
				marker = "> "
			}
			line = marker + line
		}
		b.WriteString(t.paint(line, i == current))
		b.WriteByte('\n')
	}
}

func (t *Terminal) table(tracks []sessionlog.Track, current int) string {
	rows := make([][]string, 0, len(tracks))
	for i, track := range tracks {
		cells := []string{
			strconv.Itoa(i + 1),
			Clean(track.Title),
			Clean(track.Artist),
			Clean(track.Style),
		}
		for j := range cells {
			cells[j] = t.paint(cells[j], i == current)
		}
		rows = append(rows, cells)
	}
	return Table([]string{"#", "Title", "Artist", "Style"}, rows, []Alignment{AlignRight})
}

func (t *Terminal) paint(s string, current bool) string {
	if !t.opts.Colorize || s == "" {
		return s
	}
	if current {
		return currentColors.Sprint(s)
	}
	return earlierColors.Sprint(s)
}

func displayLine(track sessionlog.Track) string {
	track.Title = Clean(track.Title)
	track.Artist = Clean(track.Artist)
	track.Style = Clean(track.Style)
	if line := track.String(); line != "" {
		return line
	}
	return "(untitled)"
}

// Clean replaces control characters in s so log text cannot drive the
// terminal. Printable Latin-1 is kept.
func Clean(s string) string {
	return textutil.SanitizeControl(s, textutil.Placeholder)
}

// ShouldColorize resolves a colour mode (auto, always, never) for writer.
// Auto enables colour only for terminals.
func ShouldColorize(writer io.Writer, mode string) bool {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "always":
		return true
	case "never":
		return false
	}
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
