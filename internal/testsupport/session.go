package testsupport

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// Record describes one session record for fixture files. Skip flags drop the
// matching tag entirely.
type Record struct {
	Title  string
	Artist string
	Style  string

	SkipTitle  bool
	SkipArtist bool
	SkipStyle  bool
	SkipEnd    bool
}

var (
	titleTag  = []byte{0x00, 0x00, 0x00, 0x00, 0x06}
	artistTag = []byte{0x00, 0x00, 0x00, 0x00, 0x07}
	styleTag  = []byte{0x00, 0x00, 0x00, 0x00, 0x09}
	endTag    = []byte{0x00, 0x00, 0x00, 0x00, 0x0f}
)

// SessionBytes renders a session file: a version preamble followed by one
// "oent" record per entry. Text is written as UTF-16BE, the way the mixing
// software stores it.
func SessionBytes(records ...Record) []byte {
	out := []byte("vrsn\x00\x00\x00\x3c")
	out = append(out, utf16BE("1.0/Serato Scratch LIVE Review")...)
	for _, r := range records {
		out = append(out, RecordBytes(r)...)
	}
	return out
}

// RecordBytes renders a single record including its "oent" header.
func RecordBytes(r Record) []byte {
	out := []byte("oent\x00\x00\x01\x2aadat\x00\x00\x01\x2a")
	if !r.SkipTitle {
		out = appendField(out, titleTag, r.Title)
	}
	if !r.SkipArtist {
		out = appendField(out, artistTag, r.Artist)
	}
	if !r.SkipStyle {
		out = appendField(out, styleTag, r.Style)
	}
	if !r.SkipEnd {
		out = append(out, endTag...)
		out = append(out, 0x00, 0x00, 0x00, 0x04, 0x01, 0x5e, 0x2b, 0x11, 0x3a)
	}
	return out
}

func appendField(out, tag []byte, text string) []byte {
	payload := utf16BE(text)
	out = append(out, tag...)
	out = append(out, 0x00, 0x00, 0x00, byte(len(payload)), 0x00)
	return append(out, payload...)
}

func utf16BE(text string) []byte {
	out := make([]byte, 0, len(text)*2)
	for i := 0; i < len(text); i++ {
		out = append(out, 0x00, text[i])
	}
	return out
}

// WriteSession writes a fixture session file, creating parent directories.
func WriteSession(t testing.TB, path string, records ...Record) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, SessionBytes(records...), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// AppendSession appends records to an existing fixture file.
func AppendSession(t testing.TB, path string, records ...Record) {
	t.Helper()

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	for _, r := range records {
		if _, err := f.Write(RecordBytes(r)); err != nil {
			t.Fatalf("append %s: %v", path, err)
		}
	}
}

// Touch sets both access and modification time of path.
func Touch(t testing.TB, path string, ts time.Time) {
	t.Helper()

	if err := os.Chtimes(path, ts, ts); err != nil {
		t.Fatalf("chtimes %s: %v", path, err)
	}
}
