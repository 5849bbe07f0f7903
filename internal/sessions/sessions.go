package sessions

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ErrNoSession reports that no session file with a usable timestamp exists.
var ErrNoSession = errors.New("no session file with a usable creation timestamp")

// Entry is one candidate session file.
type Entry struct {
	Path    string
	Created time.Time
	Size    int64
}

// Usable reports whether the entry carries a timestamp after the Unix epoch.
func (e Entry) Usable() bool {
	return e.Created.After(time.Unix(0, 0))
}

// List returns the regular files in dir whose extension matches ext
// (case-insensitive). An empty ext accepts every file.
func List(dir, ext string) ([]Entry, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("open sessions folder %q: %w", dir, err)
	}

	ext = strings.ToLower(strings.TrimSpace(ext))
	entries := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		if de.IsDir() {
			continue
		}
		if ext != "" && strings.ToLower(filepath.Ext(de.Name())) != ext {
			continue
		}
		info, err := de.Info()
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("stat session file %q: %w", de.Name(), err)
		}
		if !info.Mode().IsRegular() {
			continue
		}
		path := filepath.Join(dir, de.Name())
		entries = append(entries, Entry{
			Path:    path,
			Created: creationTime(path, info),
			Size:    info.Size(),
		})
	}
	return entries, nil
}

// PickLatest returns the path of the entry with the greatest creation time.
// Ties keep the earliest entry in the listing.
func PickLatest(entries []Entry) (string, error) {
	entry, err := pickLatest(entries)
	if err != nil {
		return "", err
	}
	return entry.Path, nil
}

func pickLatest(entries []Entry) (Entry, error) {
	var (
		best  Entry
		found bool
	)
	for _, e := range entries {
		if !e.Usable() {
			continue
		}
		if !found || e.Created.After(best.Created) {
			best = e
			found = true
		}
	}
	if !found {
		return Entry{}, ErrNoSession
	}
	return best, nil
}

// Latest lists dir and returns its newest session entry.
func Latest(dir, ext string) (Entry, error) {
	entries, err := List(dir, ext)
	if err != nil {
		return Entry{}, err
	}
	entry, err := pickLatest(entries)
	if err != nil {
		return Entry{}, fmt.Errorf("%s: %w", dir, err)
	}
	return entry, nil
}

// ReadAll reads the entire session file into memory.
func ReadAll(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("open session file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("session path %q is a directory", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read session file: %w", err)
	}
	return data, nil
}
