package sessionlog

import "strings"

// Track is one played track recovered from a session record.
type Track struct {
	Title  string `json:"title"`
	Artist string `json:"artist"`
	Style  string `json:"style"`
}

// String joins the non-empty fields with an em-dash separator.
func (t Track) String() string {
	parts := make([]string, 0, 3)
	for _, field := range []string{t.Title, t.Artist, t.Style} {
		if field != "" {
			parts = append(parts, field)
		}
	}
	return strings.Join(parts, " — ")
}

// Options controls how field bytes become text.
type Options struct {
	// Sanitize replaces bytes outside printable ASCII with Placeholder.
	Sanitize bool
	// Placeholder defaults to '?' when zero.
	Placeholder byte
}

// DefaultOptions returns the options used by the watch loop.
func DefaultOptions() Options {
	return Options{Sanitize: true, Placeholder: '?'}
}

func (o Options) placeholder() byte {
	if o.Placeholder == 0 {
		return '?'
	}
	return o.Placeholder
}
