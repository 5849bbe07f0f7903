package sessionlog

import "seratail/internal/textutil"

type tagKind int

const (
	tagNone tagKind = iota
	tagTitle
	tagArtist
	tagStyle
	tagEnd
)

// span runs from the text start of one tag to the raw offset of another.
// A zero span means the field stays empty.
type span struct {
	from tagKind
	to   tagKind
}

type layout struct {
	title  span
	artist span
	style  span
}

type layoutKey struct {
	artist bool
	style  bool
}

// layouts is keyed by which optional tags are present.
var layouts = map[layoutKey]layout{
	{artist: true, style: true}: {
		title:  span{tagTitle, tagArtist},
		artist: span{tagArtist, tagStyle},
		style:  span{tagStyle, tagEnd},
	},
	{artist: true, style: false}: {
		title:  span{tagTitle, tagArtist},
		artist: span{tagArtist, tagEnd},
	},
	{artist: false, style: true}: {
		title: span{tagTitle, tagStyle},
		style: span{tagStyle, tagEnd},
	},
	{artist: false, style: false}: {
		title: span{tagTitle, tagEnd},
	},
}

func (o TagOffsets) at(kind tagKind) Offset {
	switch kind {
	case tagTitle:
		return o.Title
	case tagArtist:
		return o.Artist
	case tagStyle:
		return o.Style
	case tagEnd:
		return o.End
	default:
		return Absent
	}
}

// Extract builds a Track from chunk using the located tag offsets. It
// returns false when the title or end tag is missing.
func Extract(chunk []byte, offs TagOffsets, opts Options) (Track, bool) {
	if !offs.Complete() {
		return Track{}, false
	}
	l := layouts[layoutKey{artist: offs.Artist.Present(), style: offs.Style.Present()}]
	return Track{
		Title:  field(chunk, offs, l.title, opts),
		Artist: field(chunk, offs, l.artist, opts),
		Style:  field(chunk, offs, l.style, opts),
	}, true
}

func field(chunk []byte, offs TagOffsets, sp span, opts Options) string {
	if sp.from == tagNone {
		return ""
	}
	from, to := offs.at(sp.from), offs.at(sp.to)
	if !from.Present() || !to.Present() {
		return ""
	}
	raw := slice(chunk, int(from)+FieldSkip, int(to))
	if len(raw) == 0 {
		return ""
	}
	raw = textutil.StripNUL(raw)
	if opts.Sanitize {
		raw = textutil.SanitizeBytes(raw, opts.placeholder())
	}
	return Decode(raw)
}

// slice returns chunk[start:end], or nil when the range is empty or
// reversed. end is clamped to the chunk.
func slice(chunk []byte, start, end int) []byte {
	if end > len(chunk) {
		end = len(chunk)
	}
	if start < 0 || start >= end {
		return nil
	}
	return chunk[start:end]
}
