package sessionlog

import "bytes"

// Offset is a byte position inside a chunk, or Absent.
type Offset int

// Absent marks a tag that does not occur in the chunk.
const Absent Offset = -1

// Present reports whether the tag was found.
func (o Offset) Present() bool { return o >= 0 }

// TagLen is the width of every field tag.
const TagLen = 5

// FieldSkip is the distance from a tag to its text: the tag itself plus a
// fixed five-byte sub-header.
const FieldSkip = 10

// Field tags: four zero bytes followed by a discriminator.
var (
	TitleTag  = []byte{0x00, 0x00, 0x00, 0x00, 0x06}
	ArtistTag = []byte{0x00, 0x00, 0x00, 0x00, 0x07}
	StyleTag  = []byte{0x00, 0x00, 0x00, 0x00, 0x09}
	EndTag    = []byte{0x00, 0x00, 0x00, 0x00, 0x0f}
)

// TagOffsets holds the first occurrence of each tag within one chunk. The
// offsets are independent and need not be increasing.
type TagOffsets struct {
	Title  Offset
	Artist Offset
	Style  Offset
	End    Offset
}

// Complete reports whether the chunk has the mandatory title and end tags.
func (o TagOffsets) Complete() bool {
	return o.Title.Present() && o.End.Present()
}

// Locate finds the first occurrence of every tag in chunk.
func Locate(chunk []byte) TagOffsets {
	return TagOffsets{
		Title:  find(chunk, TitleTag),
		Artist: find(chunk, ArtistTag),
		Style:  find(chunk, StyleTag),
		End:    find(chunk, EndTag),
	}
}

func find(chunk, tag []byte) Offset {
	idx := bytes.Index(chunk, tag)
	if idx < 0 {
		return Absent
	}
	return Offset(idx)
}
