// Package sessionlog parses Serato session history files into track records.
//
// A session file is an append-only binary stream. Records are found by
// splitting the stream on the "oent" marker substring, then locating four
// fixed 5-byte tags (title, artist, style, end) inside each chunk. Field text
// starts a fixed 10 bytes after its tag and runs to the next tag in the
// record. Parsing is deliberately forgiving: a chunk without a title or end
// tag is skipped, reversed or overlapping tags produce empty fields, and no
// input can make Parse fail or panic.
//
// The whole file is re-parsed on every call. There is no incremental state, so
// parsing the same bytes twice always yields the same ordered track list.
package sessionlog
