package textutil

import "bytes"

// Placeholder is the glyph substituted for characters that are unsafe to print.
const Placeholder = '?'

// IsPrintable reports whether r is in the printable ASCII range.
func IsPrintable(r rune) bool {
	return r >= 0x20 && r <= 0x7e
}

// SanitizeBytes returns a copy of b with every byte outside printable ASCII
// replaced by placeholder. The result has the same length as b.
func SanitizeBytes(b []byte, placeholder byte) []byte {
	out := make([]byte, len(b))
	for i, c := range b {
		if IsPrintable(rune(c)) {
			out[i] = c
			continue
		}
		out[i] = placeholder
	}
	return out
}

// StripNUL removes every zero byte from b.
func StripNUL(b []byte) []byte {
	if bytes.IndexByte(b, 0) < 0 {
		return b
	}
	out := make([]byte, 0, len(b))
	for _, c := range b {
		if c != 0 {
			out = append(out, c)
		}
	}
	return out
}

// IsControl reports whether r is a C0 or C1 control character or DEL.
func IsControl(r rune) bool {
	return r < 0x20 || (r >= 0x7f && r <= 0x9f)
}

// SanitizeControl replaces only control characters with placeholder, leaving
// printable Latin-1 intact. The rune count of the result matches the input.
func SanitizeControl(s string, placeholder rune) string {
	runes := []rune(s)
	changed := false
	for i, r := range runes {
		if IsControl(r) {
			runes[i] = placeholder
			changed = true
		}
	}
	if !changed {
		return s
	}
	return string(runes)
}
