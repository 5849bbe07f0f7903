package sessionlog

import (
	"fmt"

	"golang.org/x/text/encoding/charmap"
)

// Decode maps raw bytes to text one character per byte: character i has the
// codepoint of byte i. Every byte value, NUL and control bytes included,
// survives as a distinct character.
func Decode(b []byte) string {
	out, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
	if err != nil {
		// Unreachable: ISO-8859-1 assigns every byte value.
		runes := make([]rune, len(b))
		for i, c := range b {
			runes[i] = rune(c)
		}
		return string(runes)
	}
	return string(out)
}

// Encode reverses Decode. It fails if s holds a character above U+00FF.
func Encode(s string) ([]byte, error) {
	out, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("encode latin-1: %w", err)
	}
	return out, nil
}
