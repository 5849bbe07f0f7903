package sessionlog

import "bytes"

// Delimiter is the record boundary marker. It is a substring of the native
// record header, so the same four letters inside field text cause a false
// split; that behaviour is kept as observed.
const Delimiter = "oent"

var delimiter = []byte(Delimiter)

// Split cuts data into candidate record chunks at every Delimiter. The first
// chunk is the file preamble; it carries no track tags and drops out during
// extraction.
func Split(data []byte) [][]byte {
	return bytes.Split(data, delimiter)
}
