package sessionlog

// ParseChunk locates tags in one chunk and extracts its track.
func ParseChunk(chunk []byte, opts Options) (Track, bool) {
	return Extract(chunk, Locate(chunk), opts)
}

// Parse turns a whole session file into its ordered track list. Chunks that
// do not hold a complete record are skipped without error.
func Parse(data []byte, opts Options) []Track {
	var tracks []Track
	for _, chunk := range Split(data) {
		if track, ok := ParseChunk(chunk, opts); ok {
			tracks = append(tracks, track)
		}
	}
	return tracks
}
