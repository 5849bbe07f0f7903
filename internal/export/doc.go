// Package export writes the most recent track to a small text file that
// streaming software can display. Writes are atomic and serialised through
// an flock on a sibling lock file, and unchanged content is never rewritten.
package export
