// Package sessions finds and reads Serato session files.
//
// List enumerates a sessions folder along with each file's creation time,
// PickLatest chooses the newest entry from an explicit listing, and ReadAll
// loads a whole session file for parsing. Creation time comes from the
// platform birth time where the filesystem reports one and falls back to the
// modification time elsewhere.
package sessions
