// Package history records every track seen in a session log to SQLite.
//
// Plays are keyed by session path and list position, and are inserted with
// INSERT OR IGNORE, so re-parsing the whole log every cycle never duplicates
// rows. The Store doubles as a watch sink. Schema changes bump the version in
// schema.go; users delete the database to adopt the new schema.
package history
