// Package watch runs the tail loop.
//
// Every cycle re-reads the whole session file, parses it into a fresh track
// list, hands the trailing window to the renderer, and then publishes a
// Snapshot to each configured sink (export file, history database, overlay
// endpoint). Sink failures are logged and never stop the loop. Read failures
// end it.
package watch
