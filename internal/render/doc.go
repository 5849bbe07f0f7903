// Package render draws the track window to a terminal.
//
// Terminal implements the watch loop's renderer: it optionally clears the
// screen, then prints each track either as a line or as a row in a rounded
// go-pretty table, highlighting the most recent entry. Table is also used by
// the one-shot CLI commands.
package render
