// Package main hosts the seratail CLI entrypoint and command graph.
//
// Running seratail with no subcommand tails the newest Serato session log and
// redraws the last few tracks every poll interval. Subcommands inspect
// session files once, list recorded play history, and scaffold the config
// file. Configuration is resolved once per invocation in commandContext so
// subcommands only deal with their own output.
package main
