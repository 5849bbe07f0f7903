// Package textutil keeps decoded session text safe to print.
//
// Track metadata arrives as raw bytes pulled out of a binary log. Anything
// outside printable ASCII, such as control bytes or extended Latin-1, is
// swapped for a placeholder before it reaches a terminal. The swap never
// changes the length of the value, so byte offsets computed earlier stay
// valid.
package textutil
