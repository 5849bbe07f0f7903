// Package overlay serves the current track list over HTTP for browser-source
// overlays. The watch loop publishes snapshots; request handlers only read
// the most recent one.
package overlay
