// Package logtail reads the tail of bloom's log file and renders its JSON
// entries for the terminal.
//
// # Reading Log Files
//
// Read uses a ring buffer to extract the last maxLines from a file in one
// sequential pass, using O(maxLines) memory regardless of file size. A missing
// file is not an error: bloom may not have logged anything yet.
//
//	lines, err := logtail.Read(cfg.LogFile, 200)
//
// # Formatting
//
// The logging package writes one JSON object per line with ts, level and
// message keys. Parse decodes such a line into an Entry; Format renders it as
//
//	2024-03-01 09:30:00 WARNING [record_store] done list fetch failed date=2024-03-01
//
// with colours from fatih/color. Colour is dropped automatically when stdout
// is not a terminal. Lines that are not JSON pass through unchanged, so stray
// panics or partial writes stay readable.
package logtail
