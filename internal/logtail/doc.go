// Package logtail reads the tail of piecebook's JSON log file.
//
// Read keeps a ring of the last N matching records, so memory stays bounded
// by N rather than by the file size. Records below the requested level are
// skipped before they enter the ring. Lines that are not JSON records (a
// truncated write, a panic trace) are returned as raw entries at INFO.
//
// Only the active file is read; rotated and compressed backups are ignored.
// A missing file yields no entries and no error.
package logtail
