// Package sqlite provides SQLite-backed persistence for feedback
// records using the pure-Go modernc.org/sqlite driver, so no cgo is
// required.
package sqlite
