// Package exportjob persists timeline export jobs in SQLite.
//
// Each job records the timeline snapshot it was created from, the requested
// render format, and its lifecycle status. The store serializes access with
// an advisory file lock so only one mixdown process mutates the database at
// a time.
package exportjob
