// Package timeline holds the canonical in-memory representation of one
// production session: tracks, segments, effect chains, and volume automation.
//
// The store applies every mutation as a whole-value replacement so the
// timeline can be snapshotted and restored cheaply; the auto-produce
// pipeline relies on this for rollback. The store is not safe for concurrent
// use; the editor drives it from a single goroutine, and nothing in the core
// writes to it from more than one.
package timeline
