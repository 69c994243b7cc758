// Package scriptimport turns SPEAKER-tagged script text into timeline
// tracks: one track per detected speaker, segments laid out by an explicit
// layout policy with durations estimated from text length.
package scriptimport
