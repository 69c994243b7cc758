// Package render replaces estimated speech segments with rendered audio.
// Pending speech segments are sent to the TTS service one by one; each
// result's audio locator and measured duration overwrite the estimate, and
// later segments on the same track shift so the gaps between turns survive
// the duration change.
package render
