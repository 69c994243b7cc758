// Package produce drives the one-click production pipeline.
//
// Run executes eight strictly sequential steps over the timeline store:
// intro, outro, background bed with ducking, natural sound effects, timing
// optimization, theme ambience, emotional dynamics, and finalization. The
// store is snapshotted before the first step; any step failure restores the
// snapshot and surfaces one aggregate error.
package produce
