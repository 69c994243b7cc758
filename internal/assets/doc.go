// Package assets places music, SFX, and ambient material onto the timeline.
//
// Every insertion follows the same contract: locate the target track by role,
// synthesize it with role-appropriate defaults when missing, build a segment
// from the asset descriptor with role-specific defaults, and for intro and
// jingle insertions run the ducking generator over the inserted range. These
// functions mutate the store directly; they are not previewable.
package assets
