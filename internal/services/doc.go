// Package services holds the error taxonomy shared by the external
// collaborators (script generation, TTS rendering, export) and the helpers
// for tagging failures with component context.
//
// The core treats these collaborators as opaque: it hands them inputs and
// consumes their outputs, and it never retries on its own.
package services
