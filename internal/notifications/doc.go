// Package notifications delivers production progress alerts over ntfy.
//
// When no topic is configured a noop service is returned so callers never
// need to branch on notification availability.
package notifications
