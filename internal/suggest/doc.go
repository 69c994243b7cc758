// Package suggest scans the timeline and emits ranked, actionable
// production suggestions.
//
// Analyze runs a fixed battery of independent checks. Each triggered check
// yields a Suggestion carrying a one-shot remediation closure; applying it
// performs the mutation and retires only that suggestion. Suggestions are
// ephemeral and must be regenerated after any edit.
package suggest
