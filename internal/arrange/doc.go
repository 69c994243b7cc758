// Package arrange implements timing heuristics over speech tracks: gap
// detection within and across tracks, gap tightening, and dialogue overlap
// creation. The suggestion engine reports these findings; the production
// pipeline applies them directly.
package arrange
