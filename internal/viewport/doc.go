// Package viewport converts between timeline seconds and view-space pixels
// under zoom, and resolves pointer drags into segment time updates with
// optional grid snapping.
//
// Drags write through to the timeline store on every pointer move; the visual
// drag and the data mutation are the same operation, there is no separate
// preview/commit phase.
package viewport
