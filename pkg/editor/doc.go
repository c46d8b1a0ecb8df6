// Package editor holds the state of an email template being edited: the
// component tree, its undo history and the current selection.
//
// A Session turns editing intents into pure tree mutations. Drag-and-drop
// gestures arrive as a DragEnd and are resolved against the drop target:
//
//   - an id ending in "-dropzone" with a parent id inserts (palette drags)
//     or moves (existing nodes) into that parent;
//   - the canvas id appends or moves to the root list;
//   - a palette drag over anything else except another palette item
//     appends at the root;
//   - an existing node over another node reorders them within the
//     shallowest list holding both.
//
// Every mutation that changes the serialized tree is committed to history
// and reported to the change callback with the full template. Mutations
// that do not apply are silent no-ops.
//
// Sessions are safe for concurrent use. Manager keeps sessions by id for
// the HTTP layer and drops the ones left idle past their TTL.
package editor
