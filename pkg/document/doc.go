// Package document defines the email template tree and the pure functions
// that edit it.
//
// A Template is an ordered list of Components. Every Component carries a
// globally unique ID, a Type from a closed set, an open Props bag and, for
// container-like types only, an ordered list of children. Grids are a special
// container whose children are container-typed columns; the column count is
// mirrored in props.columns.
//
// # Mutation
//
// All tree operations address nodes by ID, never by position, and never modify
// their input. Each call copies the nodes on the path from the root to the
// edited node and reuses every other subtree as-is:
//
//	tree := document.AppendRoot(nil, text)
//	tree = document.InsertChild(tree, columnID, button)
//	tree = document.Reorder(tree, button.ID, other.ID)
//
// Operations that cannot find their target are no-ops and return the input
// slice unchanged. Nothing in this package returns an error for a malformed
// or unknown ID; Validate is the only checking entry point and is meant for
// templates arriving from outside the editor.
//
// # Serialization
//
// Components marshal to JSON and YAML as {id, type, props, children}. The
// children key is written only when the slice is non-nil, so a leaf and an
// empty container stay distinguishable across a round trip. Props maps are
// encoded with sorted keys, which makes Equal and the history comparison
// deterministic.
package document
