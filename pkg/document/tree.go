package document

import "slices"

// FindByID returns the first node with the given id in depth-first pre-order.
func FindByID(nodes []Component, id string) (Component, bool) {
	for _, n := range nodes {
		if n.ID == id {
			return n, true
		}
		if len(n.Children) > 0 {
			if found, ok := FindByID(n.Children, id); ok {
				return found, true
			}
		}
	}
	return Component{}, false
}

// Contains reports whether a node with the given id exists anywhere in the tree.
func Contains(nodes []Component, id string) bool {
	_, ok := FindByID(nodes, id)
	return ok
}

// ParentOf returns the id of the node whose children hold id. The second
// result is false when id is not found; an empty parent id means root level.
func ParentOf(nodes []Component, id string) (string, bool) {
	return parentOf(nodes, "", id)
}

func parentOf(nodes []Component, parentID, id string) (string, bool) {
	for _, n := range nodes {
		if n.ID == id {
			return parentID, true
		}
		if len(n.Children) > 0 {
			if p, ok := parentOf(n.Children, n.ID, id); ok {
				return p, true
			}
		}
	}
	return "", false
}

// AppendRoot returns a new root list with node appended.
func AppendRoot(nodes []Component, node Component) []Component {
	out := make([]Component, len(nodes), len(nodes)+1)
	copy(out, nodes)
	return append(out, node)
}

// InsertChild appends node to the children of parentID. The tree is returned
// unchanged when the parent does not exist or cannot accept dropped blocks.
func InsertChild(nodes []Component, parentID string, node Component) []Component {
	out, _ := rewrite(nodes, parentID, func(parent Component) (Component, bool) {
		if !parent.Type.AcceptsDrop() {
			return parent, false
		}
		children := make([]Component, len(parent.Children), len(parent.Children)+1)
		copy(children, parent.Children)
		parent.Children = append(children, node)
		return parent, true
	})
	return out
}

// RemoveByID detaches the node with the given id from any level. It returns
// the pruned tree, the detached node and whether anything was removed.
func RemoveByID(nodes []Component, id string) ([]Component, Component, bool) {
	for i, n := range nodes {
		if n.ID == id {
			out := make([]Component, 0, len(nodes)-1)
			out = append(out, nodes[:i]...)
			out = append(out, nodes[i+1:]...)
			return out, n, true
		}
		if len(n.Children) > 0 {
			children, removed, ok := RemoveByID(n.Children, id)
			if ok {
				n.Children = children
				return replaceAt(nodes, i, n), removed, true
			}
		}
	}
	return nodes, Component{}, false
}

// DeleteByID removes the node and its whole subtree.
func DeleteByID(nodes []Component, id string) []Component {
	out, _, _ := RemoveByID(nodes, id)
	return out
}

// MoveToParent detaches id and appends it to parentID's children. Moving a
// node into itself or into its own subtree, or into a parent that does not
// accept drops, leaves the tree unchanged.
func MoveToParent(nodes []Component, id, parentID string) []Component {
	if id == parentID {
		return nodes
	}
	node, ok := FindByID(nodes, id)
	if !ok {
		return nodes
	}
	if Contains(node.Children, parentID) {
		return nodes
	}
	parent, ok := FindByID(nodes, parentID)
	if !ok || !parent.Type.AcceptsDrop() {
		return nodes
	}
	pruned, detached, _ := RemoveByID(nodes, id)
	return InsertChild(pruned, parentID, detached)
}

// MoveToRoot detaches id and appends it to the root list.
func MoveToRoot(nodes []Component, id string) []Component {
	pruned, detached, ok := RemoveByID(nodes, id)
	if !ok {
		return nodes
	}
	return AppendRoot(pruned, detached)
}

// Reorder moves activeID to overID's index within the shallowest list that
// holds both as siblings. The root list is checked before descending.
func Reorder(nodes []Component, activeID, overID string) []Component {
	out, _ := reorder(nodes, activeID, overID)
	return out
}

func reorder(nodes []Component, activeID, overID string) ([]Component, bool) {
	from := indexOf(nodes, activeID)
	to := indexOf(nodes, overID)
	if from >= 0 && to >= 0 {
		if from == to {
			return nodes, false
		}
		return moveIndex(nodes, from, to), true
	}
	for i, n := range nodes {
		if len(n.Children) == 0 {
			continue
		}
		children, ok := reorder(n.Children, activeID, overID)
		if ok {
			n.Children = children
			return replaceAt(nodes, i, n), true
		}
	}
	return nodes, false
}

// Update is a partial change applied by UpdateByID. Props are merged key by
// key; Children replaces the list only when SetChildren is true.
type Update struct {
	Props       Props
	Children    []Component
	SetChildren bool
}

// UpdateByID applies u to the node with the given id.
func UpdateByID(nodes []Component, id string, u Update) []Component {
	out, _ := rewrite(nodes, id, func(n Component) (Component, bool) {
		if u.Props != nil {
			n.Props = n.Props.Merge(u.Props)
		}
		if u.SetChildren {
			n.Children = u.Children
		}
		return n, true
	})
	return out
}

// Walk visits every node in depth-first pre-order with its depth (root = 0).
// Returning false from fn skips the node's subtree.
func Walk(nodes []Component, fn func(c Component, depth int) bool) {
	walk(nodes, 0, fn)
}

func walk(nodes []Component, depth int, fn func(Component, int) bool) {
	for _, n := range nodes {
		if fn(n, depth) && len(n.Children) > 0 {
			walk(n.Children, depth+1, fn)
		}
	}
}

// IDs returns every id in the tree in pre-order.
func IDs(nodes []Component) []string {
	var ids []string
	Walk(nodes, func(c Component, _ int) bool {
		ids = append(ids, c.ID)
		return true
	})
	return ids
}

// rewrite replaces the node with the given id by fn's result and copies the
// path above it. When fn declines, or id is absent, nodes is returned as-is.
func rewrite(nodes []Component, id string, fn func(Component) (Component, bool)) ([]Component, bool) {
	for i, n := range nodes {
		if n.ID == id {
			updated, ok := fn(n)
			if !ok {
				return nodes, false
			}
			return replaceAt(nodes, i, updated), true
		}
		if len(n.Children) > 0 {
			children, ok := rewrite(n.Children, id, fn)
			if ok {
				n.Children = children
				return replaceAt(nodes, i, n), true
			}
		}
	}
	return nodes, false
}

func replaceAt(nodes []Component, i int, n Component) []Component {
	out := slices.Clone(nodes)
	out[i] = n
	return out
}

func indexOf(nodes []Component, id string) int {
	return slices.IndexFunc(nodes, func(c Component) bool { return c.ID == id })
}

// moveIndex removes the element at from and reinserts it at to.
func moveIndex(nodes []Component, from, to int) []Component {
	out := make([]Component, 0, len(nodes))
	moved := nodes[from]
	for i, n := range nodes {
		if i == from {
			continue
		}
		out = append(out, n)
	}
	out = slices.Insert(out, to, moved)
	return out
}
