package concrete

// Children returns the direct child nodes of n in source order. Absent
// optional fields contribute nothing.
func Children(n Node) []Node {
	if n == nil {
		return nil
	}
	var out []Node
	for _, f := range n.Fields() {
		switch f.Kind {
		case FieldNode, FieldOptionalNode:
			if f.Node != nil {
				out = append(out, f.Node)
			}
		case FieldList:
			out = append(out, f.List...)
		}
	}
	return out
}

// Walk traverses the tree rooted at n in depth-first pre-order, calling fn
// for each node. When fn returns false the node's children are skipped.
func Walk(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range Children(n) {
		Walk(c, fn)
	}
}

// Equal reports whether a and b are structurally equal: same variants,
// same literal text, same shape all the way down.
func Equal(a, b Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a == b {
		return true
	}
	if a.Kind() != b.Kind() {
		return false
	}
	fa, fb := a.Fields(), b.Fields()
	if len(fa) != len(fb) {
		return false
	}
	for i := range fa {
		if !equalField(fa[i], fb[i]) {
			return false
		}
	}
	return true
}

func equalField(a, b Field) bool {
	if a.Name != b.Name || a.Kind != b.Kind || a.Present != b.Present {
		return false
	}
	switch a.Kind {
	case FieldNode, FieldOptionalNode:
		return Equal(a.Node, b.Node)
	case FieldList:
		if len(a.List) != len(b.List) {
			return false
		}
		for i := range a.List {
			if !Equal(a.List[i], b.List[i]) {
				return false
			}
		}
		return true
	default:
		return a.Text == b.Text
	}
}

// Transform rewrites the tree rooted at n bottom-up. fn is called on every
// node after its children have been transformed and returns the node to put
// in its place; returning nil keeps the node. Ancestors of a replaced node
// are rebuilt through Rebuild, so a replacement that the parent production
// does not admit yields a *BuildError. Subtrees in which nothing changed are
// returned as the original pointers.
func Transform(n Node, fn func(Node) (Node, error)) (Node, error) {
	if n == nil {
		return nil, nil
	}

	fields := n.Fields()
	changed := false
	for i, f := range fields {
		switch f.Kind {
		case FieldNode, FieldOptionalNode:
			if f.Node == nil {
				continue
			}
			c, err := Transform(f.Node, fn)
			if err != nil {
				return nil, err
			}
			if c != f.Node {
				fields[i].Node = c
				changed = true
			}
		case FieldList:
			for j, item := range f.List {
				c, err := Transform(item, fn)
				if err != nil {
					return nil, err
				}
				if c != item {
					f.List[j] = c
					changed = true
				}
			}
		}
	}

	current := n
	if changed {
		rebuilt, err := Rebuild(n.Kind(), fields)
		if err != nil {
			return nil, err
		}
		current = rebuilt
	}

	replacement, err := fn(current)
	if err != nil {
		return nil, err
	}
	if replacement == nil {
		return current, nil
	}
	return replacement, nil
}
