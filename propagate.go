package vrml

// IsModified reports whether n or any node it references (recursively) has
// its modified flag set. Each node is searched once per call, which also
// guards against reference cycles and shared subgraphs.
func IsModified(n *Node) bool {
	return isModified(n, map[*Node]bool{})
}

// isModified returns at the first modified node, so a node already in seen
// either is in progress or led to no modified node.
func isModified(n *Node, seen map[*Node]bool) bool {
	if n == nil || seen[n] {
		return false
	}
	if n.modified {
		return true
	}
	seen[n] = true
	for _, c := range n.Children() {
		if isModified(c, seen) {
			return true
		}
	}
	return false
}

// Propagate walks the graph under root depth-first. As soon as a node is
// found modified, every node on the current ancestor path is marked
// modified too. Traversal always continues into the remaining children:
// every Switch choice and LOD level is checked, not only the active one.
// It returns root's resulting flag.
func Propagate(root *Node) bool {
	if root == nil {
		return false
	}
	p := propagator{visiting: map[*Node]bool{}}
	p.visit(root)
	return root.modified
}

type propagator struct {
	stack    []*Node
	visiting map[*Node]bool
}

func (p *propagator) visit(n *Node) {
	if p.visiting[n] {
		return
	}
	if n.modified {
		for _, a := range p.stack {
			a.modified = true
		}
	}
	p.visiting[n] = true
	p.stack = append(p.stack, n)
	for _, c := range n.Children() {
		p.visit(c)
	}
	p.stack = p.stack[:len(p.stack)-1]
	delete(p.visiting, n)
}

// ClearModified clears the modified flag on root and everything it
// references. Renderers that skip parts of the graph (inactive LOD levels)
// should instead clear the nodes they consumed with SetModified(false).
func ClearModified(root *Node) {
	if root == nil {
		return
	}
	seen := map[*Node]bool{}
	stack := []*Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[n] {
			continue
		}
		seen[n] = true
		n.modified = false
		stack = append(stack, n.Children()...)
	}
}
