package vrml

// Phase is a node's lifecycle state.
type Phase uint8

const (
	PhaseConstructed Phase = iota // created, storage at defaults or loaded values
	PhaseInitialized              // bound to a scene, kind Initialize hook running
	PhaseLive                     // accepting events
	PhaseShutdown                 // kind Shutdown hook ran, references being released
	PhaseDestroyed                // unreachable, storage released
)

func (p Phase) String() string {
	switch p {
	case PhaseConstructed:
		return "constructed"
	case PhaseInitialized:
		return "initialized"
	case PhaseLive:
		return "live"
	case PhaseShutdown:
		return "shutdown"
	case PhaseDestroyed:
		return "destroyed"
	}
	return "unknown"
}

// Phase returns the node's lifecycle state.
func (n *Node) Phase() Phase { return n.phase }

// RefCount returns the number of owners: referencing slot elements plus
// explicit Retain calls.
func (n *Node) RefCount() int { return n.refs }

// Retain adds an external owner (e.g. a scene root list).
func (n *Node) Retain() {
	n.refs++
}

// Release drops one owner. When the last owner goes away the node shuts
// down, releases the nodes it references and is destroyed.
func (n *Node) Release() {
	if n.refs > 0 {
		n.refs--
	}
	if n.refs == 0 {
		n.destroy()
	}
}

// attach records p as a referencing parent. A node referenced from a node
// that is already in a scene joins that scene (sub-scene load).
func (n *Node) attach(p *Node) {
	if n.phase >= PhaseShutdown {
		panic("vrml: cannot reference a destroyed node " + n.String())
	}
	n.parents = append(n.parents, p)
	n.refs++
	if p.scene != nil && p.phase >= PhaseInitialized && n.phase == PhaseConstructed {
		p.scene.initNode(n)
	}
	if p.debugging() {
		debugCheckTreeDepth(n)
	}
}

// detach removes one parent link to p and releases the reference it held.
// A live node dropped by a live parent is not destroyed on the spot: it
// waits in the scene's orphan list until the next Collect, so an event
// cascade can move it under another parent.
func (n *Node) detach(p *Node) {
	if !n.removeParent(p) {
		return
	}
	if n.refs > 0 {
		n.refs--
	}
	if n.refs > 0 {
		return
	}
	if s := n.scene; s != nil && n.phase == PhaseLive && p.phase == PhaseLive {
		s.orphans = append(s.orphans, n)
		return
	}
	n.destroy()
}

// destroyedRef returns the first node referenced by v that can no longer
// be referenced.
func destroyedRef(v Value) *Node {
	for _, c := range nodeRefs(v) {
		if c.phase >= PhaseShutdown {
			return c
		}
	}
	return nil
}

// IsDestroyed reports whether the node has been destroyed.
func (n *Node) IsDestroyed() bool {
	return n.phase == PhaseDestroyed
}

func (n *Node) destroy() {
	if n.phase >= PhaseShutdown {
		return
	}
	if n.scene != nil && n.phase >= PhaseInitialized {
		n.scene.shutdownNode(n)
	}
	n.phase = PhaseShutdown
	for i, s := range n.typ.slots {
		if !s.typ.IsNodeRef() {
			continue
		}
		refs := nodeRefs(n.values[i])
		n.values[i] = ZeroValue(s.typ)
		for _, c := range refs {
			c.detach(n)
		}
	}
	n.phase = PhaseDestroyed
	n.scene = nil
	n.state = nil
	n.parents = nil
}
