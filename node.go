package vrml

import "fmt"

// --- ID counter ---

// nodeIDCounter is a plain counter; graph mutation is single-threaded.
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// --- Node ---

// Node is one instance of a node kind. All kinds share this struct; the
// kind-specific part is the slot storage described by the node type, plus
// optional private state.
type Node struct {
	// Identity
	ID   uint32
	Name string // DEF name, empty for anonymous nodes

	typ *NodeType

	// Storage: one slot per field, exposedField and eventOut, and the
	// timestamp of the last event sent from each slot.
	values []Value
	stamps []float64

	modified bool
	bounds   boundsCell

	// Ownership. parents holds one entry per referencing slot element, so a
	// node USEd twice by the same parent appears twice.
	parents []*Node
	refs    int
	phase   Phase

	// scene is a weak, lookup-only back reference.
	scene *Scene
	state any
}

// NewNode creates an instance of t with every slot at its declared default.
func NewNode(t *NodeType) *Node {
	n := &Node{
		ID:     nextNodeID(),
		typ:    t,
		values: make([]Value, len(t.slots)),
		stamps: make([]float64, len(t.slots)),
	}
	for i, s := range t.slots {
		n.values[i] = s.def.Clone()
	}
	n.bounds.dirty = true
	if t.kind.NewState != nil {
		n.state = t.kind.NewState()
	}
	return n
}

func (n *Node) String() string {
	if n.Name != "" {
		return fmt.Sprintf("%s(%s#%d)", n.typ.kind.Name, n.Name, n.ID)
	}
	return fmt.Sprintf("%s#%d", n.typ.kind.Name, n.ID)
}

// Type returns the node's shared node type.
func (n *Node) Type() *NodeType { return n.typ }

// KindName returns the name of the node's kind.
func (n *Node) KindName() string { return n.typ.kind.Name }

// Has reports whether the node's kind has every capability in c.
func (n *Node) Has(c Capability) bool { return n.typ.kind.Caps.Has(c) }

// Scene returns the scene the node is initialized in, or nil.
func (n *Node) Scene() *Scene { return n.scene }

// State returns the kind-private state allocated by Kind.NewState.
func (n *Node) State() any { return n.state }

// --- Reflection entry points ---

// GetField reads a field or exposedField by name.
func (n *Node) GetField(name string) (Value, error) {
	return n.typ.GetField(n, name)
}

// SetField writes a field directly. Intended for scene construction: no
// handler runs and no event is emitted.
func (n *Node) SetField(name string, v Value) error {
	return n.typ.SetField(n, name, v)
}

// DispatchEvent delivers an event to the named input.
func (n *Node) DispatchEvent(name string, v Value, ts float64) error {
	return n.typ.DispatchEvent(n, name, v, ts)
}

// GetEventOut returns the last value and timestamp sent from the named
// output.
func (n *Node) GetEventOut(name string) (Value, float64, error) {
	return n.typ.GetEventOut(n, name)
}

// Emit sends v from the named output at ts. Any output of the kind may be
// emitted, including ones the node type does not expose.
func (n *Node) Emit(name string, v Value, ts float64) error {
	slot, ok := n.outputSlot(name)
	if !ok {
		return ifaceErr("emit", n.typ.kind.Name, name, ErrUnsupportedInterface)
	}
	want := n.typ.slots[slot].typ
	if v == nil || v.Kind() != want {
		return mismatchErr("emit", n.typ.kind.Name, name, want, kindOf(v))
	}
	if err := checkRefs("emit", n.typ.kind.Name, name, v); err != nil {
		return err
	}
	n.emitSlot(slot, v.Clone(), ts)
	return nil
}

func (n *Node) outputSlot(name string) (int, bool) {
	if i, ok := n.typ.slotOf[name]; ok && n.typ.slots[i].cat.emits() {
		return i, true
	}
	if base, ok := eventOutBase(name); ok {
		if i, ok := n.typ.slotOf[base]; ok && n.typ.slots[i].cat == CategoryExposedField {
			return i, true
		}
	}
	return 0, false
}

// emitSlot records the event on the slot and hands it to the scene router.
// EventOut slots keep the last value; exposedField slots already hold it.
func (n *Node) emitSlot(slot int, v Value, ts float64) {
	s := &n.typ.slots[slot]
	if s.cat == CategoryEventOut {
		n.setSlot(slot, v)
	}
	n.stamps[slot] = ts
	if n.scene != nil {
		n.scene.post(n, s.name, v, ts)
	}
}

// --- Storage helpers for kind hooks ---

// field returns the raw storage of the named slot. Panics on an unknown
// name: kind tables are static and a miss is a programming error.
func (n *Node) field(name string) Value {
	i, ok := n.typ.slotOf[name]
	if !ok {
		panic(fmt.Sprintf("vrml: %s has no slot %q", n.typ.kind.Name, name))
	}
	return n.values[i]
}

// store writes the named slot, keeping ownership and bounds coherent.
func (n *Node) store(name string, v Value) {
	i, ok := n.typ.slotOf[name]
	if !ok {
		panic(fmt.Sprintf("vrml: %s has no slot %q", n.typ.kind.Name, name))
	}
	n.setSlot(i, v)
}

// update is the handler convention: store, flag modified, emit
// <name>_changed (or name itself for eventOuts) at ts.
func (n *Node) update(name string, v Value, ts float64) {
	i, ok := n.typ.slotOf[name]
	if !ok {
		panic(fmt.Sprintf("vrml: %s has no slot %q", n.typ.kind.Name, name))
	}
	if n.typ.slots[i].cat != CategoryEventOut {
		n.setSlot(i, v)
	}
	n.MarkModified()
	n.emitSlot(i, v, ts)
}

// setSlot is the single storage write path. Node references gain their new
// parent before the old ones are released so a node present in both values
// survives the swap.
func (n *Node) setSlot(i int, v Value) {
	s := &n.typ.slots[i]
	if s.typ.IsNodeRef() {
		if c := destroyedRef(v); c != nil {
			panic("vrml: cannot reference a destroyed node " + c.String())
		}
	}
	old := n.values[i]
	n.values[i] = v
	if s.typ.IsNodeRef() {
		for _, c := range nodeRefs(v) {
			c.attach(n)
		}
		for _, c := range nodeRefs(old) {
			c.detach(n)
		}
	}
	if s.bounds {
		n.InvalidateBounds()
	}
}

// --- Modified flag ---

// Modified reports the node's own modified flag. See IsModified for the
// recursive query.
func (n *Node) Modified() bool { return n.modified }

// SetModified sets or clears the modified flag. Renderers call
// SetModified(false) on the nodes they consumed.
func (n *Node) SetModified(m bool) { n.modified = m }

// MarkModified flags the node as changed since the last render.
func (n *Node) MarkModified() { n.modified = true }

// --- Graph ---

// Children returns every node referenced through SFNode and MFNode slots,
// in declaration order. Empty references are skipped.
func (n *Node) Children() []*Node {
	var out []*Node
	for i, s := range n.typ.slots {
		if s.typ.IsNodeRef() {
			out = append(out, nodeRefs(n.values[i])...)
		}
	}
	return out
}

// ActiveChildren returns the children a renderer draws. For most kinds this
// is Children; Switch returns only its selected choice.
func (n *Node) ActiveChildren() []*Node {
	if f := n.typ.kind.Active; f != nil {
		return f(n)
	}
	return n.Children()
}

// Parents returns the nodes referencing n. The returned slice MUST NOT be
// mutated by the caller.
func (n *Node) Parents() []*Node { return n.parents }

// removeParent removes one occurrence of p from n.parents.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeParent(p *Node) bool {
	for i, c := range n.parents {
		if c == p {
			copy(n.parents[i:], n.parents[i+1:])
			n.parents[len(n.parents)-1] = nil
			n.parents = n.parents[:len(n.parents)-1]
			return true
		}
	}
	return false
}
