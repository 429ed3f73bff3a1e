package vrml

import (
	"sort"
	"strings"
)

// Accessor reads and writes the storage behind one interface. Set receives
// an already type-checked value that the node may keep.
type Accessor struct {
	Get func(n *Node) Value
	Set func(n *Node, v Value)
}

// slotSpec describes one storage slot. Every field, exposedField and
// eventOut of the kind gets a slot, whether or not the node type exposes it,
// so handlers can rely on the full kind storage.
type slotSpec struct {
	name   string
	cat    Category
	typ    FieldKind
	def    Value
	bounds bool
}

type binding struct {
	decl    InterfaceDecl
	slot    int // -1 for eventIns
	acc     Accessor
	handler HandlerFunc
	bounds  bool
}

// NodeType is the interface registry of one node kind: one instance per
// (kind, requested interface subset), shared by every node of that type and
// immutable once built.
type NodeType struct {
	kind     *Kind
	ifaces   InterfaceSet
	bindings map[string]*binding
	slots    []slotSpec
	slotOf   map[string]int
	sealed   bool
}

// NewNodeType returns an unsealed node type for kind with its storage laid
// out but no interface bound. Bind interfaces with Register and call Seal
// before creating nodes. Registry.NodeType does all of this for the common
// case.
func NewNodeType(kind *Kind) *NodeType {
	t := &NodeType{
		kind:     kind,
		bindings: make(map[string]*binding),
		slotOf:   make(map[string]int),
	}
	for _, s := range kind.Interfaces {
		if s.Category == CategoryEventIn {
			continue
		}
		def := s.Default
		if def == nil {
			def = ZeroValue(s.Type)
		}
		t.slotOf[s.Name] = len(t.slots)
		t.slots = append(t.slots, slotSpec{name: s.Name, cat: s.Category, typ: s.Type, def: def, bounds: s.Bounds})
	}
	return t
}

// Seal makes the type immutable. Further Register calls fail.
func (t *NodeType) Seal() { t.sealed = true }

// Sealed reports whether Seal has been called.
func (t *NodeType) Sealed() bool { return t.sealed }

// newNodeType builds the sealed node type for kind exposing requested (all
// interfaces when requested is empty).
func newNodeType(kind *Kind, requested []string) (*NodeType, error) {
	want := make(map[string]bool, len(requested))
	for _, name := range requested {
		s, ok := kind.resolve(name)
		if !ok {
			return nil, ifaceErr("node_type", kind.Name, name, ErrUnsupportedInterface)
		}
		want[s.Name] = true
	}

	t := NewNodeType(kind)
	for _, s := range kind.Interfaces {
		if len(want) > 0 && !want[s.Name] {
			continue
		}
		if err := t.Register(s.Name, s.Category, s.Type, Accessor{}, s.Handler); err != nil {
			return nil, err
		}
	}
	t.Seal()
	return t, nil
}

// Register binds one interface of the kind. A zero Accessor binds the
// kind's storage slot; a nil handler on an exposedField binds the default
// store-flag-emit handler. Register fails with ErrDuplicateInterface on a
// name/category clash, with ErrTypeMismatch if the kind declares the name
// with another value kind, and with ErrUnsupportedInterface if the kind does
// not declare it with that category, if an eventIn has no handler or once
// the type is sealed.
func (t *NodeType) Register(name string, cat Category, typ FieldKind, acc Accessor, handler HandlerFunc) error {
	if t.sealed {
		e := ifaceErr("register", t.kind.Name, name, ErrUnsupportedInterface)
		e.Detail = "node type is sealed"
		return e
	}
	s, ok := t.kind.spec(name)
	if !ok || s.Category != cat {
		return ifaceErr("register", t.kind.Name, name, ErrUnsupportedInterface)
	}
	if s.Type != typ {
		return mismatchErr("register", t.kind.Name, name, s.Type, typ)
	}
	if cat == CategoryEventIn && handler == nil {
		e := ifaceErr("register", t.kind.Name, name, ErrUnsupportedInterface)
		e.Detail = "eventIn has no handler"
		return e
	}
	if err := t.ifaces.Add(InterfaceDecl{Name: name, Category: cat, Type: typ}); err != nil {
		e := err.(*InterfaceError)
		e.Kind = t.kind.Name
		return e
	}

	b := &binding{decl: InterfaceDecl{Name: name, Category: cat, Type: typ}, slot: -1, acc: acc, handler: handler, bounds: s.Bounds}
	if cat != CategoryEventIn {
		b.slot = t.slotOf[name]
		slot := b.slot
		if b.acc.Get == nil {
			b.acc.Get = func(n *Node) Value { return n.values[slot] }
		}
		if b.acc.Set == nil {
			b.acc.Set = func(n *Node, v Value) { n.setSlot(slot, v) }
		}
	}
	switch cat {
	case CategoryExposedField:
		if b.handler == nil {
			b.handler = exposedHandler(b)
		}
	case CategoryField, CategoryEventOut:
		b.handler = nil
	}
	t.bindings[name] = b
	return nil
}

// exposedHandler is the conventional exposedField handler: store, flag
// modified, emit <name>_changed at the same timestamp.
func exposedHandler(b *binding) HandlerFunc {
	return func(n *Node, v Value, ts float64) error {
		b.acc.Set(n, v)
		n.MarkModified()
		n.emitSlot(b.slot, v, ts)
		return nil
	}
}

// Kind returns the schema this type was built from.
func (t *NodeType) Kind() *Kind { return t.kind }

// Name returns the kind name.
func (t *NodeType) Name() string { return t.kind.Name }

// Interfaces returns the exposed interface set.
func (t *NodeType) Interfaces() *InterfaceSet { return &t.ifaces }

// Caps returns the kind's capability mask.
func (t *NodeType) Caps() Capability { return t.kind.Caps }

// readable returns the binding for a readable field.
func (t *NodeType) readable(name string) *binding {
	b := t.bindings[name]
	if b == nil || !b.decl.Category.readable() {
		return nil
	}
	return b
}

// input resolves name, or the exposedField behind a set_<name> alias, to
// an input binding.
func (t *NodeType) input(name string) *binding {
	if b := t.bindings[name]; b != nil && b.decl.Category.accepts() {
		return b
	}
	if base, ok := eventInBase(name); ok {
		if b := t.bindings[base]; b != nil && b.decl.Category == CategoryExposedField {
			return b
		}
	}
	return nil
}

// output resolves name, or the exposedField behind a <name>_changed alias,
// to an output binding.
func (t *NodeType) output(name string) *binding {
	if b := t.bindings[name]; b != nil && b.decl.Category.emits() {
		return b
	}
	if base, ok := eventOutBase(name); ok {
		if b := t.bindings[base]; b != nil && b.decl.Category == CategoryExposedField {
			return b
		}
	}
	return nil
}

// InputType returns the value kind accepted by the named input.
func (t *NodeType) InputType(name string) (FieldKind, bool) {
	if b := t.input(name); b != nil {
		return b.decl.Type, true
	}
	return KindInvalid, false
}

// OutputType returns the value kind emitted by the named output.
func (t *NodeType) OutputType(name string) (FieldKind, bool) {
	if b := t.output(name); b != nil {
		return b.decl.Type, true
	}
	return KindInvalid, false
}

// GetField reads a field or exposedField.
func (t *NodeType) GetField(n *Node, name string) (Value, error) {
	b := t.readable(name)
	if b == nil {
		return nil, ifaceErr("get_field", t.kind.Name, name, ErrUnsupportedInterface)
	}
	return b.acc.Get(n).Clone(), nil
}

// SetField writes storage directly: no handler runs, no event is emitted
// and the modified flag is untouched. Bounding caches stay coherent.
func (t *NodeType) SetField(n *Node, name string, v Value) error {
	b := t.readable(name)
	if b == nil {
		return ifaceErr("set_field", t.kind.Name, name, ErrUnsupportedInterface)
	}
	if v == nil || v.Kind() != b.decl.Type {
		return mismatchErr("set_field", t.kind.Name, name, b.decl.Type, kindOf(v))
	}
	if err := checkRefs("set_field", t.kind.Name, name, v); err != nil {
		return err
	}
	b.acc.Set(n, v.Clone())
	return nil
}

// DispatchEvent delivers (v, ts) to the named input, resolving the
// set_<name> alias. The type is checked before any handler runs.
func (t *NodeType) DispatchEvent(n *Node, name string, v Value, ts float64) error {
	b := t.input(name)
	if b == nil {
		return ifaceErr("dispatch_event", t.kind.Name, name, ErrUnsupportedInterface)
	}
	if v == nil || v.Kind() != b.decl.Type {
		return mismatchErr("dispatch_event", t.kind.Name, name, b.decl.Type, kindOf(v))
	}
	if err := checkRefs("dispatch_event", t.kind.Name, name, v); err != nil {
		return err
	}
	if err := b.handler(n, v.Clone(), ts); err != nil {
		if _, ok := err.(*InterfaceError); ok {
			return err
		}
		return &InterfaceError{Op: "dispatch_event", Kind: t.kind.Name, Interface: name, Err: err}
	}
	return nil
}

// GetEventOut returns the last value sent from the named output and its
// timestamp, resolving the <name>_changed alias. Before any event was sent
// it returns the declared default (the current value for exposedFields)
// and timestamp 0.
func (t *NodeType) GetEventOut(n *Node, name string) (Value, float64, error) {
	b := t.output(name)
	if b == nil {
		return nil, 0, ifaceErr("get_eventout", t.kind.Name, name, ErrUnsupportedInterface)
	}
	return b.acc.Get(n).Clone(), n.stamps[b.slot], nil
}

// checkRefs rejects node values referencing destroyed nodes before any
// storage is touched.
func checkRefs(op, kind, name string, v Value) error {
	if !v.Kind().IsNodeRef() {
		return nil
	}
	if c := destroyedRef(v); c != nil {
		e := ifaceErr(op, kind, name, ErrUnsupportedInterface)
		e.Detail = "references destroyed node " + c.String()
		return e
	}
	return nil
}

func kindOf(v Value) FieldKind {
	if v == nil {
		return KindInvalid
	}
	return v.Kind()
}

// Registry hands out node types, building each (kind, interface subset)
// combination once.
type Registry struct {
	kinds *KindTable
	types map[string]*NodeType
}

// NewRegistry creates a registry over kinds. A nil table uses
// DefaultKinds().
func NewRegistry(kinds *KindTable) *Registry {
	if kinds == nil {
		kinds = DefaultKinds()
	}
	return &Registry{kinds: kinds, types: make(map[string]*NodeType)}
}

// Kinds returns the registry's kind table.
func (r *Registry) Kinds() *KindTable { return r.kinds }

// NodeType returns the shared node type for kind exposing the requested
// interfaces (all of them when none are given). An unknown kind or an
// interface the kind lacks fails with ErrUnsupportedInterface.
func (r *Registry) NodeType(kind string, requested ...string) (*NodeType, error) {
	k, ok := r.kinds.Lookup(kind)
	if !ok {
		return nil, &InterfaceError{Op: "node_type", Kind: kind, Err: ErrUnknownKind}
	}
	key := typeKey(kind, requested)
	if t, ok := r.types[key]; ok {
		return t, nil
	}
	t, err := newNodeType(k, requested)
	if err != nil {
		return nil, err
	}
	r.types[key] = t
	return t, nil
}

// typeKey canonicalises a (kind, subset) pair. Aliases are not folded, so
// "set_x" and "x" may produce distinct but equivalent types.
func typeKey(kind string, requested []string) string {
	if len(requested) == 0 {
		return kind
	}
	names := append([]string(nil), requested...)
	sort.Strings(names)
	return kind + "{" + strings.Join(names, ",") + "}"
}
