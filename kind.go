package vrml

import (
	"fmt"
	"sort"
)

// HandlerFunc handles an event delivered to an input interface. The value
// has already been type-checked against the interface declaration.
// Handlers conventionally store the value, call MarkModified and emit the
// matching *_changed output at the same timestamp.
type HandlerFunc func(n *Node, v Value, ts float64) error

// InterfaceSpec is one row of a kind's schema.
type InterfaceSpec struct {
	Name     string
	Category Category
	Type     FieldKind
	// Default is the initial value; nil means ZeroValue(Type).
	Default Value
	// Handler receives events for eventIns and exposedFields. ExposedFields
	// without a handler get the store-flag-emit default. An eventIn without
	// a handler cannot be bound.
	Handler HandlerFunc
	// Bounds marks interfaces whose writes change the node's bounding
	// volume.
	Bounds bool
}

// Kind is the declarative schema of one node kind. It replaces a
// hand-written node class: all behaviour is data plus optional hooks.
type Kind struct {
	Name       string
	Interfaces []InterfaceSpec
	Caps       Capability

	// Bounds computes the node's bounding volume. Nil yields the empty
	// volume.
	Bounds func(n *Node) BoundingSphere
	// Active returns the children a renderer actually draws (e.g. the
	// selected Switch choice). Nil means all children.
	Active func(n *Node) []*Node
	// NewState allocates kind-private state for each instance.
	NewState func() any
	// Initialize runs when the node joins a scene; Shutdown reverses it.
	Initialize func(n *Node, s *Scene)
	Shutdown   func(n *Node, s *Scene)
	// Tick advances time-dependent nodes once per Scene.Step.
	Tick func(n *Node, now float64)
}

// spec returns the schema row with the exact name.
func (k *Kind) spec(name string) (InterfaceSpec, bool) {
	for _, s := range k.Interfaces {
		if s.Name == name {
			return s, true
		}
	}
	return InterfaceSpec{}, false
}

// resolve finds the schema row that backs name, following the set_<name>
// and <name>_changed aliases of exposedFields.
func (k *Kind) resolve(name string) (InterfaceSpec, bool) {
	if s, ok := k.spec(name); ok {
		return s, true
	}
	if base, ok := eventInBase(name); ok {
		if s, ok := k.spec(base); ok && s.Category == CategoryExposedField {
			return s, true
		}
	}
	if base, ok := eventOutBase(name); ok {
		if s, ok := k.spec(base); ok && s.Category == CategoryExposedField {
			return s, true
		}
	}
	return InterfaceSpec{}, false
}

// validate checks the schema for internal consistency.
func (k *Kind) validate() error {
	var set InterfaceSet
	for _, s := range k.Interfaces {
		if s.Type == KindInvalid {
			return &InterfaceError{Op: "kind", Kind: k.Name, Interface: s.Name, Err: ErrTypeMismatch, Detail: "invalid type"}
		}
		if s.Default != nil && s.Default.Kind() != s.Type {
			return mismatchErr("kind", k.Name, s.Name, s.Type, s.Default.Kind())
		}
		if err := set.Add(InterfaceDecl{Name: s.Name, Category: s.Category, Type: s.Type}); err != nil {
			e := err.(*InterfaceError)
			e.Op, e.Kind = "kind", k.Name
			return e
		}
	}
	return nil
}

// KindTable maps kind names to schemas.
type KindTable struct {
	kinds map[string]*Kind
}

// NewKindTable creates an empty table.
func NewKindTable() *KindTable {
	return &KindTable{kinds: make(map[string]*Kind)}
}

// Add validates k and adds it to the table.
func (t *KindTable) Add(k *Kind) error {
	if k == nil || k.Name == "" {
		return fmt.Errorf("vrml: kind must have a name")
	}
	if _, dup := t.kinds[k.Name]; dup {
		return &InterfaceError{Op: "kind", Kind: k.Name, Err: ErrDuplicateInterface, Detail: "kind already registered"}
	}
	if err := k.validate(); err != nil {
		return err
	}
	t.kinds[k.Name] = k
	return nil
}

// MustAdd is Add that panics on error. Used for static tables.
func (t *KindTable) MustAdd(kinds ...*Kind) *KindTable {
	for _, k := range kinds {
		if err := t.Add(k); err != nil {
			panic(err)
		}
	}
	return t
}

// Lookup returns the kind with the given name.
func (t *KindTable) Lookup(name string) (*Kind, bool) {
	k, ok := t.kinds[name]
	return k, ok
}

// Names returns all kind names, sorted.
func (t *KindTable) Names() []string {
	names := make([]string, 0, len(t.kinds))
	for n := range t.kinds {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
