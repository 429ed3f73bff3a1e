package vrml

// Schema row constructors used by the built-in kind tables.

func fieldSpec(name string, t FieldKind, def Value) InterfaceSpec {
	return InterfaceSpec{Name: name, Category: CategoryField, Type: t, Default: def}
}

func exposedSpec(name string, t FieldKind, def Value) InterfaceSpec {
	return InterfaceSpec{Name: name, Category: CategoryExposedField, Type: t, Default: def}
}

func eventInSpec(name string, t FieldKind, h HandlerFunc) InterfaceSpec {
	return InterfaceSpec{Name: name, Category: CategoryEventIn, Type: t, Handler: h}
}

func eventOutSpec(name string, t FieldKind) InterfaceSpec {
	return InterfaceSpec{Name: name, Category: CategoryEventOut, Type: t}
}

// withBounds marks s as affecting the bounding volume.
func withBounds(s InterfaceSpec) InterfaceSpec {
	s.Bounds = true
	return s
}

// withHandler replaces the default exposedField handler.
func withHandler(s InterfaceSpec, h HandlerFunc) InterfaceSpec {
	s.Handler = h
	return s
}

// storeHandler returns an eventIn handler that writes a field of the same
// type and flags the node, for eventIns like set_coordIndex whose field is
// not exposed.
func storeHandler(field string) HandlerFunc {
	return func(n *Node, v Value, ts float64) error {
		n.store(field, v)
		n.MarkModified()
		return nil
	}
}

// DefaultKinds returns a fresh table with the built-in VRML97 node kinds.
func DefaultKinds() *KindTable {
	t := NewKindTable()
	t.MustAdd(groupingKinds()...)
	t.MustAdd(geometryKinds()...)
	t.MustAdd(appearanceKinds()...)
	t.MustAdd(interpolatorKinds()...)
	t.MustAdd(sensorKinds()...)
	t.MustAdd(bindableKinds()...)
	t.MustAdd(miscKinds()...)
	return t
}

// Shorthand defaults.
var (
	sfTrue      = SFBool(true)
	sfFalse     = SFBool(false)
	sfZero3     = SFVec3f{}
	sfOne3      = SFVec3f{1, 1, 1}
	sfWhite     = SFColor(ColorWhite)
	sfNoBBox    = SFVec3f{-1, -1, -1}
	sfIdentityR = SFRotation(DefaultRotation)
)

// Typed slot readers for kind hooks.

func (n *Node) boolField(name string) bool        { return bool(n.field(name).(SFBool)) }
func (n *Node) int32Field(name string) int32      { return int32(n.field(name).(SFInt32)) }
func (n *Node) floatField(name string) float32    { return float32(n.field(name).(SFFloat)) }
func (n *Node) timeField(name string) float64     { return float64(n.field(name).(SFTime)) }
func (n *Node) vec3Field(name string) Vec3        { return Vec3(n.field(name).(SFVec3f)) }
func (n *Node) rotField(name string) Rotation     { return Rotation(n.field(name).(SFRotation)) }
func (n *Node) nodeField(name string) *Node       { return n.field(name).(SFNode).Node }
func (n *Node) nodesField(name string) MFNode     { return n.field(name).(MFNode) }
func (n *Node) floatsField(name string) MFFloat   { return n.field(name).(MFFloat) }
func (n *Node) stringsField(name string) MFString { return n.field(name).(MFString) }
