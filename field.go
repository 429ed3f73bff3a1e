package vrml

import "fmt"

// FieldKind identifies the value type carried by a field or event.
// A declared interface never changes kind.
type FieldKind uint8

const (
	KindInvalid FieldKind = iota
	KindSFBool
	KindSFInt32
	KindSFFloat
	KindSFTime
	KindSFString
	KindSFVec2f
	KindSFVec3f
	KindSFRotation
	KindSFColor
	KindSFImage
	KindSFNode
	KindMFBool
	KindMFInt32
	KindMFFloat
	KindMFTime
	KindMFString
	KindMFVec2f
	KindMFVec3f
	KindMFRotation
	KindMFColor
	KindMFImage
	KindMFNode
)

var fieldKindNames = [...]string{
	KindInvalid:    "<invalid>",
	KindSFBool:     "SFBool",
	KindSFInt32:    "SFInt32",
	KindSFFloat:    "SFFloat",
	KindSFTime:     "SFTime",
	KindSFString:   "SFString",
	KindSFVec2f:    "SFVec2f",
	KindSFVec3f:    "SFVec3f",
	KindSFRotation: "SFRotation",
	KindSFColor:    "SFColor",
	KindSFImage:    "SFImage",
	KindSFNode:     "SFNode",
	KindMFBool:     "MFBool",
	KindMFInt32:    "MFInt32",
	KindMFFloat:    "MFFloat",
	KindMFTime:     "MFTime",
	KindMFString:   "MFString",
	KindMFVec2f:    "MFVec2f",
	KindMFVec3f:    "MFVec3f",
	KindMFRotation: "MFRotation",
	KindMFColor:    "MFColor",
	KindMFImage:    "MFImage",
	KindMFNode:     "MFNode",
}

func (k FieldKind) String() string {
	if int(k) < len(fieldKindNames) {
		return fieldKindNames[k]
	}
	return fmt.Sprintf("FieldKind(%d)", uint8(k))
}

// ParseFieldKind returns the kind named by s (e.g. "MFVec3f").
func ParseFieldKind(s string) (FieldKind, bool) {
	for k, name := range fieldKindNames {
		if k != int(KindInvalid) && name == s {
			return FieldKind(k), true
		}
	}
	return KindInvalid, false
}

// IsMulti reports whether k is a sequence ("MF") kind.
func (k FieldKind) IsMulti() bool {
	return k >= KindMFBool && k <= KindMFNode
}

// Elem returns the single-valued kind of a sequence kind, or k itself.
func (k FieldKind) Elem() FieldKind {
	if k.IsMulti() {
		return k - (KindMFBool - KindSFBool)
	}
	return k
}

// IsNodeRef reports whether values of kind k reference nodes.
func (k FieldKind) IsNodeRef() bool {
	return k == KindSFNode || k == KindMFNode
}

// Value is a typed, copyable field datum. The set of implementations is
// closed; every variant is defined in this file.
type Value interface {
	Kind() FieldKind
	// Clone returns a copy that shares no mutable storage with the receiver.
	// Node references are copied by pointer.
	Clone() Value
	isValue()
}

type (
	SFBool     bool
	SFInt32    int32
	SFFloat    float32
	SFTime     float64
	SFString   string
	SFVec2f    Vec2
	SFVec3f    Vec3
	SFRotation Rotation
	SFColor    Color
	SFImage    Image
	// SFNode holds a single, possibly nil, node reference.
	SFNode struct{ Node *Node }

	MFBool     []bool
	MFInt32    []int32
	MFFloat    []float32
	MFTime     []float64
	MFString   []string
	MFVec2f    []Vec2
	MFVec3f    []Vec3
	MFRotation []Rotation
	MFColor    []Color
	MFImage    []Image
	MFNode     []*Node
)

func (SFBool) Kind() FieldKind     { return KindSFBool }
func (SFInt32) Kind() FieldKind    { return KindSFInt32 }
func (SFFloat) Kind() FieldKind    { return KindSFFloat }
func (SFTime) Kind() FieldKind     { return KindSFTime }
func (SFString) Kind() FieldKind   { return KindSFString }
func (SFVec2f) Kind() FieldKind    { return KindSFVec2f }
func (SFVec3f) Kind() FieldKind    { return KindSFVec3f }
func (SFRotation) Kind() FieldKind { return KindSFRotation }
func (SFColor) Kind() FieldKind    { return KindSFColor }
func (SFImage) Kind() FieldKind    { return KindSFImage }
func (SFNode) Kind() FieldKind     { return KindSFNode }
func (MFBool) Kind() FieldKind     { return KindMFBool }
func (MFInt32) Kind() FieldKind    { return KindMFInt32 }
func (MFFloat) Kind() FieldKind    { return KindMFFloat }
func (MFTime) Kind() FieldKind     { return KindMFTime }
func (MFString) Kind() FieldKind   { return KindMFString }
func (MFVec2f) Kind() FieldKind    { return KindMFVec2f }
func (MFVec3f) Kind() FieldKind    { return KindMFVec3f }
func (MFRotation) Kind() FieldKind { return KindMFRotation }
func (MFColor) Kind() FieldKind    { return KindMFColor }
func (MFImage) Kind() FieldKind    { return KindMFImage }
func (MFNode) Kind() FieldKind     { return KindMFNode }

func (v SFBool) Clone() Value     { return v }
func (v SFInt32) Clone() Value    { return v }
func (v SFFloat) Clone() Value    { return v }
func (v SFTime) Clone() Value     { return v }
func (v SFString) Clone() Value   { return v }
func (v SFVec2f) Clone() Value    { return v }
func (v SFVec3f) Clone() Value    { return v }
func (v SFRotation) Clone() Value { return v }
func (v SFColor) Clone() Value    { return v }
func (v SFImage) Clone() Value    { return SFImage(Image(v).Clone()) }
func (v SFNode) Clone() Value     { return v }
func (v MFBool) Clone() Value     { return MFBool(cloneSlice(v)) }
func (v MFInt32) Clone() Value    { return MFInt32(cloneSlice(v)) }
func (v MFFloat) Clone() Value    { return MFFloat(cloneSlice(v)) }
func (v MFTime) Clone() Value     { return MFTime(cloneSlice(v)) }
func (v MFString) Clone() Value   { return MFString(cloneSlice(v)) }
func (v MFVec2f) Clone() Value    { return MFVec2f(cloneSlice(v)) }
func (v MFVec3f) Clone() Value    { return MFVec3f(cloneSlice(v)) }
func (v MFRotation) Clone() Value { return MFRotation(cloneSlice(v)) }
func (v MFColor) Clone() Value    { return MFColor(cloneSlice(v)) }
func (v MFNode) Clone() Value     { return MFNode(cloneSlice(v)) }

func (v MFImage) Clone() Value {
	out := make(MFImage, len(v))
	for i, img := range v {
		out[i] = img.Clone()
	}
	return out
}

func (SFBool) isValue()     {}
func (SFInt32) isValue()    {}
func (SFFloat) isValue()    {}
func (SFTime) isValue()     {}
func (SFString) isValue()   {}
func (SFVec2f) isValue()    {}
func (SFVec3f) isValue()    {}
func (SFRotation) isValue() {}
func (SFColor) isValue()    {}
func (SFImage) isValue()    {}
func (SFNode) isValue()     {}
func (MFBool) isValue()     {}
func (MFInt32) isValue()    {}
func (MFFloat) isValue()    {}
func (MFTime) isValue()     {}
func (MFString) isValue()   {}
func (MFVec2f) isValue()    {}
func (MFVec3f) isValue()    {}
func (MFRotation) isValue() {}
func (MFColor) isValue()    {}
func (MFImage) isValue()    {}
func (MFNode) isValue()     {}

// cloneSlice copies s, preserving nil-ness so empty defaults stay empty.
func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	return append(make([]T, 0, len(s)), s...)
}

// ZeroValue returns the VRML default for kind k: false, 0, "", the zero
// vector, the (0 0 1 0) rotation, black, the empty image, NULL or the empty
// sequence.
func ZeroValue(k FieldKind) Value {
	switch k {
	case KindSFBool:
		return SFBool(false)
	case KindSFInt32:
		return SFInt32(0)
	case KindSFFloat:
		return SFFloat(0)
	case KindSFTime:
		return SFTime(0)
	case KindSFString:
		return SFString("")
	case KindSFVec2f:
		return SFVec2f{}
	case KindSFVec3f:
		return SFVec3f{}
	case KindSFRotation:
		return SFRotation(DefaultRotation)
	case KindSFColor:
		return SFColor{}
	case KindSFImage:
		return SFImage{}
	case KindSFNode:
		return SFNode{}
	case KindMFBool:
		return MFBool(nil)
	case KindMFInt32:
		return MFInt32(nil)
	case KindMFFloat:
		return MFFloat(nil)
	case KindMFTime:
		return MFTime(nil)
	case KindMFString:
		return MFString(nil)
	case KindMFVec2f:
		return MFVec2f(nil)
	case KindMFVec3f:
		return MFVec3f(nil)
	case KindMFRotation:
		return MFRotation(nil)
	case KindMFColor:
		return MFColor(nil)
	case KindMFImage:
		return MFImage(nil)
	case KindMFNode:
		return MFNode(nil)
	}
	return nil
}

// nodeRefs returns the non-nil nodes referenced by v, in order.
func nodeRefs(v Value) []*Node {
	switch r := v.(type) {
	case SFNode:
		if r.Node != nil {
			return []*Node{r.Node}
		}
	case MFNode:
		out := make([]*Node, 0, len(r))
		for _, n := range r {
			if n != nil {
				out = append(out, n)
			}
		}
		return out
	}
	return nil
}
