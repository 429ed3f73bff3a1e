package vrml

import "github.com/chewxy/math32"

// groupingSpecs are the interfaces shared by every children-bearing kind.
func groupingSpecs() []InterfaceSpec {
	return []InterfaceSpec{
		eventInSpec("addChildren", KindMFNode, addChildren),
		eventInSpec("removeChildren", KindMFNode, removeChildren),
		withBounds(exposedSpec("children", KindMFNode, nil)),
		withBounds(fieldSpec("bboxCenter", KindSFVec3f, sfZero3)),
		withBounds(fieldSpec("bboxSize", KindSFVec3f, sfNoBBox)),
	}
}

func groupingKinds() []*Kind {
	return []*Kind{
		{
			Name:       "Group",
			Interfaces: groupingSpecs(),
			Caps:       CapGrouping,
			Bounds:     groupBounds,
		},
		{
			Name: "Transform",
			Interfaces: append(groupingSpecs(),
				withBounds(exposedSpec("center", KindSFVec3f, sfZero3)),
				withBounds(exposedSpec("rotation", KindSFRotation, sfIdentityR)),
				withBounds(exposedSpec("scale", KindSFVec3f, sfOne3)),
				withBounds(exposedSpec("scaleOrientation", KindSFRotation, sfIdentityR)),
				withBounds(exposedSpec("translation", KindSFVec3f, sfZero3)),
			),
			Caps: CapGrouping | CapTransform,
			Bounds: func(n *Node) BoundingSphere {
				return groupBounds(n).Transform(LocalMatrix(n))
			},
		},
		{
			Name: "Billboard",
			Interfaces: append(groupingSpecs(),
				exposedSpec("axisOfRotation", KindSFVec3f, SFVec3f{0, 1, 0}),
			),
			Caps:   CapGrouping,
			Bounds: billboardBounds,
		},
		{
			Name: "Collision",
			Interfaces: append(groupingSpecs(),
				exposedSpec("collide", KindSFBool, sfTrue),
				fieldSpec("proxy", KindSFNode, nil),
				eventOutSpec("collideTime", KindSFTime),
			),
			Caps:   CapGrouping,
			Bounds: groupBounds,
		},
		{
			Name: "Anchor",
			Interfaces: append(groupingSpecs(),
				exposedSpec("description", KindSFString, nil),
				exposedSpec("parameter", KindMFString, nil),
				exposedSpec("url", KindMFString, nil),
			),
			Caps:   CapGrouping | CapSensor,
			Bounds: groupBounds,
		},
		{
			Name: "Switch",
			Interfaces: []InterfaceSpec{
				withBounds(exposedSpec("choice", KindMFNode, nil)),
				withBounds(exposedSpec("whichChoice", KindSFInt32, SFInt32(-1))),
			},
			Caps: CapGrouping,
			Bounds: func(n *Node) BoundingSphere {
				return unionChildren(switchActive(n))
			},
			Active: switchActive,
		},
		{
			Name: "LOD",
			Interfaces: []InterfaceSpec{
				withBounds(exposedSpec("level", KindMFNode, nil)),
				fieldSpec("center", KindSFVec3f, sfZero3),
				fieldSpec("range", KindMFFloat, nil),
			},
			Caps: CapGrouping,
			Bounds: func(n *Node) BoundingSphere {
				return unionChildren(n.nodesField("level"))
			},
			Active: func(n *Node) []*Node {
				levels := n.nodesField("level")
				if len(levels) == 0 || levels[0] == nil {
					return nil
				}
				return levels[:1]
			},
		},
	}
}

// groupBounds is the union of the children's volumes, or the authored
// bounding box when bboxSize is set.
func groupBounds(n *Node) BoundingSphere {
	size := n.vec3Field("bboxSize")
	if size.X >= 0 && size.Y >= 0 && size.Z >= 0 {
		return BoundingSphere{Center: n.vec3Field("bboxCenter"), Radius: size.Length() / 2}
	}
	return unionChildren(n.nodesField("children"))
}

// billboardBounds encloses every orientation of the children about the
// node's origin.
func billboardBounds(n *Node) BoundingSphere {
	s := groupBounds(n)
	if s.IsEmpty() {
		return s
	}
	return BoundingSphere{Radius: s.Center.Length() + s.Radius}
}

// LocalMatrix returns the matrix a Transform node applies to its children,
// or the identity for any other kind.
func LocalMatrix(n *Node) Mat4 {
	if !n.Has(CapTransform) {
		return Identity
	}
	return TransformMatrix(
		n.vec3Field("translation"),
		n.vec3Field("center"),
		n.rotField("rotation"),
		n.vec3Field("scale"),
		n.rotField("scaleOrientation"),
	)
}

func switchActive(n *Node) []*Node {
	choice := n.nodesField("choice")
	i := int(n.int32Field("whichChoice"))
	if i < 0 || i >= len(choice) || choice[i] == nil {
		return nil
	}
	return choice[i : i+1]
}

// SelectLOD returns the LOD level index to draw for a viewer at the given
// position in the node's local coordinates, clamped to the available levels.
func SelectLOD(n *Node, viewer Vec3) int {
	levels := n.nodesField("level")
	if len(levels) == 0 {
		return -1
	}
	d := viewer.Sub(n.vec3Field("center")).Length()
	i := 0
	for _, r := range n.floatsField("range") {
		if d < r {
			break
		}
		i++
	}
	return int(math32.Min(float32(i), float32(len(levels)-1)))
}

// addChildren appends the given nodes that are not already children and
// emits children_changed.
func addChildren(n *Node, v Value, ts float64) error {
	cur := n.nodesField("children")
	next := append(MFNode(nil), cur...)
	changed := false
	for _, c := range v.(MFNode) {
		if c == nil || containsNode(next, c) {
			continue
		}
		next = append(next, c)
		changed = true
	}
	if !changed {
		return nil
	}
	n.update("children", next, ts)
	if n.debugging() {
		debugCheckChildCount(n)
	}
	return nil
}

// removeChildren removes the given nodes from children and emits
// children_changed.
func removeChildren(n *Node, v Value, ts float64) error {
	drop := v.(MFNode)
	cur := n.nodesField("children")
	next := make(MFNode, 0, len(cur))
	for _, c := range cur {
		if !containsNode(drop, c) {
			next = append(next, c)
		}
	}
	if len(next) == len(cur) {
		return nil
	}
	n.update("children", next, ts)
	return nil
}

func containsNode(list []*Node, n *Node) bool {
	for _, c := range list {
		if c == n {
			return true
		}
	}
	return false
}
