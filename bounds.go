package vrml

import "github.com/chewxy/math32"

// BoundingSphere is the conservative volume used for view-frustum culling.
// A negative radius is the empty sphere, the identity element of Extend.
type BoundingSphere struct {
	Center Vec3
	Radius float32
}

// EmptySphere returns the empty bounding volume.
func EmptySphere() BoundingSphere {
	return BoundingSphere{Radius: -1}
}

// IsEmpty reports whether b encloses nothing.
func (b BoundingSphere) IsEmpty() bool {
	return b.Radius < 0
}

// Extend returns the smallest sphere enclosing both b and o. Extending the
// empty sphere by o yields o unchanged.
func (b BoundingSphere) Extend(o BoundingSphere) BoundingSphere {
	if o.IsEmpty() {
		return b
	}
	if b.IsEmpty() {
		return o
	}
	d := o.Center.Sub(b.Center)
	dist := d.Length()
	if dist+o.Radius <= b.Radius {
		return b
	}
	if dist+b.Radius <= o.Radius {
		return o
	}
	r := (dist + b.Radius + o.Radius) / 2
	return BoundingSphere{
		Center: b.Center.Add(d.Scale((r - b.Radius) / dist)),
		Radius: r,
	}
}

// ExtendPoint returns the smallest sphere enclosing b and p.
func (b BoundingSphere) ExtendPoint(p Vec3) BoundingSphere {
	return b.Extend(BoundingSphere{Center: p})
}

// EnclosePoints returns a sphere around all points: centred on their
// axis-aligned box, with the radius of the farthest point. No points yields
// the empty sphere.
func EnclosePoints(points []Vec3) BoundingSphere {
	if len(points) == 0 {
		return EmptySphere()
	}
	lo, hi := points[0], points[0]
	for _, p := range points[1:] {
		lo = Vec3{math32.Min(lo.X, p.X), math32.Min(lo.Y, p.Y), math32.Min(lo.Z, p.Z)}
		hi = Vec3{math32.Max(hi.X, p.X), math32.Max(hi.Y, p.Y), math32.Max(hi.Z, p.Z)}
	}
	c := lo.Add(hi).Scale(0.5)
	var r float32
	for _, p := range points {
		r = math32.Max(r, p.Sub(c).Length())
	}
	return BoundingSphere{Center: c, Radius: r}
}

// Transform returns b mapped through m. The radius grows by m's largest
// axis scale so the result stays conservative.
func (b BoundingSphere) Transform(m Mat4) BoundingSphere {
	if b.IsEmpty() {
		return b
	}
	return BoundingSphere{Center: m.MulPoint(b.Center), Radius: b.Radius * m.MaxScale()}
}

// ContainsPoint reports whether p lies inside or on b.
func (b BoundingSphere) ContainsPoint(p Vec3) bool {
	if b.IsEmpty() {
		return false
	}
	return p.Sub(b.Center).Length() <= b.Radius
}

// Intersects reports whether b and o overlap. Touching spheres intersect.
func (b BoundingSphere) Intersects(o BoundingSphere) bool {
	if b.IsEmpty() || o.IsEmpty() {
		return false
	}
	return o.Center.Sub(b.Center).Length() <= b.Radius+o.Radius
}

// boundsCell caches a node's bounding volume. It is written from the
// read-only BoundingVolume accessor, so it is explicit interior state
// rather than part of the node's fields.
type boundsCell struct {
	dirty  bool
	sphere BoundingSphere
}

// BoundingVolume returns the node's cached bounding volume, recomputing it
// with the kind's rule when dirty.
func (n *Node) BoundingVolume() BoundingSphere {
	if !n.bounds.dirty {
		return n.bounds.sphere
	}
	s := EmptySphere()
	if f := n.typ.kind.Bounds; f != nil {
		// Clear first so a cycle back to n reads the empty cache instead of
		// recursing.
		n.bounds.dirty = false
		n.bounds.sphere = s
		s = f(n)
	}
	n.bounds.sphere = s
	n.bounds.dirty = false
	if n.scene != nil {
		n.scene.metrics.boundsRecomputed()
	}
	return s
}

// BoundsDirty reports whether the cached volume needs recomputation.
func (n *Node) BoundsDirty() bool { return n.bounds.dirty }

// InvalidateBounds dirties n's cached volume and that of every ancestor
// whose volume depends on it.
func (n *Node) InvalidateBounds() {
	seen := map[*Node]bool{}
	stack := []*Node{n}
	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[c] {
			continue
		}
		seen[c] = true
		c.bounds.dirty = true
		stack = append(stack, c.parents...)
	}
}

// unionChildren extends the empty volume by each node's volume.
func unionChildren(nodes []*Node) BoundingSphere {
	s := EmptySphere()
	for _, c := range nodes {
		s = s.Extend(c.BoundingVolume())
	}
	return s
}
