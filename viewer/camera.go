package viewer

import (
	"github.com/chewxy/math32"
	"github.com/phanxgames/vrml"
)

// Rect is a screen-space rectangle with its origin at the top-left, Y
// increasing downward.
type Rect struct {
	X, Y, Width, Height float32
}

// Contains reports whether (x, y) lies inside the rectangle. Points on the
// edge are considered inside.
func (r Rect) Contains(x, y float32) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Circle is a projected bounding sphere in screen space.
type Circle struct {
	X, Y, Radius float32
}

// Contains reports whether (x, y) lies inside or on the circle.
func (c Circle) Contains(x, y float32) bool {
	dx := x - c.X
	dy := y - c.Y
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// overlaps reports whether the circle touches r.
func (c Circle) overlaps(r Rect) bool {
	nx := math32.Max(r.X, math32.Min(c.X, r.X+r.Width))
	ny := math32.Max(r.Y, math32.Min(c.Y, r.Y+r.Height))
	return c.Contains(nx, ny)
}

const (
	defaultFieldOfView = 0.785398
	defaultNear        = 0.1
)

// Camera projects world-space bounding spheres onto the screen for one
// viewpoint.
type Camera struct {
	// View is the world-to-view matrix. The camera looks down -Z.
	View vrml.Mat4
	// Position is the viewer position in world coordinates.
	Position vrml.Vec3
	// Orientation is the viewer orientation in world coordinates.
	Orientation vrml.Rotation
	// FieldOfView is the angle in radians spanned by the smaller viewport
	// dimension.
	FieldOfView float32
	// Near is the distance of the near clipping plane.
	Near float32
	// Viewport is the screen-space rectangle this camera renders into.
	Viewport Rect
	// CullEnabled skips spheres that project entirely outside the viewport
	// or lie behind the near plane.
	CullEnabled bool
}

// CameraFor builds a camera from a Viewpoint node. A nil viewpoint gives
// the VRML default view: from (0, 0, 10) looking down -Z.
func CameraFor(vp *vrml.Node, viewport Rect) *Camera {
	c := &Camera{
		View:        vrml.ViewMatrix(vp),
		Position:    vrml.Vec3{Z: 10},
		Orientation: vrml.DefaultRotation,
		FieldOfView: defaultFieldOfView,
		Near:        defaultNear,
		Viewport:    viewport,
		CullEnabled: true,
	}
	if vp == nil {
		return c
	}
	if v, err := vp.GetField("position"); err == nil {
		c.Position = vrml.Vec3(v.(vrml.SFVec3f))
	}
	if v, err := vp.GetField("orientation"); err == nil {
		c.Orientation = vrml.Rotation(v.(vrml.SFRotation))
	}
	if v, err := vp.GetField("fieldOfView"); err == nil {
		if fov := float32(v.(vrml.SFFloat)); fov > 0 && fov < math32.Pi {
			c.FieldOfView = fov
		}
	}
	return c
}

// focal returns the distance in pixels from the eye to the image plane.
func (c *Camera) focal() float32 {
	half := math32.Min(c.Viewport.Width, c.Viewport.Height) / 2
	return half / math32.Tan(c.FieldOfView/2)
}

// Project maps a world-space point to screen coordinates. depth is the
// distance in front of the eye; ok is false for points behind the near
// plane.
func (c *Camera) Project(p vrml.Vec3) (x, y, depth float32, ok bool) {
	v := c.View.MulPoint(p)
	depth = -v.Z
	if depth <= c.Near {
		return 0, 0, depth, false
	}
	f := c.focal() / depth
	x = c.Viewport.X + c.Viewport.Width/2 + v.X*f
	y = c.Viewport.Y + c.Viewport.Height/2 - v.Y*f
	return x, y, depth, true
}

// ProjectSphere maps a world-space sphere to a screen circle. ok is false
// for the empty sphere and for spheres whose centre is behind the near
// plane.
func (c *Camera) ProjectSphere(b vrml.BoundingSphere) (Circle, float32, bool) {
	if b.IsEmpty() {
		return Circle{}, 0, false
	}
	x, y, depth, ok := c.Project(b.Center)
	if !ok {
		return Circle{}, depth, false
	}
	return Circle{x, y, b.Radius * c.focal() / depth}, depth, true
}

// Culled reports whether a world-space sphere is certainly invisible.
func (c *Camera) Culled(b vrml.BoundingSphere) bool {
	if !c.CullEnabled {
		return false
	}
	if b.IsEmpty() {
		return true
	}
	v := c.View.MulPoint(b.Center)
	if -v.Z+b.Radius <= c.Near {
		return true
	}
	circle, _, ok := c.ProjectSphere(b)
	if !ok {
		// Straddles the eye plane: keep it.
		return false
	}
	return !circle.overlaps(c.Viewport)
}
