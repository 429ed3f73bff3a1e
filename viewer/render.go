package viewer

import (
	"cmp"
	"slices"

	"github.com/phanxgames/vrml"
)

// DrawCommand is a single draw instruction emitted during scene traversal:
// one Shape's bounding sphere in world and screen space.
type DrawCommand struct {
	Node   *vrml.Node
	Sphere vrml.BoundingSphere
	Circle Circle
	Depth  float32
	Color  vrml.Color

	treeOrder int // assigned during traversal for stable sort
}

// sensorRegion is the screen area a TouchSensor responds to: the projected
// volume of the group that contains it.
type sensorRegion struct {
	Sensor  *vrml.Node
	Sphere  vrml.BoundingSphere // world space
	Circle  Circle
	Depth   float32
	toLocal vrml.Mat4 // world to sensor coordinates
}

// renderer turns the scene graph into a depth-sorted command list. The
// list is rebuilt only when the propagator reports a change or the camera
// moved.
type renderer struct {
	commands []DrawCommand
	labels   []label
	sensors  []sensorRegion
	cam      *Camera
	seen     map[*vrml.Node]bool
}

// build traverses the active graph under roots and rebuilds the command
// list. Every node it consumes has its modified flag cleared.
func (r *renderer) build(roots []*vrml.Node, cam *Camera) {
	r.commands = r.commands[:0]
	r.labels = r.labels[:0]
	r.sensors = r.sensors[:0]
	r.cam = cam
	if r.seen == nil {
		r.seen = make(map[*vrml.Node]bool)
	}
	clear(r.seen)

	order := 0
	for _, n := range roots {
		r.traverse(n, vrml.Identity, &order)
	}

	// Far to near; ties keep tree order.
	slices.SortStableFunc(r.commands, func(a, b DrawCommand) int {
		if c := cmp.Compare(b.Depth, a.Depth); c != 0 {
			return c
		}
		return cmp.Compare(a.treeOrder, b.treeOrder)
	})
	slices.SortStableFunc(r.labels, func(a, b label) int {
		return cmp.Compare(b.Depth, a.Depth)
	})
}

// traverse walks the active children depth-first. world is the
// parent's local-to-world matrix.
func (r *renderer) traverse(n *vrml.Node, world vrml.Mat4, treeOrder *int) {
	if n == nil || r.seen[n] {
		return
	}
	r.seen[n] = true

	sphere := n.BoundingVolume().Transform(world)
	if n.Has(vrml.CapGrouping) && r.cam.Culled(sphere) {
		return
	}

	switch n.KindName() {
	case "Shape":
		if r.cam.Culled(sphere) {
			return
		}
		circle, depth, ok := r.cam.ProjectSphere(sphere)
		if ok {
			*treeOrder++
			r.commands = append(r.commands, DrawCommand{
				Node:      n,
				Sphere:    sphere,
				Circle:    circle,
				Depth:     depth,
				Color:     shapeColor(n),
				treeOrder: *treeOrder,
			})
		}
		if geo := nodeOf(n, "geometry"); geo != nil && geo.KindName() == "Text" {
			if l, ok := r.textLabel(n, geo, world); ok {
				r.labels = append(r.labels, l)
			}
		}
		vrml.ClearModified(n)
		return
	case "LOD":
		n.SetModified(false)
		local := world.Mul(vrml.LocalMatrix(n))
		levels := nodesOf(n, "level")
		if i := vrml.SelectLOD(n, local.Invert().MulPoint(r.cam.Position)); i >= 0 && i < len(levels) {
			r.traverse(levels[i], local, treeOrder)
		}
		return
	}

	n.SetModified(false)
	local := world.Mul(vrml.LocalMatrix(n))
	children := n.ActiveChildren()
	for _, c := range children {
		if c.KindName() == "TouchSensor" {
			r.addSensor(c, sphere, local)
		}
	}
	for _, c := range children {
		r.traverse(c, local, treeOrder)
	}
}

func (r *renderer) addSensor(sensor *vrml.Node, sphere vrml.BoundingSphere, local vrml.Mat4) {
	circle, depth, ok := r.cam.ProjectSphere(sphere)
	if !ok {
		return
	}
	r.sensors = append(r.sensors, sensorRegion{
		Sensor:  sensor,
		Sphere:  sphere,
		Circle:  circle,
		Depth:   depth,
		toLocal: local.Invert(),
	})
}

// pick returns the nearest sensor region under the screen point.
func (r *renderer) pick(x, y float32) (sensorRegion, bool) {
	var best sensorRegion
	found := false
	for _, s := range r.sensors {
		if !s.Circle.Contains(x, y) {
			continue
		}
		if !found || s.Depth < best.Depth {
			best, found = s, true
		}
	}
	return best, found
}

// shapeColor returns the diffuse colour of a Shape's Material, or white
// for unlit shapes.
func shapeColor(shape *vrml.Node) vrml.Color {
	app := nodeOf(shape, "appearance")
	if app == nil {
		return vrml.ColorWhite
	}
	mat := nodeOf(app, "material")
	if mat == nil {
		return vrml.ColorWhite
	}
	v, err := mat.GetField("diffuseColor")
	if err != nil {
		return vrml.ColorWhite
	}
	return vrml.Color(v.(vrml.SFColor))
}

func nodeOf(n *vrml.Node, field string) *vrml.Node {
	v, err := n.GetField(field)
	if err != nil {
		return nil
	}
	ref, ok := v.(vrml.SFNode)
	if !ok {
		return nil
	}
	return ref.Node
}

func nodesOf(n *vrml.Node, field string) vrml.MFNode {
	v, err := n.GetField(field)
	if err != nil {
		return nil
	}
	list, _ := v.(vrml.MFNode)
	return list
}
