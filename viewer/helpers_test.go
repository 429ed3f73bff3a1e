package viewer

import (
	"testing"

	"github.com/phanxgames/vrml"
)

func mustNode(t *testing.T, s *vrml.Scene, kind string) *vrml.Node {
	t.Helper()
	n, err := s.NewNode(kind)
	if err != nil {
		t.Fatalf("NewNode(%s): %v", kind, err)
	}
	return n
}

func mustSet(t *testing.T, n *vrml.Node, field string, v vrml.Value) {
	t.Helper()
	if err := n.SetField(field, v); err != nil {
		t.Fatalf("SetField(%s.%s): %v", n.KindName(), field, err)
	}
}

// coloredSphere returns Shape{Appearance{Material{diffuseColor c}}, Sphere{r}}.
func coloredSphere(t *testing.T, s *vrml.Scene, r float32, c vrml.Color) *vrml.Node {
	t.Helper()
	mat := mustNode(t, s, "Material")
	mustSet(t, mat, "diffuseColor", vrml.SFColor(c))
	app := mustNode(t, s, "Appearance")
	mustSet(t, app, "material", vrml.SFNode{Node: mat})
	geo := mustNode(t, s, "Sphere")
	mustSet(t, geo, "radius", vrml.SFFloat(r))
	shape := mustNode(t, s, "Shape")
	mustSet(t, shape, "appearance", vrml.SFNode{Node: app})
	mustSet(t, shape, "geometry", vrml.SFNode{Node: geo})
	return shape
}

// placed wraps children in a Transform at the given translation.
func placed(t *testing.T, s *vrml.Scene, at vrml.Vec3, children ...*vrml.Node) *vrml.Node {
	t.Helper()
	xf := mustNode(t, s, "Transform")
	mustSet(t, xf, "translation", vrml.SFVec3f(at))
	mustSet(t, xf, "children", vrml.MFNode(children))
	return xf
}

// newTestGame builds a 640x480 game over roots with the default camera at
// (0, 0, 10) looking down -Z.
func newTestGame(t *testing.T, s *vrml.Scene, roots ...*vrml.Node) *Game {
	t.Helper()
	for _, r := range roots {
		s.AddRoot(r)
	}
	return New(s, Config{Width: 640, Height: 480})
}

const tick = 1.0 / 60

// idle advances one tick with the pointer released in the top-left corner.
func idle(t *testing.T, g *Game) {
	t.Helper()
	if err := g.advance(tick, pointerSample{}); err != nil {
		t.Fatal(err)
	}
}

// drain advances one tick using the next injected pointer sample.
func drain(t *testing.T, g *Game) {
	t.Helper()
	if len(g.injectQueue) == 0 {
		t.Fatal("inject queue is empty")
	}
	if err := g.advance(tick, g.readPointer()); err != nil {
		t.Fatal(err)
	}
}
