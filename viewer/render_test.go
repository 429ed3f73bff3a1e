package viewer

import (
	"testing"

	"github.com/phanxgames/vrml"
)

var (
	red  = vrml.Color{R: 1}
	blue = vrml.Color{B: 1}
)

func TestRenderSortsFarToNear(t *testing.T) {
	s := vrml.NewScene(nil)
	nearShape := coloredSphere(t, s, 1, red)
	farShape := coloredSphere(t, s, 1, blue)
	g := newTestGame(t, s,
		placed(t, s, vrml.Vec3{Z: 2}, nearShape),
		placed(t, s, vrml.Vec3{Z: -5}, farShape),
	)
	idle(t, g)

	cmds := g.Commands()
	if len(cmds) != 2 {
		t.Fatalf("commands = %d, want 2", len(cmds))
	}
	if cmds[0].Node != farShape || cmds[1].Node != nearShape {
		t.Errorf("order = [%v %v], want far then near", cmds[0].Node, cmds[1].Node)
	}
	if cmds[0].Color != blue || cmds[1].Color != red {
		t.Errorf("colors = %v %v", cmds[0].Color, cmds[1].Color)
	}
	if cmds[0].Depth <= cmds[1].Depth {
		t.Errorf("depths = %v %v, want descending", cmds[0].Depth, cmds[1].Depth)
	}
}

func TestRenderTreeOrderBreaksTies(t *testing.T) {
	s := vrml.NewScene(nil)
	a := coloredSphere(t, s, 1, red)
	b := coloredSphere(t, s, 1, blue)
	g := newTestGame(t, s, placed(t, s, vrml.Vec3{X: -1}, a), placed(t, s, vrml.Vec3{X: 1}, b))
	idle(t, g)

	cmds := g.Commands()
	if len(cmds) != 2 || cmds[0].Node != a || cmds[1].Node != b {
		t.Fatalf("commands = %+v, want tree order on equal depth", cmds)
	}
}

func TestRenderCullsOffscreen(t *testing.T) {
	s := vrml.NewScene(nil)
	visible := coloredSphere(t, s, 1, red)
	g := newTestGame(t, s,
		placed(t, s, vrml.Vec3{}, visible),
		placed(t, s, vrml.Vec3{X: 500}, coloredSphere(t, s, 1, blue)),
		placed(t, s, vrml.Vec3{Z: 50}, coloredSphere(t, s, 1, blue)),
	)
	idle(t, g)
	if cmds := g.Commands(); len(cmds) != 1 || cmds[0].Node != visible {
		t.Fatalf("commands = %+v, want only the visible shape", cmds)
	}
}

func TestRenderSwitchDrawsActiveChoice(t *testing.T) {
	s := vrml.NewScene(nil)
	a := coloredSphere(t, s, 1, red)
	b := coloredSphere(t, s, 1, blue)
	sw := mustNode(t, s, "Switch")
	mustSet(t, sw, "choice", vrml.MFNode{a, b})
	mustSet(t, sw, "whichChoice", vrml.SFInt32(1))
	g := newTestGame(t, s, sw)
	idle(t, g)

	if cmds := g.Commands(); len(cmds) != 1 || cmds[0].Node != b {
		t.Fatalf("commands = %+v, want choice 1", cmds)
	}

	// Switching choice is picked up through the modified flag.
	if err := s.SendEvent(sw, "set_whichChoice", vrml.SFInt32(0), g.now); err != nil {
		t.Fatal(err)
	}
	idle(t, g)
	if cmds := g.Commands(); len(cmds) != 1 || cmds[0].Node != a {
		t.Fatalf("commands = %+v, want choice 0", cmds)
	}
}

func TestRenderLODPicksLevelByDistance(t *testing.T) {
	s := vrml.NewScene(nil)
	detailed := coloredSphere(t, s, 1, red)
	coarse := coloredSphere(t, s, 1, blue)
	lod := mustNode(t, s, "LOD")
	mustSet(t, lod, "level", vrml.MFNode{detailed, coarse})
	mustSet(t, lod, "range", vrml.MFFloat{5})
	g := newTestGame(t, s, lod)
	idle(t, g)

	// The default viewer is 10 units away: beyond the first range.
	if cmds := g.Commands(); len(cmds) != 1 || cmds[0].Node != coarse {
		t.Fatalf("commands = %+v, want coarse level", cmds)
	}
}

func TestRenderClearsModified(t *testing.T) {
	s := vrml.NewScene(nil)
	shape := coloredSphere(t, s, 1, red)
	root := placed(t, s, vrml.Vec3{}, shape)
	g := newTestGame(t, s, root)

	if err := s.SendEvent(root, "set_translation", vrml.SFVec3f{X: 1}, 0.001); err != nil {
		t.Fatal(err)
	}
	if !root.Modified() {
		t.Fatal("expected modified root")
	}
	idle(t, g)
	if vrml.IsModified(root) {
		t.Error("renderer should clear the flags it consumed")
	}
	x := g.Commands()[0].Circle.X
	if x <= 320 {
		t.Errorf("shape should have moved right, circle x = %v", x)
	}
}

func TestRendererPickNearest(t *testing.T) {
	r := renderer{sensors: []sensorRegion{
		{Circle: Circle{X: 10, Y: 10, Radius: 5}, Depth: 8},
		{Circle: Circle{X: 10, Y: 10, Radius: 5}, Depth: 3},
		{Circle: Circle{X: 100, Y: 100, Radius: 5}, Depth: 1},
	}}
	hit, ok := r.pick(11, 11)
	if !ok || hit.Depth != 3 {
		t.Errorf("pick = %+v, %v; want depth 3", hit, ok)
	}
	if _, ok := r.pick(50, 50); ok {
		t.Error("expected miss")
	}
}

func TestBackgroundColor(t *testing.T) {
	s := vrml.NewScene(nil)
	g := newTestGame(t, s)
	if g.background() != g.cfg.ClearColor {
		t.Error("unbound background should use the clear colour")
	}

	s2 := vrml.NewScene(nil)
	bg := mustNode(t, s2, "Background")
	mustSet(t, bg, "skyColor", vrml.MFColor{{R: 1, G: 0.5}})
	g2 := newTestGame(t, s2, bg)
	c := toRGBA(vrml.Color{R: 1, G: 0.5})
	if g2.background() != c {
		t.Errorf("background = %v, want %v", g2.background(), c)
	}
}

func TestRenderTextLabel(t *testing.T) {
	s := vrml.NewScene(nil)
	style := mustNode(t, s, "FontStyle")
	mustSet(t, style, "size", vrml.SFFloat(2))
	mustSet(t, style, "justify", vrml.MFString{"middle"})
	geo := mustNode(t, s, "Text")
	mustSet(t, geo, "string", vrml.MFString{"hello", "world"})
	mustSet(t, geo, "fontStyle", vrml.SFNode{Node: style})
	shape := mustNode(t, s, "Shape")
	mustSet(t, shape, "geometry", vrml.SFNode{Node: geo})
	empty := mustNode(t, s, "Shape")
	mustSet(t, empty, "geometry", vrml.SFNode{Node: mustNode(t, s, "Text")})
	g := newTestGame(t, s, shape, empty)
	idle(t, g)

	if len(g.r.labels) != 1 {
		t.Fatalf("labels = %d, want 1", len(g.r.labels))
	}
	l := g.r.labels[0]
	if l.Node != shape || len(l.Lines) != 2 || l.Justify != "MIDDLE" {
		t.Errorf("label = %+v", l)
	}
	cam := g.camera()
	if want := 2 * cam.focal() / 10; !near(l.LineHeight, want) {
		t.Errorf("LineHeight = %v, want %v", l.LineHeight, want)
	}
	if !near(l.X, 320) || l.Y >= 240 {
		t.Errorf("label origin = (%v, %v), want above the screen centre", l.X, l.Y)
	}
	if l.Color != vrml.ColorWhite {
		t.Errorf("unlit text color = %v, want white", l.Color)
	}
}
