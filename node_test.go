package vrml

import (
	"errors"
	"strings"
	"testing"
)

// --- Construction ---

func TestNewNodeDefaults(t *testing.T) {
	s := NewScene(nil)
	n, err := s.NewNode("Transform")
	if err != nil {
		t.Fatal(err)
	}
	if n.KindName() != "Transform" {
		t.Errorf("KindName = %q, want Transform", n.KindName())
	}
	v, err := n.GetField("scale")
	if err != nil {
		t.Fatal(err)
	}
	if v != (SFVec3f{1, 1, 1}) {
		t.Errorf("scale = %v, want (1, 1, 1)", v)
	}
	if n.Modified() {
		t.Error("new node should not be modified")
	}
	if !n.BoundsDirty() {
		t.Error("new node should have dirty bounds")
	}
	if n.Phase() != PhaseConstructed {
		t.Errorf("Phase = %v, want constructed", n.Phase())
	}
	if n.State() != nil {
		t.Errorf("Transform should have no private state, got %T", n.State())
	}
}

func TestNodeIDsUnique(t *testing.T) {
	s := NewScene(nil)
	seen := map[uint32]bool{}
	for i := 0; i < 50; i++ {
		n, _ := s.NewNode("Group")
		if seen[n.ID] {
			t.Fatalf("duplicate ID %d", n.ID)
		}
		seen[n.ID] = true
	}
}

func TestNodeDefaultsAreIndependent(t *testing.T) {
	s := NewScene(nil)
	a, _ := s.NewNode("Coordinate")
	b, _ := s.NewNode("Coordinate")
	if err := a.SetField("point", MFVec3f{{1, 2, 3}}); err != nil {
		t.Fatal(err)
	}
	v, _ := b.GetField("point")
	if len(v.(MFVec3f)) != 0 {
		t.Errorf("b.point = %v, want empty", v)
	}
}

func TestNodeState(t *testing.T) {
	s := NewScene(nil)
	ts, _ := s.NewNode("TimeSensor")
	if _, ok := ts.State().(*timeSensorState); !ok {
		t.Errorf("TimeSensor state = %T, want *timeSensorState", ts.State())
	}
}

func TestNodeString(t *testing.T) {
	s := NewScene(nil)
	n, _ := s.NewNode("Group")
	if !strings.HasPrefix(n.String(), "Group#") {
		t.Errorf("String = %q", n.String())
	}
	n.Name = "Root"
	if !strings.HasPrefix(n.String(), "Group(Root#") {
		t.Errorf("String = %q", n.String())
	}
}

func TestNodeHas(t *testing.T) {
	s := NewScene(nil)
	xf, _ := s.NewNode("Transform")
	if !xf.Has(CapGrouping | CapTransform) {
		t.Error("Transform should be grouping and transform")
	}
	if xf.Has(CapLight) {
		t.Error("Transform is not a light")
	}
	if xf.Type().Caps() != CapGrouping|CapTransform {
		t.Errorf("Caps = %v", xf.Type().Caps())
	}
}

// --- Graph ---

func TestChildrenDeclarationOrder(t *testing.T) {
	s := NewScene(nil)
	app, _ := s.NewNode("Appearance")
	box, _ := s.NewNode("Box")
	shape, _ := s.NewNode("Shape")
	if err := shape.SetField("geometry", SFNode{box}); err != nil {
		t.Fatal(err)
	}
	if len(shape.Children()) != 1 {
		t.Fatalf("children = %v, want [box]", shape.Children())
	}
	if err := shape.SetField("appearance", SFNode{app}); err != nil {
		t.Fatal(err)
	}
	kids := shape.Children()
	if len(kids) != 2 || kids[0] != app || kids[1] != box {
		t.Errorf("children = %v, want [appearance box]", kids)
	}
}

// --- Events ---

func TestEmitExposedField(t *testing.T) {
	s := NewScene(nil)
	xf, _ := s.NewNode("Transform")
	if err := xf.Emit("translation_changed", SFVec3f{1, 0, 0}, 4); err != nil {
		t.Fatal(err)
	}
	_, ts, err := xf.GetEventOut("translation_changed")
	if err != nil {
		t.Fatal(err)
	}
	if ts != 4 {
		t.Errorf("ts = %v, want 4", ts)
	}
}

func TestEmitEventOut(t *testing.T) {
	s := NewScene(nil)
	ts, _ := s.NewNode("TimeSensor")
	if err := ts.Emit("isActive", SFBool(true), 2); err != nil {
		t.Fatal(err)
	}
	v, at, err := ts.GetEventOut("isActive")
	if err != nil {
		t.Fatal(err)
	}
	if v != SFBool(true) || at != 2 {
		t.Errorf("isActive = %v@%v, want true@2", v, at)
	}
}

func TestEmitErrors(t *testing.T) {
	s := NewScene(nil)
	xf, _ := s.NewNode("Transform")
	if err := xf.Emit("nope", SFBool(true), 1); !errors.Is(err, ErrUnsupportedInterface) {
		t.Errorf("unknown output: err = %v", err)
	}
	if err := xf.Emit("translation_changed", SFFloat(1), 1); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("wrong type: err = %v", err)
	}
	if err := xf.Emit("translation_changed", nil, 1); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("nil value: err = %v", err)
	}
}

func TestGetFieldUnknown(t *testing.T) {
	s := NewScene(nil)
	xf, _ := s.NewNode("Transform")
	if _, err := xf.GetField("radius"); !errors.Is(err, ErrUnsupportedInterface) {
		t.Errorf("err = %v, want unsupported interface", err)
	}
}

// --- Modified flag ---

func TestModifiedFlag(t *testing.T) {
	s := NewScene(nil)
	n, _ := s.NewNode("Group")
	n.MarkModified()
	if !n.Modified() {
		t.Error("MarkModified should set the flag")
	}
	n.SetModified(false)
	if n.Modified() {
		t.Error("SetModified(false) should clear the flag")
	}
}
