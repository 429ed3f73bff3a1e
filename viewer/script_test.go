package viewer

import (
	"strings"
	"testing"

	"github.com/phanxgames/vrml"
)

func TestLoadScript(t *testing.T) {
	r, err := LoadScript([]byte(`{"steps": [
		{"action": "wait", "frames": 2},
		{"action": "click", "x": 10, "y": 20},
		{"action": "screenshot", "label": "after-click"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	if len(r.steps) != 3 {
		t.Fatalf("steps = %d, want 3", len(r.steps))
	}
	if r.steps[1].X != 10 || r.steps[1].Y != 20 {
		t.Errorf("click step = %+v", r.steps[1])
	}
	if r.Done() {
		t.Error("new runner should not be done")
	}
}

func TestLoadScriptErrors(t *testing.T) {
	tests := []struct {
		name, in, want string
	}{
		{"invalid json", `{"steps": [`, "parse script"},
		{"no steps", `{"steps": []}`, "no steps"},
		{"unknown action", `{"steps": [{"action": "explode"}]}`, `unknown action "explode"`},
	}
	for _, tt := range tests {
		_, err := LoadScript([]byte(tt.in))
		if err == nil || !strings.Contains(err.Error(), tt.want) {
			t.Errorf("%s: err = %v, want containing %q", tt.name, err, tt.want)
		}
	}
}

func scriptGame(t *testing.T, steps string) (*Game, *ScriptRunner) {
	t.Helper()
	r, err := LoadScript([]byte(steps))
	if err != nil {
		t.Fatal(err)
	}
	g := newTestGame(t, vrml.NewScene(nil))
	g.cfg.Script = r
	return g, r
}

func TestRunnerStep_Click(t *testing.T) {
	g, r := scriptGame(t, `{"steps": [{"action": "click", "x": 50, "y": 60}]}`)

	r.step(g)
	if len(g.injectQueue) != 2 {
		t.Fatalf("expected 2 queued events, got %d", len(g.injectQueue))
	}
	if r.Done() {
		t.Fatal("runner must wait for the injected click to drain")
	}

	// Pending injections block the runner.
	r.step(g)
	if len(g.injectQueue) != 2 {
		t.Fatal("runner should not advance while events are queued")
	}

	g.readPointer()
	g.readPointer()
	r.step(g)
	if !r.Done() {
		t.Error("expected done once the queue drained")
	}
}

func TestRunnerStep_Wait(t *testing.T) {
	g, r := scriptGame(t, `{"steps": [{"action": "wait", "frames": 3}]}`)

	// The wait step itself counts as the first frame.
	for i := 0; i < 3; i++ {
		if r.Done() {
			t.Fatalf("done too early at frame %d", i)
		}
		r.step(g)
	}
	r.step(g)
	if !r.Done() {
		t.Error("expected done after the wait elapsed")
	}
}

func TestRunnerStep_Drag(t *testing.T) {
	g, r := scriptGame(t, `{"steps": [{"action": "drag", "fromX": 0, "fromY": 0, "toX": 90, "toY": 0, "frames": 4}]}`)
	r.step(g)
	if len(g.injectQueue) != 4 {
		t.Fatalf("expected 4 queued events, got %d", len(g.injectQueue))
	}

	g2, r2 := scriptGame(t, `{"steps": [{"action": "drag", "toX": 10}]}`)
	r2.step(g2)
	if len(g2.injectQueue) != 2 {
		t.Fatalf("frames should default to the minimum of 2, got %d", len(g2.injectQueue))
	}
}

func TestRunnerStep_Screenshot(t *testing.T) {
	g, r := scriptGame(t, `{"steps": [{"action": "screenshot", "label": "a"}, {"action": "screenshot", "label": "b"}]}`)
	r.step(g)
	r.step(g)
	if len(g.screenshotQueue) != 2 || g.screenshotQueue[0] != "a" || g.screenshotQueue[1] != "b" {
		t.Errorf("screenshot queue = %v, want [a b]", g.screenshotQueue)
	}
	if !r.Done() {
		t.Error("expected done after the last step")
	}
}

func TestRunnerStep_Bind(t *testing.T) {
	s := vrml.NewScene(nil)
	front := mustNode(t, s, "Viewpoint")
	side := mustNode(t, s, "Viewpoint")
	mustSet(t, side, "position", vrml.SFVec3f{X: 10})
	s.Define("Side", side)
	g := newTestGame(t, s, front, side)

	r, err := LoadScript([]byte(`{"steps": [{"action": "bind", "node": "Side"}, {"action": "bind", "node": "Missing"}]}`))
	if err != nil {
		t.Fatal(err)
	}
	r.step(g)
	if s.Bound("Viewpoint") != side {
		t.Fatalf("bound = %v, want Side", s.Bound("Viewpoint"))
	}
	if g.camera().Position != (vrml.Vec3{X: 10}) {
		t.Errorf("camera position = %v, want the bound viewpoint's", g.camera().Position)
	}

	// Unknown names are logged and skipped.
	r.step(g)
	if !r.Done() || s.Bound("Viewpoint") != side {
		t.Error("missing bind target should not change the binding")
	}
}

func TestRunnerDone(t *testing.T) {
	g, r := scriptGame(t, `{"steps": [{"action": "wait", "frames": 1}]}`)
	r.step(g)
	if !r.Done() {
		t.Fatal("single-frame wait should finish on its own tick")
	}
	// Further steps are no-ops.
	r.step(g)
	if !r.Done() {
		t.Error("runner should stay done")
	}
}
