package viewer

import (
	"encoding/json"
	"fmt"

	"github.com/phanxgames/vrml"
)

// scriptStep represents a single action in a viewer script.
type scriptStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	Node   string  `json:"node,omitempty"` // DEF name for "bind"
	X      float32 `json:"x,omitempty"`
	Y      float32 `json:"y,omitempty"`
	FromX  float32 `json:"fromX,omitempty"`
	FromY  float32 `json:"fromY,omitempty"`
	ToX    float32 `json:"toX,omitempty"`
	ToY    float32 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

type script struct {
	Steps []scriptStep `json:"steps"`
}

// ScriptRunner sequences injected pointer input, viewpoint binds and
// screenshots across ticks for automated visual checks. Pass it to Run in
// Config.Script.
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a JSON script of the form
//
//	{"steps": [{"action": "wait", "frames": 30}, {"action": "screenshot", "label": "start"}]}
//
// Actions are screenshot, click, drag, wait and bind (sends set_bind TRUE to
// the node DEF'd as "node").
func LoadScript(data []byte) (*ScriptRunner, error) {
	var s script
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(s.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	for i, st := range s.Steps {
		switch st.Action {
		case "screenshot", "click", "drag", "wait", "bind":
		default:
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &ScriptRunner{steps: s.Steps}, nil
}

// Done reports whether every step has been executed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// step advances the runner by one tick. Called from Game.Update.
func (r *ScriptRunner) step(g *Game) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(g.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "screenshot":
		g.Screenshot(st.Label)
	case "click":
		g.InjectClick(st.X, st.Y)
	case "drag":
		g.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, max(st.Frames, 2))
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this tick counts as one
		}
	case "bind":
		s := g.scene
		if n, ok := s.Lookup(st.Node); ok {
			if err := s.SendEvent(n, "set_bind", vrml.SFBool(true), s.Now()); err != nil {
				s.Logger().Warn("script bind", "node", st.Node, "error", err)
			}
		} else {
			s.Logger().Warn("script bind: no such node", "node", st.Node)
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(g.injectQueue) == 0 {
		r.done = true
	}
}
