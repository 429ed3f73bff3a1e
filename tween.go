package vrml

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Tween animates one SFFloat, SFVec3f or SFColor exposedField of a node.
// Each Update sends the eased value to the field's input as an ordinary
// event, so handlers run and routes fire. If the target node is destroyed
// the tween stops immediately.
//
// Scenes advance tweens registered with AddTween in Step; a tween that is
// not registered can be driven by calling Update directly.
type Tween struct {
	tweens [3]*gween.Tween
	count  int
	kind   FieldKind
	field  string
	target *Node
	Done   bool
}

// TweenField creates a tween that animates n's exposedField field from its
// current value to to over duration seconds using the easing function.
func TweenField(n *Node, field string, to Value, duration float32, fn ease.TweenFunc) (*Tween, error) {
	b := n.typ.input(field)
	if b == nil || b.decl.Category != CategoryExposedField {
		return nil, ifaceErr("tween", n.KindName(), field, ErrUnsupportedInterface)
	}
	if to == nil || to.Kind() != b.decl.Type {
		return nil, mismatchErr("tween", n.KindName(), field, b.decl.Type, kindOf(to))
	}
	from := tweenComponents(b.acc.Get(n))
	dest := tweenComponents(to)
	if from == nil {
		e := ifaceErr("tween", n.KindName(), field, ErrTypeMismatch)
		e.Detail = b.decl.Type.String() + " cannot be tweened"
		return nil, e
	}
	t := &Tween{count: len(from), kind: b.decl.Type, field: b.decl.Name, target: n}
	for i := range from {
		t.tweens[i] = gween.New(from[i], dest[i], duration, fn)
	}
	return t, nil
}

// tweenComponents splits a tweenable value into float components.
func tweenComponents(v Value) []float32 {
	switch v := v.(type) {
	case SFFloat:
		return []float32{float32(v)}
	case SFVec3f:
		return []float32{v.X, v.Y, v.Z}
	case SFColor:
		return []float32{v.R, v.G, v.B}
	}
	return nil
}

// Update advances the tween by dt seconds and dispatches the new value at
// timestamp now.
func (t *Tween) Update(dt float32, now float64) error {
	if t.Done {
		return nil
	}
	if t.target.IsDestroyed() {
		t.Done = true
		return nil
	}

	var c [3]float32
	allDone := true
	for i := 0; i < t.count; i++ {
		val, finished := t.tweens[i].Update(dt)
		c[i] = val
		if !finished {
			allDone = false
		}
	}
	t.Done = allDone

	var v Value
	switch t.kind {
	case KindSFFloat:
		v = SFFloat(c[0])
	case KindSFVec3f:
		v = SFVec3f{c[0], c[1], c[2]}
	case KindSFColor:
		v = SFColor{c[0], c[1], c[2]}
	}
	return t.target.DispatchEvent(t.field, v, now)
}

// AddTween registers t to be advanced by Step until it is done.
func (s *Scene) AddTween(t *Tween) {
	s.tweens = append(s.tweens, t)
}

// updateTweens advances every registered tween and forgets finished ones.
func (s *Scene) updateTweens(dt float32, now float64) {
	live := s.tweens[:0]
	for _, t := range s.tweens {
		if err := t.Update(dt, now); err != nil {
			s.log.Warn("tween dropped", "node", t.target.String(), "field", t.field, "error", err)
			t.Done = true
		}
		if !t.Done {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(s.tweens); i++ {
		s.tweens[i] = nil
	}
	s.tweens = live
}
