package vrml

// Bound returns the node on top of the bind stack for kind, or nil.
func (s *Scene) Bound(kind string) *Node {
	st := s.bindStacks[kind]
	if len(st) == 0 {
		return nil
	}
	return st[len(st)-1]
}

// BindStack returns the bind stack for kind, bottom first. The returned
// slice MUST NOT be mutated.
func (s *Scene) BindStack(kind string) []*Node {
	return s.bindStacks[kind]
}

// bind moves n to the top of its kind's stack. The previous top receives
// isBound FALSE, n receives isBound TRUE (and bindTime where declared).
func (s *Scene) bind(n *Node, ts float64) {
	kind := n.KindName()
	st := s.bindStacks[kind]
	if len(st) > 0 && st[len(st)-1] == n {
		return
	}
	if len(st) > 0 {
		emitBound(st[len(st)-1], false, ts)
	}
	st = removeNode(st, n)
	s.bindStacks[kind] = append(st, n)
	emitBound(n, true, ts)
	if _, ok := n.outputSlot("bindTime"); ok {
		_ = n.Emit("bindTime", SFTime(ts), ts)
	}
}

// unbind removes n from its kind's stack. If n was on top, the node below
// it becomes bound.
func (s *Scene) unbind(n *Node, ts float64) {
	if !n.Has(CapBindable) {
		return
	}
	kind := n.KindName()
	st := s.bindStacks[kind]
	if len(st) == 0 {
		return
	}
	wasTop := st[len(st)-1] == n
	st = removeNode(st, n)
	s.bindStacks[kind] = st
	if !wasTop {
		return
	}
	if n.phase < PhaseShutdown {
		emitBound(n, false, ts)
	}
	if len(st) > 0 {
		emitBound(st[len(st)-1], true, ts)
	}
}

func emitBound(n *Node, bound bool, ts float64) {
	n.MarkModified()
	_ = n.Emit("isBound", SFBool(bound), ts)
}

// bindableInit makes the first initialized bindable node of each kind the
// scene default.
func bindableInit(n *Node, s *Scene) {
	if s.opts.NoDefaultBindables {
		return
	}
	if len(s.bindStacks[n.KindName()]) == 0 {
		s.bind(n, s.now)
	}
}

// bindHandler implements set_bind.
func bindHandler(n *Node, v Value, ts float64) error {
	s := n.scene
	if s == nil {
		return nil
	}
	if bool(v.(SFBool)) {
		s.bind(n, ts)
	} else {
		s.unbind(n, ts)
	}
	return nil
}
