package vrml

import "errors"

// Route is a typed wire from one node output to another node's input. The
// scene owns routes; neither endpoint does.
type Route struct {
	From    *Node
	FromOut string // canonical output name (exposedFields by base name)
	To      *Node
	ToIn    string // canonical input name
	Type    FieldKind

	lastTS  float64
	fired   bool
	removed bool
}

type routeKey struct {
	node *Node
	out  string
}

// AddRoute wires from.out to to.in. Aliases (x, set_x, x_changed) are
// resolved, and the value kinds must match: a mismatch fails here with
// ErrTypeMismatch, never at delivery. Adding an existing route returns it.
func (s *Scene) AddRoute(from *Node, out string, to *Node, in string) (*Route, error) {
	if from == nil || to == nil {
		return nil, &InterfaceError{Op: "add_route", Interface: out + "->" + in, Err: ErrUnsupportedInterface, Detail: "nil endpoint"}
	}
	ob := from.typ.output(out)
	if ob == nil {
		return nil, ifaceErr("add_route", from.typ.kind.Name, out, ErrUnsupportedInterface)
	}
	ib := to.typ.input(in)
	if ib == nil {
		return nil, ifaceErr("add_route", to.typ.kind.Name, in, ErrUnsupportedInterface)
	}
	if ob.decl.Type != ib.decl.Type {
		e := mismatchErr("add_route", to.typ.kind.Name, in, ib.decl.Type, ob.decl.Type)
		e.Detail = from.typ.kind.Name + "." + out + " sends " + ob.decl.Type.String() + ", " + e.Detail
		return nil, e
	}

	key := routeKey{from, ob.decl.Name}
	for _, r := range s.routes[key] {
		if r.To == to && r.ToIn == ib.decl.Name {
			return r, nil
		}
	}
	r := &Route{From: from, FromOut: ob.decl.Name, To: to, ToIn: ib.decl.Name, Type: ob.decl.Type}
	s.routes[key] = append(s.routes[key], r)
	s.routesOf[from] = append(s.routesOf[from], r)
	if to != from {
		s.routesOf[to] = append(s.routesOf[to], r)
	}
	s.metrics.routes(1)
	return r, nil
}

// DeleteRoute removes r. Returns false if the scene does not own it.
func (s *Scene) DeleteRoute(r *Route) bool {
	key := routeKey{r.From, r.FromOut}
	list := s.routes[key]
	found := false
	for i, c := range list {
		if c == r {
			copy(list[i:], list[i+1:])
			list[len(list)-1] = nil
			list = list[:len(list)-1]
			found = true
			break
		}
	}
	if !found {
		return false
	}
	if len(list) == 0 {
		delete(s.routes, key)
	} else {
		s.routes[key] = list
	}
	r.removed = true
	s.routesOf[r.From] = removeRoute(s.routesOf[r.From], r)
	s.routesOf[r.To] = removeRoute(s.routesOf[r.To], r)
	s.metrics.routes(-1)
	return true
}

func removeRoute(list []*Route, r *Route) []*Route {
	for i, c := range list {
		if c == r {
			copy(list[i:], list[i+1:])
			list[len(list)-1] = nil
			return list[:len(list)-1]
		}
	}
	return list
}

// Routes returns every route leaving n's output out.
func (s *Scene) Routes(n *Node, out string) []*Route {
	if b := n.typ.output(out); b != nil {
		out = b.decl.Name
	}
	return s.routes[routeKey{n, out}]
}

func (s *Scene) routeCount() int {
	count := 0
	for _, list := range s.routes {
		count += len(list)
	}
	return count
}

// post queues one delivery per route leaving (n, out). Called for every
// emitted event.
func (s *Scene) post(n *Node, out string, v Value, ts float64) {
	if s.sink != nil {
		s.sink.EmitEvent(Event{Node: n, Interface: out, Value: v, Time: ts})
	}
	for _, r := range s.routes[routeKey{n, out}] {
		s.seq++
		s.queue.push(pending{route: r, value: v, ts: ts, seq: s.seq})
	}
}

// Deliver dispatches (v, ts) to the route's destination. A route delivers
// at most one event per timestamp, which breaks routing loops. Type and
// interface errors are logged and dropped so one bad event cannot abort
// the step; allocation failures propagate.
func (s *Scene) Deliver(r *Route, v Value, ts float64) error {
	if r.removed || r.To.phase >= PhaseShutdown {
		s.metrics.dropped("unrouted")
		return nil
	}
	if r.fired && r.lastTS == ts {
		s.metrics.dropped("loop")
		if s.opts.Debug {
			s.log.Debug("route loop broken", "from", r.From.String(), "out", r.FromOut, "to", r.To.String(), "in", r.ToIn, "ts", ts)
		}
		return nil
	}
	r.fired, r.lastTS = true, ts

	err := r.To.DispatchEvent(r.ToIn, v, ts)
	if err == nil {
		s.metrics.delivered()
		return nil
	}
	if !IsRecoverable(err) {
		return err
	}
	attrs := []any{"to", r.To.String(), "in", r.ToIn, "ts", ts, "error", err}
	var ie *InterfaceError
	if errors.As(err, &ie) {
		attrs = append(attrs, "kind", ie.Kind, "interface", ie.Interface)
	}
	s.log.Warn("event dropped", attrs...)
	s.metrics.dropped(dropReason(err))
	return nil
}

func dropReason(err error) string {
	switch {
	case errors.Is(err, ErrTypeMismatch):
		return "type_mismatch"
	case errors.Is(err, ErrUnsupportedInterface):
		return "unsupported_interface"
	}
	return "other"
}

// ProcessEvents delivers queued events in non-decreasing timestamp order
// until the cascade settles. Nested calls from handlers return immediately;
// the outermost call drains.
func (s *Scene) ProcessEvents() error {
	if s.draining {
		return nil
	}
	s.draining = true
	defer func() { s.draining = false }()

	limit := s.opts.maxCascade()
	delivered := 0
	for s.queue.Len() > 0 {
		if limit > 0 && delivered >= limit {
			s.log.Warn("event cascade limit reached", "limit", limit, "dropped", s.queue.Len())
			for range s.queue.Len() {
				s.metrics.dropped("cascade_limit")
			}
			s.queue.reset()
			break
		}
		p := s.queue.pop()
		delivered++
		if err := s.Deliver(p.route, p.value, p.ts); err != nil {
			s.queue.reset()
			return err
		}
	}
	return nil
}
