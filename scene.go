package vrml

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Scene is the top-level object that owns the root nodes, DEF names,
// routes, bind stacks and the pending event queue.
type Scene struct {
	id       uuid.UUID
	registry *Registry
	log      *slog.Logger
	metrics  *Metrics
	opts     Options
	sink     EventSink

	roots []*Node
	defs  map[string]*Node

	// Routes
	routes   map[routeKey][]*Route
	routesOf map[*Node][]*Route // every route touching a node, for cleanup

	// Per-scene bindable state (Background, Fog, Viewpoint, NavigationInfo).
	bindStacks map[string][]*Node

	timeDependent []*Node
	tweens        []*Tween
	orphans       []*Node // released during dispatch, destroyed by Collect

	queue    eventQueue
	seq      uint64
	draining bool

	now         float64
	initialized bool
}

// NewScene creates an empty scene whose nodes come from reg. A nil registry
// uses the built-in kinds.
func NewScene(reg *Registry, opts ...Option) *Scene {
	if reg == nil {
		reg = NewRegistry(nil)
	}
	s := &Scene{
		id:         uuid.New(),
		registry:   reg,
		defs:       make(map[string]*Node),
		routes:     make(map[routeKey][]*Route),
		routesOf:   make(map[*Node][]*Route),
		bindStacks: make(map[string][]*Node),
	}
	for _, o := range opts {
		o(s)
	}
	if s.log == nil {
		s.log = slog.Default()
	}
	s.log = s.log.With("scene", s.id.String())
	if s.opts.Debug {
		globalDebug = true
	}
	return s
}

// ID returns the scene's unique identifier.
func (s *Scene) ID() uuid.UUID { return s.id }

// Registry returns the registry the scene creates nodes from.
func (s *Scene) Registry() *Registry { return s.registry }

// Logger returns the scene's logger.
func (s *Scene) Logger() *slog.Logger { return s.log }

// Initialized reports whether Initialize has run since the last Shutdown.
func (s *Scene) Initialized() bool { return s.initialized }

// Now returns the timestamp of the most recent Step.
func (s *Scene) Now() float64 { return s.now }

// SetDebugMode enables or disables debug mode. When enabled, tree depth and
// child count warnings are logged and per-step timings are logged at debug
// level.
func (s *Scene) SetDebugMode(enabled bool) {
	s.opts.Debug = enabled
	globalDebug = enabled
}

// globalDebug mirrors the most recently set Scene debug flag for nodes not
// yet bound to a scene. Bound nodes follow their own scene's flag.
var globalDebug bool

// debugging reports whether debug checks apply to n.
func (n *Node) debugging() bool {
	if n.scene != nil {
		return n.scene.opts.Debug
	}
	return globalDebug
}

// debugLogger is the logger used by node-level debug checks.
var debugLogger = slog.Default

// NewNode creates a node of the named kind exposing the requested
// interfaces (all when none are given). The node joins the scene when it
// becomes reachable from a root.
func (s *Scene) NewNode(kind string, requested ...string) (*Node, error) {
	t, err := s.registry.NodeType(kind, requested...)
	if err != nil {
		return nil, err
	}
	return NewNode(t), nil
}

// --- Roots and names ---

// AddRoot appends n to the scene's top-level nodes and takes an owning
// reference.
func (s *Scene) AddRoot(n *Node) {
	if n == nil {
		panic("vrml: cannot add nil root")
	}
	n.Retain()
	s.roots = append(s.roots, n)
	if s.initialized {
		s.initNode(n)
	}
	if s.opts.Debug {
		debugCheckChildCount(n)
	}
}

// RemoveRoot removes n from the top-level nodes and drops the scene's
// reference. Returns false if n is not a root.
func (s *Scene) RemoveRoot(n *Node) bool {
	for i, r := range s.roots {
		if r == n {
			copy(s.roots[i:], s.roots[i+1:])
			s.roots[len(s.roots)-1] = nil
			s.roots = s.roots[:len(s.roots)-1]
			n.Release()
			return true
		}
	}
	return false
}

// Roots returns the top-level nodes. The returned slice MUST NOT be mutated.
func (s *Scene) Roots() []*Node { return s.roots }

// Define names n (DEF). Names are lookup-only and do not own the node.
// Defining a node again replaces its previous name.
func (s *Scene) Define(name string, n *Node) {
	if n.Name != "" && s.defs[n.Name] == n {
		delete(s.defs, n.Name)
	}
	n.Name = name
	s.defs[name] = n
}

// Lookup returns the node defined under name.
func (s *Scene) Lookup(name string) (*Node, bool) {
	n, ok := s.defs[name]
	return n, ok
}

// --- Lifecycle ---

// Initialize binds every node reachable from the roots to the scene. Nodes
// added afterwards are initialized as they become reachable.
func (s *Scene) Initialize(now float64) {
	s.now = now
	s.initialized = true
	for _, r := range s.roots {
		s.initNode(r)
	}
	if err := s.ProcessEvents(); err != nil {
		s.log.Error("initialize", "error", err)
	}
}

// Shutdown releases every root. Nodes no longer referenced elsewhere shut
// down and are destroyed.
func (s *Scene) Shutdown() {
	roots := s.roots
	s.roots = nil
	for _, r := range roots {
		r.Release()
	}
	s.Collect()
	s.queue.reset()
	s.initialized = false
	if s.opts.Debug {
		globalDebug = false
	}
}

// Collect destroys the nodes that lost their last reference during event
// dispatch and were not picked up by another parent since. Step and
// Shutdown call it; hosts driving the scene only through SendEvent call it
// between frames.
func (s *Scene) Collect() {
	for len(s.orphans) > 0 {
		orphans := s.orphans
		s.orphans = nil
		for _, n := range orphans {
			if n.refs == 0 {
				n.destroy()
			}
		}
	}
}

func (s *Scene) initNode(n *Node) {
	if n.phase != PhaseConstructed {
		return
	}
	n.scene = s
	n.phase = PhaseInitialized
	if f := n.typ.kind.Initialize; f != nil {
		f(n, s)
	}
	if n.Has(CapTimeDependent) {
		s.timeDependent = append(s.timeDependent, n)
	}
	for _, c := range n.Children() {
		s.initNode(c)
	}
	n.phase = PhaseLive
	s.metrics.nodeLive(1)
}

func (s *Scene) shutdownNode(n *Node) {
	if f := n.typ.kind.Shutdown; f != nil {
		f(n, s)
	}
	s.unbind(n, s.now)
	s.timeDependent = removeNode(s.timeDependent, n)
	for _, r := range append([]*Route(nil), s.routesOf[n]...) {
		s.DeleteRoute(r)
	}
	delete(s.routesOf, n)
	if n.Name != "" && s.defs[n.Name] == n {
		delete(s.defs, n.Name)
	}
	s.metrics.nodeLive(-1)
}

func removeNode(list []*Node, n *Node) []*Node {
	for i, c := range list {
		if c == n {
			copy(list[i:], list[i+1:])
			list[len(list)-1] = nil
			return list[:len(list)-1]
		}
	}
	return list
}

// --- Simulation ---

// Step runs one simulation step at time now: time-dependent nodes tick,
// tweens advance and every resulting event is delivered.
func (s *Scene) Step(now float64) error {
	debug := s.opts.Debug
	var stats debugStats
	var t0 time.Time
	if debug {
		t0 = time.Now()
	}
	dt := now - s.now
	s.now = now
	s.Collect()

	for _, n := range append([]*Node(nil), s.timeDependent...) {
		if f := n.typ.kind.Tick; f != nil && n.phase == PhaseLive {
			f(n, now)
			stats.ticked++
		}
	}
	if debug {
		stats.tickTime = time.Since(t0)
		stats.tweens = len(s.tweens)
		t0 = time.Now()
	}

	s.updateTweens(float32(dt), now)
	if debug {
		stats.tweenTime = time.Since(t0)
		t0 = time.Now()
	}

	err := s.ProcessEvents()
	s.Collect()
	if debug {
		stats.eventTime = time.Since(t0)
		s.debugLog(now, stats)
	}
	return err
}

// SendEvent delivers an external event to n and then processes the
// resulting cascade. Errors from n itself are returned to the caller.
func (s *Scene) SendEvent(n *Node, name string, v Value, ts float64) error {
	if err := n.DispatchEvent(name, v, ts); err != nil {
		return err
	}
	return s.ProcessEvents()
}

// Propagate runs the modified-flag propagator over every root and reports
// whether any root is modified.
func (s *Scene) Propagate() bool {
	modified := false
	for _, r := range s.roots {
		if Propagate(r) {
			modified = true
		}
	}
	return modified
}

// BoundingVolume returns the union of the roots' bounding volumes.
func (s *Scene) BoundingVolume() BoundingSphere {
	return unionChildren(s.roots)
}
