// Package vrml is the runtime core of a VRML97 scene graph: typed field
// values, per-kind interface registries, node instances with shared
// ownership, an event router, a modified-flag propagator and cached
// bounding volumes for culling.
//
// # Quick start
//
// A [Scene] creates nodes from a [Registry] of node kinds. [NewScene] with a
// nil registry uses the built-in VRML97 kinds:
//
//	scene := vrml.NewScene(nil)
//	timer, _ := scene.NewNode("TimeSensor")
//	path, _ := scene.NewNode("PositionInterpolator")
//	xf, _ := scene.NewNode("Transform")
//
//	_ = timer.SetField("cycleInterval", vrml.SFTime(10))
//	_ = path.SetField("key", vrml.MFFloat{0, 1})
//	_ = path.SetField("keyValue", vrml.MFVec3f{{}, {X: 1, Y: 1, Z: 1}})
//
//	_, _ = scene.AddRoute(timer, "fraction_changed", path, "set_fraction")
//	_, _ = scene.AddRoute(path, "value_changed", xf, "set_translation")
//
//	for _, n := range []*vrml.Node{timer, path, xf} {
//		scene.AddRoot(n)
//	}
//	scene.Initialize(0)
//	_ = scene.Step(5) // xf.translation is now (0.5, 0.5, 0.5)
//
// The viewer subpackage drives a scene from an [Ebitengine] game loop.
//
// # Fields and events
//
// Every interface of a node kind is a field, exposedField, eventIn or
// eventOut carrying one [FieldKind]. An exposedField x also answers to the
// eventIn set_x and the eventOut x_changed. [Node.SetField] writes storage
// directly for scene construction; [Node.DispatchEvent] runs the input's
// handler, which stores the value, flags the node modified and emits the
// matching output. Emitted events travel along [Route]s and are delivered in
// timestamp order when the scene drains its queue. A route delivers at most
// one event per timestamp, which breaks routing loops.
//
// # Node kinds
//
// A [Kind] is a declarative schema: interface rows plus optional hooks for
// bounds, active children, time ticks and scene join/leave. [DefaultKinds]
// returns the built-in table; applications add their own kinds to a
// [KindTable] and build a [Registry] over it.
//
// # Change tracking
//
// [Propagate] copies modified flags up to every ancestor so a renderer can
// skip unchanged subtrees. Bounding volumes are cached per node and
// invalidated through parent links when a bounds-relevant field changes.
//
// ECS integration is provided by the [Donburi] adapter in vrml/ecs.
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package vrml
