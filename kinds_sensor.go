package vrml

import (
	"math"

	"github.com/chewxy/math32"
)

func sensorKinds() []*Kind {
	return []*Kind{
		{
			Name: "TimeSensor",
			Interfaces: []InterfaceSpec{
				withHandler(exposedSpec("cycleInterval", KindSFTime, SFTime(1)), ignoreWhileActive("cycleInterval")),
				withHandler(exposedSpec("enabled", KindSFBool, sfTrue), timeSensorEnabled),
				exposedSpec("loop", KindSFBool, sfFalse),
				withHandler(exposedSpec("startTime", KindSFTime, nil), ignoreWhileActive("startTime")),
				exposedSpec("stopTime", KindSFTime, nil),
				eventOutSpec("cycleTime", KindSFTime),
				eventOutSpec("fraction_changed", KindSFFloat),
				eventOutSpec("isActive", KindSFBool),
				eventOutSpec("time", KindSFTime),
			},
			Caps:     CapSensor | CapTimeDependent,
			NewState: func() any { return &timeSensorState{} },
			Tick:     tickTimeSensor,
		},
		{
			Name: "TouchSensor",
			Interfaces: []InterfaceSpec{
				exposedSpec("enabled", KindSFBool, sfTrue),
				eventOutSpec("hitNormal_changed", KindSFVec3f),
				eventOutSpec("hitPoint_changed", KindSFVec3f),
				eventOutSpec("hitTexCoord_changed", KindSFVec2f),
				eventOutSpec("isActive", KindSFBool),
				eventOutSpec("isOver", KindSFBool),
				eventOutSpec("touchTime", KindSFTime),
			},
			Caps:     CapSensor,
			NewState: func() any { return &touchState{} },
		},
		{
			Name: "ProximitySensor",
			Interfaces: []InterfaceSpec{
				exposedSpec("center", KindSFVec3f, sfZero3),
				exposedSpec("size", KindSFVec3f, sfZero3),
				exposedSpec("enabled", KindSFBool, sfTrue),
				eventOutSpec("isActive", KindSFBool),
				eventOutSpec("position_changed", KindSFVec3f),
				eventOutSpec("orientation_changed", KindSFRotation),
				eventOutSpec("enterTime", KindSFTime),
				eventOutSpec("exitTime", KindSFTime),
			},
			Caps:     CapSensor,
			NewState: func() any { return &proximityState{} },
		},
	}
}

// --- TimeSensor ---

type timeSensorState struct {
	active bool
	cycle  float64 // index of the current cycle
}

// ignoreWhileActive is the exposedField handler for interfaces a running
// TimeSensor must not change.
func ignoreWhileActive(field string) HandlerFunc {
	return func(n *Node, v Value, ts float64) error {
		if n.state.(*timeSensorState).active {
			return nil
		}
		n.update(field, v, ts)
		return nil
	}
}

func timeSensorEnabled(n *Node, v Value, ts float64) error {
	n.update("enabled", v, ts)
	st := n.state.(*timeSensorState)
	if !bool(v.(SFBool)) && st.active {
		st.active = false
		n.update("isActive", sfFalse, ts)
	}
	return nil
}

// tickTimeSensor generates the sensor's outputs for time now. A sensor is
// active from startTime until stopTime (when stopTime > startTime) or, for
// non-looping sensors, until one cycleInterval has elapsed.
func tickTimeSensor(n *Node, now float64) {
	st := n.state.(*timeSensorState)
	if !n.boolField("enabled") {
		return
	}
	start, stop := n.timeField("startTime"), n.timeField("stopTime")
	interval := n.timeField("cycleInterval")
	loop := n.boolField("loop")
	if interval <= 0 {
		return
	}
	stopped := stop > start && now >= stop

	if !st.active {
		if now < start || stopped || (!loop && now >= start+interval) {
			return
		}
		st.active = true
		st.cycle = math.Floor((now - start) / interval)
		n.update("isActive", sfTrue, now)
		n.update("cycleTime", SFTime(now), now)
	}

	end := math.Inf(1)
	if !loop {
		end = start + interval
	}
	if stopped {
		end = math.Min(end, stop)
	}
	if now >= end {
		n.update("fraction_changed", SFFloat(timeFraction(end-start, interval)), now)
		n.update("time", SFTime(now), now)
		st.active = false
		n.update("isActive", sfFalse, now)
		return
	}

	elapsed := now - start
	if cycle := math.Floor(elapsed / interval); cycle != st.cycle {
		st.cycle = cycle
		n.update("cycleTime", SFTime(now), now)
	}
	n.update("fraction_changed", SFFloat(timeFraction(elapsed, interval)), now)
	n.update("time", SFTime(now), now)
}

// timeFraction maps elapsed time to [0, 1]. The end of a cycle reports 1,
// not 0.
func timeFraction(elapsed, interval float64) float32 {
	if elapsed <= 0 {
		return 0
	}
	f := math.Mod(elapsed, interval) / interval
	if f == 0 {
		return 1
	}
	return float32(f)
}

// --- TouchSensor ---

type touchState struct {
	over, active bool
}

// TouchInput is one pointer sample against a TouchSensor's sibling
// geometry, in the sensor's local coordinates.
type TouchInput struct {
	Over     bool // pointer is over the geometry
	Pressed  bool // primary button held
	Point    Vec3
	Normal   Vec3
	TexCoord Vec2
}

// Touch feeds a pointer sample to a TouchSensor and processes the
// resulting events. touchTime fires when the button is released while the
// pointer is still over the geometry.
func (s *Scene) Touch(n *Node, in TouchInput, ts float64) error {
	if n.KindName() != "TouchSensor" {
		return ifaceErr("touch", n.KindName(), "TouchSensor", ErrUnsupportedInterface)
	}
	if !n.boolField("enabled") {
		return nil
	}
	st := n.state.(*touchState)
	if in.Over != st.over {
		st.over = in.Over
		n.update("isOver", SFBool(in.Over), ts)
	}
	if in.Over {
		n.update("hitPoint_changed", SFVec3f(in.Point), ts)
		n.update("hitNormal_changed", SFVec3f(in.Normal), ts)
		n.update("hitTexCoord_changed", SFVec2f(in.TexCoord), ts)
	}
	pressed := in.Pressed && (st.active || in.Over)
	if pressed != st.active {
		st.active = pressed
		n.update("isActive", SFBool(pressed), ts)
		if !pressed && in.Over {
			n.update("touchTime", SFTime(ts), ts)
		}
	}
	return s.ProcessEvents()
}

// --- ProximitySensor ---

type proximityState struct {
	inside bool
}

// UpdateProximity moves the viewer to pos/ori (world coordinates) and
// updates every enabled ProximitySensor reachable from the roots, then
// processes the resulting events. Sensors test the viewer against their
// box in their own coordinate system.
func (s *Scene) UpdateProximity(pos Vec3, ori Rotation, ts float64) error {
	seen := map[*Node]bool{}
	var visit func(n *Node, world Mat4)
	visit = func(n *Node, world Mat4) {
		if n == nil || seen[n] {
			return
		}
		seen[n] = true
		if n.KindName() == "ProximitySensor" {
			proximitySample(n, world.Invert().MulPoint(pos), ori, ts)
			return
		}
		local := world.Mul(LocalMatrix(n))
		for _, c := range n.ActiveChildren() {
			visit(c, local)
		}
	}
	for _, r := range s.roots {
		visit(r, Identity)
	}
	return s.ProcessEvents()
}

func proximitySample(n *Node, p Vec3, ori Rotation, ts float64) {
	if !n.boolField("enabled") {
		return
	}
	st := n.state.(*proximityState)
	c, size := n.vec3Field("center"), n.vec3Field("size")
	d := p.Sub(c)
	inside := math32.Abs(d.X) <= size.X/2 && math32.Abs(d.Y) <= size.Y/2 && math32.Abs(d.Z) <= size.Z/2 &&
		size.X > 0 && size.Y > 0 && size.Z > 0

	switch {
	case inside && !st.inside:
		st.inside = true
		n.update("isActive", sfTrue, ts)
		n.update("enterTime", SFTime(ts), ts)
	case !inside && st.inside:
		st.inside = false
		n.update("isActive", sfFalse, ts)
		n.update("exitTime", SFTime(ts), ts)
		return
	}
	if inside {
		n.update("position_changed", SFVec3f(p), ts)
		n.update("orientation_changed", SFRotation(ori), ts)
	}
}
