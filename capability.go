package vrml

import "strings"

// Capability is a bitmask of roles a node kind can play. It is resolved
// once when a node is created and queried with Node.Has, replacing
// per-call-site type switches.
type Capability uint16

const (
	CapGrouping      Capability = 1 << iota // has a children-like MFNode field
	CapTransform                            // applies a local matrix to its children
	CapBindable                             // participates in a per-scene bind stack
	CapLight                                // light source
	CapSensor                               // pointing-device or proximity sensor
	CapTimeDependent                        // ticked by Scene.Step
	CapGeometry                             // geometry node referenced by a Shape
	CapInterpolator                         // set_fraction / value_changed
	CapAppearance                           // appearance, material or texture
)

var capabilityNames = []struct {
	c    Capability
	name string
}{
	{CapGrouping, "grouping"},
	{CapTransform, "transform"},
	{CapBindable, "bindable"},
	{CapLight, "light"},
	{CapSensor, "sensor"},
	{CapTimeDependent, "time-dependent"},
	{CapGeometry, "geometry"},
	{CapInterpolator, "interpolator"},
	{CapAppearance, "appearance"},
}

// Has reports whether every bit in want is set.
func (c Capability) Has(want Capability) bool {
	return c&want == want
}

func (c Capability) String() string {
	if c == 0 {
		return "none"
	}
	var parts []string
	for _, cn := range capabilityNames {
		if c&cn.c != 0 {
			parts = append(parts, cn.name)
		}
	}
	return strings.Join(parts, "|")
}
