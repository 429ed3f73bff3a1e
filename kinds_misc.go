package vrml

func lightSpecs(rows ...InterfaceSpec) []InterfaceSpec {
	return append([]InterfaceSpec{
		exposedSpec("ambientIntensity", KindSFFloat, nil),
		exposedSpec("color", KindSFColor, sfWhite),
		exposedSpec("intensity", KindSFFloat, SFFloat(1)),
		exposedSpec("on", KindSFBool, sfTrue),
	}, rows...)
}

func miscKinds() []*Kind {
	return []*Kind{
		{
			Name: "DirectionalLight",
			Interfaces: lightSpecs(
				exposedSpec("direction", KindSFVec3f, SFVec3f{0, 0, -1}),
			),
			Caps: CapLight,
		},
		{
			Name: "PointLight",
			Interfaces: lightSpecs(
				exposedSpec("attenuation", KindSFVec3f, SFVec3f{1, 0, 0}),
				exposedSpec("location", KindSFVec3f, sfZero3),
				exposedSpec("radius", KindSFFloat, SFFloat(100)),
			),
			Caps: CapLight,
		},
		{
			Name: "SpotLight",
			Interfaces: lightSpecs(
				exposedSpec("attenuation", KindSFVec3f, SFVec3f{1, 0, 0}),
				exposedSpec("beamWidth", KindSFFloat, SFFloat(1.570796)),
				exposedSpec("cutOffAngle", KindSFFloat, SFFloat(0.785398)),
				exposedSpec("direction", KindSFVec3f, SFVec3f{0, 0, -1}),
				exposedSpec("location", KindSFVec3f, sfZero3),
				exposedSpec("radius", KindSFFloat, SFFloat(100)),
			),
			Caps: CapLight,
		},
		{
			Name: "WorldInfo",
			Interfaces: []InterfaceSpec{
				fieldSpec("info", KindMFString, nil),
				fieldSpec("title", KindSFString, nil),
			},
		},
	}
}

// Lights returns the lights reachable from the scene roots through active
// children, in traversal order. Scoping of non-directional lights is left to
// the renderer.
func (s *Scene) Lights() []*Node {
	var out []*Node
	seen := map[*Node]bool{}
	var visit func(n *Node)
	visit = func(n *Node) {
		if n == nil || seen[n] {
			return
		}
		seen[n] = true
		if n.Has(CapLight) {
			out = append(out, n)
		}
		for _, c := range n.ActiveChildren() {
			visit(c)
		}
	}
	for _, r := range s.roots {
		visit(r)
	}
	return out
}
