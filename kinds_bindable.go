package vrml

// bindableSpecs are the set_bind/isBound pair every bindable kind carries.
func bindableSpecs(rows ...InterfaceSpec) []InterfaceSpec {
	return append([]InterfaceSpec{
		eventInSpec("set_bind", KindSFBool, bindHandler),
		eventOutSpec("isBound", KindSFBool),
	}, rows...)
}

func bindableKinds() []*Kind {
	return []*Kind{
		{
			Name: "Background",
			Interfaces: bindableSpecs(
				exposedSpec("groundAngle", KindMFFloat, nil),
				exposedSpec("groundColor", KindMFColor, nil),
				exposedSpec("backUrl", KindMFString, nil),
				exposedSpec("bottomUrl", KindMFString, nil),
				exposedSpec("frontUrl", KindMFString, nil),
				exposedSpec("leftUrl", KindMFString, nil),
				exposedSpec("rightUrl", KindMFString, nil),
				exposedSpec("topUrl", KindMFString, nil),
				exposedSpec("skyAngle", KindMFFloat, nil),
				exposedSpec("skyColor", KindMFColor, MFColor{{}}),
			),
			Caps:       CapBindable,
			Initialize: bindableInit,
		},
		{
			Name: "Fog",
			Interfaces: bindableSpecs(
				exposedSpec("color", KindSFColor, sfWhite),
				exposedSpec("fogType", KindSFString, SFString("LINEAR")),
				exposedSpec("visibilityRange", KindSFFloat, nil),
			),
			Caps:       CapBindable,
			Initialize: bindableInit,
		},
		{
			Name: "Viewpoint",
			Interfaces: bindableSpecs(
				exposedSpec("fieldOfView", KindSFFloat, SFFloat(0.785398)),
				exposedSpec("jump", KindSFBool, sfTrue),
				exposedSpec("orientation", KindSFRotation, sfIdentityR),
				exposedSpec("position", KindSFVec3f, SFVec3f{0, 0, 10}),
				fieldSpec("description", KindSFString, nil),
				eventOutSpec("bindTime", KindSFTime),
			),
			Caps:       CapBindable,
			Initialize: bindableInit,
		},
		{
			Name: "NavigationInfo",
			Interfaces: bindableSpecs(
				exposedSpec("avatarSize", KindMFFloat, MFFloat{0.25, 1.6, 0.75}),
				exposedSpec("headlight", KindSFBool, sfTrue),
				exposedSpec("speed", KindSFFloat, SFFloat(1)),
				exposedSpec("type", KindMFString, MFString{"WALK", "ANY"}),
				exposedSpec("visibilityLimit", KindSFFloat, nil),
			),
			Caps:       CapBindable,
			Initialize: bindableInit,
		},
	}
}

// ViewMatrix returns the world-to-view matrix of a Viewpoint: the inverse
// of its position and orientation.
func ViewMatrix(vp *Node) Mat4 {
	if vp == nil || vp.KindName() != "Viewpoint" {
		return Translate(Vec3{0, 0, -10})
	}
	return Translate(vp.vec3Field("position")).Mul(RotateMat(vp.rotField("orientation"))).Invert()
}
