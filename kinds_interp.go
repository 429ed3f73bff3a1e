package vrml

import (
	"github.com/chewxy/math32"
	"github.com/tanema/gween/ease"
)

// interpSpecs returns the shared interpolator interfaces for a keyValue and
// value_changed of type values (element type out).
func interpSpecs(values, out FieldKind, h HandlerFunc) []InterfaceSpec {
	return []InterfaceSpec{
		eventInSpec("set_fraction", KindSFFloat, h),
		exposedSpec("key", KindMFFloat, nil),
		exposedSpec("keyValue", values, nil),
		eventOutSpec("value_changed", out),
	}
}

func interpolatorKinds() []*Kind {
	return []*Kind{
		{
			Name:       "PositionInterpolator",
			Interfaces: interpSpecs(KindMFVec3f, KindSFVec3f, positionFraction),
			Caps:       CapInterpolator,
		},
		{
			Name:       "OrientationInterpolator",
			Interfaces: interpSpecs(KindMFRotation, KindSFRotation, orientationFraction),
			Caps:       CapInterpolator,
		},
		{
			Name:       "ScalarInterpolator",
			Interfaces: interpSpecs(KindMFFloat, KindSFFloat, scalarFraction),
			Caps:       CapInterpolator,
		},
		{
			Name:       "ColorInterpolator",
			Interfaces: interpSpecs(KindMFColor, KindSFColor, colorFraction),
			Caps:       CapInterpolator,
		},
		{
			Name:       "CoordinateInterpolator",
			Interfaces: interpSpecs(KindMFVec3f, KindMFVec3f, coordinateFraction(false)),
			Caps:       CapInterpolator,
		},
		{
			Name:       "NormalInterpolator",
			Interfaces: interpSpecs(KindMFVec3f, KindMFVec3f, coordinateFraction(true)),
			Caps:       CapInterpolator,
		},
	}
}

// keySegment locates fraction f in keys. It returns the index of the key at
// or below f and the normalized position t in [0, 1) towards the next key.
// Fractions outside the key range clamp to the first or last key with t = 0.
// ok is false when there are no keys.
func keySegment(keys []float32, f float32) (i int, t float32, ok bool) {
	if len(keys) == 0 {
		return 0, 0, false
	}
	last := len(keys) - 1
	if f <= keys[0] {
		return 0, 0, true
	}
	if f >= keys[last] {
		return last, 0, true
	}
	for i = 0; i < last; i++ {
		if f < keys[i+1] {
			break
		}
	}
	span := keys[i+1] - keys[i]
	if span <= 0 {
		return i + 1, 0, true
	}
	return i, (f - keys[i]) / span, true
}

func lerp(a, b, t float32) float32 {
	return ease.Linear(t, a, b-a, 1)
}

func lerpVec3(a, b Vec3, t float32) Vec3 {
	return Vec3{lerp(a.X, b.X, t), lerp(a.Y, b.Y, t), lerp(a.Z, b.Z, t)}
}

// segment resolves the fraction against the node's keys and clamps the
// result to the available keyValues (count per key).
func segment(n *Node, v Value, values, per int) (i, j int, t float32, ok bool) {
	keys := n.floatsField("key")
	i, t, ok = keySegment(keys, float32(v.(SFFloat)))
	if !ok || per <= 0 || (i+1)*per > values {
		return 0, 0, 0, false
	}
	j = i
	if t > 0 && (i+2)*per <= values {
		j = i + 1
	}
	return i, j, t, true
}

func positionFraction(n *Node, v Value, ts float64) error {
	kv := n.field("keyValue").(MFVec3f)
	i, j, t, ok := segment(n, v, len(kv), 1)
	if !ok {
		return nil
	}
	n.update("value_changed", SFVec3f(lerpVec3(kv[i], kv[j], t)), ts)
	return nil
}

func scalarFraction(n *Node, v Value, ts float64) error {
	kv := n.floatsField("keyValue")
	i, j, t, ok := segment(n, v, len(kv), 1)
	if !ok {
		return nil
	}
	n.update("value_changed", SFFloat(lerp(kv[i], kv[j], t)), ts)
	return nil
}

// colorFraction interpolates in RGB space.
func colorFraction(n *Node, v Value, ts float64) error {
	kv := n.field("keyValue").(MFColor)
	i, j, t, ok := segment(n, v, len(kv), 1)
	if !ok {
		return nil
	}
	a, b := kv[i], kv[j]
	n.update("value_changed", SFColor{lerp(a.R, b.R, t), lerp(a.G, b.G, t), lerp(a.B, b.B, t)}, ts)
	return nil
}

func orientationFraction(n *Node, v Value, ts float64) error {
	kv := n.field("keyValue").(MFRotation)
	i, j, t, ok := segment(n, v, len(kv), 1)
	if !ok {
		return nil
	}
	r := kv[i]
	if j != i {
		r = slerp(quatFrom(kv[i]), quatFrom(kv[j]), t).rotation()
	}
	n.update("value_changed", SFRotation(r), ts)
	return nil
}

// coordinateFraction interpolates len(keyValue)/len(key) vectors per key.
// Normals are renormalized after interpolation.
func coordinateFraction(normalize bool) HandlerFunc {
	return func(n *Node, v Value, ts float64) error {
		kv := n.field("keyValue").(MFVec3f)
		keys := n.floatsField("key")
		if len(keys) == 0 {
			return nil
		}
		per := len(kv) / len(keys)
		i, j, t, ok := segment(n, v, len(kv), per)
		if !ok {
			return nil
		}
		out := make(MFVec3f, per)
		for k := range out {
			p := lerpVec3(kv[i*per+k], kv[j*per+k], t)
			if normalize {
				p = p.Normalize()
			}
			out[k] = p
		}
		n.update("value_changed", out, ts)
		return nil
	}
}

// quat is a unit quaternion used for orientation interpolation.
type quat struct{ x, y, z, w float32 }

func quatFrom(r Rotation) quat {
	axis := r.Axis().Normalize()
	if axis == (Vec3{}) {
		return quat{w: 1}
	}
	s, c := math32.Sincos(r.Angle / 2)
	return quat{axis.X * s, axis.Y * s, axis.Z * s, c}
}

func (q quat) rotation() Rotation {
	w := math32.Max(-1, math32.Min(1, q.w))
	angle := 2 * math32.Acos(w)
	s := math32.Sqrt(1 - w*w)
	if s < 1e-6 {
		return DefaultRotation
	}
	return Rotation{q.x / s, q.y / s, q.z / s, angle}
}

// slerp interpolates along the shortest arc between a and b.
func slerp(a, b quat, t float32) quat {
	dot := a.x*b.x + a.y*b.y + a.z*b.z + a.w*b.w
	if dot < 0 {
		b = quat{-b.x, -b.y, -b.z, -b.w}
		dot = -dot
	}
	var wa, wb float32
	if dot > 0.9995 {
		wa, wb = 1-t, t
	} else {
		theta := math32.Acos(dot)
		sin := math32.Sin(theta)
		wa = math32.Sin((1-t)*theta) / sin
		wb = math32.Sin(t*theta) / sin
	}
	q := quat{
		wa*a.x + wb*b.x,
		wa*a.y + wb*b.y,
		wa*a.z + wb*b.z,
		wa*a.w + wb*b.w,
	}
	l := math32.Sqrt(q.x*q.x + q.y*q.y + q.z*q.z + q.w*q.w)
	return quat{q.x / l, q.y / l, q.z / l, q.w / l}
}
