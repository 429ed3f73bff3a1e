package vrml

import "github.com/chewxy/math32"

// Vec2 is a 2D vector used for SFVec2f values (texture coordinates, sizes).
type Vec2 struct {
	X, Y float32
}

// Vec3 is a 3D vector used for SFVec3f values: positions, directions,
// sizes and scale factors.
type Vec3 struct {
	X, Y, Z float32
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

// Scale returns v * s.
func (v Vec3) Scale(s float32) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// Neg returns -v.
func (v Vec3) Neg() Vec3 { return Vec3{-v.X, -v.Y, -v.Z} }

// Dot returns the dot product of v and o.
func (v Vec3) Dot(o Vec3) float32 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

// Cross returns the cross product v x o.
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

// Length returns the Euclidean length of v.
func (v Vec3) Length() float32 { return math32.Sqrt(v.Dot(v)) }

// Normalize returns v scaled to unit length. The zero vector is returned
// unchanged.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}

// Rotation is an SFRotation: a rotation of Angle radians about the axis
// (X, Y, Z).
type Rotation struct {
	X, Y, Z, Angle float32
}

// Axis returns the rotation axis as a vector.
func (r Rotation) Axis() Vec3 { return Vec3{r.X, r.Y, r.Z} }

// DefaultRotation is the identity rotation, (0 0 1 0).
var DefaultRotation = Rotation{0, 0, 1, 0}

// Color is an SFColor with RGB components in [0, 1].
type Color struct {
	R, G, B float32
}

// ColorWhite is the default diffuse colour of lights and text.
var ColorWhite = Color{1, 1, 1}

// Image is an SFImage: an uncompressed pixel block. Each pixel packs
// Components bytes (1 = grey, 2 = grey+alpha, 3 = RGB, 4 = RGBA) into the
// low bits of a uint32, highest component first.
type Image struct {
	Width, Height int
	Components    int
	Pixels        []uint32
}

// Clone returns a deep copy of the image.
func (img Image) Clone() Image {
	out := img
	if img.Pixels != nil {
		out.Pixels = append([]uint32(nil), img.Pixels...)
	}
	return out
}

// Valid reports whether the pixel count matches the declared dimensions.
func (img Image) Valid() bool {
	if img.Width < 0 || img.Height < 0 || img.Components < 0 || img.Components > 4 {
		return false
	}
	return len(img.Pixels) == img.Width*img.Height
}
