package viewer

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/phanxgames/vrml"
	"golang.org/x/image/font/basicfont"
)

// label is the projected string of a Text geometry. Y is the top of the
// first line.
type label struct {
	Node       *vrml.Node
	Lines      []string
	X, Y       float32
	LineHeight float32 // pixels between baselines
	Justify    string
	Color      vrml.Color
	Depth      float32
}

// LoadFont parses TrueType or OpenType data for Config.Font.
func LoadFont(data []byte) (*text.GoTextFaceSource, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("viewer: failed to parse font data: %w", err)
	}
	return src, nil
}

// fontFace returns the face labels are drawn with. The built-in 7x13 bitmap
// face is used when no font source is configured.
func fontFace(src *text.GoTextFaceSource) text.Face {
	if src == nil {
		return text.NewGoXFace(basicfont.Face7x13)
	}
	return &text.GoTextFace{Source: src, Size: 32}
}

// faceHeight returns the native line height of face in pixels.
func faceHeight(face text.Face) float64 {
	m := face.Metrics()
	return m.HAscent + m.HDescent + m.HLineGap
}

// textLabel projects a Text geometry placed by world. It reports false for
// empty text and text behind the viewer.
func (r *renderer) textLabel(shape, geo *vrml.Node, world vrml.Mat4) (label, bool) {
	lines := []string(stringsOf(geo, "string"))
	if len(lines) == 0 {
		return label{}, false
	}
	size, spacing, justify := float32(1), float32(1), "BEGIN"
	if fs := nodeOf(geo, "fontStyle"); fs != nil {
		size = floatOf(fs, "size", size)
		spacing = floatOf(fs, "spacing", spacing)
		if j := stringsOf(fs, "justify"); len(j) > 0 {
			justify = strings.ToUpper(j[0])
		}
	}
	x, y, depth, ok := r.cam.Project(world.MulPoint(vrml.Vec3{Y: size}))
	if !ok {
		return label{}, false
	}
	_, below, _, ok := r.cam.Project(world.MulPoint(vrml.Vec3{Y: size - size*spacing}))
	if !ok {
		return label{}, false
	}
	return label{
		Node:       shape,
		Lines:      lines,
		X:          x,
		Y:          y,
		LineHeight: below - y,
		Justify:    justify,
		Color:      shapeColor(shape),
		Depth:      depth,
	}, true
}

// drawLabels draws every projected label, scaling the face so one line
// spans LineHeight pixels.
func (g *Game) drawLabels(screen *ebiten.Image) {
	if len(g.r.labels) == 0 {
		return
	}
	if g.face == nil {
		g.face = fontFace(g.cfg.Font)
	}
	native := faceHeight(g.face)
	for _, l := range g.r.labels {
		if l.LineHeight <= 0 {
			continue
		}
		op := &text.DrawOptions{}
		op.LineSpacing = native
		switch l.Justify {
		case "MIDDLE":
			op.PrimaryAlign = text.AlignCenter
		case "END":
			op.PrimaryAlign = text.AlignEnd
		}
		s := float64(l.LineHeight) / native
		op.GeoM.Scale(s, s)
		op.GeoM.Translate(float64(l.X), float64(l.Y))
		op.ColorScale.ScaleWithColor(toRGBA(l.Color))
		text.Draw(screen, strings.Join(l.Lines, "\n"), g.face, op)
	}
}

func stringsOf(n *vrml.Node, field string) vrml.MFString {
	v, err := n.GetField(field)
	if err != nil {
		return nil
	}
	list, _ := v.(vrml.MFString)
	return list
}

func floatOf(n *vrml.Node, field string, def float32) float32 {
	v, err := n.GetField(field)
	if err != nil {
		return def
	}
	f, ok := v.(vrml.SFFloat)
	if !ok {
		return def
	}
	return float32(f)
}
