package vrml

import "github.com/chewxy/math32"

func geometryKinds() []*Kind {
	return []*Kind{
		{
			Name: "Shape",
			Interfaces: []InterfaceSpec{
				exposedSpec("appearance", KindSFNode, nil),
				withBounds(exposedSpec("geometry", KindSFNode, nil)),
			},
			Bounds: func(n *Node) BoundingSphere {
				if g := n.nodeField("geometry"); g != nil {
					return g.BoundingVolume()
				}
				return EmptySphere()
			},
		},
		{
			Name: "Box",
			Interfaces: []InterfaceSpec{
				withBounds(fieldSpec("size", KindSFVec3f, SFVec3f{2, 2, 2})),
			},
			Caps: CapGeometry,
			Bounds: func(n *Node) BoundingSphere {
				return BoundingSphere{Radius: n.vec3Field("size").Length() / 2}
			},
		},
		{
			Name: "Sphere",
			Interfaces: []InterfaceSpec{
				withBounds(fieldSpec("radius", KindSFFloat, SFFloat(1))),
			},
			Caps: CapGeometry,
			Bounds: func(n *Node) BoundingSphere {
				return BoundingSphere{Radius: n.floatField("radius")}
			},
		},
		{
			Name: "Cone",
			Interfaces: []InterfaceSpec{
				withBounds(fieldSpec("bottomRadius", KindSFFloat, SFFloat(1))),
				withBounds(fieldSpec("height", KindSFFloat, SFFloat(2))),
				fieldSpec("side", KindSFBool, sfTrue),
				fieldSpec("bottom", KindSFBool, sfTrue),
			},
			Caps: CapGeometry,
			Bounds: func(n *Node) BoundingSphere {
				return cylinderBounds(n.floatField("bottomRadius"), n.floatField("height"))
			},
		},
		{
			Name: "Cylinder",
			Interfaces: []InterfaceSpec{
				fieldSpec("bottom", KindSFBool, sfTrue),
				withBounds(fieldSpec("height", KindSFFloat, SFFloat(2))),
				withBounds(fieldSpec("radius", KindSFFloat, SFFloat(1))),
				fieldSpec("side", KindSFBool, sfTrue),
				fieldSpec("top", KindSFBool, sfTrue),
			},
			Caps: CapGeometry,
			Bounds: func(n *Node) BoundingSphere {
				return cylinderBounds(n.floatField("radius"), n.floatField("height"))
			},
		},
		{
			Name: "IndexedFaceSet",
			Interfaces: []InterfaceSpec{
				eventInSpec("set_colorIndex", KindMFInt32, storeHandler("colorIndex")),
				eventInSpec("set_coordIndex", KindMFInt32, storeHandler("coordIndex")),
				eventInSpec("set_normalIndex", KindMFInt32, storeHandler("normalIndex")),
				eventInSpec("set_texCoordIndex", KindMFInt32, storeHandler("texCoordIndex")),
				exposedSpec("color", KindSFNode, nil),
				withBounds(exposedSpec("coord", KindSFNode, nil)),
				exposedSpec("normal", KindSFNode, nil),
				exposedSpec("texCoord", KindSFNode, nil),
				fieldSpec("ccw", KindSFBool, sfTrue),
				fieldSpec("colorIndex", KindMFInt32, nil),
				fieldSpec("colorPerVertex", KindSFBool, sfTrue),
				fieldSpec("convex", KindSFBool, sfTrue),
				fieldSpec("coordIndex", KindMFInt32, nil),
				fieldSpec("creaseAngle", KindSFFloat, nil),
				fieldSpec("normalIndex", KindMFInt32, nil),
				fieldSpec("normalPerVertex", KindSFBool, sfTrue),
				fieldSpec("solid", KindSFBool, sfTrue),
				fieldSpec("texCoordIndex", KindMFInt32, nil),
			},
			Caps:   CapGeometry,
			Bounds: coordBounds,
		},
		{
			Name: "IndexedLineSet",
			Interfaces: []InterfaceSpec{
				eventInSpec("set_colorIndex", KindMFInt32, storeHandler("colorIndex")),
				eventInSpec("set_coordIndex", KindMFInt32, storeHandler("coordIndex")),
				exposedSpec("color", KindSFNode, nil),
				withBounds(exposedSpec("coord", KindSFNode, nil)),
				fieldSpec("colorIndex", KindMFInt32, nil),
				fieldSpec("colorPerVertex", KindSFBool, sfTrue),
				fieldSpec("coordIndex", KindMFInt32, nil),
			},
			Caps:   CapGeometry,
			Bounds: coordBounds,
		},
		{
			Name: "PointSet",
			Interfaces: []InterfaceSpec{
				exposedSpec("color", KindSFNode, nil),
				withBounds(exposedSpec("coord", KindSFNode, nil)),
			},
			Caps:   CapGeometry,
			Bounds: coordBounds,
		},
		{
			Name: "Coordinate",
			Interfaces: []InterfaceSpec{
				withBounds(exposedSpec("point", KindMFVec3f, nil)),
			},
			Bounds: func(n *Node) BoundingSphere {
				return EnclosePoints(n.field("point").(MFVec3f))
			},
		},
		{
			Name:       "Color",
			Interfaces: []InterfaceSpec{exposedSpec("color", KindMFColor, nil)},
		},
		{
			Name:       "Normal",
			Interfaces: []InterfaceSpec{exposedSpec("vector", KindMFVec3f, nil)},
		},
		{
			Name:       "TextureCoordinate",
			Interfaces: []InterfaceSpec{exposedSpec("point", KindMFVec2f, nil)},
		},
		{
			Name: "Text",
			Interfaces: []InterfaceSpec{
				withBounds(exposedSpec("string", KindMFString, nil)),
				withBounds(exposedSpec("fontStyle", KindSFNode, nil)),
				exposedSpec("length", KindMFFloat, nil),
				withBounds(exposedSpec("maxExtent", KindSFFloat, nil)),
			},
			Caps:   CapGeometry,
			Bounds: textBounds,
		},
		{
			Name: "FontStyle",
			Interfaces: []InterfaceSpec{
				fieldSpec("family", KindMFString, MFString{"SERIF"}),
				fieldSpec("horizontal", KindSFBool, sfTrue),
				fieldSpec("justify", KindMFString, MFString{"BEGIN"}),
				fieldSpec("language", KindSFString, nil),
				fieldSpec("leftToRight", KindSFBool, sfTrue),
				withBounds(fieldSpec("size", KindSFFloat, SFFloat(1))),
				withBounds(fieldSpec("spacing", KindSFFloat, SFFloat(1))),
				fieldSpec("style", KindSFString, SFString("PLAIN")),
				fieldSpec("topToBottom", KindSFBool, sfTrue),
			},
		},
	}
}

func appearanceKinds() []*Kind {
	return []*Kind{
		{
			Name: "Appearance",
			Interfaces: []InterfaceSpec{
				exposedSpec("material", KindSFNode, nil),
				exposedSpec("texture", KindSFNode, nil),
				exposedSpec("textureTransform", KindSFNode, nil),
			},
			Caps: CapAppearance,
		},
		{
			Name: "Material",
			Interfaces: []InterfaceSpec{
				exposedSpec("ambientIntensity", KindSFFloat, SFFloat(0.2)),
				exposedSpec("diffuseColor", KindSFColor, SFColor{0.8, 0.8, 0.8}),
				exposedSpec("emissiveColor", KindSFColor, nil),
				exposedSpec("shininess", KindSFFloat, SFFloat(0.2)),
				exposedSpec("specularColor", KindSFColor, nil),
				exposedSpec("transparency", KindSFFloat, nil),
			},
			Caps: CapAppearance,
		},
		{
			Name: "ImageTexture",
			Interfaces: []InterfaceSpec{
				exposedSpec("url", KindMFString, nil),
				fieldSpec("repeatS", KindSFBool, sfTrue),
				fieldSpec("repeatT", KindSFBool, sfTrue),
			},
			Caps: CapAppearance,
		},
		{
			Name: "PixelTexture",
			Interfaces: []InterfaceSpec{
				exposedSpec("image", KindSFImage, nil),
				fieldSpec("repeatS", KindSFBool, sfTrue),
				fieldSpec("repeatT", KindSFBool, sfTrue),
			},
			Caps: CapAppearance,
		},
		{
			Name: "TextureTransform",
			Interfaces: []InterfaceSpec{
				exposedSpec("center", KindSFVec2f, nil),
				exposedSpec("rotation", KindSFFloat, nil),
				exposedSpec("scale", KindSFVec2f, SFVec2f{1, 1}),
				exposedSpec("translation", KindSFVec2f, nil),
			},
			Caps: CapAppearance,
		},
	}
}

// cylinderBounds encloses an upright solid of the given radius and height
// centred on the origin.
func cylinderBounds(radius, height float32) BoundingSphere {
	h := height / 2
	return BoundingSphere{Radius: math32.Sqrt(radius*radius + h*h)}
}

// coordBounds encloses the points of the node's coord Coordinate.
func coordBounds(n *Node) BoundingSphere {
	if c := n.nodeField("coord"); c != nil {
		return c.BoundingVolume()
	}
	return EmptySphere()
}

// glyphAdvance approximates the width of one character as a fraction of
// the font size.
const glyphAdvance = 0.6

// textBounds approximates the extent of the text from its line lengths:
// lines run along +X from the origin and stack down -Y by size*spacing.
func textBounds(n *Node) BoundingSphere {
	lines := n.stringsField("string")
	if len(lines) == 0 {
		return EmptySphere()
	}
	size, spacing := float32(1), float32(1)
	if fs := n.nodeField("fontStyle"); fs != nil && fs.KindName() == "FontStyle" {
		size, spacing = fs.floatField("size"), fs.floatField("spacing")
	}
	var width float32
	for _, l := range lines {
		width = math32.Max(width, float32(len([]rune(l)))*size*glyphAdvance)
	}
	if limit := n.floatField("maxExtent"); limit > 0 {
		width = math32.Min(width, limit)
	}
	height := float32(len(lines)-1)*size*spacing + size
	return EnclosePoints([]Vec3{{0, size, 0}, {width, size - height, 0}})
}
