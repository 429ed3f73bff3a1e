// fanout routes one looping TimeSensor into 2,000 PositionInterpolators,
// each driving its own sphere along a random loop. A stress test for the
// event router, the modified-flag propagator and bounds caching.
package main

import (
	"log"
	"math/rand/v2"

	"github.com/phanxgames/vrml"
	"github.com/phanxgames/vrml/viewer"
)

const (
	screenW = 1280
	screenH = 720
	count   = 2_000
	keys    = 6
)

func main() {
	scene := vrml.NewScene(nil, vrml.WithOptions(vrml.Options{MaxCascade: -1}))

	timer, err := scene.NewNode("TimeSensor")
	if err != nil {
		log.Fatal(err)
	}
	mustSet(timer, "cycleInterval", vrml.SFTime(6))
	mustSet(timer, "loop", vrml.SFBool(true))
	scene.AddRoot(timer)

	geo, _ := scene.NewNode("Sphere")
	mustSet(geo, "radius", vrml.SFFloat(0.08))

	key := make(vrml.MFFloat, keys)
	for i := range key {
		key[i] = float32(i) / float32(keys-1)
	}

	world, _ := scene.NewNode("Group")
	movers := make(vrml.MFNode, 0, count)
	for range count {
		mat, _ := scene.NewNode("Material")
		mustSet(mat, "diffuseColor", vrml.SFColor{
			R: 0.5 + rand.Float32()*0.5,
			G: 0.5 + rand.Float32()*0.5,
			B: 0.5 + rand.Float32()*0.5,
		})
		app, _ := scene.NewNode("Appearance")
		mustSet(app, "material", vrml.SFNode{Node: mat})
		shape, _ := scene.NewNode("Shape")
		mustSet(shape, "appearance", vrml.SFNode{Node: app})
		mustSet(shape, "geometry", vrml.SFNode{Node: geo})

		mover, _ := scene.NewNode("Transform")
		mustSet(mover, "children", vrml.MFNode{shape})
		movers = append(movers, mover)

		path := make(vrml.MFVec3f, keys)
		for i := range keys - 1 {
			path[i] = vrml.Vec3{X: (rand.Float32() - 0.5) * 12, Y: (rand.Float32() - 0.5) * 7}
		}
		path[keys-1] = path[0]
		interp, _ := scene.NewNode("PositionInterpolator")
		mustSet(interp, "key", key)
		mustSet(interp, "keyValue", path)
		scene.AddRoot(interp)

		if _, err := scene.AddRoute(timer, "fraction_changed", interp, "set_fraction"); err != nil {
			log.Fatal(err)
		}
		if _, err := scene.AddRoute(interp, "value_changed", mover, "set_translation"); err != nil {
			log.Fatal(err)
		}
	}
	mustSet(world, "children", movers)
	scene.AddRoot(world)

	script, err := viewer.LoadScript([]byte(`{"steps": [
		{"action": "wait", "frames": 30},
		{"action": "screenshot", "label": "thumbnail"},
		{"action": "wait", "frames": 2}
	]}`))
	if err != nil {
		log.Fatal(err)
	}
	if err := viewer.Run(scene, viewer.Config{
		Title:         "VRML - Route Fan-out Demo",
		Width:         screenW,
		Height:        screenH,
		ShowFPS:       true,
		ScreenshotDir: "docs/demos/fanout",
		Script:        script,
	}); err != nil {
		log.Fatal(err)
	}
}

func mustSet(n *vrml.Node, field string, v vrml.Value) {
	if err := n.SetField(field, v); err != nil {
		log.Fatal(err)
	}
}
