package viewer

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/vrml"
)

// pointerSample is the pointer state for one tick in screen coordinates.
type pointerSample struct {
	x, y    float32
	pressed bool
}

// pointerState tracks which TouchSensor captured the press so the sensor
// keeps receiving samples while the button is held outside its geometry.
type pointerState struct {
	captured *vrml.Node
	over     map[*vrml.Node]bool
}

// readPointer returns the next injected sample, or the real mouse state.
func (g *Game) readPointer() pointerSample {
	if len(g.injectQueue) > 0 {
		evt := g.injectQueue[0]
		copy(g.injectQueue, g.injectQueue[1:])
		g.injectQueue = g.injectQueue[:len(g.injectQueue)-1]
		return pointerSample{x: evt.screenX, y: evt.screenY, pressed: evt.pressed}
	}
	x, y := ebiten.CursorPosition()
	return pointerSample{
		x:       float32(x),
		y:       float32(y),
		pressed: ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
	}
}

// processPointer hit-tests the sample against the sensor regions of the
// last draw list and feeds the result to every TouchSensor whose state
// changes: the sensor under the pointer, the one that captured the press
// and any the pointer just left.
func (g *Game) processPointer(p pointerSample) error {
	if g.pointer.over == nil {
		g.pointer.over = make(map[*vrml.Node]bool)
	}
	hit, found := g.r.pick(p.x, p.y)

	targets := make(map[*vrml.Node]sensorRegion)
	if found {
		targets[hit.Sensor] = hit
	}
	for s := range g.pointer.over {
		if _, ok := targets[s]; !ok {
			targets[s] = sensorRegion{Sensor: s}
		}
	}
	if c := g.pointer.captured; c != nil {
		if _, ok := targets[c]; !ok {
			targets[c] = sensorRegion{Sensor: c}
		}
	}

	for sensor, region := range targets {
		over := found && sensor == hit.Sensor
		in := vrml.TouchInput{Over: over, Pressed: p.pressed}
		if over {
			in.Point, in.Normal = g.hitPoint(region)
		}
		if p.pressed && over && g.pointer.captured == nil {
			g.pointer.captured = sensor
		}
		if err := g.scene.Touch(sensor, in, g.now); err != nil {
			return err
		}
		if over {
			g.pointer.over[sensor] = true
		} else {
			delete(g.pointer.over, sensor)
		}
	}
	if !p.pressed {
		g.pointer.captured = nil
	}
	return nil
}

// hitPoint approximates the touched surface point as the point of the
// region's sphere facing the viewer, in sensor coordinates.
func (g *Game) hitPoint(r sensorRegion) (point, normal vrml.Vec3) {
	cam := g.camera()
	dir := cam.Position.Sub(r.Sphere.Center).Normalize()
	world := r.Sphere.Center.Add(dir.Scale(r.Sphere.Radius))
	return r.toLocal.MulPoint(world), r.toLocal.MulDir(dir).Normalize()
}
