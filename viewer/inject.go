package viewer

// syntheticPointerEvent represents a single injected pointer sample in
// screen coordinates. Injected samples replace the real mouse for the tick
// that consumes them.
type syntheticPointerEvent struct {
	screenX, screenY float32
	pressed          bool
}

// InjectPress queues a pointer press at the given screen coordinates. The
// event is consumed on the next Update.
func (g *Game) InjectPress(x, y float32) {
	g.injectQueue = append(g.injectQueue, syntheticPointerEvent{screenX: x, screenY: y, pressed: true})
}

// InjectMove queues a pointer move with the button held down. Use this
// between InjectPress and InjectRelease to simulate a drag.
func (g *Game) InjectMove(x, y float32) {
	g.injectQueue = append(g.injectQueue, syntheticPointerEvent{screenX: x, screenY: y, pressed: true})
}

// InjectRelease queues a pointer release at the given screen coordinates.
func (g *Game) InjectRelease(x, y float32) {
	g.injectQueue = append(g.injectQueue, syntheticPointerEvent{screenX: x, screenY: y})
}

// InjectClick queues a press followed by a release at the same screen
// coordinates. Consumes two ticks.
func (g *Game) InjectClick(x, y float32) {
	g.InjectPress(x, y)
	g.InjectRelease(x, y)
}

// InjectDrag queues a press at (fromX, fromY), linearly interpolated moves
// over frames-2 intermediate ticks and a release at (toX, toY). Minimum
// frames is 2.
func (g *Game) InjectDrag(fromX, fromY, toX, toY float32, frames int) {
	if frames < 2 {
		frames = 2
	}
	g.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float32(i) / float32(steps+1)
		g.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	g.InjectRelease(toX, toY)
}
