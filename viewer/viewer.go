// Package viewer renders a vrml scene with Ebitengine. It is the renderer
// boundary of the runtime: it reads field values and bounding volumes,
// feeds pointer and viewer position into the scene's sensors and clears the
// modified flags of the nodes it consumes.
//
// The drawing is deliberately schematic: each visible Shape is stroked as
// its projected bounding sphere in its Material's diffuse colour, which is
// enough to watch routes, interpolators and culling at work.
package viewer

import (
	"errors"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/phanxgames/vrml"
)

// Config holds window and loop settings for Run.
type Config struct {
	Title  string
	Width  int
	Height int
	// ShowFPS draws an FPS/TPS and command-count overlay.
	ShowFPS bool
	// ClearColor is used when no Background is bound. Defaults to black.
	ClearColor color.Color
	// ScreenshotDir receives PNGs requested with Screenshot. Defaults to
	// "screenshots".
	ScreenshotDir string
	// Font draws Text geometry. Load one with LoadFont. Defaults to a
	// built-in bitmap face.
	Font *text.GoTextFaceSource
	// Script, when set, drives the viewer with injected input and
	// screenshots. The window closes once the script is done.
	Script *ScriptRunner
}

// Game adapts a Scene to ebiten.Game.
type Game struct {
	scene *vrml.Scene
	cfg   Config

	now float64

	r        renderer
	lastView vrml.Mat4
	built    bool

	pointer     pointerState
	injectQueue []syntheticPointerEvent

	screenshotQueue []string
	fps             fpsOverlay
	face            text.Face
}

// New creates a Game for scene. The scene is initialized at its current
// time if it has not been already.
func New(scene *vrml.Scene, cfg Config) *Game {
	if cfg.Width <= 0 {
		cfg.Width = 640
	}
	if cfg.Height <= 0 {
		cfg.Height = 480
	}
	if cfg.ClearColor == nil {
		cfg.ClearColor = color.Black
	}
	if cfg.ScreenshotDir == "" {
		cfg.ScreenshotDir = "screenshots"
	}
	g := &Game{scene: scene, cfg: cfg, now: scene.Now()}
	if !scene.Initialized() {
		scene.Initialize(g.now)
	}
	return g
}

// Run opens a window and drives scene until the window is closed or the
// script finishes.
func Run(scene *vrml.Scene, cfg Config) error {
	g := New(scene, cfg)
	ebiten.SetWindowTitle(g.cfg.Title)
	ebiten.SetWindowSize(g.cfg.Width, g.cfg.Height)
	err := ebiten.RunGame(g)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

// Scene returns the scene the game drives.
func (g *Game) Scene() *vrml.Scene { return g.scene }

// Commands returns the current draw list, far to near. The returned slice
// MUST NOT be mutated.
func (g *Game) Commands() []DrawCommand { return g.r.commands }

// Update advances the scene by one tick.
func (g *Game) Update() error {
	dt := 1 / float64(ebiten.TPS())
	if g.cfg.Script != nil {
		if g.cfg.Script.Done() {
			return ebiten.Termination
		}
		g.cfg.Script.step(g)
	}
	return g.advance(dt, g.readPointer())
}

// advance steps the scene to now+dt, applies one pointer sample and
// rebuilds the draw list if anything changed.
func (g *Game) advance(dt float64, p pointerSample) error {
	g.now += dt
	if err := g.scene.Step(g.now); err != nil {
		return err
	}

	cam := g.camera()
	if err := g.scene.UpdateProximity(cam.Position, cam.Orientation, g.now); err != nil {
		return err
	}
	if err := g.processPointer(p); err != nil {
		return err
	}

	// Viewpoint changes show up as a new view matrix.
	cam = g.camera()
	if g.scene.Propagate() || !g.built || cam.View != g.lastView {
		g.r.build(g.scene.Roots(), cam)
		g.lastView = cam.View
		g.built = true
	}
	g.fps.update(dt, len(g.r.commands))
	return nil
}

func (g *Game) camera() *Camera {
	return CameraFor(g.scene.Bound("Viewpoint"), Rect{Width: float32(g.cfg.Width), Height: float32(g.cfg.Height)})
}

// Draw strokes each command's projected sphere.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.background())
	for i := range g.r.commands {
		cmd := &g.r.commands[i]
		vector.StrokeCircle(screen, cmd.Circle.X, cmd.Circle.Y, cmd.Circle.Radius, 1, toRGBA(cmd.Color), true)
	}
	g.drawLabels(screen)
	if g.cfg.ShowFPS {
		g.fps.draw(screen)
	}
	g.flushScreenshots(screen)
}

// Layout returns the configured logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}

// background returns the first sky colour of the bound Background.
func (g *Game) background() color.Color {
	bg := g.scene.Bound("Background")
	if bg == nil {
		return g.cfg.ClearColor
	}
	v, err := bg.GetField("skyColor")
	if err != nil {
		return g.cfg.ClearColor
	}
	sky := v.(vrml.MFColor)
	if len(sky) == 0 {
		return g.cfg.ClearColor
	}
	return toRGBA(sky[0])
}

func toRGBA(c vrml.Color) color.RGBA {
	return color.RGBA{unit8(c.R), unit8(c.G), unit8(c.B), 255}
}

func unit8(v float32) uint8 {
	return uint8(min(max(v, 0), 1)*255 + 0.5)
}
