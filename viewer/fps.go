package viewer

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsOverlay displays the current FPS, TPS and draw-command count. The text
// is refreshed every ~0.5 seconds.
type fpsOverlay struct {
	elapsed float64
	text    string
}

func (o *fpsOverlay) update(dt float64, commands int) {
	o.elapsed += dt
	if o.text != "" && o.elapsed < 0.5 {
		return
	}
	o.elapsed = 0
	o.text = fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nShapes: %d", ebiten.ActualFPS(), ebiten.ActualTPS(), commands)
}

func (o *fpsOverlay) draw(screen *ebiten.Image) {
	ebitenutil.DebugPrint(screen, o.text)
}
