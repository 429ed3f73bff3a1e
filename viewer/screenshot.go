package viewer

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Screenshot queues a labeled screenshot to be captured at the end of the
// next Draw. The PNG is written to Config.ScreenshotDir with a timestamped
// filename.
func (g *Game) Screenshot(label string) {
	g.screenshotQueue = append(g.screenshotQueue, label)
}

// flushScreenshots captures the rendered frame once and writes it for every
// queued label.
func (g *Game) flushScreenshots(screen *ebiten.Image) {
	if len(g.screenshotQueue) == 0 {
		return
	}
	defer func() { g.screenshotQueue = g.screenshotQueue[:0] }()

	log := g.scene.Logger()
	if err := os.MkdirAll(g.cfg.ScreenshotDir, 0o755); err != nil {
		log.Error("screenshot", "dir", g.cfg.ScreenshotDir, "error", err)
		return
	}

	b := screen.Bounds()
	pixels := make([]byte, 4*b.Dx()*b.Dy())
	screen.ReadPixels(pixels)
	img := unpremultiply(pixels, b.Dx(), b.Dy())

	stamp := time.Now().Format("20060102_150405")
	for _, label := range g.screenshotQueue {
		path := filepath.Join(g.cfg.ScreenshotDir, stamp+"_"+sanitizeLabel(label)+".png")
		if err := writePNG(path, img); err != nil {
			log.Error("screenshot", "path", path, "error", err)
		}
	}
}

// unpremultiply converts premultiplied RGBA pixels to straight-alpha NRGBA.
func unpremultiply(pixels []byte, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i+3 < len(pixels); i += 4 {
		r, g, b, a := pixels[i], pixels[i+1], pixels[i+2], pixels[i+3]
		if a > 0 && a < 255 {
			r = uint8(min(int(r)*255/int(a), 255))
			g = uint8(min(int(g)*255/int(a), 255))
			b = uint8(min(int(b)*255/int(a), 255))
		}
		copy(img.Pix[i:i+4], []byte{r, g, b, a})
	}
	return img
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores. Empty labels become "unlabeled".
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			return r
		}
		return '_'
	}, label)
}
