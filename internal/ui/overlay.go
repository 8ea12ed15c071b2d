//go:build ebiten

package ui

import (
	"image/color"
	"math"

	"mad-sand/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

type brushProvider interface {
	BrushCursor() (x, y, radius int, ok bool)
}

type statusProvider interface {
	StatusLines() []string
}

type motionProvider interface {
	MotionMask() []float32
}

// Overlay draws the brush cursor, the status text and an optional motion
// heat map on top of the simulation.
type Overlay struct {
	sim        core.Sim
	scale      int
	showStatus bool
	showMotion bool

	maskImg *ebiten.Image
	maskBuf []byte
	pixel   *ebiten.Image
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(sim core.Sim, scale int) *Overlay {
	if scale <= 0 {
		scale = 1
	}
	o := &Overlay{sim: sim, scale: scale, showStatus: true}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update toggles overlay layers: H for the status text, M for motion.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		o.showStatus = !o.showStatus
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		o.showMotion = !o.showMotion
	}
}

// Draw renders the overlay onto the provided screen.
func (o *Overlay) Draw(screen *ebiten.Image, fps float64) {
	if o.showMotion {
		if provider, ok := o.sim.(motionProvider); ok {
			o.drawMask(screen, provider.MotionMask(), color.RGBA{R: 255, G: 120, B: 40})
		}
	}
	if provider, ok := o.sim.(brushProvider); ok {
		if x, y, r, inside := provider.BrushCursor(); inside {
			o.drawBrush(screen, x, y, r)
		}
	}
	if o.showStatus {
		lines := []string{"FPS: " + formatFPS(fps)}
		if provider, ok := o.sim.(statusProvider); ok {
			lines = append(lines, provider.StatusLines()...)
		}
		o.drawStatus(screen, lines)
	}
}

func (o *Overlay) drawBrush(screen *ebiten.Image, x, y, radius int) {
	cx, cy, r := brushCircle(x, y, radius, o.scale)
	vector.DrawFilledCircle(screen, cx, cy, r, color.RGBA{R: 255, G: 255, B: 255, A: 50}, true)
	vector.StrokeCircle(screen, cx, cy, r, 1, color.RGBA{R: 255, G: 255, B: 255, A: 120}, true)
}

func (o *Overlay) drawStatus(screen *ebiten.Image, lines []string) {
	const (
		margin  = 8
		spacing = 16
	)
	face := basicfont.Face7x13
	width := 0
	for _, line := range lines {
		width = max(width, text.BoundString(face, line).Dx())
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(width+2*margin), float64(len(lines)*spacing+margin))
	op.GeoM.Translate(margin/2, margin/2)
	op.ColorScale.ScaleWithColor(color.RGBA{A: 140})
	screen.DrawImage(o.pixel, op)

	for i, line := range lines {
		text.Draw(screen, line, face, margin, margin+spacing*(i+1)-4, color.White)
	}
}

func (o *Overlay) drawMask(screen *ebiten.Image, mask []float32, tint color.RGBA) {
	size := o.sim.Size()
	total := size.W * size.H
	if total == 0 || len(mask) != total {
		return
	}
	if o.maskImg == nil || o.maskImg.Bounds().Dx() != size.W || o.maskImg.Bounds().Dy() != size.H {
		o.maskImg = ebiten.NewImage(size.W, size.H)
		o.maskBuf = make([]byte, 4*total)
	}

	const (
		maxAlpha      = 160.0
		glowBase      = 0.35
		glowRange     = 0.65
		intensityBias = 0.75
	)
	for i, v := range mask {
		base := i * 4
		intensity := clamp01(float64(v))
		if intensity == 0 {
			o.maskBuf[base+0] = 0
			o.maskBuf[base+1] = 0
			o.maskBuf[base+2] = 0
			o.maskBuf[base+3] = 0
			continue
		}
		glow := glowBase + glowRange*math.Sqrt(intensity)
		o.maskBuf[base+0] = scaleColorComponent(tint.R, glow)
		o.maskBuf[base+1] = scaleColorComponent(tint.G, glow)
		o.maskBuf[base+2] = scaleColorComponent(tint.B, glow)
		o.maskBuf[base+3] = uint8(math.Round(maxAlpha * math.Pow(intensity, intensityBias)))
	}
	o.maskImg.WritePixels(o.maskBuf)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(o.scale), float64(o.scale))
	screen.DrawImage(o.maskImg, op)
}
