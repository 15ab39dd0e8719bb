package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/iburimskiy/bubbles/internal/config"
	"github.com/iburimskiy/bubbles/internal/render"
)

const backgroundBand = 4

func (g *Game) Draw(screen *ebiten.Image) {
	night := g.scene.Night()
	g.sprites.nextFrame()

	g.drawBackground(screen, night)

	// Bubbles bottom to top, matching hit-test order
	for _, b := range g.scene.Bubbles() {
		g.sprites.draw(screen, b, night)
	}

	g.drawButton(screen, night)
	ebitenutil.DebugPrintAt(screen, g.status(), 12, 8)
}

func (g *Game) drawBackground(screen *ebiten.Image, night bool) {
	pulse := g.audio.Level()
	for y := 0; y < g.height; y += backgroundBand {
		ratio := float64(y) / float64(g.height)
		c := render.Background(night, ratio, pulse)
		vector.DrawFilledRect(screen, 0, float32(y), float32(g.width), backgroundBand, c, false)
	}
}

func (g *Game) drawButton(screen *ebiten.Image, night bool) {
	// Button background
	var bgColor color.Color
	switch {
	case g.buttonPressed:
		bgColor = color.RGBA{R: 60, G: 80, B: 120, A: 255}
	case g.buttonHovered:
		bgColor = color.RGBA{R: 80, G: 100, B: 140, A: 255}
	case night:
		bgColor = color.RGBA{R: 40, G: 36, B: 90, A: 230}
	default:
		bgColor = color.RGBA{R: 250, G: 200, B: 90, A: 230}
	}
	vector.DrawFilledRect(screen, config.ButtonX, config.ButtonY, config.ButtonWidth, config.ButtonHeight, bgColor, false)

	borderColor := color.RGBA{R: 255, G: 255, B: 255, A: 180}
	vector.StrokeRect(screen, config.ButtonX, config.ButtonY, config.ButtonWidth, config.ButtonHeight, 2, borderColor, false)

	text := "SUN"
	if night {
		text = "MOON"
	}
	textWidth := len(text) * 6 // debug font glyph width
	textX := config.ButtonX + (config.ButtonWidth-textWidth)/2
	textY := config.ButtonY + (config.ButtonHeight-16)/2
	ebitenutil.DebugPrintAt(screen, text, textX, textY)
}

func (g *Game) status() string {
	sound := "on"
	switch {
	case !g.audio.Unlocked():
		sound = "off (M to enable)"
	case g.audio.Muted():
		sound = "muted (M)"
	}
	return fmt.Sprintf("bubbles: %d | sound: %s | N: day/night  Esc/Q: quit", g.scene.Len(), sound)
}
