// Package render rasterizes bubble sprites and picks the day/night palettes.
package render

import (
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	colorful "github.com/lucasb-eyer/go-colorful"
)

const (
	// GlowBlur is how far the night glow reaches past the bubble edge.
	GlowBlur = 25.0

	nightHueShift = 180.0
)

// hsl builds a color from a CSS-style hsl triple: hue in degrees, saturation
// and lightness in [0, 1].
func hsl(h, s, l float64) colorful.Color {
	return colorful.Hsl(math.Mod(math.Mod(h, 360)+360, 360), s, l)
}

var (
	white       = colorful.Color{R: 1, G: 1, B: 1}
	transparent = colorful.Color{}
)

// stop converts a color and straight alpha into a gradient stop color.
func stop(c colorful.Color, alpha float64) color.NRGBA {
	r, g, b := c.Clamped().RGB255()
	a := math.Round(math.Max(0, math.Min(1, alpha)) * 255)
	return color.NRGBA{R: r, G: g, B: b, A: uint8(a)}
}

// Margin is the distance from the sprite's edge to the bubble center.
func Margin(radius float64, night bool) int {
	m := radius
	if night {
		m += GlowBlur
	}
	return int(math.Ceil(m)) + 2
}

// Sprite rasterizes every filled layer of a bubble with the given radius and
// hue. The bubble center sits at (Margin, Margin) in the returned image.
func Sprite(radius, hue float64, night bool) *image.RGBA {
	m := Margin(radius, night)
	img := image.NewRGBA(image.Rect(0, 0, 2*m, 2*m))
	dc := gg.NewContextForRGBA(img)
	c := float64(m)

	if night {
		neon := hsl(hue+nightHueShift, 1, 0.65)
		fillCircle(dc, c, radius+GlowBlur, glow(c, radius, neon))
		fillCircle(dc, c, radius, neonFill(c, radius, neon))
	}
	fillCircle(dc, c, radius, pastel(c, radius, hue))
	fillCircle(dc, c, radius, highlight(c, radius))
	return img
}

func fillCircle(dc *gg.Context, c, r float64, p gg.Pattern) {
	dc.DrawCircle(c, c, r)
	dc.SetFillStyle(p)
	dc.Fill()
}

// glow stands in for a canvas shadow: the neon color fading out past the edge.
// Gradients are in sprite pixels with the bubble center at (c, c).
func glow(c, r float64, neon colorful.Color) gg.Gradient {
	g := gg.NewRadialGradient(c, c, r*0.6, c, c, r+GlowBlur)
	g.AddColorStop(0, stop(neon, 0.55))
	g.AddColorStop(1, stop(neon, 0))
	return g
}

func neonFill(c, r float64, neon colorful.Color) gg.Gradient {
	g := gg.NewRadialGradient(c, c, r*0.2, c, c, r)
	g.AddColorStop(0, stop(neon, 0.9))
	g.AddColorStop(1, stop(transparent, 0))
	return g
}

// pastel is the soft iridescent body, lit from the upper left.
func pastel(c, r, hue float64) gg.Gradient {
	g := gg.NewRadialGradient(c-r*0.4, c-r*0.4, r*0.1, c, c, r)
	g.AddColorStop(0, stop(hsl(hue, 1, 0.95), 0.95))
	g.AddColorStop(0.4, stop(hsl(hue+40, 0.9, 0.85), 0.7))
	g.AddColorStop(0.8, stop(hsl(hue+80, 0.8, 0.75), 0.4))
	g.AddColorStop(1, stop(white, 0.1))
	return g
}

func highlight(c, r float64) gg.Gradient {
	h := c - r*0.3
	g := gg.NewRadialGradient(h, h, 0, h, h, r*0.5)
	g.AddColorStop(0, stop(white, 0.8))
	g.AddColorStop(1, stop(white, 0))
	return g
}

// OutlineColor is the translucent rim stroked around every bubble.
func OutlineColor() color.NRGBA {
	return color.NRGBA{R: 255, G: 255, B: 255, A: 178}
}

// OutlineWidth is the rim width for a bubble of radius r.
func OutlineWidth(r float64) float64 {
	return math.Max(1, r*0.05)
}

// Background returns the color of one horizontal band of the backdrop.
// ratio is the band's vertical position in [0, 1], pulse the current sound
// level in [0, 1].
func Background(night bool, ratio, pulse float64) color.RGBA {
	var top, bottom colorful.Color
	if night {
		top = hsl(250, 0.45, 0.08)
		bottom = hsl(280, 0.5, 0.16)
	} else {
		top = hsl(200, 0.8, 0.86)
		bottom = hsl(330, 0.7, 0.93)
	}
	c := top.BlendLab(bottom, ratio)
	if pulse > 0 {
		h, s, l := c.Hsl()
		c = colorful.Hsl(h, s, math.Min(1, l+0.08*pulse))
	}
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
