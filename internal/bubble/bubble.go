// Package bubble models a single drifting bubble: creation, per-frame motion,
// hit testing and the off-screen cull check.
package bubble

import (
	"math"
	"math/rand"

	"github.com/iburimskiy/bubbles/internal/config"
)

// Bubble is one visible entity. Radius, hue and speeds are fixed at creation;
// only the position and bob phase change afterwards.
type Bubble struct {
	x, y     float64
	radius   float64
	hue      float64
	vy       float64
	bobPhase float64
	bobSpeed float64
	lateral  float64
}

// New creates a bubble centered on (x, y) with its size tier, hue and speeds
// drawn from rng.
func New(x, y float64, cfg config.BubbleConfig, rng *rand.Rand) *Bubble {
	return &Bubble{
		x:        x,
		y:        y,
		radius:   cfg.SizeTiers[rng.Intn(len(cfg.SizeTiers))],
		hue:      float64(rng.Intn(360)),
		vy:       cfg.MinSpeed + rng.Float64()*(cfg.MaxSpeed-cfg.MinSpeed),
		bobPhase: rng.Float64() * 2 * math.Pi,
		bobSpeed: cfg.MinBobSpeed + rng.Float64()*(cfg.MaxBobSpeed-cfg.MinBobSpeed),
		lateral:  cfg.LateralAmplitude,
	}
}

// Update advances the bubble by one frame: upward drift plus a sinusoidal
// sideways wobble.
func (b *Bubble) Update() {
	b.y -= b.vy
	b.bobPhase += b.bobSpeed
	b.x += math.Cos(b.bobPhase) * b.lateral
}

// ContainsPoint reports whether (px, py) lies inside or on the bubble's circle.
func (b *Bubble) ContainsPoint(px, py float64) bool {
	dx := px - b.x
	dy := py - b.y
	return dx*dx+dy*dy <= b.radius*b.radius
}

// Culled reports whether the bubble has drifted entirely above threshold.
func (b *Bubble) Culled(threshold float64) bool {
	return b.y+b.radius < threshold
}

func (b *Bubble) X() float64      { return b.x }
func (b *Bubble) Y() float64      { return b.y }
func (b *Bubble) Radius() float64 { return b.radius }
func (b *Bubble) Hue() float64    { return b.hue }
func (b *Bubble) Speed() float64  { return b.vy }
