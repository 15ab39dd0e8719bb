package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/iburimskiy/bubbles/internal/bubble"
	"github.com/iburimskiy/bubbles/internal/render"
)

// maxSprites bounds the GPU images kept between frames. With the default
// tiers every look (5 tiers x 36 hues x 2 modes) fits.
const maxSprites = 512

// sprites holds the rasterized fill layers of each bubble look. The rim is
// stroked live with the vector package.
type sprites struct {
	cache *render.SpriteCache[*ebiten.Image]
}

func newSprites() *sprites {
	build := func(k render.SpriteKey) *ebiten.Image {
		return ebiten.NewImageFromImage(render.Sprite(k.Radius, float64(k.Hue), k.Night))
	}
	release := func(img *ebiten.Image) { img.Deallocate() }
	return &sprites{cache: render.NewSpriteCache(maxSprites, build, release)}
}

func (s *sprites) nextFrame() { s.cache.NextFrame() }

// draw renders one bubble. It reads the bubble and never changes it.
func (s *sprites) draw(dst *ebiten.Image, b *bubble.Bubble, night bool) {
	r := b.Radius()
	img := s.cache.Get(render.KeyFor(r, b.Hue(), night))
	m := float64(render.Margin(r, night))

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(b.X()-m, b.Y()-m)
	dst.DrawImage(img, op)

	vector.StrokeCircle(dst, float32(b.X()), float32(b.Y()), float32(r),
		float32(render.OutlineWidth(r)), render.OutlineColor(), true)
}
