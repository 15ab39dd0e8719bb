package render

import "math"

// HueStep is the hue resolution of cached sprites, in degrees.
const HueStep = 10

// SpriteKey identifies one bubble look.
type SpriteKey struct {
	Radius float64
	Hue    int
	Night  bool
}

// KeyFor quantizes hue to HueStep so bubbles of similar color share a sprite.
func KeyFor(radius, hue float64, night bool) SpriteKey {
	h := math.Mod(math.Mod(hue, 360)+360, 360)
	q := int(math.Round(h/HueStep)) * HueStep % 360
	return SpriteKey{Radius: radius, Hue: q, Night: night}
}

type cacheEntry[V any] struct {
	value V
	used  uint64
}

// SpriteCache keeps up to limit built sprites and evicts the least recently
// used one when full. Sprites fetched during the current frame are never
// evicted, so the cache may grow past limit for the rest of that frame.
type SpriteCache[V any] struct {
	limit   int
	build   func(SpriteKey) V
	release func(V)

	frame   uint64
	entries map[SpriteKey]*cacheEntry[V]
}

func NewSpriteCache[V any](limit int, build func(SpriteKey) V, release func(V)) *SpriteCache[V] {
	return &SpriteCache[V]{
		limit:   limit,
		build:   build,
		release: release,
		entries: map[SpriteKey]*cacheEntry[V]{},
	}
}

// NextFrame starts a new frame.
func (c *SpriteCache[V]) NextFrame() { c.frame++ }

func (c *SpriteCache[V]) Get(k SpriteKey) V {
	if e, ok := c.entries[k]; ok {
		e.used = c.frame
		return e.value
	}
	for len(c.entries) >= c.limit {
		if !c.evict() {
			break
		}
	}
	v := c.build(k)
	c.entries[k] = &cacheEntry[V]{value: v, used: c.frame}
	return v
}

// evict drops the least recently used sprite not used in the current frame
// and reports whether it found one.
func (c *SpriteCache[V]) evict() bool {
	var (
		oldest SpriteKey
		used   uint64
		found  bool
	)
	for k, e := range c.entries {
		if e.used == c.frame {
			continue
		}
		if !found || e.used < used {
			oldest, used, found = k, e.used, true
		}
	}
	if !found {
		return false
	}
	if c.release != nil {
		c.release(c.entries[oldest].value)
	}
	delete(c.entries, oldest)
	return true
}

func (c *SpriteCache[V]) Len() int { return len(c.entries) }

// Clear releases every cached sprite.
func (c *SpriteCache[V]) Clear() {
	for k, e := range c.entries {
		if c.release != nil {
			c.release(e.value)
		}
		delete(c.entries, k)
	}
}
