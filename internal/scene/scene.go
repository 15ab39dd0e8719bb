// Package scene owns the live bubbles and the day/night flag and implements
// the click-to-pop-else-spawn interaction.
package scene

import (
	"math/rand"

	"github.com/iburimskiy/bubbles/internal/bubble"
	"github.com/iburimskiy/bubbles/internal/config"
	"go.uber.org/zap"
)

// Sounds receives bubble events. Calls must return promptly; failures are the
// implementation's to absorb.
type Sounds interface {
	Spawn(radius float64, night bool)
	Pop(radius float64, night bool)
}

// Scene is the ordered set of live bubbles. Later bubbles are drawn and hit
// tested on top of earlier ones. A Scene is not safe for concurrent use; the
// game loop is its only caller.
type Scene struct {
	cfg     config.BubbleConfig
	sounds  Sounds
	rng     *rand.Rand
	log     *zap.Logger
	bubbles []*bubble.Bubble
	night   bool
}

type nopSounds struct{}

func (nopSounds) Spawn(float64, bool) {}
func (nopSounds) Pop(float64, bool) {}

// New creates an empty day-mode scene. A nil sounds plays nothing and a nil
// logger logs nothing.
func New(cfg config.BubbleConfig, sounds Sounds, rng *rand.Rand, log *zap.Logger) *Scene {
	if sounds == nil {
		sounds = nopSounds{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Scene{
		cfg:    cfg,
		sounds: sounds,
		rng:    rng,
		log:    log,
	}
}

// SpawnAt appends a new bubble centered on (x, y) and plays its spawn sound.
func (s *Scene) SpawnAt(x, y float64) *bubble.Bubble {
	b := bubble.New(x, y, s.cfg, s.rng)
	s.bubbles = append(s.bubbles, b)
	s.log.Debug("bubble spawned",
		zap.Float64("x", x),
		zap.Float64("y", y),
		zap.Float64("radius", b.Radius()),
		zap.Int("live", len(s.bubbles)),
	)
	s.sounds.Spawn(b.Radius(), s.night)
	return b
}

// PopTopmostAt removes the topmost bubble containing (x, y), playing its pop
// sound, and reports whether one was hit. At most one bubble is removed.
func (s *Scene) PopTopmostAt(x, y float64) bool {
	for i := len(s.bubbles) - 1; i >= 0; i-- {
		b := s.bubbles[i]
		if !b.ContainsPoint(x, y) {
			continue
		}
		s.sounds.Pop(b.Radius(), s.night)

		copy(s.bubbles[i:], s.bubbles[i+1:])
		s.bubbles[len(s.bubbles)-1] = nil
		s.bubbles = s.bubbles[:len(s.bubbles)-1]

		s.log.Debug("bubble popped",
			zap.Float64("x", x),
			zap.Float64("y", y),
			zap.Float64("radius", b.Radius()),
			zap.Int("live", len(s.bubbles)),
		)
		return true
	}
	return false
}

// Click handles a pointer click in canvas coordinates: pop the bubble under
// the pointer, or spawn a new one when nothing was hit. It reports whether
// the click popped a bubble.
func (s *Scene) Click(x, y float64) bool {
	if s.PopTopmostAt(x, y) {
		return true
	}
	s.SpawnAt(x, y)
	return false
}

// AdvanceFrame moves every bubble one frame and drops those that have left
// the top of the screen, keeping the survivors in order.
func (s *Scene) AdvanceFrame() {
	alive := 0
	for _, b := range s.bubbles {
		b.Update()
		if b.Culled(s.cfg.CullThreshold) {
			continue
		}
		s.bubbles[alive] = b
		alive++
	}
	if culled := len(s.bubbles) - alive; culled > 0 {
		clear(s.bubbles[alive:])
		s.log.Debug("bubbles culled", zap.Int("count", culled), zap.Int("live", alive))
	}
	s.bubbles = s.bubbles[:alive]
}

// Bubbles returns the live bubbles bottom to top. The slice is only valid
// until the next call that changes the scene.
func (s *Scene) Bubbles() []*bubble.Bubble { return s.bubbles }

func (s *Scene) Len() int { return len(s.bubbles) }

func (s *Scene) Night() bool { return s.night }

func (s *Scene) SetNight(night bool) { s.night = night }

// ToggleNight flips the mode and returns the new value.
func (s *Scene) ToggleNight() bool {
	s.night = !s.night
	s.log.Info("mode changed", zap.Bool("night", s.night))
	return s.night
}

// Clear drops every bubble without sound.
func (s *Scene) Clear() {
	clear(s.bubbles)
	s.bubbles = s.bubbles[:0]
}
