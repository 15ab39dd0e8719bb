package sound

import (
	"math/rand"
	"time"

	"go.uber.org/zap"
)

// Backend plays synthesized notes. Implementations must not block and must
// silently drop notes they cannot play.
type Backend interface {
	PlayTone(freq float64, length Length)
	PlayPercussive(voice Voice, freq float64, length Length)
}

// Player turns bubble events into backend calls.
type Player struct {
	backend  Backend
	rng      *rand.Rand
	log      *zap.Logger
	followUp time.Duration

	// After schedules f to run once d has elapsed. Defaults to time.AfterFunc.
	After func(d time.Duration, f func())
}

func NewPlayer(backend Backend, followUp time.Duration, rng *rand.Rand, log *zap.Logger) *Player {
	if log == nil {
		log = zap.NewNop()
	}
	return &Player{
		backend:  backend,
		rng:      rng,
		log:      log,
		followUp: followUp,
		After: func(d time.Duration, f func()) {
			time.AfterFunc(d, f)
		},
	}
}

// Spawn plays the spawn sound for a bubble of the given radius. The follow-up
// note is fire-and-forget and holds no reference to the bubble.
func (p *Player) Spawn(radius float64, night bool) {
	s := SpawnParams(radius, night)
	p.log.Debug("spawn sound",
		zap.Float64("radius", radius),
		zap.Float64("freq", s.Freq),
		zap.Stringer("length", s.Length),
		zap.Bool("night", night),
	)
	p.backend.PlayTone(s.Freq, s.Length)

	if s.HasFollowUp {
		next := s.FollowUp
		p.After(p.followUp, func() {
			p.backend.PlayTone(next.Freq, next.Length)
		})
	}
}

// Pop plays the pop sound for a bubble of the given radius.
func (p *Player) Pop(radius float64, night bool) {
	s := PopParams(radius, night, p.rng)
	p.log.Debug("pop sound",
		zap.Float64("radius", radius),
		zap.Stringer("voice", s.Voice),
		zap.Float64("freq", s.Freq),
		zap.Stringer("length", s.Length),
		zap.Bool("night", night),
	)
	p.backend.PlayPercussive(s.Voice, s.Freq, s.Length)
}
