package sound

import (
	"sync/atomic"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/speaker"
	"github.com/iburimskiy/bubbles/internal/config"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const levelWindow = 1024

// Speaker is the Backend that plays synthesized voices through the system
// audio device. Notes sent before Unlock succeeds are dropped.
type Speaker struct {
	cfg config.AudioConfig
	log *zap.Logger
	sr  beep.SampleRate

	// output chain: mixer -> tap -> volume -> ctrl -> speaker
	mixer  *beep.Mixer
	tap    *levelTap
	volume *effects.Volume
	ctrl   *beep.Ctrl

	unlocked atomic.Bool
	muted    atomic.Bool
	seed     atomic.Int64
}

func NewSpeaker(cfg config.AudioConfig, log *zap.Logger) *Speaker {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Speaker{
		cfg:   cfg,
		log:   log,
		sr:    beep.SampleRate(cfg.SampleRate),
		mixer: &beep.Mixer{},
	}
	s.tap = newLevelTap(s.mixer, cfg.TapSize)
	s.volume = &effects.Volume{Streamer: s.tap, Base: 2, Volume: cfg.Volume}
	s.ctrl = &beep.Ctrl{Streamer: s.volume}
	s.seed.Store(time.Now().UnixNano())
	return s
}

// Unlock opens the audio device and starts the output chain. It is a no-op
// when audio is disabled or already unlocked. On error the speaker stays
// locked and keeps dropping notes.
func (s *Speaker) Unlock() error {
	if !s.cfg.Enabled {
		s.log.Info("audio disabled by config")
		return nil
	}
	if s.unlocked.Load() {
		return nil
	}

	if err := speaker.Init(s.sr, s.sr.N(s.cfg.BufferSize)); err != nil {
		return errors.Wrap(err, "init speaker")
	}
	speaker.Play(s.ctrl)
	s.unlocked.Store(true)

	s.log.Info("audio unlocked",
		zap.Int("sample_rate", s.cfg.SampleRate),
		zap.Duration("buffer", s.cfg.BufferSize),
	)
	return nil
}

func (s *Speaker) Unlocked() bool { return s.unlocked.Load() }

func (s *Speaker) PlayTone(freq float64, length Length) {
	if !s.unlocked.Load() || freq <= 0 {
		return
	}
	s.add(newTone(s.sr, freq, length.Duration(s.cfg.Tempo)))
}

func (s *Speaker) PlayPercussive(voice Voice, freq float64, length Length) {
	if !s.unlocked.Load() || (voice.Pitched() && freq <= 0) {
		return
	}
	hold := length.Duration(s.cfg.Tempo)

	var st beep.Streamer
	switch voice {
	case VoiceMembrane:
		st = newMembrane(s.sr, freq, hold)
	case VoicePluck:
		st = newPluck(s.sr, freq, hold, s.seed.Add(1))
	case VoiceNoise:
		st = newNoise(s.sr, s.seed.Add(1))
	}
	if st == nil {
		return
	}
	s.add(st)
}

func (s *Speaker) add(st beep.Streamer) {
	speaker.Lock()
	s.mixer.Add(st)
	speaker.Unlock()
}

// ToggleMute pauses or resumes the whole output and returns the new muted state.
func (s *Speaker) ToggleMute() bool {
	speaker.Lock()
	s.ctrl.Paused = !s.ctrl.Paused
	muted := s.ctrl.Paused
	speaker.Unlock()

	s.muted.Store(muted)
	return muted
}

func (s *Speaker) Muted() bool { return s.muted.Load() }

// Level is the loudness of the most recent output in [0, 1].
func (s *Speaker) Level() float64 {
	if !s.unlocked.Load() || s.muted.Load() {
		return 0
	}
	return s.tap.level(levelWindow)
}

// Close drops every playing voice and stops accepting new ones.
func (s *Speaker) Close() {
	if !s.unlocked.CompareAndSwap(true, false) {
		return
	}
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
	// beep has no way to release the device, clearing avoids a stuck tail
}
