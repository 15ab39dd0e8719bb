package sound

import (
	"math"
	"math/rand"
	"time"

	"github.com/faiface/beep"
)

// Envelope and voice settings, in seconds unless noted.
const (
	toneAttack  = 0.002
	toneDecay   = 0.15
	toneSustain = 0.05
	toneRelease = 0.2

	membranePitchDecay = 0.02
	membraneOctaves    = 3.0 // start frequency multiplier
	membraneDecay      = 0.4

	pluckTail    = 1.0
	pluckDamping = 0.996

	noiseAttack = 0.001
	noiseDecay  = 0.12

	voiceGain = 0.3
)

// voice streams a finite mono signal to both channels. sample is called with
// increasing positions starting at zero.
type voice struct {
	pos    int
	total  int
	sample func(pos int) float64
}

func (v *voice) Stream(samples [][2]float64) (n int, ok bool) {
	if v.pos >= v.total {
		return 0, false
	}
	for n < len(samples) && v.pos < v.total {
		s := v.sample(v.pos) * voiceGain
		samples[n][0] = s
		samples[n][1] = s
		n++
		v.pos++
	}
	return n, true
}

func (v *voice) Err() error { return nil }

// adsr returns the envelope level at sample i for a note held until holdEnd.
func adsr(i, attack, decay int, sustain float64, holdEnd, release int) float64 {
	level := func(i int) float64 {
		switch {
		case i < attack:
			return float64(i) / float64(attack)
		case i < attack+decay:
			t := float64(i-attack) / float64(decay)
			return 1 - t*(1-sustain)
		default:
			return sustain
		}
	}
	if i < holdEnd {
		return level(i)
	}
	if release <= 0 {
		return 0
	}
	t := float64(i-holdEnd) / float64(release)
	if t >= 1 {
		return 0
	}
	return level(holdEnd) * (1 - t)
}

func seconds(sr beep.SampleRate, s float64) int {
	n := sr.N(time.Duration(s * float64(time.Second)))
	if n < 1 {
		n = 1
	}
	return n
}

// newTone is a sine synth note held for hold and then released.
func newTone(sr beep.SampleRate, freq float64, hold time.Duration) beep.Streamer {
	attack := seconds(sr, toneAttack)
	decay := seconds(sr, toneDecay)
	release := seconds(sr, toneRelease)
	holdEnd := sr.N(hold)
	step := freq / float64(sr)

	phase := 0.0
	return &voice{
		total: holdEnd + release,
		sample: func(i int) float64 {
			s := math.Sin(2 * math.Pi * phase)
			phase += step
			phase -= math.Floor(phase)
			return s * adsr(i, attack, decay, toneSustain, holdEnd, release)
		},
	}
}

// newMembrane is a drum-like sine whose pitch falls quickly from
// membraneOctaves times freq down to freq.
func newMembrane(sr beep.SampleRate, freq float64, hold time.Duration) beep.Streamer {
	total := sr.N(hold) + seconds(sr, membraneDecay)
	rate := float64(sr)

	phase := 0.0
	return &voice{
		total: total,
		sample: func(i int) float64 {
			t := float64(i) / rate
			f := freq * (1 + (membraneOctaves-1)*math.Exp(-t/membranePitchDecay))
			s := math.Sin(2 * math.Pi * phase)
			phase += f / rate
			phase -= math.Floor(phase)
			amp := math.Exp(-5 * float64(i) / float64(total))
			return math.Tanh(s*amp*1.5) / math.Tanh(1.5)
		},
	}
}

// newPluck is a Karplus-Strong plucked string.
func newPluck(sr beep.SampleRate, freq float64, hold time.Duration, seed int64) beep.Streamer {
	rng := rand.New(rand.NewSource(seed))
	period := int(math.Round(float64(sr) / freq))
	if period < 2 {
		period = 2
	}
	line := make([]float64, period)
	for i := range line {
		line[i] = rng.Float64()*2 - 1
	}

	idx := 0
	return &voice{
		total: sr.N(hold) + seconds(sr, pluckTail),
		sample: func(int) float64 {
			out := line[idx]
			next := line[(idx+1)%period]
			line[idx] = pluckDamping * 0.5 * (out + next)
			idx = (idx + 1) % period
			return out
		},
	}
}

// newNoise is a short white-noise burst. Its sustain is zero, so the burst
// length does not depend on the requested note length.
func newNoise(sr beep.SampleRate, seed int64) beep.Streamer {
	rng := rand.New(rand.NewSource(seed))
	attack := seconds(sr, noiseAttack)
	decay := seconds(sr, noiseDecay)
	return &voice{
		total: attack + decay,
		sample: func(i int) float64 {
			return (rng.Float64()*2 - 1) * adsr(i, attack, decay, 0, attack+decay, 0)
		},
	}
}
