package sound

import (
	"math"
	"math/rand"
	"strconv"
	"time"
)

// Length is a note value expressed as a fraction of a whole note,
// e.g. Length(8) is an eighth note ("8n").
type Length int

const (
	Eighth       Length = 8
	Sixteenth    Length = 16
	ThirtySecond Length = 32
)

func (l Length) String() string { return strconv.Itoa(int(l)) + "n" }

// Duration converts the note value to wall time at the given tempo in BPM.
func (l Length) Duration(bpm float64) time.Duration {
	if l <= 0 || bpm <= 0 {
		return 0
	}
	whole := 4 * 60 / bpm
	return time.Duration(whole / float64(l) * float64(time.Second))
}

// Voice selects one of the percussive pop instruments.
type Voice int

const (
	VoiceMembrane Voice = iota
	VoicePluck
	VoiceNoise

	voiceCount
)

func (v Voice) String() string {
	switch v {
	case VoiceMembrane:
		return "membrane"
	case VoicePluck:
		return "pluck"
	case VoiceNoise:
		return "noise"
	default:
		return "voice(" + strconv.Itoa(int(v)) + ")"
	}
}

// Pitched reports whether the voice follows the requested frequency.
func (v Voice) Pitched() bool { return v != VoiceNoise }

// Tone is a single pitched note.
type Tone struct {
	Freq   float64
	Length Length
}

// SpawnSound describes what to play when a bubble appears. FollowUp is only
// meaningful when HasFollowUp is set.
type SpawnSound struct {
	Tone
	HasFollowUp bool
	FollowUp    Tone
}

// PopSound describes what to play when a bubble is popped. Freq is zero for
// unpitched voices.
type PopSound struct {
	Voice  Voice
	Freq   float64
	Length Length
}

const (
	spawnRadiusMin  = 12.0
	spawnRadiusSpan = 42.0

	daySpawnMinFreq = 300.0
	daySpawnMaxFreq = 900.0
	followUpRatio   = 1.2

	nightSpawnMinNote = 48.0
	nightSpawnMaxNote = 72.0

	popRadiusMin  = 18.0
	popRadiusSpan = 40.0
	popMinNote    = 60.0 // C4
	popMaxNote    = 84.0 // C6
	nightPopRatio = 0.7
)

// SpawnParams maps a bubble radius to its spawn sound. Smaller bubbles sound
// higher. Day mode plays a bright sine note followed by a short shimmer, night
// mode a longer note two octaves lower.
func SpawnParams(radius float64, night bool) SpawnSound {
	n := clamp01((radius - spawnRadiusMin) / spawnRadiusSpan)

	if night {
		note := nightSpawnMaxNote - n*(nightSpawnMaxNote-nightSpawnMinNote)
		return SpawnSound{Tone: Tone{Freq: MidiToFreq(note), Length: Eighth}}
	}

	freq := daySpawnMaxFreq - n*(daySpawnMaxFreq-daySpawnMinFreq)
	return SpawnSound{
		Tone:        Tone{Freq: freq, Length: Sixteenth},
		HasFollowUp: true,
		FollowUp:    Tone{Freq: freq * followUpRatio, Length: ThirtySecond},
	}
}

// PopParams picks a random percussive voice and maps the radius onto
// C4..C6, lowered in night mode.
func PopParams(radius float64, night bool, rng *rand.Rand) PopSound {
	voice := Voice(rng.Intn(int(voiceCount)))
	if !voice.Pitched() {
		return PopSound{Voice: voice, Length: Sixteenth}
	}

	n := clamp01((radius - popRadiusMin) / popRadiusSpan)
	freq := MidiToFreq(popMaxNote - n*(popMaxNote-popMinNote))
	if night {
		return PopSound{Voice: voice, Freq: freq * nightPopRatio, Length: Eighth}
	}
	return PopSound{Voice: voice, Freq: freq, Length: Sixteenth}
}

// MidiToFreq converts a (possibly fractional) MIDI note number to Hz with
// A4 = 440Hz.
func MidiToFreq(note float64) float64 {
	return 440 * math.Pow(2, (note-69)/12)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
