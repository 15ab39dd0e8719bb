package sound

import (
	"math/rand"
	"testing"
	"time"
)

type playedNote struct {
	percussive bool
	voice      Voice
	freq       float64
	length     Length
}

type fakeBackend struct {
	notes []playedNote
}

func (f *fakeBackend) PlayTone(freq float64, length Length) {
	f.notes = append(f.notes, playedNote{freq: freq, length: length})
}

func (f *fakeBackend) PlayPercussive(voice Voice, freq float64, length Length) {
	f.notes = append(f.notes, playedNote{percussive: true, voice: voice, freq: freq, length: length})
}

type scheduled struct {
	delay time.Duration
	fn    func()
}

func newTestPlayer() (*Player, *fakeBackend, *[]scheduled) {
	backend := &fakeBackend{}
	p := NewPlayer(backend, 60*time.Millisecond, rand.New(rand.NewSource(7)), nil)
	var queue []scheduled
	p.After = func(d time.Duration, f func()) {
		queue = append(queue, scheduled{d, f})
	}
	return p, backend, &queue
}

// TestPlayerSpawnDay verifies the main note plays at once and the shimmer is deferred
func TestPlayerSpawnDay(t *testing.T) {
	p, backend, queue := newTestPlayer()

	p.Spawn(33, false)

	if len(backend.notes) != 1 {
		t.Fatalf("expected 1 immediate note, got %d", len(backend.notes))
	}
	if got := backend.notes[0]; got.percussive || !almostEqual(got.freq, 600) || got.length != Sixteenth {
		t.Errorf("unexpected spawn note %+v", got)
	}
	if len(*queue) != 1 {
		t.Fatalf("expected 1 scheduled follow-up, got %d", len(*queue))
	}
	if (*queue)[0].delay != 60*time.Millisecond {
		t.Errorf("follow-up delay = %v, want 60ms", (*queue)[0].delay)
	}

	(*queue)[0].fn()
	if len(backend.notes) != 2 {
		t.Fatalf("expected follow-up note after timer, got %d notes", len(backend.notes))
	}
	if got := backend.notes[1]; !almostEqual(got.freq, 720) || got.length != ThirtySecond {
		t.Errorf("unexpected follow-up %+v", got)
	}
}

// TestPlayerSpawnNight verifies night spawns schedule nothing
func TestPlayerSpawnNight(t *testing.T) {
	p, backend, queue := newTestPlayer()

	p.Spawn(20, true)

	if len(backend.notes) != 1 || backend.notes[0].length != Eighth {
		t.Fatalf("unexpected notes %+v", backend.notes)
	}
	if len(*queue) != 0 {
		t.Errorf("expected no follow-up at night, got %d", len(*queue))
	}
}

// TestPlayerPop verifies pops go to the percussive path
func TestPlayerPop(t *testing.T) {
	p, backend, queue := newTestPlayer()

	for i := 0; i < 10; i++ {
		p.Pop(40, i%2 == 0)
	}
	if len(backend.notes) != 10 {
		t.Fatalf("expected 10 pops, got %d", len(backend.notes))
	}
	for _, n := range backend.notes {
		if !n.percussive {
			t.Errorf("pop played as tone: %+v", n)
		}
	}
	if len(*queue) != 0 {
		t.Error("pops must not schedule follow-ups")
	}
}
