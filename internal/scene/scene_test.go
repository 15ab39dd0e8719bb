package scene

import (
	"math/rand"
	"testing"

	"github.com/iburimskiy/bubbles/internal/bubble"
	"github.com/iburimskiy/bubbles/internal/config"
)

type soundEvent struct {
	pop    bool
	radius float64
	night  bool
}

type recordingSounds struct {
	events []soundEvent
}

func (r *recordingSounds) Spawn(radius float64, night bool) {
	r.events = append(r.events, soundEvent{radius: radius, night: night})
}

func (r *recordingSounds) Pop(radius float64, night bool) {
	r.events = append(r.events, soundEvent{pop: true, radius: radius, night: night})
}

func newTestScene(t *testing.T) (*Scene, *recordingSounds) {
	t.Helper()
	sounds := &recordingSounds{}
	return New(config.Default().Bubble, sounds, rand.New(rand.NewSource(1)), nil), sounds
}

// TestSpawnThenPop verifies a radius 30 bubble can be popped right where it was spawned
func TestSpawnThenPop(t *testing.T) {
	cfg := config.Default().Bubble
	cfg.SizeTiers = []float64{30}
	sounds := &recordingSounds{}
	s := New(cfg, sounds, rand.New(rand.NewSource(1)), nil)

	b := s.SpawnAt(100, 100)
	if b.Radius() != 30 {
		t.Fatalf("expected radius 30, got %v", b.Radius())
	}
	if s.Len() != 1 {
		t.Fatalf("expected 1 bubble, got %d", s.Len())
	}
	if !s.PopTopmostAt(100, 100) {
		t.Fatal("expected pop at the spawn point")
	}
	if s.Len() != 0 {
		t.Errorf("expected empty scene, got %d", s.Len())
	}

	if len(sounds.events) != 2 {
		t.Fatalf("expected spawn and pop sounds, got %+v", sounds.events)
	}
	if sounds.events[0].pop || sounds.events[0].radius != b.Radius() {
		t.Errorf("unexpected spawn sound %+v", sounds.events[0])
	}
	if !sounds.events[1].pop || sounds.events[1].radius != b.Radius() {
		t.Errorf("unexpected pop sound %+v", sounds.events[1])
	}
}

// TestPopTopmostOnly verifies overlapping bubbles pop one per click, newest first
func TestPopTopmostOnly(t *testing.T) {
	s, _ := newTestScene(t)

	first := s.SpawnAt(50, 50)
	second := s.SpawnAt(50, 50)

	if !s.PopTopmostAt(50, 50) {
		t.Fatal("expected a pop")
	}
	if s.Len() != 1 {
		t.Fatalf("expected 1 bubble left, got %d", s.Len())
	}
	if s.Bubbles()[0] != first {
		t.Error("the earlier bubble should survive")
	}
	for _, b := range s.Bubbles() {
		if b == second {
			t.Error("the later bubble should have been popped")
		}
	}
}

// TestPopManyOverlapping verifies N clicks pop N stacked bubbles in reverse order
func TestPopManyOverlapping(t *testing.T) {
	s, _ := newTestScene(t)

	var spawned []*bubble.Bubble
	for i := 0; i < 5; i++ {
		spawned = append(spawned, s.SpawnAt(200, 200))
	}
	for i := len(spawned) - 1; i >= 0; i-- {
		if !s.PopTopmostAt(200, 200) {
			t.Fatalf("click %d missed", len(spawned)-i)
		}
		if s.Len() != i {
			t.Fatalf("after click expected %d bubbles, got %d", i, s.Len())
		}
		for j, b := range s.Bubbles() {
			if b != spawned[j] {
				t.Fatalf("survivor %d out of order", j)
			}
		}
	}
}

// TestPopMiss verifies empty scenes and misses report false without sound
func TestPopMiss(t *testing.T) {
	s, sounds := newTestScene(t)

	if s.PopTopmostAt(10, 10) {
		t.Error("pop on empty scene should miss")
	}

	s.SpawnAt(100, 100)
	if s.PopTopmostAt(500, 500) {
		t.Error("pop far away should miss")
	}
	if s.Len() != 1 {
		t.Errorf("miss removed a bubble, %d left", s.Len())
	}
	for _, e := range sounds.events {
		if e.pop {
			t.Error("a miss must not play a pop sound")
		}
	}
}

// TestClick verifies the pop-else-spawn dispatch
func TestClick(t *testing.T) {
	s, sounds := newTestScene(t)

	if s.Click(300, 300) {
		t.Error("first click should spawn, not pop")
	}
	if s.Len() != 1 {
		t.Fatalf("expected spawn, got %d bubbles", s.Len())
	}
	if !s.Click(300, 300) {
		t.Error("second click should pop")
	}
	if s.Len() != 0 {
		t.Errorf("expected empty scene, got %d", s.Len())
	}
	if len(sounds.events) != 2 || sounds.events[0].pop || !sounds.events[1].pop {
		t.Errorf("unexpected sound sequence %+v", sounds.events)
	}
}

// TestClickOffCanvas verifies out-of-bounds clicks spawn normally and get culled
func TestClickOffCanvas(t *testing.T) {
	s, _ := newTestScene(t)

	s.Click(-500, -500)
	if s.Len() != 1 {
		t.Fatalf("expected off-canvas spawn, got %d", s.Len())
	}
	s.AdvanceFrame()
	if s.Len() != 0 {
		t.Errorf("off-canvas bubble should be culled on the next frame, %d left", s.Len())
	}
}

// TestAdvanceFrameCulls verifies a drifting bubble disappears once past the threshold
func TestAdvanceFrameCulls(t *testing.T) {
	s, _ := newTestScene(t)
	b := s.SpawnAt(100, 100)

	frames := 0
	for s.Len() > 0 {
		if frames > 100000 {
			t.Fatal("bubble never culled")
		}
		if b.Culled(s.cfg.CullThreshold) {
			t.Fatal("culled bubble still live")
		}
		s.AdvanceFrame()
		frames++
	}
	if !b.Culled(s.cfg.CullThreshold) {
		t.Errorf("bubble removed at y=%v before crossing the threshold", b.Y())
	}

	// further frames never bring it back
	for i := 0; i < 10; i++ {
		s.AdvanceFrame()
		if s.Len() != 0 {
			t.Fatal("culled bubble reappeared")
		}
	}
}

// TestAdvanceFrameKeepsOrder verifies survivors keep their relative order
func TestAdvanceFrameKeepsOrder(t *testing.T) {
	s, _ := newTestScene(t)

	low1 := s.SpawnAt(100, 900)
	s.SpawnAt(100, -200) // culled on the first frame
	low2 := s.SpawnAt(200, 900)
	s.SpawnAt(300, -200)
	low3 := s.SpawnAt(300, 900)

	s.AdvanceFrame()

	want := []*bubble.Bubble{low1, low2, low3}
	got := s.Bubbles()
	if len(got) != len(want) {
		t.Fatalf("expected %d survivors, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("survivor %d out of order", i)
		}
	}
}

// TestNightFlagReachesSounds verifies sounds receive the current mode
func TestNightFlagReachesSounds(t *testing.T) {
	s, sounds := newTestScene(t)

	s.SpawnAt(10, 10)
	if !s.ToggleNight() || !s.Night() {
		t.Fatal("expected night after toggle")
	}
	s.SpawnAt(400, 400)
	s.PopTopmostAt(400, 400)
	s.SetNight(false)
	s.PopTopmostAt(10, 10)

	want := []bool{false, true, true, false}
	if len(sounds.events) != len(want) {
		t.Fatalf("expected %d events, got %d", len(want), len(sounds.events))
	}
	for i, w := range want {
		if sounds.events[i].night != w {
			t.Errorf("event %d night = %v, want %v", i, sounds.events[i].night, w)
		}
	}
}

// TestClear verifies teardown empties the scene silently
func TestClear(t *testing.T) {
	s, sounds := newTestScene(t)
	for i := 0; i < 3; i++ {
		s.SpawnAt(float64(i*100), 100)
	}
	before := len(sounds.events)

	s.Clear()
	if s.Len() != 0 {
		t.Errorf("expected empty scene, got %d", s.Len())
	}
	if len(sounds.events) != before {
		t.Error("Clear must not play sounds")
	}
}

// TestNilSounds verifies a scene without a sound sink spawns and pops silently
func TestNilSounds(t *testing.T) {
	s := New(config.Default().Bubble, nil, rand.New(rand.NewSource(1)), nil)

	if popped := s.Click(10, 10); popped {
		t.Fatal("first click should spawn")
	}
	if popped := s.Click(10, 10); !popped {
		t.Fatal("second click should pop")
	}
	if s.Len() != 0 {
		t.Errorf("expected empty scene, got %d", s.Len())
	}
}
