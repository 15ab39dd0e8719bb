package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/iburimskiy/bubbles/internal/config"
	"github.com/iburimskiy/bubbles/internal/scene"
	"go.uber.org/zap"
)

// Audio is the part of the sound backend the game loop controls directly.
type Audio interface {
	Unlock() error
	Unlocked() bool
	ToggleMute() bool
	Muted() bool
	Level() float64
}

// Game drives the scene from ebiten's loop: input and AdvanceFrame in Update,
// the bubbles in Draw.
type Game struct {
	scene   *scene.Scene
	audio   Audio
	log     *zap.Logger
	sprites *sprites

	width, height int

	// input edge detection
	prevKey  map[ebiten.Key]bool
	touchIDs []ebiten.TouchID

	// mode button state
	buttonHovered bool
	buttonPressed bool
}

func New(sc *scene.Scene, audio Audio, log *zap.Logger) *Game {
	if log == nil {
		log = zap.NewNop()
	}
	return &Game{
		scene:   sc,
		audio:   audio,
		log:     log,
		sprites: newSprites(),
		width:   config.WindowWidth,
		height:  config.WindowHeight,
		prevKey: map[ebiten.Key]bool{},
	}
}

func (g *Game) Update() error {

	justPressed := func(k ebiten.Key) bool {
		pressed := ebiten.IsKeyPressed(k)
		jp := pressed && !g.prevKey[k]
		g.prevKey[k] = pressed
		return jp
	}

	// Mode button and canvas clicks
	mouseX, mouseY := ebiten.CursorPosition()
	g.buttonHovered = inButton(mouseX, mouseY)

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if g.buttonHovered {
			g.buttonPressed = true
		} else {
			g.scene.Click(float64(mouseX), float64(mouseY))
		}
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		if g.buttonPressed && g.buttonHovered {
			g.scene.ToggleNight()
		}
		g.buttonPressed = false
	}

	// Taps behave like clicks
	g.touchIDs = inpututil.AppendJustPressedTouchIDs(g.touchIDs[:0])
	for _, id := range g.touchIDs {
		x, y := ebiten.TouchPosition(id)
		if inButton(x, y) {
			g.scene.ToggleNight()
			continue
		}
		g.scene.Click(float64(x), float64(y))
	}

	if justPressed(ebiten.KeyN) {
		g.scene.ToggleNight()
	}
	if justPressed(ebiten.KeyM) {
		g.toggleSound()
	}
	if justPressed(ebiten.KeyEscape) || justPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	g.scene.AdvanceFrame()
	return nil
}

// toggleSound unlocks audio the first time and mutes or unmutes afterwards.
func (g *Game) toggleSound() {
	if !g.audio.Unlocked() {
		if err := g.audio.Unlock(); err != nil {
			g.log.Warn("audio unavailable", zap.Error(err))
		}
		return
	}
	muted := g.audio.ToggleMute()
	g.log.Info("sound toggled", zap.Bool("muted", muted))
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	// Bubbles keep their positions when the window is resized.
	g.width, g.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

func inButton(x, y int) bool {
	return x >= config.ButtonX && x <= config.ButtonX+config.ButtonWidth &&
		y >= config.ButtonY && y <= config.ButtonY+config.ButtonHeight
}
