package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/iburimskiy/bubbles/internal/config"
	"github.com/iburimskiy/bubbles/internal/game"
	"github.com/iburimskiy/bubbles/internal/scene"
	"github.com/iburimskiy/bubbles/internal/sound"
	"github.com/ncruces/zenity"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	cfgPath := flag.String("config", "", "path to a TOML or YAML config file")
	flag.Parse()

	if err := run(*cfgPath); err != nil {
		fmt.Fprintln(os.Stderr, "bubbles:", err)
		_ = zenity.Error(err.Error(), zenity.Title("Bubbles"))
		os.Exit(1)
	}
}

func run(cfgPath string) error {
	cfg, err := config.Resolve(cfgPath)
	if err != nil {
		return errors.Wrap(err, "load config")
	}

	log, err := newLogger(cfg.Logging)
	if err != nil {
		return errors.Wrap(err, "init logger")
	}
	defer log.Sync()

	speaker := sound.NewSpeaker(cfg.Audio, log.Named("sound"))
	defer speaker.Close()
	unlockAudio(cfg.Audio, speaker, log)

	seed := time.Now().UnixNano()
	player := sound.NewPlayer(speaker, cfg.Audio.FollowUpDelay, rand.New(rand.NewSource(seed+1)), log.Named("sound"))

	sc := scene.New(cfg.Bubble, player, rand.New(rand.NewSource(seed)), log.Named("scene"))
	sc.SetNight(cfg.Night())
	defer sc.Clear()

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	if cfg.Window.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}

	log.Info("starting",
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
		zap.Bool("night", sc.Night()),
		zap.Bool("sound", speaker.Unlocked()),
	)

	g := game.New(sc, speaker, log.Named("game"))
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return errors.Wrap(err, "run game")
	}
	log.Info("bye", zap.Int("bubbles", sc.Len()))
	return nil
}

// unlockAudio stands in for the start screen: the speaker starts only once the
// user confirms. Every failure leaves the toy running silently.
func unlockAudio(cfg config.AudioConfig, speaker *sound.Speaker, log *zap.Logger) {
	if !cfg.Enabled {
		return
	}
	if cfg.Prompt {
		err := zenity.Question("Click anywhere to blow a bubble.\nClick a bubble to pop it.",
			zenity.Title("Bubbles"),
			zenity.OKLabel("Start with sound"),
			zenity.CancelLabel("Stay quiet"),
		)
		switch {
		case errors.Is(err, zenity.ErrCanceled):
			log.Info("sound declined at start, press M to enable")
			return
		case err != nil:
			log.Warn("start dialog unavailable", zap.Error(err))
		}
	}
	if err := speaker.Unlock(); err != nil {
		log.Warn("audio unavailable, continuing without sound", zap.Error(err))
	}
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
