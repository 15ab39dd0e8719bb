package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	WindowWidth  = 1024
	WindowHeight = 640

	// Mode toggle button
	ButtonWidth  = 48
	ButtonHeight = 32
	ButtonX      = 12
	ButtonY      = 28

	ModeDay   = "day"
	ModeNight = "night"

	// EnvPath names the environment variable holding a config file path.
	EnvPath     = "BUBBLES_CONFIG"
	DefaultPath = "bubbles.toml"
)

type Config struct {
	Mode    string        `toml:"mode" yaml:"mode"` // initial palette: "day" or "night"
	Window  WindowConfig  `toml:"window" yaml:"window"`
	Bubble  BubbleConfig  `toml:"bubble" yaml:"bubble"`
	Audio   AudioConfig   `toml:"audio" yaml:"audio"`
	Logging LoggingConfig `toml:"logging" yaml:"logging"`
}

type WindowConfig struct {
	Width     int    `toml:"width" yaml:"width"`
	Height    int    `toml:"height" yaml:"height"`
	Title     string `toml:"title" yaml:"title"`
	Resizable bool   `toml:"resizable" yaml:"resizable"`
}

// BubbleConfig holds the randomization bounds for new bubbles. Speeds are in
// pixels (or radians) per frame.
type BubbleConfig struct {
	SizeTiers        []float64 `toml:"size_tiers" yaml:"size_tiers"`
	MinSpeed         float64   `toml:"min_speed" yaml:"min_speed"`
	MaxSpeed         float64   `toml:"max_speed" yaml:"max_speed"`
	MinBobSpeed      float64   `toml:"min_bob_speed" yaml:"min_bob_speed"`
	MaxBobSpeed      float64   `toml:"max_bob_speed" yaml:"max_bob_speed"`
	LateralAmplitude float64   `toml:"lateral_amplitude" yaml:"lateral_amplitude"`
	CullThreshold    float64   `toml:"cull_threshold" yaml:"cull_threshold"`
}

type AudioConfig struct {
	Enabled       bool          `toml:"enabled" yaml:"enabled"`
	Prompt        bool          `toml:"prompt" yaml:"prompt"` // ask before unlocking sound
	SampleRate    int           `toml:"sample_rate" yaml:"sample_rate"`
	BufferSize    time.Duration `toml:"buffer_size" yaml:"buffer_size"`
	Volume        float64       `toml:"volume" yaml:"volume"` // log2 gain, 0 = unity
	Tempo         float64       `toml:"tempo" yaml:"tempo"`   // BPM for note lengths
	FollowUpDelay time.Duration `toml:"follow_up_delay" yaml:"follow_up_delay"`
	TapSize       int           `toml:"tap_size" yaml:"tap_size"`
}

type LoggingConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"` // "json" or "console"
}

// Load reads a config file on top of the defaults. Files ending in .yaml or
// .yml are parsed as YAML, everything else as TOML.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read config %s", path)
	}
	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		err = toml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

// Resolve loads the config named by flagPath, else by $BUBBLES_CONFIG, else
// ./bubbles.toml if it exists, else the defaults. Only an explicitly named
// file has to exist.
func Resolve(flagPath string) (*Config, error) {
	path := flagPath
	if path == "" {
		path = os.Getenv(EnvPath)
	}
	if path == "" {
		if _, err := os.Stat(DefaultPath); err != nil {
			return Default(), nil
		}
		path = DefaultPath
	}
	return Load(path)
}

func Default() *Config {
	return &Config{
		Mode: ModeDay,
		Window: WindowConfig{
			Width:     WindowWidth,
			Height:    WindowHeight,
			Title:     "Bubbles - click to blow, click a bubble to pop, N: day/night, M: mute, Esc/Q: quit",
			Resizable: true,
		},
		Bubble: BubbleConfig{
			SizeTiers:        []float64{20, 26, 34, 44, 56},
			MinSpeed:         0.1,
			MaxSpeed:         0.5,
			MinBobSpeed:      0.01,
			MaxBobSpeed:      0.05,
			LateralAmplitude: 0.2,
			CullThreshold:    -50,
		},
		Audio: AudioConfig{
			Enabled:       true,
			Prompt:        true,
			SampleRate:    44100,
			BufferSize:    50 * time.Millisecond,
			Volume:        0,
			Tempo:         120,
			FollowUpDelay: 60 * time.Millisecond,
			TapSize:       4096,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Night reports whether the configured initial mode is night.
func (c *Config) Night() bool {
	return strings.EqualFold(c.Mode, ModeNight)
}

func (c *Config) Validate() error {
	switch strings.ToLower(c.Mode) {
	case ModeDay, ModeNight:
	default:
		return errors.Errorf("unknown mode %q", c.Mode)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return errors.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}

	b := c.Bubble
	if len(b.SizeTiers) == 0 {
		return errors.New("bubble.size_tiers is empty")
	}
	for _, r := range b.SizeTiers {
		if r <= 0 {
			return errors.Errorf("bubble size tier %v must be positive", r)
		}
	}
	if b.MinSpeed <= 0 || b.MaxSpeed < b.MinSpeed {
		return errors.Errorf("bubble speed range [%v, %v) is invalid", b.MinSpeed, b.MaxSpeed)
	}
	if b.MinBobSpeed < 0 || b.MaxBobSpeed < b.MinBobSpeed {
		return errors.Errorf("bubble bob speed range [%v, %v) is invalid", b.MinBobSpeed, b.MaxBobSpeed)
	}

	a := c.Audio
	if a.SampleRate <= 0 {
		return errors.Errorf("audio.sample_rate %d must be positive", a.SampleRate)
	}
	if a.BufferSize <= 0 {
		return errors.Errorf("audio.buffer_size %v must be positive", a.BufferSize)
	}
	if a.Tempo <= 0 {
		return errors.Errorf("audio.tempo %v must be positive", a.Tempo)
	}
	if a.FollowUpDelay < 0 {
		return errors.Errorf("audio.follow_up_delay %v is negative", a.FollowUpDelay)
	}
	if a.TapSize <= 0 {
		return errors.Errorf("audio.tap_size %d must be positive", a.TapSize)
	}
	return nil
}
