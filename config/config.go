package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"simon-piano/game"
)

// ErrInvalid wraps every validation failure
var ErrInvalid = errors.New("invalid config")

// Duration is a time.Duration stored as a string such as "1s" or "250ms"
type Duration time.Duration

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// MIDIConfig names the ports to use
type MIDIConfig struct {
	Input     string `json:"input,omitempty"`  // keyboard port, empty picks the first
	Output    string `json:"output,omitempty"` // empty sends nowhere
	Launchpad bool   `json:"launchpad"`
}

// AudioConfig sets the block cadence of the engine
type AudioConfig struct {
	SampleRate float64 `json:"sampleRate"`
	BlockSize  uint32  `json:"blockSize"`
	HostBlock  uint32  `json:"hostBlock"`
}

// TimingConfig sets the phase durations of the game
type TimingConfig struct {
	NoteInterval Duration `json:"noteInterval"`
	NoteDuration Duration `json:"noteDuration"`
	FeedbackHold Duration `json:"feedbackHold"`
}

// GameConfig is the musical configuration
type GameConfig struct {
	Root          int      `json:"root"`
	NbNotes       int      `json:"nbNotes"`
	Scale         [12]bool `json:"scale"`
	ShallNotPass  bool     `json:"shallNotPass"`
	RoundsForMiss int      `json:"roundsForMiss"`
	Preset        string   `json:"preset,omitempty"` // applied over the fields above on load
}

// UIConfig stores UI preferences
type UIConfig struct {
	Palette string `json:"palette,omitempty"` // GIMP palette file
}

// Config is the main configuration structure
type Config struct {
	MIDI   MIDIConfig   `json:"midi"`
	Audio  AudioConfig  `json:"audio"`
	Timing TimingConfig `json:"timing"`
	Seed   uint32       `json:"seed,omitempty"` // zero derives one from the clock
	Game   GameConfig   `json:"game"`
	UI     UIConfig     `json:"ui,omitempty"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	c := &Config{
		MIDI: MIDIConfig{Launchpad: true},
		Audio: AudioConfig{
			SampleRate: game.DefaultSampleRate,
			BlockSize:  128,
			HostBlock:  512,
		},
	}
	c.SetTiming(game.DefaultTiming())
	c.SetGame(game.DefaultConfig())
	c.Game.Preset = ""
	return c
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "simon-piano"), nil
}

// ConfigPath returns the full path to config.json
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from the default path, or returns defaults if not found
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}
	return LoadFile(path)
}

// LoadFile reads and validates a config file. Missing fields keep their
// defaults and a missing file gives the defaults.
func LoadFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config to the default path
func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveFile(path)
}

// SaveFile writes the config to path, creating its directory
func (c *Config) SaveFile(path string) error {
	// Create directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate checks every value against the range the game accepts
func (c *Config) Validate() error {
	check := func(ok bool, format string, args ...any) error {
		if ok {
			return nil
		}
		return fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...)
	}

	return errors.Join(
		check(c.Audio.SampleRate > 0, "sample rate %v", c.Audio.SampleRate),
		check(c.Audio.BlockSize > 0, "block size %d", c.Audio.BlockSize),
		check(c.Audio.HostBlock > 0, "host block %d", c.Audio.HostBlock),
		check(c.Timing.NoteInterval >= 0 && c.Timing.NoteDuration >= 0 && c.Timing.FeedbackHold >= 0, "negative duration"),
		check(c.Game.Root >= 0 && c.Game.Root <= game.MaxNote, "root %d", c.Game.Root),
		check(c.Game.NbNotes >= 1 && c.Game.NbNotes <= game.MaxNote+1, "nbNotes %d", c.Game.NbNotes),
		check(c.Game.RoundsForMiss >= 0 && c.Game.RoundsForMiss <= game.MaxRound, "roundsForMiss %d", c.Game.RoundsForMiss),
		check(c.Game.Preset == "" || game.PresetByName(c.Game.Preset) >= 0, "unknown preset %q", c.Game.Preset),
	)
}

// GameConfig returns the musical configuration with the preset applied
func (c *Config) GameConfig() game.Config {
	g := game.Config{
		Root:          c.Game.Root,
		NbNotes:       c.Game.NbNotes,
		Scale:         game.Scale(c.Game.Scale),
		ShallNotPass:  c.Game.ShallNotPass,
		RoundsForMiss: c.Game.RoundsForMiss,
	}
	if i := game.PresetByName(c.Game.Preset); i >= 0 {
		g = game.Presets[i].Apply(g)
	}
	return g
}

// SetGame stores a musical configuration and the preset it matches
func (c *Config) SetGame(g game.Config) {
	c.Game = GameConfig{
		Root:          g.Root,
		NbNotes:       g.NbNotes,
		Scale:         g.Scale,
		ShallNotPass:  g.ShallNotPass,
		RoundsForMiss: g.RoundsForMiss,
	}
	if i := game.PresetIndex(g); i >= 0 {
		c.Game.Preset = game.Presets[i].Name
	}
}

// GameTiming returns the phase durations
func (c *Config) GameTiming() game.Timing {
	return game.Timing{
		NoteInterval: time.Duration(c.Timing.NoteInterval),
		NoteDuration: time.Duration(c.Timing.NoteDuration),
		FeedbackHold: time.Duration(c.Timing.FeedbackHold),
	}
}

// SetTiming stores phase durations
func (c *Config) SetTiming(t game.Timing) {
	c.Timing = TimingConfig{
		NoteInterval: Duration(t.NoteInterval),
		NoteDuration: Duration(t.NoteDuration),
		FeedbackHold: Duration(t.FeedbackHold),
	}
}
