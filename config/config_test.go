package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"simon-piano/game"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMissingFileGivesDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "none.json"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, game.DefaultConfig(), cfg.GameConfig())
	assert.Equal(t, game.DefaultTiming(), cfg.GameTiming())
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.json")
	cfg := DefaultConfig()
	cfg.MIDI.Input = "Keystation"
	cfg.Seed = 42
	cfg.SetTiming(game.Timing{NoteInterval: 250 * time.Millisecond, NoteDuration: time.Second, FeedbackHold: 400 * time.Millisecond})
	require.NoError(t, cfg.SaveFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"noteInterval": "250ms"`)

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"game": {"root": 48, "nbNotes": 24, "scale": [true,true,true,true,true,true,true,true,true,true,true,true]}}`), 0644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 48, cfg.Game.Root)
	assert.Equal(t, uint32(512), cfg.Audio.HostBlock)
	assert.Equal(t, time.Second, cfg.GameTiming().NoteDuration)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		edit func(*Config)
	}{
		{"root", func(c *Config) { c.Game.Root = 128 }},
		{"nbNotes", func(c *Config) { c.Game.NbNotes = 0 }},
		{"roundsForMiss", func(c *Config) { c.Game.RoundsForMiss = -1 }},
		{"sample rate", func(c *Config) { c.Audio.SampleRate = 0 }},
		{"host block", func(c *Config) { c.Audio.HostBlock = 0 }},
		{"duration", func(c *Config) { c.Timing.FeedbackHold = Duration(-time.Second) }},
		{"preset", func(c *Config) { c.Game.Preset = "Bagpipes" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.edit(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}
	assert.NoError(t, DefaultConfig().Validate())
}

func TestInvalidFileRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"game": {"nbNotes": 500}}`), 0644))
	_, err := LoadFile(path)
	assert.ErrorIs(t, err, ErrInvalid)

	require.NoError(t, os.WriteFile(path, []byte(`{"timing": {"noteInterval": "soon"}}`), 0644))
	_, err = LoadFile(path)
	assert.Error(t, err)
}

func TestPresetAppliedOnTop(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Game.Preset = "88 keys"
	cfg.Game.ShallNotPass = true

	g := cfg.GameConfig()
	assert.Equal(t, 21, g.Root)
	assert.Equal(t, 88, g.NbNotes)
	assert.True(t, g.ShallNotPass)

	cfg.SetGame(g)
	assert.Equal(t, "88 keys", cfg.Game.Preset)
}

func TestSaverDebounces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	s := NewSaver(DefaultConfig(), path, 20*time.Millisecond, nil)

	for i := 0; i < 5; i++ {
		root := 40 + i
		s.Update(func(c *Config) { c.Game.Root = root })
	}
	assert.Equal(t, 44, s.Config().Game.Root)

	require.Eventually(t, func() bool { return s.Saves() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 1, s.Saves())

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 44, loaded.Game.Root)
}
