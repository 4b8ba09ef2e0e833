package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPresetIndex(t *testing.T) {
	assert.Equal(t, 0, PresetIndex(DefaultConfig()))

	c := Presets[PresetByName("49 keys")].Apply(DefaultConfig())
	assert.Equal(t, 36, c.Root)
	assert.Equal(t, 49, c.NbNotes)
	assert.Equal(t, PresetByName("49 keys"), PresetIndex(c))

	c.NbNotes = 50
	assert.Equal(t, PresetByName("Custom"), PresetIndex(c))
}

func TestCustomPresetKeepsConfig(t *testing.T) {
	c := DefaultConfig()
	c.Root = 33
	c.Scale[3] = false
	assert.Equal(t, c, Presets[PresetByName("Custom")].Apply(c))
}

func TestNextPresetCycles(t *testing.T) {
	c := DefaultConfig()
	var visited []string
	for i := 0; i < len(Presets)+1; i++ {
		next := NextPreset(c)
		c = Presets[next].Apply(c)
		visited = append(visited, Presets[next].Name)
	}
	assert.Equal(t, []string{
		"D major", "F# Maj pentatonic", "25 keys", "49 keys", "61 keys", "88 keys", "One Octave", "D major", "F# Maj pentatonic",
	}, visited)
}

func TestPresetByNameUnknown(t *testing.T) {
	assert.Equal(t, -1, PresetByName("nope"))
}
