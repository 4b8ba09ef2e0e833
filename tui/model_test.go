package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"simon-piano/engine"
	"simon-piano/game"
	"simon-piano/midi"
	"simon-piano/theme"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeController struct {
	id    string
	typ   midi.ControllerType
	notes chan midi.NoteEvent
	pads  chan midi.PadEvent
}

func newFakeController(id string, typ midi.ControllerType) *fakeController {
	return &fakeController{id: id, typ: typ, notes: make(chan midi.NoteEvent), pads: make(chan midi.PadEvent)}
}

func (f *fakeController) ID() string                                           { return f.id }
func (f *fakeController) Type() midi.ControllerType                            { return f.typ }
func (f *fakeController) PadEvents() <-chan midi.PadEvent                      { return f.pads }
func (f *fakeController) NoteEvents() <-chan midi.NoteEvent                    { return f.notes }
func (f *fakeController) SetLEDRGB(row, col int, rgb [3]uint8, ch uint8) error { return nil }
func (f *fakeController) SetLEDBatch(updates []midi.LEDUpdate) error           { return nil }
func (f *fakeController) Close() error {
	close(f.notes)
	close(f.pads)
	return nil
}

func newTestModel() Model {
	opts := engine.DefaultOptions()
	opts.SampleRate = 1000
	opts.HostBlock = 16
	return NewModel(engine.New(opts), nil, theme.New(theme.DefaultPalette()), nil)
}

func key(s string) tea.KeyMsg {
	switch s {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m Model, keys ...string) Model {
	for _, k := range keys {
		next, _ := m.Update(key(k))
		m = next.(Model)
	}
	return m
}

func TestEditConfig(t *testing.T) {
	base := game.DefaultConfig()
	tests := []struct {
		key   string
		check func(c game.Config) bool
	}{
		{"up", func(c game.Config) bool { return c.Root == 59 }},
		{"down", func(c game.Config) bool { return c.Root == 61 }},
		{"pgdown", func(c game.Config) bool { return c.Root == 72 }},
		{"+", func(c game.Config) bool { return c.NbNotes == 13 }},
		{"x", func(c game.Config) bool { return !c.Scale[3] && c.Scale.Count() == 11 }},
		{"n", func(c game.Config) bool { return c.ShallNotPass }},
		{"R", func(c game.Config) bool { return c.RoundsForMiss == 2 }},
		{"p", func(c game.Config) bool { return game.PresetIndex(c) == game.PresetByName("D major") }},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			c, ok := editConfig(base, 3, tt.key)
			require.True(t, ok)
			assert.True(t, tt.check(c), "%+v", c)
		})
	}

	_, ok := editConfig(base, 0, "z")
	assert.False(t, ok)
}

func TestEditConfigClamps(t *testing.T) {
	c := game.DefaultConfig()
	c.Root = 0
	c.NbNotes = 1
	c.RoundsForMiss = 0

	c, _ = editConfig(c, 0, "up")
	c, _ = editConfig(c, 0, "-")
	c, _ = editConfig(c, 0, "r")
	assert.Equal(t, 0, c.Root)
	assert.Equal(t, 1, c.NbNotes)
	assert.Equal(t, 0, c.RoundsForMiss)
}

func TestSpaceStartsAndStops(t *testing.T) {
	m := newTestModel()
	m = press(m, " ")
	m.Engine.Step(1, nil)
	assert.Equal(t, game.Starting, m.Engine.Snapshot().Telemetry.Status)

	m = press(m, " ")
	m.Engine.Step(1, nil)
	assert.Equal(t, game.GameOver, m.Engine.Snapshot().Telemetry.Status)
}

func TestScaleEditingReachesEngine(t *testing.T) {
	m := newTestModel()
	m = press(m, "left", "x", "up")
	m.Engine.Step(1, nil)

	cfg := m.Engine.Snapshot().Config
	assert.False(t, cfg.Scale[11])
	assert.Equal(t, 59, cfg.Root)
	assert.Contains(t, m.View(), "root B3")
}

func TestDeviceEvents(t *testing.T) {
	m := newTestModel()
	assert.Contains(t, m.View(), "no controller")

	kb := newFakeController("Keystation", midi.ControllerKeyboard)
	next, _ := m.Update(DeviceEventMsg{Type: midi.DeviceConnected, Controller: kb, ID: kb.id})
	m = next.(Model)
	assert.Contains(t, m.View(), "kb:1 lp:0")

	next, _ = m.Update(DeviceEventMsg{Type: midi.DeviceDisconnected, ID: kb.id})
	m = next.(Model)
	assert.Contains(t, m.View(), "no controller")
	kb.Close()
}

func TestViewShowsStatus(t *testing.T) {
	m := newTestModel()
	view := m.View()
	assert.Contains(t, view, "   WAITING   ", "status is drawn as a padded badge")
	assert.Contains(t, view, "preset One Octave")
	assert.Contains(t, view, "start / stop")
}

func TestQuit(t *testing.T) {
	m := newTestModel()
	next, cmd := m.Update(key("q"))
	assert.NotNil(t, cmd)
	assert.Empty(t, next.View())
}
