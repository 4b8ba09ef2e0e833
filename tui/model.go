package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"simon-piano/config"
	"simon-piano/engine"
	"simon-piano/game"
	"simon-piano/midi"
	"simon-piano/theme"
	"simon-piano/widgets"
)

type Model struct {
	Engine    *engine.Engine
	DeviceMgr *midi.DeviceManager // may be nil
	Theme     *theme.Theme
	Saver     *config.Saver // may be nil

	cfg      game.Config // the model is the only writer of the game config
	cursor   int         // pitch class being edited
	devices  map[string]midi.ControllerType
	quitting bool
}

type UpdateMsg struct{}

type DeviceEventMsg midi.DeviceEvent

func NewModel(eng *engine.Engine, deviceMgr *midi.DeviceManager, th *theme.Theme, saver *config.Saver) Model {
	return Model{
		Engine:    eng,
		DeviceMgr: deviceMgr,
		Theme:     th,
		Saver:     saver,
		cfg:       eng.Snapshot().Config,
		devices:   make(map[string]midi.ControllerType),
	}
}

func ListenForUpdates(eng *engine.Engine) tea.Cmd {
	return func() tea.Msg {
		<-eng.UpdateChan
		return UpdateMsg{}
	}
}

func ListenForDevices(deviceMgr *midi.DeviceManager) tea.Cmd {
	if deviceMgr == nil {
		return nil
	}
	return func() tea.Msg {
		event, ok := <-deviceMgr.Events()
		if !ok {
			return nil
		}
		return DeviceEventMsg(event)
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		ListenForUpdates(m.Engine),
		ListenForDevices(m.DeviceMgr),
	)
}

var keyHelp = []widgets.KeySection{
	{Title: "Game", Keys: []widgets.KeyBinding{
		{Key: "space", Desc: "start / stop"},
		{Key: "q", Desc: "quit"},
	}},
	{Title: "Range", Keys: []widgets.KeyBinding{
		{Key: "up/down", Desc: "root -/+ semitone"},
		{Key: "pgup/pgdn", Desc: "root -/+ octave"},
		{Key: "+/-", Desc: "number of notes"},
		{Key: "p", Desc: "next preset"},
	}},
	{Title: "Scale", Keys: []widgets.KeyBinding{
		{Key: "left/right", Desc: "pick pitch class"},
		{Key: "x", Desc: "toggle pitch class"},
		{Key: "a", Desc: "all pitch classes"},
		{Key: "n", Desc: "ignore notes out of scale"},
		{Key: "r/R", Desc: "rounds for an extra miss -/+"},
	}},
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			m.Engine.Stop()
			return m, tea.Quit

		case " ", "enter":
			if m.Engine.Snapshot().Telemetry.Status.IsRunning() {
				m.Engine.Stop()
			} else {
				m.Engine.Start()
			}

		case "left", "h":
			m.cursor = (m.cursor + 11) % 12
		case "right", "l":
			m.cursor = (m.cursor + 1) % 12

		default:
			if edited, ok := editConfig(m.cfg, m.cursor, msg.String()); ok {
				m.cfg = edited
				m.pushConfig()
			}
		}

	case UpdateMsg:
		return m, ListenForUpdates(m.Engine)

	case DeviceEventMsg:
		event := midi.DeviceEvent(msg)
		switch event.Type {
		case midi.DeviceConnected:
			m.devices[event.ID] = event.Controller.Type()
			m.Engine.Attach(event.Controller)
		case midi.DeviceDisconnected:
			delete(m.devices, event.ID)
			m.Engine.Detach(event.ID)
		}
		return m, ListenForDevices(m.DeviceMgr)
	}

	return m, nil
}

// editConfig applies a configuration key; ok is false for unknown keys
func editConfig(c game.Config, cursor int, key string) (game.Config, bool) {
	switch key {
	case "up", "k":
		c.Root--
	case "down", "j":
		c.Root++
	case "pgup":
		c.Root -= 12
	case "pgdown":
		c.Root += 12
	case "+", "=":
		c.NbNotes++
	case "-", "_":
		c.NbNotes--
	case "x":
		c.Scale[cursor] = !c.Scale[cursor]
	case "a":
		c.Scale = game.FullScale()
	case "n":
		c.ShallNotPass = !c.ShallNotPass
	case "r":
		c.RoundsForMiss--
	case "R":
		c.RoundsForMiss++
	case "p":
		c = game.Presets[game.NextPreset(c)].Apply(c)
	default:
		return c, false
	}
	c.Root = clampParam(game.ParamRoot, c.Root)
	c.NbNotes = clampParam(game.ParamNbNotes, c.NbNotes)
	c.RoundsForMiss = clampParam(game.ParamRoundsForMiss, c.RoundsForMiss)
	return c, true
}

func clampParam(id game.ParamID, v int) int {
	p, _ := game.Describe(id)
	return int(p.Clamp(float32(v)))
}

func (m Model) pushConfig() {
	m.Engine.SetConfig(m.cfg)
	if m.Saver != nil {
		cfg := m.cfg
		m.Saver.Update(func(c *config.Config) { c.SetGame(cfg) })
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	snap := m.Engine.Snapshot()
	t := snap.Telemetry
	th := m.Theme

	// Styles
	headerStyle := lipgloss.NewStyle().Foreground(th.Accent())
	statusStyle := lipgloss.NewStyle().Bold(true).Foreground(th.StatusColor(t.Status))
	badgeStyle := statusStyle.Background(th.BG()).Padding(0, 1)
	labelStyle := lipgloss.NewStyle().Foreground(th.FG())
	dimStyle := lipgloss.NewStyle().Foreground(th.Muted())

	var out strings.Builder
	out.WriteString("\n")
	out.WriteString(headerStyle.Render("simon-piano  "))
	out.WriteString(badgeStyle.Render(strings.ToUpper(t.Status.String())))
	out.WriteString(headerStyle.Render(fmt.Sprintf("  round %d  best %d  miss %d/%d", t.Round, t.MaxRound, t.NbMiss, t.MaxMiss)))
	out.WriteString(dimStyle.Render(m.deviceStatus()))
	out.WriteString("\n\n")

	out.WriteString(widgets.RenderPiano(widgets.PianoKeys{
		Root:      t.EffectiveRoot,
		Count:     t.EffectiveNbNotes,
		Scale:     t.EffectiveScale,
		Sounding:  t.CurNote,
		Key:       th.FG(),
		Dim:       th.Muted(),
		Highlight: th.StatusColor(t.Status),
	}))
	out.WriteString("\n\n")

	out.WriteString(widgets.RenderScaleRow(m.cfg.Scale, th.Symbols.InScale, th.Symbols.OutScale, m.cursor, th.FG(), th.Muted(), th.Cursor()))
	out.WriteString("\n")
	out.WriteString(labelStyle.Render(m.settingsLine()))
	out.WriteString("\n\n")

	if t.Round > 0 {
		out.WriteString(statusStyle.Render(widgets.RenderProgress(t.Round, t.Step, t.Status.IsPlaying(),
			th.Symbols.Done, th.Symbols.Pending, th.Symbols.Current)))
		out.WriteString("\n\n")
	}

	if m.hasLaunchpad() {
		off := th.RGB(theme.RoleSurface)
		out.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			widgets.RenderPadGrid(engine.LEDGrid(t), off),
			"   ",
			dimStyle.Render(widgets.RenderLegend(engine.LEDLegend())),
		))
		out.WriteString("\n\n")
	}

	if best, ok := m.Engine.History().Best(); ok {
		out.WriteString(dimStyle.Render(fmt.Sprintf("games %d  best game %d rounds (%s)", snap.Games, best.Rounds, best.Ending)))
		out.WriteString("\n\n")
	}

	out.WriteString(dimStyle.Render(widgets.RenderKeyHelp(keyHelp)))
	return out.String()
}

func (m Model) settingsLine() string {
	preset := "-"
	if i := game.PresetIndex(m.cfg); i >= 0 {
		preset = game.Presets[i].Name
	}
	pass := "pass"
	if m.cfg.ShallNotPass {
		pass = "block"
	}
	return fmt.Sprintf("root %s  notes %d  preset %s  out of scale: %s  extra miss every %d rounds",
		game.NoteName(m.cfg.Root), m.cfg.NbNotes, preset, pass, m.cfg.RoundsForMiss)
}

func (m Model) deviceStatus() string {
	if len(m.devices) == 0 {
		return "  no controller"
	}
	var kb, lp int
	for _, t := range m.devices {
		switch t {
		case midi.ControllerKeyboard:
			kb++
		case midi.ControllerLaunchpad:
			lp++
		}
	}
	return fmt.Sprintf("  kb:%d lp:%d", kb, lp)
}

func (m Model) hasLaunchpad() bool {
	for _, t := range m.devices {
		if t == midi.ControllerLaunchpad {
			return true
		}
	}
	return false
}
