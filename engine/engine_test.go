package engine

import (
	"context"
	"testing"
	"time"

	"simon-piano/game"
	"simon-piano/midi"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomidi "gitlab.com/gomidi/midi/v2"
)

func testOptions() Options {
	opts := DefaultOptions()
	opts.SampleRate = 1000
	opts.HostBlock = 16
	opts.Seed = 9
	opts.Timing = game.Timing{NoteInterval: 10 * time.Millisecond, NoteDuration: 10 * time.Millisecond}
	opts.Config.RoundsForMiss = 0
	return opts
}

func TestCommandsApplyOnStep(t *testing.T) {
	e := New(testOptions())
	e.Start()
	assert.Equal(t, game.Waiting, e.Snapshot().Telemetry.Status, "queued until the next block")

	e.Step(4, nil)
	snap := e.Snapshot()
	assert.Equal(t, game.Starting, snap.Telemetry.Status)
	assert.True(t, snap.Start)
	assert.NotZero(t, snap.Session)

	select {
	case <-e.UpdateChan:
	default:
		t.Fatal("no update notification")
	}

	e.Stop()
	e.Step(4, nil)
	assert.Equal(t, game.GameOver, e.Snapshot().Telemetry.Status)
	assert.False(t, e.Snapshot().Start)

	games := e.History().All()
	require.Len(t, games, 1)
	assert.Equal(t, game.EndStopped, games[0].Ending)
	assert.Equal(t, snap.Session, games[0].ID)
	assert.Equal(t, 1, e.Snapshot().Games)
}

func TestStartAfterGameOver(t *testing.T) {
	e := New(testOptions())
	e.Start()
	e.Step(4, nil)

	// releasing the host toggle does not abort the game
	e.SetParameter(game.ParamStart, 0)
	e.Step(4, nil)
	require.Equal(t, game.Starting, e.Snapshot().Telemetry.Status)

	e.Stop()
	e.Step(4, nil)
	require.Equal(t, game.GameOver, e.Snapshot().Telemetry.Status)

	e.Start()
	e.Step(4, nil)
	assert.Equal(t, game.Starting, e.Snapshot().Telemetry.Status)
	assert.Len(t, e.History().All(), 1)
}

func TestConfigChangesReachTheGame(t *testing.T) {
	e := New(testOptions())
	cfg := e.Snapshot().Config
	cfg.Root = 48
	cfg.NbNotes = 24
	e.SetConfig(cfg)
	e.SetParameter(game.ParamShallNotPass, 1)
	e.SetParameter(game.ParamRound, 7) // outputs are refused
	e.Step(1, nil)

	snap := e.Snapshot()
	assert.Equal(t, 48, snap.Config.Root)
	assert.True(t, snap.Config.ShallNotPass)
	assert.Equal(t, 48, snap.Telemetry.EffectiveRoot)
	assert.Equal(t, 24, snap.Telemetry.EffectiveNbNotes)
	assert.Zero(t, snap.Telemetry.Round)
}

func TestTransitionsReported(t *testing.T) {
	var seen []Transition
	opts := testOptions()
	opts.OnTransition = func(tr Transition) { seen = append(seen, tr) }
	e := New(opts)

	e.Start()
	for i := 0; i < 10; i++ {
		e.Step(16, nil)
	}
	require.GreaterOrEqual(t, len(seen), 2)
	assert.Equal(t, game.Waiting, seen[0].From)
	assert.Equal(t, game.Starting, seen[0].To)
	assert.Equal(t, game.Instructions, seen[1].To)
	assert.Equal(t, 1, seen[1].Round)
}

func TestNoteToEvent(t *testing.T) {
	start := time.Unix(100, 0)
	n := midi.NoteEvent{On: true, Note: 64, Velocity: 70, Channel: 2, Time: start.Add(5 * time.Millisecond)}

	evt := noteToEvent(n, start, 1000, 16)
	assert.Equal(t, midi.Event{Frame: 5, Type: midi.NoteOn, Channel: 2, Note: 64, Velocity: 70}, evt)

	n.Time = start.Add(-time.Second)
	assert.Equal(t, uint32(0), noteToEvent(n, start, 1000, 16).Frame)

	n.On = false
	n.Time = start.Add(time.Second)
	evt = noteToEvent(n, start, 1000, 16)
	assert.Equal(t, midi.Event{Frame: 15, Type: midi.NoteOff, Channel: 2, Note: 64}, evt)
}

func TestQueuedNotesArePlaced(t *testing.T) {
	e := New(testOptions())
	start := time.Now()
	e.Note(midi.NoteEvent{On: true, Note: 67, Velocity: 90, Time: start.Add(8 * time.Millisecond)})
	e.Note(midi.NoteEvent{On: true, Note: 62, Velocity: 90, Time: start.Add(3 * time.Millisecond)})

	events := e.collect(start)
	require.Len(t, events, 2)
	assert.Equal(t, uint8(62), events[0].Note)
	assert.Equal(t, uint8(67), events[1].Note)

	out := e.Step(16, events)
	require.Len(t, out, 3)
	assert.Equal(t, uint32(3), out[0].Frame)
	assert.Equal(t, midi.NoteOff, out[1].Type)
	assert.Equal(t, uint32(8), out[2].Frame)
	assert.Equal(t, 67, e.Snapshot().Telemetry.CurNote)
}

func TestCollectKeepsArrivalOrderOnEqualFrames(t *testing.T) {
	e := New(testOptions())
	start := time.Now()
	at := start.Add(4 * time.Millisecond)
	e.Note(midi.NoteEvent{On: true, Note: 62, Velocity: 90, Time: at})
	e.Note(midi.NoteEvent{Note: 62, Time: at})
	e.Note(midi.NoteEvent{On: true, Note: 64, Velocity: 90, Time: at})
	e.Note(midi.NoteEvent{On: true, Note: 60, Velocity: 90, Time: start.Add(time.Millisecond)})

	events := e.collect(start)
	require.Len(t, events, 4)
	assert.Equal(t, midi.Event{Frame: 1, Type: midi.NoteOn, Note: 60, Velocity: 90}, events[0])
	assert.Equal(t, midi.Event{Frame: 4, Type: midi.NoteOn, Note: 62, Velocity: 90}, events[1])
	assert.Equal(t, midi.Event{Frame: 4, Type: midi.NoteOff, Note: 62}, events[2])
	assert.Equal(t, midi.Event{Frame: 4, Type: midi.NoteOn, Note: 64, Velocity: 90}, events[3])

	e.Step(16, events)
	assert.Equal(t, 64, e.Snapshot().Telemetry.CurNote)
}

func TestRunExitReleasesFreePlayNote(t *testing.T) {
	var sent []gomidi.Message
	opts := testOptions()
	opts.Output = midi.NewPort("test", func(msg gomidi.Message) error {
		sent = append(sent, msg)
		return nil
	})
	e := New(opts)
	e.Step(16, []midi.Event{{Frame: 2, Type: midi.NoteOn, Note: 60, Velocity: 100}})
	require.Equal(t, 60, e.Snapshot().Telemetry.CurNote)
	require.Equal(t, game.Waiting, e.Snapshot().Telemetry.Status)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	e.Run(ctx)

	assert.Equal(t, game.NoNote, e.Snapshot().Telemetry.CurNote)
	require.NotEmpty(t, sent)
	var ch, key uint8
	assert.True(t, sent[len(sent)-1].GetNoteEnd(&ch, &key))
	assert.Equal(t, uint8(60), key)
}

func TestPadNote(t *testing.T) {
	e := New(testOptions())
	at := time.Now()

	n, ok := e.padNote(midi.PadEvent{Row: 1, Col: 2, Velocity: 100}, at)
	require.True(t, ok)
	assert.Equal(t, midi.NoteEvent{On: true, Note: 70, Velocity: 100, Time: at}, n)

	n, ok = e.padNote(midi.PadEvent{Row: 1, Col: 2}, at)
	require.True(t, ok)
	assert.False(t, n.On)

	cfg := game.DefaultConfig()
	cfg.Root = 120
	e.SetConfig(cfg)
	e.Step(1, nil)
	_, ok = e.padNote(midi.PadEvent{Row: 7, Col: 7, Velocity: 1}, at)
	assert.False(t, ok, "beyond the MIDI range")
}

func TestPortReceivesOutput(t *testing.T) {
	var sent int
	opts := testOptions()
	opts.Output = midi.NewPort("test", func(msg gomidi.Message) error {
		sent++
		return nil
	})
	e := New(opts)
	e.Step(16, []midi.Event{{Frame: 1, Type: midi.NoteOn, Note: 60, Velocity: 1}})
	assert.Equal(t, 1, sent)
}

type fakeKeyboard struct {
	notes chan midi.NoteEvent
	pads  chan midi.PadEvent
}

func (f *fakeKeyboard) ID() string                                           { return "fake" }
func (f *fakeKeyboard) Type() midi.ControllerType                            { return midi.ControllerKeyboard }
func (f *fakeKeyboard) PadEvents() <-chan midi.PadEvent                      { return f.pads }
func (f *fakeKeyboard) NoteEvents() <-chan midi.NoteEvent                    { return f.notes }
func (f *fakeKeyboard) SetLEDRGB(row, col int, rgb [3]uint8, ch uint8) error { return nil }
func (f *fakeKeyboard) SetLEDBatch(updates []midi.LEDUpdate) error           { return nil }
func (f *fakeKeyboard) Close() error                                         { return nil }

func TestAttachForwardsInput(t *testing.T) {
	e := New(testOptions())
	kb := &fakeKeyboard{notes: make(chan midi.NoteEvent), pads: make(chan midi.PadEvent)}
	e.Attach(kb)
	defer close(kb.notes)
	defer close(kb.pads)

	now := time.Now()
	kb.notes <- midi.NoteEvent{On: true, Note: 64, Velocity: 50, Time: now}
	kb.pads <- midi.PadEvent{Row: 0, Col: 2, Velocity: 90}

	require.Eventually(t, func() bool { return len(e.input) == 2 }, time.Second, time.Millisecond)
	events := e.collect(now)
	assert.ElementsMatch(t, []uint8{64, 62}, []uint8{events[0].Note, events[1].Note})
}

func TestLEDGrid(t *testing.T) {
	tm := game.Telemetry{
		EffectiveRoot:    60,
		EffectiveNbNotes: 12,
		EffectiveScale:   game.FullScale(),
		CurNote:          62,
		Status:           game.PlayingIncorrect,
	}
	tm.EffectiveScale[1] = false

	grid := LEDGrid(tm)
	assert.Equal(t, ledRoot, grid[0][0])
	assert.Equal(t, [3]uint8{}, grid[0][1], "out of scale")
	assert.Equal(t, ledWrong, grid[0][2])
	assert.Equal(t, ledScale, grid[1][3])
	assert.Equal(t, [3]uint8{}, grid[1][4], "outside the window")

	tm.Status = game.PlayingCorrect
	assert.Equal(t, ledCorrect, LEDGrid(tm)[0][2])
}

func TestLEDLegendCoversGridColors(t *testing.T) {
	colors := map[[3]uint8]bool{}
	for _, it := range LEDLegend() {
		colors[it.Color] = true
	}
	for _, c := range [][3]uint8{ledScale, ledRoot, ledPlaying, ledCorrect, ledWrong} {
		assert.True(t, colors[c], "%v missing from legend", c)
	}
}
