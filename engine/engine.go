// Package engine runs the game in real time: a block-cadence loop plays the
// part of the audio callback, MIDI controllers feed it and the terminal UI
// talks to it through a command queue and a published snapshot.
package engine

import (
	"context"
	"errors"
	"runtime"
	"slices"
	"sync"
	"time"

	"simon-piano/debug"
	"simon-piano/game"
	"simon-piano/midi"
	"simon-piano/plugin"

	"github.com/google/uuid"
)

// ErrNoInput is returned when a replay has no notes to play
var ErrNoInput = errors.New("no note input")

// Options configures an Engine
type Options struct {
	SampleRate float64
	HostBlock  uint32 // frames per loop iteration
	BlockSize  uint32 // plugin sub-block
	Timing     game.Timing
	Config     game.Config
	Seed       uint32
	Output     *midi.Port // nil discards output
	History    int        // games kept, zero keeps all

	// OnTransition is called from the loop goroutine on every status change
	OnTransition func(Transition)
}

// DefaultOptions matches the plugin's native block at 48kHz
func DefaultOptions() Options {
	return Options{
		SampleRate: game.DefaultSampleRate,
		HostBlock:  512,
		BlockSize:  plugin.BlockSize,
		Timing:     game.DefaultTiming(),
		Config:     game.DefaultConfig(),
		History:    100,
	}
}

// Transition is a status change seen after a block or a command
type Transition struct {
	Time    float64
	Session uuid.UUID
	From    game.Status
	To      game.Status
	Round   int
	NbMiss  int
}

// Snapshot is the state published to the control side
type Snapshot struct {
	Telemetry game.Telemetry
	Config    game.Config
	Timing    game.Timing
	Start     bool
	Sequence  []int // copy, shared between snapshots
	Session   uuid.UUID
	Time      float64
	Games     int
}

type cmdKind int

const (
	cmdParam cmdKind = iota
	cmdStart
	cmdStop
	cmdConfig
	cmdTiming
)

type command struct {
	kind   cmdKind
	id     game.ParamID
	value  float32
	cfg    game.Config
	timing game.Timing
}

// Engine owns the plugin. Only the loop goroutine touches it; everybody else
// goes through the command queue and reads snapshots.
type Engine struct {
	opts    Options
	plugin  *plugin.Plugin
	port    *midi.Port
	history *History

	commands chan command
	input    chan midi.NoteEvent
	events   []midi.Event // reused every block

	prev    game.Telemetry
	session uuid.UUID
	started float64

	mu   sync.RWMutex
	snap Snapshot

	lpMu       sync.Mutex
	launchpads map[string]*midi.LaunchpadController

	// Notify TUI of updates
	UpdateChan chan struct{}
}

// New creates an engine with an idle game
func New(opts Options) *Engine {
	def := DefaultOptions()
	if opts.SampleRate <= 0 {
		opts.SampleRate = def.SampleRate
	}
	if opts.HostBlock == 0 {
		opts.HostBlock = def.HostBlock
	}

	p := plugin.New(opts.Seed, opts.SampleRate)
	p.SetBlockSize(opts.BlockSize)
	p.Game().SetTiming(opts.Timing)
	p.Game().SetConfig(opts.Config)

	e := &Engine{
		opts:       opts,
		plugin:     p,
		port:       opts.Output,
		history:    NewHistory(opts.History),
		commands:   make(chan command, 64),
		input:      make(chan midi.NoteEvent, 128),
		events:     make([]midi.Event, 0, 128),
		launchpads: make(map[string]*midi.LaunchpadController),
		UpdateChan: make(chan struct{}, 1),
	}
	e.prev = p.Game().Telemetry()
	e.publish(true)
	return e
}

// History returns the finished games
func (e *Engine) History() *History { return e.history }

// Snapshot returns the latest published state
func (e *Engine) Snapshot() Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.snap
}

// Control path. These only queue work for the loop.

// SetParameter queues a host parameter write
func (e *Engine) SetParameter(id game.ParamID, v float32) {
	e.enqueue(command{kind: cmdParam, id: id, value: v})
}

// Start queues a start request
func (e *Engine) Start() { e.enqueue(command{kind: cmdStart}) }

// Stop queues a stop request
func (e *Engine) Stop() { e.enqueue(command{kind: cmdStop}) }

// SetConfig queues a configuration change
func (e *Engine) SetConfig(c game.Config) { e.enqueue(command{kind: cmdConfig, cfg: c}) }

// SetTiming queues a timing change
func (e *Engine) SetTiming(t game.Timing) { e.enqueue(command{kind: cmdTiming, timing: t}) }

func (e *Engine) enqueue(c command) {
	select {
	case e.commands <- c:
	default:
		debug.Log("engine", "command queue full, dropping %d", c.kind)
	}
}

// Note queues player input; its Time places it inside the next block
func (e *Engine) Note(evt midi.NoteEvent) {
	select {
	case e.input <- evt:
	default:
		debug.Log("engine", "input queue full, dropping note %d", evt.Note)
	}
}

// Run drives the game at block cadence until ctx is done (blocking - run in
// goroutine). Active notes are released on the way out.
func (e *Engine) Run(ctx context.Context) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	period := time.Duration(float64(time.Second) * float64(e.opts.HostBlock) / e.opts.SampleRate)
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	debug.Log("engine", "running block=%d rate=%.0f period=%v", e.opts.HostBlock, e.opts.SampleRate, period)

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			e.shutdown()
			return
		case now := <-ticker.C:
			e.Step(e.opts.HostBlock, e.collect(last))
			last = now
		}
	}
}

// shutdown stops a running game, silences any free-play note and sends the
// resulting note-offs
func (e *Engine) shutdown() {
	g := e.plugin.Game()
	g.Stop()
	g.Release(0)
	e.Step(1, nil)
}

// collect drains queued input, placing each note at the frame matching its
// arrival since blockStart
func (e *Engine) collect(blockStart time.Time) []midi.Event {
	e.events = e.events[:0]
	for {
		select {
		case n := <-e.input:
			e.events = append(e.events, noteToEvent(n, blockStart, e.opts.SampleRate, e.opts.HostBlock))
		default:
			slices.SortStableFunc(e.events, func(a, b midi.Event) int {
				return int(a.Frame) - int(b.Frame)
			})
			return e.events
		}
	}
}

func noteToEvent(n midi.NoteEvent, blockStart time.Time, rate float64, frames uint32) midi.Event {
	offset := n.Time.Sub(blockStart).Seconds() * rate
	frame := uint32(0)
	if offset > 0 {
		frame = min(uint32(offset), frames-1)
	}
	evt := midi.Event{Frame: frame, Type: midi.NoteOff, Channel: n.Channel, Note: n.Note}
	if n.On {
		evt.Type = midi.NoteOn
		evt.Velocity = n.Velocity
	}
	return evt
}

// Step applies queued commands, runs one block and sends its output. It is
// what Run calls every period and must only be called from one goroutine.
func (e *Engine) Step(frames uint32, in []midi.Event) []midi.Event {
	e.drain()
	out := e.plugin.Run(frames, in)
	if dropped := e.plugin.Dropped(); dropped > 0 {
		debug.Log("engine", "dropped %d output events", dropped)
	}
	if err := e.port.Send(out); err != nil {
		debug.Log("midi", "send failed: %v", err)
	}
	e.observe()
	return out
}

func (e *Engine) drain() {
	for {
		select {
		case c := <-e.commands:
			e.apply(c)
			e.observe()
		default:
			return
		}
	}
}

func (e *Engine) apply(c command) {
	g := e.plugin.Game()
	switch c.kind {
	case cmdParam:
		if !e.plugin.SetParameter(c.id, c.value) {
			debug.Log("engine", "parameter %d refused", c.id)
		}
	case cmdStart:
		// a held toggle would swallow the edge
		g.SetStart(false)
		g.SetStart(true)
	case cmdStop:
		g.SetStart(false)
		g.Stop()
	case cmdConfig:
		g.SetConfig(c.cfg)
	case cmdTiming:
		g.SetTiming(c.timing)
	}
}

// observe logs transitions, records finished games and publishes a snapshot
func (e *Engine) observe() {
	g := e.plugin.Game()
	t := g.Telemetry()
	prev := e.prev
	e.prev = t

	if t.Status != prev.Status {
		if prev.Status.IsIdle() && t.Status.IsRunning() {
			e.session = uuid.New()
			e.started = g.Time()
			debug.Log("game", "%s started root=%d notes=%d", e.session, t.EffectiveRoot, t.EffectiveNbNotes)
		}
		if t.Status == game.GameOver {
			completed, ending := g.LastGame()
			e.history.Add(Record{
				ID:      e.session,
				Start:   e.started,
				End:     g.Time(),
				Rounds:  completed,
				Misses:  t.NbMiss,
				MaxMiss: t.MaxMiss,
				Ending:  ending,
			})
			debug.Log("game", "%s over: %s after %d rounds (best %d)", e.session, ending, completed, t.MaxRound)
		}
		debug.Log("status", "%s -> %s", prev.Status, t.Status)
		if e.opts.OnTransition != nil {
			e.opts.OnTransition(Transition{
				Time:    g.Time(),
				Session: e.session,
				From:    prev.Status,
				To:      t.Status,
				Round:   t.Round,
				NbMiss:  t.NbMiss,
			})
		}
	}
	if t.Round != prev.Round {
		debug.Log("round", "round %d", t.Round)
	}
	if t.NbMiss != prev.NbMiss || t.MaxMiss != prev.MaxMiss {
		debug.Log("miss", "%d/%d", t.NbMiss, t.MaxMiss)
	}

	e.publish(t.Round != prev.Round || t.Status != prev.Status)
}

func (e *Engine) publish(sequenceChanged bool) {
	g := e.plugin.Game()
	e.mu.Lock()
	changed := e.snap.Telemetry != e.prev || e.snap.Config != g.Config() ||
		e.snap.Start != g.StartToggle() || e.snap.Timing != g.Timing()
	e.snap.Telemetry = e.prev
	e.snap.Config = g.Config()
	e.snap.Timing = g.Timing()
	e.snap.Start = g.StartToggle()
	e.snap.Session = e.session
	e.snap.Time = g.Time()
	e.snap.Games = e.history.Len()
	if sequenceChanged {
		e.snap.Sequence = slices.Clone(g.Sequence())
	}
	e.mu.Unlock()

	if changed {
		e.notifyUpdate()
	}
}

func (e *Engine) notifyUpdate() {
	select {
	case e.UpdateChan <- struct{}{}:
	default:
	}
}
