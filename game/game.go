package game

import "time"

const (
	// MaxRound bounds the sequence length; reaching it ends the game
	MaxRound = 128
	// MaxNote is the highest MIDI note number
	MaxNote = 127
	// NoNote marks the absence of a sounding note
	NoNote = -1
	// InstructionVelocity is used for the notes the game plays itself
	InstructionVelocity = 127
	// InstructionChannel is used for the notes the game plays itself
	InstructionChannel = 0
)

// Timing holds the phase durations of the scheduler
type Timing struct {
	NoteInterval time.Duration // silence before each instruction note (and before the first)
	NoteDuration time.Duration // how long each instruction note is held
	FeedbackHold time.Duration // red cue after a lost round; zero ends the game on release
}

// DefaultTiming returns one second of silence and one second of hold
func DefaultTiming() Timing {
	return Timing{
		NoteInterval: time.Second,
		NoteDuration: time.Second,
	}
}

// Config is the musical configuration edited by the host or the user.
// It is never reset by a new game.
type Config struct {
	Root          int
	NbNotes       int
	Scale         Scale
	ShallNotPass  bool
	RoundsForMiss int
}

// DefaultConfig returns one chromatic octave from middle C
func DefaultConfig() Config {
	return Config{
		Root:          60,
		NbNotes:       12,
		Scale:         FullScale(),
		RoundsForMiss: 1,
	}
}

// Output receives the MIDI produced by the game. Frame is the offset within
// the block being processed.
type Output interface {
	NoteOn(note, velocity, channel uint8, frame uint32)
	NoteOff(note, channel uint8, frame uint32)
}

// Telemetry is the read-only view of the game published to host and UI
type Telemetry struct {
	EffectiveRoot    int
	EffectiveNbNotes int
	EffectiveScale   Scale
	Status           Status
	CurNote          int
	Round            int
	Step             int
	NbMiss           int
	MaxMiss          int
	MaxRound         int
}

// Game is the repeat-the-sequence state machine. It is driven from the audio
// callback: Process once per block, NoteOn/NoteOff at event offsets. None of
// its methods allocate or block. Callers serialize all calls.
type Game struct {
	cfg    Config
	start  bool
	timing Timing
	out    Output

	// frozen while a game runs
	effRoot    int
	effNbNotes int
	effScale   Scale

	status     Status
	round      int
	sequence   [MaxRound]int
	step       int // next instruction note, then next note expected from the player
	curNote    int
	curChannel uint8
	curInput   int  // raw key that sounded curNote, NoNote for instruction notes
	lost       bool // miss budget exceeded, game ends on release
	budget     MissBudget
	maxRound   int

	lastCompleted int
	lastEnding    Ending

	clock    Clock
	rando    Rando
	interval uint64 // thresholds in samples
	duration uint64
	hold     uint64
}

// New creates an idle game writing to out
func New(out Output, seed uint32, sampleRate float64) *Game {
	g := &Game{
		cfg:      DefaultConfig(),
		timing:   DefaultTiming(),
		out:      out,
		status:   Waiting,
		curNote:  NoNote,
		curInput: NoNote,
		clock:    NewClock(sampleRate),
		rando:    NewRando(seed),
	}
	g.budget.RoundsForMiss = g.cfg.RoundsForMiss
	g.updateThresholds()
	g.reset()
	g.syncIdle()
	return g
}

// SetOutput replaces the MIDI sink
func (g *Game) SetOutput(out Output) { g.out = out }

// SetSampleRate changes the rate at which Process advances time
func (g *Game) SetSampleRate(rate float64) {
	g.clock.SetRate(rate)
	g.updateThresholds()
}

// SetTiming changes the phase durations
func (g *Game) SetTiming(t Timing) {
	g.timing = t
	g.updateThresholds()
}

// Timing returns the phase durations
func (g *Game) Timing() Timing { return g.timing }

// Seed restarts the random source used for sequence draws
func (g *Game) Seed(seed uint32) { g.rando.Seed(seed) }

func (g *Game) updateThresholds() {
	g.interval = g.clock.Samples(g.timing.NoteInterval)
	g.duration = g.clock.Samples(g.timing.NoteDuration)
	g.hold = g.clock.Samples(g.timing.FeedbackHold)
}

// Config returns the current musical configuration
func (g *Game) Config() Config { return g.cfg }

// SetConfig replaces the musical configuration. A running game keeps its
// frozen copy until it ends.
func (g *Game) SetConfig(c Config) {
	g.cfg = c
}

// Status returns the current phase
func (g *Game) Status() Status { return g.status }

// Sequence returns the notes drawn so far. The slice aliases internal state
// and is only valid until the next call on g.
func (g *Game) Sequence() []int { return g.sequence[:g.round] }

// Time returns the seconds processed since creation
func (g *Game) Time() float64 { return g.clock.Now() }

// Telemetry returns a snapshot of the output values
func (g *Game) Telemetry() Telemetry {
	return Telemetry{
		EffectiveRoot:    g.effRoot,
		EffectiveNbNotes: g.effNbNotes,
		EffectiveScale:   g.effScale,
		Status:           g.status,
		CurNote:          g.curNote,
		Round:            g.round,
		Step:             g.step,
		NbMiss:           g.budget.NbMiss(),
		MaxMiss:          g.budget.MaxMiss(),
		MaxRound:         g.maxRound,
	}
}

// SetStart feeds the start toggle. Only a false to true edge acts: it
// requests a new game. Hosts may pulse the toggle, so stopping goes through
// Stop.
func (g *Game) SetStart(on bool) {
	if on && !g.start {
		g.Start()
	}
	g.start = on
}

// LastGame reports how the most recent game ended and how many rounds the
// player completed in it
func (g *Game) LastGame() (completed int, ending Ending) {
	return g.lastCompleted, g.lastEnding
}

// StartToggle returns the last value given to SetStart
func (g *Game) StartToggle() bool { return g.start }

// Start begins a new game. It is refused while a game runs or when no pitch
// class is enabled.
func (g *Game) Start() bool {
	if g.status.IsRunning() || !g.cfg.Scale.Any() {
		return false
	}
	g.release(0)
	g.syncIdle()
	g.reset()
	g.budget.Reset(g.cfg.RoundsForMiss)
	g.lost = false
	g.status = Starting
	g.clock.Mark()
	return true
}

// Stop aborts a running game
func (g *Game) Stop() bool {
	if !g.status.IsRunning() {
		return false
	}
	g.gameOver(0, g.completed(), EndStopped)
	return true
}

// NoteOn handles a note pressed by the player
func (g *Game) NoteOn(note, velocity, channel uint8, frame uint32) {
	n, ok := g.playerNote(note)
	if !ok {
		return
	}

	switch {
	case g.status.IsIdle():
		g.sound(note, n, velocity, channel, frame)
	case g.status.IsPlaying():
		g.sound(note, n, velocity, channel, frame)
		g.judge(n)
	}
}

// NoteOff handles a note released by the player. Only the release of the
// key that sounded the current note matters, matched on the raw key and
// channel.
func (g *Game) NoteOff(note, channel uint8, frame uint32) {
	if g.curInput == NoNote || int(note) != g.curInput || channel != g.curChannel {
		return
	}

	switch {
	case g.status.IsIdle():
		g.release(frame)
	case g.status.IsPlaying():
		g.release(frame)
		if g.lost {
			if g.hold > 0 {
				g.status = FeedbackIncorrect
				g.clock.Mark()
			} else {
				g.gameOver(frame, g.completed(), EndLost)
			}
			return
		}
		g.status = PlayingWait
		if g.step >= g.round {
			g.newRound(frame)
		}
	}
}

// Process advances the game by nbSamples. frame is the offset of the first
// sample within the host block and is used to stamp emitted events.
func (g *Game) Process(nbSamples, frame uint32) {
	if g.status.IsIdle() {
		g.syncIdle()
	}

	for i := uint32(0); i < nbSamples; i++ {
		g.clock.Tick()
		f := frame + i

		switch g.status {
		case Starting:
			if g.clock.Due(g.interval) {
				g.newRound(f)
			}
		case Instructions:
			if g.curNote >= 0 {
				if g.clock.Due(g.duration) {
					g.clock.Mark()
					g.release(f)
				}
			} else if g.clock.Due(g.interval) {
				g.clock.Mark()
				g.nextNote(f)
			}
		case FeedbackIncorrect:
			if g.clock.Due(g.hold) {
				g.gameOver(f, g.completed(), EndLost)
			}
		}
	}
}

// playerNote folds an incoming note and applies scale gating
func (g *Game) playerNote(note uint8) (int, bool) {
	n := Fold(int(note), g.effRoot, g.effNbNotes)
	// the octave-rounded window may poke above the MIDI range
	for n > MaxNote {
		n -= 12
	}
	if g.cfg.ShallNotPass && !g.effScale.Contains(n) {
		return 0, false
	}
	return n, true
}

func (g *Game) judge(n int) {
	if g.lost || g.step >= g.round {
		return
	}
	if n == g.sequence[g.step] {
		g.status = PlayingCorrect
		g.step++
		return
	}
	g.status = PlayingIncorrect
	if g.budget.RecordMiss() {
		g.lost = true
	}
}

// sound starts the folded note n for the key input, releasing the previous
// note first
func (g *Game) sound(input uint8, n int, velocity, channel uint8, frame uint32) {
	g.release(frame)
	g.out.NoteOn(uint8(n), velocity, channel, frame)
	g.curNote = n
	g.curChannel = channel
	g.curInput = int(input)
}

// Release silences the sounding note whatever the status. A running game is
// left waiting for input; it is meant for shutdown after Stop.
func (g *Game) Release(frame uint32) { g.release(frame) }

func (g *Game) release(frame uint32) {
	if g.curNote < 0 {
		return
	}
	g.out.NoteOff(uint8(g.curNote), g.curChannel, frame)
	g.curNote = NoNote
	g.curInput = NoNote
}

func (g *Game) newRound(frame uint32) {
	g.release(frame)
	if g.round >= MaxRound {
		g.gameOver(frame, g.round, EndMaxRound)
		return
	}
	g.status = Instructions
	g.step = 0
	g.sequence[g.round] = Draw(&g.rando, g.effRoot, g.effNbNotes, g.effScale)
	g.budget.MaybeGrant(g.round)
	g.round++
	g.clock.Mark()
}

func (g *Game) nextNote(frame uint32) {
	if g.step >= g.round {
		g.status = PlayingWait
		g.step = 0
		return
	}
	note := g.sequence[g.step]
	g.curNote = note
	g.curChannel = InstructionChannel
	g.curInput = NoNote
	g.out.NoteOn(uint8(note), InstructionVelocity, InstructionChannel, frame)
	g.step++
}

// completed is the number of rounds fully reproduced by the player
func (g *Game) completed() int {
	if g.round == 0 {
		return 0
	}
	return g.round - 1
}

func (g *Game) gameOver(frame uint32, completed int, ending Ending) {
	g.release(frame)
	g.status = GameOver
	g.lost = false
	g.lastCompleted = completed
	g.lastEnding = ending
	if completed > g.maxRound {
		g.maxRound = completed
	}
}

func (g *Game) reset() {
	for i := range g.sequence {
		g.sequence[i] = NoNote
	}
	g.round = 0
	g.step = 0
}

// syncIdle copies the configuration into its effective counterpart
func (g *Game) syncIdle() {
	g.effRoot = g.cfg.Root
	g.effNbNotes = min(g.cfg.NbNotes, MaxNote+1-g.effRoot)
	if g.effNbNotes < 1 {
		g.effNbNotes = 1
	}
	g.effScale = g.cfg.Scale
}
