package engine

import (
	"fmt"
	"io"
	"slices"
	"time"

	"simon-piano/debug"
	"simon-piano/game"
	"simon-piano/midi"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// TimedNote is a note event at an absolute time
type TimedNote struct {
	At time.Duration
	midi.NoteEvent
}

// TimedEvent is an emitted event with its frame counted from the start of
// the replay
type TimedEvent struct {
	Abs uint64
	midi.Event
}

// ReadNotes collects the note events of every track of a Standard MIDI File,
// ordered by time with releases first on ties
func ReadNotes(r io.Reader) ([]TimedNote, error) {
	s, err := smf.ReadFrom(r)
	if err != nil {
		return nil, fmt.Errorf("read smf: %w", err)
	}

	var notes []TimedNote
	for _, track := range s.Tracks {
		var absTicks int64
		for _, ev := range track {
			absTicks += int64(ev.Delta)
			at := time.Duration(s.TimeAt(absTicks)) * time.Microsecond

			var channel, key, velocity uint8
			msg := gomidi.Message(ev.Message)
			switch {
			case msg.GetNoteStart(&channel, &key, &velocity):
				notes = append(notes, TimedNote{At: at, NoteEvent: midi.NoteEvent{On: true, Note: key, Velocity: velocity, Channel: channel}})
			case msg.GetNoteEnd(&channel, &key):
				notes = append(notes, TimedNote{At: at, NoteEvent: midi.NoteEvent{Note: key, Channel: channel}})
			}
		}
	}
	if len(notes) == 0 {
		return nil, ErrNoInput
	}

	slices.SortStableFunc(notes, func(a, b TimedNote) int {
		if a.At != b.At {
			return int(a.At - b.At)
		}
		switch {
		case !a.On && b.On:
			return -1
		case a.On && !b.On:
			return 1
		}
		return 0
	})
	return notes, nil
}

// ReplayResult is the outcome of a headless replay
type ReplayResult struct {
	Telemetry game.Telemetry
	Sequence  []int
	Games     []Record
	Output    []TimedEvent
	Duration  time.Duration
}

// Replay starts a game and plays notes into it as the player, block by block
// at the configured rate without waiting on the wall clock. After the last
// note it keeps running for tail, then stops a game still in progress.
// It must not run alongside Run.
func (e *Engine) Replay(notes []TimedNote, tail time.Duration) (ReplayResult, error) {
	if len(notes) == 0 {
		return ReplayResult{}, ErrNoInput
	}

	rate := e.opts.SampleRate
	block := uint64(e.opts.HostBlock)
	toFrame := func(d time.Duration) uint64 { return uint64(d.Seconds()*rate + 0.5) }

	end := toFrame(notes[len(notes)-1].At + tail)
	var res ReplayResult

	e.Start()
	next := 0
	for pos := uint64(0); ; pos += block {
		e.events = e.events[:0]
		for next < len(notes) {
			f := toFrame(notes[next].At)
			if f >= pos+block {
				break
			}
			n := notes[next].NoteEvent
			evt := midi.Event{Frame: uint32(f - min(f, pos)), Type: midi.NoteOff, Channel: n.Channel, Note: n.Note}
			if n.On {
				evt.Type = midi.NoteOn
				evt.Velocity = n.Velocity
			}
			e.events = append(e.events, evt)
			next++
		}

		for _, out := range e.Step(uint32(block), e.events) {
			res.Output = append(res.Output, TimedEvent{Abs: pos + uint64(out.Frame), Event: out})
		}

		running := e.plugin.Game().Status().IsRunning()
		if next == len(notes) && (!running || pos+block >= end) {
			if running {
				debug.Log("replay", "input exhausted, stopping")
				e.Stop()
				for _, out := range e.Step(1, nil) {
					res.Output = append(res.Output, TimedEvent{Abs: pos + block + uint64(out.Frame), Event: out})
				}
			}
			res.Duration = time.Duration(float64(pos+block) / rate * float64(time.Second))
			break
		}
	}

	res.Telemetry = e.plugin.Game().Telemetry()
	res.Sequence = slices.Clone(e.plugin.Game().Sequence())
	res.Games = e.history.All()
	return res, nil
}

// WriteSMF stores emitted events as a single track file at 120 BPM
func WriteSMF(w io.Writer, events []TimedEvent, sampleRate float64) error {
	ticks := smf.MetricTicks(960)
	s := smf.New()
	s.TimeFormat = ticks

	var tr smf.Track
	tr.Add(0, smf.MetaTempo(120))

	var last uint32
	for _, ev := range events {
		at := time.Duration(float64(ev.Abs) / sampleRate * float64(time.Second))
		abs := ticks.Ticks(120, at)
		tr.Add(abs-min(abs, last), ev.Message())
		last = max(abs, last)
	}
	tr.Close(0)

	if err := s.Add(tr); err != nil {
		return fmt.Errorf("add track: %w", err)
	}
	if _, err := s.WriteTo(w); err != nil {
		return fmt.Errorf("write smf: %w", err)
	}
	return nil
}
