// Package plugin adapts the game to a host audio callback: it splits host
// blocks into fixed sub-blocks, places MIDI input at its frame and gathers
// the MIDI the game emits.
package plugin

import (
	"simon-piano/game"
	"simon-piano/midi"
)

// BlockSize is the largest run of samples handed to the game at once
const BlockSize = 128

// RawEvent is undecoded MIDI as delivered by a host
type RawEvent struct {
	Frame uint32
	Size  uint8
	Data  [4]byte
}

// Raw builds a RawEvent. Only four bytes are kept but Size records the
// full length so oversized messages are rejected by RunRaw.
func Raw(frame uint32, data ...byte) RawEvent {
	e := RawEvent{Frame: frame, Size: uint8(min(len(data), 255))}
	copy(e.Data[:], data)
	return e
}

// Plugin owns a game and its output buffer. Like the game it is not safe
// for concurrent use.
type Plugin struct {
	game      *game.Game
	out       EventBuffer
	blockSize uint32
	decoded   [MaxEvents]midi.Event
}

// New creates a plugin around a fresh game
func New(seed uint32, sampleRate float64) *Plugin {
	p := &Plugin{blockSize: BlockSize}
	p.game = game.New(&p.out, seed, sampleRate)
	return p
}

// Game gives direct access to the core
func (p *Plugin) Game() *game.Game { return p.game }

// SetBlockSize changes the sub-block size; zero restores BlockSize
func (p *Plugin) SetBlockSize(n uint32) {
	if n == 0 {
		n = BlockSize
	}
	p.blockSize = n
}

// SetSampleRate forwards a host rate change
func (p *Plugin) SetSampleRate(rate float64) { p.game.SetSampleRate(rate) }

// ParameterCount is the number of host parameters
func (p *Plugin) ParameterCount() int { return int(game.ParamCount) }

// Parameter reads a host parameter
func (p *Plugin) Parameter(id game.ParamID) float32 { return p.game.Parameter(id) }

// SetParameter writes a host parameter; outputs are refused
func (p *Plugin) SetParameter(id game.ParamID, v float32) bool {
	return p.game.SetParameter(id, v)
}

// RunRaw decodes host MIDI and runs one host block. Malformed events and
// anything but note on/off are dropped.
func (p *Plugin) RunRaw(frames uint32, in []RawEvent) []midi.Event {
	n := 0
	for i := range in {
		e := &in[i]
		if e.Size > 4 || n == len(p.decoded) {
			continue
		}
		if evt, ok := midi.Decode(e.Data[:e.Size], e.Frame); ok {
			p.decoded[n] = evt
			n++
		}
	}
	return p.Run(frames, p.decoded[:n])
}

// Run processes one host block of frames with its MIDI input and returns
// the emitted MIDI, valid until the next call. Events emitted by calls made
// since the previous Run come first. Input is handled at its
// exact frame in delivery order; an event stamped before one already
// handled is taken at the current position, and events past the block end
// are taken after the last frame.
func (p *Plugin) Run(frames uint32, in []midi.Event) []midi.Event {

	var pos uint32
	next := 0
	for pos < frames {
		end := min(pos+p.blockSize, frames)
		for next < len(in) && in[next].Frame < end {
			if f := in[next].Frame; f > pos {
				p.game.Process(f-pos, pos)
				pos = f
			}
			p.dispatch(in[next], pos)
			next++
		}
		if end > pos {
			p.game.Process(end-pos, pos)
			pos = end
		}
	}

	last := uint32(0)
	if frames > 0 {
		last = frames - 1
	}
	for ; next < len(in); next++ {
		p.dispatch(in[next], last)
	}
	return p.out.Flush()
}

func (p *Plugin) dispatch(e midi.Event, frame uint32) {
	switch e.Type {
	case midi.NoteOn:
		p.game.NoteOn(e.Note, e.Velocity, e.Channel, frame)
	case midi.NoteOff:
		p.game.NoteOff(e.Note, e.Channel, frame)
	}
}

// Dropped reports output events lost to a full buffer in the last Run
func (p *Plugin) Dropped() int { return p.out.Dropped() }
