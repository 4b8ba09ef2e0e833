package plugin

import "simon-piano/midi"

// MaxEvents bounds the events emitted during one Run
const MaxEvents = 512

// EventBuffer collects the MIDI emitted by the game into fixed storage.
// Events beyond MaxEvents are counted and dropped. After Flush the next
// write starts over, so events emitted between two runs (a start request
// releasing a note) are kept for the next one.
type EventBuffer struct {
	events  [MaxEvents]midi.Event
	n       int
	dropped int
	stale   bool
}

func (b *EventBuffer) NoteOn(note, velocity, channel uint8, frame uint32) {
	b.add(midi.Event{Frame: frame, Type: midi.NoteOn, Channel: channel, Note: note, Velocity: velocity})
}

func (b *EventBuffer) NoteOff(note, channel uint8, frame uint32) {
	b.add(midi.Event{Frame: frame, Type: midi.NoteOff, Channel: channel, Note: note})
}

func (b *EventBuffer) add(e midi.Event) {
	if b.stale {
		b.Reset()
	}
	if b.n == MaxEvents {
		b.dropped++
		return
	}
	b.events[b.n] = e
	b.n++
}

// Events returns the collected events. The slice aliases the buffer.
func (b *EventBuffer) Events() []midi.Event { return b.events[:b.n] }

// Dropped returns how many events did not fit since the last Reset
func (b *EventBuffer) Dropped() int { return b.dropped }

// Flush returns the collected events and marks them consumed. The slice
// stays valid until the next write.
func (b *EventBuffer) Flush() []midi.Event {
	if b.stale {
		b.Reset()
	}
	b.stale = true
	return b.events[:b.n]
}

// Reset empties the buffer
func (b *EventBuffer) Reset() {
	b.n = 0
	b.dropped = 0
	b.stale = false
}
