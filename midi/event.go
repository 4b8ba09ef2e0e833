package midi

import (
	gomidi "gitlab.com/gomidi/midi/v2"
)

// MIDI message types
const (
	NoteOn  uint8 = 0x90
	NoteOff uint8 = 0x80
	CC      uint8 = 0xB0
)

// Event is a note event positioned at a frame within an audio block
type Event struct {
	Frame    uint32
	Type     uint8 // NoteOn, NoteOff
	Channel  uint8 // 0-15
	Note     uint8
	Velocity uint8
}

// Message encodes the event for gomidi
func (e Event) Message() gomidi.Message {
	if e.Type == NoteOn {
		return gomidi.NoteOn(e.Channel&0x0F, e.Note, e.Velocity)
	}
	return gomidi.NoteOff(e.Channel&0x0F, e.Note)
}

// Bytes encodes the event as raw MIDI into buf and returns the used part
func (e Event) Bytes(buf *[3]byte) []byte {
	buf[0] = e.Type | e.Channel&0x0F
	buf[1] = e.Note & 0x7F
	buf[2] = e.Velocity & 0x7F
	if e.Type == NoteOff {
		buf[2] = 0
	}
	return buf[:]
}

// Decode reads a note event from raw MIDI bytes. Anything that is not a
// complete note on or note off is rejected; a note on with zero velocity is
// a note off.
func Decode(raw []byte, frame uint32) (Event, bool) {
	if len(raw) < 3 || len(raw) > 4 {
		return Event{}, false
	}
	msg := gomidi.Message(raw[:3])

	var ch, key, vel uint8
	switch {
	case msg.GetNoteStart(&ch, &key, &vel):
		return Event{Frame: frame, Type: NoteOn, Channel: ch, Note: key, Velocity: vel}, true
	case msg.GetNoteEnd(&ch, &key):
		return Event{Frame: frame, Type: NoteOff, Channel: ch, Note: key}, true
	}
	return Event{}, false
}
