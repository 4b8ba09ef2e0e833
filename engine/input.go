package engine

import (
	"time"

	"simon-piano/debug"
	"simon-piano/game"
	"simon-piano/midi"
)

// Attach forwards a controller's input to the game until its channels close.
// Launchpad pads play notes upward from the effective root and the grid
// mirrors the game.
func (e *Engine) Attach(c midi.Controller) {
	debug.Log("engine", "attach %s (%s)", c.ID(), c.Type())

	if lp, ok := c.(*midi.LaunchpadController); ok {
		e.lpMu.Lock()
		e.launchpads[c.ID()] = lp
		e.lpMu.Unlock()
		lp.Clear()
	}

	go func() {
		for n := range c.NoteEvents() {
			e.Note(n)
		}
	}()
	go func() {
		for p := range c.PadEvents() {
			if n, ok := e.padNote(p, time.Now()); ok {
				e.Note(n)
			}
		}
	}()
}

// Detach forgets a controller once it is gone
func (e *Engine) Detach(id string) {
	e.lpMu.Lock()
	delete(e.launchpads, id)
	e.lpMu.Unlock()
	debug.Log("engine", "detach %s", id)
}

// padNote maps a pad to the note it plays with the current effective root
func (e *Engine) padNote(p midi.PadEvent, at time.Time) (midi.NoteEvent, bool) {
	root := e.Snapshot().Telemetry.EffectiveRoot
	note := root + midi.PadOffset(p.Row, p.Col)
	if note > game.MaxNote {
		return midi.NoteEvent{}, false
	}
	return midi.NoteEvent{
		On:       p.Velocity > 0,
		Note:     uint8(note),
		Velocity: p.Velocity,
		Time:     at,
	}, true
}
