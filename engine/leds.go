package engine

import (
	"context"
	"time"

	"simon-piano/debug"
	"simon-piano/game"
	"simon-piano/midi"
	"simon-piano/widgets"
)

// LED refresh rate
const ledFPS = 30

var (
	ledScale   = [3]uint8{40, 60, 120}   // dim blue
	ledRoot    = [3]uint8{150, 0, 200}   // purple
	ledPlaying = [3]uint8{255, 255, 255} // instruction or free play
	ledCorrect = [3]uint8{0, 255, 0}
	ledWrong   = [3]uint8{255, 0, 0}
)

// LEDLegend explains the colors used by LEDGrid
func LEDLegend() []widgets.LegendItem {
	return []widgets.LegendItem{
		{Color: ledRoot, Name: "root", Desc: "root of the scale"},
		{Color: ledScale, Name: "scale", Desc: "note in scale"},
		{Color: ledPlaying, Name: "note", Desc: "sounding note"},
		{Color: ledCorrect, Name: "right", Desc: "matched the sequence"},
		{Color: ledWrong, Name: "wrong", Desc: "missed"},
	}
}

// LEDGrid renders the playable window onto the grid: scale notes dim, root
// notes highlighted and the sounding note colored by the last judgement
func LEDGrid(t game.Telemetry) midi.Grid {
	var grid midi.Grid
	for offset := 0; offset < 64; offset++ {
		note := t.EffectiveRoot + offset
		if offset >= t.EffectiveNbNotes || note > game.MaxNote {
			break
		}
		row, col, _ := midi.PadAt(offset)
		switch {
		case note == t.CurNote:
			grid[row][col] = noteColor(t.Status)
		case game.PitchClass(note) == game.PitchClass(t.EffectiveRoot) && t.EffectiveScale.Contains(note):
			grid[row][col] = ledRoot
		case t.EffectiveScale.Contains(note):
			grid[row][col] = ledScale
		}
	}
	return grid
}

func noteColor(s game.Status) [3]uint8 {
	switch s {
	case game.PlayingCorrect:
		return ledCorrect
	case game.PlayingIncorrect, game.FeedbackIncorrect:
		return ledWrong
	}
	return ledPlaying
}

// RunLEDs mirrors the game on every attached Launchpad at a fixed rate
// (blocking - run in goroutine)
func (e *Engine) RunLEDs(ctx context.Context) {
	ticker := time.NewTicker(time.Second / ledFPS)
	defer ticker.Stop()

	prev := make(map[string]midi.Grid)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			grid := LEDGrid(e.Snapshot().Telemetry)

			e.lpMu.Lock()
			for id, lp := range e.launchpads {
				old, seen := prev[id]
				var err error
				if seen {
					err = lp.ShowGrid(&grid, &old)
				} else {
					err = lp.ShowGrid(&grid, nil)
				}
				if err != nil {
					debug.Log("led", "%s: %v", id, err)
					continue
				}
				prev[id] = grid
			}
			for id := range prev {
				if _, ok := e.launchpads[id]; !ok {
					delete(prev, id)
				}
			}
			e.lpMu.Unlock()
		}
	}
}
