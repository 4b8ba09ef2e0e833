package midi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	gomidi "gitlab.com/gomidi/midi/v2"
)

func TestPadLayout(t *testing.T) {
	assert := assert.New(t)

	for offset := 0; offset < 64; offset++ {
		row, col, ok := PadAt(offset)
		assert.True(ok)
		assert.Equal(offset, PadOffset(row, col))
	}
	_, _, ok := PadAt(64)
	assert.False(ok)
	_, _, ok = PadAt(-1)
	assert.False(ok)
}

func TestLaunchpadNoteMapping(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(uint8(11), rowColToNote(0, 0))
	assert.Equal(uint8(88), rowColToNote(7, 7))
	assert.Equal(uint8(91), rowColToNote(8, 0))

	row, col := noteToRowCol(45)
	assert.Equal(3, row)
	assert.Equal(4, col)
	row, col = noteToRowCol(5)
	assert.Equal(-1, row)
	assert.Equal(-1, col)
}

func TestPadEventsFilterGrid(t *testing.T) {
	lp := &LaunchpadController{padChan: make(chan PadEvent, 4)}
	lp.pad(2, 3, 100)
	lp.pad(2, 8, 100) // scene button
	lp.pad(-1, -1, 100)
	lp.pad(2, 3, 0)

	assert.Len(t, lp.padChan, 2)
	assert.Equal(t, PadEvent{Row: 2, Col: 3, Velocity: 100}, <-lp.padChan)
	assert.Equal(t, PadEvent{Row: 2, Col: 3}, <-lp.padChan)
}

func TestShowGridSendsChanges(t *testing.T) {
	var sent []gomidi.Message
	lp := &LaunchpadController{send: func(msg gomidi.Message) error {
		sent = append(sent, msg)
		return nil
	}}

	var prev, grid Grid
	grid[0][0] = [3]uint8{255, 0, 0}
	grid[7][7] = [3]uint8{0, 255, 0}
	assert.NoError(t, lp.ShowGrid(&grid, &prev))
	assert.Len(t, sent, 2)
	assert.Equal(t, gomidi.NoteOn(0, 11, 5), sent[0])

	sent = nil
	assert.NoError(t, lp.ShowGrid(&grid, nil))
	assert.Len(t, sent, 64)
}

func TestMapRGB(t *testing.T) {
	assert.Equal(t, uint8(0), mapRGBToLaunchpad([3]uint8{}))
	assert.Equal(t, uint8(5), mapRGBToLaunchpad([3]uint8{250, 0, 0}))
	assert.Equal(t, uint8(119), mapRGBToLaunchpad([3]uint8{255, 255, 255}))
}
