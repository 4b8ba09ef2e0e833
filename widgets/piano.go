package widgets

import (
	"fmt"
	"strings"

	"simon-piano/game"

	"github.com/charmbracelet/lipgloss"
)

// MaxPianoKeys is the widest keyboard drawn; wider windows are cut short
const MaxPianoKeys = 61

// PianoKeys describes the keyboard to draw
type PianoKeys struct {
	Root     int
	Count    int
	Scale    game.Scale
	Sounding int // game.NoNote for none

	Key       lipgloss.Color // in-scale keys
	Dim       lipgloss.Color // out-of-scale keys
	Highlight lipgloss.Color // sounding key
}

func isBlack(note int) bool {
	switch game.PitchClass(note) {
	case 1, 3, 6, 8, 10:
		return true
	}
	return false
}

// RenderPiano draws one column per semitone: black keys on the top line,
// white keys on the bottom line and the range below
func RenderPiano(k PianoKeys) string {
	count := min(k.Count, MaxPianoKeys, game.MaxNote+1-k.Root)
	if count <= 0 {
		return ""
	}

	var top, bottom strings.Builder
	for i := 0; i < count; i++ {
		note := k.Root + i
		color := k.Dim
		if k.Scale.Contains(note) {
			color = k.Key
		}
		if note == k.Sounding {
			color = k.Highlight
		}
		style := lipgloss.NewStyle().Foreground(color)
		if isBlack(note) {
			top.WriteString(style.Render("█"))
			bottom.WriteString(" ")
		} else {
			top.WriteString(" ")
			bottom.WriteString(style.Render("█"))
		}
	}

	first := game.NoteName(k.Root)
	last := game.NoteName(k.Root + count - 1)
	gap := max(count-len(first)-len(last), 1)
	label := first + strings.Repeat(" ", gap) + last
	if count < k.Count {
		label += fmt.Sprintf(" (+%d)", k.Count-count)
	}

	return strings.Join([]string{top.String(), bottom.String(), label}, "\n")
}

// RenderScaleRow lists the twelve pitch classes with their state. cursor
// marks the pitch class being edited, -1 for none.
func RenderScaleRow(scale game.Scale, on, off rune, cursor int, onColor, offColor, cursorColor lipgloss.Color) string {
	cells := make([]string, 12)
	for pc := 0; pc < 12; pc++ {
		glyph, color := off, offColor
		if scale[pc] {
			glyph, color = on, onColor
		}
		style := lipgloss.NewStyle().Foreground(color)
		if pc == cursor {
			style = style.Underline(true).Foreground(cursorColor)
		}
		cells[pc] = style.Render(fmt.Sprintf("%s%c", game.NoteNames[pc], glyph))
	}
	return strings.Join(cells, " ")
}

// RenderProgress shows how far the player is in the sequence without
// revealing it
func RenderProgress(round, step int, playing bool, done, pending, current rune) string {
	var b strings.Builder
	for i := 0; i < round; i++ {
		switch {
		case i < step:
			b.WriteRune(done)
		case i == step && playing:
			b.WriteRune(current)
		default:
			b.WriteRune(pending)
		}
	}
	return b.String()
}
