package widgets

import (
	"fmt"
	"strings"

	"simon-piano/midi"

	"github.com/charmbracelet/lipgloss"
)

// RenderPad renders a single colored pad
func RenderPad(color [3]uint8) string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(rgbToHex(color)))
	return style.Render("■")
}

// RenderPadRow renders a row of colored pads with spacing
func RenderPadRow(colors [][3]uint8) string {
	var out strings.Builder
	for i, c := range colors {
		if i > 0 {
			out.WriteString(" ")
		}
		out.WriteString(RenderPad(c))
	}
	return out.String()
}

// RenderPadGrid renders an 8x8 grid of pads (row 0 at bottom, row 7 at top).
// Unlit pads are drawn as off.
func RenderPadGrid(grid midi.Grid, off [3]uint8) string {
	var lines []string
	for row := 7; row >= 0; row-- {
		colors := make([][3]uint8, 8)
		for col := range colors {
			colors[col] = grid[row][col]
			if colors[col] == ([3]uint8{}) {
				colors[col] = off
			}
		}
		lines = append(lines, RenderPadRow(colors))
	}
	return strings.Join(lines, "\n")
}

// RenderLegendItem renders a single legend item: "■ Name - description"
func RenderLegendItem(color [3]uint8, name, desc string) string {
	return fmt.Sprintf("  %s %s - %s", RenderPad(color), name, desc)
}

// LegendItem is one color explained next to the pad grid
type LegendItem struct {
	Color [3]uint8
	Name  string
	Desc  string
}

// RenderLegend stacks legend items, one per line
func RenderLegend(items []LegendItem) string {
	lines := make([]string, len(items))
	for i, it := range items {
		lines[i] = RenderLegendItem(it.Color, it.Name, it.Desc)
	}
	return strings.Join(lines, "\n")
}

// RenderKeyHelp lays key binding sections out side by side
func RenderKeyHelp(sections []KeySection) string {
	blocks := make([]string, 0, 2*len(sections))
	for i, sec := range sections {
		var lines []string
		if sec.Title != "" {
			lines = append(lines, sec.Title)
		}
		for _, k := range sec.Keys {
			lines = append(lines, fmt.Sprintf("  %-12s %s", k.Key, k.Desc))
		}
		if i > 0 {
			blocks = append(blocks, "    ")
		}
		blocks = append(blocks, strings.Join(lines, "\n"))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, blocks...)
}

// KeySection groups related key bindings
type KeySection struct {
	Title string
	Keys  []KeyBinding
}

// KeyBinding is a single key and its description
type KeyBinding struct {
	Key  string
	Desc string
}

func rgbToHex(c [3]uint8) string {
	return fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2])
}
