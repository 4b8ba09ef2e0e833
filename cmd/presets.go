package cmd

import (
	"fmt"
	"strings"

	"simon-piano/game"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(presetsCmd)
}

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List the built-in presets",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		for _, p := range game.Presets {
			fmt.Fprintf(out, "%-18s %-5s %-5s %s\n", p.Name, field(p.Root, game.NoteName), field(p.NbNotes, nil), scalePattern(p.Scale))
		}
	},
}

func field(v int, format func(int) string) string {
	switch {
	case v < 0:
		return "*"
	case format != nil:
		return format(v)
	}
	return fmt.Sprint(v)
}

func scalePattern(scale [12]int) string {
	var b strings.Builder
	for pc, v := range scale {
		switch v {
		case 1:
			b.WriteString(game.NoteNames[pc])
		case 0:
			b.WriteString(strings.Repeat(".", len(game.NoteNames[pc])))
		default:
			b.WriteString("*")
		}
		b.WriteString(" ")
	}
	return strings.TrimSpace(b.String())
}
