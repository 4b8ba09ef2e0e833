package cmd

import (
	"fmt"
	"os"
	"time"

	"simon-piano/engine"

	"github.com/spf13/cobra"
)

var (
	recordPath string
	tail       time.Duration
)

func init() {
	replayCmd.Flags().StringVar(&recordPath, "record", "", "write the game's MIDI output to this SMF file")
	replayCmd.Flags().DurationVar(&tail, "tail", 2*time.Second, "keep running this long after the last note")
	rootCmd.AddCommand(replayCmd)
}

var replayCmd = &cobra.Command{
	Use:   "replay <file.mid>",
	Short: "Play a MIDI file into a new game without a terminal UI",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig()
		if err != nil {
			return err
		}

		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		notes, err := engine.ReadNotes(f)
		if err != nil {
			return fmt.Errorf("%s: %w", args[0], err)
		}

		out := cmd.OutOrStdout()
		opts := engineOptions(cfg)
		opts.OnTransition = func(tr engine.Transition) {
			fmt.Fprintf(out, "%8.3fs  %-12s -> %-12s round %3d  miss %d\n", tr.Time, tr.From, tr.To, tr.Round, tr.NbMiss)
		}

		res, err := engine.New(opts).Replay(notes, tail)
		if err != nil {
			return err
		}

		t := res.Telemetry
		fmt.Fprintf(out, "\nplayed %d notes in %v\n", len(notes), res.Duration.Round(time.Millisecond))
		for _, g := range res.Games {
			fmt.Fprintf(out, "game %s: %d rounds, %d/%d misses, %s\n", g.ID, g.Rounds, g.Misses, g.MaxMiss, g.Ending)
		}
		fmt.Fprintf(out, "status %s  round %d  best %d\n", t.Status, t.Round, t.MaxRound)

		if recordPath != "" {
			rf, err := os.Create(recordPath)
			if err != nil {
				return err
			}
			defer rf.Close()
			if err := engine.WriteSMF(rf, res.Output, opts.SampleRate); err != nil {
				return err
			}
			fmt.Fprintf(out, "recorded %d events to %s\n", len(res.Output), recordPath)
		}
		return nil
	},
}
