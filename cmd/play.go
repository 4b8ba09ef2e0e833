package cmd

import (
	"context"
	"fmt"
	"time"

	"simon-piano/config"
	"simon-piano/debug"
	"simon-piano/engine"
	"simon-piano/midi"
	"simon-piano/theme"
	"simon-piano/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(playCmd)
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the game in the terminal (default)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return play(cmd)
	},
}

func play(cmd *cobra.Command) error {
	cfg, path, err := loadConfig()
	if err != nil {
		return err
	}

	palette, err := theme.LoadOrDefault(cfg.UI.Palette)
	if err != nil {
		return err
	}
	th := theme.New(palette)

	opts := engineOptions(cfg)
	if cfg.MIDI.Output != "" {
		port, err := midi.OpenPort(cfg.MIDI.Output)
		if err != nil {
			return fmt.Errorf("output: %w", err)
		}
		opts.Output = port
	}
	eng := engine.New(opts)

	saver := config.NewSaver(cfg, path, 500*time.Millisecond, func(err error) {
		debug.Log("config", "save failed: %v", err)
	})
	defer saver.Flush()

	// Create MIDI device manager (handles hot-plug)
	deviceMgr := midi.NewDeviceManager(cfg.MIDI.Input, cfg.MIDI.Launchpad)

	ctx, cancel := context.WithCancel(cmd.Context())
	engineDone := make(chan struct{})
	defer func() {
		cancel()
		<-engineDone
	}()
	go deviceMgr.Run(ctx)
	go func() {
		eng.Run(ctx)
		close(engineDone)
	}()
	go eng.RunLEDs(ctx)

	fmt.Fprintln(cmd.OutOrStdout(), "simon-piano")
	fmt.Fprintln(cmd.OutOrStdout(), "Connect MIDI devices any time - they'll be detected automatically")

	m := tui.NewModel(eng, deviceMgr, th, saver)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
