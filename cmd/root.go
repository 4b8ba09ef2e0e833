package cmd

import (
	"time"

	"simon-piano/config"
	"simon-piano/debug"
	"simon-piano/engine"

	"github.com/spf13/cobra"
)

var (
	configPath string
	debugLog   bool
	seed       uint32
	inPort     string
	outPort    string
)

var rootCmd = &cobra.Command{
	Use:   "simon-piano",
	Short: "Repeat-the-sequence memory game for MIDI keyboards",
	Long: `simon-piano plays a growing sequence of notes on a MIDI output and
waits for you to play it back on a keyboard or a Launchpad. Every round
adds one note; too many wrong notes end the game.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return play(cmd)
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "config file (default ~/.config/simon-piano/config.json)")
	flags.BoolVar(&debugLog, "debug", false, "write debug.log next to the config file")
	flags.Uint32Var(&seed, "seed", 0, "random seed for sequences (0 derives one from the clock)")
	flags.StringVar(&inPort, "in", "", "keyboard input port (substring)")
	flags.StringVar(&outPort, "out", "", "MIDI output port (substring)")
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

// loadConfig reads the config file and applies flag overrides
func loadConfig() (*config.Config, string, error) {
	path := configPath
	if path == "" {
		var err error
		if path, err = config.ConfigPath(); err != nil {
			return nil, "", err
		}
	}

	cfg, err := config.LoadFile(path)
	if err != nil {
		return nil, "", err
	}
	if seed != 0 {
		cfg.Seed = seed
	}
	if inPort != "" {
		cfg.MIDI.Input = inPort
	}
	if outPort != "" {
		cfg.MIDI.Output = outPort
	}

	if debugLog {
		dir, err := config.ConfigDir()
		if err != nil {
			return nil, "", err
		}
		if err := debug.Enable(dir); err != nil {
			return nil, "", err
		}
	}
	return cfg, path, nil
}

// engineOptions maps the config onto the engine
func engineOptions(cfg *config.Config) engine.Options {
	opts := engine.DefaultOptions()
	opts.SampleRate = cfg.Audio.SampleRate
	opts.HostBlock = cfg.Audio.HostBlock
	opts.BlockSize = cfg.Audio.BlockSize
	opts.Timing = cfg.GameTiming()
	opts.Config = cfg.GameConfig()
	opts.Seed = cfg.Seed
	if opts.Seed == 0 {
		opts.Seed = uint32(time.Now().UnixNano())
	}
	return opts
}
