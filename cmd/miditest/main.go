package main

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"simon-piano/engine"
	"simon-piano/game"
	"simon-piano/midi"

	gomidi "gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	switch os.Args[1] {
	case "list":
		listPorts()
	case "detect":
		detect()
	case "monitor":
		monitor(os.Args[2:])
	case "leds":
		testLEDs()
	case "poll":
		pollDevices()
	default:
		usage()
	}
}

func usage() {
	fmt.Println("MIDI Test Scripts")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  list                      - List all MIDI ports")
	fmt.Println("  detect                    - Show which ports the game would use")
	fmt.Println("  monitor [root] [nbNotes]  - Print keyboard notes and where they fold")
	fmt.Println("  leds                      - Paint a demo game state on a Launchpad")
	fmt.Println("  poll                      - Poll for device changes")
}

func listPorts() {
	fmt.Println("=== MIDI Ports ===")
	fmt.Println("(waiting up to 3 seconds...)")

	ins, outs, err := midi.Ports(3 * time.Second)
	if err != nil {
		fmt.Println("\nTIMEOUT! CoreMIDI is hung.")
		fmt.Println("Fix: sudo killall coreaudiod midiserver")
		return
	}
	fmt.Println("\nInputs:")
	for i, name := range ins {
		fmt.Printf("  %d: %s\n", i, name)
	}
	fmt.Println("\nOutputs:")
	for i, name := range outs {
		fmt.Printf("  %d: %s\n", i, name)
	}
}

func detect() {
	ins, _, err := midi.Ports(3 * time.Second)
	if err != nil {
		fmt.Println(err)
		return
	}

	if kb, ok := midi.PickKeyboard(ins, os.Getenv("SIMON_KEYBOARD")); ok {
		fmt.Printf("Keyboard:  %s\n", kb)
	} else {
		fmt.Println("Keyboard:  none")
	}
	for _, name := range ins {
		switch {
		case midi.IsLaunchpad(name):
			fmt.Printf("Launchpad: %s\n", name)
		case midi.IsExcluded(name):
			fmt.Printf("Ignored:   %s\n", name)
		}
	}
}

// monitor prints every note of the keyboard with the note the game would
// hear after folding
func monitor(args []string) {
	root, nbNotes := 60, 12
	if len(args) > 0 {
		root, _ = strconv.Atoi(args[0])
	}
	if len(args) > 1 {
		nbNotes, _ = strconv.Atoi(args[1])
	}
	nbNotes = max(1, min(nbNotes, game.MaxNote+1-root))

	ins := gomidi.GetInPorts()
	var names []string
	for _, p := range ins {
		names = append(names, p.String())
	}
	name, ok := midi.PickKeyboard(names, os.Getenv("SIMON_KEYBOARD"))
	if !ok {
		fmt.Println("No keyboard found")
		return
	}
	in, err := gomidi.FindInPort(name)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	kb, err := midi.NewKeyboardController(name, in)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	defer kb.Close()

	fmt.Printf("Listening on %s, window %s..%s. Ctrl+C to exit.\n",
		name, game.NoteName(root), game.NoteName(root+nbNotes-1))

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	for {
		select {
		case <-stop:
			return
		case n := <-kb.NoteEvents():
			folded := game.Fold(int(n.Note), root, nbNotes)
			state := "off"
			if n.On {
				state = fmt.Sprintf("on  vel %3d", n.Velocity)
			}
			fmt.Printf("[%s] ch %2d %-4s -> %-4s %s\n", n.Time.Format("15:04:05.000"),
				n.Channel+1, game.NoteName(int(n.Note)), game.NoteName(folded), state)
		}
	}
}

func testLEDs() {
	ins := gomidi.GetInPorts()
	outs := gomidi.GetOutPorts()

	var lp *midi.LaunchpadController
	for _, in := range ins {
		if !midi.IsLaunchpad(in.String()) {
			continue
		}
		for _, out := range outs {
			if strings.EqualFold(out.String(), in.String()) {
				var err error
				if lp, err = midi.NewLaunchpadController(in.String(), in, out); err != nil {
					fmt.Printf("Error: %v\n", err)
					return
				}
			}
		}
	}
	if lp == nil {
		fmt.Println("No Launchpad found")
		return
	}
	defer lp.Close()

	t := game.Telemetry{
		EffectiveRoot:    60,
		EffectiveNbNotes: 24,
		EffectiveScale:   game.FullScale(),
		CurNote:          demoNotes[0],
	}
	fmt.Println("Cycling correct / incorrect cues...")
	var prev midi.Grid
	for i, status := range []game.Status{game.Instructions, game.PlayingCorrect, game.PlayingIncorrect} {
		t.Status = status
		t.CurNote = demoNotes[i]
		grid := engine.LEDGrid(t)
		lp.ShowGrid(&grid, &prev)
		prev = grid
		time.Sleep(time.Second)
	}

	fmt.Println("Press Enter to clear...")
	fmt.Scanln()
	fmt.Println("Done!")
}

// demoNotes are the notes lit by the leds demo
var demoNotes = []int{60, 64, 67}

func pollDevices() {
	fmt.Println("Polling for device changes every 2 seconds...")
	fmt.Println("Connect/disconnect devices to test. Ctrl+C to exit.")

	lastIn := ""
	lastOut := ""

	for {
		ins, outs, err := midi.Ports(3 * time.Second)
		if err != nil {
			fmt.Println(err)
			time.Sleep(2 * time.Second)
			continue
		}

		currentIn := strings.Join(ins, ",")
		currentOut := strings.Join(outs, ",")

		if currentIn != lastIn || currentOut != lastOut {
			fmt.Printf("\n[%s] Device change detected!\n", time.Now().Format("15:04:05"))
			fmt.Printf("  Inputs: %v\n", ins)
			fmt.Printf("  Outputs: %v\n", outs)

			for _, name := range ins {
				if midi.IsLaunchpad(name) {
					fmt.Println("  -> Launchpad detected!")
				}
			}

			lastIn = currentIn
			lastOut = currentOut
		}

		time.Sleep(2 * time.Second)
	}
}
