package main

import (
	"simon-piano/cmd"

	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
)

func main() {
	cmd.Execute()
}
