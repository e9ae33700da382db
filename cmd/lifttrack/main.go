package main

import (
	"os"

	"github.com/aurenz-max/LiftTrack/cmd/lifttrack/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
