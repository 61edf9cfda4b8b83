package main

import "github.com/oshokin/status-blinker/cmd/blinker-sim/cmd"

func main() {
	cmd.Execute()
}
