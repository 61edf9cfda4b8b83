package main

import "github.com/oshokin/status-blinker/cmd/blinker/cmd"

func main() {
	cmd.Execute()
}
