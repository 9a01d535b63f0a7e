package main

import (
	"os"

	"github.com/esdeno/mediatype/pkg/cli"
)

func main() {
	osArgs := os.Args[1:]

	// This flag turns the process into a long-running service that uses
	// message passing with the host process over stdin/stdout
	for _, arg := range osArgs {
		if arg == "--service" {
			runService(os.Stdin, os.Stdout)
			return
		}
	}

	// The WebAssembly build exports a function to the JavaScript host instead
	// of running the command line interface
	if runHostBridge() {
		return
	}

	os.Exit(cli.Run(osArgs))
}
