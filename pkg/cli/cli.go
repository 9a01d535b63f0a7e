// This package implements the command line interface of the "mediatype"
// binary. It's public so that other Go programs can embed the exact same
// behavior.
package cli

import (
	"io"
	"os"
)

const Version = "0.1.0"

// Returns the process exit code: 0 when every specifier was classified
// (including as "Unknown"), 1 when any specifier was invalid, and 2 for
// invalid command line usage.
func Run(osArgs []string) int {
	return RunWithIO(osArgs, os.Stdin, os.Stdout, os.Stderr)
}

func RunWithIO(osArgs []string, stdin io.Reader, stdout io.Writer, stderr io.Writer) int {
	return runImpl(osArgs, stdin, stdout, stderr)
}
