package exitcode

import "errors"

const (
	Success = 0

	// At least one input could not be handled, e.g. a specifier that isn't a
	// valid URL. Specifiers that are valid but unrecognized still succeed.
	Failure = 1

	// The command line itself was wrong
	Usage = 2
)

// Coder is an interface to control what value Get returns.
type Coder interface {
	error
	ExitCode() int
}

// Get gets the exit code associated with an error. Cases:
//
//	nil => Success
//	errors implementing Coder => value returned by ExitCode
//	all other errors (including invalid specifiers) => Failure
func Get(err error) int {
	if err == nil {
		return Success
	}

	if coder := Coder(nil); errors.As(err, &coder) {
		return coder.ExitCode()
	}

	return Failure
}

// Set wraps an error in a Coder, setting its error code.
func Set(err error, code int) error {
	if err == nil {
		return nil
	}
	return coder{err, code}
}

// UsageError marks err as a problem with how the command was invoked.
func UsageError(err error) error {
	return Set(err, Usage)
}

var _ Coder = coder{}

type coder struct {
	error
	int
}

func (co coder) ExitCode() int {
	return co.int
}

func (co coder) Unwrap() error {
	return co.error
}
