package cli

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// Environment is everything the command reads from or writes to the process.
// Terminal detection is resolved by the caller so the command itself never
// inspects file descriptors.
type Environment struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer

	// InTerminal is true when In is an interactive terminal. Lockfile
	// content is then never read from In.
	InTerminal bool

	// OutTerminal is true when Out is an interactive terminal. Text output is
	// colored only then.
	OutTerminal bool

	// Dir is where yarn.lock and .yarn-why.yaml are looked up.
	Dir string

	// LookupEnv reads unprefixed variables such as NO_COLOR.
	LookupEnv func(string) (string, bool)
}

// OSEnvironment returns the environment of the running process.
func OSEnvironment() Environment {
	return Environment{
		In:          os.Stdin,
		Out:         os.Stdout,
		Err:         os.Stderr,
		InTerminal:  IsTerminal(os.Stdin),
		OutTerminal: IsTerminal(os.Stdout),
		Dir:         ".",
		LookupEnv:   os.LookupEnv,
	}
}

// IsTerminal reports whether f is a terminal, including Cygwin/MSYS ptys.
func IsTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func (e Environment) lookupEnv(key string) (string, bool) {
	if e.LookupEnv == nil {
		return "", false
	}
	return e.LookupEnv(key)
}
