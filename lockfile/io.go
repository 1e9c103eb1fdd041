package lockfile

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"unicode/utf8"
)

// DefaultName is the lockfile name yarn writes in a project root.
const DefaultName = "yarn.lock"

// ReadFile reads and parses a lockfile from the given path.
func ReadFile(path string) (*Lockfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lockfile: %w", err)
	}
	return Parse(data)
}

// Read reads a whole lockfile from r and parses it.
func Read(r io.Reader) (*Lockfile, error) {
	data, err := io.ReadAll(bufio.NewReaderSize(r, 32*1024))
	if err != nil {
		return nil, fmt.Errorf("failed to read lockfile: %w", err)
	}
	return Parse(data)
}

// Parse parses lockfile content in either supported format.
func Parse(data []byte) (*Lockfile, error) {
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%w: content is not UTF-8 text", ErrInvalidLockfile)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidLockfile)
	}

	switch DetectFormat(data) {
	case FormatBerry:
		return parseBerry(data)
	default:
		return parseClassic(data)
	}
}

// DetectFormat guesses the lockfile syntax from its content.
// Berry lockfiles always carry a top-level __metadata key.
func DetectFormat(data []byte) Format {
	for line := range bytes.Lines(data) {
		if bytes.HasPrefix(line, []byte("__metadata:")) {
			return FormatBerry
		}
	}
	return FormatClassic
}

// Exists returns true if a lockfile exists at the given path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// DefaultPath returns the default lockfile path relative to a project root.
func DefaultPath(projectRoot string) string {
	if projectRoot == "" {
		return DefaultName
	}
	return filepath.Join(projectRoot, DefaultName)
}
