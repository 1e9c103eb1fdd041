package lockfile

import (
	"errors"
	"slices"

	"github.com/albertocavalcante/go-yarnwhy/label"
)

// ErrInvalidLockfile indicates the input is not a readable yarn lockfile.
var ErrInvalidLockfile = errors.New("invalid lockfile")

// Format identifies the lockfile syntax.
type Format int

const (
	// FormatUnknown is the zero value.
	FormatUnknown Format = iota

	// FormatClassic is the yarn v1 syntax.
	FormatClassic

	// FormatBerry is the YAML syntax written by yarn v2 and later.
	FormatBerry
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatClassic:
		return "classic"
	case FormatBerry:
		return "berry"
	default:
		return "unknown"
	}
}

// Lockfile is a parsed yarn lockfile.
type Lockfile struct {
	// Format is the syntax the lockfile was written in.
	Format Format

	// MetadataVersion is __metadata.version for berry lockfiles and 1 for classic ones.
	MetadataVersion int

	// Entries are the resolved packages in document order.
	Entries []Entry
}

// Entry is one resolved package record.
type Entry struct {
	// Name is the package name.
	Name string

	// Version is the resolved version.
	Version string

	// Resolution is the berry "resolution" field or the classic "resolved" URL.
	Resolution string

	// Descriptors are all the descriptors that resolve to this entry.
	Descriptors []label.Descriptor

	// Dependencies are the descriptors this entry requires, ordered by name.
	// Optional dependencies are included.
	Dependencies []label.Descriptor
}

// HasDescriptor reports whether d resolves to this entry.
func (e *Entry) HasDescriptor(d label.Descriptor) bool {
	return slices.Contains(e.Descriptors, d)
}
