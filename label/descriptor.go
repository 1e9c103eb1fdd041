// Package label provides the identity types shared by the lockfile, graph and
// tree packages.
//
// A [Descriptor] is the (package name, range) pair a yarn lockfile uses to
// request a package. Two descriptors are the same node only when both fields
// are byte-for-byte equal; no range arithmetic is ever applied to identity.
//
// # Parsing
//
// Package names may be scoped (@scope/name), so the name/range separator is the
// first '@' after position 0:
//
//	d, _ := label.ParseDescriptor("@babel/core@^7.0.0")
//	// d.Name == "@babel/core", d.Range == "^7.0.0"
package label

import (
	"fmt"
	"strings"
)

// Descriptor identifies a requested package: a name plus the range (or exact
// version, tag, or protocol reference) it was requested with.
type Descriptor struct {
	Name  string
	Range string
}

// String returns the descriptor as "name@range".
func (d Descriptor) String() string {
	return d.Name + "@" + d.Range
}

// Compare orders descriptors by name, then by range.
// It returns -1, 0 or +1 in the manner of strings.Compare.
func Compare(a, b Descriptor) int {
	if c := strings.Compare(a.Name, b.Name); c != 0 {
		return c
	}
	return strings.Compare(a.Range, b.Range)
}

// ParseDescriptor splits "name@range" into a Descriptor.
// The range may be empty ("lodash@"), the name may not.
func ParseDescriptor(s string) (Descriptor, error) {
	name, rng, ok := SplitNameRange(s)
	if !ok {
		return Descriptor{}, fmt.Errorf("invalid descriptor %q: expected name@range", s)
	}
	if err := ValidateName(name); err != nil {
		return Descriptor{}, fmt.Errorf("invalid descriptor %q: %w", s, err)
	}
	return Descriptor{Name: name, Range: rng}, nil
}

// MustDescriptor creates a Descriptor or panics. Use only for constants/tests.
func MustDescriptor(s string) Descriptor {
	d, err := ParseDescriptor(s)
	if err != nil {
		panic(err)
	}
	return d
}

// SplitNameRange splits s at the first '@' that is not the leading scope marker.
// ok is false when s carries no separator at all.
func SplitNameRange(s string) (name, rng string, ok bool) {
	if s == "" {
		return "", "", false
	}
	i := strings.IndexByte(s[1:], '@')
	if i < 0 {
		return s, "", false
	}
	return s[:i+1], s[i+2:], true
}

// ValidateName performs the minimal checks a lockfile package name must pass.
// Lockfiles are generated by the package manager, so this only rejects values
// that cannot be names at all.
func ValidateName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("package name cannot be empty")
	case strings.ContainsAny(name, " \t\r\n"):
		return fmt.Errorf("package name %q contains whitespace", name)
	case strings.HasPrefix(name, "@"):
		scope, pkg, found := strings.Cut(name[1:], "/")
		if !found || scope == "" || pkg == "" {
			return fmt.Errorf("scoped package name %q must look like @scope/name", name)
		}
	}
	return nil
}
