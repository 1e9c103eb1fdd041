package lockfile

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// Sections of a classic entry whose children are dependency lines.
var classicDependencySections = map[string]bool{
	"dependencies":         true,
	"optionalDependencies": true,
}

// parseClassic reads the yarn v1 lockfile syntax:
//
//	"@babel/code-frame@^7.0.0", "@babel/code-frame@^7.10.4":
//	  version "7.12.13"
//	  resolved "https://registry.yarnpkg.com/..."
//	  dependencies:
//	    "@babel/highlight" "^7.12.13"
//
// Indentation is two spaces per level and is significant.
func parseClassic(data []byte) (*Lockfile, error) {
	lf := &Lockfile{Format: FormatClassic, MetadataVersion: 1}

	var (
		current *Entry
		section string
		deps    map[string]string
	)

	flush := func() error {
		if current == nil {
			return nil
		}
		list, err := dependencyList(deps)
		if err != nil {
			return err
		}
		current.Dependencies = list
		lf.Entries = append(lf.Entries, *current)
		current, deps = nil, nil
		return nil
	}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), " \t\r")
		trimmed := strings.TrimLeft(line, " ")
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		indent := len(line) - len(trimmed)

		switch {
		case indent == 0:
			if err := flush(); err != nil {
				return nil, fmt.Errorf("%w: line %d: %w", ErrInvalidLockfile, lineNo, err)
			}
			header, ok := strings.CutSuffix(trimmed, ":")
			if !ok {
				return nil, fmt.Errorf("%w: line %d: expected entry header ending in ':'", ErrInvalidLockfile, lineNo)
			}
			descriptors, err := parseDescriptorList(header)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %w", ErrInvalidLockfile, lineNo, err)
			}
			current = &Entry{Name: descriptors[0].Name, Descriptors: descriptors}
			deps = make(map[string]string)
			section = ""

		case current == nil:
			return nil, fmt.Errorf("%w: line %d: field outside of an entry", ErrInvalidLockfile, lineNo)

		case indent == 2:
			if name, ok := strings.CutSuffix(trimmed, ":"); ok {
				section = name
				continue
			}
			section = ""
			key, value, err := splitClassicField(trimmed)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %w", ErrInvalidLockfile, lineNo, err)
			}
			switch key {
			case "version":
				current.Version = value
			case "resolved":
				current.Resolution = value
			}

		default:
			if !classicDependencySections[section] {
				continue
			}
			name, rng, err := splitClassicField(trimmed)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %w", ErrInvalidLockfile, lineNo, err)
			}
			deps[name] = rng
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidLockfile, err)
	}
	if err := flush(); err != nil {
		return nil, fmt.Errorf("%w: line %d: %w", ErrInvalidLockfile, lineNo, err)
	}

	return lf, nil
}

// splitClassicField splits `key value` where either side may be quoted.
func splitClassicField(s string) (key, value string, err error) {
	if strings.HasPrefix(s, `"`) {
		end := strings.IndexByte(s[1:], '"')
		if end < 0 {
			return "", "", fmt.Errorf("unterminated quote in %q", s)
		}
		key = s[1 : end+1]
		value = strings.TrimSpace(s[end+2:])
	} else {
		var found bool
		key, value, found = strings.Cut(s, " ")
		if !found {
			return "", "", fmt.Errorf("missing value in %q", s)
		}
		value = strings.TrimSpace(value)
	}
	return key, unquote(value), nil
}

// unquote removes JSON-style quoting, falling back to trimming the quote
// characters when the content is not a valid Go string literal.
func unquote(s string) string {
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return s
	}
	if u, err := strconv.Unquote(s); err == nil {
		return u
	}
	return s[1 : len(s)-1]
}
