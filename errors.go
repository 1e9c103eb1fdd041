package yarnwhy

import "errors"

// Sentinel errors returned by Why and its variants. Parse failures wrap
// lockfile.ErrInvalidLockfile instead.
var (
	// ErrNotFound indicates the query matches no descriptor in the lockfile,
	// or every match was removed by the version filter.
	ErrNotFound = errors.New("not found in lockfile")

	// ErrInvalidArgument indicates a malformed query, version filter or option.
	ErrInvalidArgument = errors.New("invalid argument")
)
