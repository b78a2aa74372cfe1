// Package errdefs defines the error kinds surfaced by map generation.
// Callers wrap them with fmt.Errorf("...: %w", kind) and match with errors.Is.
package errdefs

import "errors"

var (
	// ErrConfiguration reports unusable configuration or run parameters.
	ErrConfiguration = errors.New("configuration error")

	// ErrLookup reports a tile that references an unknown tileset.
	ErrLookup = errors.New("lookup error")

	// ErrPrecondition reports a stage invoked without the result of its predecessor.
	ErrPrecondition = errors.New("precondition error")

	// ErrNonTermination reports a seed count that cannot be satisfied with distinct cells.
	ErrNonTermination = errors.New("non-termination risk")
)

// IsClientError reports whether err was caused by the caller's input rather than
// by the environment (file system, database).
func IsClientError(err error) bool {
	return errors.Is(err, ErrConfiguration) ||
		errors.Is(err, ErrLookup) ||
		errors.Is(err, ErrNonTermination)
}
