package modelimport

import "errors"

// Failure taxonomy for model imports. Callers match with errors.Is;
// the message carries the offending path and the underlying cause.
var (
	// ErrNotFound reports a model file that does not exist.
	ErrNotFound = errors.New("model file not found")
	// ErrMalformed reports a file that exists but cannot be parsed.
	ErrMalformed = errors.New("malformed model file")
	// ErrEmpty reports a file that parsed without any usable geometry.
	ErrEmpty = errors.New("model has no geometry")
	// ErrUnsupported reports a format the importer cannot read.
	ErrUnsupported = errors.New("unsupported model format")
)
