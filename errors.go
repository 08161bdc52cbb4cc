package dtrie

import "errors"

var (
	// ErrInvalidInput reports malformed construction input: an empty key or
	// value, mismatched key/value lengths, or a node number out of range.
	ErrInvalidInput = errors.New("dtrie: invalid input")

	// ErrKeyNotFound reports a lookup for a key that has no stored values.
	ErrKeyNotFound = errors.New("dtrie: key not found")
)
