package history

import "fmt"

// MalformedHistoryError is returned by Load when stored history exists but cannot be parsed.
// The stored value is left untouched.
type MalformedHistoryError struct {
	Err error
}

func (e *MalformedHistoryError) Error() string {
	return fmt.Sprintf("malformed history: %v", e.Err)
}

func (e *MalformedHistoryError) Unwrap() error {
	return e.Err
}
