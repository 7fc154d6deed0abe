package shortcuts

import "fmt"

// StoreReadError reports a failed or unparseable settings read
type StoreReadError struct {
	Schema string
	Key    string
	Err    error
}

func (e *StoreReadError) Error() string {
	return fmt.Sprintf("failed to read %s %s: %v", e.Schema, e.Key, e.Err)
}

func (e *StoreReadError) Unwrap() error {
	return e.Err
}

// StoreWriteError reports a failed settings write
type StoreWriteError struct {
	Schema string
	Key    string
	Value  string
	Err    error
}

func (e *StoreWriteError) Error() string {
	return fmt.Sprintf("failed to write %s %s: %v", e.Schema, e.Key, e.Err)
}

func (e *StoreWriteError) Unwrap() error {
	return e.Err
}
