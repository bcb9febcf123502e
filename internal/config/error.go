package config

import "fmt"

// ValidationError reports a setting that cannot be used.
type ValidationError struct {
	Key string
	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid config value for %q: %v", e.Key, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
