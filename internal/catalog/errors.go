package catalog

import "fmt"

// LoadError represents a failure reading or validating a role catalog
type LoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("catalog %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("catalog %s: %s", e.Path, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}
