package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrConfigNotFound is returned when an explicitly requested
	// configuration file does not exist.
	ErrConfigNotFound = errors.New("configuration file not found")
	// ErrConfigExists guards init against replacing a configuration.
	ErrConfigExists = errors.New("configuration file already exists")
)

// ParseError reports a configuration file that is not a valid YAML mapping.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ValidationError carries every problem found in a configuration.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return "invalid configuration: " + e.Errors[0]
	}
	return fmt.Sprintf("invalid configuration (%d errors):\n  - %s", len(e.Errors), strings.Join(e.Errors, "\n  - "))
}
