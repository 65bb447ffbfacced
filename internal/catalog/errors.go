package catalog

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound means the candidate location does not exist and the next
	// extension should be tried.
	ErrNotFound = errors.New("not found")

	ErrSourceUnavailable = errors.New("source unavailable")
)

// Attempt records one candidate location tried while resolving a source.
type Attempt struct {
	Location string `json:"location"`
	Err      error  `json:"-"`
}

// SourceError reports a source none of whose candidates could be loaded.
type SourceError struct {
	Category string
	Attempts []Attempt
	Cause    error
}

func (e *SourceError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "source %s unavailable", e.Category)
	if e.Cause != nil {
		fmt.Fprintf(&b, ": %v", e.Cause)
	}
	if len(e.Attempts) > 0 {
		parts := make([]string, 0, len(e.Attempts))
		for _, a := range e.Attempts {
			parts = append(parts, fmt.Sprintf("%s (%v)", a.Location, a.Err))
		}
		fmt.Fprintf(&b, " [tried %s]", strings.Join(parts, ", "))
	}
	return b.String()
}

func (e *SourceError) Unwrap() error {
	return e.Cause
}

func (e *SourceError) Is(target error) bool {
	return target == ErrSourceUnavailable
}
