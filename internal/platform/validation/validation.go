package validation

import (
	"fmt"
	"sort"
	"strings"
)

// Error is a field-keyed validation failure. Handlers serialize the Fields
// map as the 400 response body, mirroring one message per offending field.
type Error struct {
	Fields map[string]string
}

func New() *Error {
	return &Error{Fields: make(map[string]string)}
}

// Add records a message for a field, keeping the first message when a field
// fails more than one rule.
func (e *Error) Add(field, message string) *Error {
	if _, ok := e.Fields[field]; !ok {
		e.Fields[field] = message
	}
	return e
}

// Single builds an Error for one field.
func Single(field, message string) *Error {
	return New().Add(field, message)
}

// HasErrors reports whether any field failed.
func (e *Error) HasErrors() bool {
	return len(e.Fields) > 0
}

// ErrOrNil returns the error when fields failed, nil otherwise. It lets
// services end validation with `return v.ErrOrNil()`.
func (e *Error) ErrOrNil() error {
	if e.HasErrors() {
		return e
	}
	return nil
}

func (e *Error) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
