package errors

import (
	"fmt"
	"strings"
)

// ParseError represents a taxonomy document that could not be decoded.
type ParseError struct {
	Path    string
	Line    int
	Message string
	Err     error
}

// NewParseError constructs a ParseError.
func NewParseError(path string, line int, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ParseError{Path: path, Line: line, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}

	if e.Line > 0 {
		return fmt.Sprintf("parse error: %s:%d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error: %s: %s", e.Path, e.Message)
}

// Unwrap exposes the underlying error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError captures a document or settings field that breaks a rule.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// SourceError reports a failure to fetch a taxonomy document from its origin.
type SourceError struct {
	Source string
	Err    error
}

// NewSourceError constructs a SourceError for the named source.
func NewSourceError(source string, err error) error {
	return &SourceError{Source: source, Err: err}
}

func (e *SourceError) Error() string {
	if e == nil {
		return ""
	}
	if e.Source != "" {
		return fmt.Sprintf("source error [%s]: %v", e.Source, e.Err)
	}
	return fmt.Sprintf("source error: %v", e.Err)
}

// Unwrap exposes the root error.
func (e *SourceError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// PathError indicates a category path typed by a user that is not in the tree.
// Paths taken from rendered rows are always valid and never produce it.
type PathError struct {
	Path []string
}

// NewPathError constructs a PathError.
func NewPathError(path []string) error {
	return &PathError{Path: append([]string(nil), path...)}
}

func (e *PathError) Error() string {
	if e == nil {
		return ""
	}
	if len(e.Path) == 0 {
		return "unknown category: empty path"
	}
	return fmt.Sprintf("unknown category: %s", strings.Join(e.Path, " / "))
}
