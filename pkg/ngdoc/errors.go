package ngdoc

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingName is returned when a block has no @name tag
	ErrMissingName = errors.New("name does not exist")

	// ErrInvalidParam is returned for a malformed @param tag
	ErrInvalidParam = errors.New("not a valid 'param' format")

	// ErrInvalidReturns is returned for a malformed @returns tag
	ErrInvalidReturns = errors.New("not a valid 'returns' format")

	// ErrInvalidProperty is returned for a malformed @property tag
	ErrInvalidProperty = errors.New("not a valid 'property' format")

	// ErrInvalidEventType is returned for a malformed @eventType tag
	ErrInvalidEventType = errors.New("not a valid 'eventType' format")

	// ErrInvalidPattern is returned when an annotate or details directive
	// carries a pattern that does not compile
	ErrInvalidPattern = errors.New("invalid directive pattern")

	// ErrNotErrorKind is returned when error accessors are used on a non-error doc
	ErrNotErrorKind = errors.New("doc is not of kind error")

	// ErrMissingParent is returned when a merge references an unknown parent
	ErrMissingParent = errors.New("no parent found")

	// ErrParentCycle is returned when a merge would make a doc its own ancestor
	ErrParentCycle = errors.New("parent relation forms a cycle")

	// ErrUnknownKind is returned when no rendering routine exists for a kind
	ErrUnknownKind = errors.New("don't know how to format @ngdoc")

	// ErrMissingErrorMessage is returned when an error page has no message in the table
	ErrMissingErrorMessage = errors.New("no error message for error doc")
)

// ParseError describes a fatal problem in one documentation block
type ParseError struct {
	Err  error
	Text string
	File string
	Line int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%v: %s (found in: %s:%d)", e.Err, e.Text, e.File, e.Line)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// MergeError describes a child whose declared parent cannot be attached
type MergeError struct {
	Err      error
	Parent   string
	Child    string
	Relation string
}

func (e *MergeError) Error() string {
	if errors.Is(e.Err, ErrParentCycle) {
		return fmt.Sprintf("%v: '%s' is an ancestor of itself via @%sOf '%s'", e.Err, e.Child, e.Relation, e.Parent)
	}
	return fmt.Sprintf("%v: no parent named '%s' for '%s' in @%sOf", e.Err, e.Parent, e.Child, e.Relation)
}

func (e *MergeError) Unwrap() error {
	return e.Err
}
