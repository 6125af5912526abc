// SPDX-License-Identifier: MPL-2.0

package gederr

import (
	"errors"

	"golang.org/x/text/language"
)

// Error is a failure of a given Kind. Value is the offending token or
// payload, Tag the structure it was found under (empty when the failure is
// not tied to a structure), and Args the kind-specific template arguments
// documented on each constructor call site (bounds, counts, allowed sets).
type Error struct {
	Kind  Kind
	Tag   string
	Value string
	Args  []any
}

// New returns an error of the given kind for value.
func New(kind Kind, value string, args ...any) *Error {
	return &Error{Kind: kind, Value: value, Args: args}
}

// Error renders the English message, prefixed with the tag when known.
func (e *Error) Error() string {
	return Message(language.English, e)
}

// Unwrap returns the Kind so errors.Is(err, SomeKind) matches.
func (e *Error) Unwrap() error { return e.Kind }

// WithTag returns a copy of e attributed to the given structure tag. An
// error that already names a tag keeps it: the innermost structure wins.
func (e *Error) WithTag(tag string) *Error {
	if e.Tag != "" {
		return e
	}
	c := *e
	c.Tag = tag
	return &c
}

// KindOf returns the Kind of the first *Error in err's chain, or 0.
func KindOf(err error) Kind {
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Kind
	}
	return 0
}

// Tagged attributes err to tag when it is an *Error, and returns any other
// error unchanged.
func Tagged(err error, tag string) error {
	var ge *Error
	if errors.As(err, &ge) {
		return ge.WithTag(tag)
	}
	return err
}
