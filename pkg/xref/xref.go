// SPDX-License-Identifier: MPL-2.0

// Package xref mints and resolves the cross-reference identifiers that link
// records of one genealogy document.
//
// A Registry belongs to exactly one document. It is not safe for concurrent
// use; documents built concurrently each own their registry.
package xref

import (
	"errors"
	"fmt"
	"strings"
)

// VoidName is the reserved fullname of the null pointer.
const VoidName = "@VOID@"

// Record kinds.
const (
	Individual Kind = iota + 1
	Family
	Multimedia
	Repository
	SharedNote
	Source
	Submitter
)

// ErrInvalidKind is returned when a Kind value is not recognized.
var ErrInvalidKind = errors.New("invalid xref kind")

type (
	// Kind is the record type an identifier points to.
	Kind int

	// InvalidKindError is returned when a Kind value is not recognized.
	// It wraps ErrInvalidKind for errors.Is() compatibility.
	InvalidKindError struct {
		Value Kind
	}

	// Xref is a minted cross-reference identifier. The zero value is not a
	// valid identifier; use Void for the null pointer.
	Xref struct {
		kind Kind
		name string
	}
)

var kindTags = map[Kind]string{
	Individual: "INDI",
	Family:     "FAM",
	Multimedia: "OBJE",
	Repository: "REPO",
	SharedNote: "SNOTE",
	Source:     "SOUR",
	Submitter:  "SUBM",
}

// Void is the null pointer "@VOID@". It is accepted wherever a pointer of
// any kind is, and is never minted.
var Void = Xref{name: "VOID"}

// Error implements the error interface for InvalidKindError.
func (e *InvalidKindError) Error() string {
	return fmt.Sprintf("invalid xref kind %d", int(e.Value))
}

// Unwrap returns ErrInvalidKind for errors.Is() compatibility.
func (e *InvalidKindError) Unwrap() error { return ErrInvalidKind }

// String returns the record tag of the kind, e.g. "INDI".
func (k Kind) String() string {
	if tag, ok := kindTags[k]; ok {
		return tag
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsValid returns whether the Kind is one of the seven record kinds.
func (k Kind) IsValid() (bool, []error) {
	if _, ok := kindTags[k]; !ok {
		return false, []error{&InvalidKindError{Value: k}}
	}
	return true, nil
}

// Kinds returns the record kinds in declaration order.
func Kinds() []Kind {
	return []Kind{Individual, Family, Multimedia, Repository, SharedNote, Source, Submitter}
}

// KindForTag returns the kind whose record tag is tag.
func KindForTag(tag string) (Kind, bool) {
	for k, t := range kindTags {
		if t == tag {
			return k, true
		}
	}
	return 0, false
}

// Kind returns the record kind the identifier points to. Void has kind 0.
func (x Xref) Kind() Kind { return x.kind }

// Name returns the normalized name between the @ signs.
func (x Xref) Name() string { return x.name }

// Fullname returns the identifier as written in documents, e.g. "@I1@".
func (x Xref) Fullname() string {
	return "@" + x.name + "@"
}

// IsVoid reports whether x is the null pointer.
func (x Xref) IsVoid() bool { return x == Void }

// IsZero reports whether x is the zero value.
func (x Xref) IsZero() bool { return x == Xref{} }

// String returns the fullname.
func (x Xref) String() string { return x.Fullname() }

// Normalize trims surrounding whitespace, uppercases name and replaces each
// internal space with an underscore, so "a  b" becomes "A__B".
func Normalize(name string) string {
	return strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(name)), " ", "_")
}
