// SPDX-License-Identifier: MPL-2.0

// Package schema describes, per structure, which payload grammar it accepts
// and which substructures it permits, requires, and limits to one.
//
// Structures are identified by a key rather than by tag because one tag can
// stand for several structures: DATE under an event takes a date value while
// DATE under CHAN takes an exact date. Permitted, Required and Singleton list
// keys; a parent never permits two keys sharing a tag.
package schema

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/exp/slices"

	"github.com/gedforge/gedforge/pkg/gederr"
	"github.com/gedforge/gedforge/pkg/xref"
)

// Payload kinds.
const (
	PayloadNone PayloadKind = iota + 1
	PayloadString
	PayloadEnum
	PayloadXref
	PayloadDate
	PayloadDateExact
	PayloadTime
	PayloadAge
	PayloadDatePeriod
	PayloadYOrNull
	PayloadInteger
	PayloadLanguage
	PayloadMediaType
	PayloadLatitude
	PayloadLongitude
	PayloadList
	PayloadName
	PayloadFilePath
)

// ErrInvalidPayloadKind is returned when a PayloadKind value is not recognized.
var ErrInvalidPayloadKind = errors.New("invalid payload kind")

var payloadKindNames = map[PayloadKind]string{
	PayloadNone:       "none",
	PayloadString:     "string",
	PayloadEnum:       "enum",
	PayloadXref:       "xref",
	PayloadDate:       "date",
	PayloadDateExact:  "date-exact",
	PayloadTime:       "time",
	PayloadAge:        "age",
	PayloadDatePeriod: "date-period",
	PayloadYOrNull:    "y-or-null",
	PayloadInteger:    "integer",
	PayloadLanguage:   "language",
	PayloadMediaType:  "media-type",
	PayloadLatitude:   "latitude",
	PayloadLongitude:  "longitude",
	PayloadList:       "list",
	PayloadName:       "name",
	PayloadFilePath:   "file-path",
}

type (
	// PayloadKind is the grammar a structure's payload must follow.
	PayloadKind int

	// InvalidPayloadKindError is returned when a PayloadKind value is not
	// recognized. It wraps ErrInvalidPayloadKind for errors.Is() compatibility.
	InvalidPayloadKindError struct {
		Value PayloadKind
	}

	// Schema is the rule set of one structure. Values are built with New and
	// must not be modified afterwards.
	Schema struct {
		// Key identifies the structure, e.g. "record-INDI" or "DATE-exact".
		Key string
		// Tag is the keyword written on the line, e.g. "INDI".
		Tag string
		// Payload is the payload grammar.
		Payload PayloadKind
		// XrefKind is the record kind a PayloadXref pointer must point to.
		XrefKind xref.Kind
		// Record is the kind of identifier a top-level record declares
		// before its tag; zero for substructures.
		Record xref.Kind
		// Permitted lists the keys of allowed substructures in order.
		Permitted []string
		// Required lists keys that must occur at least once.
		Required []string
		// Singleton lists keys that may occur at most once.
		Singleton []string
		// Enum is the allowed payload set of a PayloadEnum structure.
		Enum []string

		permittedTags map[string]string
	}
)

// Error implements the error interface for InvalidPayloadKindError.
func (e *InvalidPayloadKindError) Error() string {
	return fmt.Sprintf("invalid payload kind %d", int(e.Value))
}

// Unwrap returns ErrInvalidPayloadKind for errors.Is() compatibility.
func (e *InvalidPayloadKindError) Unwrap() error { return ErrInvalidPayloadKind }

// String returns the lowercase name of the kind.
func (k PayloadKind) String() string {
	if name, ok := payloadKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("PayloadKind(%d)", int(k))
}

// IsValid returns whether the PayloadKind is one of the defined kinds.
func (k PayloadKind) IsValid() (bool, []error) {
	if _, ok := payloadKindNames[k]; !ok {
		return false, []error{&InvalidPayloadKindError{Value: k}}
	}
	return true, nil
}

// IsText reports whether payloads of this kind are carried as strings.
func (k PayloadKind) IsText() bool {
	return k != PayloadNone && k != PayloadXref && k != PayloadInteger
}

// New checks s and returns a copy of it. It fails with MalformedSchema when
// the key or tag is empty, the payload kind is unknown, a pointer schema
// names no valid record kind, an enum schema has no values, or Required or
// Singleton name a key outside Permitted.
func New(s Schema) (*Schema, error) {
	malformed := func(format string, args ...any) error {
		name := s.Key
		if name == "" {
			name = s.Tag
		}
		return gederr.New(gederr.MalformedSchema, name, fmt.Sprintf(format, args...))
	}

	if s.Key == "" || s.Tag == "" {
		return nil, malformed("key and tag are required")
	}
	if strings.ToUpper(s.Tag) != s.Tag || strings.ContainsAny(s.Tag, " @") {
		return nil, malformed("tag %q is not an uppercase keyword", s.Tag)
	}
	if ok, errs := s.Payload.IsValid(); !ok {
		return nil, malformed("%v", errs[0])
	}
	if s.Payload == PayloadXref {
		if ok, _ := s.XrefKind.IsValid(); !ok {
			return nil, malformed("pointer payload needs a record kind")
		}
	} else if s.XrefKind != 0 {
		return nil, malformed("record kind %v set on a %v payload", s.XrefKind, s.Payload)
	}
	if s.Record != 0 {
		if ok, _ := s.Record.IsValid(); !ok {
			return nil, malformed("invalid record kind %d", int(s.Record))
		}
	}
	if (s.Payload == PayloadEnum) != (len(s.Enum) > 0) {
		return nil, malformed("enumeration values require an enum payload")
	}

	seen := make(map[string]bool, len(s.Permitted))
	for _, key := range s.Permitted {
		if seen[key] {
			return nil, malformed("substructure %s listed twice", key)
		}
		seen[key] = true
	}
	for _, key := range s.Required {
		if !seen[key] {
			return nil, malformed("required substructure %s is not permitted", key)
		}
	}
	for _, key := range s.Singleton {
		if !seen[key] {
			return nil, malformed("singleton substructure %s is not permitted", key)
		}
	}

	c := s
	c.Permitted = slices.Clone(s.Permitted)
	c.Required = slices.Clone(s.Required)
	c.Singleton = slices.Clone(s.Singleton)
	c.Enum = make([]string, len(s.Enum))
	for i, v := range s.Enum {
		c.Enum[i] = strings.ToUpper(v)
	}
	return &c, nil
}

// IsRecord reports whether the structure is a top-level record.
func (s *Schema) IsRecord() bool { return s.Record != 0 }

// Permits reports whether key is an allowed substructure.
func (s *Schema) Permits(key string) bool { return slices.Contains(s.Permitted, key) }

// Requires reports whether key must occur at least once.
func (s *Schema) Requires(key string) bool { return slices.Contains(s.Required, key) }

// IsSingleton reports whether key may occur at most once.
func (s *Schema) IsSingleton(key string) bool { return slices.Contains(s.Singleton, key) }

// AllowsValue reports whether the uppercased value is in the enumeration set.
func (s *Schema) AllowsValue(value string) bool {
	return slices.Contains(s.Enum, strings.ToUpper(value))
}

// PermittedTags returns the tags of the permitted substructures, in order.
// Outside a Table the keys are returned.
func (s *Schema) PermittedTags() []string {
	out := make([]string, len(s.Permitted))
	for i, key := range s.Permitted {
		if tag, ok := s.permittedTags[key]; ok {
			out[i] = tag
		} else {
			out[i] = key
		}
	}
	return out
}

// TagOf returns the tag of a permitted key, or the key itself when unknown.
func (s *Schema) TagOf(key string) string {
	if tag, ok := s.permittedTags[key]; ok {
		return tag
	}
	return key
}

// String returns the key.
func (s *Schema) String() string { return s.Key }
