// SPDX-License-Identifier: MPL-2.0

package gederr

import (
	"errors"
	"fmt"
	"strings"
)

// Kind identifies one class of failure. The zero value is not a valid kind.
type Kind int

const (
	// UnknownCalendar is raised when a calendar name is not registered.
	UnknownCalendar Kind = iota + 1
	// UnknownMonth is raised when a month token is not in the calendar's table.
	UnknownMonth
	// ZeroYear is raised when year 0 is used in a calendar without one.
	ZeroYear
	// MonthOutOfRange is raised for a month number outside the calendar's table.
	MonthOutOfRange
	// DayOutOfRange is raised for a day outside the month's day count.
	DayOutOfRange
	// DateBeforeStart is raised for a date earlier than the calendar's first date.
	DateBeforeStart
	// DateAfterEnd is raised for a date later than the calendar's last date.
	DateAfterEnd
	// BadColonCount is raised for a time without exactly two colons.
	BadColonCount
	// BadSpacing is raised for an exact date without exactly two spaces.
	BadSpacing
	// TooLarge is raised for a payload longer than its grammar allows.
	TooLarge
	// NotADate is raised for a payload that matches no date shape.
	NotADate
	// NotAnAge is raised for a payload that is not an age expression.
	NotAnAge
	// NotAString is raised for a payload of the wrong Go type.
	NotAString
	// WrongXrefKind is raised for a pointer to a record of the wrong kind.
	WrongXrefKind
	// NotPermitted is raised for a substructure the schema does not allow.
	NotPermitted
	// OnlyOnePermitted is raised for a repeated singleton substructure.
	OnlyOnePermitted
	// MissingRequired is raised for an absent required substructure.
	MissingRequired
	// NotAValidEnum is raised for a payload outside the enumeration set.
	NotAValidEnum
	// DuplicateXref is raised when a cross-reference identifier is minted twice.
	DuplicateXref

	// NotATime is raised for a time payload with non-numeric fields.
	NotATime
	// TimeOutOfRange is raised for an hour, minute, or second out of bounds.
	TimeOutOfRange
	// NotAnInteger is raised for a payload that is not a non-negative integer.
	NotAnInteger
	// NotYOrNull is raised for a flag payload other than "Y" or empty.
	NotYOrNull
	// NotALanguage is raised for a payload that is not a BCP 47 tag.
	NotALanguage
	// NotAMediaType is raised for a payload that is not type/subtype.
	NotAMediaType
	// NotALatitude is raised for a malformed or out of range latitude.
	NotALatitude
	// NotALongitude is raised for a malformed or out of range longitude.
	NotALongitude
	// UnknownXref is raised for a pointer the document's registry never minted.
	UnknownXref
	// MissingRecord is raised for a pointer to a minted xref with no staged record.
	MissingRecord
	// BadLevel is raised while parsing a line whose level breaks nesting.
	BadLevel
	// MultipleHeaders is raised when a second header is staged.
	MultipleHeaders
	// MalformedSchema is raised at construction time for an inconsistent schema.
	MalformedSchema
	// NotAList is raised for a comma-separated list with padding at either end.
	NotAList
	// NotAName is raised for a personal name with stray slashes or control characters.
	NotAName
	// NotAFilePath is raised for a payload that is not a URI reference.
	NotAFilePath
	// PhoneOutOfRange is raised for a telephone number part outside its digit count.
	PhoneOutOfRange

	kindSentinel
)

// ErrInvalidKind is returned when a Kind value or name is not recognized.
var ErrInvalidKind = errors.New("invalid error kind")

var kindNames = [...]string{
	UnknownCalendar:  "UnknownCalendar",
	UnknownMonth:     "UnknownMonth",
	ZeroYear:         "ZeroYear",
	MonthOutOfRange:  "MonthOutOfRange",
	DayOutOfRange:    "DayOutOfRange",
	DateBeforeStart:  "DateBeforeStart",
	DateAfterEnd:     "DateAfterEnd",
	BadColonCount:    "BadColonCount",
	BadSpacing:       "BadSpacing",
	TooLarge:         "TooLarge",
	NotADate:         "NotADate",
	NotAnAge:         "NotAnAge",
	NotAString:       "NotAString",
	WrongXrefKind:    "WrongXrefKind",
	NotPermitted:     "NotPermitted",
	OnlyOnePermitted: "OnlyOnePermitted",
	MissingRequired:  "MissingRequired",
	NotAValidEnum:    "NotAValidEnum",
	DuplicateXref:    "DuplicateXref",
	NotATime:         "NotATime",
	TimeOutOfRange:   "TimeOutOfRange",
	NotAnInteger:     "NotAnInteger",
	NotYOrNull:       "NotYOrNull",
	NotALanguage:     "NotALanguage",
	NotAMediaType:    "NotAMediaType",
	NotALatitude:     "NotALatitude",
	NotALongitude:    "NotALongitude",
	UnknownXref:      "UnknownXref",
	MissingRecord:    "MissingRecord",
	BadLevel:         "BadLevel",
	MultipleHeaders:  "MultipleHeaders",
	MalformedSchema:  "MalformedSchema",
	NotAList:         "NotAList",
	NotAName:         "NotAName",
	NotAFilePath:     "NotAFilePath",
	PhoneOutOfRange:  "PhoneOutOfRange",
}

// InvalidKindError is returned when a Kind is out of range or a name is unknown.
// It wraps ErrInvalidKind for errors.Is() compatibility.
type InvalidKindError struct {
	Value string
}

// Error implements the error interface.
func (e *InvalidKindError) Error() string {
	return fmt.Sprintf("invalid error kind %q", e.Value)
}

// Unwrap returns ErrInvalidKind for errors.Is() compatibility.
func (e *InvalidKindError) Unwrap() error { return ErrInvalidKind }

// String returns the kind's identifier, e.g. "DayOutOfRange".
func (k Kind) String() string {
	if k <= 0 || k >= kindSentinel {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Error lets a Kind be used as an errors.Is target.
func (k Kind) Error() string { return k.String() }

// IsValid returns whether the Kind is one of the defined kinds.
func (k Kind) IsValid() (bool, []error) {
	if k <= 0 || k >= kindSentinel {
		return false, []error{&InvalidKindError{Value: k.String()}}
	}
	return true, nil
}

// Kinds returns every defined kind in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, int(kindSentinel)-1)
	for k := UnknownCalendar; k < kindSentinel; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// ParseKind resolves a kind from its identifier. Matching ignores case,
// dashes and underscores, so "day-out-of-range" finds DayOutOfRange.
func ParseKind(name string) (Kind, error) {
	want := normalizeKindName(name)
	for _, k := range Kinds() {
		if normalizeKindName(kindNames[k]) == want {
			return k, nil
		}
	}
	return 0, &InvalidKindError{Value: name}
}

func normalizeKindName(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "-", "")
	return strings.ReplaceAll(s, "_", "")
}
