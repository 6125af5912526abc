// SPDX-License-Identifier: MPL-2.0

package temporal

import (
	"strconv"
	"strings"

	"github.com/gedforge/gedforge/pkg/gederr"
)

// Age bounds.
const (
	AgeExact       = ""
	AgeGreaterThan = ">"
	AgeLessThan    = "<"
)

// ageUnits lists the unit letters in the only order they may appear.
const ageUnits = "ymwd"

// Age is a parsed age expression. A unit field is -1 when absent.
type Age struct {
	Bound  string
	Years  int
	Months int
	Weeks  int
	Days   int
}

// ParseAge parses "[> |< ][Ny ][Nm ][Nw ][Nd]". The empty string is the
// empty age.
func ParseAge(s string) (Age, error) {
	a := Age{Years: -1, Months: -1, Weeks: -1, Days: -1}
	if s == "" {
		return a, nil
	}

	fields := strings.Split(s, " ")
	if fields[0] == AgeGreaterThan || fields[0] == AgeLessThan {
		a.Bound = fields[0]
		fields = fields[1:]
	}
	if len(fields) == 0 {
		return Age{}, gederr.New(gederr.NotAnAge, s)
	}

	next := 0
	for _, f := range fields {
		if len(f) < 2 {
			return Age{}, gederr.New(gederr.NotAnAge, s)
		}
		unit := strings.IndexByte(ageUnits, f[len(f)-1])
		digits := f[:len(f)-1]
		if unit < next || !isDigits(digits) {
			return Age{}, gederr.New(gederr.NotAnAge, s)
		}
		n, err := strconv.Atoi(digits)
		if err != nil {
			return Age{}, gederr.New(gederr.NotAnAge, s)
		}
		*a.field(unit) = n
		next = unit + 1
	}
	return a, nil
}

func (a *Age) field(unit int) *int {
	switch unit {
	case 0:
		return &a.Years
	case 1:
		return &a.Months
	case 2:
		return &a.Weeks
	default:
		return &a.Days
	}
}

// IsZero reports whether no unit is present.
func (a Age) IsZero() bool {
	return a.Years < 0 && a.Months < 0 && a.Weeks < 0 && a.Days < 0
}

// String renders the age canonically, e.g. "> 2y 1m 1w 1d".
func (a Age) String() string {
	return FormatAge(a.Years, a.Months, a.Weeks, a.Days, a.Bound)
}

// FormatAge renders an age from its units. Negative units are omitted; when
// every unit is omitted the result is empty and the bound is dropped.
func FormatAge(years, months, weeks, days int, bound string) string {
	parts := make([]string, 0, 5)
	for i, n := range []int{years, months, weeks, days} {
		if n >= 0 {
			parts = append(parts, strconv.Itoa(n)+ageUnits[i:i+1])
		}
	}
	if len(parts) == 0 {
		return ""
	}
	if bound == AgeGreaterThan || bound == AgeLessThan {
		parts = append([]string{bound}, parts...)
	}
	return strings.Join(parts, " ")
}
