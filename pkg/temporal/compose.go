// SPDX-License-Identifier: MPL-2.0

package temporal

import (
	"github.com/gedforge/gedforge/pkg/calendar"
)

// FormatDate validates year, month, and day in the named calendar and
// renders them as "[CALENDAR ][D ][MON ]YYYY[ EPOCH]". Month and day 0 are
// omitted. A negative year is rendered with the calendar's epoch label.
func FormatDate(year, month, day int, calendarName string, show bool) (string, error) {
	cal, err := calendar.Lookup(calendarName)
	if err != nil {
		return "", err
	}
	if err := calendar.ValidateYMD(cal, year, month, day); err != nil {
		return "", err
	}
	return DateValue{
		Calendar:     cal.Name,
		ShowCalendar: show,
		Year:         year,
		Month:        month,
		Day:          day,
	}.String(), nil
}

// About renders "ABT date".
func About(date string) string { return qualify(QualifierAbout, date) }

// Calculated renders "CAL date".
func Calculated(date string) string { return qualify(QualifierCalculated, date) }

// Estimated renders "EST date".
func Estimated(date string) string { return qualify(QualifierEstimated, date) }

// Before renders "BEF date".
func Before(date string) string { return qualify(QualifierBefore, date) }

// After renders "AFT date".
func After(date string) string { return qualify(QualifierAfter, date) }

// Between renders "BET first AND second". Either side may be empty, in
// which case its keyword is dropped too.
func Between(first, second string) string {
	return join(qualify(QualifierBetween, first), qualify("AND", second))
}

// Period renders "FROM from TO to", "FROM from", or "TO to".
func Period(from, to string) string {
	return join(qualify(QualifierFrom, from), qualify(QualifierTo, to))
}

func qualify(q Qualifier, date string) string {
	if date == "" {
		return ""
	}
	return string(q) + " " + date
}

func join(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	default:
		return a + " " + b
	}
}
