// SPDX-License-Identifier: MPL-2.0

// Package calendar holds the static calendar definitions used to validate and
// format dates: month and weekday tables, era labels, and date bounds.
//
// Definitions are plain values built once at package initialization and
// never mutated afterwards, so they may be shared freely between goroutines.
// Day counts are table driven. The only computed rule is the February leap
// day of the Gregorian and Julian calendars, see IsLeap.
package calendar

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gedforge/gedforge/pkg/gederr"
)

type (
	// Month describes one month of a calendar. Month 0 is the sentinel
	// "no month" entry and has zero days.
	Month struct {
		Number       int
		Name         string
		Days         int
		Abbreviation string
	}

	// Weekday describes one named day of a calendar's week.
	Weekday struct {
		Number       int
		Name         string
		Abbreviation string
	}

	// YMD is a year, month, day triple in some calendar. Month and day may
	// be 0 for year-only or month-only dates.
	YMD struct {
		Year  int
		Month int
		Day   int
	}

	// Definition is the static description of one calendar system.
	Definition struct {
		Name     string
		Months   []Month
		Weekdays []Weekday
		// Epoch labels negative years, e.g. "BCE". Empty when the calendar
		// has no era suffix.
		Epoch              string
		AllowsZeroYear     bool
		AllowsNegativeYear bool
		// Start and End are inclusive bounds. A nil bound is open.
		Start *YMD
		End   *YMD
		// leapFebruary marks calendars whose month 2 gains a day in leap years.
		leapFebruary bool
	}
)

// Compare orders two triples lexicographically by year, month, then day.
func (d YMD) Compare(o YMD) int {
	switch {
	case d.Year != o.Year:
		return cmpInt(d.Year, o.Year)
	case d.Month != o.Month:
		return cmpInt(d.Month, o.Month)
	default:
		return cmpInt(d.Day, o.Day)
	}
}

// String renders the triple as year-month-day with zero components kept.
func (d YMD) String() string {
	return fmt.Sprintf("%d-%d-%d", d.Year, d.Month, d.Day)
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// MaxMonth returns the highest month number of the calendar.
func (c Definition) MaxMonth() int {
	return len(c.Months) - 1
}

// IsLeap reports whether year is a leap year under the rule applied to
// Gregorian and Julian February. The rule is year%4 == 0 && year%400 != 0,
// kept exactly as the reference data defines it.
func IsLeap(year int) bool {
	return year%4 == 0 && year%400 != 0
}

// DaysIn returns the number of days of month in year. Month 0 has no days.
func DaysIn(c Definition, year, month int) int {
	if month < 0 || month > c.MaxMonth() {
		return 0
	}
	days := c.Months[month].Days
	if c.leapFebruary && month == 2 && IsLeap(year) {
		days++
	}
	return days
}

// MonthByAbbreviation finds a month by its abbreviation, ignoring case.
func MonthByAbbreviation(c Definition, token string) (Month, error) {
	want := strings.ToUpper(strings.TrimSpace(token))
	if want != "" {
		for _, m := range c.Months[1:] {
			if m.Abbreviation == want {
				return m, nil
			}
		}
	}
	return Month{}, gederr.New(gederr.UnknownMonth, token, c.Name)
}

// WeekdayOf returns the weekday with the given 1-based number.
func WeekdayOf(c Definition, number int) (Weekday, bool) {
	for _, w := range c.Weekdays {
		if w.Number == number {
			return w, true
		}
	}
	return Weekday{}, false
}

// ValidateYMD checks a year, month, day triple against the calendar's
// tables and bounds. Month and day 0 mean "not given" and always pass the
// range checks.
func ValidateYMD(c Definition, year, month, day int) error {
	if year == 0 && !c.AllowsZeroYear {
		return gederr.New(gederr.ZeroYear, strconv.Itoa(year), c.Name)
	}
	if month < 0 || month > c.MaxMonth() {
		return gederr.New(gederr.MonthOutOfRange, strconv.Itoa(month), c.MaxMonth())
	}
	if maxDay := DaysIn(c, year, month); day < 0 || day > maxDay {
		return gederr.New(gederr.DayOutOfRange, strconv.Itoa(day), maxDay, c.Months[month].Abbreviation)
	}

	date := YMD{Year: year, Month: month, Day: day}
	if year < 0 && !c.AllowsNegativeYear {
		return gederr.New(gederr.DateBeforeStart, date.String(), c.Name)
	}
	if c.Start != nil && beforeStart(date, *c.Start) {
		return gederr.New(gederr.DateBeforeStart, date.String(), c.Name)
	}
	if c.End != nil && date.Compare(*c.End) > 0 {
		return gederr.New(gederr.DateAfterEnd, date.String(), c.Name)
	}
	return nil
}

// beforeStart compares only the components the date actually gives, so a
// year-only date in the first year of the calendar is not rejected.
func beforeStart(date, start YMD) bool {
	if date.Month == 0 {
		start.Month, start.Day = 0, 0
	} else if date.Day == 0 {
		start.Day = 0
	}
	return date.Compare(start) < 0
}
