// SPDX-License-Identifier: MPL-2.0

package temporal

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gedforge/gedforge/pkg/calendar"
	"github.com/gedforge/gedforge/pkg/gederr"
)

// MaxDateExactLength bounds the length of a DateExact payload in characters.
const MaxDateExactLength = 16

// DateExact is a full Gregorian day, month, and year.
type DateExact struct {
	Year  int
	Month int
	Day   int
}

// ParseDateExact parses "D MON YYYY".
func ParseDateExact(s string) (DateExact, error) {
	if utf8.RuneCountInString(s) > MaxDateExactLength {
		return DateExact{}, gederr.New(gederr.TooLarge, s, MaxDateExactLength)
	}
	if n := strings.Count(s, " "); n != 2 {
		return DateExact{}, gederr.New(gederr.BadSpacing, s, n)
	}
	fields := strings.Split(s, " ")
	if len(fields[0]) > 2 || !isDigits(fields[0]) || !isDigits(fields[2]) {
		return DateExact{}, gederr.New(gederr.NotADate, s)
	}

	month, err := calendar.MonthByAbbreviation(calendar.Gregorian, fields[1])
	if err != nil {
		return DateExact{}, err
	}
	day, _ := strconv.Atoi(fields[0])
	year, err := strconv.Atoi(fields[2])
	if err != nil {
		return DateExact{}, gederr.New(gederr.NotADate, s)
	}
	if day == 0 {
		return DateExact{}, gederr.New(gederr.DayOutOfRange, fields[0],
			calendar.DaysIn(calendar.Gregorian, year, month.Number), month.Abbreviation)
	}
	if err := calendar.ValidateYMD(calendar.Gregorian, year, month.Number, day); err != nil {
		return DateExact{}, err
	}
	return DateExact{Year: year, Month: month.Number, Day: day}, nil
}

// String renders the date as "D MON YYYY". A month outside the Gregorian
// table is written as its number.
func (d DateExact) String() string {
	month := strconv.Itoa(d.Month)
	if d.Month > 0 && d.Month <= calendar.Gregorian.MaxMonth() {
		month = calendar.Gregorian.Months[d.Month].Abbreviation
	}
	return strconv.Itoa(d.Day) + " " + month + " " + strconv.Itoa(d.Year)
}

// FormatDateExact validates a year, month, and day and renders them as a
// DateExact payload.
func FormatDateExact(year, month, day int) (string, error) {
	if year < 0 {
		return "", gederr.New(gederr.NotADate, strconv.Itoa(year))
	}
	if err := calendar.ValidateYMD(calendar.Gregorian, year, month, day); err != nil {
		return "", err
	}
	if month == 0 || day == 0 {
		return "", gederr.New(gederr.NotADate, calendar.YMD{Year: year, Month: month, Day: day}.String())
	}
	return DateExact{Year: year, Month: month, Day: day}.String(), nil
}
