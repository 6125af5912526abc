// SPDX-License-Identifier: MPL-2.0

package temporal

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gedforge/gedforge/pkg/gederr"
)

// maxSecond is the exclusive upper bound reported for the seconds field.
const maxSecond = 59.999999999999

// Time is a parsed clock time. Fraction holds the digits after the decimal
// point of the seconds exactly as written.
type Time struct {
	Hour     int
	Minute   int
	Second   int
	Fraction string
	UTC      bool
}

// ParseTime parses "HH:MM:SS[.fraction][Z]".
func ParseTime(s string) (Time, error) {
	body, utc := strings.CutSuffix(s, "Z")
	if n := strings.Count(body, ":"); n != 2 {
		return Time{}, gederr.New(gederr.BadColonCount, s, n)
	}
	fields := strings.Split(body, ":")

	hour, ok := parseClockField(fields[0], 1)
	if !ok {
		return Time{}, gederr.New(gederr.NotATime, s)
	}
	minute, ok := parseClockField(fields[1], 2)
	if !ok {
		return Time{}, gederr.New(gederr.NotATime, s)
	}
	secText, fraction, hasFraction := strings.Cut(fields[2], ".")
	second, ok := parseClockField(secText, 2)
	if !ok || (hasFraction && !isDigits(fraction)) {
		return Time{}, gederr.New(gederr.NotATime, s)
	}

	if hour > 23 {
		return Time{}, gederr.New(gederr.TimeOutOfRange, s, "hour", 0, 23)
	}
	if minute > 59 {
		return Time{}, gederr.New(gederr.TimeOutOfRange, s, "minute", 0, 59)
	}
	if seconds, _ := strconv.ParseFloat(fields[2], 64); seconds >= maxSecond {
		return Time{}, gederr.New(gederr.TimeOutOfRange, s, "second", 0, maxSecond)
	}

	return Time{Hour: hour, Minute: minute, Second: second, Fraction: fraction, UTC: utc}, nil
}

// parseClockField accepts at least minDigits and at most two decimal digits.
// Only the hour may be written with a single digit.
func parseClockField(s string, minDigits int) (int, bool) {
	if len(s) < minDigits || len(s) > 2 || !isDigits(s) {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	return n, err == nil
}

// String renders the time with two-digit fields.
func (t Time) String() string {
	s := fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
	if t.Fraction != "" {
		s += "." + t.Fraction
	}
	if t.UTC {
		s += "Z"
	}
	return s
}

// FormatTime validates the fields and renders them as a Time payload.
func FormatTime(hour, minute int, second float64, utc bool) (string, error) {
	text := strconv.FormatFloat(second, 'f', -1, 64)
	if second < 10 && second >= 0 {
		text = "0" + text
	}
	s := fmt.Sprintf("%02d:%02d:%s", hour, minute, text)
	if utc {
		s += "Z"
	}
	t, err := ParseTime(s)
	if err != nil {
		return "", err
	}
	return t.String(), nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
