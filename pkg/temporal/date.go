// SPDX-License-Identifier: MPL-2.0

package temporal

import (
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/gedforge/gedforge/pkg/calendar"
	"github.com/gedforge/gedforge/pkg/gederr"
)

// Qualifier is the keyword that opens an approximate, bounded, ranged, or
// period date. The empty qualifier marks a plain date.
type Qualifier string

const (
	QualifierNone       Qualifier = ""
	QualifierAbout      Qualifier = "ABT"
	QualifierCalculated Qualifier = "CAL"
	QualifierEstimated  Qualifier = "EST"
	QualifierBefore     Qualifier = "BEF"
	QualifierAfter      Qualifier = "AFT"
	QualifierBetween    Qualifier = "BET"
	QualifierFrom       Qualifier = "FROM"
	QualifierTo         Qualifier = "TO"
)

type (
	// DateValue is one calendar date inside a Date payload. Month and Day
	// are 0 when not given; Year is negative for dates in the calendar's
	// epoch (e.g. BCE).
	DateValue struct {
		Calendar     string
		ShowCalendar bool
		Year         int
		Month        int
		Day          int
	}

	// Date is a parsed Date payload. Second is set only for BET/AND and
	// FROM/TO forms. The zero Date is the empty payload.
	Date struct {
		Qualifier Qualifier
		First     *DateValue
		Second    *DateValue
	}

	dateAST struct {
		Prefix string    `parser:"@Keyword?"`
		First  *datePart `parser:"@@?"`
		Tail   *dateTail `parser:"@@?"`
	}

	dateTail struct {
		Infix  string    `parser:"@Keyword"`
		Second *datePart `parser:"@@"`
	}

	datePart struct {
		Words []string `parser:"@(Ident | Int)+"`
	}
)

var (
	dateLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Keyword", Pattern: `(?:ABT|CAL|EST|BEF|AFT|BET|AND|FROM|TO)\b`},
		{Name: "Int", Pattern: `\d+\b`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
		{Name: "Whitespace", Pattern: `[ ]+`},
	})

	dateParser = participle.MustBuild[dateAST](
		participle.Lexer(dateLexer),
		participle.Elide("Whitespace"),
	)
)

// ParseDate parses a Date payload. The empty string is a valid, empty date.
func ParseDate(s string) (Date, error) {
	if strings.TrimSpace(s) == "" {
		return Date{}, nil
	}
	ast, err := dateParser.ParseString("", s)
	if err != nil {
		return Date{}, gederr.New(gederr.NotADate, s)
	}
	if ast.First == nil {
		return Date{}, gederr.New(gederr.NotADate, s)
	}

	d := Date{Qualifier: Qualifier(ast.Prefix)}
	switch {
	case ast.Tail == nil:
		switch d.Qualifier {
		case QualifierNone, QualifierAbout, QualifierCalculated, QualifierEstimated,
			QualifierBefore, QualifierAfter, QualifierFrom, QualifierTo:
		default:
			return Date{}, gederr.New(gederr.NotADate, s)
		}
	case d.Qualifier == QualifierBetween && ast.Tail.Infix == "AND",
		d.Qualifier == QualifierFrom && ast.Tail.Infix == "TO":
	default:
		return Date{}, gederr.New(gederr.NotADate, s)
	}

	if d.First, err = interpretDate(ast.First.Words, s); err != nil {
		return Date{}, err
	}
	if ast.Tail != nil {
		if d.Second, err = interpretDate(ast.Tail.Second.Words, s); err != nil {
			return Date{}, err
		}
	}
	return d, nil
}

// ParseDatePeriod parses a DatePeriod payload: empty, "FROM d", "TO d", or
// "FROM d TO d".
func ParseDatePeriod(s string) (Date, error) {
	d, err := ParseDate(s)
	if err != nil {
		return Date{}, err
	}
	switch d.Qualifier {
	case QualifierFrom, QualifierTo:
		return d, nil
	case QualifierNone:
		if d.IsZero() {
			return d, nil
		}
	}
	return Date{}, gederr.New(gederr.NotADate, s)
}

// interpretDate turns the words of one date into a validated DateValue.
// The accepted shapes are [CALENDAR] [[DAY] MONTH] YEAR [EPOCH].
func interpretDate(words []string, payload string) (*DateValue, error) {
	cal := calendar.Gregorian
	show := false
	if len(words) > 1 && !isDigits(words[0]) {
		if c, err := calendar.Lookup(words[0]); err == nil {
			cal, show = c, true
			words = words[1:]
		}
	}

	negative := false
	if n := len(words); n > 1 && !isDigits(words[n-1]) {
		if cal.Epoch == "" || !strings.EqualFold(words[n-1], cal.Epoch) {
			return nil, gederr.New(gederr.NotADate, payload)
		}
		negative = true
		words = words[:n-1]
	}

	v := &DateValue{Calendar: cal.Name, ShowCalendar: show}
	var yearWord string
	switch len(words) {
	case 1:
		yearWord = words[0]
	case 2:
		m, err := calendar.MonthByAbbreviation(cal, words[0])
		if err != nil {
			return nil, err
		}
		v.Month = m.Number
		yearWord = words[1]
	case 3:
		if !isDigits(words[0]) {
			return nil, gederr.New(gederr.UnknownCalendar, words[0])
		}
		m, err := calendar.MonthByAbbreviation(cal, words[1])
		if err != nil {
			return nil, err
		}
		v.Month = m.Number
		v.Day, _ = strconv.Atoi(words[0])
		if v.Day == 0 {
			return nil, gederr.New(gederr.DayOutOfRange, words[0], m.Days, m.Abbreviation)
		}
		yearWord = words[2]
	default:
		if len(words) > 3 && !isDigits(words[0]) {
			return nil, gederr.New(gederr.UnknownCalendar, words[0])
		}
		return nil, gederr.New(gederr.NotADate, payload)
	}

	year, err := strconv.Atoi(yearWord)
	if err != nil || !isDigits(yearWord) {
		return nil, gederr.New(gederr.NotADate, payload)
	}
	if negative {
		year = -year
	}
	v.Year = year
	if err := calendar.ValidateYMD(cal, v.Year, v.Month, v.Day); err != nil {
		return nil, err
	}
	return v, nil
}

// IsZero reports whether d is the empty date.
func (d Date) IsZero() bool {
	return d.First == nil
}

// String renders the date canonically.
func (d Date) String() string {
	if d.First == nil {
		return ""
	}
	first := d.First.String()
	switch d.Qualifier {
	case QualifierNone:
		return first
	case QualifierBetween:
		return Between(first, d.Second.text())
	case QualifierFrom:
		return Period(first, d.Second.text())
	default:
		return string(d.Qualifier) + " " + first
	}
}

// text is String for an optional value; nil renders empty.
func (v *DateValue) text() string {
	if v == nil {
		return ""
	}
	return v.String()
}

// String renders "[CALENDAR ][D ][MON ]YYYY[ EPOCH]".
func (v DateValue) String() string {
	cal, err := calendar.Lookup(v.Calendar)
	if err != nil {
		cal = calendar.Gregorian
	}
	parts := make([]string, 0, 5)
	if v.ShowCalendar {
		parts = append(parts, cal.Name)
	}
	if v.Day > 0 {
		parts = append(parts, strconv.Itoa(v.Day))
	}
	if v.Month > 0 && v.Month <= cal.MaxMonth() {
		parts = append(parts, cal.Months[v.Month].Abbreviation)
	}
	year := v.Year
	if year < 0 && cal.Epoch != "" {
		parts = append(parts, strconv.Itoa(-year), cal.Epoch)
	} else {
		parts = append(parts, strconv.Itoa(year))
	}
	return strings.Join(parts, " ")
}
