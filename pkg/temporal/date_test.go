// SPDX-License-Identifier: MPL-2.0

package temporal

import (
	"errors"
	"testing"

	"github.com/gedforge/gedforge/pkg/calendar"
	"github.com/gedforge/gedforge/pkg/gederr"
)

func TestParseDateExact(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
		kind gederr.Kind
	}{
		{"29 FEB 2004", "29 FEB 2004", 0},
		{"1 jan 1900", "1 JAN 1900", 0},
		{"01 MAR 1850", "1 MAR 1850", 0},
		{"29 FEB 2001", "", gederr.DayOutOfRange},
		{"31 APR 2000", "", gederr.DayOutOfRange},
		{"0 JAN 2000", "", gederr.DayOutOfRange},
		{"1 JAN 0", "", gederr.ZeroYear},
		{"1 XYZ 2000", "", gederr.UnknownMonth},
		{"1  JAN 2000", "", gederr.BadSpacing},
		{"JAN 2000", "", gederr.BadSpacing},
		{"1 JAN 2000 BCE", "", gederr.BadSpacing},
		{"A JAN 2000", "", gederr.NotADate},
		{"1 JAN 200000000000000", "", gederr.TooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := ParseDateExact(tt.in)
			if tt.kind != 0 {
				if !errors.Is(err, tt.kind) {
					t.Fatalf("ParseDateExact(%q) error = %v, want %v", tt.in, err, tt.kind)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDateExact(%q) unexpected error: %v", tt.in, err)
			}
			if got.String() != tt.want {
				t.Errorf("String() = %q, want %q", got.String(), tt.want)
			}
		})
	}
}

func TestDateExactNonLeapBound(t *testing.T) {
	t.Parallel()

	_, err := ParseDateExact("29 FEB 2001")
	var ge *gederr.Error
	if !errors.As(err, &ge) {
		t.Fatalf("error = %v, want *gederr.Error", err)
	}
	if ge.Args[0] != 28 {
		t.Errorf("day bound = %v, want 28", ge.Args[0])
	}
}

func TestDateExactRoundTrip(t *testing.T) {
	t.Parallel()

	for _, year := range []int{1, 4, 1600, 1900, 2000, 2001, 2004, 9999} {
		for month := 1; month <= 12; month++ {
			for day := 1; day <= calendar.DaysIn(calendar.Gregorian, year, month); day++ {
				if err := calendar.ValidateYMD(calendar.Gregorian, year, month, day); err != nil {
					t.Fatalf("ValidateYMD(%d, %d, %d): %v", year, month, day, err)
				}
				text, err := FormatDateExact(year, month, day)
				if err != nil {
					t.Fatalf("FormatDateExact(%d, %d, %d): %v", year, month, day, err)
				}
				got, err := ParseDateExact(text)
				if err != nil {
					t.Fatalf("ParseDateExact(%q): %v", text, err)
				}
				if got != (DateExact{Year: year, Month: month, Day: day}) {
					t.Fatalf("round trip of %q = %+v", text, got)
				}
			}
		}
	}
}

func TestHandBuiltValuesRender(t *testing.T) {
	t.Parallel()

	v := &DateValue{Year: 1850}
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"between without second", Date{Qualifier: QualifierBetween, First: v}.String(), "BET 1850"},
		{"period without end", Date{Qualifier: QualifierFrom, First: v}.String(), "FROM 1850"},
		{"exact month past table", DateExact{Year: 1900, Month: 13, Day: 1}.String(), "1 13 1900"},
		{"exact zero month", DateExact{Year: 1900, Day: 1}.String(), "1 0 1900"},
		{"exact valid", DateExact{Year: 1900, Month: 2, Day: 28}.String(), "28 FEB 1900"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if tt.got != tt.want {
				t.Errorf("String() = %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
		kind gederr.Kind
	}{
		{"", "", 0},
		{"2000", "2000", 0},
		{"JAN 2000", "JAN 2000", 0},
		{"1 jan 2000", "1 JAN 2000", 0},
		{"44 BCE", "44 BCE", 0},
		{"15 MAR 44 BCE", "15 MAR 44 BCE", 0},
		{"GREGORIAN 1 JAN 2000", "GREGORIAN 1 JAN 2000", 0},
		{"JULIAN 25 DEC 1700", "JULIAN 25 DEC 1700", 0},
		{"HEBREW 1 TSH 5785", "HEBREW 1 TSH 5785", 0},
		{"FRENCH_R 1 VEND 2", "FRENCH_R 1 VEND 2", 0},
		{"ABT 1850", "ABT 1850", 0},
		{"CAL 1850", "CAL 1850", 0},
		{"EST 1850", "EST 1850", 0},
		{"BEF 1 JAN 1900", "BEF 1 JAN 1900", 0},
		{"AFT 1900", "AFT 1900", 0},
		{"BET 1900 AND 1910", "BET 1900 AND 1910", 0},
		{"BET JULIAN 1700 AND GREGORIAN 1800", "BET JULIAN 1700 AND GREGORIAN 1800", 0},
		{"FROM 1900 TO 1910", "FROM 1900 TO 1910", 0},
		{"FROM 1900", "FROM 1900", 0},
		{"TO 1910", "TO 1910", 0},
		{"29 FEB 2001", "", gederr.DayOutOfRange},
		{"0", "", gederr.ZeroYear},
		{"JA 2000", "", gederr.UnknownMonth},
		{"MAYAN 1 JAN 2000", "", gederr.UnknownCalendar},
		{"XX 1 2000", "", gederr.UnknownCalendar},
		{"2000 AD", "", gederr.NotADate},
		{"HEBREW 5785 BCE", "", gederr.NotADate},
		{"FRENCH_R 15", "", gederr.DateAfterEnd},
		{"BET 1900", "", gederr.NotADate},
		{"BET 1900 TO 1910", "", gederr.NotADate},
		{"FROM 1900 AND 1910", "", gederr.NotADate},
		{"1900 TO 1910", "", gederr.NotADate},
		{"ABT", "", gederr.NotADate},
		{"AND 1900", "", gederr.NotADate},
		{"2000BCE", "", gederr.NotADate},
		{"1648/9", "", gederr.NotADate},
		{"hello", "", gederr.NotADate},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := ParseDate(tt.in)
			if tt.kind != 0 {
				if !errors.Is(err, tt.kind) {
					t.Fatalf("ParseDate(%q) error = %v, want %v", tt.in, err, tt.kind)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDate(%q) unexpected error: %v", tt.in, err)
			}
			if got.String() != tt.want {
				t.Errorf("String() = %q, want %q", got.String(), tt.want)
			}
		})
	}
}

func TestParseDateValues(t *testing.T) {
	t.Parallel()

	d, err := ParseDate("BET 15 MAR 44 BCE AND 1 JAN 1 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Qualifier != QualifierBetween {
		t.Errorf("Qualifier = %q", d.Qualifier)
	}
	if d.First.Year != -44 || d.First.Month != 3 || d.First.Day != 15 {
		t.Errorf("First = %+v", d.First)
	}
	if d.Second == nil || d.Second.Year != 1 {
		t.Errorf("Second = %+v", d.Second)
	}
}

func TestParseDatePeriod(t *testing.T) {
	t.Parallel()

	for _, ok := range []string{"", "FROM 1900", "TO 1900", "FROM 1900 TO 1950"} {
		if _, err := ParseDatePeriod(ok); err != nil {
			t.Errorf("ParseDatePeriod(%q) unexpected error: %v", ok, err)
		}
	}
	for _, bad := range []string{"1900", "ABT 1900", "BET 1900 AND 1950"} {
		if _, err := ParseDatePeriod(bad); !errors.Is(err, gederr.NotADate) {
			t.Errorf("ParseDatePeriod(%q) error = %v, want NotADate", bad, err)
		}
	}
}

func TestFormatDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		year  int
		month int
		day   int
		cal   string
		show  bool
		want  string
	}{
		{"full", 2004, 2, 29, "GREGORIAN", false, "29 FEB 2004"},
		{"shown", 2004, 2, 29, "GREGORIAN", true, "GREGORIAN 29 FEB 2004"},
		{"year only", 1850, 0, 0, "GREGORIAN", false, "1850"},
		{"epoch", -44, 3, 15, "JULIAN", true, "JULIAN 15 MAR 44 BCE"},
		{"french", 2, 13, 5, "FRENCH_R", true, "FRENCH_R 5 COMP 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := FormatDate(tt.year, tt.month, tt.day, tt.cal, tt.show)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("FormatDate() = %q, want %q", got, tt.want)
			}
			if _, err := ParseDate(got); err != nil {
				t.Errorf("ParseDate(%q) rejected formatted date: %v", got, err)
			}
		})
	}

	if _, err := FormatDate(0, 1, 1, "GREGORIAN", false); !errors.Is(err, gederr.ZeroYear) {
		t.Errorf("FormatDate year 0 error = %v", err)
	}
	if _, err := FormatDate(2000, 1, 1, "MAYAN", false); !errors.Is(err, gederr.UnknownCalendar) {
		t.Errorf("FormatDate MAYAN error = %v", err)
	}
}

func TestComposers(t *testing.T) {
	t.Parallel()

	d1, _ := FormatDate(2024, 1, 1, "GREGORIAN", false)
	d2, _ := FormatDate(2025, 1, 1, "GREGORIAN", true)

	tests := []struct {
		got  string
		want string
	}{
		{About(d1), "ABT 1 JAN 2024"},
		{Calculated(d1), "CAL 1 JAN 2024"},
		{Estimated(d1), "EST 1 JAN 2024"},
		{Before(d1), "BEF 1 JAN 2024"},
		{After(d1), "AFT 1 JAN 2024"},
		{Between(d1, d2), "BET 1 JAN 2024 AND GREGORIAN 1 JAN 2025"},
		{Period(d1, d2), "FROM 1 JAN 2024 TO GREGORIAN 1 JAN 2025"},
		{Period("", d2), "TO GREGORIAN 1 JAN 2025"},
		{Period(d1, ""), "FROM 1 JAN 2024"},
		{About(""), ""},
		{About("44 BCE"), "ABT 44 BCE"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("got %q, want %q", tt.got, tt.want)
		}
		if _, err := ParseDate(tt.got); err != nil {
			t.Errorf("ParseDate(%q) unexpected error: %v", tt.got, err)
		}
	}
}
