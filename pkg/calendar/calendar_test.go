// SPDX-License-Identifier: MPL-2.0

package calendar

import (
	"errors"
	"testing"

	"github.com/gedforge/gedforge/pkg/gederr"
)

func TestLookup(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"GREGORIAN", "julian", "Hebrew", "FRENCH_R"} {
		if _, err := Lookup(name); err != nil {
			t.Errorf("Lookup(%q) unexpected error: %v", name, err)
		}
	}

	_, err := Lookup("MAYAN")
	if !errors.Is(err, gederr.UnknownCalendar) {
		t.Errorf("Lookup(MAYAN) error = %v, want UnknownCalendar", err)
	}
}

func TestMonthNumbersAreContiguous(t *testing.T) {
	t.Parallel()

	for _, c := range All() {
		for i, m := range c.Months {
			if m.Number != i {
				t.Errorf("%s month %d has number %d", c.Name, i, m.Number)
			}
		}
		if c.Months[0].Days != 0 {
			t.Errorf("%s sentinel month has %d days", c.Name, c.Months[0].Days)
		}
	}
}

func TestMonthByAbbreviation(t *testing.T) {
	t.Parallel()

	m, err := MonthByAbbreviation(Gregorian, "feb")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Number != 2 {
		t.Errorf("feb month number = %d, want 2", m.Number)
	}

	m, err = MonthByAbbreviation(French, "COMP")
	if err != nil || m.Number != 13 {
		t.Errorf("COMP = %+v, %v", m, err)
	}

	_, err = MonthByAbbreviation(Gregorian, "VEND")
	if !errors.Is(err, gederr.UnknownMonth) {
		t.Errorf("VEND in GREGORIAN error = %v, want UnknownMonth", err)
	}
}

func TestIsLeap(t *testing.T) {
	t.Parallel()

	tests := []struct {
		year int
		want bool
	}{
		{2004, true},
		{2001, false},
		{1900, true}, // the retained rule has no century exception
		{2000, false},
		{-4, true},
	}
	for _, tt := range tests {
		if got := IsLeap(tt.year); got != tt.want {
			t.Errorf("IsLeap(%d) = %v, want %v", tt.year, got, tt.want)
		}
	}
}

func TestValidateYMD(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cal  Definition
		ymd  YMD
		want gederr.Kind
	}{
		{"plain date", Gregorian, YMD{2020, 3, 15}, 0},
		{"year only", Gregorian, YMD{1850, 0, 0}, 0},
		{"month only", Gregorian, YMD{1850, 6, 0}, 0},
		{"leap day", Gregorian, YMD{2004, 2, 29}, 0},
		{"non-leap day", Gregorian, YMD{2001, 2, 29}, gederr.DayOutOfRange},
		{"julian leap day", Julian, YMD{2004, 2, 29}, 0},
		{"zero year", Gregorian, YMD{0, 1, 1}, gederr.ZeroYear},
		{"negative year", Gregorian, YMD{-44, 3, 15}, 0},
		{"month 13", Gregorian, YMD{2000, 13, 1}, gederr.MonthOutOfRange},
		{"negative month", Gregorian, YMD{2000, -1, 1}, gederr.MonthOutOfRange},
		{"day 32", Gregorian, YMD{2000, 1, 32}, gederr.DayOutOfRange},
		{"negative day", Gregorian, YMD{2000, 1, -1}, gederr.DayOutOfRange},
		{"hebrew", Hebrew, YMD{5785, 1, 30}, 0},
		{"hebrew negative", Hebrew, YMD{-1, 1, 1}, gederr.DateBeforeStart},
		{"french first year", French, YMD{1, 0, 0}, 0},
		{"french last day", French, YMD{14, 4, 11}, 0},
		{"french after end", French, YMD{14, 4, 12}, gederr.DateAfterEnd},
		{"french complementary", French, YMD{3, 13, 6}, 0},
		{"french complementary 7", French, YMD{3, 13, 7}, gederr.DayOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateYMD(tt.cal, tt.ymd.Year, tt.ymd.Month, tt.ymd.Day)
			if tt.want == 0 {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestValidateYMDReportsDayBound(t *testing.T) {
	t.Parallel()

	err := ValidateYMD(Gregorian, 2001, 2, 29)
	var ge *gederr.Error
	if !errors.As(err, &ge) {
		t.Fatalf("error = %v, want *gederr.Error", err)
	}
	if len(ge.Args) == 0 || ge.Args[0] != 28 {
		t.Errorf("day bound = %v, want 28", ge.Args)
	}
}

func TestWeekdayOf(t *testing.T) {
	t.Parallel()

	w, ok := WeekdayOf(French, 10)
	if !ok || w.Name != "decadi" {
		t.Errorf("WeekdayOf(French, 10) = %+v, %v", w, ok)
	}
	if _, ok := WeekdayOf(Gregorian, 8); ok {
		t.Error("Gregorian has no eighth weekday")
	}
}
