// SPDX-License-Identifier: MPL-2.0

package calendar

import (
	"strings"

	"github.com/gedforge/gedforge/pkg/gederr"
)

// Calendar names as they appear in date payloads.
const (
	GregorianName = "GREGORIAN"
	JulianName    = "JULIAN"
	HebrewName    = "HEBREW"
	FrenchName    = "FRENCH_R"
)

var westernMonths = []Month{
	{0, "", 0, ""},
	{1, "January", 31, "JAN"},
	{2, "February", 28, "FEB"},
	{3, "March", 31, "MAR"},
	{4, "April", 30, "APR"},
	{5, "May", 31, "MAY"},
	{6, "June", 30, "JUN"},
	{7, "July", 31, "JUL"},
	{8, "August", 31, "AUG"},
	{9, "September", 30, "SEP"},
	{10, "October", 31, "OCT"},
	{11, "November", 30, "NOV"},
	{12, "December", 31, "DEC"},
}

var westernWeekdays = []Weekday{
	{1, "Sunday", "SUN"},
	{2, "Monday", "MON"},
	{3, "Tuesday", "TUE"},
	{4, "Wednesday", "WED"},
	{5, "Thursday", "THU"},
	{6, "Friday", "FRI"},
	{7, "Saturday", "SAT"},
}

var (
	// Gregorian is the civil calendar. Years before 1 carry the BCE label.
	Gregorian = Definition{
		Name:               GregorianName,
		Months:             westernMonths,
		Weekdays:           westernWeekdays,
		Epoch:              "BCE",
		AllowsNegativeYear: true,
		leapFebruary:       true,
	}

	// Julian shares the Gregorian month table and era label.
	Julian = Definition{
		Name:               JulianName,
		Months:             westernMonths,
		Weekdays:           westernWeekdays,
		Epoch:              "BCE",
		AllowsNegativeYear: true,
		leapFebruary:       true,
	}

	// Hebrew months carry their longest day count. Years start at 1 AM.
	Hebrew = Definition{
		Name: HebrewName,
		Months: []Month{
			{0, "", 0, ""},
			{1, "Tishrei", 30, "TSH"},
			{2, "Cheshvan", 30, "CSH"},
			{3, "Kislev", 30, "KSL"},
			{4, "Tevet", 29, "TVT"},
			{5, "Shevat", 30, "SHV"},
			{6, "Adar I", 30, "ADR"},
			{7, "Adar", 29, "ADS"},
			{8, "Nisan", 30, "NSN"},
			{9, "Iyar", 29, "IYR"},
			{10, "Sivan", 30, "SVN"},
			{11, "Tammuz", 29, "TMZ"},
			{12, "Av", 30, "AAV"},
			{13, "Elul", 29, "ELL"},
		},
		Weekdays: []Weekday{
			{1, "Yom Rishon", ""},
			{2, "Yom Sheni", ""},
			{3, "Yom Shlishi", ""},
			{4, "Yom Revii", ""},
			{5, "Yom Hamishi", ""},
			{6, "Yom Shishi", ""},
			{7, "Yom Shabbat", ""},
		},
		Start: &YMD{Year: 1, Month: 1, Day: 1},
	}

	// French is the French Republican calendar: twelve months of thirty days
	// plus the complementary days, in use from year I to 11 Nivose XIV.
	French = Definition{
		Name: FrenchName,
		Months: []Month{
			{0, "", 0, ""},
			{1, "Vendemiaire", 30, "VEND"},
			{2, "Brumaire", 30, "BRUM"},
			{3, "Frimaire", 30, "FRIM"},
			{4, "Nivose", 30, "NIVO"},
			{5, "Pluviose", 30, "PLUV"},
			{6, "Ventose", 30, "VENT"},
			{7, "Germinal", 30, "GERM"},
			{8, "Floreal", 30, "FLOR"},
			{9, "Prairial", 30, "PRAI"},
			{10, "Messidor", 30, "MESS"},
			{11, "Thermidor", 30, "THER"},
			{12, "Fructidor", 30, "FRUC"},
			{13, "Sansculottides", 6, "COMP"},
		},
		Weekdays: []Weekday{
			{1, "primidi", ""},
			{2, "duodi", ""},
			{3, "tridi", ""},
			{4, "quartidi", ""},
			{5, "quintidi", ""},
			{6, "sextidi", ""},
			{7, "septidi", ""},
			{8, "octidi", ""},
			{9, "nonidi", ""},
			{10, "decadi", ""},
		},
		Start: &YMD{Year: 1, Month: 1, Day: 1},
		End:   &YMD{Year: 14, Month: 4, Day: 11},
	}

	catalog = []Definition{Gregorian, Julian, Hebrew, French}
)

// Lookup returns the calendar registered under name, ignoring case.
func Lookup(name string) (Definition, error) {
	want := strings.ToUpper(strings.TrimSpace(name))
	for _, c := range catalog {
		if c.Name == want {
			return c, nil
		}
	}
	return Definition{}, gederr.New(gederr.UnknownCalendar, name)
}

// IsCalendar reports whether name is a registered calendar.
func IsCalendar(name string) bool {
	_, err := Lookup(name)
	return err == nil
}

// Names returns the registered calendar names in catalog order.
func Names() []string {
	names := make([]string, len(catalog))
	for i, c := range catalog {
		names[i] = c.Name
	}
	return names
}

// All returns every registered definition in catalog order.
func All() []Definition {
	out := make([]Definition, len(catalog))
	copy(out, catalog)
	return out
}
