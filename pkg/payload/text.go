// SPDX-License-Identifier: MPL-2.0

package payload

import (
	"strconv"
	"strings"

	"github.com/gedforge/gedforge/pkg/gederr"
	"github.com/gedforge/gedforge/pkg/schema"
	"github.com/gedforge/gedforge/pkg/structure"
)

// ListSeparator joins the items of a list payload.
const ListSeparator = ", "

// Phone part bounds, exclusive.
const (
	maxCountryCode = 1000
	maxAreaCode    = 1000
	maxPrefix      = 1000
	maxLine        = 10000
)

// List joins items into a list payload. Items keep their position even when
// empty, so List("", "Cook", "Illinois", "USA") is ", Cook, Illinois, USA".
func List(items ...string) (string, error) {
	s := strings.Join(items, ListSeparator)
	if err := structure.CheckPayload(schema.PayloadList, s); err != nil {
		return "", err
	}
	return s, nil
}

// Place renders the four jurisdictions of a PLAC payload, smallest first:
// Place("Chicago", "Cook", "Illinois", "USA").
func Place(city, county, state, country string) (string, error) {
	return List(city, county, state, country)
}

// Form renders the jurisdiction names of a PLAC.FORM payload in the same
// order as Place.
func Form(city, county, state, country string) (string, error) {
	return List(city, county, state, country)
}

// Name renders a NAME payload with surname set off by slashes. Runs of
// whitespace, line breaks included, collapse to one space in both
// arguments. Only the first occurrence of surname is marked; when surname is
// empty or absent the name is returned without slashes.
func Name(full, surname string) (string, error) {
	full = collapse(full)
	surname = collapse(surname)
	if surname != "" {
		full = strings.Replace(full, surname, "/"+surname+"/", 1)
	}
	if err := structure.CheckPayload(schema.PayloadName, full); err != nil {
		return "", err
	}
	return full, nil
}

// Phone renders a telephone number in ITU-T E.123 international notation,
// e.g. "+1 123 456 7890". Each part must be positive and fit its digit
// count.
func Phone(country, area, prefix, line int) (string, error) {
	parts := []struct {
		name  string
		value int
		limit int
	}{
		{"country", country, maxCountryCode},
		{"area", area, maxAreaCode},
		{"prefix", prefix, maxPrefix},
		{"line", line, maxLine},
	}
	fields := make([]string, len(parts))
	for i, p := range parts {
		if p.value <= 0 || p.value >= p.limit {
			return "", gederr.New(gederr.PhoneOutOfRange, p.name, p.value, p.limit-1)
		}
		fields[i] = strconv.Itoa(p.value)
	}
	return "+" + strings.Join(fields, " "), nil
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
