// SPDX-License-Identifier: MPL-2.0

package payload

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gedforge/gedforge/pkg/gederr"
	"github.com/gedforge/gedforge/pkg/schema"
	"github.com/gedforge/gedforge/pkg/structure"
)

func TestToDecimal(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 168.150944, ToDecimal(DMS{168, 9, 3.4}, 6), 1e-9)
	assert.InDelta(t, -168.150944, ToDecimal(DMS{-168, 9, 3.4}, 6), 1e-9)
	assert.InDelta(t, 10.08, ToDecimal(DMS{10, 5, 1}, 2), 1e-9)
	assert.InDelta(t, 0.5, ToDecimal(DMS{0, 30, 0}, 6), 1e-9)
}

func TestToDMS(t *testing.T) {
	t.Parallel()

	d := ToDMS(49.29722222222, 10)
	assert.Equal(t, 49, d.Degrees)
	assert.Equal(t, 17, d.Minutes)
	assert.InDelta(t, 49.999999992, d.Seconds, 1e-6)

	d = ToDMS(-49.5, 6)
	assert.Equal(t, DMS{-49, 30, 0}, d)

	back := ToDecimal(ToDMS(48.856667, 6), 6)
	assert.InDelta(t, 48.856667, back, 1e-6)
}

func TestCoordinates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		fn   func(DMS) (string, error)
		in   DMS
		want string
		kind gederr.Kind
	}{
		{"north", Latitude, DMS{10, 5, 1}, "N10.083611", 0},
		{"south", Latitude, DMS{-18, 9, 3.4}, "S18.150944", 0},
		{"pole", Latitude, DMS{90, 0, 0}, "N90", 0},
		{"past pole", Latitude, DMS{90, 0, 1}, "", gederr.NotALatitude},
		{"east", Longitude, DMS{10, 5, 1}, "E10.083611", 0},
		{"west", Longitude, DMS{-168, 9, 3.4}, "W168.150944", 0},
		{"antimeridian", Longitude, DMS{-180, 0, 0}, "W180", 0},
		{"past antimeridian", Longitude, DMS{181, 0, 0}, "", gederr.NotALongitude},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := tt.fn(tt.in)
			if tt.kind != 0 {
				require.ErrorIs(t, err, tt.kind)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPlaceAndForm(t *testing.T) {
	t.Parallel()

	place, err := Place("Chicago", "Cook", "Illinois", "USA")
	require.NoError(t, err)
	assert.Equal(t, "Chicago, Cook, Illinois, USA", place)

	form, err := Form("City", "County", "State", "Country")
	require.NoError(t, err)
	assert.Equal(t, "City, County, State, Country", form)

	place, err = Place("", "Cook", "Illinois", "USA")
	require.NoError(t, err)
	assert.Equal(t, ", Cook, Illinois, USA", place)

	place, err = Place("Chicago", "", "", "")
	require.NoError(t, err)
	assert.Equal(t, "Chicago, , , ", place)

	_, err = List(" Chicago", "USA")
	assert.ErrorIs(t, err, gederr.NotAList)

	for _, s := range []string{place, form} {
		assert.NoError(t, structure.CheckPayload(schema.PayloadList, s))
	}
}

func TestName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		full    string
		surname string
		want    string
		kind    gederr.Kind
	}{
		{"Jim Smith", "Smith", "Jim /Smith/", 0},
		{" Jim      Smith ", "   Smith ", "Jim /Smith/", 0},
		{" Jim\n\n\nSmith\n", "\n\nSmith\n", "Jim /Smith/", 0},
		{"Smith Smith", "Smith", "/Smith/ Smith", 0},
		{"Jim Smith", "Jones", "Jim Smith", 0},
		{"Madonna", "", "Madonna", 0},
		{"Ludwig van Beethoven", "van Beethoven", "Ludwig /van Beethoven/", 0},
		{"Jim/Bob Smith", "Smith", "", gederr.NotAName},
		{"", "", "", gederr.NotAName},
	}
	for _, tt := range tests {
		got, err := Name(tt.full, tt.surname)
		if tt.kind != 0 {
			assert.ErrorIs(t, err, tt.kind, "Name(%q, %q)", tt.full, tt.surname)
			continue
		}
		if assert.NoError(t, err, "Name(%q, %q)", tt.full, tt.surname) {
			assert.Equal(t, tt.want, got)
		}
	}
}

func TestPhone(t *testing.T) {
	t.Parallel()

	got, err := Phone(1, 123, 456, 7890)
	require.NoError(t, err)
	assert.Equal(t, "+1 123 456 7890", got)

	got, err = Phone(44, 123, 456, 7890)
	require.NoError(t, err)
	assert.Equal(t, "+44 123 456 7890", got)

	tests := []struct {
		country, area, prefix, line int
		part                        string
	}{
		{0, 123, 456, 7890, "country"},
		{1000, 123, 456, 7890, "country"},
		{1, 1000, 456, 7890, "area"},
		{1, 123, -4, 7890, "prefix"},
		{1, 123, 456, 10000, "line"},
	}
	for _, tt := range tests {
		_, err := Phone(tt.country, tt.area, tt.prefix, tt.line)
		var ge *gederr.Error
		if assert.ErrorAs(t, err, &ge) {
			assert.Equal(t, gederr.PhoneOutOfRange, ge.Kind)
			assert.Equal(t, tt.part, ge.Value)
		}
	}
}
