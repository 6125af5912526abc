// SPDX-License-Identifier: MPL-2.0

package payload

import (
	"math"
	"strconv"

	"github.com/gedforge/gedforge/pkg/schema"
	"github.com/gedforge/gedforge/pkg/structure"
)

// DefaultPrecision is the number of decimal places Latitude and Longitude
// keep, about 0.1 m at the equator.
const DefaultPrecision = 6

const (
	minutesPerDegree = 60
	secondsPerDegree = 3600
)

// DMS is an angle in degrees, minutes and seconds. The sign of Degrees is
// the sign of the angle; Minutes and Seconds are magnitudes.
type DMS struct {
	Degrees int
	Minutes int
	Seconds float64
}

// ToDecimal converts d to decimal degrees rounded to precision places:
// {168, 9, 3.4} becomes 168.150944.
func ToDecimal(d DMS, precision int) float64 {
	sign := 1.0
	if d.Degrees < 0 {
		sign = -1
	}
	deg := math.Abs(float64(d.Degrees))
	v := deg + float64(d.Minutes)/minutesPerDegree + d.Seconds/secondsPerDegree
	return sign * round(v, precision)
}

// ToDMS splits decimal degrees into whole degrees, whole minutes and seconds
// rounded to precision places. A negative angle gives negative Degrees.
func ToDMS(decimal float64, precision int) DMS {
	sign := 1
	if decimal < 0 {
		sign = -1
	}
	abs := math.Abs(decimal)
	deg := math.Floor(abs)
	minutes := math.Floor((abs - deg) * minutesPerDegree)
	seconds := (abs - deg - minutes/minutesPerDegree) * secondsPerDegree
	return DMS{
		Degrees: sign * int(deg),
		Minutes: int(minutes),
		Seconds: round(seconds, precision),
	}
}

// Latitude renders d as a LATI payload such as "N18.150944". It fails with
// NotALatitude beyond 90 degrees.
func Latitude(d DMS) (string, error) {
	return coordinate(d, 'N', 'S', schema.PayloadLatitude)
}

// Longitude renders d as a LONG payload such as "W168.150944". It fails with
// NotALongitude beyond 180 degrees.
func Longitude(d DMS) (string, error) {
	return coordinate(d, 'E', 'W', schema.PayloadLongitude)
}

func coordinate(d DMS, positive, negative byte, kind schema.PayloadKind) (string, error) {
	v := ToDecimal(d, DefaultPrecision)
	hemisphere := positive
	if d.Degrees < 0 {
		hemisphere = negative
	}
	s := string(hemisphere) + strconv.FormatFloat(math.Abs(v), 'f', -1, 64)
	if err := structure.CheckPayload(kind, s); err != nil {
		return "", err
	}
	return s, nil
}

func round(v float64, precision int) float64 {
	scale := math.Pow10(precision)
	return math.Round(v*scale) / scale
}
