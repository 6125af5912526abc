// SPDX-License-Identifier: MPL-2.0

package structure

import (
	"mime"
	"net/url"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/language"

	"github.com/gedforge/gedforge/pkg/gederr"
	"github.com/gedforge/gedforge/pkg/schema"
	"github.com/gedforge/gedforge/pkg/temporal"
)

// Coordinate bounds in degrees.
const (
	maxLatitude  = 90.0
	maxLongitude = 180.0
)

// grammars maps every payload kind to the check its text must pass. Kinds
// whose payload is checked elsewhere (pointers, enumerations, no payload)
// map to acceptAny.
var grammars = [...]func(string) error{
	schema.PayloadNone:       acceptAny,
	schema.PayloadString:     acceptAny,
	schema.PayloadEnum:       acceptAny,
	schema.PayloadXref:       acceptAny,
	schema.PayloadDate:       checkDate,
	schema.PayloadDateExact:  checkDateExact,
	schema.PayloadTime:       checkTime,
	schema.PayloadAge:        checkAge,
	schema.PayloadDatePeriod: checkDatePeriod,
	schema.PayloadYOrNull:    checkYOrNull,
	schema.PayloadInteger:    checkInteger,
	schema.PayloadLanguage:   checkLanguage,
	schema.PayloadMediaType:  checkMediaType,
	schema.PayloadLatitude:   checkLatitude,
	schema.PayloadLongitude:  checkLongitude,
	schema.PayloadList:       checkList,
	schema.PayloadName:       checkName,
	schema.PayloadFilePath:   checkFilePath,
}

// CheckPayload runs the grammar of kind against text.
func CheckPayload(kind schema.PayloadKind, text string) error {
	if ok, errs := kind.IsValid(); !ok {
		return errs[0]
	}
	return grammars[kind](text)
}

func acceptAny(string) error { return nil }

func checkDate(s string) error {
	_, err := temporal.ParseDate(s)
	return err
}

func checkDateExact(s string) error {
	_, err := temporal.ParseDateExact(s)
	return err
}

func checkTime(s string) error {
	_, err := temporal.ParseTime(s)
	return err
}

func checkAge(s string) error {
	_, err := temporal.ParseAge(s)
	return err
}

func checkDatePeriod(s string) error {
	_, err := temporal.ParseDatePeriod(s)
	return err
}

func checkYOrNull(s string) error {
	if s != "" && s != "Y" {
		return gederr.New(gederr.NotYOrNull, s)
	}
	return nil
}

func checkInteger(s string) error {
	if s == "" || strings.TrimLeft(s, "0123456789") != "" {
		return gederr.New(gederr.NotAnInteger, s)
	}
	return nil
}

func checkLanguage(s string) error {
	if s == "" {
		return gederr.New(gederr.NotALanguage, s)
	}
	if _, err := language.Parse(s); err != nil {
		return gederr.New(gederr.NotALanguage, s)
	}
	return nil
}

func checkMediaType(s string) error {
	mt, _, err := mime.ParseMediaType(s)
	if err != nil || !strings.Contains(mt, "/") {
		return gederr.New(gederr.NotAMediaType, s)
	}
	return nil
}

func checkLatitude(s string) error {
	if !checkCoordinate(s, "NS", maxLatitude) {
		return gederr.New(gederr.NotALatitude, s)
	}
	return nil
}

func checkLongitude(s string) error {
	if !checkCoordinate(s, "EW", maxLongitude) {
		return gederr.New(gederr.NotALongitude, s)
	}
	return nil
}

// checkCoordinate accepts a hemisphere letter followed by a decimal number
// of degrees no greater than limit, e.g. "N18.150944".
func checkCoordinate(s, hemispheres string, limit float64) bool {
	if len(s) < 2 || !strings.ContainsRune(hemispheres, rune(s[0])) {
		return false
	}
	digits := s[1:]
	whole, frac, hasDot := strings.Cut(digits, ".")
	if whole == "" || !isDigits(whole) || (hasDot && (frac == "" || !isDigits(frac))) {
		return false
	}
	v, err := strconv.ParseFloat(digits, 64)
	return err == nil && v <= limit
}

// checkList accepts items separated by commas. Spaces next to a comma belong
// to the separator, so only a non-empty first item may not start with a
// space and a non-empty last item may not end with one. Empty items are
// allowed: ", , Illinois, USA" names a place by state.
func checkList(s string) error {
	items := strings.Split(s, ",")
	first, last := items[0], items[len(items)-1]
	bad := len(items) == 1 && first != strings.Trim(first, " ")
	if strings.Trim(first, " ") != "" && strings.HasPrefix(first, " ") {
		bad = true
	}
	if strings.Trim(last, " ") != "" && strings.HasSuffix(last, " ") {
		bad = true
	}
	if bad {
		return gederr.New(gederr.NotAList, s)
	}
	return nil
}

// checkName accepts a personal name with at most one surname set off by a
// pair of slashes, e.g. "John /Smith/ Jr.".
func checkName(s string) error {
	if s == "" || strings.IndexFunc(s, unicode.IsControl) >= 0 {
		return gederr.New(gederr.NotAName, s)
	}
	if n := strings.Count(s, "/"); n != 0 && n != 2 {
		return gederr.New(gederr.NotAName, s)
	}
	return nil
}

// checkFilePath accepts a URI reference: an absolute URL or a relative path
// with forward slashes and no unescaped spaces.
func checkFilePath(s string) error {
	if s == "" || strings.ContainsRune(s, '\\') || strings.IndexFunc(s, unicode.IsSpace) >= 0 {
		return gederr.New(gederr.NotAFilePath, s)
	}
	if _, err := url.Parse(s); err != nil {
		return gederr.New(gederr.NotAFilePath, s)
	}
	return nil
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
