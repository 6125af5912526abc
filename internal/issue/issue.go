// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/slices"

	"github.com/gedforge/gedforge/pkg/gederr"
)

type Id int

const (
	FileNotFoundId Id = iota + 1
	DocumentParseFailedId
	DocumentInvalidId
	ConfigLoadFailedId
	PermissionDeniedId
	InvalidPayloadId

	// kindIdBase offsets the issues that explain one gederr.Kind.
	kindIdBase Id = 100
)

const specLink HttpLink = "https://gedcom.io/specifications/FamilySearchGEDCOMv7.html"

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink
	extLinks []HttpLink // external links that might be useful for the user
}

// kindDoc is the source of the issue explaining one error kind.
type kindDoc struct {
	summary string
	example string
	fixes   []string
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Kind returns the error kind the issue explains, or 0 for CLI issues.
func (i *Issue) Kind() gederr.Kind {
	if i.id <= kindIdBase {
		return 0
	}
	return gederr.Kind(i.id - kindIdBase)
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n## See also:\n"
		for _, link := range i.docLinks {
			extraMd += "\n- [" + string(link) + "](" + string(link) + ")"
		}
		for _, link := range i.extLinks {
			extraMd += "\n- [" + string(link) + "](" + string(link) + ")"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

// RenderWith renders the issue through r instead of glamour.
func (i *Issue) RenderWith(r Renderer, stylePath string) (string, error) {
	return r.Render(string(i.mdMsg), stylePath)
}

var (
	render = glamour.Render

	fileNotFoundIssue = &Issue{
		id: FileNotFoundId,
		mdMsg: `
# Document not found!

The file you passed could not be opened.

## Things you can try:
- Check the path and its spelling
- Create a starter document:
~~~
$ gedforge init family.ged
~~~`,
	}

	documentParseFailedIssue = &Issue{
		id: DocumentParseFailedId,
		mdMsg: `
# The document could not be read!

Every line must look like ` + "`{level} [{xref} ]{TAG}[ {payload}]`" + `.
The first line is at level 0, and each line is at most one level deeper
than the line before it.

## Example:
~~~
0 HEAD
1 GEDC
2 VERS 7.0
0 @I1@ INDI
1 NAME John /Smith/
0 TRLR
~~~

## Things you can try:
- Look at the line number in the error
- Check that records start with an identifier such as ` + "`@I1@`" + `
- Make sure every pointer names a record defined in the file`,
		extLinks: []HttpLink{specLink},
	}

	documentInvalidIssue = &Issue{
		id: DocumentInvalidId,
		mdMsg: `
# The document breaks the structure rules!

The file was read, but some structures have payloads or substructures the
format does not allow.

## Things you can try:
- Show every violation instead of the first one:
~~~
$ gedforge validate --all family.ged
~~~

- Explain one kind of violation:
~~~
$ gedforge explain MissingRequired
~~~`,
		extLinks: []HttpLink{specLink},
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

The configuration file is not valid CUE or does not match the schema.

## Things you can try:
- Print the file gedforge is reading:
~~~
$ gedforge config path
~~~

- Write a fresh default configuration:
~~~
$ gedforge config init
~~~

## Example configuration:
~~~cue
default_calendar: "GREGORIAN"
language:         "en"
log_level:        "info"
strict:           false
~~~`,
	}

	permissionDeniedIssue = &Issue{
		id: PermissionDeniedId,
		mdMsg: `
# Permission denied!

You don't have permission to read or write this file.

## Things you can try:
- Check file and directory permissions
- Write the output to a directory you own`,
	}

	invalidPayloadIssue = &Issue{
		id: InvalidPayloadId,
		mdMsg: `
# The value is not valid!

The payload you passed does not match the grammar of the command.

## Examples:
~~~
$ gedforge date "BET 1 JAN 1900 AND 1910"
$ gedforge exact "7 MAY 2024"
$ gedforge time "14:05:00Z"
$ gedforge age "> 2y 1m"
~~~`,
	}

	kindDocs = map[gederr.Kind]kindDoc{
		gederr.UnknownCalendar: {
			summary: "The calendar name is not one of GREGORIAN, JULIAN, HEBREW or FRENCH_R.",
			example: "2 DATE MAYAN 1 JAN 1900",
			fixes:   []string{"Use a supported calendar name", "Run `gedforge calendars` to list them"},
		},
		gederr.UnknownMonth: {
			summary: "The month is not an abbreviation from the calendar's month table.",
			example: "2 DATE 1 JANUARY 1900",
			fixes:   []string{"Use the three or four letter abbreviation, e.g. `JAN` or `VEND`", "Check that the month belongs to the calendar in front of it"},
		},
		gederr.ZeroYear: {
			summary: "Year 0 does not exist in this calendar.",
			example: "2 DATE JULIAN 0",
			fixes:   []string{"Use `1 BCE` for the year before year 1"},
		},
		gederr.MonthOutOfRange: {
			summary: "The month number is outside the calendar's month table.",
			example: "13 in a calendar with 12 months",
			fixes:   []string{"Use a month name instead of a number"},
		},
		gederr.DayOutOfRange: {
			summary: "The day is larger than the number of days in the month.",
			example: "2 DATE 29 FEB 2001",
			fixes:   []string{"Check the month length, including the leap year rule"},
		},
		gederr.DateBeforeStart: {
			summary: "The date is earlier than the first date of the calendar.",
			example: "2 DATE FRENCH_R 1 VEND 0",
			fixes:   []string{"Use another calendar for dates before it was introduced"},
		},
		gederr.DateAfterEnd: {
			summary: "The date is later than the last date of the calendar.",
			example: "2 DATE FRENCH_R 1 VEND 20",
			fixes:   []string{"Use another calendar for dates after it was abolished"},
		},
		gederr.BadColonCount: {
			summary: "A time must have exactly two colons.",
			example: "3 TIME 10:30",
			fixes:   []string{"Write the seconds too: `10:30:00`"},
		},
		gederr.BadSpacing: {
			summary: "An exact date is day, month and year separated by single spaces.",
			example: "2 DATE 7  MAY 2024",
			fixes:   []string{"Remove the extra spaces"},
		},
		gederr.TooLarge: {
			summary: "The payload is longer than its grammar allows.",
			example: "a date payload with trailing text",
			fixes:   []string{"Move free text into a PHRASE substructure"},
		},
		gederr.NotADate: {
			summary: "The payload matches none of the date shapes: a single date, a period or a range.",
			example: "2 DATE sometime in 1900",
			fixes:   []string{"Use `ABT 1900`, `BET 1899 AND 1901` or `FROM 1899 TO 1901`", "Keep the original wording in a PHRASE substructure"},
		},
		gederr.NotAnAge: {
			summary: "The payload is not an age such as `> 2y 1m 1w 1d`.",
			example: "2 AGE two years",
			fixes:   []string{"Write each unit as a number followed by y, m, w or d", "Prefix with `<` or `>` for bounds"},
		},
		gederr.NotAString: {
			summary: "The payload has the wrong type for the structure.",
			example: "1 MAP with a payload",
			fixes:   []string{"Remove the payload from structures that take none", "Point with an identifier where a pointer is expected"},
		},
		gederr.WrongXrefKind: {
			summary: "The pointer refers to a record of the wrong kind.",
			example: "1 FAMS @I1@",
			fixes:   []string{"Point FAMS and FAMC at FAM records", "Point HUSB, WIFE and CHIL at INDI records"},
		},
		gederr.NotPermitted: {
			summary: "The substructure is not allowed under its parent.",
			example: "1 SEX M\n2 DATE 1900",
			fixes:   []string{"Move the substructure under a parent that permits it", "Use an extension tag starting with `_`"},
		},
		gederr.OnlyOnePermitted: {
			summary: "The substructure may appear only once under its parent.",
			example: "1 SEX M\n1 SEX F",
			fixes:   []string{"Keep one occurrence"},
		},
		gederr.MissingRequired: {
			summary: "A required substructure is absent.",
			example: "0 HEAD\n(no GEDC)",
			fixes:   []string{"Add the missing substructure"},
		},
		gederr.NotAValidEnum: {
			summary: "The payload is not one of the values the structure allows.",
			example: "1 SEX Q",
			fixes:   []string{"Use one of the listed values", "Keep the original wording in a PHRASE substructure"},
		},
		gederr.DuplicateXref: {
			summary: "The identifier is already used by another record in the document.",
			example: "0 @I1@ INDI\n0 @I1@ FAM",
			fixes:   []string{"Give each record its own identifier"},
		},
		gederr.NotATime: {
			summary: "The time has fields that are not numbers.",
			example: "3 TIME ab:cd:ef",
			fixes:   []string{"Write `hh:mm:ss` with an optional fraction and `Z`"},
		},
		gederr.TimeOutOfRange: {
			summary: "The hour, minute or second is out of range.",
			example: "3 TIME 24:00:00",
			fixes:   []string{"Hours run from 0 to 23, minutes and seconds from 0 to 59"},
		},
		gederr.NotAnInteger: {
			summary: "The payload is not a non-negative integer.",
			example: "1 NCHI three",
			fixes:   []string{"Write the number with digits"},
		},
		gederr.NotYOrNull: {
			summary: "An event payload is either `Y` or empty.",
			example: "1 BIRT yes",
			fixes:   []string{"Write `Y` to state the event happened without details"},
		},
		gederr.NotALanguage: {
			summary: "The payload is not a BCP 47 language tag.",
			example: "1 LANG english",
			fixes:   []string{"Use a tag such as `en`, `fr` or `de-CH`"},
		},
		gederr.NotAMediaType: {
			summary: "The payload is not a media type.",
			example: "2 FORM jpeg",
			fixes:   []string{"Write `type/subtype`, e.g. `image/jpeg`"},
		},
		gederr.NotALatitude: {
			summary: "The latitude is malformed or beyond 90 degrees.",
			example: "4 LATI 48.85",
			fixes:   []string{"Prefix with N or S: `N48.85`"},
		},
		gederr.NotALongitude: {
			summary: "The longitude is malformed or beyond 180 degrees.",
			example: "4 LONG 2.35",
			fixes:   []string{"Prefix with E or W: `E2.35`"},
		},
		gederr.UnknownXref: {
			summary: "The pointer names an identifier no record declares.",
			example: "1 FAMS @F9@",
			fixes:   []string{"Add the record, or point at `@VOID@`"},
		},
		gederr.MissingRecord: {
			summary: "The identifier was created but its record was never added to the document.",
			example: "1 FAMS @F1@ without 0 @F1@ FAM",
			fixes:   []string{"Stage the record before rendering"},
		},
		gederr.BadLevel: {
			summary: "The line's level breaks the nesting of the document.",
			example: "0 HEAD\n2 GEDC",
			fixes:   []string{"Start at level 0", "Go at most one level deeper per line"},
		},
		gederr.MultipleHeaders: {
			summary: "A document has exactly one header.",
			example: "0 HEAD\n0 HEAD",
			fixes:   []string{"Merge the headers"},
		},
		gederr.MalformedSchema: {
			summary: "A structure definition is inconsistent, for instance a required substructure that is not permitted.",
			example: "Required: [DATE], Permitted: []",
			fixes:   []string{"Fix the schema table; this is a programming error"},
		},
		gederr.NotAList: {
			summary: "A list payload may not start or end with a space next to an item.",
			example: "2 PLAC  Paris, France",
			fixes:   []string{"Remove the leading and trailing spaces", "Separate items with a comma: `City, County, Country`"},
		},
		gederr.NotAName: {
			summary: "A personal name holds at most one surname between two slashes and no line breaks.",
			example: "1 NAME John /Smith",
			fixes:   []string{"Close the surname: `John /Smith/`", "Drop the slashes when there is no surname"},
		},
		gederr.NotAFilePath: {
			summary: "A file reference must be a URL or a relative path using forward slashes.",
			example: "1 FILE media\\photo one.jpg",
			fixes:   []string{"Use forward slashes: `media/photo.jpg`", "Percent-encode spaces: `photo%20one.jpg`"},
		},
		gederr.PhoneOutOfRange: {
			summary: "A composed telephone number has a part with too many digits or a zero part.",
			example: "country 1, area 1000, prefix 456, line 7890",
			fixes:   []string{"Keep the country, area and prefix parts below 1000 and the line below 10000"},
		},
	}

	issues = buildIssues()
)

func buildIssues() map[Id]*Issue {
	m := map[Id]*Issue{
		fileNotFoundIssue.Id():        fileNotFoundIssue,
		documentParseFailedIssue.Id(): documentParseFailedIssue,
		documentInvalidIssue.Id():     documentInvalidIssue,
		configLoadFailedIssue.Id():    configLoadFailedIssue,
		permissionDeniedIssue.Id():    permissionDeniedIssue,
		invalidPayloadIssue.Id():      invalidPayloadIssue,
	}
	for kind, doc := range kindDocs {
		m[KindId(kind)] = &Issue{
			id:       KindId(kind),
			mdMsg:    kindMarkdown(kind, doc),
			extLinks: []HttpLink{specLink},
		}
	}
	return m
}

func kindMarkdown(kind gederr.Kind, doc kindDoc) MarkdownMsg {
	var b strings.Builder
	fmt.Fprintf(&b, "\n# %s\n\n%s\n\n## Example:\n~~~\n%s\n~~~\n\n## Things you can try:\n", kind, doc.summary, doc.example)
	for _, fix := range doc.fixes {
		b.WriteString("- ")
		b.WriteString(fix)
		b.WriteString("\n")
	}
	return MarkdownMsg(b.String())
}

// KindId returns the id of the issue explaining kind.
func KindId(kind gederr.Kind) Id {
	return kindIdBase + Id(kind)
}

// Values returns every issue ordered by id.
func Values() []*Issue {
	out := make([]*Issue, 0, len(issues))
	for _, i := range issues {
		out = append(out, i)
	}
	slices.SortFunc(out, func(a, b *Issue) int { return int(a.id) - int(b.id) })
	return out
}

func Get(id Id) *Issue {
	return issues[id]
}

// ForKind returns the issue explaining kind, or nil.
func ForKind(kind gederr.Kind) *Issue {
	return issues[KindId(kind)]
}
