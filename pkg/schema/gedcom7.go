// SPDX-License-Identifier: MPL-2.0

package schema

import (
	"sync"

	"github.com/gedforge/gedforge/pkg/xref"
)

// Version is the format version the default table describes.
const Version = "7.0"

var (
	eventDetail = []string{
		"TYPE", "DATE", "PLAC", "AGNC", "RELI", "CAUS", "RESN",
		"NOTE", "SNOTE", "SOUR", "OBJE", "UID",
	}
	eventSingletons = []string{"TYPE", "DATE", "PLAC", "AGNC", "RELI", "CAUS", "RESN"}

	indiEventDetail     = append(slicesOf(eventDetail), "AGE")
	indiEventSingletons = append(slicesOf(eventSingletons), "AGE")

	famEventDetail     = append(slicesOf(eventDetail), "FAM-HUSB-AGE", "FAM-WIFE-AGE")
	famEventSingletons = append(slicesOf(eventSingletons), "FAM-HUSB-AGE", "FAM-WIFE-AGE")

	identifiers    = []string{"REFN", "UID", "EXID"}
	recordTail     = []string{"NOTE", "SNOTE", "SOUR", "OBJE", "CHAN", "CREA"}
	recordTailOnce = []string{"CHAN", "CREA"}
	contact        = []string{"ADDR", "PHON", "EMAIL", "FAX", "WWW"}

	defaultTable     *Table
	defaultTableOnce sync.Once
)

func slicesOf(s []string) []string { return append([]string(nil), s...) }

func concat(parts ...[]string) []string {
	var out []string
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func leaf(key, tag string, payload PayloadKind) Schema {
	return Schema{Key: key, Tag: tag, Payload: payload}
}

func pointer(key, tag string, kind xref.Kind, permitted ...string) Schema {
	return Schema{Key: key, Tag: tag, Payload: PayloadXref, XrefKind: kind, Permitted: permitted, Singleton: permitted}
}

func enum(key, tag string, values ...string) Schema {
	return Schema{Key: key, Tag: tag, Payload: PayloadEnum, Enum: values, Permitted: []string{"PHRASE"}, Singleton: []string{"PHRASE"}}
}

func event(key, tag string, detail, once []string) Schema {
	return Schema{Key: key, Tag: tag, Payload: PayloadYOrNull, Permitted: detail, Singleton: once}
}

func attribute(key, tag string, payload PayloadKind, detail, once []string) Schema {
	return Schema{Key: key, Tag: tag, Payload: payload, Permitted: detail, Singleton: once}
}

// gedcom7 lists the structures of the default table.
func gedcom7() []Schema {
	return []Schema{
		// Header.
		{
			Key: HeaderKey, Tag: "HEAD", Payload: PayloadNone,
			Permitted: []string{"GEDC", "SCHMA", "HEAD-SOUR", "DEST", "HEAD-DATE", "SUBM", "COPR", "HEAD-LANG", "HEAD-PLAC", "NOTE", "SNOTE"},
			Required:  []string{"GEDC"},
			Singleton: []string{"GEDC", "SCHMA", "HEAD-SOUR", "DEST", "HEAD-DATE", "SUBM", "COPR", "HEAD-LANG", "HEAD-PLAC", "NOTE", "SNOTE"},
		},
		{Key: "GEDC", Tag: "GEDC", Payload: PayloadNone, Permitted: []string{"GEDC-VERS"}, Required: []string{"GEDC-VERS"}, Singleton: []string{"GEDC-VERS"}},
		leaf("GEDC-VERS", "VERS", PayloadString),
		{Key: "SCHMA", Tag: "SCHMA", Payload: PayloadNone, Permitted: []string{"TAG"}},
		leaf("TAG", "TAG", PayloadString),
		{
			Key: "HEAD-SOUR", Tag: "SOUR", Payload: PayloadString,
			Permitted: []string{"VERS", "NAME", "CORP", "HEAD-SOUR-DATA"},
			Singleton: []string{"VERS", "NAME", "CORP", "HEAD-SOUR-DATA"},
		},
		leaf("VERS", "VERS", PayloadString),
		{Key: "CORP", Tag: "CORP", Payload: PayloadString, Permitted: contact},
		{Key: "HEAD-SOUR-DATA", Tag: "DATA", Payload: PayloadString, Permitted: []string{"HEAD-SOUR-DATA-DATE", "COPR"}, Singleton: []string{"HEAD-SOUR-DATA-DATE", "COPR"}},
		{Key: "HEAD-SOUR-DATA-DATE", Tag: "DATE", Payload: PayloadDateExact, Permitted: []string{"TIME"}, Singleton: []string{"TIME"}},
		leaf("DEST", "DEST", PayloadString),
		{Key: "HEAD-DATE", Tag: "DATE", Payload: PayloadDateExact, Permitted: []string{"TIME"}, Singleton: []string{"TIME"}},
		leaf("COPR", "COPR", PayloadString),
		leaf("HEAD-LANG", "LANG", PayloadLanguage),
		{Key: "HEAD-PLAC", Tag: "PLAC", Payload: PayloadNone, Permitted: []string{"HEAD-PLAC-FORM"}, Required: []string{"HEAD-PLAC-FORM"}, Singleton: []string{"HEAD-PLAC-FORM"}},
		leaf("HEAD-PLAC-FORM", "FORM", PayloadList),

		// Shared substructures.
		leaf("PHRASE", "PHRASE", PayloadString),
		leaf("NAME", "NAME", PayloadString),
		{Key: "TYPE", Tag: "TYPE", Payload: PayloadString},
		{Key: "DATE", Tag: "DATE", Payload: PayloadDate, Permitted: []string{"TIME", "PHRASE"}, Singleton: []string{"TIME", "PHRASE"}},
		{Key: "DATE-exact", Tag: "DATE", Payload: PayloadDateExact, Permitted: []string{"TIME"}, Singleton: []string{"TIME"}},
		leaf("TIME", "TIME", PayloadTime),
		{Key: "AGE", Tag: "AGE", Payload: PayloadAge, Permitted: []string{"PHRASE"}, Singleton: []string{"PHRASE"}},
		{
			Key: "PLAC", Tag: "PLAC", Payload: PayloadList,
			Permitted: []string{"PLAC-FORM", "LANG", "MAP", "EXID", "NOTE", "SNOTE"},
			Singleton: []string{"PLAC-FORM", "LANG", "MAP"},
		},
		leaf("PLAC-FORM", "FORM", PayloadList),
		{Key: "MAP", Tag: "MAP", Payload: PayloadNone, Permitted: []string{"LATI", "LONG"}, Required: []string{"LATI", "LONG"}, Singleton: []string{"LATI", "LONG"}},
		leaf("LATI", "LATI", PayloadLatitude),
		leaf("LONG", "LONG", PayloadLongitude),
		leaf("LANG", "LANG", PayloadLanguage),
		leaf("MIME", "MIME", PayloadMediaType),
		{Key: "NOTE", Tag: "NOTE", Payload: PayloadString, Permitted: []string{"MIME", "LANG", "TRAN", "SOUR"}, Singleton: []string{"MIME", "LANG"}},
		{Key: "TRAN", Tag: "TRAN", Payload: PayloadString, Permitted: []string{"MIME", "LANG"}, Singleton: []string{"MIME", "LANG"}},
		pointer("SNOTE", "SNOTE", xref.SharedNote),
		{
			Key: "SOUR", Tag: "SOUR", Payload: PayloadXref, XrefKind: xref.Source,
			Permitted: []string{"PAGE", "SOUR-DATA", "EVEN", "QUAY", "OBJE", "NOTE", "SNOTE"},
			Singleton: []string{"PAGE", "SOUR-DATA", "EVEN", "QUAY"},
		},
		leaf("PAGE", "PAGE", PayloadString),
		{Key: "SOUR-DATA", Tag: "DATA", Payload: PayloadNone, Permitted: []string{"DATE", "TEXT"}, Singleton: []string{"DATE"}},
		{Key: "TEXT", Tag: "TEXT", Payload: PayloadString, Permitted: []string{"MIME", "LANG"}, Singleton: []string{"MIME", "LANG"}},
		{Key: "EVEN", Tag: "EVEN", Payload: PayloadString, Permitted: []string{"PHRASE", "ROLE"}, Singleton: []string{"PHRASE", "ROLE"}},
		enum("QUAY", "QUAY", "0", "1", "2", "3"),
		{Key: "OBJE", Tag: "OBJE", Payload: PayloadXref, XrefKind: xref.Multimedia, Permitted: []string{"CROP", "TITL"}, Singleton: []string{"CROP", "TITL"}},
		{Key: "CROP", Tag: "CROP", Payload: PayloadNone, Permitted: []string{"TOP", "LEFT", "HEIGHT", "WIDTH"}, Singleton: []string{"TOP", "LEFT", "HEIGHT", "WIDTH"}},
		leaf("TOP", "TOP", PayloadInteger),
		leaf("LEFT", "LEFT", PayloadInteger),
		leaf("HEIGHT", "HEIGHT", PayloadInteger),
		leaf("WIDTH", "WIDTH", PayloadInteger),
		leaf("TITL", "TITL", PayloadString),
		{Key: "REFN", Tag: "REFN", Payload: PayloadString, Permitted: []string{"TYPE"}, Singleton: []string{"TYPE"}},
		leaf("UID", "UID", PayloadString),
		{Key: "EXID", Tag: "EXID", Payload: PayloadString, Permitted: []string{"EXID-TYPE"}, Singleton: []string{"EXID-TYPE"}},
		leaf("EXID-TYPE", "TYPE", PayloadString),
		enum("RESN", "RESN", "CONFIDENTIAL", "LOCKED", "PRIVACY"),
		{Key: "CHAN", Tag: "CHAN", Payload: PayloadNone, Permitted: []string{"DATE-exact", "NOTE", "SNOTE"}, Required: []string{"DATE-exact"}, Singleton: []string{"DATE-exact"}},
		{Key: "CREA", Tag: "CREA", Payload: PayloadNone, Permitted: []string{"DATE-exact"}, Required: []string{"DATE-exact"}, Singleton: []string{"DATE-exact"}},
		leaf("AGNC", "AGNC", PayloadString),
		leaf("RELI", "RELI", PayloadString),
		leaf("CAUS", "CAUS", PayloadString),
		{Key: "ADDR", Tag: "ADDR", Payload: PayloadString, Permitted: []string{"ADR1", "CITY", "STAE", "POST", "CTRY"}, Singleton: []string{"ADR1", "CITY", "STAE", "POST", "CTRY"}},
		leaf("ADR1", "ADR1", PayloadString),
		leaf("CITY", "CITY", PayloadString),
		leaf("STAE", "STAE", PayloadString),
		leaf("POST", "POST", PayloadString),
		leaf("CTRY", "CTRY", PayloadString),
		leaf("PHON", "PHON", PayloadString),
		leaf("EMAIL", "EMAIL", PayloadString),
		leaf("FAX", "FAX", PayloadString),
		leaf("WWW", "WWW", PayloadString),
		pointer("SUBM", "SUBM", xref.Submitter),
		{Key: "ASSO", Tag: "ASSO", Payload: PayloadXref, XrefKind: xref.Individual, Permitted: []string{"PHRASE", "ROLE", "NOTE", "SNOTE", "SOUR"}, Required: []string{"ROLE"}, Singleton: []string{"PHRASE", "ROLE"}},
		enum("ROLE", "ROLE", "CHIL", "CLERGY", "FATH", "FRIEND", "GODP", "HUSB", "MOTH", "MULTIPLE", "NGHBR", "OFFICIATOR", "PARENT", "SPOU", "WIFE", "WITN", "OTHER"),

		// Individual.
		{
			Key: "record-INDI", Tag: "INDI", Payload: PayloadNone, Record: xref.Individual,
			Permitted: concat(
				[]string{"RESN", "INDI-NAME", "SEX"},
				[]string{"BIRT", "CHR", "BAPM", "DEAT", "BURI", "CREM", "ADOP", "EMIG", "IMMI", "NATU", "CENS"},
				[]string{"OCCU", "EDUC", "INDI-RELI", "NATI", "RESI", "NCHI", "NMR", "TITL-INDI"},
				[]string{"INDI-FAMC", "FAMS", "ASSO", "ALIA", "SUBM"},
				identifiers, recordTail,
			),
			Singleton: concat([]string{"RESN", "SEX"}, recordTailOnce),
		},
		{
			Key: "INDI-NAME", Tag: "NAME", Payload: PayloadName,
			Permitted: []string{"NAME-TYPE", "NPFX", "GIVN", "NICK", "SPFX", "SURN", "NSFX", "NAME-TRAN", "NOTE", "SNOTE", "SOUR"},
			Singleton: []string{"NAME-TYPE"},
		},
		enum("NAME-TYPE", "TYPE", "AKA", "BIRTH", "IMMIGRANT", "MAIDEN", "MARRIED", "PROFESSIONAL", "OTHER"),
		leaf("NPFX", "NPFX", PayloadString),
		leaf("GIVN", "GIVN", PayloadString),
		leaf("NICK", "NICK", PayloadString),
		leaf("SPFX", "SPFX", PayloadString),
		leaf("SURN", "SURN", PayloadString),
		leaf("NSFX", "NSFX", PayloadString),
		{Key: "NAME-TRAN", Tag: "TRAN", Payload: PayloadName, Permitted: []string{"LANG", "GIVN", "SURN"}, Required: []string{"LANG"}, Singleton: []string{"LANG"}},
		{Key: "SEX", Tag: "SEX", Payload: PayloadEnum, Enum: []string{"M", "F", "X", "U"}},
		event("BIRT", "BIRT", concat(indiEventDetail, []string{"BIRT-FAMC"}), concat(indiEventSingletons, []string{"BIRT-FAMC"})),
		pointer("BIRT-FAMC", "FAMC", xref.Family),
		event("CHR", "CHR", indiEventDetail, indiEventSingletons),
		event("BAPM", "BAPM", indiEventDetail, indiEventSingletons),
		event("DEAT", "DEAT", indiEventDetail, indiEventSingletons),
		event("BURI", "BURI", indiEventDetail, indiEventSingletons),
		event("CREM", "CREM", indiEventDetail, indiEventSingletons),
		event("ADOP", "ADOP", indiEventDetail, indiEventSingletons),
		event("EMIG", "EMIG", indiEventDetail, indiEventSingletons),
		event("IMMI", "IMMI", indiEventDetail, indiEventSingletons),
		event("NATU", "NATU", indiEventDetail, indiEventSingletons),
		event("CENS", "CENS", indiEventDetail, indiEventSingletons),
		attribute("OCCU", "OCCU", PayloadString, indiEventDetail, indiEventSingletons),
		attribute("EDUC", "EDUC", PayloadString, indiEventDetail, indiEventSingletons),
		attribute("INDI-RELI", "RELI", PayloadString, indiEventDetail, indiEventSingletons),
		attribute("NATI", "NATI", PayloadString, indiEventDetail, indiEventSingletons),
		attribute("RESI", "RESI", PayloadString, indiEventDetail, indiEventSingletons),
		attribute("NCHI", "NCHI", PayloadInteger, indiEventDetail, indiEventSingletons),
		attribute("NMR", "NMR", PayloadInteger, indiEventDetail, indiEventSingletons),
		attribute("TITL-INDI", "TITL", PayloadString, indiEventDetail, indiEventSingletons),
		{Key: "INDI-FAMC", Tag: "FAMC", Payload: PayloadXref, XrefKind: xref.Family, Permitted: []string{"PEDI", "NOTE", "SNOTE"}, Singleton: []string{"PEDI"}},
		enum("PEDI", "PEDI", "ADOPTED", "BIRTH", "FOSTER", "SEALING", "OTHER"),
		{Key: "FAMS", Tag: "FAMS", Payload: PayloadXref, XrefKind: xref.Family, Permitted: []string{"NOTE", "SNOTE"}},
		pointer("ALIA", "ALIA", xref.Individual, "PHRASE"),

		// Family.
		{
			Key: "record-FAM", Tag: "FAM", Payload: PayloadNone, Record: xref.Family,
			Permitted: concat(
				[]string{"RESN", "MARR", "DIV", "ANUL", "ENGA", "FAM-NCHI", "FAM-RESI"},
				[]string{"FAM-HUSB", "FAM-WIFE", "CHIL", "ASSO", "SUBM"},
				identifiers, recordTail,
			),
			Singleton: concat([]string{"RESN", "FAM-HUSB", "FAM-WIFE"}, recordTailOnce),
		},
		event("MARR", "MARR", famEventDetail, famEventSingletons),
		event("DIV", "DIV", famEventDetail, famEventSingletons),
		event("ANUL", "ANUL", famEventDetail, famEventSingletons),
		event("ENGA", "ENGA", famEventDetail, famEventSingletons),
		attribute("FAM-NCHI", "NCHI", PayloadInteger, famEventDetail, famEventSingletons),
		attribute("FAM-RESI", "RESI", PayloadString, famEventDetail, famEventSingletons),
		{Key: "FAM-HUSB-AGE", Tag: "HUSB", Payload: PayloadNone, Permitted: []string{"AGE"}, Required: []string{"AGE"}, Singleton: []string{"AGE"}},
		{Key: "FAM-WIFE-AGE", Tag: "WIFE", Payload: PayloadNone, Permitted: []string{"AGE"}, Required: []string{"AGE"}, Singleton: []string{"AGE"}},
		pointer("FAM-HUSB", "HUSB", xref.Individual, "PHRASE"),
		pointer("FAM-WIFE", "WIFE", xref.Individual, "PHRASE"),
		pointer("CHIL", "CHIL", xref.Individual, "PHRASE"),

		// Multimedia.
		{
			Key: "record-OBJE", Tag: "OBJE", Payload: PayloadNone, Record: xref.Multimedia,
			Permitted: concat([]string{"RESN", "FILE"}, identifiers, []string{"NOTE", "SNOTE", "SOUR", "CHAN", "CREA"}),
			Required:  []string{"FILE"},
			Singleton: concat([]string{"RESN"}, recordTailOnce),
		},
		{Key: "FILE", Tag: "FILE", Payload: PayloadFilePath, Permitted: []string{"FORM", "TITL"}, Required: []string{"FORM"}, Singleton: []string{"FORM", "TITL"}},
		{Key: "FORM", Tag: "FORM", Payload: PayloadMediaType, Permitted: []string{"MEDI"}, Singleton: []string{"MEDI"}},
		enum("MEDI", "MEDI", "AUDIO", "BOOK", "CARD", "ELECTRONIC", "FICHE", "FILM", "MAGAZINE", "MANUSCRIPT", "MAP", "NEWSPAPER", "PHOTO", "TOMBSTONE", "VIDEO", "OTHER"),

		// Repository.
		{
			Key: "record-REPO", Tag: "REPO", Payload: PayloadNone, Record: xref.Repository,
			Permitted: concat([]string{"NAME"}, contact, []string{"NOTE", "SNOTE"}, identifiers, []string{"CHAN", "CREA"}),
			Required:  []string{"NAME"},
			Singleton: concat([]string{"NAME", "ADDR"}, recordTailOnce),
		},

		// Shared note.
		{
			Key: "record-SNOTE", Tag: "SNOTE", Payload: PayloadString, Record: xref.SharedNote,
			Permitted: concat([]string{"MIME", "LANG", "TRAN", "SOUR"}, identifiers, []string{"CHAN", "CREA"}),
			Singleton: concat([]string{"MIME", "LANG"}, recordTailOnce),
		},

		// Source.
		{
			Key: "record-SOUR", Tag: "SOUR", Payload: PayloadNone, Record: xref.Source,
			Permitted: concat(
				[]string{"AUTH", "TITL", "ABBR", "PUBL", "TEXT", "SOUR-REPO"},
				identifiers, []string{"NOTE", "SNOTE", "OBJE", "CHAN", "CREA"},
			),
			Singleton: concat([]string{"AUTH", "TITL", "ABBR", "PUBL", "TEXT"}, recordTailOnce),
		},
		leaf("AUTH", "AUTH", PayloadString),
		leaf("ABBR", "ABBR", PayloadString),
		leaf("PUBL", "PUBL", PayloadString),
		{Key: "SOUR-REPO", Tag: "REPO", Payload: PayloadXref, XrefKind: xref.Repository, Permitted: []string{"NOTE", "SNOTE", "CALN"}},
		{Key: "CALN", Tag: "CALN", Payload: PayloadString, Permitted: []string{"MEDI"}, Singleton: []string{"MEDI"}},

		// Submitter.
		{
			Key: "record-SUBM", Tag: "SUBM", Payload: PayloadNone, Record: xref.Submitter,
			Permitted: concat([]string{"NAME"}, contact, []string{"OBJE", "LANG"}, identifiers, []string{"NOTE", "SNOTE", "CHAN", "CREA"}),
			Required:  []string{"NAME"},
			Singleton: concat([]string{"NAME", "ADDR"}, recordTailOnce),
		},
	}
}

// Default returns the GEDCOM 7 table. It is built on first use.
func Default() *Table {
	defaultTableOnce.Do(func() {
		t, err := NewTable(gedcom7()...)
		if err != nil {
			panic(err)
		}
		defaultTable = t
	})
	return defaultTable
}
