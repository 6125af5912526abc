// SPDX-License-Identifier: MPL-2.0

package gederr

import (
	"errors"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Templates are keyed by Kind.String(). Argument 1 is Error.Value and
// arguments 2.. are Error.Args, so every template uses explicit indexes.
type translations map[string]map[language.Tag]string

var templates = translations{
	"UnknownCalendar": {
		language.English: `the calendar "%[1]s" is not recognized`,
		language.French:  `le calendrier « %[1]s » n'est pas reconnu`,
	},
	"UnknownMonth": {
		language.English: `the month "%[1]s" is not recognized for calendar %[2]v`,
		language.French:  `le mois « %[1]s » n'existe pas dans le calendrier %[2]v`,
	},
	"ZeroYear": {
		language.English: `the year is %[1]s but calendar %[2]v has no year 0`,
		language.French:  `l'année est %[1]s mais le calendrier %[2]v n'a pas d'année 0`,
	},
	"MonthOutOfRange": {
		language.English: `the month %[1]s is less than 0 or greater than %[2]v`,
		language.French:  `le mois %[1]s est inférieur à 0 ou supérieur à %[2]v`,
	},
	"DayOutOfRange": {
		language.English: `the day %[1]s is less than 0 or greater than %[2]v, the number of days in month %[3]v`,
		language.French:  `le jour %[1]s est inférieur à 0 ou supérieur à %[2]v, le nombre de jours du mois %[3]v`,
	},
	"DateBeforeStart": {
		language.English: `the date "%[1]s" comes before the start of calendar %[2]v`,
		language.French:  `la date « %[1]s » précède le début du calendrier %[2]v`,
	},
	"DateAfterEnd": {
		language.English: `the date "%[1]s" goes beyond the end of calendar %[2]v`,
		language.French:  `la date « %[1]s » dépasse la fin du calendrier %[2]v`,
	},
	"BadColonCount": {
		language.English: `the time "%[1]s" has %[2]v colons but needs exactly 2`,
		language.French:  `l'heure « %[1]s » contient %[2]v deux-points au lieu de 2`,
	},
	"BadSpacing": {
		language.English: `"%[1]s" has %[2]v spaces but needs exactly 2`,
		language.French:  `« %[1]s » contient %[2]v espaces au lieu de 2`,
	},
	"TooLarge": {
		language.English: `"%[1]s" is longer than the maximum of %[2]v characters`,
		language.French:  `« %[1]s » dépasse le maximum de %[2]v caractères`,
	},
	"NotADate": {
		language.English: `"%[1]s" is not a date`,
		language.French:  `« %[1]s » n'est pas une date`,
	},
	"NotAnAge": {
		language.English: `"%[1]s" is not an age`,
		language.French:  `« %[1]s » n'est pas un âge`,
	},
	"NotAString": {
		language.English: `the payload %[1]s is not %[2]v`,
		language.French:  `la valeur %[1]s n'est pas %[2]v`,
	},
	"WrongXrefKind": {
		language.English: `the cross-reference %[1]s points to %[2]v but %[3]v is required`,
		language.French:  `la référence %[1]s désigne %[2]v alors que %[3]v est attendu`,
	},
	"NotPermitted": {
		language.English: `the substructure %[1]s is not one of the permitted substructures %[2]v`,
		language.French:  `la sous-structure %[1]s ne fait pas partie des sous-structures permises %[2]v`,
	},
	"OnlyOnePermitted": {
		language.English: `the substructure %[1]s may appear only once`,
		language.French:  `la sous-structure %[1]s ne peut apparaître qu'une fois`,
	},
	"MissingRequired": {
		language.English: `the required substructure %[1]s is missing`,
		language.French:  `la sous-structure obligatoire %[1]s est absente`,
	},
	"NotAValidEnum": {
		language.English: `"%[1]s" is not one of the enumeration values %[2]v`,
		language.French:  `« %[1]s » ne fait pas partie des valeurs %[2]v`,
	},
	"DuplicateXref": {
		language.English: `the cross-reference identifier %[1]s has already been used`,
		language.French:  `l'identifiant %[1]s est déjà utilisé`,
	},
	"NotATime": {
		language.English: `"%[1]s" is not a time`,
		language.French:  `« %[1]s » n'est pas une heure`,
	},
	"TimeOutOfRange": {
		language.English: `the %[2]v in "%[1]s" is outside [%[3]v, %[4]v]`,
		language.French:  `le champ %[2]v de « %[1]s » est hors de [%[3]v, %[4]v]`,
	},
	"NotAnInteger": {
		language.English: `"%[1]s" is not a non-negative integer`,
		language.French:  `« %[1]s » n'est pas un entier positif ou nul`,
	},
	"NotYOrNull": {
		language.English: `the payload "%[1]s" must be "Y" or empty`,
		language.French:  `la valeur « %[1]s » doit être « Y » ou vide`,
	},
	"NotALanguage": {
		language.English: `"%[1]s" is not a BCP 47 language tag`,
		language.French:  `« %[1]s » n'est pas une étiquette de langue BCP 47`,
	},
	"NotAMediaType": {
		language.English: `"%[1]s" is not a media type`,
		language.French:  `« %[1]s » n'est pas un type de média`,
	},
	"NotALatitude": {
		language.English: `"%[1]s" is not a latitude between S90 and N90`,
		language.French:  `« %[1]s » n'est pas une latitude entre S90 et N90`,
	},
	"NotALongitude": {
		language.English: `"%[1]s" is not a longitude between W180 and E180`,
		language.French:  `« %[1]s » n'est pas une longitude entre W180 et E180`,
	},
	"UnknownXref": {
		language.English: `the cross-reference %[1]s was never minted in this document`,
		language.French:  `la référence %[1]s n'a jamais été créée dans ce document`,
	},
	"MissingRecord": {
		language.English: `the cross-reference %[1]s is used but no record defines it`,
		language.French:  `la référence %[1]s est utilisée mais aucun enregistrement ne la définit`,
	},
	"BadLevel": {
		language.English: `line %[2]v "%[1]s" has an invalid level`,
		language.French:  `la ligne %[2]v « %[1]s » a un niveau invalide`,
	},
	"MultipleHeaders": {
		language.English: `the header %[1]s has already been staged`,
		language.French:  `l'en-tête %[1]s a déjà été ajouté`,
	},
	"MalformedSchema": {
		language.English: `the schema for %[1]s is malformed: %[2]v`,
		language.French:  `le schéma de %[1]s est invalide : %[2]v`,
	},
	"NotAList": {
		language.English: `"%[1]s" is not a comma-separated list`,
		language.French:  `« %[1]s » n'est pas une liste séparée par des virgules`,
	},
	"NotAName": {
		language.English: `"%[1]s" is not a personal name`,
		language.French:  `« %[1]s » n'est pas un nom de personne`,
	},
	"NotAFilePath": {
		language.English: `"%[1]s" is not a file path or URL`,
		language.French:  `« %[1]s » n'est pas un chemin de fichier ni une URL`,
	},
	"PhoneOutOfRange": {
		language.English: `the %[1]s part %[2]v of a telephone number must be between 1 and %[3]v`,
		language.French:  `la partie %[1]s %[2]v d'un numéro de téléphone doit être comprise entre 1 et %[3]v`,
	},
}

var (
	messages = buildCatalog(templates)
	// English first: the matcher falls back to the first entry.
	supported = []language.Tag{language.English, language.French}
	matcher   = language.NewMatcher(supported)
)

func buildCatalog(t translations) *catalog.Builder {
	ctlg := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, byLang := range t {
		for lang, text := range byLang {
			if err := ctlg.SetString(lang, key, text); err != nil {
				panic(err)
			}
		}
	}
	return ctlg
}

// Languages returns the languages the message catalog has templates for.
func Languages() []language.Tag {
	out := make([]language.Tag, len(supported))
	copy(out, supported)
	return out
}

// Printer returns a printer for the closest supported language.
func Printer(lang language.Tag) *message.Printer {
	_, idx, _ := matcher.Match(lang)
	return message.NewPrinter(supported[idx], message.Catalog(messages))
}

// Message renders err in lang. Errors that are not *Error render with
// their own Error method.
func Message(lang language.Tag, err error) string {
	var ge *Error
	if !errors.As(err, &ge) {
		return err.Error()
	}
	args := make([]any, 0, len(ge.Args)+1)
	args = append(args, ge.Value)
	args = append(args, ge.Args...)
	msg := Printer(lang).Sprintf(ge.Kind.String(), args...)
	if ge.Tag != "" {
		return ge.Tag + ": " + msg
	}
	return msg
}

// Template returns the raw template registered for kind in lang.
func Template(lang language.Tag, kind Kind) string {
	_, idx, _ := matcher.Match(lang)
	if byLang, ok := templates[kind.String()]; ok {
		if text, ok := byLang[supported[idx]]; ok {
			return text
		}
		return byLang[language.English]
	}
	return ""
}
