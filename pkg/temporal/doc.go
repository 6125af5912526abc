// SPDX-License-Identifier: MPL-2.0

// Package temporal parses, validates, and renders the temporal payload
// grammars of genealogy documents: Time, DateExact, Date, DatePeriod, and
// Age.
//
// Each grammar has a Parse function returning a typed value whose String
// method yields the canonical text. Failures are *gederr.Error values naming
// the offending token. The Date grammar is tokenized and parsed with a
// participle grammar built once at package initialization; the resulting
// parser is read-only and safe for concurrent use.
//
// Composition helpers (FormatDate, About, Between, Period, FormatAge, ...)
// build canonical payload strings from their parts.
package temporal
