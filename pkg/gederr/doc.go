// SPDX-License-Identifier: MPL-2.0

// Package gederr defines the closed taxonomy of failures raised while
// building, validating, parsing, and rendering genealogy documents.
//
// Every failure is a *Error carrying a Kind, the offending value, and the
// structure tag it occurred under. Kinds are themselves errors, so callers
// can match with errors.Is:
//
//	if errors.Is(err, gederr.DayOutOfRange) {
//		...
//	}
//
// Message text lives in a separate template catalog built on
// golang.org/x/text/message. Message renders an error in any language the
// catalog supports and falls back to English otherwise.
package gederr
