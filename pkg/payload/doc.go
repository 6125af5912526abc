// SPDX-License-Identifier: MPL-2.0

// Package payload composes well-formed payloads for the non-temporal
// grammars: coordinates from degrees, minutes and seconds, comma-separated
// place lists, personal names with a marked surname, and telephone numbers
// in international notation. Every result is checked against the grammar of
// the structure it is meant for before it is returned.
package payload
