// SPDX-License-Identifier: MPL-2.0

// Package gedline converts structure trees to and from leveled text lines of
// the form "{level} [{xref} ]{TAG}[ {payload}]".
package gedline

import (
	"strconv"
	"strings"

	"github.com/gedforge/gedforge/pkg/structure"
	"github.com/gedforge/gedforge/pkg/xref"
)

const (
	// ContTag continues a multi-line payload on the following line.
	ContTag = "CONT"
	// TrailerTag ends a document.
	TrailerTag = "TRLR"
	// HeaderTag starts a document.
	HeaderTag = "HEAD"

	eol    = "\n"
	atSign = "@"
)

// Render returns the lines of n and its descendants with n at level. A
// payload-less node has no trailing space. String payloads spanning lines
// continue on CONT lines one level down, a leading "@" is doubled, and
// control characters are removed. Pointer payloads are written as is.
func Render(n *structure.Node, level int) string {
	var b strings.Builder
	render(&b, n, level)
	return b.String()
}

func render(b *strings.Builder, n *structure.Node, level int) {
	prefix := strconv.Itoa(level) + " "
	if id := n.ID(); !id.IsZero() {
		prefix += id.Fullname() + " "
	}

	if _, isPointer := n.Payload().(xref.Xref); isPointer {
		writeLine(b, prefix, n.Tag(), n.Text())
	} else {
		lines := strings.Split(n.Text(), eol)
		writeLine(b, prefix, n.Tag(), encodePayload(lines[0]))
		cont := strconv.Itoa(level+1) + " "
		for _, line := range lines[1:] {
			writeLine(b, cont, ContTag, encodePayload(line))
		}
	}

	for _, c := range n.Children() {
		render(b, c, level+1)
	}
}

func writeLine(b *strings.Builder, prefix, tag, payload string) {
	b.WriteString(prefix)
	b.WriteString(tag)
	if payload != "" {
		b.WriteByte(' ')
		b.WriteString(payload)
	}
	b.WriteString(eol)
}

// encodePayload removes banned characters and escapes a leading "@".
func encodePayload(s string) string {
	s = Clean(s)
	if strings.HasPrefix(s, atSign) {
		return atSign + s
	}
	return s
}

// decodePayload reverses the leading "@" escape.
func decodePayload(s string) string {
	if strings.HasPrefix(s, atSign+atSign) {
		return s[1:]
	}
	return s
}

// Clean removes the characters a line may not contain: C0 controls, DEL
// and the noncharacters U+FFFE and U+FFFF.
func Clean(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7F || r == 0xFFFE || r == 0xFFFF {
			return -1
		}
		return r
	}, s)
}

// Document renders header first, then records in order, then the trailer
// line. A nil header is omitted.
func Document(header *structure.Node, records ...*structure.Node) string {
	var b strings.Builder
	if header != nil {
		render(&b, header, 0)
	}
	for _, r := range records {
		render(&b, r, 0)
	}
	b.WriteString("0 " + TrailerTag + eol)
	return b.String()
}
