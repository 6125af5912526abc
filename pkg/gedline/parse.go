// SPDX-License-Identifier: MPL-2.0

package gedline

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/exp/slices"

	"github.com/gedforge/gedforge/pkg/gederr"
	"github.com/gedforge/gedforge/pkg/schema"
	"github.com/gedforge/gedforge/pkg/structure"
	"github.com/gedforge/gedforge/pkg/xref"
)

const byteOrderMark = "\ufeff"

type (
	// Option configures Parse.
	Option func(*parser)

	// LineError locates a parse failure.
	LineError struct {
		Line int
		Text string
		Err  error
	}

	// line is one split input line.
	line struct {
		number  int
		text    string
		level   int
		id      string
		tag     string
		payload string
		hasText bool
	}

	// pending is a structure whose payload may still grow through CONT lines.
	pending struct {
		schema   *schema.Schema
		id       xref.Xref
		payload  string
		hasText  bool
		children []*pending
		line     line
	}

	parser struct {
		table *schema.Table
		reg   *xref.Registry
	}
)

// WithTable parses against t instead of the default table.
func WithTable(t *schema.Table) Option {
	return func(p *parser) { p.table = t }
}

// Error implements the error interface for LineError.
func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

// Unwrap returns the underlying failure.
func (e *LineError) Unwrap() error { return e.Err }

// Parse reads a document and returns its top-level structures in file
// order, header included. Record identifiers are minted in reg before any
// pointer is resolved, so pointers may refer forward. Parse checks only the
// line structure: levels, known tags and pointer targets. Call
// structure.Validate on the result for the payload and cardinality rules.
//
// Failures are *LineError values wrapping a *gederr.Error: BadLevel for a
// malformed level, NotPermitted for an unknown tag, DuplicateXref for a
// reused identifier, UnknownXref for a pointer to no record and
// MultipleHeaders for a second header.
func Parse(text string, reg *xref.Registry, opts ...Option) ([]*structure.Node, error) {
	p := &parser{table: schema.Default(), reg: reg}
	for _, opt := range opts {
		opt(p)
	}

	lines, err := split(text)
	if err != nil {
		return nil, err
	}
	if err := p.declare(lines); err != nil {
		return nil, err
	}

	var (
		roots   []*pending
		stack   []*pending
		header  bool
		trailer bool
	)
	for _, ln := range lines {
		if trailer {
			return nil, lineError(ln, gederr.New(gederr.BadLevel, ln.text, ln.number))
		}
		if ln.level == 0 {
			stack = stack[:0]
			switch ln.tag {
			case TrailerTag:
				trailer = true
				continue
			case HeaderTag:
				if header {
					return nil, lineError(ln, gederr.New(gederr.MultipleHeaders, HeaderTag))
				}
				header = true
			}
			root, err := p.root(ln)
			if err != nil {
				return nil, err
			}
			roots = append(roots, root)
			stack = append(stack, root)
			continue
		}

		stack = stack[:ln.level]
		parent := stack[ln.level-1]
		if parent == nil {
			return nil, lineError(ln, gederr.New(gederr.BadLevel, ln.text, ln.number))
		}
		if ln.tag == ContTag {
			parent.payload += eol + ln.payload
			parent.hasText = true
			// CONT lines have no substructures.
			stack = append(stack, nil)
			continue
		}
		s, ok := p.table.Child(parent.schema, ln.tag)
		if !ok {
			err := gederr.New(gederr.NotPermitted, ln.tag, strings.Join(parent.schema.PermittedTags(), ", ")).WithTag(parent.schema.Tag)
			return nil, lineError(ln, err)
		}
		child := &pending{schema: s, line: ln, payload: ln.payload, hasText: ln.hasText}
		parent.children = append(parent.children, child)
		stack = append(stack, child)
	}

	out := make([]*structure.Node, 0, len(roots))
	for _, r := range roots {
		n, err := p.build(r)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

// split breaks text into lines and checks their levels: the first is 0 and
// each is at most one deeper than the previous.
func split(text string) ([]line, error) {
	text = strings.TrimPrefix(text, byteOrderMark)
	text = strings.TrimSuffix(strings.ReplaceAll(text, "\r\n", eol), eol)
	if text == "" {
		return nil, nil
	}

	raw := strings.Split(text, eol)
	lines := make([]line, 0, len(raw))
	prev := -1
	for i, s := range raw {
		ln, ok := parseLine(i+1, s)
		if !ok || ln.level > prev+1 || (i == 0 && ln.level != 0) {
			return nil, &LineError{Line: i + 1, Text: s, Err: gederr.New(gederr.BadLevel, s, i+1)}
		}
		prev = ln.level
		lines = append(lines, ln)
	}
	return lines, nil
}

// parseLine splits "{level} [{xref} ]{TAG}[ {payload}]". The payload is the
// rest of the line after one space, kept verbatim.
func parseLine(number int, s string) (line, bool) {
	ln := line{number: number, text: s}
	levelText, rest, ok := strings.Cut(s, " ")
	if !ok || levelText == "" || (len(levelText) > 1 && levelText[0] == '0') {
		return ln, false
	}
	level, err := strconv.Atoi(levelText)
	if err != nil || level < 0 {
		return ln, false
	}
	ln.level = level

	if level == 0 && strings.HasPrefix(rest, atSign) {
		id, after, ok := strings.Cut(rest, " ")
		if !ok || len(id) < 3 || !strings.HasSuffix(id, atSign) {
			return ln, false
		}
		ln.id = id
		rest = after
	}

	tag, payload, hasText := strings.Cut(rest, " ")
	if tag == "" {
		return ln, false
	}
	ln.tag = tag
	ln.payload = decodePayload(payload)
	ln.hasText = hasText
	return ln, true
}

// declare mints every record identifier so pointers can be resolved in any
// order.
func (p *parser) declare(lines []line) error {
	for _, ln := range lines {
		if ln.level != 0 || ln.id == "" {
			continue
		}
		s, ok := p.table.Record(ln.tag)
		if !ok {
			continue
		}
		if _, err := p.reg.Mint(s.Record, strings.Trim(ln.id, atSign)); err != nil {
			return lineError(ln, err)
		}
	}
	return nil
}

func (p *parser) root(ln line) (*pending, error) {
	var s *schema.Schema
	if ln.tag == HeaderTag {
		h, ok := p.table.Header()
		if !ok {
			return nil, lineError(ln, gederr.New(gederr.NotPermitted, ln.tag, p.recordTags()))
		}
		s = h
	} else {
		r, ok := p.table.Record(ln.tag)
		if !ok {
			return nil, lineError(ln, gederr.New(gederr.NotPermitted, ln.tag, p.recordTags()))
		}
		s = r
	}

	root := &pending{schema: s, line: ln, payload: ln.payload, hasText: ln.hasText}
	if s.IsRecord() {
		if ln.id == "" {
			return nil, lineError(ln, gederr.New(gederr.WrongXrefKind, "", "none", s.Record.String()))
		}
		id, _ := p.resolve(ln.id)
		root.id = id
	}
	return root, nil
}

func (p *parser) recordTags() string {
	tags := []string{HeaderTag, TrailerTag}
	for _, k := range xref.Kinds() {
		if s, ok := p.table.RecordFor(k); ok {
			tags = append(tags, s.Tag)
		}
	}
	return strings.Join(tags, ", ")
}

// build converts a pending tree into nodes, resolving pointers.
func (p *parser) build(e *pending) (*structure.Node, error) {
	payload, err := p.payload(e)
	if err != nil {
		return nil, err
	}
	n := structure.NewRecord(e.schema, e.id, payload)
	for _, c := range e.children {
		child, err := p.build(c)
		if err != nil {
			return nil, err
		}
		n.Add(child)
	}
	return n, nil
}

func (p *parser) payload(e *pending) (any, error) {
	if !e.hasText {
		return nil, nil
	}
	if e.schema.Payload != schema.PayloadXref || !isPointer(e.payload) {
		return e.payload, nil
	}
	x, ok := p.resolve(e.payload)
	if !ok {
		return nil, lineError(e.line, gederr.New(gederr.UnknownXref, e.payload).WithTag(e.schema.Tag))
	}
	return x, nil
}

// resolve looks up a pointer token, normalizing the name between the @ signs.
func (p *parser) resolve(token string) (xref.Xref, bool) {
	return p.reg.Resolve(atSign + xref.Normalize(strings.Trim(token, atSign)) + atSign)
}

func isPointer(s string) bool {
	return len(s) >= 3 && strings.HasPrefix(s, atSign) && strings.HasSuffix(s, atSign) && !strings.Contains(s, " ")
}

func lineError(ln line, err error) error {
	return &LineError{Line: ln.number, Text: ln.text, Err: err}
}

// Tags returns the distinct tags used in a parsed forest, sorted.
func Tags(nodes []*structure.Node) []string {
	seen := make(map[string]bool)
	for _, n := range nodes {
		n.Walk(func(c *structure.Node, _ int) bool {
			seen[c.Tag()] = true
			return true
		})
	}
	tags := make([]string, 0, len(seen))
	for tag := range seen {
		tags = append(tags, tag)
	}
	slices.Sort(tags)
	return tags
}
