// SPDX-License-Identifier: MPL-2.0

package structure

import (
	"strconv"
	"strings"

	"golang.org/x/text/language"

	"github.com/gedforge/gedforge/pkg/gederr"
	"github.com/gedforge/gedforge/pkg/schema"
	"github.com/gedforge/gedforge/pkg/xref"
)

const pathSeparator = " > "

type (
	// Resolver reports whether an identifier exists in a document.
	// *xref.Registry satisfies it.
	Resolver interface {
		Contains(x xref.Xref) bool
	}

	// Option configures a validation pass.
	Option func(*validator)

	// ValidationError is one violation found by ValidateAll.
	ValidationError struct {
		// Path locates the offending structure, e.g. "@I1@ INDI > BIRT > DATE".
		Path string
		// Err is the typed failure, usually a *gederr.Error.
		Err error
	}

	// ValidationErrors is a collection of violations that implements the
	// error interface.
	ValidationErrors []ValidationError

	validator struct {
		resolver Resolver
		failFast bool
		errs     ValidationErrors
	}
)

// WithRegistry makes pointers and record identifiers resolve through r;
// identifiers r does not contain fail with UnknownXref.
func WithRegistry(r Resolver) Option {
	return func(v *validator) { v.resolver = r }
}

// Validate checks n and its descendants depth-first in pre-order and
// returns the first violation. For each node it checks, in order, the
// payload type, the payload grammar, the enumeration set, that every child
// is permitted, and the singleton and required counts; it then recurses
// into the children.
func Validate(n *Node, opts ...Option) error {
	v := newValidator(true, opts)
	v.visit(n, nil)
	if len(v.errs) == 0 {
		return nil
	}
	return v.errs[0].Err
}

// ValidateAll runs the same checks as Validate but keeps going after a
// violation and returns every one found. A child that is not permitted is
// reported and not descended into.
func ValidateAll(n *Node, opts ...Option) ValidationErrors {
	v := newValidator(false, opts)
	v.visit(n, nil)
	return v.errs
}

func newValidator(failFast bool, opts []Option) *validator {
	v := &validator{failFast: failFast}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// add records err and reports whether validation must stop.
func (v *validator) add(path []string, err error) bool {
	v.errs = append(v.errs, ValidationError{Path: strings.Join(path, pathSeparator), Err: err})
	return v.failFast
}

func (v *validator) visit(n *Node, parent []string) (stop bool) {
	path := make([]string, len(parent), len(parent)+1)
	copy(path, parent)
	label := n.Tag()
	if !n.id.IsZero() {
		label = n.id.Fullname() + " " + label
	}
	path = append(path, label)

	s := n.schema
	if err := v.checkPayload(n); err != nil {
		if v.add(path, gederr.Tagged(err, s.Tag)) {
			return true
		}
	}

	skip := make([]bool, len(n.children))
	counts := make(map[string]int, len(n.children))
	for i, c := range n.children {
		if !s.Permits(c.Key()) {
			skip[i] = true
			err := gederr.New(gederr.NotPermitted, c.Tag(), strings.Join(s.PermittedTags(), ", ")).WithTag(s.Tag)
			if v.add(path, err) {
				return true
			}
			continue
		}
		counts[c.Key()]++
	}

	for _, key := range s.Singleton {
		if counts[key] > 1 {
			if v.add(path, gederr.New(gederr.OnlyOnePermitted, s.TagOf(key)).WithTag(s.Tag)) {
				return true
			}
		}
	}
	for _, key := range s.Required {
		if counts[key] == 0 {
			if v.add(path, gederr.New(gederr.MissingRequired, s.TagOf(key)).WithTag(s.Tag)) {
				return true
			}
		}
	}

	for i, c := range n.children {
		if skip[i] {
			continue
		}
		if v.visit(c, path) {
			return true
		}
	}
	return false
}

// checkPayload covers the type, grammar and enumeration checks of one node.
func (v *validator) checkPayload(n *Node) error {
	s := n.schema
	if s.IsRecord() {
		if err := v.checkIdentifier(n.id, s.Record); err != nil {
			return err
		}
	}

	var text string
	switch s.Payload {
	case schema.PayloadNone:
		if p, ok := n.payload.(string); n.payload != nil && (!ok || p != "") {
			return gederr.New(gederr.NotAString, payloadText(n.payload), "no payload")
		}
		return nil
	case schema.PayloadXref:
		x, ok := n.payload.(xref.Xref)
		if !ok {
			return gederr.New(gederr.WrongXrefKind, payloadText(n.payload), "none", s.XrefKind.String())
		}
		return v.checkPointer(x, s.XrefKind)
	case schema.PayloadInteger:
		switch p := n.payload.(type) {
		case int:
			text = strconv.Itoa(p)
		case string:
			text = p
		default:
			return gederr.New(gederr.NotAString, payloadText(n.payload), "an integer")
		}
	default:
		switch p := n.payload.(type) {
		case nil:
		case string:
			text = p
		default:
			return gederr.New(gederr.NotAString, payloadText(n.payload), "a string")
		}
	}

	if err := CheckPayload(s.Payload, text); err != nil {
		return err
	}
	if s.Payload == schema.PayloadEnum && !s.AllowsValue(text) {
		return gederr.New(gederr.NotAValidEnum, text, strings.Join(s.Enum, ", "))
	}
	return nil
}

func (v *validator) checkPointer(x xref.Xref, want xref.Kind) error {
	if x.IsVoid() {
		return nil
	}
	if x.Kind() != want {
		return gederr.New(gederr.WrongXrefKind, x.Fullname(), x.Kind().String(), want.String())
	}
	if v.resolver != nil && !v.resolver.Contains(x) {
		return gederr.New(gederr.UnknownXref, x.Fullname())
	}
	return nil
}

func (v *validator) checkIdentifier(id xref.Xref, want xref.Kind) error {
	if id.IsVoid() || id.Kind() != want {
		return gederr.New(gederr.WrongXrefKind, id.Fullname(), id.Kind().String(), want.String())
	}
	if v.resolver != nil && !v.resolver.Contains(id) {
		return gederr.New(gederr.UnknownXref, id.Fullname())
	}
	return nil
}

// Error implements the error interface for ValidationError.
func (e ValidationError) Error() string {
	if e.Path != "" {
		return e.Path + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// Unwrap returns the underlying failure.
func (e ValidationError) Unwrap() error { return e.Err }

// Error implements the error interface by joining all messages.
func (errs ValidationErrors) Error() string {
	switch len(errs) {
	case 0:
		return ""
	case 1:
		return errs[0].Error()
	}

	var b strings.Builder
	b.WriteString("validation failed with ")
	b.WriteString(strconv.Itoa(len(errs)))
	b.WriteString(" errors:\n")
	for i, err := range errs {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("  - ")
		b.WriteString(err.Error())
	}
	return b.String()
}

// Unwrap returns every collected failure so errors.Is and errors.As match
// any of them.
func (errs ValidationErrors) Unwrap() []error {
	out := make([]error, len(errs))
	for i, e := range errs {
		out[i] = e
	}
	return out
}

// HasErrors returns true if at least one violation was found.
func (errs ValidationErrors) HasErrors() bool { return len(errs) > 0 }

// ErrorCount returns the number of violations.
func (errs ValidationErrors) ErrorCount() int { return len(errs) }

// Kinds returns the kind of each violation in order.
func (errs ValidationErrors) Kinds() []gederr.Kind {
	out := make([]gederr.Kind, len(errs))
	for i, e := range errs {
		out[i] = gederr.KindOf(e.Err)
	}
	return out
}

// Messages renders each violation in lang, prefixed by its path.
func (errs ValidationErrors) Messages(lang language.Tag) []string {
	out := make([]string, len(errs))
	for i, e := range errs {
		msg := gederr.Message(lang, e.Err)
		if e.Path != "" {
			msg = e.Path + ": " + msg
		}
		out[i] = msg
	}
	return out
}

// AsError returns errs as an error, or nil when it is empty.
func (errs ValidationErrors) AsError() error {
	if len(errs) == 0 {
		return nil
	}
	return errs
}
