// SPDX-License-Identifier: MPL-2.0

package xref

import (
	"strconv"

	"github.com/gedforge/gedforge/pkg/gederr"
)

// Registry issues unique identifiers for one document. Fullnames are unique
// across all kinds so that Resolve is unambiguous. The zero value is not
// usable; call NewRegistry.
type Registry struct {
	byName  map[string]Xref
	order   []Xref
	counter int
	initial string
}

// Option configures a Registry.
type Option func(*Registry)

// WithInitial sets the prefix used for counter-named identifiers, so that
// auto names become e.g. "@X1@", "@X2@".
func WithInitial(prefix string) Option {
	return func(r *Registry) { r.initial = Normalize(prefix) }
}

// NewRegistry returns an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{byName: make(map[string]Xref)}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Mint issues an identifier of kind. An empty name takes the next unused
// value of the document's counter, which starts at 1 and only increases.
// A given name is normalized; minting a fullname twice, or the reserved
// @VOID@, fails with DuplicateXref.
func (r *Registry) Mint(kind Kind, name string) (Xref, error) {
	if ok, errs := kind.IsValid(); !ok {
		return Xref{}, errs[0]
	}
	if name == "" {
		return r.mintCounted(kind, r.initial)
	}
	return r.register(kind, Normalize(name))
}

// MintInitial issues an identifier whose name is prefix followed by the
// next counter value, e.g. "@FAM2@". It ignores the registry-wide prefix.
func (r *Registry) MintInitial(kind Kind, prefix string) (Xref, error) {
	if ok, errs := kind.IsValid(); !ok {
		return Xref{}, errs[0]
	}
	return r.mintCounted(kind, Normalize(prefix))
}

func (r *Registry) mintCounted(kind Kind, prefix string) (Xref, error) {
	for {
		r.counter++
		name := prefix + strconv.Itoa(r.counter)
		if _, taken := r.byName["@"+name+"@"]; !taken {
			return r.register(kind, name)
		}
	}
}

func (r *Registry) register(kind Kind, name string) (Xref, error) {
	x := Xref{kind: kind, name: name}
	full := x.Fullname()
	if full == VoidName || name == "" {
		return Xref{}, gederr.New(gederr.DuplicateXref, full)
	}
	if _, taken := r.byName[full]; taken {
		return Xref{}, gederr.New(gederr.DuplicateXref, full)
	}
	r.byName[full] = x
	r.order = append(r.order, x)
	return x, nil
}

// Resolve looks up a minted identifier by fullname. "@VOID@" resolves to
// Void.
func (r *Registry) Resolve(fullname string) (Xref, bool) {
	if fullname == VoidName {
		return Void, true
	}
	x, ok := r.byName[fullname]
	return x, ok
}

// Contains reports whether x was minted by this registry or is Void.
func (r *Registry) Contains(x Xref) bool {
	got, ok := r.Resolve(x.Fullname())
	return ok && got == x
}

// All returns the minted identifiers in mint order.
func (r *Registry) All() []Xref {
	out := make([]Xref, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of minted identifiers.
func (r *Registry) Len() int { return len(r.order) }
