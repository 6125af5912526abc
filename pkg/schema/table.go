// SPDX-License-Identifier: MPL-2.0

package schema

import (
	"fmt"

	"golang.org/x/exp/slices"

	"github.com/gedforge/gedforge/pkg/gederr"
	"github.com/gedforge/gedforge/pkg/xref"
)

// HeaderKey is the key of the document header structure.
const HeaderKey = "HEAD"

// Table is a closed set of schemas indexed by key. A Table is immutable
// once built and safe for concurrent readers.
type Table struct {
	byKey   map[string]*Schema
	keys    []string
	records map[string]*Schema
}

// NewTable builds schemas with New and links them. It fails with
// MalformedSchema when a key repeats, a permitted key is undefined, or one
// parent permits two keys with the same tag.
func NewTable(defs ...Schema) (*Table, error) {
	t := &Table{
		byKey:   make(map[string]*Schema, len(defs)),
		records: make(map[string]*Schema),
	}
	for _, def := range defs {
		s, err := New(def)
		if err != nil {
			return nil, err
		}
		if _, dup := t.byKey[s.Key]; dup {
			return nil, gederr.New(gederr.MalformedSchema, s.Key, "key defined twice")
		}
		t.byKey[s.Key] = s
		t.keys = append(t.keys, s.Key)
		if s.IsRecord() {
			if _, dup := t.records[s.Tag]; dup {
				return nil, gederr.New(gederr.MalformedSchema, s.Key, "record tag "+s.Tag+" defined twice")
			}
			t.records[s.Tag] = s
		}
	}

	for _, s := range t.byKey {
		s.permittedTags = make(map[string]string, len(s.Permitted))
		tags := make(map[string]string, len(s.Permitted))
		for _, key := range s.Permitted {
			child, ok := t.byKey[key]
			if !ok {
				return nil, gederr.New(gederr.MalformedSchema, s.Key, "permitted key "+key+" is not defined")
			}
			if other, clash := tags[child.Tag]; clash {
				return nil, gederr.New(gederr.MalformedSchema, s.Key,
					fmt.Sprintf("keys %s and %s share tag %s", other, key, child.Tag))
			}
			tags[child.Tag] = key
			s.permittedTags[key] = child.Tag
		}
	}
	slices.Sort(t.keys)
	return t, nil
}

// Lookup returns the schema registered under key.
func (t *Table) Lookup(key string) (*Schema, bool) {
	s, ok := t.byKey[key]
	return s, ok
}

// Must returns the schema registered under key and panics when there is
// none. It is meant for building documents from literal keys.
func (t *Table) Must(key string) *Schema {
	s, ok := t.byKey[key]
	if !ok {
		panic(fmt.Sprintf("schema: unknown key %q", key))
	}
	return s
}

// Child returns the substructure of parent written with tag.
func (t *Table) Child(parent *Schema, tag string) (*Schema, bool) {
	for _, key := range parent.Permitted {
		if parent.permittedTags[key] == tag {
			return t.byKey[key], true
		}
	}
	return nil, false
}

// Record returns the top-level record schema written with tag.
func (t *Table) Record(tag string) (*Schema, bool) {
	s, ok := t.records[tag]
	return s, ok
}

// RecordFor returns the record schema declaring identifiers of kind.
func (t *Table) RecordFor(kind xref.Kind) (*Schema, bool) {
	s, ok := t.records[kind.String()]
	return s, ok
}

// Header returns the header schema, when the table has one.
func (t *Table) Header() (*Schema, bool) {
	return t.Lookup(HeaderKey)
}

// Keys returns every key in sorted order.
func (t *Table) Keys() []string { return slices.Clone(t.keys) }

// Len returns the number of schemas.
func (t *Table) Len() int { return len(t.keys) }
