// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"fmt"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// Schema is one definition of a compiled CUE schema, such as "#Config".
// Documents are unified with it one at a time.
type Schema struct {
	mu   sync.Mutex // guards ctx, which is not safe for concurrent use
	ctx  *cue.Context
	def  cue.Value
	name string
}

// Compile compiles src and looks up the definition at path.
func Compile(src, path string) (*Schema, error) {
	ctx := cuecontext.New()

	root := ctx.CompileString(src, cue.Filename("schema.cue"))
	if err := root.Err(); err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	def := root.LookupPath(cue.ParsePath(path))
	if err := def.Err(); err != nil {
		return nil, fmt.Errorf("schema definition %s not found: %w", path, err)
	}

	return &Schema{ctx: ctx, def: def, name: path}, nil
}

// Name returns the definition path the schema was compiled with.
func (s *Schema) Name() string { return s.name }

// Validate reports whether data satisfies the schema.
func (s *Schema) Validate(data []byte, opts ...Option) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.unify(data, resolve(opts))
	return err
}

// Decode checks data against the schema and decodes the unified value into
// a T. Errors name the offending CUE path, e.g. "ui.color_scheme".
func Decode[T any](s *Schema, data []byte, opts ...Option) (T, error) {
	var out T
	o := resolve(opts)

	s.mu.Lock()
	defer s.mu.Unlock()

	unified, err := s.unify(data, o)
	if err != nil {
		return out, err
	}
	if err := unified.Decode(&out); err != nil {
		return out, FormatError(err, o.filename)
	}
	return out, nil
}

// unify must be called with s.mu held.
func (s *Schema) unify(data []byte, o parseOptions) (cue.Value, error) {
	if err := CheckFileSize(data, o.maxFileSize, o.filename); err != nil {
		return cue.Value{}, err
	}

	doc := s.ctx.CompileBytes(data, cue.Filename(o.filename))
	if err := doc.Err(); err != nil {
		return cue.Value{}, FormatError(err, o.filename)
	}

	unified := s.def.Unify(doc)
	if err := unified.Validate(cue.Concrete(o.concrete)); err != nil {
		return cue.Value{}, FormatError(err, o.filename)
	}
	return unified, nil
}
