// SPDX-License-Identifier: MPL-2.0

// Package structure holds the tagged tree of a genealogy document and the
// rules engine that checks a tree against its schemas.
//
// A Node is built top-down with New and Add and is not safe for concurrent
// mutation. Validation never modifies a tree and may be repeated.
package structure

import (
	"fmt"
	"strconv"

	"github.com/gedforge/gedforge/pkg/schema"
	"github.com/gedforge/gedforge/pkg/xref"
)

// Node is one structure: a schema, an optional payload and ordered
// substructures. Records additionally carry the identifier they declare.
type Node struct {
	schema   *schema.Schema
	id       xref.Xref
	payload  any
	children []*Node
}

// New returns a node for s with the given payload and children. The payload
// is nil, a string, an int or an xref.Xref; validation reports any other
// type as wrongly typed.
func New(s *schema.Schema, payload any, children ...*Node) *Node {
	n := &Node{schema: s, payload: payload}
	return n.Add(children...)
}

// NewRecord returns a top-level record node declaring id.
func NewRecord(s *schema.Schema, id xref.Xref, payload any, children ...*Node) *Node {
	n := New(s, payload, children...)
	n.id = id
	return n
}

// Add appends children in order and returns n. Nil children are skipped.
func (n *Node) Add(children ...*Node) *Node {
	for _, c := range children {
		if c != nil {
			n.children = append(n.children, c)
		}
	}
	return n
}

// Schema returns the node's schema.
func (n *Node) Schema() *schema.Schema { return n.schema }

// Tag returns the line tag.
func (n *Node) Tag() string { return n.schema.Tag }

// Key returns the schema key.
func (n *Node) Key() string { return n.schema.Key }

// ID returns the identifier a record declares; the zero Xref otherwise.
func (n *Node) ID() xref.Xref { return n.id }

// Payload returns the raw payload.
func (n *Node) Payload() any { return n.payload }

// Children returns the substructures in order. The slice must not be
// modified.
func (n *Node) Children() []*Node { return n.children }

// Text returns the payload as it is written on a line: strings verbatim,
// integers in decimal and pointers as their fullname.
func (n *Node) Text() string {
	return payloadText(n.payload)
}

// Walk calls fn for n and every descendant in depth-first pre-order,
// passing the nesting depth relative to n. Returning false skips the
// node's children.
func (n *Node) Walk(fn func(node *Node, depth int) bool) {
	n.walk(fn, 0)
}

func (n *Node) walk(fn func(*Node, int) bool, depth int) {
	if !fn(n, depth) {
		return
	}
	for _, c := range n.children {
		c.walk(fn, depth+1)
	}
}

// First returns the first child written with tag.
func (n *Node) First(tag string) (*Node, bool) {
	for _, c := range n.children {
		if c.Tag() == tag {
			return c, true
		}
	}
	return nil, false
}

// String returns the tag, the record identifier when set, and the payload.
func (n *Node) String() string {
	s := n.Tag()
	if !n.id.IsZero() {
		s = n.id.Fullname() + " " + s
	}
	if text := n.Text(); text != "" {
		s += " " + text
	}
	return s
}

func payloadText(p any) string {
	switch v := p.(type) {
	case nil:
		return ""
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case xref.Xref:
		return v.Fullname()
	default:
		return fmt.Sprintf("%v", v)
	}
}
