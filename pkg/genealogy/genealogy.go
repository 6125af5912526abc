// SPDX-License-Identifier: MPL-2.0

// Package genealogy assembles a document: one header, records in staging
// order and the registry that minted their identifiers.
//
// A Genealogy is not safe for concurrent use. Build documents concurrently
// by giving each goroutine its own Genealogy.
package genealogy

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/gedforge/gedforge/pkg/gederr"
	"github.com/gedforge/gedforge/pkg/gedline"
	"github.com/gedforge/gedforge/pkg/schema"
	"github.com/gedforge/gedforge/pkg/structure"
	"github.com/gedforge/gedforge/pkg/xref"
)

// Version is the format version written to the header.
const Version = schema.Version

type (
	// Option configures a Genealogy.
	Option func(*Genealogy)

	// Genealogy owns the registry, header and records of one document.
	Genealogy struct {
		table   *schema.Table
		reg     *xref.Registry
		regOpts []xref.Option
		logger  *log.Logger
		header  *structure.Node
		records []*structure.Node
	}
)

// WithLogger sets the logger used for debug output. The default discards.
func WithLogger(l *log.Logger) Option {
	return func(g *Genealogy) { g.logger = l }
}

// WithInitial sets the prefix of automatically numbered identifiers.
func WithInitial(prefix string) Option {
	return func(g *Genealogy) { g.regOpts = append(g.regOpts, xref.WithInitial(prefix)) }
}

// WithTable builds and parses against t instead of the default table.
func WithTable(t *schema.Table) Option {
	return func(g *Genealogy) { g.table = t }
}

// New returns an empty document with its own registry.
func New(opts ...Option) *Genealogy {
	g := &Genealogy{table: schema.Default()}
	for _, opt := range opts {
		opt(g)
	}
	if g.logger == nil {
		g.logger = log.New(io.Discard)
	}
	g.reg = xref.NewRegistry(g.regOpts...)
	return g
}

// Registry returns the document's registry.
func (g *Genealogy) Registry() *xref.Registry { return g.reg }

// Table returns the schema table the document is built against.
func (g *Genealogy) Table() *schema.Table { return g.table }

// Header returns the staged header, or nil.
func (g *Genealogy) Header() *structure.Node { return g.header }

// Records returns the staged records in staging order.
func (g *Genealogy) Records() []*structure.Node {
	return append([]*structure.Node(nil), g.records...)
}

// Mint creates an identifier in the document's registry. An empty name is
// numbered automatically.
func (g *Genealogy) Mint(kind xref.Kind, name string) (xref.Xref, error) {
	x, err := g.reg.Mint(kind, name)
	if err != nil {
		return xref.Xref{}, err
	}
	g.logger.Debug("minted", "xref", x.Fullname(), "kind", kind)
	return x, nil
}

// Node builds a structure for the schema registered under key.
func (g *Genealogy) Node(key string, payload any, children ...*structure.Node) (*structure.Node, error) {
	s, ok := g.table.Lookup(key)
	if !ok {
		return nil, gederr.New(gederr.NotPermitted, key, strings.Join(g.table.Keys(), ", "))
	}
	return structure.New(s, payload, children...), nil
}

// Record mints an identifier of kind under name and returns an empty record
// declaring it.
func (g *Genealogy) Record(kind xref.Kind, name string, children ...*structure.Node) (*structure.Node, error) {
	s, ok := g.table.RecordFor(kind)
	if !ok {
		return nil, gederr.New(gederr.NotPermitted, kind.String(), "")
	}
	id, err := g.Mint(kind, name)
	if err != nil {
		return nil, err
	}
	return structure.NewRecord(s, id, nil, children...), nil
}

// NewHeader returns a header carrying the format version, followed by extra.
func (g *Genealogy) NewHeader(extra ...*structure.Node) *structure.Node {
	head := structure.New(g.table.Must(schema.HeaderKey), nil,
		structure.New(g.table.Must("GEDC"), nil,
			structure.New(g.table.Must("GEDC-VERS"), Version)))
	return head.Add(extra...)
}

// StageHeader sets the header. A document has at most one.
func (g *Genealogy) StageHeader(h *structure.Node) error {
	if h.Key() != schema.HeaderKey {
		return gederr.New(gederr.NotPermitted, h.Tag(), gedline.HeaderTag)
	}
	if g.header != nil {
		return gederr.New(gederr.MultipleHeaders, gedline.HeaderTag)
	}
	g.header = h
	g.logger.Debug("staged header")
	return nil
}

// Stage appends records in order. A header among them is staged with
// StageHeader; any other non-record structure is rejected.
func (g *Genealogy) Stage(records ...*structure.Node) error {
	for _, r := range records {
		if r.Key() == schema.HeaderKey {
			if err := g.StageHeader(r); err != nil {
				return err
			}
			continue
		}
		if !r.Schema().IsRecord() {
			return gederr.New(gederr.NotPermitted, r.Tag(), "a record")
		}
		g.records = append(g.records, r)
		g.logger.Debug("staged record", "xref", r.ID().Fullname(), "tag", r.Tag())
	}
	return nil
}

// Load parses text into the document, minting its identifiers in the
// document's registry and staging every structure it contains.
func (g *Genealogy) Load(text string) error {
	nodes, err := gedline.Parse(text, g.reg, gedline.WithTable(g.table))
	if err != nil {
		return fmt.Errorf("parse document: %w", err)
	}
	g.logger.Debug("parsed document", "structures", len(nodes), "xrefs", g.reg.Len())
	return g.Stage(nodes...)
}

// Render returns the whole document: the header if one was staged, then the
// records in staging order and the trailer.
func (g *Genealogy) Render() string {
	out := gedline.Document(g.header, g.records...)
	g.logger.Debug("rendered document", "records", len(g.records), "bytes", len(out))
	return out
}

// Validate returns the first violation in the header or the records, in
// staging order, or nil.
func (g *Genealogy) Validate() error {
	for _, n := range g.roots() {
		if err := structure.Validate(n, structure.WithRegistry(g.reg)); err != nil {
			return err
		}
	}
	if errs := g.missingRecords(); len(errs) > 0 {
		return errs[0].Err
	}
	return nil
}

// ValidateAll returns every violation: the structure rules for each staged
// structure, then MissingRecord for each pointer to an identifier that was
// minted but never staged as a record.
func (g *Genealogy) ValidateAll() structure.ValidationErrors {
	var errs structure.ValidationErrors
	for _, n := range g.roots() {
		errs = append(errs, structure.ValidateAll(n, structure.WithRegistry(g.reg))...)
	}
	errs = append(errs, g.missingRecords()...)
	g.logger.Debug("validated document", "violations", len(errs))
	return errs
}

func (g *Genealogy) roots() []*structure.Node {
	if g.header == nil {
		return g.records
	}
	return append([]*structure.Node{g.header}, g.records...)
}

func (g *Genealogy) missingRecords() structure.ValidationErrors {
	staged := make(map[xref.Xref]bool, len(g.records))
	for _, r := range g.records {
		staged[r.ID()] = true
	}

	var errs structure.ValidationErrors
	for _, root := range g.roots() {
		var walk func(n *structure.Node, path string)
		walk = func(n *structure.Node, path string) {
			label := n.Tag()
			if id := n.ID(); !id.IsZero() {
				label = id.Fullname() + " " + label
			}
			if path != "" {
				label = path + " > " + label
			}
			if x, ok := n.Payload().(xref.Xref); ok && !x.IsVoid() && g.reg.Contains(x) && !staged[x] {
				errs = append(errs, structure.ValidationError{
					Path: label,
					Err:  gederr.New(gederr.MissingRecord, x.Fullname()).WithTag(n.Tag()),
				})
			}
			for _, c := range n.Children() {
				walk(c, label)
			}
		}
		walk(root, "")
	}
	return errs
}

// NewUID returns a UID structure with a random UUID payload.
func NewUID() *structure.Node {
	return structure.New(schema.Default().Must("UID"), uuid.NewString())
}
