package registry

import (
	"github.com/bas-stringer/scry/rdf"
	"github.com/bas-stringer/scry/scryerr"
)

// Row is a binding row: a mapping from argument specifier or variable name
// to the RDF node bound to it.
type Row map[string]rdf.Node

// ResultKind discriminates the four shapes a procedure's return value can
// take.
type ResultKind int

const (
	ResultMany ResultKind = iota
	ResultOne
	ResultScalar
	ResultEmpty
)

// Result is the normalized return value of a procedure invocation. Build one
// with ManyRows, OneRow, Scalar, or Empty; a Call handler only ever needs to
// inspect Kind and the matching accessor.
type Result struct {
	kind ResultKind
	rows []Row
	node rdf.Node
}

func ManyRows(rows []Row) Result { return Result{kind: ResultMany, rows: rows} }
func OneRow(row Row) Result      { return Result{kind: ResultOne, rows: []Row{row}} }
func Scalar(node rdf.Node) Result { return Result{kind: ResultScalar, node: node} }
func Empty() Result               { return Result{kind: ResultEmpty} }

func (r Result) Kind() ResultKind { return r.kind }
func (r Result) Rows() []Row      { return r.rows }
func (r Result) Node() rdf.Node   { return r.node }

// QueryHandle is the slice of a query's state a procedure is allowed to
// touch: scratch temp directories and the query-scoped environment map.
// Defined here (rather than imported from the query package) so procedures
// and the registry never depend on the orchestration layer.
type QueryHandle interface {
	GetTempDir() (string, error)
	ServiceEnv() map[string]interface{}
}

// Func is the shape every registered procedure callable must satisfy: a
// mapping from input specifier to bound node, the set of output specifiers
// the caller wants populated, and a handle to the enclosing query.
type Func func(input map[string]rdf.Node, wantOutputs map[string]bool, q QueryHandle) (Result, error)

// Procedure is the full descriptor for one registered procedure: its
// identity, its callable, its argument contracts, and its derived defaults.
type Procedure struct {
	URI      string
	RDFType  string
	Author      string
	Description string
	Provenance  string
	Version     string

	Callable Func

	Accepts  []Argument
	Requires []Argument
	Generates []Argument

	DefaultInput  *Argument
	DefaultOutput *Argument
}

// AssertValidity checks the invariants this package lists for a Procedure
// descriptor, and derives DefaultInput/DefaultOutput when they were left
// unset. Call this once, at registration time.
func (p *Procedure) AssertValidity() error {
	if p.Callable == nil {
		return scryerr.ErrRegistryInvalid.New(p.URI, "callable is nil")
	}

	acceptedIDs := make(map[string]bool, len(p.Accepts))
	for _, a := range p.Accepts {
		acceptedIDs[a.ID] = true
	}
	for _, r := range p.Requires {
		if !acceptedIDs[r.ID] {
			return scryerr.ErrRegistryInvalid.New(p.URI, "requires argument "+r.ID+" not present in accepts")
		}
	}

	seen := make(map[string]bool)
	for _, a := range p.Accepts {
		if seen[a.ID] {
			return scryerr.ErrRegistryInvalid.New(p.URI, "duplicate argument id "+a.ID+" in accepts")
		}
		seen[a.ID] = true
	}
	for _, a := range p.Generates {
		if seen[a.ID] {
			return scryerr.ErrRegistryInvalid.New(p.URI, "duplicate argument id "+a.ID+" across accepts/generates")
		}
		seen[a.ID] = true
	}

	if p.DefaultInput == nil {
		switch {
		case len(p.Requires) == 1:
			p.DefaultInput = &p.Requires[0]
		case len(p.Accepts) == 1:
			p.DefaultInput = &p.Accepts[0]
		}
	}
	if p.DefaultOutput == nil && len(p.Generates) == 1 {
		p.DefaultOutput = &p.Generates[0]
	}

	return nil
}

// FindAccepts returns the accepted argument with the given id, if any.
func (p *Procedure) FindAccepts(id string) (Argument, bool) {
	for _, a := range p.Accepts {
		if a.ID == id {
			return a, true
		}
	}
	return Argument{}, false
}

// FindGenerates returns the generated argument with the given id, if any.
func (p *Procedure) FindGenerates(id string) (Argument, bool) {
	for _, a := range p.Generates {
		if a.ID == id {
			return a, true
		}
	}
	return Argument{}, false
}
