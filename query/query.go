// Package query orchestrates one request end to end: parse the SPARQL text,
// walk its algebra into context handlers, schedule them to a fixed point,
// and evaluate the original query's triple pattern against the resulting
// conjunctive graph. A Query is the concrete type that satisfies both
// registry.QueryHandle (what a procedure callable sees) and
// handler.QueryContext (what a context handler sees).
package query

import (
	"os"
	"sort"

	"github.com/bas-stringer/scry/algebra"
	"github.com/bas-stringer/scry/graph"
	"github.com/bas-stringer/scry/handler"
	"github.com/bas-stringer/scry/logging"
	"github.com/bas-stringer/scry/merge"
	"github.com/bas-stringer/scry/rdf"
	"github.com/bas-stringer/scry/registry"
	"github.com/bas-stringer/scry/scheduler"
	"github.com/bas-stringer/scry/scryerr"
	"github.com/bas-stringer/scry/sparqleval"
)

// Result is a resolved query's projected solution set: the variables
// actually selected (in SELECT order, or sorted by name for SELECT *) and
// the rows bound to them.
type Result struct {
	Vars []string
	Rows []sparqleval.Row
}

// Query is one request's exclusive working state: the conjunctive graph
// being assembled, the temp directories handed out to procedures, and the
// query-scoped environment map procedures may use as scratch space.
type Query struct {
	reg  *registry.Registry
	g    *graph.Graph
	env  map[string]interface{}
	dirs []string

	orbName      string
	orbInDefault bool

	log       *logging.RequestLogger
	requestID logging.RequestID
}

// New builds an empty Query bound to reg. A fresh Query must be built per
// request; it is never reused or shared.
func New(reg *registry.Registry) *Query {
	return &Query{reg: reg, g: graph.New(), env: make(map[string]interface{})}
}

// WithLogger attaches a request logger and correlation id, so procedure
// invocation failures surface in the request's audit trail rather than only
// as the error this Query returns. Optional: a Query with none attached
// simply skips the audit line.
func (q *Query) WithLogger(log *logging.RequestLogger, id logging.RequestID) *Query {
	q.log = log
	q.requestID = id
	return q
}

// LogProcedureFailure records a procedure invocation's failure at pau to the
// attached request logger, if any.
func (q *Query) LogProcedureFailure(pau string, err error) {
	if q.log == nil {
		return
	}
	q.log.ProcedureFailure(q.requestID, pau, err)
}

// GetTempDir hands out a fresh temp directory, tracked for cleanup.
func (q *Query) GetTempDir() (string, error) {
	dir, err := os.MkdirTemp("", "scry-")
	if err != nil {
		return "", err
	}
	q.dirs = append(q.dirs, dir)
	return dir, nil
}

// ServiceEnv returns the per-query scratch map shared across every
// procedure invocation this query makes.
func (q *Query) ServiceEnv() map[string]interface{} { return q.env }

// Graph returns the conjunctive graph this query assembles procedure
// output into.
func (q *Query) Graph() *graph.Graph { return q.g }

// LookupProcedure resolves a base procedure IRI against the registry.
func (q *Query) LookupProcedure(baseURI string) (*registry.Procedure, bool) {
	return q.reg.Lookup(baseURI)
}

// EnsureOrbDescription materializes the registry's self-description into
// the orb_description named subgraph exactly once, memoizing the graph
// name across every Orb handler in this query.
func (q *Query) EnsureOrbDescription() (string, error) {
	if q.orbName != "" {
		return q.orbName, nil
	}
	triples, err := q.reg.DescribeAll()
	if err != nil {
		return "", err
	}
	name := rdf.SentinelOrbDescription.Value()
	q.g.AddSubgraphNamed(name, triples)
	q.orbName = name
	return name, nil
}

// Cleanup recursively removes every temp directory this query handed out.
// Safe to call more than once and on a query that never requested one.
func (q *Query) Cleanup() {
	for _, d := range q.dirs {
		os.RemoveAll(d)
	}
	q.dirs = nil
}

// Resolve parses queryText, runs the full handler pipeline, and returns the
// projected solution set. Temp directories are always reclaimed before
// returning, on both the success and the error path.
func (q *Query) Resolve(queryText string) (*Result, error) {
	defer q.Cleanup()

	parsed, err := algebra.Parse(queryText)
	if err != nil {
		return nil, err
	}
	walked, err := algebra.Walk(parsed)
	if err != nil {
		return nil, err
	}

	handlers, err := q.buildHandlers(walked)
	if err != nil {
		return nil, err
	}

	sched, err := scheduler.New(handlers)
	if err != nil {
		return nil, err
	}
	if err := sched.Run(q); err != nil {
		return nil, err
	}

	data := q.g.AllExcept(q.orbName)
	if q.orbInDefault {
		data = q.g.All()
	}
	graphRows, err := sparqleval.Select(walked.Triples, nil, false, data)
	if err != nil {
		return nil, err
	}

	rowLists := make([][]merge.Row, 0, len(handlers)+1)
	for _, h := range handlers {
		if len(h.OutputVars()) > 0 {
			rowLists = append(rowLists, h.Bindings())
		}
	}
	rowLists = append(rowLists, toMergeRows(graphRows))

	merged := merge.MergeAndFilter(rowLists)

	vars := parsed.Vars
	if parsed.SelectAll {
		vars = nil
	}
	finalRows := sparqleval.ProjectRows(toSparqlRows(merged), vars, parsed.Distinct)

	resultVars := vars
	if resultVars == nil {
		resultVars = unionVars(finalRows)
	}

	return &Result{Vars: resultVars, Rows: finalRows}, nil
}

// buildHandlers routes a walked query's clauses to the five context-handler
// variants: VALUES and BIND become their own handler per clause, a
// GRAPH <orb_description> block becomes an Orb handler, and every remaining
// top-level triple is routed by its subject's kind and its predicate's base
// IRI to a Call (IRI subject) or VarSubCall (variable subject) handler,
// grouped one per distinct subject. A triple whose predicate is not one of
// the reserved input/output/description predicates, or whose subject is the
// sentinel orb IRI, carries no structured routing and is left for the final
// graph-pattern evaluation.
func (q *Query) buildHandlers(w *algebra.Walked) ([]handler.Handler, error) {
	var handlers []handler.Handler

	for _, vc := range w.Values {
		handlers = append(handlers, handler.NewValues(vc.Vars, vc.Rows))
	}
	for _, bc := range w.Binds {
		b, err := handler.NewBind(bc.Expr, bc.Var)
		if err != nil {
			return nil, err
		}
		handlers = append(handlers, b)
	}
	for _, g := range w.Orbs {
		o, err := handler.NewOrb(g.Pattern.Triples, q)
		if err != nil {
			return nil, err
		}
		handlers = append(handlers, o)
	}

	calls := make(map[string]*handler.Call)
	varCalls := make(map[string]*handler.VarSubCall)

	for _, t := range w.Triples {
		if t.Subject.IsIRI() && t.Subject.Value() == rdf.SentinelOrb.Value() {
			// A sentinel-orb subject asks for description metadata at the
			// graph-description level: materialize the self-description and
			// leave the triple for the final graph-pattern evaluation.
			if _, err := q.EnsureOrbDescription(); err != nil {
				return nil, err
			}
			q.orbInDefault = true
			continue
		}

		role, ok := predicateRole(t.Predicate)
		if !ok {
			continue
		}

		switch {
		case t.Subject.IsVariable():
			key := t.Subject.VarName()
			vsc, exists := varCalls[key]
			if !exists {
				vsc = handler.NewVarSubCall(key)
				varCalls[key] = vsc
				handlers = append(handlers, vsc)
			}
			switch role {
			case roleInput:
				vsc.AddInput(t)
			case roleOutput:
				vsc.AddOutput(t)
			case roleDescription:
				vsc.AddDescription(t)
			}

		case t.Subject.IsIRI():
			key := t.Subject.Value()
			call, exists := calls[key]
			if !exists {
				baseURI := rdf.BaseIRI(key)
				proc, found := q.reg.Lookup(baseURI)
				if !found {
					return nil, scryerr.ErrUnknownProcedure.New(baseURI)
				}
				call = handler.NewCall(t.Subject, proc)
				calls[key] = call
				handlers = append(handlers, call)
			}
			var err error
			switch role {
			case roleInput:
				err = call.AddInput(t)
			case roleOutput:
				err = call.AddOutput(t)
			case roleDescription:
				call.AddDescription(t)
			}
			if err != nil {
				return nil, err
			}
		}
	}

	return handlers, nil
}

type predRole int

const (
	roleInput predRole = iota
	roleOutput
	roleDescription
)

func predicateRole(predicate rdf.Node) (predRole, bool) {
	base, _ := rdf.SplitPredicate(predicate.Value())
	switch base {
	case rdf.PredInput.Value():
		return roleInput, true
	case rdf.PredOutput.Value():
		return roleOutput, true
	}
	for _, p := range rdf.DescriptionPredicates {
		if base == p.Value() {
			return roleDescription, true
		}
	}
	return 0, false
}

func toMergeRows(rows []sparqleval.Row) []merge.Row {
	out := make([]merge.Row, len(rows))
	for i, r := range rows {
		out[i] = merge.Row(r)
	}
	return out
}

func toSparqlRows(rows []merge.Row) []sparqleval.Row {
	out := make([]sparqleval.Row, len(rows))
	for i, r := range rows {
		out[i] = sparqleval.Row(r)
	}
	return out
}

func unionVars(rows []sparqleval.Row) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range rows {
		for k := range r {
			if !seen[k] {
				seen[k] = true
				out = append(out, k)
			}
		}
	}
	sort.Strings(out)
	return out
}
