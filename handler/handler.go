// Package handler implements the five context-handler variants the
// scheduler drives: Call, VarSubCall, Orb, Values, and Bind. Each is
// created while walking a query's algebra, wired into the dependency graph
// by variable, and executed exactly once.
package handler

import (
	"github.com/bas-stringer/scry/graph"
	"github.com/bas-stringer/scry/merge"
	"github.com/bas-stringer/scry/registry"
)

// QueryContext is the slice of a running query's state a handler needs:
// access to the registry, the conjunctive graph being assembled, and the
// procedure-scoped resources (temp dirs, environment) procedures see.
// Defined here rather than in the query package so the dependency runs one
// way: query depends on handler, not the reverse.
type QueryContext interface {
	registry.QueryHandle
	Graph() *graph.Graph
	LookupProcedure(baseURI string) (*registry.Procedure, bool)
	// EnsureOrbDescription materializes the registry's description triples
	// into the orb_description named subgraph exactly once across the
	// query's lifetime, memoizing the result.
	EnsureOrbDescription() (graphName string, err error)
	// LogProcedureFailure records a procedure invocation's failure at pau,
	// for the request's audit trail. A no-op on a context with no logger
	// attached.
	LogProcedureFailure(pau string, err error)
}

// Handler is the common interface all five context-handler variants
// satisfy. Modeled as a sum type over concrete structs rather than a class
// hierarchy, per the design note that a tagged union is the idiomatic
// analogue here.
type Handler interface {
	// InputVars are the variables that must be bound by some other handler
	// before this one can execute.
	InputVars() []string
	// OutputVars are the variables this handler binds once executed.
	OutputVars() []string
	// Executed reports whether Execute has run.
	Executed() bool
	// Bindings returns the binding rows this handler has produced. Valid
	// only after Execute has run.
	Bindings() []merge.Row
	// Execute runs the handler. deps holds one binding-row list per
	// dependency, in the scheduler's dependency-index order.
	Execute(deps [][]merge.Row, q QueryContext) error
}
