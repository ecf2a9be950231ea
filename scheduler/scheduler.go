// Package scheduler builds the handler dependency graph and drives
// execution to a fixed point, in dependency order.
// Handlers are owned in an arena and referenced by index, so dependency
// edges are plain index sets rather than handler-to-handler back-references.
package scheduler

import (
	"fmt"

	"github.com/bas-stringer/scry/handler"
	"github.com/bas-stringer/scry/merge"
	"github.com/bas-stringer/scry/scryerr"
)

// Scheduler owns a query's handlers and their wired dependency edges.
type Scheduler struct {
	handlers []handler.Handler
	deps     [][]int
}

// New builds a Scheduler over handlers, wiring each handler's input
// variables to the handlers that produce them. Returns
// scryerr.ErrUnresolvedVariable if some input variable has no producer.
func New(handlers []handler.Handler) (*Scheduler, error) {
	producers := make(map[string][]int)
	for i, h := range handlers {
		for _, v := range h.OutputVars() {
			producers[v] = append(producers[v], i)
		}
	}

	deps := make([][]int, len(handlers))
	for i, h := range handlers {
		seen := make(map[int]bool)
		for _, v := range h.InputVars() {
			prods, ok := producers[v]
			if !ok {
				return nil, scryerr.ErrUnresolvedVariable.New(v)
			}
			for _, p := range prods {
				if p == i || seen[p] {
					continue
				}
				seen[p] = true
				deps[i] = append(deps[i], p)
			}
		}
	}

	return &Scheduler{handlers: handlers, deps: deps}, nil
}

// Run executes every handler exactly once, in dependency order, passing
// each one its dependencies' bindings. Returns scryerr.ErrDependencyCycle if
// the dependency relation is not a DAG.
func (s *Scheduler) Run(q handler.QueryContext) error {
	executed := make([]bool, len(s.handlers))
	visiting := make([]bool, len(s.handlers))
	for i := range s.handlers {
		if err := s.execute(i, executed, visiting, q); err != nil {
			return err
		}
	}
	return nil
}

func (s *Scheduler) execute(i int, executed, visiting []bool, q handler.QueryContext) error {
	if executed[i] {
		return nil
	}
	if visiting[i] {
		return scryerr.ErrDependencyCycle.New(fmt.Sprintf("handler index %d", i))
	}
	visiting[i] = true

	depBindings := make([][]merge.Row, len(s.deps[i]))
	for j, d := range s.deps[i] {
		if err := s.execute(d, executed, visiting, q); err != nil {
			return err
		}
		depBindings[j] = s.handlers[d].Bindings()
	}

	if err := s.handlers[i].Execute(depBindings, q); err != nil {
		return err
	}
	executed[i] = true
	visiting[i] = false
	return nil
}

// Handlers returns the handlers this scheduler owns, in their original
// order.
func (s *Scheduler) Handlers() []handler.Handler { return s.handlers }
