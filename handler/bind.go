package handler

import (
	"github.com/bas-stringer/scry/algebra"
	"github.com/bas-stringer/scry/merge"
	"github.com/bas-stringer/scry/rdf"
)

// Bind wraps a `BIND(expr AS ?v)` clause. If expr references free variables
// those become input_vars and execution is deferred until the scheduler
// runs this handler's dependencies; otherwise it is evaluated immediately,
// with no environment.
type Bind struct {
	expr algebra.Expr
	v    string

	inputVars []string
	executed  bool
	bindings  []merge.Row
}

// NewBind builds a Bind handler from the parsed clause. An expression with
// no free variables is evaluated eagerly here.
func NewBind(expr algebra.Expr, v string) (*Bind, error) {
	b := &Bind{expr: expr, v: v}
	free := expr.Vars()
	if len(free) == 0 {
		val, err := algebra.EvalExpr(expr, nil)
		if err != nil {
			return nil, err
		}
		b.bindings = []merge.Row{{v: val}}
		b.executed = true
		return b, nil
	}
	b.inputVars = free
	return b, nil
}

func (b *Bind) InputVars() []string   { return b.inputVars }
func (b *Bind) OutputVars() []string  { return []string{b.v} }
func (b *Bind) Executed() bool        { return b.executed }
func (b *Bind) Bindings() []merge.Row { return b.bindings }

// Execute evaluates expr against each merged dependency row. A no-op if the
// expression was already evaluated eagerly at construction time.
func (b *Bind) Execute(deps [][]merge.Row, q QueryContext) error {
	if b.executed {
		return nil
	}
	defer func() { b.executed = true }()

	joined := merge.MergeAndFilter(deps)
	for _, row := range joined {
		val, err := algebra.EvalExpr(b.expr, map[string]rdf.Node(row))
		if err != nil {
			return err
		}
		b.bindings = append(b.bindings, merge.Row{b.v: val})
	}
	return nil
}
