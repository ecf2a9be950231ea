package handler

import (
	"github.com/bas-stringer/scry/merge"
	"github.com/bas-stringer/scry/rdf"
)

// Values wraps an inline `VALUES` block: its rows are already fully
// determined by the query text, so it executes immediately on construction
// and declares no dependencies.
type Values struct {
	outputVars []string
	bindings   []merge.Row
}

// NewValues builds a Values handler from the parsed clause's variable names
// and rows.
func NewValues(vars []string, rows []map[string]rdf.Node) *Values {
	bindings := make([]merge.Row, 0, len(rows))
	for _, r := range rows {
		row := make(merge.Row, len(r))
		for k, v := range r {
			row[k] = v
		}
		bindings = append(bindings, row)
	}
	return &Values{outputVars: vars, bindings: bindings}
}

func (v *Values) InputVars() []string   { return nil }
func (v *Values) OutputVars() []string  { return v.outputVars }
func (v *Values) Executed() bool        { return true }
func (v *Values) Bindings() []merge.Row { return v.bindings }

// Execute is a no-op: a Values handler's bindings are already fixed at
// construction time.
func (v *Values) Execute(deps [][]merge.Row, q QueryContext) error { return nil }
