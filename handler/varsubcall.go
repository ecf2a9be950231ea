package handler

import (
	"github.com/bas-stringer/scry/merge"
	"github.com/bas-stringer/scry/rdf"
	"github.com/bas-stringer/scry/scryerr"
)

// VarSubCall handles triples whose subject is a variable rather than a
// fixed PAU: the procedure to invoke is discovered at execution time from
// whatever PAU values a producer bound the subject variable to. Internally it dispatches to a fresh Call handler per distinct PAU.
type VarSubCall struct {
	subjectVar string

	rawInputs []rdf.Triple
	rawOutputs []rdf.Triple
	rawDesc    []rdf.Triple

	inputVars  []string
	outputVars []string

	executed bool
	bindings []merge.Row
}

// NewVarSubCall builds an empty VarSubCall keyed by subjectVar (without the
// leading '?').
func NewVarSubCall(subjectVar string) *VarSubCall {
	return &VarSubCall{subjectVar: subjectVar, inputVars: []string{subjectVar}}
}

// AddInput accumulates one `?subject <input?spec> obj` triple.
func (v *VarSubCall) AddInput(t rdf.Triple) {
	v.rawInputs = append(v.rawInputs, t)
	if t.Object.IsVariable() {
		v.inputVars = append(v.inputVars, t.Object.VarName())
	}
}

// AddOutput accumulates one `?subject <output?spec> ?v` triple.
func (v *VarSubCall) AddOutput(t rdf.Triple) {
	v.rawOutputs = append(v.rawOutputs, t)
	if t.Object.IsVariable() {
		v.outputVars = append(v.outputVars, t.Object.VarName())
	}
}

// AddDescription accumulates one `?subject <author|...> obj` triple.
func (v *VarSubCall) AddDescription(t rdf.Triple) {
	v.rawDesc = append(v.rawDesc, t)
	if t.Object.IsVariable() {
		v.outputVars = append(v.outputVars, t.Object.VarName())
	}
}

func (v *VarSubCall) InputVars() []string    { return v.inputVars }
func (v *VarSubCall) OutputVars() []string   { return v.outputVars }
func (v *VarSubCall) Executed() bool         { return v.executed }
func (v *VarSubCall) Bindings() []merge.Row  { return v.bindings }

// Execute resolves the set of distinct PAU values the subject variable
// takes across the merged dependency bindings, then dispatches each to a
// temporary Call handler scoped to that PAU.
func (v *VarSubCall) Execute(deps [][]merge.Row, q QueryContext) error {
	defer func() { v.executed = true }()

	joined := merge.MergeAndFilter(deps)

	distinctPAUs := make(map[string]rdf.Node)
	rowsByPAU := make(map[string][]merge.Row)
	for _, row := range joined {
		pauNode, ok := row[v.subjectVar]
		if !ok {
			continue
		}
		key := pauNode.Value()
		distinctPAUs[key] = pauNode
		rowsByPAU[key] = append(rowsByPAU[key], row)
	}

	for key, pauNode := range distinctPAUs {
		baseURI := rdf.BaseIRI(pauNode.Value())
		proc, ok := q.LookupProcedure(baseURI)
		if !ok {
			return scryerr.ErrUnknownProcedure.New(baseURI)
		}

		call := NewCall(pauNode, proc)
		for _, t := range v.rawInputs {
			retargeted := rdf.Triple{Subject: pauNode, Predicate: t.Predicate, Object: t.Object}
			if err := call.AddInput(retargeted); err != nil {
				return err
			}
		}
		for _, t := range v.rawOutputs {
			retargeted := rdf.Triple{Subject: pauNode, Predicate: t.Predicate, Object: t.Object}
			if err := call.AddOutput(retargeted); err != nil {
				return err
			}
		}
		for _, t := range v.rawDesc {
			call.AddDescription(rdf.Triple{Subject: pauNode, Predicate: t.Predicate, Object: t.Object})
		}

		if err := call.Execute([][]merge.Row{rowsByPAU[key]}, q); err != nil {
			return err
		}

		for _, row := range call.Bindings() {
			full := make(merge.Row, len(row)+1)
			for k, val := range row {
				full[k] = val
			}
			full[v.subjectVar] = pauNode
			v.bindings = append(v.bindings, full)
		}
	}

	return nil
}
