package handler

import (
	"github.com/bas-stringer/scry/merge"
	"github.com/bas-stringer/scry/rdf"
	"github.com/bas-stringer/scry/registry"
	"github.com/bas-stringer/scry/scryerr"
)

// Call represents one invocation of one procedure at one Procedure-
// Associated URI.
type Call struct {
	pau       rdf.Node
	procedure *registry.Procedure

	known []specTriple // specifier resolved, object already a constant
	vars  []specTriple // specifier resolved, object is a variable
	out   []specTriple // output specifier -> triple (object is the bound variable)
	desc  []specTriple // description predicate triples

	inputVars  []string
	outputVars []string

	executed bool
	bindings []merge.Row
}

type specTriple struct {
	specifier string
	triple    rdf.Triple
}

// NewCall builds an empty Call handler for one PAU against proc. Triples are
// accumulated afterward with AddInput/AddOutput/AddDescription.
func NewCall(pau rdf.Node, proc *registry.Procedure) *Call {
	return &Call{pau: pau, procedure: proc}
}

// PAU returns the subject IRI this handler was created for.
func (c *Call) PAU() rdf.Node { return c.pau }

func (c *Call) resolveInputSpecifier(predicate string) (string, error) {
	_, spec := rdf.SplitPredicate(predicate)
	if spec == rdf.DefaultSpecifier {
		if c.procedure.DefaultInput == nil {
			return "", scryerr.ErrBadSpecifier.New(spec, c.procedure.URI, "no default input is defined")
		}
		return c.procedure.DefaultInput.ID, nil
	}
	return spec, nil
}

func (c *Call) resolveOutputSpecifier(predicate string) (string, error) {
	_, spec := rdf.SplitPredicate(predicate)
	if spec == rdf.DefaultSpecifier {
		if c.procedure.DefaultOutput == nil {
			return "", scryerr.ErrBadSpecifier.New(spec, c.procedure.URI, "no default output is defined")
		}
		return c.procedure.DefaultOutput.ID, nil
	}
	return spec, nil
}

// AddInput accumulates one `<pau> <input?spec> obj` triple.
func (c *Call) AddInput(t rdf.Triple) error {
	spec, err := c.resolveInputSpecifier(t.Predicate.Value())
	if err != nil {
		return err
	}
	if t.HasVariableObject() {
		c.vars = append(c.vars, specTriple{spec, t})
		c.inputVars = append(c.inputVars, t.Object.VarName())
	} else {
		c.known = append(c.known, specTriple{spec, t})
	}
	return nil
}

// AddOutput accumulates one `<pau> <output?spec> ?v` triple.
func (c *Call) AddOutput(t rdf.Triple) error {
	spec, err := c.resolveOutputSpecifier(t.Predicate.Value())
	if err != nil {
		return err
	}
	c.out = append(c.out, specTriple{spec, t})
	if t.Object.IsVariable() {
		c.outputVars = append(c.outputVars, t.Object.VarName())
	}
	return nil
}

// AddDescription accumulates one `<pau> <author|description|provenance|version> obj` triple.
func (c *Call) AddDescription(t rdf.Triple) {
	c.desc = append(c.desc, specTriple{"", t})
	if t.Object.IsVariable() {
		c.outputVars = append(c.outputVars, t.Object.VarName())
	}
}

func (c *Call) InputVars() []string  { return c.inputVars }
func (c *Call) OutputVars() []string { return c.outputVars }
func (c *Call) Executed() bool       { return c.executed }
func (c *Call) Bindings() []merge.Row {
	return c.bindings
}

func (c *Call) descriptionValue(predicate rdf.Node) string {
	switch predicate.Value() {
	case rdf.PredAuthor.Value():
		return orUndescribed(c.procedure.Author)
	case rdf.PredDescription.Value():
		return orUndescribed(c.procedure.Description)
	case rdf.PredProvenance.Value():
		return orUndescribed(c.procedure.Provenance)
	case rdf.PredVersion.Value():
		return orUndescribed(c.procedure.Version)
	default:
		return "Undescribed"
	}
}

func orUndescribed(s string) string {
	if s == "" {
		return "Undescribed"
	}
	return s
}

// Execute runs the call following the call procedure step by step.
func (c *Call) Execute(deps [][]merge.Row, q QueryContext) error {
	defer func() { c.executed = true }()

	varInValues := merge.MergeAndFilter(deps)

	constants, descBindings, err := c.buildConstants()
	if err != nil {
		return err
	}

	assignments := varInValues
	if len(assignments) == 0 && len(c.vars) == 0 {
		assignments = []merge.Row{{}}
	}

	wantOutputs := make(map[string]bool, len(c.out))
	for _, o := range c.out {
		wantOutputs[o.specifier] = true
	}

	for _, assignment := range assignments {
		inputDict := make(map[string]rdf.Node, len(c.known)+len(c.vars))
		for _, k := range c.known {
			inputDict[k.specifier] = k.triple.Object
		}
		ok := true
		for _, v := range c.vars {
			val, present := assignment[v.triple.Object.VarName()]
			if !present {
				ok = false
				break
			}
			inputDict[v.specifier] = val
		}
		if !ok {
			continue
		}

		if err := assertArgumentTypes(c.procedure, inputDict); err != nil {
			return err
		}

		result, err := c.procedure.Callable(inputDict, wantOutputs, q)
		if err != nil {
			q.LogProcedureFailure(c.pau.Value(), err)
			return err
		}

		rows, err := normalize(result, c.procedure)
		if err != nil {
			return err
		}

		for _, row := range rows {
			subgraph := append([]rdf.Triple{}, constants...)
			for _, v := range c.vars {
				subgraph = append(subgraph, rdf.Triple{Subject: c.pau, Predicate: v.triple.Predicate, Object: assignment[v.triple.Object.VarName()]})
			}

			binding := make(merge.Row, len(c.vars)+len(c.out)+len(descBindings))
			for _, v := range c.vars {
				binding[v.triple.Object.VarName()] = assignment[v.triple.Object.VarName()]
			}
			for k, v := range descBindings {
				binding[k] = v
			}

			for _, o := range c.out {
				val, present := row[o.specifier]
				if !present {
					continue
				}
				subgraph = append(subgraph, rdf.Triple{Subject: c.pau, Predicate: o.triple.Predicate, Object: val})
				if o.triple.Object.IsVariable() {
					binding[o.triple.Object.VarName()] = val
				}
			}

			q.Graph().AddNamedSubgraph(subgraph)
			c.bindings = append(c.bindings, binding)
		}

		if len(rows) == 0 && len(c.out) == 0 {
			// Description-only invocation: still surface the constants so
			// the description stays queryable.
			subgraph := append([]rdf.Triple{}, constants...)
			for _, v := range c.vars {
				subgraph = append(subgraph, rdf.Triple{Subject: c.pau, Predicate: v.triple.Predicate, Object: assignment[v.triple.Object.VarName()]})
			}
			q.Graph().AddNamedSubgraph(subgraph)
			binding := make(merge.Row, len(c.vars)+len(descBindings))
			for _, v := range c.vars {
				binding[v.triple.Object.VarName()] = assignment[v.triple.Object.VarName()]
			}
			for k, v := range descBindings {
				binding[k] = v
			}
			c.bindings = append(c.bindings, binding)
		}
	}

	return nil
}

// buildConstants builds the constants subgraph (known inputs verbatim, plus
// description triples carrying the procedure's actual attribute values) and
// the fixed bindings any description-with-variable-object triple
// contributes.
func (c *Call) buildConstants() ([]rdf.Triple, merge.Row, error) {
	var out []rdf.Triple
	for _, k := range c.known {
		out = append(out, k.triple)
	}
	descBindings := merge.Row{}
	for _, d := range c.desc {
		value := c.descriptionValue(d.triple.Predicate)
		lit, err := rdf.NewLiteral(value)
		if err != nil {
			return nil, nil, err
		}
		out = append(out, rdf.Triple{Subject: c.pau, Predicate: d.triple.Predicate, Object: lit})
		if d.triple.Object.IsVariable() {
			descBindings[d.triple.Object.VarName()] = lit
		}
	}
	return out, descBindings, nil
}

// assertArgumentTypes validates each bound input against its declared
// Argument descriptor. A mismatch is reported as scryerr.ErrBadSpecifier,
// the closest existing taxonomy entry, rather than introducing a new error
// kind.
func assertArgumentTypes(proc *registry.Procedure, inputDict map[string]rdf.Node) error {
	for specifier, node := range inputDict {
		arg, ok := proc.FindAccepts(specifier)
		if !ok {
			continue
		}
		if err := arg.AssertType(node, proc.URI); err != nil {
			return err
		}
	}
	return nil
}

// normalize turns a procedure's returned Result into a list of output rows.
func normalize(r registry.Result, proc *registry.Procedure) ([]registry.Row, error) {
	switch r.Kind() {
	case registry.ResultEmpty:
		return nil, nil
	case registry.ResultMany:
		return r.Rows(), nil
	case registry.ResultOne:
		return r.Rows(), nil
	case registry.ResultScalar:
		if proc.DefaultOutput == nil {
			return nil, scryerr.ErrInvalidReturn.New(proc.URI, "procedure returned a scalar node but has no default output")
		}
		return []registry.Row{{proc.DefaultOutput.ID: r.Node()}}, nil
	default:
		return nil, scryerr.ErrInvalidReturn.New(proc.URI, "unrecognized result kind")
	}
}
