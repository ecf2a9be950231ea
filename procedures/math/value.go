package math

import (
	"github.com/bas-stringer/scry/rdf"
	"github.com/bas-stringer/scry/registry"
)

// unaryOp is a single-value function applied element-wise to an input array.
type unaryOp func(x float64) float64

// paramOp is a single-value function that additionally takes one parameter,
// supplied via the "param" argument (Modulo, Power, Truncate).
type paramOp func(x, param float64) float64

// newValueProc builds a Procedure that applies op element-wise to a
// comma-separated array of floats bound to val_in, returning a single
// literal if the array has one element or a comma-joined literal otherwise.
func newValueProc(name string, op unaryOp) *registry.Procedure {
	p := &registry.Procedure{
		URI:         mathBase + name,
		Accepts:     []registry.Argument{argValIn},
		Requires:    []registry.Argument{argValIn},
		Generates:   []registry.Argument{argValOut},
		Author:      "Bas Stringer",
		Description: "Invokes the " + name + " function on a value, or a comma-separated array of values",
		Provenance:  "Generated by the scry MATH service's " + name + " function",
		Version:     "1.0.0",
	}
	p.Callable = func(in map[string]rdf.Node, _ map[string]bool, _ registry.QueryHandle) (registry.Result, error) {
		arr, err := parseRow(in[argValIn.ID].Value())
		if err != nil {
			return registry.Empty(), err
		}
		if len(arr) == 0 {
			return registry.Empty(), nil
		}
		ans := make([]float64, len(arr))
		for i, x := range arr {
			ans[i] = op(x)
		}
		return scalarOrArrayResult(ans)
	}
	return p
}

// newParamValueProc is like newValueProc but the operation also takes the
// "param" argument (Modulo, Power, Truncate).
func newParamValueProc(name string, op paramOp) *registry.Procedure {
	p := &registry.Procedure{
		URI:         mathBase + name,
		Accepts:     []registry.Argument{argValIn, argParam},
		Requires:    []registry.Argument{argValIn, argParam},
		Generates:   []registry.Argument{argValOut},
		Author:      "Bas Stringer",
		Description: "Invokes the " + name + " function on a value, or a comma-separated array of values",
		Provenance:  "Generated by the scry MATH service's " + name + " function",
		Version:     "1.0.0",
	}
	p.Callable = func(in map[string]rdf.Node, _ map[string]bool, _ registry.QueryHandle) (registry.Result, error) {
		arr, err := parseRow(in[argValIn.ID].Value())
		if err != nil {
			return registry.Empty(), err
		}
		if len(arr) == 0 {
			return registry.Empty(), nil
		}
		param, err := parseRow(in[argParam.ID].Value())
		if err != nil || len(param) == 0 {
			return registry.Empty(), err
		}
		ans := make([]float64, len(arr))
		for i, x := range arr {
			ans[i] = op(x, param[0])
		}
		return scalarOrArrayResult(ans)
	}
	return p
}

func scalarOrArrayResult(ans []float64) (registry.Result, error) {
	var lit rdf.Node
	var err error
	if len(ans) == 1 {
		lit, err = rdf.NewLiteral(formatFloat(ans[0]))
	} else {
		lit, err = rdf.NewLiteral(formatRow(ans))
	}
	if err != nil {
		return registry.Empty(), err
	}
	return registry.Scalar(lit), nil
}
