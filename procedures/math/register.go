package math

import (
	stdmath "math"

	"github.com/bas-stringer/scry/registry"
)

func truncate(x, places float64) float64 {
	factor := stdmath.Pow(10, places)
	return stdmath.Round(x*factor) / factor
}

// Register wires every MATH procedure into reg. Called once at startup from
// the compiled-in procedure list.
func Register(reg *registry.Registry) error {
	unary := map[string]unaryOp{
		"absolute":   stdmath.Abs,
		"arccosine":  stdmath.Acos,
		"arcsine":    stdmath.Asin,
		"arctangent": stdmath.Atan,
		"ceiling":    stdmath.Ceil,
		"cosine":     stdmath.Cos,
		"exponent":   stdmath.Exp,
		"floor":      stdmath.Floor,
		"log":        stdmath.Log,
		"log10":      stdmath.Log10,
		"round":      stdmath.Round,
		"sine":       stdmath.Sin,
		"sqrt":       stdmath.Sqrt,
		"tangent":    stdmath.Tan,
	}
	for name, op := range unary {
		if err := reg.Add(newValueProc(name, op)); err != nil {
			return err
		}
	}

	withParam := map[string]paramOp{
		"modulo":   stdmath.Mod,
		"power":    stdmath.Pow,
		"truncate": truncate,
	}
	for name, op := range withParam {
		if err := reg.Add(newParamValueProc(name, op)); err != nil {
			return err
		}
	}

	scalarArray := []struct {
		name        string
		description string
		op          func([]float64) float64
	}{
		{"maximum", "Returns the Maximum value of an array", max},
		{"minimum", "Returns the Minimum value of an array", min},
		{"mean", "Returns the Mean value of an array", mean},
		{"median", "Returns the Median value of an array", median},
		{"stdev", "Calculates the Standard Deviation of an array", stddev},
		{"variance", "Calculates the Variance of an array", variance},
	}
	for _, s := range scalarArray {
		if err := reg.Add(newScalarArrayProc(s.name, s.description, s.op)); err != nil {
			return err
		}
	}

	if err := reg.Add(newPearsonRProc()); err != nil {
		return err
	}
	if err := reg.Add(newCovarianceProc()); err != nil {
		return err
	}
	if err := reg.Add(newSumArraysProc()); err != nil {
		return err
	}
	return nil
}
