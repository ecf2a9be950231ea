package math

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/bas-stringer/scry/rdf"
	"github.com/bas-stringer/scry/registry"
)

// newScalarArrayProc builds a Procedure over a single flat array (array_in)
// that reduces it to one scalar (Maximum, Minimum, Mean, Median, StDev,
// Variance).
func newScalarArrayProc(name, description string, op func([]float64) float64) *registry.Procedure {
	p := &registry.Procedure{
		URI:         mathBase + name,
		Accepts:     []registry.Argument{argArrayIn},
		Requires:    []registry.Argument{argArrayIn},
		Generates:   []registry.Argument{argValOut},
		Author:      "Bas Stringer",
		Description: description,
		Provenance:  "Generated by the scry MATH service's " + name + " function",
		Version:     "1.0.0",
	}
	p.Callable = func(in map[string]rdf.Node, _ map[string]bool, _ registry.QueryHandle) (registry.Result, error) {
		rows, err := parseMatrix(in[argArrayIn.ID].Value())
		if err != nil {
			return registry.Empty(), err
		}
		arr := flatten(rows)
		if len(arr) == 0 {
			return registry.Empty(), nil
		}
		lit, err := rdf.NewLiteral(formatFloat(op(arr)))
		if err != nil {
			return registry.Empty(), err
		}
		return registry.Scalar(lit), nil
	}
	return p
}

func median(xs []float64) float64 {
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// newPearsonRProc computes the Pearson correlation coefficient between the
// first two rows of a multi_in 2D array.
func newPearsonRProc() *registry.Procedure {
	p := &registry.Procedure{
		URI:         mathBase + "pearsonr",
		Accepts:     []registry.Argument{argMultiIn},
		Requires:    []registry.Argument{argMultiIn},
		Generates:   []registry.Argument{argValOut},
		Author:      "Bas Stringer",
		Description: "Calculates the Pearson correlation coefficient between two arrays",
		Provenance:  "Generated by the scry MATH service's PearsonR function",
		Version:     "1.0.0",
	}
	p.Callable = func(in map[string]rdf.Node, _ map[string]bool, _ registry.QueryHandle) (registry.Result, error) {
		rows, err := parseMatrix(in[argMultiIn.ID].Value())
		if err != nil {
			return registry.Empty(), err
		}
		if len(rows) < 2 {
			return registry.Empty(), nil
		}
		r := stat.Correlation(rows[0], rows[1], nil)
		lit, err := rdf.NewLiteral(formatFloat(r))
		if err != nil {
			return registry.Empty(), err
		}
		return registry.Scalar(lit), nil
	}
	return p
}

// newCovarianceProc computes the N-by-N covariance matrix of N arrays given
// as rows of a multi_in 2D array.
func newCovarianceProc() *registry.Procedure {
	p := &registry.Procedure{
		URI:         mathBase + "covariance",
		Accepts:     []registry.Argument{argMultiIn},
		Requires:    []registry.Argument{argMultiIn},
		Generates:   []registry.Argument{argMultiOut},
		Author:      "Bas Stringer",
		Description: "Calculates the N-by-N covariance matrix of N arrays",
		Provenance:  "Generated by the scry MATH service's Covariance function",
		Version:     "1.0.0",
	}
	p.Callable = func(in map[string]rdf.Node, _ map[string]bool, _ registry.QueryHandle) (registry.Result, error) {
		rows, err := parseMatrix(in[argMultiIn.ID].Value())
		if err != nil {
			return registry.Empty(), err
		}
		n := len(rows)
		if n == 0 {
			return registry.Empty(), nil
		}
		out := make([][]float64, n)
		for i := range out {
			out[i] = make([]float64, n)
			for j := range out[i] {
				out[i][j] = stat.Covariance(rows[i], rows[j], nil)
			}
		}
		lit, err := rdf.NewLiteral(formatMatrix(out))
		if err != nil {
			return registry.Empty(), err
		}
		return registry.Scalar(lit), nil
	}
	return p
}

// newSumArraysProc returns the element-wise sum of N arrays of equal length
// M, given as rows of a multi_in 2D array.
func newSumArraysProc() *registry.Procedure {
	p := &registry.Procedure{
		URI:         mathBase + "sumarrays",
		Accepts:     []registry.Argument{argMultiIn},
		Requires:    []registry.Argument{argMultiIn},
		Generates:   []registry.Argument{argArrayOut},
		Author:      "Bas Stringer",
		Description: "Returns N element-wise sums (for M arrays of length N)",
		Provenance:  "Generated by the scry MATH service's SumArrays function",
		Version:     "1.0.0",
	}
	p.Callable = func(in map[string]rdf.Node, _ map[string]bool, _ registry.QueryHandle) (registry.Result, error) {
		rows, err := parseMatrix(in[argMultiIn.ID].Value())
		if err != nil {
			return registry.Empty(), err
		}
		if len(rows) == 0 || len(rows[0]) == 0 {
			return registry.Empty(), nil
		}
		sum := make([]float64, len(rows[0]))
		for _, row := range rows {
			floats.Add(sum, row)
		}
		lit, err := rdf.NewLiteral(formatRow(sum))
		if err != nil {
			return registry.Empty(), err
		}
		return registry.Scalar(lit), nil
	}
	return p
}
