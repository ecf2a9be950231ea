// Package math registers the MATH family of procedures: element-wise
// scalar functions and array/matrix statistics, exposed under the
// http://www.scry.com/math/ namespace.
package math

import (
	"github.com/bas-stringer/scry/rdf"
	"github.com/bas-stringer/scry/registry"
)

const mathBase = "http://www.scry.com/math/"

var (
	argValIn    = mustArg("val_in", "single-value", registry.ValueTypeScalar,
		"A single floating point value (can also be a comma-separated array of values)")
	argValOut   = mustArg("val_out", "single-value", registry.ValueTypeScalar,
		"A single floating point value (can also be a comma-separated array of values)")
	argArrayIn  = mustArg("array_in", "csv-array", registry.ValueTypeArray,
		"An array of comma-separated values")
	argArrayOut = mustArg("array_out", "csv-array", registry.ValueTypeArray,
		"An array of comma-separated values")
	argMultiIn  = mustArg("multi_in", "2D-array", registry.ValueTypeArray,
		"A rectangular 2D array: rows separated by ';', values within a row separated by ','")
	argMultiOut = mustArg("multi_out", "2D-array", registry.ValueTypeArray,
		"A rectangular 2D array: rows separated by ';', values within a row separated by ','")
	argParam    = mustArg("param", "parameter", registry.ValueTypeScalar,
		"A parameter value used by certain multi-input functions")
)

// mustArg builds one of the MATH family's shared Argument descriptors.
// The argument's own URI is mathBase+id; typeName names its datatype
// (mathBase+typeName), after the shape of value it carries.
func mustArg(id, typeName string, vt registry.ValueType, description string) registry.Argument {
	node := rdf.MustIRI(mathBase + id)
	a, err := registry.NewArgument(id, node, vt, mathBase+typeName, description)
	if err != nil {
		panic(err)
	}
	return a
}
