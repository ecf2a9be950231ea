package query

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bas-stringer/scry/procedures/math"
	"github.com/bas-stringer/scry/rdf"
	"github.com/bas-stringer/scry/registry"
	"github.com/bas-stringer/scry/scryerr"
	"github.com/bas-stringer/scry/sparqleval"
)

func mathRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	reg := registry.NewRegistry()
	require.NoError(t, math.Register(reg))
	return reg
}

func rowValues(rows []sparqleval.Row, v string) []string {
	var out []string
	for _, r := range rows {
		if n, ok := r[v]; ok {
			out = append(out, n.Value())
		}
	}
	return out
}

func TestResolveConstantInputProcedure(t *testing.T) {
	q := New(mathRegistry(t))

	result, err := q.Resolve(`SELECT ?v WHERE {
		<http://www.scry.com/math/absolute> <http://www.scry.com/input?val_in> "-3.5" .
		<http://www.scry.com/math/absolute> <http://www.scry.com/output?val_out> ?v .
	}`)
	require.NoError(t, err)

	require.Equal(t, []string{"v"}, result.Vars)
	require.Len(t, result.Rows, 1)
	assert.Equal(t, "3.5", result.Rows[0]["v"].Value())
}

func TestResolveValuesDrivenInvocation(t *testing.T) {
	q := New(mathRegistry(t))

	result, err := q.Resolve(`SELECT ?x ?r WHERE {
		VALUES ?x { "1" "4" "9" }
		<http://www.scry.com/math/sqrt> <http://www.scry.com/input?val_in> ?x .
		<http://www.scry.com/math/sqrt> <http://www.scry.com/output?val_out> ?r .
	}`)
	require.NoError(t, err)

	require.Len(t, result.Rows, 3)
	got := make(map[string]string, 3)
	for _, row := range result.Rows {
		got[row["x"].Value()] = row["r"].Value()
	}
	assert.Equal(t, map[string]string{"1": "1", "4": "2", "9": "3"}, got)
}

func TestResolveChainedProcedures(t *testing.T) {
	// Two invocations of the same procedure, kept apart by PAU
	// discriminator; the second consumes the first's output, so the
	// scheduler has to run them in dependency order.
	q := New(mathRegistry(t))

	result, err := q.Resolve(`SELECT ?z WHERE {
		<http://www.scry.com/math/sqrt?first>  <http://www.scry.com/input?val_in>   "16" .
		<http://www.scry.com/math/sqrt?first>  <http://www.scry.com/output?val_out> ?y .
		<http://www.scry.com/math/sqrt?second> <http://www.scry.com/input?val_in>   ?y .
		<http://www.scry.com/math/sqrt?second> <http://www.scry.com/output?val_out> ?z .
	}`)
	require.NoError(t, err)

	require.Len(t, result.Rows, 1)
	assert.Equal(t, "2", result.Rows[0]["z"].Value())
}

func TestResolveVariableSubjectDispatch(t *testing.T) {
	q := New(mathRegistry(t))

	result, err := q.Resolve(`SELECT ?proc ?r WHERE {
		VALUES ?proc { <http://www.scry.com/math/sqrt> <http://www.scry.com/math/absolute> }
		?proc <http://www.scry.com/input?val_in> "-4" .
		?proc <http://www.scry.com/output?val_out> ?r .
	}`)
	require.NoError(t, err)

	require.Len(t, result.Rows, 2)
	got := make(map[string]string, 2)
	for _, row := range result.Rows {
		got[row["proc"].Value()] = row["r"].Value()
	}
	assert.Equal(t, "4", got["http://www.scry.com/math/absolute"])
	assert.Equal(t, "NaN", got["http://www.scry.com/math/sqrt"])
}

func TestResolveOrbDescription(t *testing.T) {
	reg := mathRegistry(t)
	q := New(reg)

	result, err := q.Resolve(`SELECT ?p ?a WHERE {
		GRAPH <http://www.scry.com/orb_description> {
			?p <http://www.scry.com/author> ?a .
		}
	}`)
	require.NoError(t, err)

	require.Len(t, result.Rows, reg.Len())
	for _, a := range rowValues(result.Rows, "a") {
		assert.Equal(t, "Bas Stringer", a)
	}
}

func TestResolveSentinelOrbSubjectTriple(t *testing.T) {
	reg := mathRegistry(t)
	reg.SetServiceDescription(registry.ServiceDescription{
		Author:  "SCRY maintainers",
		Version: "1.0.0",
	})
	q := New(reg)

	result, err := q.Resolve(`SELECT ?a WHERE {
		<http://www.scry.com/orb> <http://www.scry.com/author> ?a .
	}`)
	require.NoError(t, err)

	require.Len(t, result.Rows, 1)
	assert.Equal(t, "SCRY maintainers", result.Rows[0]["a"].Value())
}

func TestResolveSentinelOrbListsProcedures(t *testing.T) {
	reg := mathRegistry(t)
	q := New(reg)

	result, err := q.Resolve(`SELECT ?p WHERE {
		<http://www.scry.com/orb> <http://www.scry.com/procedure> ?p .
	}`)
	require.NoError(t, err)

	assert.Len(t, result.Rows, reg.Len())
}

func TestResolveBindFeedsProcedure(t *testing.T) {
	q := New(mathRegistry(t))

	result, err := q.Resolve(`SELECT ?r WHERE {
		BIND("9" AS ?x)
		<http://www.scry.com/math/sqrt> <http://www.scry.com/input?val_in> ?x .
		<http://www.scry.com/math/sqrt> <http://www.scry.com/output?val_out> ?r .
	}`)
	require.NoError(t, err)

	require.Len(t, result.Rows, 1)
	assert.Equal(t, "3", result.Rows[0]["r"].Value())
}

func TestResolveDetectsDependencyCycle(t *testing.T) {
	q := New(mathRegistry(t))

	_, err := q.Resolve(`SELECT ?a ?b WHERE {
		<http://www.scry.com/math/absolute?one> <http://www.scry.com/input?val_in>   ?a .
		<http://www.scry.com/math/absolute?one> <http://www.scry.com/output?val_out> ?b .
		<http://www.scry.com/math/absolute?two> <http://www.scry.com/input?val_in>   ?b .
		<http://www.scry.com/math/absolute?two> <http://www.scry.com/output?val_out> ?a .
	}`)
	require.Error(t, err)
	assert.True(t, scryerr.ErrDependencyCycle.Is(err), "expected dependency-cycle, got %v", err)
}

func TestResolveRejectsUnknownProcedure(t *testing.T) {
	q := New(mathRegistry(t))

	_, err := q.Resolve(`SELECT ?v WHERE {
		<http://www.scry.com/nope> <http://www.scry.com/input?val_in> "1" .
		<http://www.scry.com/nope> <http://www.scry.com/output?val_out> ?v .
	}`)
	require.Error(t, err)
	assert.True(t, scryerr.ErrUnknownProcedure.Is(err), "expected unknown-procedure, got %v", err)
}

func TestResolveRejectsUnresolvedVariable(t *testing.T) {
	q := New(mathRegistry(t))

	_, err := q.Resolve(`SELECT ?r WHERE {
		<http://www.scry.com/math/sqrt> <http://www.scry.com/input?val_in> ?x .
		<http://www.scry.com/math/sqrt> <http://www.scry.com/output?val_out> ?r .
	}`)
	require.Error(t, err)
	assert.True(t, scryerr.ErrUnresolvedVariable.Is(err), "expected unresolved-variable, got %v", err)
}

func TestResolveRejectsParseError(t *testing.T) {
	q := New(mathRegistry(t))

	_, err := q.Resolve(`SELECT WHERE`)
	require.Error(t, err)
	assert.True(t, scryerr.ErrParse.Is(err), "expected parse error, got %v", err)
}

func TestResolveCleansUpTempDirs(t *testing.T) {
	reg := registry.NewRegistry()

	valIn, err := registry.NewArgument("val_in", rdf.Node{}, registry.ValueTypeScalar, "", "")
	require.NoError(t, err)
	valOut, err := registry.NewArgument("val_out", rdf.Node{}, registry.ValueTypeScalar, "", "")
	require.NoError(t, err)

	var handed string
	proc := &registry.Procedure{
		URI:       "http://www.scry.com/test/tempdir",
		Accepts:   []registry.Argument{valIn},
		Requires:  []registry.Argument{valIn},
		Generates: []registry.Argument{valOut},
		Callable: func(_ map[string]rdf.Node, _ map[string]bool, qh registry.QueryHandle) (registry.Result, error) {
			dir, err := qh.GetTempDir()
			if err != nil {
				return registry.Empty(), err
			}
			handed = dir
			lit, err := rdf.NewLiteral("ok")
			if err != nil {
				return registry.Empty(), err
			}
			return registry.Scalar(lit), nil
		},
	}
	require.NoError(t, reg.Add(proc))

	q := New(reg)
	result, err := q.Resolve(`SELECT ?v WHERE {
		<http://www.scry.com/test/tempdir> <http://www.scry.com/input?val_in> "x" .
		<http://www.scry.com/test/tempdir> <http://www.scry.com/output?val_out> ?v .
	}`)
	require.NoError(t, err)
	require.Len(t, result.Rows, 1)
	assert.Equal(t, "ok", result.Rows[0]["v"].Value())

	require.NotEmpty(t, handed)
	_, statErr := os.Stat(handed)
	assert.True(t, os.IsNotExist(statErr), "temp dir %s should be removed after Resolve", handed)
}

func TestResolveServiceEnvSharedAcrossInvocations(t *testing.T) {
	reg := registry.NewRegistry()

	valIn, err := registry.NewArgument("val_in", rdf.Node{}, registry.ValueTypeScalar, "", "")
	require.NoError(t, err)
	valOut, err := registry.NewArgument("val_out", rdf.Node{}, registry.ValueTypeScalar, "", "")
	require.NoError(t, err)

	proc := &registry.Procedure{
		URI:       "http://www.scry.com/test/counter",
		Accepts:   []registry.Argument{valIn},
		Requires:  []registry.Argument{valIn},
		Generates: []registry.Argument{valOut},
		Callable: func(_ map[string]rdf.Node, _ map[string]bool, qh registry.QueryHandle) (registry.Result, error) {
			env := qh.ServiceEnv()
			n, _ := env["calls"].(int)
			env["calls"] = n + 1
			lit, err := rdf.NewLiteral("ok")
			if err != nil {
				return registry.Empty(), err
			}
			return registry.Scalar(lit), nil
		},
	}
	require.NoError(t, reg.Add(proc))

	q := New(reg)
	_, err = q.Resolve(`SELECT ?v WHERE {
		VALUES ?x { "1" "2" "3" }
		<http://www.scry.com/test/counter> <http://www.scry.com/input?val_in> ?x .
		<http://www.scry.com/test/counter> <http://www.scry.com/output?val_out> ?v .
	}`)
	require.NoError(t, err)
	assert.Equal(t, 3, q.ServiceEnv()["calls"])
}
