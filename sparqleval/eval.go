// Package sparqleval is the delegated SPARQL evaluator the core hands a
// basic graph pattern and a flat triple set to: a backtracking join over
// triple patterns, with SELECT [DISTINCT] projection.
package sparqleval

import (
	"sort"

	"github.com/bas-stringer/scry/rdf"
)

// Row is one solution: a mapping from variable name to bound node.
type Row map[string]rdf.Node

// Select evaluates pattern (a basic graph pattern, possibly with variables
// in any position) against data, projecting the result onto vars. If vars is
// nil, every variable bound by pattern is projected. Rows are deduplicated
// when distinct is true.
func Select(pattern []rdf.Triple, vars []string, distinct bool, data []rdf.Triple) ([]Row, error) {
	solutions := []Row{{}}
	for _, tp := range pattern {
		var next []Row
		for _, partial := range solutions {
			next = append(next, extend(tp, partial, data)...)
		}
		solutions = next
		if len(solutions) == 0 {
			break
		}
	}

	projected := make([]Row, 0, len(solutions))
	for _, row := range solutions {
		projected = append(projected, project(row, vars))
	}
	if distinct {
		projected = dedup(projected)
	}
	return projected, nil
}

// extend tries to match triple pattern tp against every triple in data,
// consistent with the bindings already present in partial, returning one
// extended row per consistent match.
func extend(tp rdf.Triple, partial Row, data []rdf.Triple) []Row {
	var out []Row
	for _, fact := range data {
		row := cloneRow(partial)
		if bindTerm(tp.Subject, fact.Subject, row) &&
			bindTerm(tp.Predicate, fact.Predicate, row) &&
			bindTerm(tp.Object, fact.Object, row) {
			out = append(out, row)
		}
	}
	return out
}

// bindTerm attempts to unify pattern term p against a concrete fact term f,
// mutating row. Returns false on conflict.
func bindTerm(p, f rdf.Node, row Row) bool {
	if p.IsVariable() {
		name := p.VarName()
		if existing, ok := row[name]; ok {
			return existing.Equal(f)
		}
		row[name] = f
		return true
	}
	return p.Equal(f)
}

func cloneRow(r Row) Row {
	out := make(Row, len(r)+1)
	for k, v := range r {
		out[k] = v
	}
	return out
}

func project(row Row, vars []string) Row {
	if vars == nil {
		return row
	}
	out := make(Row, len(vars))
	for _, v := range vars {
		if node, ok := row[v]; ok {
			out[v] = node
		}
	}
	return out
}

func dedup(rows []Row) []Row {
	seen := make(map[string]bool, len(rows))
	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		key := rowKey(r)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, r)
	}
	return out
}

// ProjectRows projects and optionally deduplicates an already-computed list
// of rows, the same way Select's tail does. Used by callers that assemble
// their solution rows from multiple sources (joined handler bindings plus a
// graph-pattern match) rather than from a single Select call.
func ProjectRows(rows []Row, vars []string, distinct bool) []Row {
	projected := make([]Row, 0, len(rows))
	for _, row := range rows {
		projected = append(projected, project(row, vars))
	}
	if distinct {
		projected = dedup(projected)
	}
	return projected
}

func rowKey(r Row) string {
	// Deterministic key: sort by variable name, join with separators that
	// cannot appear in a variable name.
	names := make([]string, 0, len(r))
	for k := range r {
		names = append(names, k)
	}
	sort.Strings(names)
	key := ""
	for _, n := range names {
		key += n + "=" + r[n].Lexical() + "\x00"
	}
	return key
}
