// Package merge implements the one place real relational join semantics
// live in this service: merging several producers' binding-row lists into
// the consistent joint assignments a consumer handler needs.
package merge

import (
	"sort"

	"github.com/bas-stringer/scry/rdf"
)

// Row is a binding row: variable name to bound RDF node.
type Row map[string]rdf.Node

// MergeAndFilter merges lists — one binding-row list per dependency of a
// handler — into the list of consistent joint rows over the union of all
// their variables. If any input list is empty, the result is empty: a
// consumer depending on a producer that bound nothing yields no rows.
func MergeAndFilter(lists [][]Row) []Row {
	for _, l := range lists {
		if len(l) == 0 {
			return []Row{}
		}
	}
	if len(lists) == 0 {
		return []Row{}
	}

	active := make([][]Row, len(lists))
	copy(active, lists)

	for len(active) > 1 {
		bi, bj, bestShared := 0, 1, -1
		for i := 0; i < len(active); i++ {
			for j := i + 1; j < len(active); j++ {
				shared := len(sharedKeys(active[i], active[j]))
				if shared > bestShared {
					bestShared, bi, bj = shared, i, j
				}
			}
		}
		joined := dedup(hashJoin(active[bi], active[bj]))

		next := make([][]Row, 0, len(active)-1)
		for k, l := range active {
			if k == bi || k == bj {
				continue
			}
			next = append(next, l)
		}
		next = append(next, joined)
		active = next
	}
	return dedup(active[0])
}

func keySet(rows []Row) map[string]bool {
	keys := make(map[string]bool)
	for _, r := range rows {
		for k := range r {
			keys[k] = true
		}
	}
	return keys
}

func sharedKeys(a, b []Row) map[string]bool {
	ak, bk := keySet(a), keySet(b)
	shared := make(map[string]bool)
	for k := range ak {
		if bk[k] {
			shared[k] = true
		}
	}
	return shared
}

// hashJoin pairs every row of a with every row of b, keeping only pairs
// whose shared keys agree.
func hashJoin(a, b []Row) []Row {
	var out []Row
	for _, ra := range a {
		for _, rb := range b {
			merged, ok := unionConsistent(ra, rb)
			if ok {
				out = append(out, merged)
			}
		}
	}
	return out
}

func unionConsistent(a, b Row) (Row, bool) {
	merged := make(Row, len(a)+len(b))
	for k, v := range a {
		merged[k] = v
	}
	for k, v := range b {
		if existing, ok := merged[k]; ok {
			if !existing.Equal(v) {
				return nil, false
			}
			continue
		}
		merged[k] = v
	}
	return merged, true
}

// dedup removes rows that are set-equal to an earlier row, preserving the
// first occurrence's order.
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

func rowKey(r Row) string {
	names := make([]string, 0, len(r))
	for k := range r {
		names = append(names, k)
	}
	sort.Strings(names)
	key := ""
	for _, n := range names {
		v := r[n]
		key += n + "=" + v.Kind().String() + "\x01" + v.Lexical() + "\x01" + v.Lang() + "\x01" + v.Datatype() + "\x00"
	}
	return key
}
