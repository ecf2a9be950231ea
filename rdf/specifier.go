package rdf

import "strings"

// DefaultSpecifier is the canonical form both "" and "_" collapse to.
const DefaultSpecifier = ""

// SplitPredicate splits a predicate IRI of the shape <base>?<specifier> into
// its base and specifier parts. A bare IRI with no '?' yields an empty
// specifier. "_" is canonicalized to the empty string, per the rule
// that an empty or "_" specifier both mean "use the default".
func SplitPredicate(predicate string) (base, specifier string) {
	idx := strings.IndexByte(predicate, '?')
	if idx < 0 {
		return predicate, DefaultSpecifier
	}
	base = predicate[:idx]
	specifier = predicate[idx+1:]
	if specifier == "_" {
		specifier = DefaultSpecifier
	}
	return base, specifier
}

// SplitPAU splits a Procedure-Associated URI into its registration key (the
// base IRI, stripped of any "?<discriminator>" suffix) and the discriminator
// itself. Two PAUs that share a base but differ in discriminator represent
// two independent invocations of the same procedure within one query.
func SplitPAU(pau string) (base, discriminator string) {
	return SplitPredicate(pau)
}

// BaseIRI returns just the portion of an IRI string before any '?'
// specifier/discriminator suffix.
func BaseIRI(iri string) string {
	base, _ := SplitPredicate(iri)
	return base
}
