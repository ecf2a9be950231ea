package registry

import (
	"fmt"

	"github.com/bas-stringer/scry/rdf"
)

const undescribed = "Undescribed"

// nodeOrUndescribed returns the argument's own URI if it has one, otherwise
// a literal placeholder — mirroring the fallback the original description
// builder used when an argument carried no identifying URI of its own.
func nodeOrUndescribed(a Argument) rdf.Node {
	if a.URI.IsIRI() {
		return a.URI
	}
	lit, err := rdf.NewLiteral(undescribed)
	if err != nil {
		panic(err)
	}
	return lit
}

func literalOrUndescribed(value string) rdf.Node {
	if value == "" {
		value = undescribed
	}
	lit, err := rdf.NewLiteral(value)
	if err != nil {
		panic(err)
	}
	return lit
}

// Describe renders one procedure's full self-description as a flat triple
// set, rooted at the sentinel orb subject.
func (p *Procedure) Describe() ([]rdf.Triple, error) {
	procURI, err := rdf.NewIRI(p.URI)
	if err != nil {
		return nil, fmt.Errorf("registry: procedure URI %q: %w", p.URI, err)
	}

	var out []rdf.Triple
	out = append(out, rdf.Triple{Subject: rdf.SentinelOrb, Predicate: rdf.PredProcedure, Object: procURI})

	if p.RDFType != "" {
		rdfType, err := rdf.NewIRI(p.RDFType)
		if err != nil {
			return nil, fmt.Errorf("registry: procedure %s rdf_type: %w", p.URI, err)
		}
		out = append(out, rdf.Triple{Subject: procURI, Predicate: rdf.RDFType, Object: rdfType})
	}

	out = append(out,
		rdf.Triple{Subject: procURI, Predicate: rdf.PredAuthor, Object: literalOrUndescribed(p.Author)},
		rdf.Triple{Subject: procURI, Predicate: rdf.PredDescription, Object: literalOrUndescribed(p.Description)},
		rdf.Triple{Subject: procURI, Predicate: rdf.PredProvenance, Object: literalOrUndescribed(p.Provenance)},
		rdf.Triple{Subject: procURI, Predicate: rdf.PredVersion, Object: literalOrUndescribed(p.Version)},
	)

	for _, a := range p.Requires {
		out = append(out, rdf.Triple{Subject: procURI, Predicate: rdf.PredRequiredInput, Object: nodeOrUndescribed(a)})
		out = append(out, p.describeArgument(a)...)
	}
	for _, a := range p.Accepts {
		out = append(out, rdf.Triple{Subject: procURI, Predicate: rdf.PredAcceptedInput, Object: nodeOrUndescribed(a)})
		out = append(out, p.describeArgument(a)...)
	}
	for _, a := range p.Generates {
		out = append(out, rdf.Triple{Subject: procURI, Predicate: rdf.PredGeneratesOutput, Object: nodeOrUndescribed(a)})
		out = append(out, p.describeArgument(a)...)
	}
	if p.DefaultInput != nil {
		out = append(out, rdf.Triple{Subject: procURI, Predicate: rdf.PredDefaultInput, Object: nodeOrUndescribed(*p.DefaultInput)})
	}
	if p.DefaultOutput != nil {
		out = append(out, rdf.Triple{Subject: procURI, Predicate: rdf.PredDefaultOutput, Object: nodeOrUndescribed(*p.DefaultOutput)})
	}

	return out, nil
}

func (p *Procedure) describeArgument(a Argument) []rdf.Triple {
	subj := nodeOrUndescribed(a)
	out := []rdf.Triple{
		{Subject: subj, Predicate: rdf.PredIdentifier, Object: literalOrUndescribed(a.ID)},
		{Subject: subj, Predicate: rdf.PredValuetype, Object: literalOrUndescribed(a.Valuetype.String())},
	}
	if a.Datatype != "" {
		out = append(out, rdf.Triple{Subject: subj, Predicate: rdf.PredDatatype, Object: literalOrUndescribed(a.Datatype)})
	}
	if a.Description != "" {
		out = append(out, rdf.Triple{Subject: subj, Predicate: rdf.PredArgument, Object: literalOrUndescribed(a.Description)})
	}
	return out
}

// DescribeAll renders the full orb description graph: the service
// description at the sentinel orb subject (when one is set), followed by the
// union of every registered procedure's Describe(), in deterministic URI order.
func (r *Registry) DescribeAll() ([]rdf.Triple, error) {
	var out []rdf.Triple
	if r.service != nil {
		out = append(out,
			rdf.Triple{Subject: rdf.SentinelOrb, Predicate: rdf.PredAuthor, Object: literalOrUndescribed(r.service.Author)},
			rdf.Triple{Subject: rdf.SentinelOrb, Predicate: rdf.PredDescription, Object: literalOrUndescribed(r.service.Description)},
			rdf.Triple{Subject: rdf.SentinelOrb, Predicate: rdf.PredProvenance, Object: literalOrUndescribed(r.service.Provenance)},
			rdf.Triple{Subject: rdf.SentinelOrb, Predicate: rdf.PredVersion, Object: literalOrUndescribed(r.service.Version)},
		)
	}
	for _, p := range r.All() {
		triples, err := p.Describe()
		if err != nil {
			return nil, err
		}
		out = append(out, triples...)
	}
	return out, nil
}
