package rdf

// ServiceBase is the reserved IRI namespace under which all protocol
// predicates and sentinels live.
const ServiceBase = "http://www.scry.com/"

// Reserved predicate and sentinel IRIs, all under ServiceBase.
var (
	PredInput       = MustIRI(ServiceBase + "input")
	PredOutput      = MustIRI(ServiceBase + "output")
	PredAuthor      = MustIRI(ServiceBase + "author")
	PredDescription = MustIRI(ServiceBase + "description")
	PredProvenance  = MustIRI(ServiceBase + "provenance")
	PredVersion     = MustIRI(ServiceBase + "version")

	// Orb-description-only predicates: full procedure and argument metadata,
	// beyond the four standard attributes above.
	PredRequiredInput   = MustIRI(ServiceBase + "required_input")
	PredAcceptedInput   = MustIRI(ServiceBase + "accepted_input")
	PredGeneratesOutput = MustIRI(ServiceBase + "generates_output")
	PredDefaultInput    = MustIRI(ServiceBase + "default_input")
	PredDefaultOutput   = MustIRI(ServiceBase + "default_output")
	PredIdentifier      = MustIRI(ServiceBase + "identifier")
	PredValuetype       = MustIRI(ServiceBase + "valuetype")
	PredDatatype        = MustIRI(ServiceBase + "datatype")
	PredProcedure       = MustIRI(ServiceBase + "procedure")
	PredArgument        = MustIRI(ServiceBase + "argument")

	SentinelOrb            = MustIRI(ServiceBase + "orb")
	SentinelOrbDescription = MustIRI(ServiceBase + "orb_description")

	RDFType = MustIRI("http://www.w3.org/1999/02/22-rdf-syntax-ns#type")
)

// DescriptionPredicates lists the four standard describable attributes.
var DescriptionPredicates = []Node{PredAuthor, PredDescription, PredProvenance, PredVersion}
