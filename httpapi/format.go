package httpapi

import (
	"bytes"
	"encoding/csv"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/bas-stringer/scry/query"
	"github.com/bas-stringer/scry/rdf"
)

// mimeSparqlXML and mimeCSV are the two response formats this service
// supports, in the fixed priority table content negotiation consults.
const (
	mimeSparqlXML = "application/sparql-results+xml"
	mimeCSV       = "text/csv"
)

// supportedMimeTypes lists the response formats this service offers, in
// priority order: the first one present in a request's Accept header wins.
var supportedMimeTypes = []string{mimeSparqlXML, mimeCSV}

// negotiate picks the first entry of supportedMimeTypes that also appears
// in accept. accept holds one or more raw Accept header values
// (http.Header["Accept"]), each of which may itself carry a
// comma-separated list of media ranges with ";q=" parameters; those are
// split and stripped here. A "*/*" range matches the first entry of
// supportedMimeTypes. Returns false if none match.
func negotiate(accept []string) (string, bool) {
	present := make(map[string]bool)
	for _, header := range accept {
		for _, part := range strings.Split(header, ",") {
			mediaRange := part
			if idx := strings.IndexByte(mediaRange, ';'); idx >= 0 {
				mediaRange = mediaRange[:idx]
			}
			present[strings.TrimSpace(mediaRange)] = true
		}
	}
	for _, m := range supportedMimeTypes {
		if present[m] || present["*/*"] {
			return m, true
		}
	}
	return "", false
}

// render serializes result as mimeType. Only the two formats in
// supportedMimeTypes are ever requested, so an unrecognized mimeType is a
// programmer error, not a request-time one.
func render(mimeType string, result *query.Result) ([]byte, error) {
	switch mimeType {
	case mimeSparqlXML:
		return renderSparqlXML(result)
	case mimeCSV:
		return renderCSV(result)
	default:
		return nil, fmt.Errorf("httpapi: unsupported render mime type %q", mimeType)
	}
}

// --- application/sparql-results+xml, per the SPARQL 1.1 Query Results XML
// Format: <sparql><head><variable name=.../></head><results><result>
// <binding name=...><uri>/<literal>/<bnode></binding></result></results>
// </sparql>.

type xmlSparqlResults struct {
	XMLName xml.Name   `xml:"sparql"`
	Xmlns   string     `xml:"xmlns,attr"`
	Head    xmlHead    `xml:"head"`
	Results xmlResults `xml:"results"`
}

type xmlHead struct {
	Variables []xmlVariable `xml:"variable"`
}

type xmlVariable struct {
	Name string `xml:"name,attr"`
}

type xmlResults struct {
	Result []xmlResult `xml:"result"`
}

type xmlResult struct {
	Binding []xmlBinding `xml:"binding"`
}

type xmlBinding struct {
	Name    string      `xml:"name,attr"`
	URI     string      `xml:"uri,omitempty"`
	Literal *xmlLiteral `xml:"literal,omitempty"`
	BNode   string      `xml:"bnode,omitempty"`
}

type xmlLiteral struct {
	Datatype string `xml:"datatype,attr,omitempty"`
	Lang     string `xml:"xml:lang,attr,omitempty"`
	Value    string `xml:",chardata"`
}

func renderSparqlXML(result *query.Result) ([]byte, error) {
	doc := xmlSparqlResults{Xmlns: "http://www.w3.org/2005/sparql-results#"}
	for _, v := range result.Vars {
		doc.Head.Variables = append(doc.Head.Variables, xmlVariable{Name: v})
	}
	for _, row := range result.Rows {
		var xr xmlResult
		for _, v := range result.Vars {
			node, ok := row[v]
			if !ok {
				continue
			}
			xr.Binding = append(xr.Binding, bindingOf(v, node))
		}
		doc.Results.Result = append(doc.Results.Result, xr)
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("httpapi: encoding sparql-results+xml: %w", err)
	}
	return buf.Bytes(), nil
}

func bindingOf(name string, node rdf.Node) xmlBinding {
	b := xmlBinding{Name: name}
	switch node.Kind() {
	case rdf.KindIRI:
		b.URI = node.Value()
	case rdf.KindBlank:
		b.BNode = node.Value()
	case rdf.KindLiteral:
		b.Literal = &xmlLiteral{Value: node.Value(), Datatype: node.Datatype(), Lang: node.Lang()}
	default:
		b.Literal = &xmlLiteral{Value: node.Lexical()}
	}
	return b
}

// --- text/csv, per the SPARQL 1.1 Query Results CSV format: a header row
// of variable names, then one row per solution, cells left blank for
// unbound variables.

func renderCSV(result *query.Result) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(result.Vars); err != nil {
		return nil, err
	}
	for _, row := range result.Rows {
		record := make([]string, len(result.Vars))
		for i, v := range result.Vars {
			if node, ok := row[v]; ok {
				record[i] = node.Lexical()
			}
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
