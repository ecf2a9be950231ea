package algebra

import (
	"strconv"

	"github.com/bas-stringer/scry/rdf"
	"github.com/bas-stringer/scry/scryerr"
)

type parser struct {
	lex  *lexer
	peek *token
}

// Parse turns a SPARQL query string into an algebra tree.
func Parse(query string) (*Query, error) {
	p := &parser{lex: newLexer(query)}
	q, err := p.parseQuery()
	if err != nil {
		return nil, err
	}
	tok, err := p.next()
	if err != nil {
		return nil, err
	}
	if tok.kind != tokEOF {
		return nil, scryerr.ErrParse.New("unexpected trailing input near " + tok.text)
	}
	return q, nil
}

func (p *parser) next() (token, error) {
	if p.peek != nil {
		tok := *p.peek
		p.peek = nil
		return tok, nil
	}
	return p.lex.next()
}

func (p *parser) peekTok() (token, error) {
	if p.peek == nil {
		tok, err := p.lex.next()
		if err != nil {
			return token{}, err
		}
		p.peek = &tok
	}
	return *p.peek, nil
}

func (p *parser) expectPunct(text string) error {
	tok, err := p.next()
	if err != nil {
		return err
	}
	if tok.kind != tokPunct || tok.text != text {
		return scryerr.ErrParse.New("expected '" + text + "', found " + tok.text)
	}
	return nil
}

func (p *parser) expectKeyword(kw string) error {
	tok, err := p.next()
	if err != nil {
		return err
	}
	if tok.kind != tokKeyword || tok.text != kw {
		return scryerr.ErrParse.New("expected " + kw + ", found " + tok.text)
	}
	return nil
}

func (p *parser) parseQuery() (*Query, error) {
	if err := p.expectKeyword("SELECT"); err != nil {
		return nil, err
	}

	q := &Query{}

	tok, err := p.peekTok()
	if err != nil {
		return nil, err
	}
	if tok.kind == tokKeyword && tok.text == "DISTINCT" {
		q.Distinct = true
		if _, err := p.next(); err != nil {
			return nil, err
		}
	}

	tok, err = p.peekTok()
	if err != nil {
		return nil, err
	}
	if tok.kind == tokPunct && tok.text == "*" {
		q.SelectAll = true
		if _, err := p.next(); err != nil {
			return nil, err
		}
	} else {
		for {
			tok, err := p.peekTok()
			if err != nil {
				return nil, err
			}
			if tok.kind != tokVar {
				break
			}
			p.next()
			q.Vars = append(q.Vars, tok.text)
		}
		if len(q.Vars) == 0 {
			return nil, scryerr.ErrParse.New("expected at least one projected variable or '*' after SELECT")
		}
	}

	if err := p.expectKeyword("WHERE"); err != nil {
		return nil, err
	}

	pattern, err := p.parseGroupGraphPattern()
	if err != nil {
		return nil, err
	}
	q.Pattern = pattern
	return q, nil
}

func (p *parser) parseGroupGraphPattern() (*GroupGraphPattern, error) {
	if err := p.expectPunct("{"); err != nil {
		return nil, err
	}
	ggp := &GroupGraphPattern{}

	for {
		tok, err := p.peekTok()
		if err != nil {
			return nil, err
		}
		if tok.kind == tokPunct && tok.text == "}" {
			p.next()
			return ggp, nil
		}
		if tok.kind == tokPunct && tok.text == "." {
			p.next()
			continue
		}

		switch {
		case tok.kind == tokKeyword && tok.text == "VALUES":
			p.next()
			v, err := p.parseValues()
			if err != nil {
				return nil, err
			}
			ggp.Values = append(ggp.Values, v)

		case tok.kind == tokKeyword && tok.text == "BIND":
			p.next()
			b, err := p.parseBind()
			if err != nil {
				return nil, err
			}
			ggp.Binds = append(ggp.Binds, b)

		case tok.kind == tokKeyword && tok.text == "GRAPH":
			p.next()
			g, err := p.parseGraph()
			if err != nil {
				return nil, err
			}
			ggp.Graphs = append(ggp.Graphs, g)

		case tok.kind == tokKeyword && tok.text == "FILTER":
			p.next()
			// Filter expressions are not part of this service's own algebra
			//; skip one parenthesized expression.
			if err := p.skipParenGroup(); err != nil {
				return nil, err
			}

		case tok.kind == tokPunct && tok.text == "{":
			// Nested plain group: flatten into the parent, matching the
			// walker's "no special clause" fall-through.
			nested, err := p.parseGroupGraphPattern()
			if err != nil {
				return nil, err
			}
			ggp.Triples = append(ggp.Triples, nested.Triples...)
			ggp.Values = append(ggp.Values, nested.Values...)
			ggp.Binds = append(ggp.Binds, nested.Binds...)
			ggp.Graphs = append(ggp.Graphs, nested.Graphs...)

		default:
			triple, err := p.parseTriple()
			if err != nil {
				return nil, err
			}
			ggp.Triples = append(ggp.Triples, triple)
		}
	}
}

func (p *parser) skipParenGroup() error {
	if err := p.expectPunct("("); err != nil {
		return err
	}
	depth := 1
	for depth > 0 {
		tok, err := p.next()
		if err != nil {
			return err
		}
		if tok.kind == tokEOF {
			return scryerr.ErrParse.New("unterminated FILTER expression")
		}
		if tok.kind == tokPunct && tok.text == "(" {
			depth++
		}
		if tok.kind == tokPunct && tok.text == ")" {
			depth--
		}
	}
	return nil
}

func (p *parser) parseTriple() (rdf.Triple, error) {
	subj, err := p.parseNode()
	if err != nil {
		return rdf.Triple{}, err
	}
	pred, err := p.parseNode()
	if err != nil {
		return rdf.Triple{}, err
	}
	obj, err := p.parseNode()
	if err != nil {
		return rdf.Triple{}, err
	}
	tok, err := p.peekTok()
	if err != nil {
		return rdf.Triple{}, err
	}
	if tok.kind == tokPunct && tok.text == "." {
		p.next()
	}
	return rdf.Triple{Subject: subj, Predicate: pred, Object: obj}, nil
}

func (p *parser) parseNode() (rdf.Node, error) {
	tok, err := p.next()
	if err != nil {
		return rdf.Node{}, err
	}
	return p.tokenToNode(tok)
}

func (p *parser) tokenToNode(tok token) (rdf.Node, error) {
	switch tok.kind {
	case tokVar:
		return rdf.NewVariable(tok.text), nil
	case tokIRI:
		return rdf.NewIRI(tok.text)
	case tokBlank:
		return rdf.NewBlank(tok.text)
	case tokLiteral:
		switch {
		case tok.lang != "":
			return rdf.NewLangLiteral(tok.text, tok.lang)
		case tok.dt != "":
			dt, err := rdf.NewIRI(tok.dt)
			if err != nil {
				return rdf.Node{}, err
			}
			return rdf.NewTypedLiteral(tok.text, dt)
		default:
			return rdf.NewLiteral(tok.text)
		}
	default:
		return rdf.Node{}, scryerr.ErrParse.New("expected an RDF term, found " + tok.text)
	}
}

func (p *parser) parseValues() (*ValuesClause, error) {
	vc := &ValuesClause{}

	tok, err := p.peekTok()
	if err != nil {
		return nil, err
	}
	if tok.kind == tokPunct && tok.text == "(" {
		p.next()
		for {
			tok, err := p.next()
			if err != nil {
				return nil, err
			}
			if tok.kind == tokPunct && tok.text == ")" {
				break
			}
			if tok.kind != tokVar {
				return nil, scryerr.ErrParse.New("expected variable in VALUES header")
			}
			vc.Vars = append(vc.Vars, tok.text)
		}
	} else if tok.kind == tokVar {
		p.next()
		vc.Vars = []string{tok.text}
	} else {
		return nil, scryerr.ErrParse.New("expected variable(s) after VALUES")
	}

	if err := p.expectPunct("{"); err != nil {
		return nil, err
	}
	for {
		tok, err := p.peekTok()
		if err != nil {
			return nil, err
		}
		if tok.kind == tokPunct && tok.text == "}" {
			p.next()
			break
		}
		row := make(map[string]rdf.Node, len(vc.Vars))
		if len(vc.Vars) > 1 {
			if err := p.expectPunct("("); err != nil {
				return nil, err
			}
		}
		for _, name := range vc.Vars {
			valTok, err := p.next()
			if err != nil {
				return nil, err
			}
			if valTok.kind == tokKeyword && valTok.text == "UNDEF" {
				continue
			}
			node, err := p.tokenToNode(valTok)
			if err != nil {
				return nil, err
			}
			row[name] = node
		}
		if len(vc.Vars) > 1 {
			if err := p.expectPunct(")"); err != nil {
				return nil, err
			}
		}
		vc.Rows = append(vc.Rows, row)
	}
	return vc, nil
}

func (p *parser) parseBind() (*BindClause, error) {
	if err := p.expectPunct("("); err != nil {
		return nil, err
	}
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("AS"); err != nil {
		return nil, err
	}
	varTok, err := p.next()
	if err != nil {
		return nil, err
	}
	if varTok.kind != tokVar {
		return nil, scryerr.ErrParse.New("expected variable after AS")
	}
	if err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	return &BindClause{Expr: expr, Var: varTok.text}, nil
}

func (p *parser) parseGraph() (*GraphClause, error) {
	iriTok, err := p.next()
	if err != nil {
		return nil, err
	}
	if iriTok.kind != tokIRI {
		return nil, scryerr.ErrParse.New("expected IRI after GRAPH")
	}
	pattern, err := p.parseGroupGraphPattern()
	if err != nil {
		return nil, err
	}
	return &GraphClause{IRI: iriTok.text, Pattern: pattern}, nil
}

// parseExpr parses a +,- expression built from *,/ terms.
func (p *parser) parseExpr() (Expr, error) {
	left, err := p.parseTermExpr()
	if err != nil {
		return nil, err
	}
	for {
		tok, err := p.peekTok()
		if err != nil {
			return nil, err
		}
		if tok.kind != tokPunct || (tok.text != "+" && tok.text != "-") {
			return left, nil
		}
		p.next()
		right, err := p.parseTermExpr()
		if err != nil {
			return nil, err
		}
		left = BinOpExpr{Op: tok.text, Left: left, Right: right}
	}
}

func (p *parser) parseTermExpr() (Expr, error) {
	left, err := p.parseAtomExpr()
	if err != nil {
		return nil, err
	}
	for {
		tok, err := p.peekTok()
		if err != nil {
			return nil, err
		}
		if tok.kind != tokPunct || (tok.text != "*" && tok.text != "/") {
			return left, nil
		}
		p.next()
		right, err := p.parseAtomExpr()
		if err != nil {
			return nil, err
		}
		left = BinOpExpr{Op: tok.text, Left: left, Right: right}
	}
}

func (p *parser) parseAtomExpr() (Expr, error) {
	tok, err := p.next()
	if err != nil {
		return nil, err
	}
	switch tok.kind {
	case tokVar:
		return VarExpr{Name: tok.text}, nil
	case tokLiteral, tokIRI, tokBlank:
		node, err := p.tokenToNode(tok)
		if err != nil {
			return nil, err
		}
		return LiteralExpr{Node: node}, nil
	case tokPunct:
		if tok.text == "(" {
			inner, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if err := p.expectPunct(")"); err != nil {
				return nil, err
			}
			return inner, nil
		}
		if tok.text == "-" {
			// unary minus on a numeric literal
			next, err := p.next()
			if err != nil {
				return nil, err
			}
			if next.kind != tokLiteral {
				return nil, scryerr.ErrParse.New("expected numeric literal after unary '-'")
			}
			node, err := rdf.NewLiteral("-" + next.text)
			if err != nil {
				return nil, err
			}
			return LiteralExpr{Node: node}, nil
		}
	}
	return nil, scryerr.ErrParse.New("expected an expression atom, found " + tok.text)
}

func evalExpr(e Expr, row map[string]rdf.Node) (rdf.Node, error) {
	switch v := e.(type) {
	case LiteralExpr:
		return v.Node, nil
	case VarExpr:
		node, ok := row[v.Name]
		if !ok {
			return rdf.Node{}, scryerr.ErrUnresolvedVariable.New(v.Name)
		}
		return node, nil
	case BinOpExpr:
		l, err := evalExpr(v.Left, row)
		if err != nil {
			return rdf.Node{}, err
		}
		r, err := evalExpr(v.Right, row)
		if err != nil {
			return rdf.Node{}, err
		}
		lf, err1 := strconv.ParseFloat(l.Value(), 64)
		rf, err2 := strconv.ParseFloat(r.Value(), 64)
		if err1 != nil || err2 != nil {
			// non-numeric operands: '+' is string concatenation, matching
			// SPARQL's fallback when arithmetic doesn't typecheck.
			if v.Op == "+" {
				return rdf.NewLiteral(l.Value() + r.Value())
			}
			return rdf.Node{}, scryerr.ErrParse.New("non-numeric operand in arithmetic expression")
		}
		var result float64
		switch v.Op {
		case "+":
			result = lf + rf
		case "-":
			result = lf - rf
		case "*":
			result = lf * rf
		case "/":
			result = lf / rf
		}
		return rdf.NewLiteral(strconv.FormatFloat(result, 'g', -1, 64))
	default:
		return rdf.Node{}, scryerr.ErrParse.New("unknown expression node")
	}
}

// EvalExpr evaluates e against a fully-bound row. Exported for the Bind
// handler.
func EvalExpr(e Expr, row map[string]rdf.Node) (rdf.Node, error) {
	return evalExpr(e, row)
}
