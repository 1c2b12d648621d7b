package expr

import (
	"fmt"
	"strconv"
)

var keywords = map[string]struct{}{
	"and":    {},
	"or":     {},
	"not":    {},
	"is":     {},
	"true":   {},
	"false":  {},
	"TRUTH":  {},
	"LIE":    {},
	"truthy": {},
	"falsy":  {},
	"not_":   {},
}

// IsKeyword reports whether name is reserved by the expression language and
// therefore cannot be bound.
func IsKeyword(name string) bool {
	_, ok := keywords[name]
	return ok
}

// binaryLevels lists the strict operators from the lowest to the highest
// precedence.
var binaryLevels = [][]string{
	{"|"},
	{"^"},
	{"&"},
	{"<<", ">>"},
	{"+", "-"},
	{"*", "/", "%"},
}

type parser struct {
	toks []token
	pos  int
}

// Parse parses src into a Node.
func Parse(src string) (Node, error) {
	toks, err := lex(src)
	if err != nil {
		return nil, err
	}

	p := &parser{toks: toks}
	n, err := p.parseOr()
	if err != nil {
		return nil, err
	}

	if t := p.peek(); t.kind != tokEOF {
		return nil, &SyntaxError{Pos: t.pos, Msg: fmt.Sprintf("unexpected %s", t)}
	}
	return n, nil
}

func (p *parser) peek() token {
	return p.toks[p.pos]
}

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) keyword(s string) bool {
	t := p.peek()
	return t.kind == tokIdent && t.text == s
}

func (p *parser) op(ops ...string) bool {
	t := p.peek()
	if t.kind != tokOp {
		return false
	}
	for _, op := range ops {
		if t.text == op {
			return true
		}
	}
	return false
}

func (p *parser) expect(op string) error {
	if !p.op(op) {
		t := p.peek()
		return &SyntaxError{Pos: t.pos, Msg: fmt.Sprintf("expected %q, found %s", op, t)}
	}
	p.next()
	return nil
}

func (p *parser) parseOr() (Node, error) {
	x, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.keyword("or") {
		t := p.next()
		y, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		x = &Logical{At: t.pos, Op: "or", X: x, Y: y}
	}
	return x, nil
}

func (p *parser) parseAnd() (Node, error) {
	x, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for p.keyword("and") {
		t := p.next()
		y, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		x = &Logical{At: t.pos, Op: "and", X: x, Y: y}
	}
	return x, nil
}

func (p *parser) parseNot() (Node, error) {
	if p.keyword("not") {
		t := p.next()
		x, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return &Not{At: t.pos, X: x}, nil
	}
	return p.parseCompare()
}

// parseCompare does not chain: a == b == c is a syntax error.
func (p *parser) parseCompare() (Node, error) {
	x, err := p.parseBinary(0)
	if err != nil {
		return nil, err
	}

	var op string
	t := p.peek()
	switch {
	case p.op("==", "!="):
		op = p.next().text
	case p.keyword("is"):
		p.next()
		op = "is"
		if p.keyword("not") {
			p.next()
			op = "is not"
		}
	default:
		return x, nil
	}

	y, err := p.parseBinary(0)
	if err != nil {
		return nil, err
	}
	if p.op("==", "!=") || p.keyword("is") {
		c := p.peek()
		return nil, &SyntaxError{Pos: c.pos, Msg: "comparisons cannot be chained"}
	}
	return &Compare{At: t.pos, Op: op, X: x, Y: y}, nil
}

func (p *parser) parseBinary(level int) (Node, error) {
	if level == len(binaryLevels) {
		return p.parseUnary()
	}

	x, err := p.parseBinary(level + 1)
	if err != nil {
		return nil, err
	}
	for p.op(binaryLevels[level]...) {
		t := p.next()
		y, err := p.parseBinary(level + 1)
		if err != nil {
			return nil, err
		}
		x = &Binary{At: t.pos, Op: t.text, X: x, Y: y}
	}
	return x, nil
}

func (p *parser) parseUnary() (Node, error) {
	if p.op("~", "-") {
		t := p.next()
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &Unary{At: t.pos, Op: t.text, X: x}, nil
	}
	return p.parseAtom()
}

func (p *parser) parseAtom() (Node, error) {
	t := p.next()

	switch t.kind {
	case tokInt:
		v, err := strconv.ParseInt(t.text, 10, 64)
		if err != nil {
			return nil, &SyntaxError{Pos: t.pos, Msg: fmt.Sprintf("integer %s out of range", t.text)}
		}
		return &IntLit{At: t.pos, Value: v}, nil

	case tokOp:
		if t.text == "(" {
			x, err := p.parseOr()
			if err != nil {
				return nil, err
			}
			if err := p.expect(")"); err != nil {
				return nil, err
			}
			return x, nil
		}

	case tokIdent:
		switch t.text {
		case "true", "false":
			return &BoolLit{At: t.pos, Value: t.text == "true"}, nil
		case "TRUTH", "LIE":
			return &Const{At: t.pos, Truth: t.text == "TRUTH"}, nil
		case "truthy", "falsy":
			return p.parseObtain(t)
		case "not_":
			if err := p.expect("("); err != nil {
				return nil, err
			}
			x, err := p.parseOr()
			if err != nil {
				return nil, err
			}
			if err := p.expect(")"); err != nil {
				return nil, err
			}
			return &Unary{At: t.pos, Op: "not_", X: x}, nil
		}
		if IsKeyword(t.text) {
			return nil, &SyntaxError{Pos: t.pos, Msg: fmt.Sprintf("unexpected keyword %q", t.text)}
		}
		return &Ident{At: t.pos, Name: t.text}, nil
	}

	return nil, &SyntaxError{Pos: t.pos, Msg: fmt.Sprintf("unexpected %s", t)}
}

// parseObtain parses the flavor argument of truthy and falsy. The flavor is a
// literal: an identifier and a string both name a string flavor, an integer
// names an int flavor.
func (p *parser) parseObtain(fn token) (Node, error) {
	if err := p.expect("("); err != nil {
		return nil, err
	}

	var flavor interface{}
	t := p.next()
	switch t.kind {
	case tokIdent, tokString:
		flavor = t.text
	case tokInt:
		v, err := strconv.Atoi(t.text)
		if err != nil {
			return nil, &SyntaxError{Pos: t.pos, Msg: fmt.Sprintf("integer %s out of range", t.text)}
		}
		flavor = v
	default:
		return nil, &SyntaxError{Pos: t.pos, Msg: fmt.Sprintf("expected a flavor, found %s", t)}
	}

	if err := p.expect(")"); err != nil {
		return nil, err
	}
	return &Obtain{At: fn.pos, Truth: fn.text == "truthy", Flavor: flavor}, nil
}
