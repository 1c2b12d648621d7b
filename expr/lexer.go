package expr

import (
	"fmt"
	"strconv"
	"strings"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokInt
	tokIdent
	tokString
	tokOp
)

func (k tokenKind) String() string {
	switch k {
	case tokEOF:
		return "end of expression"
	case tokInt:
		return "integer"
	case tokIdent:
		return "identifier"
	case tokString:
		return "string"
	case tokOp:
		return "operator"
	default:
		return fmt.Sprintf("tokenKind(%d)", int(k))
	}
}

type token struct {
	kind tokenKind
	pos  int
	text string
}

func (t token) String() string {
	if t.kind == tokEOF {
		return t.kind.String()
	}
	return fmt.Sprintf("%s %q", t.kind, t.text)
}

// twoCharOps must be matched before the single character operators.
var twoCharOps = []string{"<<", ">>", "==", "!="}

const oneCharOps = "|^&+-*/%~()"

func lex(src string) ([]token, error) {
	var toks []token

	for i := 0; i < len(src); {
		c := src[i]

		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++

		case isDigit(c):
			start := i
			for i < len(src) && isDigit(src[i]) {
				i++
			}
			if i < len(src) && isIdentChar(src[i]) {
				return nil, &SyntaxError{Pos: start, Msg: fmt.Sprintf("invalid number %q", src[start:i+1])}
			}
			toks = append(toks, token{kind: tokInt, pos: start, text: src[start:i]})

		case isIdentStart(c):
			start := i
			for i < len(src) && isIdentChar(src[i]) {
				i++
			}
			toks = append(toks, token{kind: tokIdent, pos: start, text: src[start:i]})

		case c == '"':
			start := i
			i++
			for i < len(src) && src[i] != '"' {
				if src[i] == '\\' {
					i++
				}
				i++
			}
			if i >= len(src) {
				return nil, &SyntaxError{Pos: start, Msg: "unterminated string"}
			}
			i++
			s, err := strconv.Unquote(src[start:i])
			if err != nil {
				return nil, &SyntaxError{Pos: start, Msg: fmt.Sprintf("invalid string %s", src[start:i])}
			}
			toks = append(toks, token{kind: tokString, pos: start, text: s})

		default:
			if op, ok := matchTwoCharOp(src[i:]); ok {
				toks = append(toks, token{kind: tokOp, pos: i, text: op})
				i += 2
				continue
			}
			if strings.IndexByte(oneCharOps, c) >= 0 {
				toks = append(toks, token{kind: tokOp, pos: i, text: string(c)})
				i++
				continue
			}
			return nil, &SyntaxError{Pos: i, Msg: fmt.Sprintf("unexpected character %q", c)}
		}
	}

	toks = append(toks, token{kind: tokEOF, pos: len(src)})
	return toks, nil
}

func matchTwoCharOp(s string) (string, bool) {
	if len(s) < 2 {
		return "", false
	}
	for _, op := range twoCharOps {
		if s[:2] == op {
			return op, true
		}
	}
	return "", false
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}
