package parser

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"signa/ast"
	"signa/runtime"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokInt
	tokFloat

	tokIntKw
	tokFloatKw
	tokPrint
	tokIf
	tokElse
	tokWhile
	tokReadInt
	tokReadFloat

	tokLParen
	tokRParen
	tokLBrace
	tokRBrace
	tokSemi
	tokAssign
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokEq
	tokNe
	tokLt
	tokGt
	tokLe
	tokGe
	tokAnd
	tokOr
	tokNot
)

var keywords = map[string]tokenKind{
	"int":       tokIntKw,
	"float":     tokFloatKw,
	"print":     tokPrint,
	"if":        tokIf,
	"else":      tokElse,
	"while":     tokWhile,
	"readint":   tokReadInt,
	"readfloat": tokReadFloat,
}

var tokenNames = map[tokenKind]string{
	tokEOF:       "end of file",
	tokIdent:     "identifier",
	tokInt:       "integer literal",
	tokFloat:     "float literal",
	tokIntKw:     "'int'",
	tokFloatKw:   "'float'",
	tokPrint:     "'print'",
	tokIf:        "'if'",
	tokElse:      "'else'",
	tokWhile:     "'while'",
	tokReadInt:   "'readint'",
	tokReadFloat: "'readfloat'",
	tokLParen:    "'('",
	tokRParen:    "')'",
	tokLBrace:    "'{'",
	tokRBrace:    "'}'",
	tokSemi:      "';'",
	tokAssign:    "'='",
	tokPlus:      "'+'",
	tokMinus:     "'-'",
	tokStar:      "'*'",
	tokSlash:     "'/'",
	tokEq:        "'=='",
	tokNe:        "'!='",
	tokLt:        "'<'",
	tokGt:        "'>'",
	tokLe:        "'<='",
	tokGe:        "'>='",
	tokAnd:       "'&&'",
	tokOr:        "'||'",
	tokNot:       "'!'",
}

func (k tokenKind) String() string {
	return tokenNames[k]
}

type token struct {
	kind tokenKind
	text string
	span ast.Span
}

// lexer splits source into tokens. Comments at the top of the file, before
// any token, are kept as the program's documentation.
type lexer struct {
	src []byte
	off int
	pos ast.Point

	header  []string
	started bool
}

func (l *lexer) peekByte(ahead int) byte {
	if l.off+ahead >= len(l.src) {
		return 0
	}
	return l.src[l.off+ahead]
}

func (l *lexer) advance() rune {
	r, size := utf8.DecodeRune(l.src[l.off:])
	l.off += size
	if r == '\n' {
		l.pos.Row++
		l.pos.Column = 0
	} else {
		l.pos.Column += size
	}
	return r
}

func (l *lexer) skipSpace() {
	for l.off < len(l.src) {
		switch c := l.src[l.off]; {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			l.advance()
		case c == '/' && l.peekByte(1) == '/':
			start := l.off
			for l.off < len(l.src) && l.src[l.off] != '\n' {
				l.advance()
			}
			if !l.started {
				l.header = append(l.header, strings.TrimRight(string(l.src[start:l.off]), "\r"))
			}
		default:
			return
		}
	}
}

var punct = []struct {
	text string
	kind tokenKind
}{
	{"==", tokEq},
	{"!=", tokNe},
	{"<=", tokLe},
	{">=", tokGe},
	{"&&", tokAnd},
	{"||", tokOr},
	{"(", tokLParen},
	{")", tokRParen},
	{"{", tokLBrace},
	{"}", tokRBrace},
	{";", tokSemi},
	{"=", tokAssign},
	{"+", tokPlus},
	{"-", tokMinus},
	{"*", tokStar},
	{"/", tokSlash},
	{"<", tokLt},
	{">", tokGt},
	{"!", tokNot},
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func (l *lexer) next() (token, error) {
	l.skipSpace()
	l.started = true

	start := l.pos
	begin := l.off
	tok := func(kind tokenKind) token {
		return token{kind, string(l.src[begin:l.off]), ast.Span{Start: start, End: l.pos}}
	}

	if l.off >= len(l.src) {
		return tok(tokEOF), nil
	}

	c := l.src[l.off]
	if isDigit(c) {
		for isDigit(l.peekByte(0)) {
			l.advance()
		}
		if l.peekByte(0) != '.' {
			return tok(tokInt), nil
		}
		l.advance()
		if !isDigit(l.peekByte(0)) {
			return token{}, runtime.Errorf(runtime.ParseError, ast.Span{Start: start, End: l.pos}, "malformed float literal %q", l.src[begin:l.off])
		}
		for isDigit(l.peekByte(0)) {
			l.advance()
		}
		if e := l.peekByte(0); e == 'e' || e == 'E' {
			l.advance()
			if s := l.peekByte(0); s == '+' || s == '-' {
				l.advance()
			}
			if !isDigit(l.peekByte(0)) {
				return token{}, runtime.Errorf(runtime.ParseError, ast.Span{Start: start, End: l.pos}, "malformed float literal %q", l.src[begin:l.off])
			}
			for isDigit(l.peekByte(0)) {
				l.advance()
			}
		}
		return tok(tokFloat), nil
	}

	r, _ := utf8.DecodeRune(l.src[l.off:])
	if isIdentStart(r) {
		for l.off < len(l.src) {
			r, _ := utf8.DecodeRune(l.src[l.off:])
			if !isIdentPart(r) {
				break
			}
			l.advance()
		}
		t := tok(tokIdent)
		if kw, ok := keywords[t.text]; ok {
			t.kind = kw
		}
		return t, nil
	}

	for _, p := range punct {
		if strings.HasPrefix(string(l.src[l.off:min(l.off+2, len(l.src))]), p.text) {
			for range p.text {
				l.advance()
			}
			return tok(p.kind), nil
		}
	}

	l.advance()
	return token{}, runtime.Errorf(runtime.ParseError, ast.Span{Start: start, End: l.pos}, "unexpected character %q", r)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func tokenize(src []byte) ([]token, []string, error) {
	l := &lexer{src: src}
	var toks []token
	for {
		t, err := l.next()
		if err != nil {
			return nil, nil, err
		}
		toks = append(toks, t)
		if t.kind == tokEOF {
			return toks, l.header, nil
		}
	}
}

func (t token) describe() string {
	switch t.kind {
	case tokIdent, tokInt, tokFloat:
		return fmt.Sprintf("%s %q", t.kind, t.text)
	}
	return t.kind.String()
}
