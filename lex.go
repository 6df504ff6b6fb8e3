package calcengine

import "strings"

// Position locates a token or node in the input: byte offsets plus 1-based
// line and column. Positions are never mutated after creation.
type Position struct {
	Start int
	End   int
	Line  int
	Col   int
}

type tokenKind int8

const (
	tokenNone tokenKind = iota
	tokenEnd
	tokenNumber
	tokenVariable
	tokenFunction
	tokenPlus
	tokenMinus
	tokenMultiply
	tokenDivide
	tokenPower
	tokenLeftParen
	tokenRightParen
	tokenComma
	tokenFactorial
	tokenPi
	tokenPhi
)

type token struct {
	kind tokenKind
	// text is the token's source text, lower-cased for identifiers and
	// clamped to maxToken bytes.
	text string
	// val is the parsed value for tokenNumber, tokenPi and tokenPhi.
	val Real
	pos Position
}

const (
	// maxInput clamps the source string; longer input is truncated.
	maxInput = 100
	// maxToken clamps a single token's text.
	maxToken = 20
	// glyphPi and glyphPhi are the display codepage bytes for the constant
	// keys on the device keyboard.
	glyphPi  = 0xC4
	glyphPhi = 0xD1
)

// lexer produces a one-token-lookahead stream over a byte string. The
// lookahead lives in cur and is primed by newLexer.
type lexer struct {
	ar    Arith
	input string
	pos   int
	line  int
	col   int
	cur   token
}

func newLexer(ar Arith, input string) *lexer {
	if len(input) > maxInput {
		input = input[:maxInput]
	}
	l := &lexer{ar: ar, input: input, line: 1, col: 1}
	l.cur = l.scan()
	return l
}

// peek returns the lookahead token without consuming it.
func (l *lexer) peek() token {
	return l.cur
}

// next consumes and returns the lookahead token. The End token repeats
// forever.
func (l *lexer) next() token {
	t := l.cur
	if t.kind != tokenEnd {
		l.cur = l.scan()
	}
	return t
}

func (l *lexer) skipSpace() {
	for l.pos < len(l.input) {
		switch l.input[l.pos] {
		case ' ', '\t', '\r':
			l.pos++
			l.col++
		case '\n':
			l.pos++
			l.line++
			l.col = 1
		default:
			return
		}
	}
}

func (l *lexer) scan() token {
	l.skipSpace()
	pos := Position{Start: l.pos, Line: l.line, Col: l.col}
	if l.pos >= len(l.input) {
		pos.End = l.pos
		return token{kind: tokenEnd, pos: pos}
	}
	c := l.input[l.pos]
	switch {
	case isDigit(c), c == '.':
		return l.scanNumber(pos)
	case c == '_', isLetter(c):
		return l.scanIdent(pos)
	}
	l.pos++
	l.col++
	pos.End = l.pos
	tok := token{text: l.input[pos.Start:l.pos], pos: pos}
	switch c {
	case '+':
		tok.kind = tokenPlus
	case '-':
		tok.kind = tokenMinus
	case '*':
		tok.kind = tokenMultiply
	case '/':
		tok.kind = tokenDivide
	case '^':
		tok.kind = tokenPower
	case '(':
		tok.kind = tokenLeftParen
	case ')':
		tok.kind = tokenRightParen
	case ',':
		tok.kind = tokenComma
	case '!':
		tok.kind = tokenFactorial
	case glyphPi:
		tok.kind = tokenPi
		tok.val = l.ar.Pi()
	case glyphPhi:
		tok.kind = tokenPhi
		tok.val = l.ar.Phi()
	default:
		tok.kind = tokenNone
	}
	return tok
}

// scanNumber scans digits with at most one decimal point and an optional
// scientific suffix. The suffix is committed only after looking ahead for a
// digit, so "2e+" lexes as the number 2 followed by a plus.
func (l *lexer) scanNumber(pos Position) token {
	i := l.pos
	for i < len(l.input) && isDigit(l.input[i]) {
		i++
	}
	if i < len(l.input) && l.input[i] == '.' {
		i++
		for i < len(l.input) && isDigit(l.input[i]) {
			i++
		}
	}
	if i < len(l.input) && (l.input[i] == 'e' || l.input[i] == 'E') {
		j := i + 1
		if j < len(l.input) && (l.input[j] == '+' || l.input[j] == '-') {
			j++
		}
		if j < len(l.input) && isDigit(l.input[j]) {
			for j < len(l.input) && isDigit(l.input[j]) {
				j++
			}
			i = j
		}
	}
	text := l.input[l.pos:i]
	l.col += i - l.pos
	l.pos = i
	pos.End = i
	if len(text) > maxToken {
		text = text[:maxToken]
	}
	v, err := l.ar.Parse(text)
	if err != nil {
		v = l.ar.FromInt(0)
	}
	return token{kind: tokenNumber, text: text, val: v, pos: pos}
}

// scanIdent scans an identifier, lower-casing as it reads. Reserved names
// become constant or function tokens; everything else is a variable.
func (l *lexer) scanIdent(pos Position) token {
	i := l.pos
	for i < len(l.input) && isIdentByte(l.input[i]) {
		i++
	}
	text := strings.ToLower(l.input[l.pos:i])
	l.col += i - l.pos
	l.pos = i
	pos.End = i
	if len(text) > maxToken {
		text = text[:maxToken]
	}
	tok := token{text: text, pos: pos}
	switch text {
	case "pi":
		tok.kind = tokenPi
		tok.val = l.ar.Pi()
	case "phi":
		tok.kind = tokenPhi
		tok.val = l.ar.Phi()
	case "sin", "cos", "tan", "log", "ln", "sqrt":
		tok.kind = tokenFunction
	default:
		tok.kind = tokenVariable
	}
	return tok
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isLetter(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

func isIdentByte(c byte) bool {
	return isLetter(c) || isDigit(c) || c == '_'
}
