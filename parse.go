package calcengine

// The grammar, LL(1) with the lexer's one-token lookahead:
//
//	expression := term ( ('+' | '-') term )*
//	term       := factor ( ('*' | '/') factor )*
//	factor     := primary ( '!' )? ( '^' factor )?
//	primary    := Number | Pi | Phi | Variable
//	            | Function '(' expression ')'
//	            | '(' expression ')'
//	            | '-' factor
//
// '+' '-' '*' '/' are left-associative, '^' is right-associative, and '!'
// appears at most once per factor, binding tighter than '^': a^b! is
// a^(b!). Unary minus becomes Sub(0, operand) with the zero literal at the
// minus sign's position.

type parser struct {
	lex *lexer
	a   *arena
	ar  Arith
}

// parseString parses input into the arena and returns the root index. The
// arena is reset first. Empty input parses to the number 0.
func parseString(ar Arith, a *arena, input string) (nodeIndex, error) {
	a.reset()
	p := &parser{lex: newLexer(ar, input), a: a, ar: ar}
	if tok := p.lex.peek(); tok.kind == tokenEnd {
		return p.alloc(node{kind: nodeNum, val: ar.FromInt(0), pos: tok.pos})
	}
	root, err := p.expression()
	if err != nil {
		return noNode, err
	}
	if tok := p.lex.peek(); tok.kind != tokenEnd {
		return noNode, &UnexpectedTokenError{At: tok.pos, Token: tok.text}
	}
	return root, nil
}

func (p *parser) alloc(n node) (nodeIndex, error) {
	i, ok := p.a.alloc(n)
	if !ok {
		return noNode, &ArenaLimitError{At: n.pos, Cap: cap(p.a.nodes)}
	}
	return i, nil
}

func (p *parser) expression() (nodeIndex, error) {
	n, err := p.term()
	if err != nil {
		return noNode, err
	}
	for {
		tok := p.lex.peek()
		var op binOp
		switch tok.kind {
		case tokenPlus:
			op = opAdd
		case tokenMinus:
			op = opSub
		default:
			return n, nil
		}
		p.lex.next()
		r, err := p.term()
		if err != nil {
			return noNode, err
		}
		n, err = p.alloc(node{kind: nodeBin, op: op, left: n, right: r, pos: tok.pos})
		if err != nil {
			return noNode, err
		}
	}
}

func (p *parser) term() (nodeIndex, error) {
	n, err := p.factor()
	if err != nil {
		return noNode, err
	}
	for {
		tok := p.lex.peek()
		var op binOp
		switch tok.kind {
		case tokenMultiply:
			op = opMul
		case tokenDivide:
			op = opDiv
		default:
			return n, nil
		}
		p.lex.next()
		r, err := p.factor()
		if err != nil {
			return noNode, err
		}
		n, err = p.alloc(node{kind: nodeBin, op: op, left: n, right: r, pos: tok.pos})
		if err != nil {
			return noNode, err
		}
	}
}

func (p *parser) factor() (nodeIndex, error) {
	n, err := p.primary()
	if err != nil {
		return noNode, err
	}
	if tok := p.lex.peek(); tok.kind == tokenFactorial {
		p.lex.next()
		n, err = p.alloc(node{kind: nodeFact, left: n, right: noNode, pos: tok.pos})
		if err != nil {
			return noNode, err
		}
	}
	if tok := p.lex.peek(); tok.kind == tokenPower {
		p.lex.next()
		r, err := p.factor()
		if err != nil {
			return noNode, err
		}
		n, err = p.alloc(node{kind: nodeBin, op: opPow, left: n, right: r, pos: tok.pos})
		if err != nil {
			return noNode, err
		}
	}
	return n, nil
}

func (p *parser) primary() (nodeIndex, error) {
	tok := p.lex.next()
	switch tok.kind {
	case tokenNumber, tokenPi, tokenPhi:
		return p.alloc(node{kind: nodeNum, val: tok.val, pos: tok.pos})
	case tokenVariable:
		return p.alloc(node{kind: nodeVar, name: tok.text, left: noNode, right: noNode, pos: tok.pos})
	case tokenFunction:
		fn, _ := funcKindOf(tok.text)
		open := p.lex.peek()
		if open.kind != tokenLeftParen {
			return noNode, &UnexpectedTokenError{At: open.pos, Token: open.text}
		}
		p.lex.next()
		arg, err := p.expression()
		if err != nil {
			return noNode, err
		}
		if end := p.lex.peek(); end.kind != tokenRightParen {
			return noNode, &BracketError{At: end.pos, Got: end.text}
		}
		p.lex.next()
		return p.alloc(node{kind: nodeFunc, fn: fn, left: arg, right: noNode, pos: tok.pos})
	case tokenLeftParen:
		inner, err := p.expression()
		if err != nil {
			return noNode, err
		}
		if end := p.lex.peek(); end.kind != tokenRightParen {
			return noNode, &BracketError{At: end.pos, Got: end.text}
		}
		p.lex.next()
		return p.alloc(node{kind: nodeParen, left: inner, right: noNode, pos: tok.pos})
	case tokenMinus:
		zero, err := p.alloc(node{kind: nodeNum, val: p.ar.FromInt(0), pos: tok.pos})
		if err != nil {
			return noNode, err
		}
		operand, err := p.factor()
		if err != nil {
			return noNode, err
		}
		return p.alloc(node{kind: nodeBin, op: opSub, left: zero, right: operand, pos: tok.pos})
	default:
		return noNode, &UnexpectedTokenError{At: tok.pos, Token: tok.text}
	}
}
