package calcengine

// maxFactorial caps the factorial operand so a single keypress cannot stall
// the device.
const maxFactorial = 1000

// evalNode evaluates the subtree rooted at i in post order, applying the
// arithmetic policy to every produced value. Failures never propagate: they
// are recorded as error steps and the subtree yields zero. rec may be nil,
// in which case no trace is kept; the value is identical either way.
func (e *Engine) evalNode(i nodeIndex, rec *recorder) Real {
	n := e.arena.at(i)
	switch n.kind {
	case nodeNum:
		return e.policy.Apply(e.ar, n.val)
	case nodeVar:
		v, ok := e.vars.lookup(e.ar, n.name)
		if !ok {
			rec.add(Step{
				Kind:       StepError,
				Operation:  "Substitute " + n.name,
				Expression: n.name,
				Result:     "0",
			})
			return e.ar.FromInt(0)
		}
		v = e.policy.Apply(e.ar, v)
		rec.add(Step{
			Kind:       StepSubstitute,
			Operation:  "Substitute " + n.name,
			Expression: n.name,
			Result:     v.Text(-1),
		})
		return v
	case nodeBin:
		return e.evalBinary(i, n, rec)
	case nodeFunc:
		return e.evalFunc(i, n, rec)
	case nodeFact:
		return e.evalFactorial(i, n, rec)
	case nodeParen:
		// Parentheses are kept for re-printing only; no step.
		return e.evalNode(n.left, rec)
	}
	return e.ar.FromInt(0)
}

func (e *Engine) evalBinary(i nodeIndex, n *node, rec *recorder) Real {
	l := e.evalNode(n.left, rec)
	r := e.evalNode(n.right, rec)
	if n.op == opDiv && r.IsZero() {
		rec.add(Step{
			Kind:       StepError,
			Operation:  "Error",
			Expression: "Division by zero",
			Result:     "Undefined",
		})
		return e.ar.FromInt(0)
	}
	var v Real
	switch n.op {
	case opAdd:
		v = l.Add(r)
	case opSub:
		v = l.Sub(r)
	case opMul:
		v = l.Mul(r)
	case opDiv:
		v = l.Div(r)
	case opPow:
		v = e.ar.Pow(l, r)
	}
	v = e.policy.Apply(e.ar, v)
	rec.add(Step{
		Kind:       StepBinary,
		Operation:  n.op.name(),
		Left:       l.Text(-1),
		Right:      r.Text(-1),
		Expression: e.arena.exprString(i),
		Result:     v.Text(-1),
	})
	return v
}

func (e *Engine) evalFunc(i nodeIndex, n *node, rec *recorder) Real {
	x := e.evalNode(n.left, rec)
	ok := true
	switch n.fn {
	case fnLn, fnLog10:
		ok = x.Sign() > 0
	case fnSqrt:
		ok = x.Sign() >= 0
	}
	if !ok {
		rec.add(Step{
			Kind:       StepError,
			Operation:  "Error",
			Expression: e.arena.exprString(i),
			Result:     "Undefined",
		})
		return e.ar.FromInt(0)
	}
	var v Real
	switch n.fn {
	case fnSin:
		v = e.ar.Sin(x)
	case fnCos:
		v = e.ar.Cos(x)
	case fnTan:
		v = e.ar.Tan(x)
	case fnLog10:
		v = e.ar.Log10(x)
	case fnLn:
		v = e.ar.Ln(x)
	case fnSqrt:
		v = e.ar.Sqrt(x)
	}
	v = e.policy.Apply(e.ar, v)
	rec.add(Step{
		Kind:       StepUnaryLeft,
		Operation:  n.fn.String(),
		Right:      x.Text(-1),
		Expression: e.arena.exprString(i),
		Result:     v.Text(-1),
	})
	return v
}

func (e *Engine) evalFactorial(i nodeIndex, n *node, rec *recorder) Real {
	x := e.evalNode(n.left, rec)
	v, ok := e.factorial(x)
	if !ok {
		rec.add(Step{
			Kind:       StepError,
			Operation:  "Error",
			Expression: e.arena.exprString(i),
			Result:     "Undefined",
		})
		return e.ar.FromInt(0)
	}
	v = e.policy.Apply(e.ar, v)
	rec.add(Step{
		Kind:       StepUnaryRight,
		Operation:  "Factorial",
		Left:       x.Text(-1),
		Expression: e.arena.exprString(i),
		Result:     v.Text(-1),
	})
	return v
}

// factorial computes x! for non-negative integer x. Integrality is decided
// by exact comparison against the rounded value.
func (e *Engine) factorial(x Real) (Real, bool) {
	if x.Sign() < 0 {
		return nil, false
	}
	r := x.RoundTo(0)
	if r.Cmp(x) != 0 {
		return nil, false
	}
	n := r.Int()
	if n > maxFactorial {
		return nil, false
	}
	v := e.ar.FromInt(1)
	for k := 2; k <= n; k++ {
		v = v.Mul(e.ar.FromInt(k))
	}
	return v, true
}
