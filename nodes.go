package calcengine

import "strings"

type nodeKind int8

const (
	nodeNone nodeKind = iota
	nodeNum
	nodeVar
	nodeBin
	nodeFunc
	nodeFact
	nodeParen
)

type binOp int8

const (
	opAdd binOp = iota
	opSub
	opMul
	opDiv
	opPow
)

// sym is the operator's source spelling.
func (op binOp) sym() string {
	switch op {
	case opAdd:
		return "+"
	case opSub:
		return "-"
	case opMul:
		return "*"
	case opDiv:
		return "/"
	case opPow:
		return "^"
	}
	return "?"
}

// name is the operation label used in step records.
func (op binOp) name() string {
	switch op {
	case opAdd:
		return "Add"
	case opSub:
		return "Subtract"
	case opMul:
		return "Multiply"
	case opDiv:
		return "Divide"
	case opPow:
		return "Power"
	}
	return "?"
}

type funcKind int8

const (
	fnSin funcKind = iota
	fnCos
	fnTan
	fnLog10
	fnLn
	fnSqrt
)

func (f funcKind) String() string {
	switch f {
	case fnSin:
		return "sin"
	case fnCos:
		return "cos"
	case fnTan:
		return "tan"
	case fnLog10:
		return "log"
	case fnLn:
		return "ln"
	case fnSqrt:
		return "sqrt"
	}
	return "?"
}

func funcKindOf(name string) (funcKind, bool) {
	switch name {
	case "sin":
		return fnSin, true
	case "cos":
		return fnCos, true
	case "tan":
		return fnTan, true
	case "log":
		return fnLog10, true
	case "ln":
		return fnLn, true
	case "sqrt":
		return fnSqrt, true
	}
	return 0, false
}

// nodeIndex references a node inside its arena. References are indices, not
// pointers, so resetting the arena invalidates nothing that is still held.
type nodeIndex int16

const noNode nodeIndex = -1

// node is one AST node. Unary variants keep their operand in left.
type node struct {
	kind  nodeKind
	op    binOp    // nodeBin
	fn    funcKind // nodeFunc
	val   Real     // nodeNum
	name  string   // nodeVar
	left  nodeIndex
	right nodeIndex
	pos   Position
}

// arena is a bounded bump allocator for nodes. A parse that would exceed
// the capacity fails instead of growing. Children always have smaller
// indices than their parent.
type arena struct {
	nodes []node
}

func newArena(capacity int) *arena {
	return &arena{nodes: make([]node, 0, capacity)}
}

func (a *arena) reset() {
	a.nodes = a.nodes[:0]
}

func (a *arena) alloc(n node) (nodeIndex, bool) {
	if len(a.nodes) == cap(a.nodes) {
		return noNode, false
	}
	a.nodes = append(a.nodes, n)
	return nodeIndex(len(a.nodes) - 1), true
}

func (a *arena) at(i nodeIndex) *node {
	return &a.nodes[i]
}

func (a *arena) len() int {
	return len(a.nodes)
}

// exprString re-prints the subtree rooted at i. Step records use it for
// their expression text.
func (a *arena) exprString(i nodeIndex) string {
	var b strings.Builder
	a.fmtNode(&b, i)
	return b.String()
}

func (a *arena) fmtNode(b *strings.Builder, i nodeIndex) {
	n := a.at(i)
	switch n.kind {
	case nodeNum:
		b.WriteString(n.val.Text(-1))
	case nodeVar:
		b.WriteString(n.name)
	case nodeBin:
		if a.isUnaryMinus(n) {
			b.WriteByte('-')
			a.fmtNode(b, n.right)
			return
		}
		a.fmtNode(b, n.left)
		b.WriteByte(' ')
		b.WriteString(n.op.sym())
		b.WriteByte(' ')
		a.fmtNode(b, n.right)
	case nodeFunc:
		b.WriteString(n.fn.String())
		b.WriteByte('(')
		a.fmtNode(b, n.left)
		b.WriteByte(')')
	case nodeFact:
		a.fmtNode(b, n.left)
		b.WriteByte('!')
	case nodeParen:
		b.WriteByte('(')
		a.fmtNode(b, n.left)
		b.WriteByte(')')
	default:
		b.WriteByte('?')
	}
}

// isUnaryMinus recognizes the Sub-from-zero shape the parser synthesizes
// for unary minus: the zero literal shares the operator's position.
func (a *arena) isUnaryMinus(n *node) bool {
	if n.op != opSub {
		return false
	}
	l := a.at(n.left)
	return l.kind == nodeNum && l.val.IsZero() && l.pos == n.pos
}
