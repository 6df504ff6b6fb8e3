package calcengine

// StepKind classifies one record in the evaluation trace.
type StepKind int8

const (
	// StepBinary is a two-operand operation.
	StepBinary StepKind = iota
	// StepUnaryLeft is a prefix operation (the functions).
	StepUnaryLeft
	// StepUnaryRight is a postfix operation (factorial).
	StepUnaryRight
	// StepSubstitute is a variable or constant substitution.
	StepSubstitute
	// StepError is a captured failure; the subtree evaluated to zero.
	StepError
)

func (k StepKind) String() string {
	switch k {
	case StepBinary:
		return "binary"
	case StepUnaryLeft:
		return "unary-left"
	case StepUnaryRight:
		return "unary-right"
	case StepSubstitute:
		return "substitute"
	case StepError:
		return "error"
	}
	return "step(?)"
}

// Step is one immutable record of the evaluation trace. Operand and result
// fields are text snapshots taken under the policy active at emission time.
type Step struct {
	Kind      StepKind
	Operation string
	// Left and Right are the operand texts; unary steps fill only the side
	// the operand is on.
	Left  string
	Right string
	// Expression is the re-printed source subtree the step computed.
	Expression string
	Result     string
}

func (s Step) String() string {
	if s.Kind == StepError {
		return "error: " + s.Expression
	}
	return s.Expression + " = " + s.Result
}

// Result is the outcome of evaluating one input line.
type Result struct {
	// Value is the final value. Captured failures leave zero here, with the
	// detail in Steps.
	Value Real
	// Text is Value rendered in free precision.
	Text string
	// Policy is a snapshot of the policy the evaluation ran under.
	Policy Policy
	// Steps is the ordered trace, capped at the engine's step limit. Steps
	// past the cap are dropped; Value is still correct.
	Steps []Step
}

// StepCount returns the number of recorded steps.
func (r *Result) StepCount() int {
	return len(r.Steps)
}

// recorder appends steps up to a fixed limit. A nil recorder discards
// everything, which is how the no-trace evaluation path runs.
type recorder struct {
	steps []Step
	limit int
}

func (r *recorder) add(s Step) {
	if r == nil || len(r.steps) >= r.limit {
		return
	}
	r.steps = append(r.steps, s)
}
