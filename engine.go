package calcengine

// Defaults for the engine's resource bounds. They mirror the device build;
// hosts may raise them through options.
const (
	DefaultArenaSize   = 50
	DefaultStepLimit   = 20
	DefaultVarCapacity = 10
)

// Engine holds the process-lived state of the expression engine: the AST
// arena, the variable table, and the arithmetic policy. An Engine is not
// safe for concurrent use; create one per goroutine or serialize callers.
type Engine struct {
	ar        Arith
	arena     *arena
	vars      *varTable
	policy    Policy
	stepLimit int

	arenaSize int
	varCap    int
}

// Option configures an Engine at construction.
type Option func(*Engine)

// WithArith selects the numeric backend. The default is Float64.
func WithArith(ar Arith) Option {
	return func(e *Engine) { e.ar = ar }
}

// WithArenaSize bounds the AST node pool.
func WithArenaSize(n int) Option {
	return func(e *Engine) { e.arenaSize = n }
}

// WithStepLimit bounds the trace length of one evaluation.
func WithStepLimit(n int) Option {
	return func(e *Engine) { e.stepLimit = n }
}

// WithVarCapacity bounds the variable table.
func WithVarCapacity(n int) Option {
	return func(e *Engine) { e.varCap = n }
}

// WithPolicy sets the initial arithmetic policy.
func WithPolicy(p Policy) Option {
	return func(e *Engine) { e.policy = p }
}

// New creates an engine. With no options it matches the device defaults:
// float64 backend, Normal policy, 50 AST nodes, 10 variables, 20 steps.
func New(opts ...Option) *Engine {
	e := &Engine{
		ar:        Float64(),
		stepLimit: DefaultStepLimit,
		arenaSize: DefaultArenaSize,
		varCap:    DefaultVarCapacity,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.arena = newArena(e.arenaSize)
	e.vars = newVarTable(e.varCap)
	return e
}

// Reset clears the arena and the variable table. The policy is kept.
func (e *Engine) Reset() {
	e.arena.reset()
	e.vars.reset()
}

// Arith returns the engine's numeric backend.
func (e *Engine) Arith() Arith {
	return e.ar
}

// SetVariable stores a variable. When the table is full the call is a
// no-op and reports false.
func (e *Engine) SetVariable(name string, v Real) bool {
	return e.vars.set(name, v)
}

// GetVariable resolves a name the way the evaluator does: built-in
// constants first, then the table.
func (e *Engine) GetVariable(name string) (Real, bool) {
	return e.vars.lookup(e.ar, name)
}

// Variables returns the user-defined variable names in insertion order.
func (e *Engine) Variables() []string {
	return e.vars.names()
}

// SetPolicy replaces the arithmetic policy.
func (e *Engine) SetPolicy(p Policy) {
	e.policy = p
}

// Policy returns the current arithmetic policy.
func (e *Engine) Policy() Policy {
	return e.policy
}

// FormatReal renders a value under the current policy in free precision.
func (e *Engine) FormatReal(v Real) string {
	return e.policy.Apply(e.ar, v).Text(-1)
}

// Evaluate parses and evaluates one input line, producing the value and the
// step trace. Input beyond 100 bytes is truncated. Malformed input and
// arena exhaustion return an InputError; everything that goes wrong during
// evaluation itself is captured in the trace instead.
func (e *Engine) Evaluate(input string) (*Result, error) {
	root, err := parseString(e.ar, e.arena, input)
	if err != nil {
		return nil, err
	}
	rec := &recorder{limit: e.stepLimit}
	v := e.evalNode(root, rec)
	return &Result{
		Value:  v,
		Text:   v.Text(-1),
		Policy: e.policy,
		Steps:  rec.steps,
	}, nil
}

// Eval parses and evaluates one input line without recording steps. The
// value is bit-identical to the one Evaluate produces.
func (e *Engine) Eval(input string) (Real, error) {
	root, err := parseString(e.ar, e.arena, input)
	if err != nil {
		return nil, err
	}
	return e.evalNode(root, nil), nil
}

// The default engine mirrors the original firmware's global API for
// embedders that want the engine without carrying an Engine value around.
var defaultEngine = New()

// Init replaces the default engine. It is the package-level counterpart of
// New for embedding convenience.
func Init(opts ...Option) {
	defaultEngine = New(opts...)
}

// Evaluate evaluates input on the default engine.
func Evaluate(input string) (*Result, error) {
	return defaultEngine.Evaluate(input)
}

// EvalString evaluates input on the default engine without a trace.
func EvalString(input string) (Real, error) {
	return defaultEngine.Eval(input)
}

// SetVariable stores a variable on the default engine.
func SetVariable(name string, v Real) bool {
	return defaultEngine.SetVariable(name, v)
}

// GetVariable resolves a name on the default engine.
func GetVariable(name string) (Real, bool) {
	return defaultEngine.GetVariable(name)
}

// SetPolicy replaces the default engine's policy.
func SetPolicy(p Policy) {
	defaultEngine.SetPolicy(p)
}

// GetPolicy returns the default engine's policy.
func GetPolicy() Policy {
	return defaultEngine.Policy()
}
