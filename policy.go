package calcengine

import "strconv"

// Mode selects how the arithmetic policy reshapes values.
type Mode int

const (
	// Normal leaves values untouched.
	Normal Mode = iota
	// Truncate rounds toward zero.
	Truncate
	// Round rounds half away from zero.
	Round
)

func (m Mode) String() string {
	switch m {
	case Normal:
		return "normal"
	case Truncate:
		return "truncate"
	case Round:
		return "round"
	}
	return "mode(" + strconv.Itoa(int(m)) + ")"
}

// Unit selects what the policy's precision counts.
type Unit int

const (
	DecimalPlaces Unit = iota
	SignificantDigits
)

func (u Unit) String() string {
	switch u {
	case DecimalPlaces:
		return "places"
	case SignificantDigits:
		return "digits"
	}
	return "unit(" + strconv.Itoa(int(u)) + ")"
}

// MaxPrecision bounds the policy precision.
const MaxPrecision = 10

// Policy is the arithmetic formatting rule applied to every value the
// evaluator produces or consumes. The zero value is Normal mode, which
// ignores Precision and Unit.
type Policy struct {
	Mode      Mode
	Precision int
	Unit      Unit
}

// Apply reshapes v under the policy. Apply is idempotent, and Apply of zero
// is zero under every policy.
func (p Policy) Apply(ar Arith, v Real) Real {
	if p.Mode == Normal || v.IsZero() {
		return v
	}
	prec := p.Precision
	if prec < 0 {
		prec = 0
	}
	if prec > MaxPrecision {
		prec = MaxPrecision
	}
	places := prec
	if p.Unit == SignificantDigits {
		s := prec
		if s < 1 {
			s = 1
		}
		places = s - v.Mag() - 1
	}
	if p.Mode == Truncate {
		return v.TruncTo(places)
	}
	return v.RoundTo(places)
}

// CycleMode returns the policy with the next mode in the
// Normal -> Truncate -> Round cycle.
func (p Policy) CycleMode() Policy {
	switch p.Mode {
	case Normal:
		p.Mode = Truncate
	case Truncate:
		p.Mode = Round
	default:
		p.Mode = Normal
	}
	return p
}

// ToggleUnit returns the policy with the other precision unit. The unit has
// no effect in Normal mode.
func (p Policy) ToggleUnit() Policy {
	if p.Unit == DecimalPlaces {
		p.Unit = SignificantDigits
	} else {
		p.Unit = DecimalPlaces
	}
	return p
}

