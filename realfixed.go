package calcengine

import (
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/robaho/fixed"
	"github.com/zephyrtronium/bigfloat"
)

// fixedDecimals is the fractional resolution of the fixed backend.
const fixedDecimals = 7

// fxPrec is the binary precision used for the big.Float detour in Pow, Ln
// and the constants. 96 bits comfortably covers the 7-decimal grid.
const fxPrec = 96

// Fixed7 returns the deterministic fixed-point backend. Values carry seven
// fractional decimal digits, the same grid as the handheld's decimal unit.
// Pow and the logarithms are computed through bigfloat at 96-bit precision
// and rounded back onto the grid; trig goes through the host floats.
func Fixed7() Arith {
	return fxArith{}
}

type fxArith struct{}

func (fxArith) Name() string { return "fixed7" }

func (fxArith) FromInt(i int) Real       { return fx{fixed.NewI(int64(i), 0)} }
func (fxArith) FromFloat(v float64) Real { return fx{fixed.NewF(v)} }

func (fxArith) Parse(text string) (Real, error) {
	// Validate with the host parser; it accepts the same grammar the
	// tokenizer produces, exponent included.
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return fx{fixed.ZERO}, err
	}
	if strings.ContainsAny(text, "eE") {
		return fx{fixed.NewF(v)}, nil
	}
	return fx{fixed.NewS(text)}, nil
}

func (fxArith) Pi() Real {
	z := new(big.Float).SetPrec(fxPrec)
	return fxOf(bigfloat.Pi(z))
}

func (fxArith) E() Real {
	one := new(big.Float).SetPrec(fxPrec).SetInt64(1)
	z := new(big.Float).SetPrec(fxPrec)
	return fxOf(bigfloat.Exp(z, one))
}

func (fxArith) Phi() Real {
	z := new(big.Float).SetPrec(fxPrec).SetInt64(5)
	z.Sqrt(z)
	z.Add(z, new(big.Float).SetInt64(1))
	z.Quo(z, new(big.Float).SetInt64(2))
	return fxOf(z)
}

func (a fxArith) Sin(x Real) Real { return a.FromFloat(math.Sin(x.Float64())) }
func (a fxArith) Cos(x Real) Real { return a.FromFloat(math.Cos(x.Float64())) }
func (a fxArith) Tan(x Real) Real { return a.FromFloat(math.Tan(x.Float64())) }

func (a fxArith) Ln(x Real) Real {
	if x.Sign() <= 0 {
		return fx{fixed.ZERO}
	}
	z := new(big.Float).SetPrec(fxPrec)
	return fxOf(bigfloat.Log(z, bigOf(x.(fx))))
}

func (a fxArith) Log10(x Real) Real {
	if x.Sign() <= 0 {
		return fx{fixed.ZERO}
	}
	z := new(big.Float).SetPrec(fxPrec)
	bigfloat.Log(z, bigOf(x.(fx)))
	d := new(big.Float).SetPrec(fxPrec).SetInt64(10)
	bigfloat.Log(d, d)
	return fxOf(z.Quo(z, d))
}

func (a fxArith) Sqrt(x Real) Real {
	if x.Sign() < 0 {
		return fx{fixed.ZERO}
	}
	z := new(big.Float).SetPrec(fxPrec)
	return fxOf(z.Sqrt(bigOf(x.(fx))))
}

func (a fxArith) Pow(x, y Real) Real {
	if x.Sign() < 0 {
		// bigfloat.Pow rejects negative bases; peel the sign off for
		// integer exponents.
		if !y.IsInt() {
			return fx{fixed.ZERO}
		}
		r := a.Pow(x.Abs(), y)
		if y.Int()%2 != 0 {
			return r.Neg()
		}
		return r
	}
	if x.IsZero() {
		if y.IsZero() {
			return a.FromInt(1)
		}
		return fx{fixed.ZERO}
	}
	z := new(big.Float).SetPrec(fxPrec)
	bigfloat.Pow(z, bigOf(x.(fx)), bigOf(y.(fx)))
	return fxOf(z)
}

func bigOf(x fx) *big.Float {
	z, ok := new(big.Float).SetPrec(fxPrec).SetString(x.f.String())
	if !ok {
		return new(big.Float).SetPrec(fxPrec)
	}
	return z
}

func fxOf(z *big.Float) Real {
	return fx{fixed.NewS(z.Text('f', fixedDecimals))}
}

type fx struct {
	f fixed.Fixed
}

func (x fx) Add(y Real) Real { return fx{x.f.Add(y.(fx).f)} }
func (x fx) Sub(y Real) Real { return fx{x.f.Sub(y.(fx).f)} }
func (x fx) Mul(y Real) Real { return fx{x.f.Mul(y.(fx).f)} }

func (x fx) Div(y Real) Real {
	d := y.(fx)
	if d.IsZero() {
		return fx{fixed.ZERO}
	}
	return fx{x.f.Div(d.f)}
}

func (x fx) Neg() Real { return fx{fixed.ZERO.Sub(x.f)} }

func (x fx) Abs() Real {
	if x.Sign() < 0 {
		return x.Neg()
	}
	return x
}

func (x fx) Floor() Real {
	i := x.f.Int()
	if x.f.Cmp(fixed.NewI(i, 0)) < 0 {
		i--
	}
	return fx{fixed.NewI(i, 0)}
}

func (x fx) Ceil() Real {
	i := x.f.Int()
	if x.f.Cmp(fixed.NewI(i, 0)) > 0 {
		i++
	}
	return fx{fixed.NewI(i, 0)}
}

func (x fx) Sign() int { return x.f.Cmp(fixed.ZERO) }
func (x fx) Cmp(y Real) int { return x.f.Cmp(y.(fx).f) }
func (x fx) IsZero() bool { return x.f.Cmp(fixed.ZERO) == 0 }
func (x fx) IsInt() bool { return x.f.Cmp(fixed.NewI(x.f.Int(), 0)) == 0 }
func (x fx) Int() int { return int(x.f.Int()) }
func (x fx) Float64() float64 { return x.f.Float() }

func (x fx) Text(places int) string {
	// Truncating at the backend's own resolution canonicalizes without
	// changing the value.
	s := roundDecimal(x.f.String(), fixedDecimals, true)
	if places < 0 {
		return s
	}
	if places < fixedDecimals {
		s = roundDecimal(s, places, false)
	}
	return padPlaces(s, places)
}

func (x fx) RoundTo(places int) Real {
	return fx{fixed.NewS(roundDecimal(x.f.String(), places, false))}
}

func (x fx) TruncTo(places int) Real {
	return fx{fixed.NewS(roundDecimal(x.f.String(), places, true))}
}

func (x fx) Mag() int {
	if x.IsZero() {
		return 0
	}
	return decimalMag(x.Abs().Text(-1))
}
