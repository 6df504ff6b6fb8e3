package calcengine

import (
	"math"
	"strconv"
	"strings"
)

// Real is one value of the engine's numeric type. All arithmetic routes
// through this interface so that the engine can run on either the host's
// float64 or the handheld's fixed-decimal unit. Values from different
// backends must not be mixed.
type Real interface {
	Add(Real) Real
	Sub(Real) Real
	Mul(Real) Real
	// Div returns zero when the divisor is zero; callers are expected to
	// detect the condition first.
	Div(Real) Real
	Neg() Real
	Abs() Real
	Floor() Real
	Ceil() Real

	Sign() int
	Cmp(Real) int
	IsZero() bool
	IsInt() bool
	Int() int
	Float64() float64

	// Text renders the value in decimal. places < 0 selects free precision:
	// trailing zeros after the decimal point are stripped and a bare
	// trailing point is removed. Otherwise exactly places fractional digits
	// are emitted.
	Text(places int) string
	// RoundTo rounds half away from zero to the given number of fractional
	// digits. Negative places round above the decimal point.
	RoundTo(places int) Real
	// TruncTo rounds toward zero to the given number of fractional digits.
	TruncTo(places int) Real
	// Mag is the decimal order of magnitude, floor(log10 |v|), computed in
	// decimal space. Mag of zero is zero.
	Mag() int
}

// Arith constructs and combines Reals for one backend.
type Arith interface {
	Name() string

	FromInt(int) Real
	FromFloat(float64) Real
	Parse(text string) (Real, error)

	Pi() Real
	E() Real
	Phi() Real

	Sin(Real) Real
	Cos(Real) Real
	Tan(Real) Real
	Ln(Real) Real
	Log10(Real) Real
	Sqrt(Real) Real
	Pow(x, y Real) Real
}

// Float64 returns the host backend, backed by double-precision floats.
// Formatting still happens in decimal space, so rounding a value to two
// places behaves like a decimal machine, not like binary scaling.
func Float64() Arith {
	return f64Arith{}
}

type f64Arith struct{}

func (f64Arith) Name() string { return "float64" }

func (f64Arith) FromInt(i int) Real       { return f64(i) }
func (f64Arith) FromFloat(v float64) Real { return f64(v) }

func (f64Arith) Parse(text string) (Real, error) {
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return f64(0), err
	}
	return f64(v), nil
}

func (f64Arith) Pi() Real  { return f64(math.Pi) }
func (f64Arith) E() Real   { return f64(math.E) }
func (f64Arith) Phi() Real { return f64(math.Phi) }

func (f64Arith) Sin(x Real) Real { return f64(math.Sin(x.Float64())) }
func (f64Arith) Cos(x Real) Real { return f64(math.Cos(x.Float64())) }
func (f64Arith) Tan(x Real) Real { return f64(math.Tan(x.Float64())) }
func (f64Arith) Ln(x Real) Real  { return f64(math.Log(x.Float64())) }

func (f64Arith) Log10(x Real) Real {
	return f64(math.Log(x.Float64()) / math.Ln10)
}

func (f64Arith) Sqrt(x Real) Real { return f64(math.Sqrt(x.Float64())) }

func (f64Arith) Pow(x, y Real) Real {
	return f64(math.Pow(x.Float64(), y.Float64()))
}

type f64 float64

func (x f64) Add(y Real) Real { return x + y.(f64) }
func (x f64) Sub(y Real) Real { return x - y.(f64) }
func (x f64) Mul(y Real) Real { return x * y.(f64) }

func (x f64) Div(y Real) Real {
	d := y.(f64)
	if d == 0 {
		return f64(0)
	}
	return x / d
}

func (x f64) Neg() Real   { return -x }
func (x f64) Abs() Real   { return f64(math.Abs(float64(x))) }
func (x f64) Floor() Real { return f64(math.Floor(float64(x))) }
func (x f64) Ceil() Real  { return f64(math.Ceil(float64(x))) }

func (x f64) Sign() int {
	switch {
	case x < 0:
		return -1
	case x > 0:
		return 1
	}
	return 0
}

func (x f64) Cmp(y Real) int {
	d := y.(f64)
	switch {
	case x < d:
		return -1
	case x > d:
		return 1
	}
	return 0
}

func (x f64) IsZero() bool { return x == 0 }

func (x f64) IsInt() bool {
	return float64(x) == math.Trunc(float64(x))
}

func (x f64) Int() int         { return int(x) }
func (x f64) Float64() float64 { return float64(x) }

func (x f64) Text(places int) string {
	if places < 0 {
		return strconv.FormatFloat(float64(x), 'f', -1, 64)
	}
	return strconv.FormatFloat(float64(x), 'f', places, 64)
}

func (x f64) RoundTo(places int) Real {
	v, _ := strconv.ParseFloat(roundDecimal(x.Text(-1), places, false), 64)
	return f64(v)
}

func (x f64) TruncTo(places int) Real {
	v, _ := strconv.ParseFloat(roundDecimal(x.Text(-1), places, true), 64)
	return f64(v)
}

func (x f64) Mag() int {
	if x == 0 {
		return 0
	}
	return decimalMag(x.Abs().Text(-1))
}

// roundDecimal rounds the plain decimal numeral s to the given number of
// fractional digits, operating on the digit string so that results match a
// decimal machine exactly. trunc selects round-toward-zero; otherwise ties
// round half away from zero. Negative places round above the units digit.
// The result is canonical: no trailing fractional zeros, no "-0".
func roundDecimal(s string, places int, trunc bool) string {
	neg := false
	switch {
	case strings.HasPrefix(s, "-"):
		neg, s = true, s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}
	ip, fp, _ := strings.Cut(s, ".")
	digits := []byte(ip + fp)
	point := len(ip)
	keep := point + places
	for keep < 0 {
		digits = append([]byte{'0'}, digits...)
		point++
		keep++
	}
	if keep < len(digits) {
		up := !trunc && digits[keep] >= '5'
		for i := keep; i < len(digits); i++ {
			digits[i] = '0'
		}
		if up {
			i := keep - 1
			for ; i >= 0; i-- {
				if digits[i] < '9' {
					digits[i]++
					break
				}
				digits[i] = '0'
			}
			if i < 0 {
				digits = append([]byte{'1'}, digits...)
				point++
			}
		}
	}
	intPart := strings.TrimLeft(string(digits[:point]), "0")
	if intPart == "" {
		intPart = "0"
	}
	frac := strings.TrimRight(string(digits[point:]), "0")
	out := intPart
	if frac != "" {
		out += "." + frac
	}
	if neg && out != "0" {
		out = "-" + out
	}
	return out
}

// decimalMag computes floor(log10 v) from the free-precision numeral of a
// positive value. Working on digits keeps exact powers of ten exact, which
// binary log10 does not.
func decimalMag(s string) int {
	ip, fp, _ := strings.Cut(s, ".")
	t := strings.TrimLeft(ip, "0")
	if t != "" {
		return len(t) - 1
	}
	for i := 0; i < len(fp); i++ {
		if fp[i] != '0' {
			return -(i + 1)
		}
	}
	return 0
}

// padPlaces reformats a canonical decimal numeral with exactly the given
// number of fractional digits. The numeral must already be rounded.
func padPlaces(s string, places int) string {
	ip, fp, _ := strings.Cut(s, ".")
	if places == 0 {
		return ip
	}
	for len(fp) < places {
		fp += "0"
	}
	return ip + "." + fp[:places]
}
