package calcengine

import (
	"math"
	"testing"
)

func TestRoundDecimal(t *testing.T) {
	cases := []struct {
		in     string
		places int
		trunc  bool
		want   string
	}{
		{"2.675", 2, false, "2.68"},
		{"2.675", 2, true, "2.67"},
		{"-2.675", 2, false, "-2.68"},
		{"-0.339", 2, true, "-0.33"},
		{"9.99", 1, false, "10"},
		{"0.3333333333333333", 2, false, "0.33"},
		{"0.0003333333333333333", 6, false, "0.000333"},
		{"2.5", 0, false, "3"},
		{"-2.5", 0, false, "-3"},
		{"2.5", 0, true, "2"},
		{"5", 0, false, "5"},
		{"5", 3, false, "5"},
		{"7", -1, false, "10"},
		{"1234.567", -2, true, "1200"},
		{"1234.567", -2, false, "1200"},
		{"9999", -1, false, "10000"},
		{"0.000", 2, false, "0"},
		{"-0.004", 2, false, "0"},
		{"1.000", -1, true, "0"},
	}
	for _, c := range cases {
		if got := roundDecimal(c.in, c.places, c.trunc); got != c.want {
			t.Errorf("roundDecimal(%q, %d, %v) = %q, want %q", c.in, c.places, c.trunc, got, c.want)
		}
	}
}

func TestDecimalMag(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"1", 0},
		{"9.99", 0},
		{"10", 1},
		{"1000", 3},
		{"0.1", -1},
		{"0.0003333333333333333", -4},
		{"123.456", 2},
	}
	for _, c := range cases {
		if got := decimalMag(c.in); got != c.want {
			t.Errorf("decimalMag(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestFloat64Text(t *testing.T) {
	ar := Float64()
	cases := []struct {
		v      float64
		places int
		want   string
	}{
		{2, -1, "2"},
		{2.5, -1, "2.5"},
		{-0.25, -1, "-0.25"},
		{2.5, 3, "2.500"},
		{1.0 / 3, 2, "0.33"},
		{0, -1, "0"},
	}
	for _, c := range cases {
		if got := ar.FromFloat(c.v).Text(c.places); got != c.want {
			t.Errorf("Text(%v, %d) = %q, want %q", c.v, c.places, got, c.want)
		}
	}
}

func TestFloat64RoundTrip(t *testing.T) {
	ar := Float64()
	vs := []float64{0, 1, -1, 2.5, 1.0 / 3, math.Pi, 1e10, -0.0001, 123.456}
	for _, v := range vs {
		x := ar.FromFloat(v)
		y, err := ar.Parse(x.Text(-1))
		if err != nil {
			t.Errorf("parsing %q: %v", x.Text(-1), err)
			continue
		}
		if x.Cmp(y) != 0 {
			t.Errorf("round trip of %v: got %v", v, y.Float64())
		}
	}
}

func TestFloat64Ops(t *testing.T) {
	ar := Float64()
	two := ar.FromInt(2)
	three := ar.FromInt(3)
	if v := two.Add(three); v.Float64() != 5 {
		t.Errorf("2+3 = %v", v.Float64())
	}
	if v := two.Sub(three); v.Float64() != -1 {
		t.Errorf("2-3 = %v", v.Float64())
	}
	if v := two.Div(ar.FromInt(0)); !v.IsZero() {
		t.Errorf("division by zero returned %v, want 0", v.Float64())
	}
	if v := ar.FromFloat(-2.5).Floor(); v.Float64() != -3 {
		t.Errorf("floor(-2.5) = %v", v.Float64())
	}
	if v := ar.FromFloat(-2.5).Ceil(); v.Float64() != -2 {
		t.Errorf("ceil(-2.5) = %v", v.Float64())
	}
	if !ar.FromInt(7).IsInt() || ar.FromFloat(7.5).IsInt() {
		t.Error("IsInt misclassifies")
	}
	if v := ar.FromFloat(-2.5).Abs(); v.Float64() != 2.5 {
		t.Errorf("abs(-2.5) = %v", v.Float64())
	}
	if ar.FromFloat(-3).Sign() != -1 || ar.FromInt(0).Sign() != 0 || ar.FromInt(3).Sign() != 1 {
		t.Error("Sign misclassifies")
	}
	if v := ar.FromFloat(1.0 / 3000).Mag(); v != -4 {
		t.Errorf("Mag(1/3000) = %d, want -4", v)
	}
}

func TestFixed7Basics(t *testing.T) {
	ar := Fixed7()
	if v := ar.FromInt(2).Add(ar.FromInt(3)); v.Text(-1) != "5" {
		t.Errorf("2+3 = %q", v.Text(-1))
	}
	v, err := ar.Parse("2.5")
	if err != nil {
		t.Fatal(err)
	}
	if v.Text(-1) != "2.5" {
		t.Errorf("parse 2.5 = %q", v.Text(-1))
	}
	if v.Text(2) != "2.50" {
		t.Errorf("2.5 to two places = %q", v.Text(2))
	}
	x, _ := ar.Parse("2.675")
	if got := x.RoundTo(2).Text(-1); got != "2.68" {
		t.Errorf("round 2.675 = %q", got)
	}
	if got := x.TruncTo(2).Text(-1); got != "2.67" {
		t.Errorf("trunc 2.675 = %q", got)
	}
	k, _ := ar.Parse("1000")
	if k.Mag() != 3 {
		t.Errorf("Mag(1000) = %d", k.Mag())
	}
	if !k.IsInt() || x.IsInt() {
		t.Error("IsInt misclassifies")
	}
	if v := ar.FromInt(1).Div(ar.FromInt(0)); !v.IsZero() {
		t.Error("division by zero is not zero")
	}
	if got := ar.FromFloat(-2.5).Floor().Text(-1); got != "-3" {
		t.Errorf("floor(-2.5) = %q", got)
	}
}

// The two backends must agree wherever the weaker one can represent the
// result: compare after rounding to six places.
func TestBackendAgreement(t *testing.T) {
	host, dev := Float64(), Fixed7()
	agree := func(name string, a, b Real) {
		t.Helper()
		ha, hb := a.RoundTo(6).Text(-1), b.RoundTo(6).Text(-1)
		if ha != hb {
			t.Errorf("%s: float64 %s, fixed7 %s", name, ha, hb)
		}
	}
	agree("pi", host.Pi(), dev.Pi())
	agree("e", host.E(), dev.E())
	agree("phi", host.Phi(), dev.Phi())
	agree("sqrt2", host.Sqrt(host.FromInt(2)), dev.Sqrt(dev.FromInt(2)))
	agree("ln10", host.Ln(host.FromInt(10)), dev.Ln(dev.FromInt(10)))
	agree("2^10", host.Pow(host.FromInt(2), host.FromInt(10)), dev.Pow(dev.FromInt(2), dev.FromInt(10)))
	agree("(-2)^3", host.Pow(host.FromInt(-2), host.FromInt(3)), dev.Pow(dev.FromInt(-2), dev.FromInt(3)))
	agree("sin0", host.Sin(host.FromInt(0)), dev.Sin(dev.FromInt(0)))
	agree("1/8", host.FromInt(1).Div(host.FromInt(8)), dev.FromInt(1).Div(dev.FromInt(8)))
}
