package main

import (
	"testing"

	"github.com/pocketwave/calcengine"
)

func TestBackendOf(t *testing.T) {
	for name, want := range map[string]string{
		"":        "float64",
		"float64": "float64",
		"fixed7":  "fixed7",
	} {
		ar, err := backendOf(name)
		if err != nil {
			t.Fatalf("backendOf(%q): %v", name, err)
		}
		if ar.Name() != want {
			t.Errorf("backendOf(%q) = %s, want %s", name, ar.Name(), want)
		}
	}
	if _, err := backendOf("decimal128"); err == nil {
		t.Error("backendOf accepted decimal128")
	}
}

func TestBackendCommand(t *testing.T) {
	eng := calcengine.New()
	p := calcengine.Policy{Mode: calcengine.Round, Precision: 3}
	eng.SetPolicy(p)
	eng.SetVariable("x", eng.Arith().FromInt(1))
	steps := false

	// naming the current backend is a no-op and keeps variables
	if quit := command(&eng, ":backend float64", &steps); quit {
		t.Fatal("command quit")
	}
	if len(eng.Variables()) != 1 {
		t.Error("variables cleared without a backend change")
	}

	if quit := command(&eng, ":backend fixed7", &steps); quit {
		t.Fatal("command quit")
	}
	if got := eng.Arith().Name(); got != "fixed7" {
		t.Fatalf("backend %q after switch", got)
	}
	if eng.Policy() != p {
		t.Errorf("policy %+v not carried across the switch", eng.Policy())
	}
	// the switch rebuilds the engine, so the variable table starts empty
	if names := eng.Variables(); len(names) != 0 {
		t.Errorf("variables %v survived the switch", names)
	}

	// unknown backends leave the engine alone
	before := eng
	command(&eng, ":backend decimal128", &steps)
	if eng != before {
		t.Error("engine replaced on unknown backend")
	}
}

func TestBuildEngine(t *testing.T) {
	eng, err := buildEngine(rcConfig{Backend: "fixed7", Mode: "round", Precision: 2})
	if err != nil {
		t.Fatal(err)
	}
	if eng.Arith().Name() != "fixed7" {
		t.Errorf("backend %q", eng.Arith().Name())
	}
	r, err := eng.Evaluate("1/3")
	if err != nil {
		t.Fatal(err)
	}
	if r.Text != "0.33" {
		t.Errorf("1/3 = %q", r.Text)
	}
	if _, err := buildEngine(rcConfig{Backend: "bogus"}); err == nil {
		t.Error("buildEngine accepted a bogus backend")
	}
}
