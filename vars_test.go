package calcengine

import "testing"

func TestVarTable(t *testing.T) {
	ar := Float64()
	tbl := newVarTable(2)
	if _, ok := tbl.get("x"); ok {
		t.Error("empty table resolved x")
	}
	if !tbl.set("x", ar.FromInt(1)) || !tbl.set("y", ar.FromInt(2)) {
		t.Fatal("set failed below capacity")
	}
	// overwrite is always allowed
	if !tbl.set("x", ar.FromInt(3)) {
		t.Error("overwrite failed")
	}
	if v, _ := tbl.get("x"); v.Float64() != 3 {
		t.Errorf("x = %v, want 3", v.Float64())
	}
	// overflow is a silent no-op
	if tbl.set("z", ar.FromInt(4)) {
		t.Error("set succeeded past capacity")
	}
	if _, ok := tbl.get("z"); ok {
		t.Error("overflowed entry is visible")
	}
}

func TestVarConstants(t *testing.T) {
	ar := Float64()
	tbl := newVarTable(2)
	// constants resolve before the table and shadow user entries
	tbl.set("e", ar.FromInt(99))
	v, ok := tbl.lookup(ar, "e")
	if !ok || v.Cmp(ar.E()) != 0 {
		t.Errorf("e resolved to %v", v)
	}
	for _, name := range []string{"pi", "phi"} {
		if _, ok := tbl.lookup(ar, name); !ok {
			t.Errorf("%s did not resolve", name)
		}
	}
	if _, ok := tbl.lookup(ar, "tau"); ok {
		t.Error("tau resolved")
	}
}

func TestVarNameFolding(t *testing.T) {
	ar := Float64()
	tbl := newVarTable(2)
	// set folds the way the tokenizer does, so stored names match
	// in-expression references
	tbl.set("X", ar.FromInt(4))
	if v, ok := tbl.lookup(ar, "x"); !ok || v.Float64() != 4 {
		t.Errorf("x did not resolve after setting X: %v %v", v, ok)
	}
	if got := tbl.names(); len(got) != 1 || got[0] != "x" {
		t.Errorf("stored names %v, want [x]", got)
	}
	for _, name := range []string{"pi", "PI", "Pi", "\xC4"} {
		v, ok := tbl.lookup(ar, name)
		if !ok || v.Cmp(ar.Pi()) != 0 {
			t.Errorf("%q did not resolve to pi", name)
		}
	}
	for _, name := range []string{"PHI", "\xD1"} {
		v, ok := tbl.lookup(ar, name)
		if !ok || v.Cmp(ar.Phi()) != 0 {
			t.Errorf("%q did not resolve to phi", name)
		}
	}
	if v, ok := tbl.lookup(ar, "E"); !ok || v.Cmp(ar.E()) != 0 {
		t.Error("E did not resolve")
	}
}
