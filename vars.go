package calcengine

import "strings"

// varTable is the user variable store. Lookup is linear; the table is tiny
// on the target device. Names fold to lower case on the way in, matching
// the tokenizer, so the public API and in-expression references agree.
type varTable struct {
	entries []varEntry
}

type varEntry struct {
	name  string
	value Real
}

func newVarTable(capacity int) *varTable {
	return &varTable{entries: make([]varEntry, 0, capacity)}
}

func (t *varTable) reset() {
	t.entries = t.entries[:0]
}

// set stores or overwrites a variable. When the table is full, set is a
// no-op and reports false.
func (t *varTable) set(name string, v Real) bool {
	name = foldName(name)
	for i := range t.entries {
		if t.entries[i].name == name {
			t.entries[i].value = v
			return true
		}
	}
	if len(t.entries) == cap(t.entries) {
		return false
	}
	t.entries = append(t.entries, varEntry{name: name, value: v})
	return true
}

func (t *varTable) get(name string) (Real, bool) {
	for i := range t.entries {
		if t.entries[i].name == name {
			return t.entries[i].value, true
		}
	}
	return nil, false
}

// lookup resolves a name the way the evaluator sees it: the built-in
// constants win over user entries. Any spelling the keyboard can produce
// resolves, upper case and the constant-key glyphs included.
func (t *varTable) lookup(ar Arith, name string) (Real, bool) {
	name = foldName(name)
	switch name {
	case "pi":
		return ar.Pi(), true
	case "e":
		return ar.E(), true
	case "phi":
		return ar.Phi(), true
	}
	return t.get(name)
}

// foldName lower-cases a name and rewrites the constant-key glyph bytes to
// the written-out names.
func foldName(name string) string {
	if len(name) == 1 {
		switch name[0] {
		case glyphPi:
			return "pi"
		case glyphPhi:
			return "phi"
		}
	}
	return strings.ToLower(name)
}

// names returns the defined variable names in insertion order.
func (t *varTable) names() []string {
	out := make([]string, len(t.entries))
	for i := range t.entries {
		out[i] = t.entries[i].name
	}
	return out
}
