package calcengine

import "testing"

func FuzzParse(f *testing.F) {
	f.Add("2+3*4")
	f.Add("-2^2!")
	f.Add("sin(0)+cos(0)")
	f.Add("sqrt(-1)")
	f.Add("1/0")
	f.Add("((((1))))")
	f.Add("2e+")
	f.Add("\xC4*\xD1")
	f.Fuzz(func(t *testing.T, src string) {
		a := newArena(DefaultArenaSize)
		root, err := parseString(Float64(), a, src)
		if err != nil {
			if _, ok := err.(InputError); !ok {
				t.Errorf("parsing %q: error %T lacks a position", src, err)
			}
			return
		}
		if int(root) != a.len()-1 {
			t.Errorf("parsing %q: root %d is not the last node", src, root)
		}
		for i := range a.nodes {
			n := &a.nodes[i]
			switch n.kind {
			case nodeBin:
				if int(n.left) >= i || int(n.right) >= i {
					t.Errorf("parsing %q: node %d has forward child", src, i)
				}
			case nodeFunc, nodeFact, nodeParen:
				if int(n.left) >= i {
					t.Errorf("parsing %q: node %d has forward child", src, i)
				}
			}
		}
	})
}
