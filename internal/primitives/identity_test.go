package primitives

import "testing"

func TestIdentityOf(t *testing.T) {
	type node struct{ v int }
	a, b := &node{1}, &node{1}
	s := []int{1, 2, 3}
	m := map[string]int{"k": 1}

	tests := []struct {
		name string
		x, y any
		ok   bool
		same bool
	}{
		{"same pointer", a, a, true, true},
		{"distinct pointers equal content", a, b, true, false},
		{"same slice", s, s, true, true},
		{"reslice differs", s, s[:2], true, false},
		{"same map", m, m, true, true},
		{"scalar has no identity", 42, 42, false, false},
		{"string has no identity", "x", "x", false, false},
		{"nil has no identity", nil, nil, false, false},
		{"empty slice has no identity", []int{}, []int{}, false, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ix, okx := IdentityOf(tc.x)
			iy, oky := IdentityOf(tc.y)
			if okx != tc.ok || oky != tc.ok {
				t.Fatalf("ok mismatch: got %v/%v, want %v", okx, oky, tc.ok)
			}
			if tc.ok && (ix == iy) != tc.same {
				t.Errorf("identity equality: got %v, want %v", ix == iy, tc.same)
			}
		})
	}
}
