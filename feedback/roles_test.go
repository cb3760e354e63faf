package feedback

import "testing"

func TestRolesSwap(t *testing.T) {
	r := NewRoles()
	if r.Read() != 0 || r.Write() != 1 {
		t.Fatalf("initial roles = %v, want {0 1}", r)
	}

	for n := 1; n <= 8; n++ {
		r.Swap()
		if r.Read() == r.Write() {
			t.Fatalf("roles collapsed after %d swaps: %v", n, r)
		}
		wantRead := n % 2
		if r.Read() != wantRead {
			t.Errorf("after %d swaps read = %d, want %d", n, r.Read(), wantRead)
		}
	}
}
