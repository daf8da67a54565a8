package pool

import "testing"

func TestIntBufferPoolGetLength(t *testing.T) {
	p := NewIntBufferPool(4)
	for _, n := range []int{0, 3, 4, 17} {
		buf := p.Get(n)
		if len(*buf) != n {
			t.Errorf("Get(%d) returned length %d", n, len(*buf))
		}
		p.Put(buf)
	}
}

func TestCaserPoolString(t *testing.T) {
	p := NewLowerCaserPool()
	tests := []struct {
		in, want string
	}{
		{"A Cat SAT", "a cat sat"},
		{"", ""},
		{"ÉCOLE", "école"},
	}
	for _, tc := range tests {
		if got := p.String(tc.in); got != tc.want {
			t.Errorf("String(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
