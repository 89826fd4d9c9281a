package order

import "testing"

func TestIsValid(t *testing.T) {
	for _, d := range []Direction{Asc, Desc} {
		if !d.IsValid() {
			t.Errorf("%q.IsValid() = false, want true", d)
		}
	}
	for _, d := range []Direction{"", "up", "ASC"} {
		if d.IsValid() {
			t.Errorf("%q.IsValid() = true, want false", d)
		}
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Direction
	}{
		{"", Asc},
		{"asc", Asc},
		{"DESC", Desc},
		{" desc ", Desc},
		{"-1", Desc},
		{"descending", Desc},
		{"sideways", Asc},
	}
	for _, tt := range tests {
		if got := Parse(tt.in); got != tt.want {
			t.Errorf("Parse(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestApply(t *testing.T) {
	if Asc.Apply(-1) != -1 || Desc.Apply(-1) != 1 || Desc.Apply(0) != 0 {
		t.Error("Apply() flipped incorrectly")
	}
}
