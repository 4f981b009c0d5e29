package countries

import "testing"

func TestName(t *testing.T) {
	cases := []struct {
		code, want string
	}{
		{"au", "Australia"},
		{"AU", "Australia"},
		{"nz", "New Zealand"},
		{"zz", ""},
		{"", ""},
	}
	for _, c := range cases {
		if got := Name(c.code); got != c.want {
			t.Errorf("Name(%q) = %q, want %q", c.code, got, c.want)
		}
	}
}

func TestValid(t *testing.T) {
	if !Valid("gb") {
		t.Error("expected gb valid")
	}
	if Valid("xx") {
		t.Error("expected xx invalid")
	}
}
