package nativemeas

import "testing"

func TestParseCodeAcceptsBothSpellings(t *testing.T) {
	cases := []struct {
		in   string
		want Code
	}{
		{"gross", Gross},
		{"two-gross", TwoGross},
		{"two_gross", TwoGross},
	}
	for _, c := range cases {
		got, err := ParseCode(c.in)
		if err != nil {
			t.Fatalf("ParseCode(%q): %v", c.in, err)
		}
		if got != c.want {
			t.Errorf("ParseCode(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestParseCodeRejectsUnknown(t *testing.T) {
	if _, err := ParseCode("surface"); err == nil {
		t.Fatalf("expected an error for an unrecognized code name")
	}
}
