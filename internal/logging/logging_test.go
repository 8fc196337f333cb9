package logging

import "testing"

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want Level
	}{
		{"debug", Debug},
		{"DEBUG", Debug},
		{"info", Info},
		{"", Info},
		{"warn", Warn},
		{"warning", Warn},
		{"error", Error},
		{"nonsense", Info},
	}
	for _, c := range cases {
		if got := parseLevel(c.in); got != c.want {
			t.Errorf("parseLevel(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestEnabledRespectsOrdering(t *testing.T) {
	old := current
	defer func() { current = old }()

	current = Warn
	if Enabled(Debug) {
		t.Errorf("debug should not be enabled when current is warn")
	}
	if Enabled(Info) {
		t.Errorf("info should not be enabled when current is warn")
	}
	if !Enabled(Warn) {
		t.Errorf("warn should be enabled when current is warn")
	}
	if !Enabled(Error) {
		t.Errorf("error should always be enabled above the current level")
	}
}
