package theme

import "testing"

func TestByName(t *testing.T) {
	if got := ByName("tokyo-night"); got.Name != "tokyo-night" {
		t.Errorf("ByName(tokyo-night) = %q", got.Name)
	}
	if got := ByName("nope"); got.Name != FlexokiDark.Name {
		t.Errorf("unknown theme should fall back, got %q", got.Name)
	}
	if len(Names()) != len(All) {
		t.Errorf("Names() has %d entries, want %d", len(Names()), len(All))
	}
}

func TestStatus(t *testing.T) {
	th := FlexokiDark
	tests := []struct {
		pct  float64
		want string
	}{
		{10, string(th.Green)},
		{80, string(th.Orange)},
		{100, string(th.Orange)},
		{100.5, string(th.Red)},
	}
	for _, tt := range tests {
		if got := string(th.Status(tt.pct)); got != tt.want {
			t.Errorf("Status(%v) = %s, want %s", tt.pct, got, tt.want)
		}
	}
}

func TestDim(t *testing.T) {
	th := FlexokiDark
	if got := th.Dim("#4385BE", 0); string(got) != "#4385be" {
		t.Errorf("Dim(0) = %s, want the input color", got)
	}
	if got := th.Dim("#4385BE", 1); string(got) != "#100f0f" {
		t.Errorf("Dim(1) = %s, want the background", got)
	}
	if got := th.Dim("blue", 0.5); string(got) != "blue" {
		t.Errorf("Dim(non-hex) = %s, want passthrough", got)
	}
}
