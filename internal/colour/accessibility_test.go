package colour

import "testing"

func TestSimulations(t *testing.T) {
	red := RGB{R: 255}
	tests := []struct {
		name string
		fn   func(RGB) RGB
		want RGB
	}{
		{name: "protanopia", fn: SimulateProtanopia, want: RGB{R: 145, G: 142, B: 0}},
		{name: "deuteranopia", fn: SimulateDeuteranopia, want: RGB{R: 159, G: 179, B: 0}},
		{name: "tritanopia", fn: SimulateTritanopia, want: RGB{R: 242, G: 0, B: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn(red); maxChannelDelta(got, tt.want) > 1 {
				t.Errorf("simulate(red) = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestProfile(t *testing.T) {
	tests := []struct {
		name string
		c    RGB
		want AccessibilityProfile
	}{
		{
			name: "red shifts under red and green blindness",
			c:    RGB{R: 255},
			want: AccessibilityProfile{Normal: true, Protanopia: false, Deuteranopia: false, Tritanopia: true},
		},
		{
			name: "grey is unaffected",
			c:    RGB{R: 128, G: 128, B: 128},
			want: AccessibilityProfile{Normal: true, Protanopia: true, Deuteranopia: true, Tritanopia: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Profile(tt.c); got != tt.want {
				t.Errorf("Profile(%s) = %+v, want %+v", tt.c.Hex(), got, tt.want)
			}
		})
	}
}

func TestDefaultProfile(t *testing.T) {
	want := AccessibilityProfile{Normal: true}
	if got := DefaultProfile(); got != want {
		t.Errorf("DefaultProfile() = %+v, want %+v", got, want)
	}
}
