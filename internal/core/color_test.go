package core

import "testing"

func TestParseColor(t *testing.T) {
	tests := []struct {
		in       string
		expected Color
	}{
		{"red", ColorRed},
		{"  Red ", ColorRed},
		{"#FF0000", "#ff0000"},
		{"#0f0", "#0f0"},
		{"0x00ff00", "#00ff00"},
		{"208", ColorOrange},
		{"#12345", ColorDefault},
		{"#zzzzzz", ColorDefault},
		{"chartreuse-ish", ColorDefault},
		{"", ColorDefault},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			if got := ParseColor(tc.in); got != tc.expected {
				t.Errorf("ParseColor(%q) = %q, expected %q", tc.in, got, tc.expected)
			}
		})
	}
}
