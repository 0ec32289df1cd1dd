package search

import "testing"

func TestPattern(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Latte", "%latte%"},
		{"  Iced Tea ", "%iced tea%"},
		{"50%", `%50\%%`},
		{"cold_brew", `%cold\_brew%`},
		{`a\b`, `%a\\b%`},
		{"", "%%"},
	}
	for _, tt := range tests {
		if got := Pattern(tt.in); got != tt.want {
			t.Errorf("Pattern(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
