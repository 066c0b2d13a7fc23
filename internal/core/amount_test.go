package core

import "testing"

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int64
	}{
		{name: "plain", in: "50000", want: 50000},
		{name: "dot separators", in: "1.500.000", want: 1500000},
		{name: "comma separators", in: "50,000", want: 50000},
		{name: "rp prefix", in: "Rp 50.000", want: 50000},
		{name: "negative", in: "-500", want: -500},
		{name: "empty coerces to zero", in: "", want: 0},
		{name: "garbage coerces to zero", in: "abc", want: 0},
		{name: "whitespace only", in: "   ", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseAmount(tt.in); got != tt.want {
				t.Errorf("ParseAmount(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatRupiah(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "Rp0"},
		{500, "Rp500"},
		{50000, "Rp50.000"},
		{1500000, "Rp1.500.000"},
		{-500, "-Rp500"},
		{-1500000, "-Rp1.500.000"},
	}

	for _, tt := range tests {
		if got := FormatRupiah(tt.in); got != tt.want {
			t.Errorf("FormatRupiah(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
