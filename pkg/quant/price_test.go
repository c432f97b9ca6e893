package quant

import (
	"testing"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		input    string
		expected PriceE8
		ok       bool
	}{
		{"13.46", 1346000000, true},
		{"0.00000001", 1, true},
		{"100", 10000000000, true},
		{"-1.5", -150000000, true},
		{"5.510000000", 551000000, true}, // 9 digits still rounds cleanly
		{"", 0, false},
		{"n/a", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParsePrice(tt.input)
		if ok != tt.ok {
			t.Errorf("ParsePrice(%q) ok = %v; want %v", tt.input, ok, tt.ok)
			continue
		}
		if got != tt.expected {
			t.Errorf("ParsePrice(%q) = %d; want %d", tt.input, got, tt.expected)
		}
	}
}

func TestPriceE8_String(t *testing.T) {
	tests := []struct {
		input    PriceE8
		expected string
	}{
		{1346000000, "13.46000000"},
		{1, "0.00000001"},
		{0, "0.00000000"},
		{-150000000, "-1.50000000"},
	}

	for _, tt := range tests {
		if got := tt.input.String(); got != tt.expected {
			t.Errorf("PriceE8(%d).String() = %s; want %s", tt.input, got, tt.expected)
		}
	}
}

// FuzzParsePrice verifies that any price we can render parses back to
// the same fixed-point value.
func FuzzParsePrice(f *testing.F) {
	f.Add(int64(1346000000))
	f.Add(int64(0))
	f.Add(int64(-1))
	f.Add(int64(1))

	f.Fuzz(func(t *testing.T, raw int64) {
		p := PriceE8(raw)
		back, ok := ParsePrice(p.String())
		if !ok {
			t.Fatalf("rendered price %q did not parse", p.String())
		}
		if back != p {
			t.Errorf("round trip mismatch: %d -> %q -> %d", p, p.String(), back)
		}
	})
}
