package wpconfig

import (
	"math"
	"testing"
)

func TestParseBool(t *testing.T) {
	cases := map[string]bool{
		"true":    true,
		"TRUE":    true,
		" yes ":   true,
		"On":      true,
		"1":       true,
		"false":   false,
		"0":       false,
		"no":      false,
		"off":     false,
		"":        false,
		"enabled": false,
		"2":       false,
	}
	for in, want := range cases {
		if got := ParseBool(in); got != want {
			t.Errorf("ParseBool(%q) = %v, want %v", in, got, want)
		}
		// idempotent
		if got := ParseBool(in); got != want {
			t.Errorf("ParseBool(%q) second call = %v, want %v", in, got, want)
		}
	}
}

func TestParseInt(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"6379", 6379},
		{"0", 0},
		{"abc", 0},
		{"", 0},
		{" 42", 42},
		{"12abc", 12},
		{"-3", -3},
		{"+5", 5},
		{"-", 0},
		{"99999999999999999999999", math.MaxInt},
		{"-99999999999999999999999", math.MinInt},
		{"1e3", 1000},
		{"1E+2", 100},
		{"1.5e3", 1500},
		{"2.7", 2},
		{"-2.7", -2},
		{".5", 0},
		{"1e", 1},
		{"e3", 0},
		{"1e400", math.MaxInt},
		{"-1e400", math.MinInt},
	}
	for _, tc := range cases {
		if got := ParseInt(tc.in); got != tc.want {
			t.Errorf("ParseInt(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestStrictParsers(t *testing.T) {
	if _, ok := parseBoolStrict("maybe"); ok {
		t.Fatalf("expected maybe to be rejected")
	}
	if v, ok := parseBoolStrict("OFF"); !ok || v {
		t.Fatalf("expected OFF to parse as false")
	}
	if _, ok := parseIntStrict("12abc"); ok {
		t.Fatalf("expected 12abc to be rejected")
	}
	if v, ok := parseIntStrict(" 6380 "); !ok || v != 6380 {
		t.Fatalf("expected 6380, got %d ok=%v", v, ok)
	}
}
