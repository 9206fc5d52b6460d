package cli

import (
	"testing"
	"time"
)

func TestFormatPrice(t *testing.T) {
	cases := []struct {
		price    float64
		expected string
	}{
		{10.45058, "10.4506"},
		{105.5, "105.5000"},
		{10, "10.0000"},
		{5.573526, "5.573526"},
		{0.0001234, "0.000123"},
		{0, "0.000000"},
	}

	for _, tc := range cases {
		t.Run(tc.expected, func(t *testing.T) {
			if got := FormatPrice(tc.price); got != tc.expected {
				t.Errorf("FormatPrice(%v) = %s, want %s", tc.price, got, tc.expected)
			}
		})
	}
}

func TestFormatGreek(t *testing.T) {
	if got := FormatGreek(-0.363169); got != "-0.363169" {
		t.Errorf("FormatGreek = %s, want -0.363169", got)
	}
	if got := FormatGreek(0.0187620173); got != "0.018762" {
		t.Errorf("FormatGreek = %s, want 0.018762", got)
	}
}

func TestFormatVolAndRate(t *testing.T) {
	if got := FormatVol(0.2); got != "20.0000%" {
		t.Errorf("FormatVol(0.2) = %s, want 20.0000%%", got)
	}
	if got := FormatVol(0.123456); got != "12.3456%" {
		t.Errorf("FormatVol(0.123456) = %s, want 12.3456%%", got)
	}
	if got := FormatRate(0.05); got != "5.00%" {
		t.Errorf("FormatRate(0.05) = %s, want 5.00%%", got)
	}
	if got := FormatRate(-0.005); got != "-0.50%" {
		t.Errorf("FormatRate(-0.005) = %s, want -0.50%%", got)
	}
}

func TestFormatMaturity(t *testing.T) {
	if got := FormatMaturity(0.25); got != "0.2500y" {
		t.Errorf("FormatMaturity(0.25) = %s, want 0.2500y", got)
	}
}

func TestFormatDateTime(t *testing.T) {
	ts := time.Date(2026, 8, 20, 9, 30, 15, 0, time.Local)
	if got := FormatDateTime(ts); got != "20-Aug-2026 09:30:15" {
		t.Errorf("FormatDateTime = %s", got)
	}
}

func TestTruncateString(t *testing.T) {
	cases := []struct {
		in       string
		maxLen   int
		expected string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"a longer string", 10, "a longe..."},
		{"abc", 3, "abc"},
		{"abcd", 3, "abc"},
		{"abcd", 2, "ab"},
	}

	for _, tc := range cases {
		if got := TruncateString(tc.in, tc.maxLen); got != tc.expected {
			t.Errorf("TruncateString(%q, %d) = %q, want %q", tc.in, tc.maxLen, got, tc.expected)
		}
	}
}
