package cli

import (
	"testing"
	"time"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "$0.00"},
		{42.5, "$42.50"},
		{99.999, "$100.00"},
		{100, "$100"},
		{542.4, "$542"},
		{999.9, "$1000"},
		{1234, "$1,234"},
		{1234567.8, "$1,234,568"},
		{-42.5, "-$42.50"},
	}
	for _, tt := range tests {
		if got := FormatMoney(tt.in); got != tt.want {
			t.Errorf("FormatMoney(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatCZK(t *testing.T) {
	if got := FormatCZK(12345.6); got != "12,346 Kč" {
		t.Errorf("FormatCZK = %q, want %q", got, "12,346 Kč")
	}
}

func TestFormatHours(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0h"},
		{-1, "0h"},
		{2, "2h"},
		{7.25, "7h 15m"},
		{1.999, "2h"},
	}
	for _, tt := range tests {
		if got := FormatHours(tt.in); got != tt.want {
			t.Errorf("FormatHours(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{-1234, "-1,234"},
	}
	for _, tt := range tests {
		if got := FormatNumber(tt.in); got != tt.want {
			t.Errorf("FormatNumber(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatDelta(t *testing.T) {
	if got := FormatDelta(150, 100); got != "+$50.00" {
		t.Errorf("positive delta = %q, want +$50.00", got)
	}
	if got := FormatDelta(100, 150); got != "-$50.00" {
		t.Errorf("negative delta = %q, want -$50.00", got)
	}
}

func TestFormatDayOfWeek(t *testing.T) {
	if got := FormatDayOfWeek(time.Friday); got != "Fri" {
		t.Errorf("FormatDayOfWeek(Friday) = %q, want Fri", got)
	}
}
