package utils

import (
	"math"
	"testing"
)

func TestIsPowerOfTwo(t *testing.T) {
	tests := []struct {
		n    int
		want bool
	}{
		{-4, false},
		{0, false},
		{1, true},
		{2, true},
		{3, false},
		{64, true},
		{65, false},
		{1 << 30, true},
	}
	for _, tt := range tests {
		if got := IsPowerOfTwo(tt.n); got != tt.want {
			t.Errorf("IsPowerOfTwo(%d) = %v, want %v", tt.n, got, tt.want)
		}
	}
}

func TestCeilToPowerOfTwo(t *testing.T) {
	tests := []struct {
		name    string
		n       int
		want    int
		wantErr bool
	}{
		{"below_floor", 0, 2, false},
		{"floor", 2, 2, false},
		{"exact", 64, 64, false},
		{"rounds_up", 65, 128, false},
		{"just_above_power", 1025, 2048, false},
		{"large", 1<<40 + 1, 1 << 41, false},
		{"too_large", math.MaxInt, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CeilToPowerOfTwo(tt.n)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CeilToPowerOfTwo(%d) error = %v, wantErr %v", tt.n, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("CeilToPowerOfTwo(%d) = %d, want %d", tt.n, got, tt.want)
			}
		})
	}
}
