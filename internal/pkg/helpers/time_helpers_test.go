package helpers

import (
	"testing"
	"time"
)

func TestParseDuration(t *testing.T) {
	fallback := 7 * time.Second

	tests := []struct {
		in   string
		want time.Duration
	}{
		{"30s", 30 * time.Second},
		{"1h", time.Hour},
		{"250ms", 250 * time.Millisecond},
		{"", fallback},
		{"soon", fallback},
		{"0s", fallback},
		{"-5s", fallback},
	}

	for _, tt := range tests {
		if got := ParseDuration(tt.in, fallback); got != tt.want {
			t.Errorf("ParseDuration(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
