package errors

import (
	"math"
	"strings"
	"testing"
)

func TestValidateRamp(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"single glyph", "#", false},
		{"with space", "@. ", false},
		{"quotes and backtick", "\"^`'", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", MaxRampLen+1), true},
		{"newline", "ab\ncd", true},
		{"tab", "ab\tcd", true},
		{"delete", "ab\x7fcd", true},
		{"non-ascii", "ab▓cd", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRamp(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRamp(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateWidth(t *testing.T) {
	tests := []struct {
		width   int
		wantErr bool
	}{
		{1, false},
		{100, false},
		{MaxWidth, false},
		{0, true},
		{-5, true},
		{MaxWidth + 1, true},
	}

	for _, tt := range tests {
		err := ValidateWidth(tt.width)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateWidth(%d) error = %v, wantErr %v", tt.width, err, tt.wantErr)
		}
	}
}

func TestValidateSharpness(t *testing.T) {
	tests := []struct {
		factor  float64
		wantErr bool
	}{
		{0, false},
		{1, false},
		{1.8, false},
		{20, false},
		{-0.1, true},
		{MaxSharpness + 1, true},
		{math.NaN(), true},
	}

	for _, tt := range tests {
		err := ValidateSharpness(tt.factor)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateSharpness(%g) error = %v, wantErr %v", tt.factor, err, tt.wantErr)
		}
	}
}

func TestValidateFPS(t *testing.T) {
	if err := ValidateFPS(30); err != nil {
		t.Errorf("ValidateFPS(30) = %v", err)
	}
	if err := ValidateFPS(0); err == nil {
		t.Error("ValidateFPS(0) should fail")
	}
	if err := ValidateFPS(MaxFPS + 1); err == nil {
		t.Error("ValidateFPS above max should fail")
	}
	if !Is(ValidateFPS(-1), ErrCodeInvalidInput) {
		t.Error("ValidateFPS error should carry INVALID_INPUT")
	}
}

func TestValidateDevice(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"index", "0", false},
		{"video file", "/tmp/clip.mp4", false},
		{"rtsp url", "rtsp://camera.local/stream", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 501), true},
		{"null byte", "foo\x00bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDevice(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDevice(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestIsDeviceIndex(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"0", true},
		{"12", true},
		{" 1 ", true},
		{"", false},
		{"video.mp4", false},
		{"1234", false},
		{"-1", false},
	}

	for _, tt := range tests {
		if got := IsDeviceIndex(tt.input); got != tt.want {
			t.Errorf("IsDeviceIndex(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
