package textutil

import "testing"

func TestNormalizeWhitespaces(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"hello\nworld", "hello world"},
		{"hello\r\nworld", "hello world"},
		{"a  b   c", "a b c"},
		{"plain", "plain"},
	}
	for _, tt := range tests {
		got := NormalizeWhitespaces(tt.input)
		if got != tt.want {
			t.Errorf("NormalizeWhitespaces(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNormalizeValue(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"  Paris   Texas \n", "paris texas"},
		{"LONDON", "london"},
		{"\tnorth\r\n", "north"},
		{"", ""},
	}
	for _, tt := range tests {
		got := NormalizeValue(tt.input)
		if got != tt.want {
			t.Errorf("NormalizeValue(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestIsAlpha(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"hello", true},
		{"café", true},
		{"Привет", true},
		{"hello1", false},
		{"two words", false},
		{"semi-colon", false},
		{"", false},
	}
	for _, tt := range tests {
		got := IsAlpha(tt.input)
		if got != tt.want {
			t.Errorf("IsAlpha(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
