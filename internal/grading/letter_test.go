package grading

import "testing"

func TestLetterFromText(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"12", "A+"},
		{"10.1", "A+"},
		{"10.09", "A"},
		{"9.5", "A"},
		{"9.49", "B+"},
		{"8.5", "B+"},
		{"8.0", "B"},
		{"7.9", "C"},
		{"7.5", "C"},
		{"7.0", "C-"},
		{"6.5", "D"},
		{"6.0", "D"},
		{"4.0", "D-"},
		{"3.99", "F"},
		{"0", "F"},
		{"-1", "F"},
		{"", "-"},
		{"n/a", "-"},
		{"7,5", "-"},
	}

	for _, tt := range tests {
		if got := LetterFromText(tt.raw); got != tt.want {
			t.Errorf("LetterFromText(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestLetterNilIsAbsent(t *testing.T) {
	if got := Letter(nil); got != Absent {
		t.Errorf("Letter(nil) = %q, want %q", got, Absent)
	}

	raw := "9.5"
	if got := Letter(&raw); got != "A" {
		t.Errorf(`Letter(&"9.5") = %q, want "A"`, got)
	}
}
