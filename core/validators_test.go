package core

import "testing"

func TestIsGhanaPhone(t *testing.T) {
	tests := []struct {
		name  string
		phone string
		want  bool
	}{
		{name: "local format", phone: "0241234567", want: true},
		{name: "international format", phone: "+233241234567", want: true},
		{name: "whitespace is ignored", phone: "024 123 4567", want: true},
		{name: "international with spaces", phone: "+233 24 123 4567", want: true},
		{name: "too short", phone: "024123456", want: false},
		{name: "too long", phone: "02412345678", want: false},
		{name: "bad prefix", phone: "1241234567", want: false},
		{name: "bad country code", phone: "+234241234567", want: false},
		{name: "letters", phone: "024123456a", want: false},
		{name: "empty", phone: "", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsGhanaPhone(tt.phone); got != tt.want {
				t.Errorf("IsGhanaPhone(%q) = %v, want %v", tt.phone, got, tt.want)
			}
		})
	}
}

func TestCleanString(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		lower bool
		want  string
	}{
		{name: "trims space", in: "  hello  ", want: "hello"},
		{name: "lowers", in: " HeLLo ", lower: true, want: "hello"},
		{name: "untouched", in: "hello", want: "hello"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			if tt.lower {
				got = CleanString(tt.in, true)
			} else {
				got = CleanString(tt.in)
			}
			if got != tt.want {
				t.Errorf("CleanString(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
