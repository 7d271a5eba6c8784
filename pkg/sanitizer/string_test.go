package sanitizer

import "testing"

func TestTrimAndNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"already clean", "Ada Lovelace", "Ada Lovelace"},
		{"leading and trailing", "  Ada Lovelace  ", "Ada Lovelace"},
		{"interior run", "Ada    Lovelace", "Ada Lovelace"},
		{"tabs and newlines", "Ada\t\n Lovelace", "Ada Lovelace"},
		{"only whitespace", " \t\n ", ""},
		{"empty", "", ""},
		{"accented characters kept", "  Niccolò   dell'Arca ", "Niccolò dell'Arca"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TrimAndNormalize(tt.input); got != tt.want {
				t.Errorf("TrimAndNormalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
