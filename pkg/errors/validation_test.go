package errors

import "testing"

func TestValidateHexColor(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"upper", "#FFAA00", false},
		{"lower", "#ffaa00", false},
		{"mixed", "#1a2B3c", false},
		{"empty", "", true},
		{"missing hash", "FFAA00", true},
		{"short form", "#FA0", true},
		{"too long", "#FFAA0011", true},
		{"non hex", "#GGGGGG", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateHexColor(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateHexColor(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidColor) {
				t.Errorf("ValidateHexColor(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidColor)
			}
		})
	}
}

func TestValidateOutputPath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		ext     string
		wantErr bool
	}{
		{"pdf file", "out/deck.pdf", ".pdf", false},
		{"upper ext", "out/DECK.PDF", ".pdf", false},
		{"any ext", "out/card", "", false},
		{"empty", "", ".pdf", true},
		{"wrong ext", "out/deck.png", ".pdf", true},
		{"dot", ".", "", true},
		{"control char", "out/\x07.pdf", ".pdf", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputPath(tt.path, tt.ext)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOutputPath(%q, %q) error = %v, wantErr %v", tt.path, tt.ext, err, tt.wantErr)
			}
		})
	}
}

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Duplicate/Name", "duplicate_name"},
		{"Goblin Archer", "goblin_archer"},
		{"  Spaced  ", "spaced"},
		{`a\b:c`, "a_b_c"},
		{"..", "card"},
		{"", "card"},
		{"Ünïcode", "ünïcode"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := SanitizeFileName(tt.input); got != tt.want {
				t.Errorf("SanitizeFileName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
