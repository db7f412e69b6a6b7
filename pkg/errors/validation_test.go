package errors

import (
	"strings"
	"testing"
)

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"https", "https://example.com/feed", false},
		{"http", "http://example.com/feed", false},

		{"empty", "", true},
		{"ftp", "ftp://example.com", true},
		{"file", "file:///etc/passwd", true},
		{"javascript", "javascript:alert(1)", true},
		{"relative", "/feeds/top", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "snapshot.json", false},
		{"nested", "fixtures/layout.toml", false},
		{"absolute", "/tmp/snapshot.yaml", false},

		{"empty", "", true},
		{"traversal", "../secrets.json", true},
		{"null byte", "snap\x00shot.json", true},
		{"newline", "snap\nshot.json", true},
		{"too long", strings.Repeat("a", 501), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePlacementName(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"newtab_spocs", false},
		{"sponsored-topsites", false},
		{"spocs2", false},

		{"", true},
		{"_leading", true},
		{"has space", true},
		{"dot.name", true},
		{strings.Repeat("p", 129), true},
	}

	for _, tt := range tests {
		err := ValidatePlacementName(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidatePlacementName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
		if err != nil && !Is(err, ErrCodeInvalidLayout) {
			t.Errorf("ValidatePlacementName(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidLayout)
		}
	}
}

func TestValidateSnapshotID(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"3f2504e0-4f89-41d3-9a0c-0305e82c3301", false},

		{"", true},
		{"3F2504E0-4F89-41D3-9A0C-0305E82C3301", true},
		{"../../etc/passwd", true},
		{"3f2504e0", true},
	}

	for _, tt := range tests {
		err := ValidateSnapshotID(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateSnapshotID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
	}
}
