package validation

import (
	"errors"
	"strings"
	"testing"
)

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr error
	}{
		{"valid", "meghadutam/meghadutam.json", nil},
		{"empty", "", ErrEmptyPath},
		{"too long", strings.Repeat("a", MaxPathLength+1), ErrPathTooLong},
		{"null byte", "a\x00b", ErrInvalidCharacter},
		{"control character", "a\x01b", ErrInvalidCharacter},
		{"devanagari is fine", "कुमारसम्भवम्/कुमारसम्भवम्.json", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.path)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidatePath(%q) = %v, want nil", tt.path, err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidatePath(%q) = %v, want %v", tt.path, err, tt.wantErr)
			}
		})
	}
}

func TestValidateDocumentPath(t *testing.T) {
	if err := ValidateDocumentPath("w/w.json"); err != nil {
		t.Errorf("ValidateDocumentPath(w/w.json) = %v, want nil", err)
	}
	if err := ValidateDocumentPath("w/notes.txt"); !errors.Is(err, ErrNotDocument) {
		t.Errorf("ValidateDocumentPath(w/notes.txt) = %v, want ErrNotDocument", err)
	}
}
