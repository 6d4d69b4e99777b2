package submissions

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestPageKeyExtension(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		contentType string
		ext         string
	}{
		{"image/jpeg", ".jpg"},
		{"image/png", ".png"},
		{"application/pdf", ".pdf"},
		{"image/webp", ".jpg"},
	}

	for _, tt := range tests {
		key := pageKey(id, 1, tt.contentType)
		if !strings.HasSuffix(key, tt.ext) {
			t.Errorf("pageKey(%q) = %q, want suffix %q", tt.contentType, key, tt.ext)
		}
		if !strings.HasPrefix(key, "submissions/"+id.String()+"/") {
			t.Errorf("pageKey(%q) = %q, want submission-scoped prefix", tt.contentType, key)
		}
	}
}

func TestPDFPageCountRejectsGarbage(t *testing.T) {
	if _, err := pdfPageCount([]byte("not a pdf at all")); err == nil {
		t.Fatal("expected error for non-pdf data")
	}
}
