package inputs

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	filled := filepath.Join(dir, "resume.md")
	if err := os.WriteFile(filled, []byte("# Resume\nGo developer\n"), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	blank := filepath.Join(dir, "blank.md")
	if err := os.WriteFile(blank, []byte("  \n\t"), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	content, err := Load(Source{Name: "resume", File: filled})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(content, "Go developer") {
		t.Fatalf("unexpected content: %q", content)
	}

	_, err = Load(Source{Name: "resume", File: blank})
	if err == nil || !strings.Contains(err.Error(), "is empty") {
		t.Fatalf("expected empty file error, got %v", err)
	}

	_, err = Load(Source{Name: "preferences document", File: filepath.Join(dir, "nope.md")})
	if !errors.Is(err, ErrMissing) {
		t.Fatalf("expected ErrMissing, got %v", err)
	}
	if !strings.Contains(err.Error(), "preferences document") {
		t.Fatalf("expected error to name the document, got %v", err)
	}

	_, err = Load(Source{File: "  "})
	if err == nil || err.Error() != "document is not configured" {
		t.Fatalf("unexpected error for unconfigured source: %v", err)
	}
}
