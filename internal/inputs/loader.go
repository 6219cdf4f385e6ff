// Package inputs loads the documents a ranking run cannot proceed without.
package inputs

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrMissing is wrapped by Load when the document file does not exist.
var ErrMissing = errors.New("input is missing")

// Source describes how to load a document.
type Source struct {
	// Name is used in error messages to give more context about the document.
	Name string
	// File points to the document on disk.
	File string
}

// Load returns the content of the document. An error naming the document is
// returned when the file is not configured, missing, unreadable or blank.
func Load(src Source) (string, error) {
	name := strings.TrimSpace(src.Name)
	if name == "" {
		name = "document"
	}

	file := strings.TrimSpace(src.File)
	if file == "" {
		return "", fmt.Errorf("%s is not configured", name)
	}

	data, err := os.ReadFile(file)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%s file %q: %w", name, file, ErrMissing)
		}
		return "", fmt.Errorf("reading %s from file %q: %w", name, file, err)
	}

	if strings.TrimSpace(string(data)) == "" {
		return "", fmt.Errorf("%s file %q is empty", name, file)
	}

	return string(data), nil
}
