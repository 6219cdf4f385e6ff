// Package ledger reads the application history used to exclude jobs that
// were already acted upon.
package ledger

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
)

// Application is a single ledger record. Only URL is required.
type Application struct {
	ID          string  `json:"id" mapstructure:"id"`
	Company     string  `json:"company" mapstructure:"company"`
	Role        string  `json:"role" mapstructure:"role"`
	URL         string  `json:"url" mapstructure:"url"`
	DateApplied string  `json:"date_applied" mapstructure:"date_applied"`
	Score       float64 `json:"score" mapstructure:"score"`
	Status      string  `json:"status" mapstructure:"status"`
	Notes       string  `json:"notes" mapstructure:"notes"`
}

type Applications []*Application

// URLSet holds URLs exactly as recorded. No normalisation is applied.
type URLSet map[string]struct{}

func (s URLSet) Has(url string) bool {
	_, ok := s[url]
	return ok
}

// Add merges other into s.
func (s URLSet) Add(other URLSet) {
	for url := range other {
		s[url] = struct{}{}
	}
}

// LoadFile reads a JSON ledger. A missing file is an empty ledger; a file
// that cannot be decoded is an error.
func LoadFile(path string) (Applications, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Applications{}, nil
		}
		return nil, fmt.Errorf("reading application ledger: %w", err)
	}

	var items []map[string]any
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decoding application ledger %s: %w", path, err)
	}

	apps := make(Applications, 0, len(items))
	for _, item := range items {
		app := &Application{}
		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			WeaklyTypedInput: true,
			Result:           app,
		})
		if err != nil {
			return nil, err
		}
		// A record with an odd optional field still excludes its url.
		if err := decoder.Decode(item); err != nil && app.URL == "" {
			continue
		}
		apps = append(apps, app)
	}

	return apps, nil
}

// URLs returns the URLs of all records that carry one, regardless of status.
func (a Applications) URLs() URLSet {
	set := make(URLSet, len(a))
	for _, app := range a {
		if app == nil || app.URL == "" {
			continue
		}
		set[app.URL] = struct{}{}
	}
	return set
}
