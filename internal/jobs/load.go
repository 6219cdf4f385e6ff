// Package jobs holds the job posting model, loads the scraped job list and
// persists scored results.
package jobs

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/xeipuuv/gojsonschema"
)

// rawListSchema only pins the shape of the list. Field types are left open so
// a bad field degrades a single record instead of the whole run.
const rawListSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "properties": {
      "id": {},
      "title": {},
      "company": {},
      "location": {},
      "url": {},
      "description": {},
      "salary": {},
      "date_posted": {},
      "source": {},
      "scraped_at": {}
    }
  }
}`

var rawListLoader = gojsonschema.NewStringLoader(rawListSchema)

// FieldError is a single schema violation.
type FieldError struct {
	Field   string
	Message string
}

// SchemaError reports a job list that does not have the expected shape.
type SchemaError struct {
	Path   string
	Errors []FieldError
}

func (e *SchemaError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "job list %s does not match the expected shape:", e.Path)
	for i, fe := range e.Errors {
		fmt.Fprintf(&sb, "\n  %d. %s: %s", i+1, fe.Field, fe.Message)
	}
	return sb.String()
}

// LoadFile reads the raw job list written by the scraper. A missing,
// unparseable or wrongly shaped file is an error; a record with bad fields is
// kept with whatever decoded and noted in Postings.Degraded.
func LoadFile(path string) (*Postings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading job list: %w", err)
	}

	result, err := gojsonschema.Validate(rawListLoader, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing job list %s: %w", path, err)
	}
	if !result.Valid() {
		se := &SchemaError{Path: path}
		for _, re := range result.Errors() {
			se.Errors = append(se.Errors, FieldError{Field: re.Field(), Message: re.Description()})
		}
		return nil, se
	}

	var records []map[string]any
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decoding job list %s: %w", path, err)
	}

	postings := &Postings{Items: make([]*Posting, 0, len(records))}
	for i, record := range records {
		p, err := decodePosting(record)
		if err != nil {
			postings.Degraded = append(postings.Degraded, fmt.Sprintf("record %d (%s): %v", i, p.URL, err))
		}
		postings.Items = append(postings.Items, p)
	}

	return postings, nil
}

func decodePosting(record map[string]any) (*Posting, error) {
	p := &Posting{}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           p,
	})
	if err != nil {
		return p, err
	}

	err = decoder.Decode(record)
	if p.ID == "" && p.URL != "" {
		p.ID = IDFromURL(p.URL)
	}
	return p, err
}
