package jobs

import (
	"path/filepath"
	"reflect"
	"testing"
)

func samplePostings() *Postings {
	return &Postings{Items: []*Posting{
		{ID: "1", URL: "https://a.example/1", Company: "Acme"},
		{ID: "2", URL: "https://a.example/2", Company: "Globex"},
		{ID: "3", URL: "https://a.example/3", Company: "acme"},
		{ID: "4", URL: "https://a.example/4", Company: "Initech"},
	}}
}

func urls(p *Postings) []string {
	out := make([]string, 0, p.Len())
	for _, item := range p.Items {
		out = append(out, item.URL)
	}
	return out
}

func TestExcludePreservesOrder(t *testing.T) {
	p := samplePostings()

	excluded := p.ExcludeURLs([]string{"https://a.example/3", "https://a.example/1", "https://a.example/1/"})

	if !reflect.DeepEqual(excluded, []string{"https://a.example/1", "https://a.example/3"}) {
		t.Fatalf("unexpected excluded list: %v", excluded)
	}
	if !reflect.DeepEqual(urls(p), []string{"https://a.example/2", "https://a.example/4"}) {
		t.Fatalf("unexpected remaining list: %v", urls(p))
	}
}

func TestExcludeFuncDoesNotAliasInput(t *testing.T) {
	p := samplePostings()
	original := p.Items

	p.ExcludeFunc(func(item *Posting) bool { return item.ID == "1" })

	if original[0].ID != "1" || len(original) != 4 {
		t.Fatalf("expected original slice untouched, got %v", original)
	}
	if p.Len() != 3 {
		t.Fatalf("expected 3 postings left, got %d", p.Len())
	}
}

func TestExcludedJobsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exclude.json")

	excluded := samplePostings().ToExcluded()
	if err := excluded.ToFile(path); err != nil {
		t.Fatalf("write exclude file: %v", err)
	}

	loaded, err := GetExcludedJobsFromFile(path)
	if err != nil {
		t.Fatalf("read exclude file: %v", err)
	}
	if len(loaded.URLs()) != 4 || loaded.URLs()[1] != "https://a.example/2" {
		t.Fatalf("unexpected urls: %v", loaded.URLs())
	}
}

func TestPostingText(t *testing.T) {
	p := &Posting{Title: "Go Developer", Description: "Build APIs", Company: "ACME"}
	if got := p.Text(); got != "go developer build apis acme" {
		t.Fatalf("unexpected text: %q", got)
	}
}

func TestPlainText(t *testing.T) {
	got := PlainText("<p>We use <strong>Go</strong></p>\n<ul><li>Kafka</li></ul>")
	if got != "We use GoKafka" && got != "We use Go Kafka" {
		t.Fatalf("unexpected plain text: %q", got)
	}

	if got := PlainText("  plain   text "); got != "plain text" {
		t.Fatalf("unexpected plain text: %q", got)
	}
}
