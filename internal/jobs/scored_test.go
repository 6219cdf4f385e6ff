package jobs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteAll(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "scored-jobs.json")

	jobs := &ScoredJobs{Items: []*ScoredJob{
		{
			Posting: Posting{ID: "1", Title: "Python Developer", Company: "Acme", URL: "https://a.example/1?a=1&b=2"},
			Score:   9,
			ScoreBreakdown: Breakdown{
				Skills:    SkillsMatch{Score: 4, Matched: []string{"python"}, JobRequires: []string{"python"}},
				Title:     3,
				Penalties: []string{"crypto"},
			},
		},
	}}

	if err := WriteAll(Output{Path: path, Jobs: jobs}); err != nil {
		t.Fatalf("write: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	for _, want := range []string{`"score_breakdown"`, `"skills_match"`, `"penalties"`, `&b=2`, `"date_posted"`} {
		if !strings.Contains(string(raw), want) {
			t.Fatalf("expected %s in output:\n%s", want, raw)
		}
	}

	loaded, err := LoadScoredFromFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Len() != 1 || loaded.Items[0].Score != 9 || loaded.Items[0].ScoreBreakdown.Skills.Matched[0] != "python" {
		t.Fatalf("unexpected loaded jobs: %+v", loaded.Items)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected temp files to be cleaned up, got %d entries", len(entries))
	}
}

func TestScoredJobsEmptyListIsArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "all.json")

	if err := WriteAll(Output{Path: path, Jobs: &ScoredJobs{}}); err != nil {
		t.Fatalf("write: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if strings.TrimSpace(string(raw)) != "[]" {
		t.Fatalf("expected empty array, got %q", raw)
	}
}

func TestReportByCompany(t *testing.T) {
	jobs := &ScoredJobs{Items: []*ScoredJob{
		{Posting: Posting{Title: "Go Developer", Company: "Acme", URL: "u1"}, Score: 8.5},
		{Posting: Posting{Title: "Python Developer", Company: "Acme", URL: "u2"}, Score: 7},
		{Posting: Posting{Title: "Anything", URL: "u3"}, Score: 1},
	}}

	report := jobs.ReportByCompany()
	if len(report["Acme"]) != 2 {
		t.Fatalf("expected 2 entries for Acme, got %d", len(report["Acme"]))
	}
	if report["Acme"][0]["score"] != "8.5" {
		t.Fatalf("unexpected score: %q", report["Acme"][0]["score"])
	}
	if len(report["unknown"]) != 1 {
		t.Fatalf("expected unknown company bucket")
	}
}

func TestWriteAllFileMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scored-jobs.json")

	if err := WriteAll(Output{Path: path, Jobs: &ScoredJobs{}}); err != nil {
		t.Fatalf("write: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0o644 {
		t.Fatalf("expected mode 0644, got %v", info.Mode().Perm())
	}
}

func TestWriteAllKeepsExistingFilesOnError(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.json")
	if err := os.WriteFile(first, []byte("previous"), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}

	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}

	err := WriteAll(
		Output{Path: first, Jobs: &ScoredJobs{}},
		Output{Path: filepath.Join(blocker, "second.json"), Jobs: &ScoredJobs{}},
	)
	if err == nil {
		t.Fatalf("expected error when a target directory cannot be created")
	}

	raw, err := os.ReadFile(first)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(raw) != "previous" {
		t.Fatalf("expected first file untouched, got %q", raw)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected temp files to be cleaned up, got %d entries", len(entries))
	}
}
