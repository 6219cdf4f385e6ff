package jobs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// SkillsMatch explains the skills sub-score.
type SkillsMatch struct {
	Score       float64  `json:"score"`
	Matched     []string `json:"matched,omitempty"`
	JobRequires []string `json:"job_requires,omitempty"`
	Note        string   `json:"note,omitempty"`
}

// Breakdown explains a composite score factor by factor.
type Breakdown struct {
	Skills    SkillsMatch `json:"skills_match"`
	Title     float64     `json:"title_match"`
	Location  float64     `json:"location_match"`
	Salary    float64     `json:"salary_match"`
	Industry  float64     `json:"industry_match"`
	Penalties []string    `json:"penalties,omitempty"`
}

// ScoredJob is a posting annotated with its score.
type ScoredJob struct {
	Posting
	Score          float64   `json:"score"`
	ScoreBreakdown Breakdown `json:"score_breakdown"`
}

// ScoredJobs is an ordered list of scored jobs.
type ScoredJobs struct {
	Items []*ScoredJob
}

func (s *ScoredJobs) Len() int {
	return len(s.Items)
}

// Postings returns the underlying postings in order.
func (s *ScoredJobs) Postings() *Postings {
	out := &Postings{Items: make([]*Posting, 0, len(s.Items))}
	for _, j := range s.Items {
		out.Items = append(out.Items, &j.Posting)
	}
	return out
}

// ReportByCompany groups jobs by company for a quick overview.
func (s *ScoredJobs) ReportByCompany() map[string][]map[string]string {
	report := make(map[string][]map[string]string)
	for _, job := range s.Items {
		key := job.Company
		if key == "" {
			key = "unknown"
		}
		report[key] = append(report[key], map[string]string{
			"title":    job.Title,
			"url":      job.URL,
			"location": job.Location,
			"salary":   job.Salary,
			"score":    fmt.Sprintf("%.1f", job.Score),
		})
	}
	return report
}

// Output pairs a list with the file it is written to.
type Output struct {
	Path string
	Jobs *ScoredJobs
}

// WriteAll writes each list as an indented JSON array. Parent directories are
// created. Every output is encoded to a temp file next to its target and
// renames them into place only after all of them were written. On error no
// target is touched.
func WriteAll(outputs ...Output) error {
	staged := make([]string, 0, len(outputs))
	defer func() {
		for _, name := range staged {
			os.Remove(name)
		}
	}()

	for _, out := range outputs {
		name, err := out.Jobs.stage(out.Path)
		if err != nil {
			return err
		}
		staged = append(staged, name)
	}

	for i, out := range outputs {
		if err := os.Rename(staged[i], out.Path); err != nil {
			return fmt.Errorf("replace %s: %w", out.Path, err)
		}
	}

	return nil
}

// stage writes the jobs to a temp file in the target's directory and
// returns its name.
func (s *ScoredJobs) stage(path string) (string, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return "", err
	}

	if err := s.encode(tmp); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", err
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}

	return tmp.Name(), nil
}

func (s *ScoredJobs) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "scored_jobs_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	if err := s.encode(file); err != nil {
		return "", err
	}
	return file.Name(), nil
}

func (s *ScoredJobs) encode(f *os.File) error {
	items := s.Items
	if items == nil {
		items = []*ScoredJob{}
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(items)
}

// LoadScoredFromFile reads a list written by ToFile.
func LoadScoredFromFile(path string) (*ScoredJobs, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var items []*ScoredJob
	if err := json.NewDecoder(file).Decode(&items); err != nil {
		return nil, fmt.Errorf("decode scored jobs %s: %w", path, err)
	}
	return &ScoredJobs{Items: items}, nil
}
