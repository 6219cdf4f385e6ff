package jobs

import (
	"encoding/json"
	"os"
	"time"
)

// ExcludedJobs is the manual exclude file: jobs the user never wants to see
// ranked again, independent of the application ledger.
type ExcludedJobs struct {
	Items []*ExcludedJob
}

type ExcludedJob struct {
	URL        string    `json:"url"`
	Company    string    `json:"company,omitempty"`
	Title      string    `json:"title,omitempty"`
	ExcludedAt time.Time `json:"excluded_at"`
}

func (v *Postings) ToExcluded() *ExcludedJobs {
	excluded := &ExcludedJobs{}
	for _, p := range v.Items {
		excluded.Items = append(excluded.Items, &ExcludedJob{
			URL:        p.URL,
			Company:    p.Company,
			Title:      p.Title,
			ExcludedAt: time.Now().UTC(),
		})
	}
	return excluded
}

// GetExcludedJobsFromFile reads an exclude file. An empty file is an empty list.
func GetExcludedJobsFromFile(path string) (*ExcludedJobs, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, err
	}

	if stat.Size() == 0 {
		return &ExcludedJobs{}, nil
	}

	var excluded ExcludedJobs
	if err := json.NewDecoder(file).Decode(&excluded); err != nil {
		return nil, err
	}
	return &excluded, nil
}

func (v *ExcludedJobs) Append(s *ExcludedJobs) {
	v.Items = append(v.Items, s.Items...)
}

func (v *ExcludedJobs) URLs() []string {
	urls := make([]string, 0, len(v.Items))
	for _, j := range v.Items {
		urls = append(urls, j.URL)
	}
	return urls
}

func (v *ExcludedJobs) ToFile(path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
