package jobs

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
)

// Posting is a scraped job listing. It is read-only input to scoring.
type Posting struct {
	ID          string `json:"id" mapstructure:"id"`
	Title       string `json:"title" mapstructure:"title"`
	Company     string `json:"company" mapstructure:"company"`
	Location    string `json:"location" mapstructure:"location"`
	URL         string `json:"url" mapstructure:"url"`
	Description string `json:"description" mapstructure:"description"`
	Salary      string `json:"salary" mapstructure:"salary"`
	DatePosted  string `json:"date_posted" mapstructure:"date_posted"`
	Source      string `json:"source" mapstructure:"source"`
	ScrapedAt   string `json:"scraped_at" mapstructure:"scraped_at"`
}

// Postings is an ordered list of job postings.
type Postings struct {
	Items []*Posting
	// Degraded lists records that were only partially decoded.
	Degraded []string
}

// IDFromURL derives a stable posting id the way the scraper does.
func IDFromURL(url string) string {
	sum := md5.Sum([]byte(url))
	return hex.EncodeToString(sum[:])[:12]
}

// Text is the lower-cased title, description and company used for matching.
func (p *Posting) Text() string {
	return strings.ToLower(p.Title + " " + p.Description + " " + p.Company)
}

func (v *Postings) Len() int {
	return len(v.Items)
}

// ExcludeURLs removes every posting whose URL equals one of urls exactly
// and returns the URLs of the removed postings. Order is preserved.
func (v *Postings) ExcludeURLs(urls []string) []string {
	set := make(map[string]struct{}, len(urls))
	for _, u := range urls {
		set[u] = struct{}{}
	}

	return v.ExcludeFunc(func(p *Posting) bool {
		_, ok := set[p.URL]
		return ok
	})
}

// ExcludeFunc removes every posting for which drop returns true and returns
// the URLs of the removed postings. Order is preserved.
func (v *Postings) ExcludeFunc(drop func(*Posting) bool) []string {
	var excluded []string
	kept := make([]*Posting, 0, len(v.Items))
	for _, p := range v.Items {
		if drop(p) {
			excluded = append(excluded, p.URL)
			continue
		}
		kept = append(kept, p)
	}
	v.Items = kept
	return excluded
}
