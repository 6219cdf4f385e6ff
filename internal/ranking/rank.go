// Package ranking turns a job list into a score-ordered list and a shortlist.
package ranking

import (
	"sort"

	"github.com/spigell/job-ranker/internal/jobs"
	"github.com/spigell/job-ranker/internal/ledger"
	"github.com/spigell/job-ranker/internal/profile"
	"github.com/spigell/job-ranker/internal/scoring"
)

// DefaultMinScore is the shortlist threshold when none is configured.
const DefaultMinScore = 7.0

// Result holds the outcome of a ranking pass.
type Result struct {
	// All is every scored job, highest score first.
	All *jobs.ScoredJobs
	// Shortlist is the prefix of All with score >= the threshold.
	Shortlist *jobs.ScoredJobs
	// Excluded lists URLs skipped because they are in the application ledger.
	Excluded []string
}

// Rank excludes already applied jobs by exact URL, scores the rest, sorts them
// by score (stable, so equal scores keep input order) and cuts the shortlist.
// The input postings are not modified.
func Rank(postings []*jobs.Posting, applied ledger.URLSet, p *profile.Profile, minScore float64, scorer *scoring.Scorer) *Result {
	if scorer == nil {
		scorer = scoring.New(scoring.Options{})
	}

	res := &Result{
		All:       &jobs.ScoredJobs{Items: make([]*jobs.ScoredJob, 0, len(postings))},
		Shortlist: &jobs.ScoredJobs{Items: []*jobs.ScoredJob{}},
	}

	for _, posting := range postings {
		if posting == nil {
			continue
		}
		if applied.Has(posting.URL) {
			res.Excluded = append(res.Excluded, posting.URL)
			continue
		}
		scored := scorer.Score(*posting, p)
		res.All.Items = append(res.All.Items, &scored)
	}

	sort.SliceStable(res.All.Items, func(i, j int) bool {
		return res.All.Items[i].Score > res.All.Items[j].Score
	})

	for _, job := range res.All.Items {
		if job.Score >= minScore {
			res.Shortlist.Items = append(res.Shortlist.Items, job)
		}
	}

	return res
}

// Top returns at most n of the highest scored jobs.
func (r *Result) Top(n int) []*jobs.ScoredJob {
	if n > r.All.Len() {
		n = r.All.Len()
	}
	return r.All.Items[:n]
}

// Save writes the shortlist and the full ranked list. Either both files are
// replaced or neither is.
func (r *Result) Save(shortlistPath, allPath string) error {
	return jobs.WriteAll(
		jobs.Output{Path: shortlistPath, Jobs: r.Shortlist},
		jobs.Output{Path: allPath, Jobs: r.All},
	)
}
