package ranking

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/job-ranker/internal/jobs"
	"github.com/spigell/job-ranker/internal/ledger"
	"github.com/spigell/job-ranker/internal/profile"
	"github.com/spigell/job-ranker/internal/scoring"
	"github.com/spigell/job-ranker/internal/skills"
)

func testProfile() *profile.Profile {
	return &profile.Profile{
		Preferences: &profile.Preferences{
			TargetRoles:       []string{"python developer"},
			RequiredLocations: []string{"eindhoven"},
			Avoid:             []string{"unpaid internship"},
			MinSalaryAnnual:   50000,
		},
		ResumeSkills: skills.NewSet("python", "docker", "azure"),
	}
}

func testPostings() []*jobs.Posting {
	return []*jobs.Posting{
		{ID: "1", Title: "Barista", Location: "Lisbon", URL: "https://jobs.example/1"},
		{ID: "2", Title: "Python Developer", Location: "Remote", Description: "We use Python, Docker and Azure", URL: "https://jobs.example/2"},
		{ID: "3", Title: "Python Developer", Location: "Eindhoven", Description: "Python and Docker", URL: "https://jobs.example/3"},
		{ID: "4", Title: "Python Developer", Location: "Remote", Description: "Python, Docker, Azure. Unpaid internship.", URL: "https://jobs.example/4"},
		{ID: "5", Title: "Java Developer", Location: "Amsterdam, Netherlands", Description: "Java, Spring", URL: "https://jobs.example/5"},
		{ID: "6", Title: "Barista", Location: "Porto", URL: "https://jobs.example/6"},
	}
}

func ids(items []*jobs.ScoredJob) []string {
	out := make([]string, 0, len(items))
	for _, j := range items {
		out = append(out, j.ID)
	}
	return out
}

func TestRank(t *testing.T) {
	res := Rank(testPostings(), ledger.URLSet{}, testProfile(), DefaultMinScore, nil)

	require.Equal(t, 6, res.All.Len())
	assert.Equal(t, []string{"2", "3", "4", "5", "1", "6"}, ids(res.All.Items))
	assert.Equal(t, []string{"2", "3", "4"}, ids(res.Shortlist.Items))
	assert.Empty(t, res.Excluded)

	assert.Equal(t, 9.0, res.All.Items[0].Score)
	assert.Equal(t, 7.0, res.All.Items[2].Score)
}

func TestRankExcludesAppliedURLs(t *testing.T) {
	applied := ledger.URLSet{
		"https://jobs.example/2":  {},
		"https://jobs.example/3/": {},
	}

	res := Rank(testPostings(), applied, testProfile(), DefaultMinScore, nil)

	assert.Equal(t, []string{"https://jobs.example/2"}, res.Excluded)
	assert.NotContains(t, ids(res.All.Items), "2")
	assert.NotContains(t, ids(res.Shortlist.Items), "2")
	assert.Contains(t, ids(res.All.Items), "3", "urls are matched exactly")
}

func TestRankProperties(t *testing.T) {
	postings := testPostings()
	for i := 0; i < 20; i++ {
		postings = append(postings, &jobs.Posting{
			ID:          fmt.Sprintf("gen-%d", i),
			Title:       []string{"Python Developer", "Data Engineer", "Support"}[i%3],
			Location:    []string{"Remote", "Eindhoven", "Berlin", ""}[i%4],
			Description: []string{"python docker", "azure kafka redis", "", "unpaid internship python"}[i%4],
			Salary:      []string{"", "€3.000", "€70,000", "n/a"}[i%4],
			URL:         fmt.Sprintf("https://jobs.example/gen/%d", i),
		})
	}
	applied := ledger.URLSet{"https://jobs.example/gen/3": {}, "https://jobs.example/5": {}}
	minScore := 6.5

	res := Rank(postings, applied, testProfile(), minScore, scoring.New(scoring.Options{}))

	for i, job := range res.All.Items {
		assert.GreaterOrEqual(t, job.Score, scoring.MinScore)
		assert.LessOrEqual(t, job.Score, scoring.MaxScore)
		assert.False(t, applied.Has(job.URL))
		if i > 0 {
			assert.GreaterOrEqual(t, res.All.Items[i-1].Score, job.Score, "sorted non-increasing")
		}
	}

	var expectShortlist []string
	for _, job := range res.All.Items {
		if job.Score >= minScore {
			expectShortlist = append(expectShortlist, job.ID)
		}
	}
	assert.Equal(t, expectShortlist, ids(res.Shortlist.Items))

	again := Rank(postings, applied, testProfile(), minScore, nil)
	first, err := json.Marshal(res)
	require.NoError(t, err)
	second, err := json.Marshal(again)
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second), "ranking is deterministic")
}

func TestRankDoesNotMutateInput(t *testing.T) {
	postings := testPostings()
	before, err := json.Marshal(postings)
	require.NoError(t, err)

	Rank(postings, ledger.URLSet{"https://jobs.example/1": {}}, testProfile(), DefaultMinScore, nil)

	after, err := json.Marshal(postings)
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
	assert.Equal(t, "1", postings[0].ID)
}

func TestRankEmpty(t *testing.T) {
	res := Rank(nil, nil, testProfile(), DefaultMinScore, nil)
	assert.Equal(t, 0, res.All.Len())
	assert.Equal(t, 0, res.Shortlist.Len())
	assert.Empty(t, res.Top(10))
}

func TestResultTopAndSave(t *testing.T) {
	res := Rank(testPostings(), ledger.URLSet{}, testProfile(), DefaultMinScore, nil)

	assert.Equal(t, []string{"2", "3"}, ids(res.Top(2)))
	assert.Len(t, res.Top(100), 6)

	dir := t.TempDir()
	shortlist := filepath.Join(dir, "data", "scored-jobs.json")
	all := filepath.Join(dir, "data", "all-scored-jobs.json")
	require.NoError(t, res.Save(shortlist, all))

	loaded, err := jobs.LoadScoredFromFile(shortlist)
	require.NoError(t, err)
	assert.Equal(t, []string{"2", "3", "4"}, ids(loaded.Items))

	raw, err := os.ReadFile(all)
	require.NoError(t, err)
	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Len(t, decoded, 6)
	assert.Contains(t, decoded[0], "score_breakdown")
}

func TestSaveWritesNothingWhenOneOutputFails(t *testing.T) {
	res := Rank(testPostings(), ledger.URLSet{}, testProfile(), DefaultMinScore, nil)

	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("not a directory"), 0o644))

	shortlist := filepath.Join(dir, "scored-jobs.json")
	all := filepath.Join(blocker, "all-scored-jobs.json")

	require.Error(t, res.Save(shortlist, all))

	_, err := os.Stat(shortlist)
	assert.True(t, os.IsNotExist(err), "shortlist must not be written when the full list fails")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "only the blocker file is expected, temp files must be removed")
}
