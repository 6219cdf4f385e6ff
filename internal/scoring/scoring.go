// Package scoring computes the composite match score of a job posting
// against the candidate profile.
package scoring

import (
	"math"
	"strings"

	"github.com/spigell/job-ranker/internal/jobs"
	"github.com/spigell/job-ranker/internal/profile"
	"github.com/spigell/job-ranker/internal/salary"
	"github.com/spigell/job-ranker/internal/skills"
)

// Factor limits.
const (
	MaxSkills   = 4.0
	MaxTitle    = 3.0
	MaxLocation = 1.5
	MaxSalary   = 1.0
	MaxIndustry = 0.5

	NeutralSkills = 2.0
	NeutralSalary = 0.5
	HomeCountry   = 0.75
	AvoidPenalty  = 2.0

	MinScore = 1.0
	MaxScore = 10.0

	skillsOverlapMultiplier = 5.0
	noSkillsNote            = "Could not determine skills"
)

// Options tune the location factor.
type Options struct {
	RemoteMarkers      []string `mapstructure:"remote-markers"`
	HomeCountryMarkers []string `mapstructure:"home-country-markers"`
}

// DefaultOptions returns the markers used when none are configured.
func DefaultOptions() Options {
	return Options{
		RemoteMarkers:      []string{"remote", "thuiswerk", "op afstand"},
		HomeCountryMarkers: []string{"netherlands", "nederland"},
	}
}

// Scorer scores postings. It holds no per-job state and is safe to reuse.
type Scorer struct {
	remote      []string
	homeCountry []string
}

// New builds a Scorer. Empty marker lists fall back to the defaults.
func New(opts Options) *Scorer {
	defaults := DefaultOptions()
	if len(opts.RemoteMarkers) == 0 {
		opts.RemoteMarkers = defaults.RemoteMarkers
	}
	if len(opts.HomeCountryMarkers) == 0 {
		opts.HomeCountryMarkers = defaults.HomeCountryMarkers
	}
	return &Scorer{
		remote:      lowerAll(opts.RemoteMarkers),
		homeCountry: lowerAll(opts.HomeCountryMarkers),
	}
}

// ScoreJob scores a posting with the default options.
func ScoreJob(job jobs.Posting, resumeSkills skills.Set, prefs *profile.Preferences) jobs.ScoredJob {
	return New(Options{}).score(job, resumeSkills, prefs)
}

// Score scores a posting against the profile.
func (s *Scorer) Score(job jobs.Posting, p *profile.Profile) jobs.ScoredJob {
	return s.score(job, p.ResumeSkills, p.Preferences)
}

func (s *Scorer) score(job jobs.Posting, resumeSkills skills.Set, prefs *profile.Preferences) jobs.ScoredJob {
	if prefs == nil {
		prefs = &profile.Preferences{MinSalaryAnnual: profile.DefaultMinSalaryAnnual}
	}

	text := job.Text()
	var b jobs.Breakdown

	skillsScore := s.skills(text, resumeSkills, &b.Skills)
	titleScore := titleMatch(job.Title, prefs.TargetRoles)
	locationScore := s.location(job.Location, prefs.RequiredLocations)
	salaryScore := salaryMatch(job.Salary, prefs.MinSalaryAnnual)
	industryScore := industryMatch(text, prefs.PreferredIndustries)

	b.Title = round1(titleScore)
	b.Location = round1(locationScore)
	b.Salary = round1(salaryScore)
	b.Industry = round1(industryScore)

	penalty := 0.0
	for _, term := range lowerAll(prefs.Avoid) {
		if term != "" && strings.Contains(text, term) {
			penalty += AvoidPenalty
			b.Penalties = append(b.Penalties, term)
		}
	}

	total := skillsScore + titleScore + locationScore + salaryScore + industryScore - penalty

	return jobs.ScoredJob{
		Posting:        job,
		Score:          round1(clamp(total, MinScore, MaxScore)),
		ScoreBreakdown: b,
	}
}

// skills rates overlap against the job's own skill count, so a job naming
// few skills scores as well as one naming many when all of them match.
func (s *Scorer) skills(text string, resumeSkills skills.Set, out *jobs.SkillsMatch) float64 {
	jobSkills := skills.Extract(text)
	if resumeSkills.Len() == 0 || jobSkills.Len() == 0 {
		*out = jobs.SkillsMatch{Score: NeutralSkills, Note: noSkillsNote}
		return NeutralSkills
	}

	overlap := resumeSkills.Intersect(jobSkills)
	ratio := float64(overlap.Len()) / float64(jobSkills.Len())
	score := math.Min(MaxSkills, ratio*skillsOverlapMultiplier)

	*out = jobs.SkillsMatch{
		Score:       round1(score),
		Matched:     overlap.Sorted(),
		JobRequires: jobSkills.Sorted(),
	}
	return score
}

// titleMatch keeps the best ratio of role words found in the title.
func titleMatch(title string, roles []string) float64 {
	title = strings.ToLower(title)
	best := 0.0
	for _, role := range roles {
		words := strings.Fields(strings.ToLower(role))
		if len(words) == 0 {
			continue
		}
		matches := 0
		for _, w := range words {
			if strings.Contains(title, w) {
				matches++
			}
		}
		best = math.Max(best, float64(matches)/float64(len(words))*MaxTitle)
	}
	return best
}

func (s *Scorer) location(location string, required []string) float64 {
	location = strings.ToLower(location)
	if containsAny(location, s.remote) {
		return MaxLocation
	}
	if containsAny(location, lowerAll(required)) {
		return MaxLocation
	}
	if containsAny(location, s.homeCountry) {
		return HomeCountry
	}
	return 0
}

func salaryMatch(text string, floor float64) float64 {
	if strings.TrimSpace(text) == "" {
		return NeutralSalary
	}
	bound, ok := salary.AnnualUpperBound(strings.ToLower(text))
	if !ok {
		return NeutralSalary
	}
	if bound >= floor {
		return MaxSalary
	}
	return 0
}

func industryMatch(text string, industries []string) float64 {
	if containsAny(text, lowerAll(industries)) {
		return MaxIndustry
	}
	return 0
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if n != "" && strings.Contains(s, n) {
			return true
		}
	}
	return false
}

func lowerAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, strings.ToLower(strings.TrimSpace(v)))
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
