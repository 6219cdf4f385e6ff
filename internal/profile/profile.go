package profile

import (
	"strings"

	"github.com/spigell/job-ranker/internal/skills"
)

// Profile combines preferences and resume skills. It is built once per run
// and passed explicitly to the scorer.
type Profile struct {
	Preferences  *Preferences
	ResumeSkills skills.Set
}

// ParseResumeSkills returns the skills recognised anywhere in the resume.
func ParseResumeSkills(resume string) skills.Set {
	return skills.Extract(strings.ToLower(resume))
}

// New parses both documents into a Profile.
func New(preferencesDoc, resumeDoc string) *Profile {
	return &Profile{
		Preferences:  ParsePreferences(preferencesDoc),
		ResumeSkills: ParseResumeSkills(resumeDoc),
	}
}
