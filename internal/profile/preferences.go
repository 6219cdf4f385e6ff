// Package profile builds the candidate profile used as the scoring baseline.
package profile

import (
	"regexp"
	"strings"

	"github.com/spigell/job-ranker/internal/salary"
)

// DefaultMinSalaryAnnual applies when the preferences document names no floor.
const DefaultMinSalaryAnnual = 50000

// Preferences holds the structured content of the preferences document.
// All string values are lower-cased.
type Preferences struct {
	TargetRoles         []string `json:"target_roles"`
	RequiredLocations   []string `json:"required_locations"`
	PreferredStack      []string `json:"preferred_stack"`
	PreferredIndustries []string `json:"preferred_industries"`
	Avoid               []string `json:"avoid"`
	MinSalaryAnnual     float64  `json:"min_salary_annual"`
}

type section int

const (
	sectionNone section = iota
	sectionTargetRoles
	sectionRequired
	sectionPreferred
	sectionAvoid
	sectionUnrecognized
)

var sectionsByHeading = map[string]section{
	"target roles": sectionTargetRoles,
	"required":     sectionRequired,
	"preferred":    sectionPreferred,
	"avoid":        sectionAvoid,
}

var (
	minSalaryRe  = regexp.MustCompile(`[€$£]\s*(\d[\d.,]*\d|\d)`)
	locationRe   = regexp.MustCompile(`location:\s*(.+)`)
	techStackRe  = regexp.MustCompile(`tech stack:\s*(.+)`)
	industriesRe = regexp.MustCompile(`industries:\s*(.+)`)
)

// transition returns the section that a "## " heading opens.
func transition(heading string) section {
	if s, ok := sectionsByHeading[strings.ToLower(strings.TrimSpace(heading))]; ok {
		return s
	}
	return sectionUnrecognized
}

// ParsePreferences reads a heading-delimited preferences document in a single
// pass. Bullet lines belong to the most recent "## " heading; a line that
// mentions "minimum salary" sets the floor wherever it appears.
func ParsePreferences(doc string) *Preferences {
	prefs := &Preferences{MinSalaryAnnual: DefaultMinSalaryAnnual}

	state := sectionNone
	for _, line := range strings.Split(doc, "\n") {
		line = strings.TrimSpace(line)

		if heading, ok := strings.CutPrefix(line, "## "); ok {
			state = transition(heading)
			continue
		}

		item, ok := strings.CutPrefix(line, "- ")
		if !ok {
			if strings.Contains(strings.ToLower(line), "minimum salary") {
				if floor, found := parseMinSalary(line); found {
					prefs.MinSalaryAnnual = floor
				}
			}
			continue
		}

		item = strings.ToLower(strings.TrimSpace(item))
		if item == "" {
			continue
		}

		switch state {
		case sectionTargetRoles:
			prefs.TargetRoles = append(prefs.TargetRoles, item)
		case sectionRequired:
			if list, found := listAfter(locationRe, item); found {
				prefs.RequiredLocations = list
			}
		case sectionPreferred:
			if list, found := listAfter(techStackRe, item); found {
				prefs.PreferredStack = list
			} else if list, found := listAfter(industriesRe, item); found {
				prefs.PreferredIndustries = list
			}
		case sectionAvoid:
			prefs.Avoid = append(prefs.Avoid, item)
		}
	}

	return prefs
}

func parseMinSalary(line string) (float64, bool) {
	m := minSalaryRe.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}
	v, err := salary.ParseAmount(m[1])
	if err != nil {
		return 0, false
	}
	return v, true
}

func listAfter(re *regexp.Regexp, item string) ([]string, bool) {
	m := re.FindStringSubmatch(item)
	if m == nil {
		return nil, false
	}
	return splitList(m[1]), true
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	list := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			list = append(list, p)
		}
	}
	return list
}
