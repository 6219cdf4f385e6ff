// Package skills recognises technology and domain keywords in free text.
package skills

import (
	"regexp"
	"sort"
	"strings"
)

// Skill is a catalog entry. ID is the stable identity used for comparisons,
// Pattern is matched against lower-cased text.
type Skill struct {
	ID      string
	Pattern *regexp.Regexp
}

// Guards for literals that start or end with a symbol, where \b does not apply.
const (
	pre  = `(?:^|[^\w.#+])`
	post = `(?:$|[^\w#+])`
)

func skill(id, pattern string) Skill {
	return Skill{ID: id, Pattern: regexp.MustCompile(pattern)}
}

// Catalog is ordered: languages, frameworks, tools and platforms, domains.
var Catalog = []Skill{
	// Languages
	skill("csharp", `\bc#`+post),
	skill("dotnet", pre+`\.net\b`),
	skill("aspnet", `\basp\.net\b`),
	skill("python", `\bpython\b`),
	skill("javascript", `\bjavascript\b`),
	skill("typescript", `\btypescript\b`),
	skill("java", `\bjava\b`),
	skill("sql", `\bsql\b`),
	skill("html", `\bhtml\b`),
	skill("css", `\bcss\b`),
	skill("cpp", `\bc\+\+`+post),
	skill("go", `\bgo\b`),
	skill("rust", `\brust\b`),
	skill("ruby", `\bruby\b`),
	skill("php", `\bphp\b`),
	skill("kotlin", `\bkotlin\b`),
	skill("swift", `\bswift\b`),
	skill("r", `\br\b`),
	skill("scala", `\bscala\b`),

	// Frameworks
	skill("react", `\breact\b`),
	skill("angular", `\bangular\b`),
	skill("vue", `\bvue\b`),
	skill("nodejs", `\bnode\.?js\b`),
	skill("flask", `\bflask\b`),
	skill("django", `\bdjango\b`),
	skill("fastapi", `\bfastapi\b`),
	skill("spring", `\bspring\b`),
	skill("dotnet-core", pre+`\.net\s*core\b`),
	skill("blazor", `\bblazor\b`),
	skill("nextjs", `\bnext\.?js\b`),
	skill("express", `\bexpress\b`),
	skill("rails", `\brails\b`),
	skill("laravel", `\blaravel\b`),

	// Tools & platforms
	skill("docker", `\bdocker\b`),
	skill("kubernetes", `\b(?:kubernetes|k8s)\b`),
	skill("azure", `\bazure\b`),
	skill("aws", `\baws\b`),
	skill("gcp", `\bgcp\b`),
	skill("git", `\bgit\b`),
	skill("ci-cd", `\bci/cd\b`),
	skill("jenkins", `\bjenkins\b`),
	skill("terraform", `\bterraform\b`),
	skill("linux", `\blinux\b`),
	skill("redis", `\bredis\b`),
	skill("mongodb", `\bmongodb\b`),
	skill("postgresql", `\bpostgres(?:ql)?\b`),
	skill("elasticsearch", `\belasticsearch\b`),
	skill("rabbitmq", `\brabbitmq\b`),
	skill("kafka", `\bkafka\b`),

	// Domains
	skill("machine-learning", `\bmachine learning\b`),
	skill("ml", `\bml\b`),
	skill("ai", `\bai\b`),
	skill("deep-learning", `\bdeep learning\b`),
	skill("data-science", `\bdata science\b`),
	skill("devops", `\bdevops\b`),
	skill("scrum", `\bscrum\b`),
	skill("agile", `\bagile\b`),
	skill("microservices", `\bmicroservices\b`),
	skill("rest-api", `\brest\s*api\b`),
	skill("graphql", `\bgraphql\b`),
	skill("iot", `\biot\b`),
	skill("mes", `\bmes\b`),
	skill("manufacturing", `\bmanufacturing\b`),
	skill("automation", `\bautomation\b`),
	skill("saas", `\bsaas\b`),
	skill("fullstack", `\bfull.?stack\b`),
}

// Set is a set of skill IDs.
type Set map[string]struct{}

// NewSet builds a set from the given IDs.
func NewSet(ids ...string) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Extract returns the IDs of every catalog skill found in text.
func Extract(text string) Set {
	found := make(Set)
	lower := strings.ToLower(text)
	if strings.TrimSpace(lower) == "" {
		return found
	}

	for _, s := range Catalog {
		if s.Pattern.MatchString(lower) {
			found[s.ID] = struct{}{}
		}
	}
	return found
}

func (s Set) Len() int { return len(s) }

func (s Set) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Intersect returns the IDs present in both sets.
func (s Set) Intersect(other Set) Set {
	out := make(Set)
	for id := range s {
		if other.Has(id) {
			out[id] = struct{}{}
		}
	}
	return out
}

// Sorted returns the IDs in lexical order.
func (s Set) Sorted() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
