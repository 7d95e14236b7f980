package match

import (
	"fmt"
	"strings"

	"github.com/ahmednasr/issue-scout/internal/models"
	"github.com/ahmednasr/issue-scout/internal/skills"
)

// Bounds on how much of GitHub one request is allowed to trawl.
const (
	maxLanguagesPerRequest    = 5
	maxTechnologiesPerRequest = 3
	maxReposPerSkill          = 5
	maxIssuesPerRepo          = 10
	maxSearchResults          = 30
)

// Intent is one query the GitHub collaborator should execute. Exactly one of
// Repo or Query is set: a curated-repository issue listing, or a global
// issue search.
type Intent struct {
	Skill  string   // profile skill that triggered this query
	Repo   string   // "owner/repo" for curated listings
	Labels []string // label filter for curated listings
	Query  string   // search query for global searches
	Limit  int
}

// Candidate is a deduplicated issue together with every skill whose query
// surfaced it.
type Candidate struct {
	Issue  models.Issue
	Skills []string
}

// Result pairs an executed Intent with the issues it returned.
type Result struct {
	Skill  string
	Issues []models.Issue
}

// Assembler plans which repositories and searches to query for a profile and
// merges the returned issues into a deduplicated candidate pool. It performs
// no network calls itself.
type Assembler struct {
	dict *skills.Dictionary
}

// NewAssembler returns an assembler backed by the curated repository table.
func NewAssembler(dict *skills.Dictionary) *Assembler {
	return &Assembler{dict: dict}
}

// Plan produces the query intents for a profile: per top language, a bounded
// set of curated repositories plus one global language search; per top
// technology, one global text search. All queries are restricted to open
// issues carrying at least one of the requested issue types.
func (a *Assembler) Plan(profile models.SkillProfile, issueTypes []string) []Intent {
	var intents []Intent

	languages := profile.RankedLanguages()
	if len(languages) > maxLanguagesPerRequest {
		languages = languages[:maxLanguagesPerRequest]
	}
	for _, lang := range languages {
		curated := a.dict.CuratedRepos(lang)
		if len(curated) > maxReposPerSkill {
			curated = curated[:maxReposPerSkill]
		}
		for _, repo := range curated {
			intents = append(intents, Intent{
				Skill:  lang,
				Repo:   repo,
				Labels: issueTypes,
				Limit:  maxIssuesPerRepo,
			})
		}
		intents = append(intents, Intent{
			Skill: lang,
			Query: searchQuery(fmt.Sprintf("language:%s", lang), issueTypes),
			Limit: maxSearchResults,
		})
	}

	technologies := profile.Technologies
	if len(technologies) > maxTechnologiesPerRequest {
		technologies = technologies[:maxTechnologiesPerRequest]
	}
	for _, tech := range technologies {
		intents = append(intents, Intent{
			Skill: tech,
			Query: searchQuery(fmt.Sprintf("%q in:title,body", tech), issueTypes),
			Limit: maxSearchResults,
		})
	}

	return intents
}

// Merge deduplicates issues across results by (repository, number), keeping
// each issue once with the union of its triggering skills. Output order is
// first-seen order, so identical inputs merge identically.
func (a *Assembler) Merge(results []Result) []Candidate {
	index := make(map[string]int)
	var pool []Candidate

	for _, res := range results {
		for _, issue := range res.Issues {
			key := issue.Key()
			if at, seen := index[key]; seen {
				if !contains(pool[at].Skills, res.Skill) {
					pool[at].Skills = append(pool[at].Skills, res.Skill)
				}
				continue
			}
			index[key] = len(pool)
			pool = append(pool, Candidate{Issue: issue, Skills: []string{res.Skill}})
		}
	}
	return pool
}

func searchQuery(subject string, issueTypes []string) string {
	parts := []string{subject}
	for _, t := range issueTypes {
		parts = append(parts, fmt.Sprintf("label:%q", t))
	}
	parts = append(parts, "state:open", "is:issue")
	return strings.Join(parts, " ")
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
