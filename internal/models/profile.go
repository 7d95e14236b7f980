package models

import "sort"

// ExperienceLevel is one of the four difficulty/experience tiers used for both
// user profiles and issue classification.
type ExperienceLevel string

const (
	Beginner     ExperienceLevel = "beginner"
	Intermediate ExperienceLevel = "intermediate"
	Advanced     ExperienceLevel = "advanced"
	Expert       ExperienceLevel = "expert"
)

var levelOrder = map[ExperienceLevel]int{
	Beginner:     0,
	Intermediate: 1,
	Advanced:     2,
	Expert:       3,
}

// Valid reports whether the level is one of the four defined tiers.
func (l ExperienceLevel) Valid() bool {
	_, ok := levelOrder[l]
	return ok
}

// Distance returns how many tiers apart two levels are (0 = same, 1 = adjacent).
func (l ExperienceLevel) Distance(other ExperienceLevel) int {
	d := levelOrder[l] - levelOrder[other]
	if d < 0 {
		d = -d
	}
	return d
}

// GitHubStats carries account metadata when a profile is derived from a username.
type GitHubStats struct {
	PublicRepos     int     `json:"public_repos"`
	Followers       int     `json:"followers"`
	Following       int     `json:"following"`
	AccountAgeYears float64 `json:"account_age_years"`
}

// SkillProfile is the derived or declared set of skills for one person.
// Language weights are normalized byte shares across the subject's
// repositories: non-negative, summing to at most 1.
type SkillProfile struct {
	Languages       map[string]float64 `json:"languages"`
	Technologies    []string           `json:"technologies"`
	ExperienceLevel ExperienceLevel    `json:"experience_level"`
	GitHubStats     *GitHubStats       `json:"github_stats,omitempty"`
}

// RankedLanguages returns the profile's languages ordered by descending weight,
// ties broken alphabetically so the order is stable.
func (p SkillProfile) RankedLanguages() []string {
	langs := make([]string, 0, len(p.Languages))
	for l := range p.Languages {
		langs = append(langs, l)
	}
	sort.Slice(langs, func(i, j int) bool {
		wi, wj := p.Languages[langs[i]], p.Languages[langs[j]]
		if wi != wj {
			return wi > wj
		}
		return langs[i] < langs[j]
	})
	return langs
}
