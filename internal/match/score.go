package match

import (
	"regexp"
	"strings"
	"time"

	"github.com/ahmednasr/issue-scout/internal/models"
	"github.com/ahmednasr/issue-scout/internal/skills"
)

// Scoring weights. Each component is independently bounded; the sum is
// clamped to [0, MaxScore]. Skill overlap dominates: an issue you have the
// skills for beats a popular one you don't.
const (
	MaxScore = 10.0

	maxSkillScore    = 5.0
	languageScale    = 5.0 // language contribution = profile weight × this
	technologyPoints = 0.75

	difficultyExactBonus    = 2.0
	difficultyAdjacentBonus = 1.0

	maxRecencyBonus = 2.0
	recencyCutoff   = 365 * 24 * time.Hour

	popularityHighBonus = 1.0
	popularityMidBonus  = 0.5
	popularityHighStars = 10000
	popularityMidStars  = 500
)

var wordPattern = regexp.MustCompile(`[a-z0-9#+]+(?:[.\-][a-z0-9#+]+)*`)

// Score computes the relevance of one issue for one profile. It is a pure
// function of its inputs; now is passed explicitly so the recency term stays
// reproducible. seedSkills are the skills whose queries surfaced this issue;
// they count as matched even when the issue text never repeats them. The
// dictionary decides, per skill, whether substring matching is allowed.
//
// The returned matched skills are ordered languages-first by descending
// profile weight, then technologies.
func Score(profile models.SkillProfile, issue models.Issue, difficulty models.ExperienceLevel, seedSkills []string, dict *skills.Dictionary, now time.Time) (float64, []string) {
	content := strings.ToLower(issue.Title + " " + issue.Body + " " + strings.Join(issue.Labels, " "))
	tokens := make(map[string]struct{})
	for _, tok := range wordPattern.FindAllString(content, -1) {
		tokens[tok] = struct{}{}
	}
	seeded := make(map[string]struct{}, len(seedSkills))
	for _, s := range seedSkills {
		seeded[strings.ToLower(s)] = struct{}{}
	}

	matchesSkill := func(skill string) bool {
		if _, ok := seeded[skill]; ok {
			return true
		}
		if _, ok := tokens[skill]; ok {
			return true
		}
		// Framework-class names may appear embedded ("uses scikit-learn
		// heavily"); language and tool names only count as whole tokens,
		// so "go" never fires inside "mongo" nor "java" inside "javascript".
		return dict.SubstringMatchable(skill) && strings.Contains(content, skill)
	}

	var skillScore float64
	var matched []string

	for _, lang := range profile.RankedLanguages() {
		if matchesSkill(lang) {
			skillScore += profile.Languages[lang] * languageScale
			matched = append(matched, lang)
		}
	}
	for _, tech := range profile.Technologies {
		if matchesSkill(tech) {
			skillScore += technologyPoints
			matched = append(matched, tech)
		}
	}
	if skillScore > maxSkillScore {
		skillScore = maxSkillScore
	}

	score := skillScore +
		difficultyBonus(profile.ExperienceLevel, difficulty) +
		recencyBonus(issue.UpdatedAt, now) +
		popularityBonus(issue.RepoStars)

	if score > MaxScore {
		score = MaxScore
	}
	if score < 0 {
		score = 0
	}
	return score, matched
}

func difficultyBonus(level, difficulty models.ExperienceLevel) float64 {
	switch level.Distance(difficulty) {
	case 0:
		return difficultyExactBonus
	case 1:
		return difficultyAdjacentBonus
	default:
		return 0
	}
}

// recencyBonus decays linearly with the issue's age since its last update and
// is zero for anything untouched for over a year.
func recencyBonus(updatedAt, now time.Time) float64 {
	age := now.Sub(updatedAt)
	if age < 0 {
		age = 0
	}
	if age >= recencyCutoff {
		return 0
	}
	return maxRecencyBonus * (1 - float64(age)/float64(recencyCutoff))
}

func popularityBonus(stars int) float64 {
	switch {
	case stars >= popularityHighStars:
		return popularityHighBonus
	case stars >= popularityMidStars:
		return popularityMidBonus
	default:
		return 0
	}
}
