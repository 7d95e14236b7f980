package skills

import (
	"sort"
	"strings"
	"time"

	"github.com/ahmednasr/issue-scout/internal/models"
)

// Experience-level tuning. The combined signal score lands in [0,1]; the
// thresholds map it onto the four tiers.
const (
	ageCeilingYears = 5.0
	repoCeiling     = 50.0
	followerCeiling = 200.0

	ageWeight      = 0.5
	repoWeight     = 0.3
	followerWeight = 0.2

	intermediateThreshold = 0.2
	advancedThreshold     = 0.5
	expertThreshold       = 0.8
)

// markupLanguages are excluded from language weights; byte counts for markup
// say little about what someone can actually contribute to.
var markupLanguages = map[string]struct{}{
	"html": {},
	"css":  {},
}

// Builder derives a SkillProfile from raw account and repository data.
type Builder struct {
	dict *Dictionary
}

// NewBuilder returns a profile builder backed by the given dictionary.
func NewBuilder(dict *Dictionary) *Builder {
	return &Builder{dict: dict}
}

// Build constructs the profile for an account from its repositories.
// Repositories without language data simply contribute nothing to the
// language weights; an account with no language data at all gets an empty
// (not nil-checked) language map. now is passed explicitly so the account-age
// signal stays reproducible; a dormant account keeps aging after its last push.
func (b *Builder) Build(acct models.Account, repos []models.RepoSummary, now time.Time) models.SkillProfile {
	languages := languageWeights(repos)
	technologies := b.extractTechnologies(repos, acct.Bio, languages)

	age := now.Sub(acct.CreatedAt).Hours() / (24 * 365.25)
	if age < 0 {
		age = 0
	}

	return models.SkillProfile{
		Languages:       languages,
		Technologies:    technologies,
		ExperienceLevel: experienceLevel(age, acct.PublicRepos, acct.Followers),
		GitHubStats: &models.GitHubStats{
			PublicRepos:     acct.PublicRepos,
			Followers:       acct.Followers,
			Following:       acct.Following,
			AccountAgeYears: age,
		},
	}
}

// languageWeights aggregates byte counts per language across all repositories
// and normalizes them so the weights sum to 1 (or the map is empty when no
// language data exists).
func languageWeights(repos []models.RepoSummary) map[string]float64 {
	bytes := make(map[string]int64)
	var total int64
	for _, repo := range repos {
		for lang, n := range repo.Languages {
			if n <= 0 {
				continue
			}
			canonical := strings.ToLower(lang)
			if _, markup := markupLanguages[canonical]; markup {
				continue
			}
			bytes[canonical] += n
			total += n
		}
	}

	weights := make(map[string]float64, len(bytes))
	if total == 0 {
		return weights
	}
	for lang, n := range bytes {
		weights[lang] = float64(n) / float64(total)
	}
	return weights
}

// extractTechnologies runs every repository's name, description and topics
// (plus the account bio) through the dictionary. Language tags that already
// carry a byte weight are left out; everything else, languages mentioned only
// in prose included, counts as a technology.
func (b *Builder) extractTechnologies(repos []models.RepoSummary, bio string, languages map[string]float64) []string {
	found := make(map[string]struct{})

	collect := func(tags []string) {
		for _, tag := range tags {
			if _, weighted := languages[tag]; weighted {
				continue
			}
			found[tag] = struct{}{}
		}
	}

	for _, repo := range repos {
		collect(b.dict.ExtractTags(repo.Name))
		collect(b.dict.ExtractTags(repo.Description))
		for _, topic := range repo.Topics {
			if tag, ok := b.dict.CanonicalTag(topic); ok {
				collect([]string{tag})
			}
		}
	}
	collect(b.dict.ExtractTags(bio))

	if len(found) == 0 {
		return nil
	}
	technologies := make([]string, 0, len(found))
	for tag := range found {
		technologies = append(technologies, tag)
	}
	sort.Strings(technologies)
	return technologies
}

// experienceLevel combines three capped, normalized signals with fixed
// weights and maps the result onto the four tiers.
func experienceLevel(ageYears float64, publicRepos, followers int) models.ExperienceLevel {
	score := ageWeight*capped(ageYears, ageCeilingYears) +
		repoWeight*capped(float64(publicRepos), repoCeiling) +
		followerWeight*capped(float64(followers), followerCeiling)

	switch {
	case score >= expertThreshold:
		return models.Expert
	case score >= advancedThreshold:
		return models.Advanced
	case score >= intermediateThreshold:
		return models.Intermediate
	default:
		return models.Beginner
	}
}

func capped(v, ceiling float64) float64 {
	if v <= 0 {
		return 0
	}
	if v >= ceiling {
		return 1
	}
	return v / ceiling
}
