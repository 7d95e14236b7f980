// Package match implements the matching core: difficulty classification,
// relevance scoring, candidate pool assembly and ranking. Everything here is
// pure computation; the GitHub client executes the queries this package plans.
package match

import (
	"strings"

	"github.com/ahmednasr/issue-scout/internal/models"
)

// Star-count fallback tiers for issues without an explicit difficulty label.
// Very large codebases are hard to get into no matter what the issue says.
const (
	advancedStars = 20000
	expertStars   = 100000
)

var (
	beginnerMarkers     = []string{"good first issue", "good-first-issue", "beginner", "easy", "starter"}
	intermediateMarkers = []string{"intermediate", "medium"}
	expertMarkers       = []string{"expert", "architecture"}
	advancedMarkers     = []string{"advanced", "help wanted", "help-wanted"}
)

// ClassifyDifficulty maps an issue's labels and its repository's star count to
// a difficulty tier. It is total: any input classifies, defaulting to
// intermediate when no signal exists.
func ClassifyDifficulty(labels []string, repoStars int) models.ExperienceLevel {
	lowered := make([]string, len(labels))
	for i, l := range labels {
		lowered[i] = strings.ToLower(l)
	}

	// Explicit markers win, checked beginner-first so "help wanted" on a
	// good-first-issue still reads beginner.
	if hasAny(lowered, beginnerMarkers) {
		return models.Beginner
	}
	if hasAny(lowered, intermediateMarkers) {
		return models.Intermediate
	}
	if hasAny(lowered, expertMarkers) {
		return models.Expert
	}
	if hasAny(lowered, advancedMarkers) {
		return models.Advanced
	}

	switch {
	case repoStars >= expertStars:
		return models.Expert
	case repoStars >= advancedStars:
		return models.Advanced
	default:
		return models.Intermediate
	}
}

func hasAny(labels, markers []string) bool {
	for _, label := range labels {
		for _, marker := range markers {
			if strings.Contains(label, marker) {
				return true
			}
		}
	}
	return false
}
