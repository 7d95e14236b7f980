package match

import (
	"sort"
	"strings"

	"github.com/ahmednasr/issue-scout/internal/models"
)

// Rank applies the issue-type filter, sorts by relevance and truncates to
// maxResults. The sort is fully deterministic: score descending, then
// updated_at descending, then issue number ascending.
func Rank(issues []models.ScoredIssue, issueTypes []string, maxResults int) []models.ScoredIssue {
	kept := make([]models.ScoredIssue, 0, len(issues))
	for _, issue := range issues {
		if matchesIssueTypes(issue.Labels, issueTypes) {
			kept = append(kept, issue)
		}
	}

	sort.Slice(kept, func(i, j int) bool {
		a, b := kept[i], kept[j]
		if a.RelevanceScore != b.RelevanceScore {
			return a.RelevanceScore > b.RelevanceScore
		}
		if !a.UpdatedAt.Equal(b.UpdatedAt) {
			return a.UpdatedAt.After(b.UpdatedAt)
		}
		return a.Number < b.Number
	})

	if maxResults > 0 && len(kept) > maxResults {
		kept = kept[:maxResults]
	}
	return kept
}

// matchesIssueTypes reports whether the label set intersects the requested
// issue types. An empty filter keeps everything.
func matchesIssueTypes(labels, issueTypes []string) bool {
	if len(issueTypes) == 0 {
		return true
	}
	for _, label := range labels {
		lowered := strings.ToLower(label)
		for _, t := range issueTypes {
			if lowered == strings.ToLower(t) {
				return true
			}
		}
	}
	return false
}
