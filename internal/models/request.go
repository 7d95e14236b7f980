package models

import (
	"errors"
	"fmt"
)

// Defaults applied when a request omits the optional fields.
const (
	DefaultMaxResults = 20
)

// DefaultIssueTypes is the label filter used when the caller supplies none.
var DefaultIssueTypes = []string{"good first issue", "help wanted"}

// MatchRequest is the payload for POST /match/skills and POST /match/username.
// Exactly one of Skills or Username must be set.
type MatchRequest struct {
	Skills          []string `json:"skills,omitempty"`
	ExperienceLevel string   `json:"experience_level,omitempty"`
	Username        string   `json:"username,omitempty"`
	IssueTypes      []string `json:"issue_types,omitempty"`
	MaxResults      int      `json:"max_results,omitempty"`
}

// Validate rejects malformed requests before any profile or candidate work
// begins. It also fills in defaults for omitted optional fields.
func (r *MatchRequest) Validate() error {
	hasSkills := len(r.Skills) > 0
	hasUsername := r.Username != ""

	switch {
	case hasSkills && hasUsername:
		return errors.New("supply either skills or username, not both")
	case !hasSkills && !hasUsername:
		return errors.New("either a skills list or a username is required")
	}

	if r.ExperienceLevel != "" {
		if hasUsername {
			return errors.New("experience_level is derived from the username and cannot be supplied")
		}
		if !ExperienceLevel(r.ExperienceLevel).Valid() {
			return fmt.Errorf("unknown experience_level %q", r.ExperienceLevel)
		}
	}

	if r.MaxResults < 0 {
		return fmt.Errorf("max_results must be positive, got %d", r.MaxResults)
	}
	if r.MaxResults == 0 {
		r.MaxResults = DefaultMaxResults
	}
	if len(r.IssueTypes) == 0 {
		r.IssueTypes = DefaultIssueTypes
	}
	return nil
}

// MatchResponse is the envelope returned by the match and analyze endpoints.
type MatchResponse struct {
	Success    bool          `json:"success"`
	Issues     []ScoredIssue `json:"issues"`
	TotalFound int           `json:"total_found"`
	UserSkills *SkillProfile `json:"user_skills,omitempty"`
	Message    string        `json:"message"`
	Error      string        `json:"error,omitempty"`
}
