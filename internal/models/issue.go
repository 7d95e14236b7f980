package models

import (
	"strconv"
	"time"
)

// Issue captures the fields we care about from GitHub's REST API, plus the
// owning repository's popularity metrics needed for classification and scoring.
type Issue struct {
	ID             int64     `json:"id"`
	Number         int       `json:"number"`
	Title          string    `json:"title"`
	Body           string    `json:"body"`
	URL            string    `json:"url"`
	RepositoryName string    `json:"repository_name"` // "owner/repo"
	RepositoryURL  string    `json:"repository_url"`
	Labels         []string  `json:"labels"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	RepoStars      int       `json:"repository_stars"`
	RepoForks      int       `json:"repository_forks"`
}

// Key identifies an issue within a single candidate pool.
func (i Issue) Key() string {
	return i.RepositoryName + "#" + strconv.Itoa(i.Number)
}

// ScoredIssue is an Issue after classification and relevance scoring.
type ScoredIssue struct {
	Issue
	Difficulty     ExperienceLevel `json:"difficulty"`
	MatchedSkills  []string        `json:"matched_skills"`
	RelevanceScore float64         `json:"relevance_score"`
}
