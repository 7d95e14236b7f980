package models

import "time"

// Account is the GitHub account record consumed by the profile builder.
type Account struct {
	Login       string    `json:"login"`
	Bio         string    `json:"bio"`
	PublicRepos int       `json:"public_repos"`
	Followers   int       `json:"followers"`
	Following   int       `json:"following"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// RepoSummary is one of the account's repositories, as consumed by the
// profile builder. Languages maps a language name to its byte count and is
// filled by a separate languages call.
type RepoSummary struct {
	Name        string           `json:"name"`
	FullName    string           `json:"full_name"`
	Description string           `json:"description"`
	Topics      []string         `json:"topics"`
	Stars       int              `json:"stargazers_count"`
	Forks       int              `json:"forks_count"`
	Languages   map[string]int64 `json:"-"`
	UpdatedAt   time.Time        `json:"updated_at"`
}
