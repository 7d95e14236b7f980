// Package github is a minimal wrapper around GitHub's REST API v3.
// It is intentionally light—just the endpoints the matcher requires.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ahmednasr/issue-scout/internal/models"
)

const defaultBaseURL = "https://api.github.com"

// Client talks to the GitHub REST API.
type Client struct {
	// BaseURL may be overridden in tests; it defaults to the public API.
	BaseURL string

	http  *http.Client
	token string
}

// NewClient returns a ready-to-use GitHub API client.
// token may be an empty string, but you will be subject to very low rate-limits.
func NewClient(token string) *Client {
	return &Client{
		BaseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
		token: token,
	}
}

// GetUser fetches an account record. A missing user yields ErrNotFound.
func (c *Client) GetUser(ctx context.Context, username string) (models.Account, error) {
	var acct models.Account
	u := fmt.Sprintf("%s/users/%s", c.BaseURL, url.PathEscape(username))
	if err := c.get(ctx, u, nil, &acct); err != nil {
		return models.Account{}, err
	}
	return acct, nil
}

// ListUserRepos fetches up to limit of the user's own repositories, most
// recently updated first. The per-language byte maps are not included; use
// ListRepoLanguages per repository.
func (c *Client) ListUserRepos(ctx context.Context, username string, limit int) ([]models.RepoSummary, error) {
	u := fmt.Sprintf("%s/users/%s/repos", c.BaseURL, url.PathEscape(username))
	q := url.Values{
		"type":     {"owner"},
		"sort":     {"updated"},
		"per_page": {strconv.Itoa(limit)},
	}

	var repos []models.RepoSummary
	if err := c.get(ctx, u, q, &repos); err != nil {
		return nil, err
	}
	return repos, nil
}

// ListRepoLanguages fetches the byte count per language for one repository.
func (c *Client) ListRepoLanguages(ctx context.Context, fullName string) (map[string]int64, error) {
	u := fmt.Sprintf("%s/repos/%s/languages", c.BaseURL, pathForRepo(fullName))
	languages := make(map[string]int64)
	if err := c.get(ctx, u, nil, &languages); err != nil {
		return nil, err
	}
	return languages, nil
}

// GetRepo fetches repository metadata (stars, forks, topics).
func (c *Client) GetRepo(ctx context.Context, fullName string) (models.RepoSummary, error) {
	var repo models.RepoSummary
	u := fmt.Sprintf("%s/repos/%s", c.BaseURL, pathForRepo(fullName))
	if err := c.get(ctx, u, nil, &repo); err != nil {
		return models.RepoSummary{}, err
	}
	return repo, nil
}

// ListRepoIssues fetches open issues for one repository, optionally filtered
// by labels. Pull requests are excluded.
func (c *Client) ListRepoIssues(ctx context.Context, fullName string, labels []string, limit int) ([]models.Issue, error) {
	u := fmt.Sprintf("%s/repos/%s/issues", c.BaseURL, pathForRepo(fullName))
	q := url.Values{
		"state":    {"open"},
		"per_page": {strconv.Itoa(limit)},
	}
	if len(labels) > 0 {
		q.Set("labels", strings.Join(labels, ","))
	}

	var raw []wireIssue
	if err := c.get(ctx, u, q, &raw); err != nil {
		return nil, err
	}

	issues := make([]models.Issue, 0, len(raw))
	for _, wi := range raw {
		if wi.PullRequest != nil {
			continue
		}
		issue := wi.toIssue()
		issue.RepositoryName = fullName
		issues = append(issues, issue)
	}
	return issues, nil
}

// SearchIssues runs a query against the issue search API and returns up to
// limit issues, most recently updated first. Pull requests are excluded.
func (c *Client) SearchIssues(ctx context.Context, query string, limit int) ([]models.Issue, error) {
	u := c.BaseURL + "/search/issues"
	q := url.Values{
		"q":        {query},
		"sort":     {"updated"},
		"order":    {"desc"},
		"per_page": {strconv.Itoa(limit)},
	}

	var result struct {
		TotalCount int         `json:"total_count"`
		Items      []wireIssue `json:"items"`
	}
	if err := c.get(ctx, u, q, &result); err != nil {
		return nil, err
	}

	issues := make([]models.Issue, 0, len(result.Items))
	for _, wi := range result.Items {
		if wi.PullRequest != nil {
			continue
		}
		issues = append(issues, wi.toIssue())
	}
	return issues, nil
}

// wireIssue is GitHub's issue shape for both the repo-issues and search APIs.
type wireIssue struct {
	ID            int64  `json:"id"`
	Number        int    `json:"number"`
	Title         string `json:"title"`
	Body          string `json:"body"`
	HTMLURL       string `json:"html_url"`
	RepositoryURL string `json:"repository_url"`
	Labels        []struct {
		Name string `json:"name"`
	} `json:"labels"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	PullRequest *struct{} `json:"pull_request,omitempty"`
	Repository  *struct {
		FullName string `json:"full_name"`
		HTMLURL  string `json:"html_url"`
		Stars    int    `json:"stargazers_count"`
	} `json:"repository,omitempty"`
}

func (wi wireIssue) toIssue() models.Issue {
	labels := make([]string, 0, len(wi.Labels))
	for _, l := range wi.Labels {
		labels = append(labels, l.Name)
	}

	issue := models.Issue{
		ID:        wi.ID,
		Number:    wi.Number,
		Title:     wi.Title,
		Body:      wi.Body,
		URL:       wi.HTMLURL,
		Labels:    labels,
		CreatedAt: wi.CreatedAt,
		UpdatedAt: wi.UpdatedAt,
	}
	if wi.Repository != nil {
		issue.RepositoryName = wi.Repository.FullName
		issue.RepositoryURL = wi.Repository.HTMLURL
		issue.RepoStars = wi.Repository.Stars
	} else if wi.RepositoryURL != "" {
		// Search results carry only the API URL of the owning repository,
		// e.g. https://api.github.com/repos/owner/name.
		if i := strings.Index(wi.RepositoryURL, "/repos/"); i >= 0 {
			issue.RepositoryName = wi.RepositoryURL[i+len("/repos/"):]
		}
		issue.RepositoryURL = wi.RepositoryURL
	}
	return issue
}

// pathForRepo escapes "owner/name" while keeping the separating slash.
func pathForRepo(fullName string) string {
	parts := strings.SplitN(fullName, "/", 2)
	if len(parts) != 2 {
		return url.PathEscape(fullName)
	}
	return url.PathEscape(parts[0]) + "/" + url.PathEscape(parts[1])
}

// get executes a GET request and decodes JSON into v.
func (c *Client) get(ctx context.Context, rawURL string, query url.Values, v interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	if query != nil {
		req.URL.RawQuery = query.Encode()
	}
	c.addHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode == http.StatusTooManyRequests || rateLimited(resp):
		return &RateLimitError{RetryAfter: retryAfter(resp)}
	case resp.StatusCode >= 300:
		return fmt.Errorf("github: unexpected status %s", resp.Status)
	}

	return json.NewDecoder(resp.Body).Decode(v)
}

// addHeaders sets authentication and Accept headers.
func (c *Client) addHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/vnd.github+json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("User-Agent", "issue-scout")
}

// rateLimited recognizes the 403 GitHub sends when the hourly quota is gone.
func rateLimited(resp *http.Response) bool {
	return resp.StatusCode == http.StatusForbidden &&
		resp.Header.Get("X-RateLimit-Remaining") == "0"
}

func retryAfter(resp *http.Response) time.Duration {
	if s := resp.Header.Get("Retry-After"); s != "" {
		if sec, err := strconv.Atoi(s); err == nil {
			return time.Duration(sec) * time.Second
		}
	}
	if s := resp.Header.Get("X-RateLimit-Reset"); s != "" {
		if reset, err := strconv.ParseInt(s, 10, 64); err == nil {
			if d := time.Until(time.Unix(reset, 0)); d > 0 {
				return d
			}
		}
	}
	return 0
}
