package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ahmednasr/issue-scout/internal/github"
	"github.com/ahmednasr/issue-scout/internal/models"
	"github.com/ahmednasr/issue-scout/internal/skills"
)

// fakeGitHub implements GitHubAPI in memory.
type fakeGitHub struct {
	mu sync.Mutex

	users      map[string]models.Account
	userRepos  map[string][]models.RepoSummary
	languages  map[string]map[string]int64
	repos      map[string]models.RepoSummary
	repoIssues map[string][]models.Issue
	searchHits []models.Issue

	err      error
	searches int
}

func (f *fakeGitHub) GetUser(_ context.Context, username string) (models.Account, error) {
	if f.err != nil {
		return models.Account{}, f.err
	}
	acct, ok := f.users[username]
	if !ok {
		return models.Account{}, github.ErrNotFound
	}
	return acct, nil
}

func (f *fakeGitHub) ListUserRepos(_ context.Context, username string, _ int) ([]models.RepoSummary, error) {
	return f.userRepos[username], nil
}

func (f *fakeGitHub) ListRepoLanguages(_ context.Context, fullName string) (map[string]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	langs, ok := f.languages[fullName]
	if !ok {
		return nil, fmt.Errorf("no languages for %s", fullName)
	}
	return langs, nil
}

func (f *fakeGitHub) GetRepo(_ context.Context, fullName string) (models.RepoSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	repo, ok := f.repos[fullName]
	if !ok {
		return models.RepoSummary{}, github.ErrNotFound
	}
	return repo, nil
}

func (f *fakeGitHub) ListRepoIssues(_ context.Context, fullName string, _ []string, _ int) ([]models.Issue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.repoIssues[fullName], nil
}

func (f *fakeGitHub) SearchIssues(_ context.Context, query string, _ int) ([]models.Issue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.searches++
	var hits []models.Issue
	for _, issue := range f.searchHits {
		hits = append(hits, issue)
	}
	_ = query
	return hits, nil
}

var testNow = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

func newTestMatchService(gh *fakeGitHub) MatchService {
	dict := skills.NewDictionary()
	logger := zap.NewNop()
	profiles := NewProfileService(gh, skills.NewBuilder(dict), 2, logger).(*profileService)
	profiles.now = func() time.Time { return testNow }
	svc := NewMatchService(gh, profiles, dict, 2, logger).(*matchService)
	svc.now = func() time.Time { return testNow }
	return svc
}

func pythonIssue(number int, repo string, labels ...string) models.Issue {
	return models.Issue{
		ID:             int64(number),
		Number:         number,
		Title:          fmt.Sprintf("python issue %d", number),
		RepositoryName: repo,
		Labels:         labels,
		UpdatedAt:      testNow.AddDate(0, 0, -number),
	}
}

func TestMatchBySkills(t *testing.T) {
	gh := &fakeGitHub{
		repoIssues: map[string][]models.Issue{
			"python/cpython": {pythonIssue(1, "python/cpython", "good first issue")},
			"pallets/flask":  {pythonIssue(2, "pallets/flask", "help wanted")},
		},
		repos: map[string]models.RepoSummary{
			"python/cpython": {FullName: "python/cpython", Stars: 60000},
			"pallets/flask":  {FullName: "pallets/flask", Stars: 68000},
		},
		searchHits: []models.Issue{pythonIssue(3, "search/hit", "good first issue")},
	}
	svc := newTestMatchService(gh)

	req := models.MatchRequest{Skills: []string{"Python"}}
	require.NoError(t, req.Validate())

	resp, err := svc.MatchBySkills(context.Background(), req)
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.Issues)
	assert.Equal(t, len(resp.Issues), resp.TotalFound)
	assert.Nil(t, resp.UserSkills)
	assert.Contains(t, resp.Message, "matching issues")

	for _, issue := range resp.Issues {
		assert.GreaterOrEqual(t, issue.RelevanceScore, 0.0)
		assert.LessOrEqual(t, issue.RelevanceScore, 10.0)
		assert.True(t, issue.Difficulty.Valid())
		assert.Contains(t, issue.MatchedSkills, "python")
	}
}

func TestMatchBySkillsRespectsMaxResults(t *testing.T) {
	var hits []models.Issue
	for n := 1; n <= 5; n++ {
		hits = append(hits, pythonIssue(n, fmt.Sprintf("r/%d", n), "good first issue"))
	}
	gh := &fakeGitHub{searchHits: hits}
	svc := newTestMatchService(gh)

	req := models.MatchRequest{Skills: []string{"python"}, MaxResults: 1}
	require.NoError(t, req.Validate())

	resp, err := svc.MatchBySkills(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, resp.Issues, 1)
	// All five qualify; the remaining one must be the top-scored.
	best := resp.Issues[0]
	assert.Equal(t, 1, best.Number) // freshest issue wins on recency
}

func TestMatchBySkillsEmptyResult(t *testing.T) {
	gh := &fakeGitHub{}
	svc := newTestMatchService(gh)

	req := models.MatchRequest{Skills: []string{"python"}}
	require.NoError(t, req.Validate())

	resp, err := svc.MatchBySkills(context.Background(), req)
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Empty(t, resp.Issues)
	assert.Zero(t, resp.TotalFound)
}

func TestMatchByUsernameNotFound(t *testing.T) {
	gh := &fakeGitHub{}
	svc := newTestMatchService(gh)

	req := models.MatchRequest{Username: "ghost"}
	require.NoError(t, req.Validate())

	_, err := svc.MatchByUsername(context.Background(), req)
	assert.ErrorIs(t, err, github.ErrNotFound)
	// No candidate work may happen once the user lookup fails.
	assert.Zero(t, gh.searches)
}

func TestMatchByUsernameBuildsProfile(t *testing.T) {
	gh := &fakeGitHub{
		users: map[string]models.Account{
			"dev": {
				Login:       "dev",
				PublicRepos: 30,
				Followers:   50,
				CreatedAt:   testNow.AddDate(-4, 0, 0),
				UpdatedAt:   testNow,
			},
		},
		userRepos: map[string][]models.RepoSummary{
			"dev": {{FullName: "dev/api", Description: "flask service"}},
		},
		languages: map[string]map[string]int64{
			"dev/api": {"Python": 9000},
		},
		searchHits: []models.Issue{pythonIssue(1, "search/hit", "good first issue")},
	}
	svc := newTestMatchService(gh)

	req := models.MatchRequest{Username: "dev"}
	require.NoError(t, req.Validate())

	resp, err := svc.MatchByUsername(context.Background(), req)
	require.NoError(t, err)

	require.NotNil(t, resp.UserSkills)
	assert.InDelta(t, 1.0, resp.UserSkills.Languages["python"], 0.001)
	assert.Contains(t, resp.UserSkills.Technologies, "flask")
	assert.True(t, resp.UserSkills.ExperienceLevel.Valid())
	assert.Contains(t, resp.Message, "@dev")
}

func TestMatchAbortsOnRateLimit(t *testing.T) {
	gh := &fakeGitHub{
		err: &github.RateLimitError{RetryAfter: time.Minute},
	}
	svc := newTestMatchService(gh)

	req := models.MatchRequest{Skills: []string{"python"}}
	require.NoError(t, req.Validate())

	_, err := svc.MatchBySkills(context.Background(), req)

	var rl *github.RateLimitError
	require.ErrorAs(t, err, &rl)
}

func TestProfileFromSkillsSplitsLanguagesAndTechnologies(t *testing.T) {
	gh := &fakeGitHub{}
	svc := newTestMatchService(gh).(*matchService)

	profile := svc.profileFromSkills([]string{"Python", "JS", "django", "some-niche-tool"}, "")

	assert.InDelta(t, 0.5, profile.Languages["python"], 0.001)
	assert.InDelta(t, 0.5, profile.Languages["javascript"], 0.001)
	assert.Contains(t, profile.Technologies, "django")
	assert.Contains(t, profile.Technologies, "some-niche-tool")
	assert.Equal(t, models.Intermediate, profile.ExperienceLevel)

	var sum float64
	for _, w := range profile.Languages {
		sum += w
	}
	assert.InDelta(t, 1.0, sum, 0.001)
}

func TestProfileFromSkillsHonorsExperienceLevel(t *testing.T) {
	svc := newTestMatchService(&fakeGitHub{}).(*matchService)

	profile := svc.profileFromSkills([]string{"go"}, "expert")
	assert.Equal(t, models.Expert, profile.ExperienceLevel)
	assert.Contains(t, profile.Languages, "go")
}
