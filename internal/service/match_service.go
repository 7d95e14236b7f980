package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ahmednasr/issue-scout/internal/github"
	"github.com/ahmednasr/issue-scout/internal/match"
	"github.com/ahmednasr/issue-scout/internal/models"
	"github.com/ahmednasr/issue-scout/internal/skills"
)

// ---- Service interface + implementation ------------------------------------

// MatchService runs the full pipeline: profile → candidate pool → scored,
// ranked issues.
type MatchService interface {
	MatchBySkills(ctx context.Context, req models.MatchRequest) (models.MatchResponse, error)
	MatchByUsername(ctx context.Context, req models.MatchRequest) (models.MatchResponse, error)
}

type matchService struct {
	gh          GitHubAPI
	profiles    ProfileService
	assembler   *match.Assembler
	dict        *skills.Dictionary
	concurrency int
	log         *zap.Logger
	now         func() time.Time
}

// NewMatchService wires the collaborators. concurrency bounds how many GitHub
// queries run at once, to stay inside the hourly API quota.
func NewMatchService(gh GitHubAPI, profiles ProfileService, dict *skills.Dictionary, concurrency int, log *zap.Logger) MatchService {
	if concurrency < 1 {
		concurrency = 1
	}
	return &matchService{
		gh:          gh,
		profiles:    profiles,
		assembler:   match.NewAssembler(dict),
		dict:        dict,
		concurrency: concurrency,
		log:         log,
		now:         time.Now,
	}
}

// MatchBySkills builds an ad-hoc profile from an explicit skill list and runs
// the pipeline. The request must already be validated.
func (s *matchService) MatchBySkills(ctx context.Context, req models.MatchRequest) (models.MatchResponse, error) {
	profile := s.profileFromSkills(req.Skills, req.ExperienceLevel)

	issues, err := s.findMatches(ctx, profile, req.IssueTypes, req.MaxResults)
	if err != nil {
		return models.MatchResponse{}, err
	}

	return models.MatchResponse{
		Success:    true,
		Issues:     issues,
		TotalFound: len(issues),
		Message:    fmt.Sprintf("Found %d matching issues", len(issues)),
	}, nil
}

// MatchByUsername derives the profile from the user's GitHub account, then
// runs the pipeline. A missing account aborts before any matching work.
func (s *matchService) MatchByUsername(ctx context.Context, req models.MatchRequest) (models.MatchResponse, error) {
	profile, err := s.profiles.AnalyzeUser(ctx, req.Username)
	if err != nil {
		return models.MatchResponse{}, err
	}

	issues, err := s.findMatches(ctx, profile, req.IssueTypes, req.MaxResults)
	if err != nil {
		return models.MatchResponse{}, err
	}

	return models.MatchResponse{
		Success:    true,
		Issues:     issues,
		TotalFound: len(issues),
		UserSkills: &profile,
		Message:    fmt.Sprintf("Found %d matching issues for @%s", len(issues), req.Username),
	}, nil
}

// profileFromSkills canonicalizes an explicit skill list: known languages get
// equal weights summing to 1, everything else becomes a technology tag.
func (s *matchService) profileFromSkills(skillList []string, level string) models.SkillProfile {
	languages := make(map[string]float64)
	var technologies []string
	seen := make(map[string]struct{})

	for _, raw := range skillList {
		tag, ok := s.dict.CanonicalTag(raw)
		if !ok {
			tag = strings.ToLower(strings.TrimSpace(raw))
		}
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		if s.dict.IsLanguage(tag) {
			languages[tag] = 0
		} else {
			technologies = append(technologies, tag)
		}
	}
	for lang := range languages {
		languages[lang] = 1.0 / float64(len(languages))
	}

	experience := models.Intermediate
	if level != "" {
		experience = models.ExperienceLevel(level)
	}

	return models.SkillProfile{
		Languages:       languages,
		Technologies:    technologies,
		ExperienceLevel: experience,
	}
}

// findMatches executes the assembler's query plan against GitHub, merges the
// candidates and classifies, scores and ranks them.
func (s *matchService) findMatches(ctx context.Context, profile models.SkillProfile, issueTypes []string, maxResults int) ([]models.ScoredIssue, error) {
	intents := s.assembler.Plan(profile, issueTypes)
	results := make([]match.Result, len(intents))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, intent := range intents {
		g.Go(func() error {
			issues, err := s.execute(gctx, intent)
			if err != nil {
				// Rate-limit exhaustion aborts the whole request; a single
				// failed query otherwise just thins the pool.
				if isAbortWorthy(err) {
					return err
				}
				s.log.Warn("query failed",
					zap.String("skill", intent.Skill),
					zap.String("repo", intent.Repo),
					zap.Error(err))
				return nil
			}
			results[i] = match.Result{Skill: intent.Skill, Issues: issues}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	candidates := s.assembler.Merge(results)
	if err := s.fillRepoStars(ctx, candidates); err != nil {
		return nil, err
	}

	now := s.now()
	scored := make([]models.ScoredIssue, 0, len(candidates))
	for _, c := range candidates {
		difficulty := match.ClassifyDifficulty(c.Issue.Labels, c.Issue.RepoStars)
		score, matchedSkills := match.Score(profile, c.Issue, difficulty, c.Skills, s.dict, now)
		scored = append(scored, models.ScoredIssue{
			Issue:          c.Issue,
			Difficulty:     difficulty,
			MatchedSkills:  matchedSkills,
			RelevanceScore: score,
		})
	}

	ranked := match.Rank(scored, issueTypes, maxResults)
	s.log.Info("matched issues",
		zap.Int("queries", len(intents)),
		zap.Int("candidates", len(candidates)),
		zap.Int("returned", len(ranked)))
	return ranked, nil
}

func (s *matchService) execute(ctx context.Context, intent match.Intent) ([]models.Issue, error) {
	if intent.Repo != "" {
		return s.gh.ListRepoIssues(ctx, intent.Repo, intent.Labels, intent.Limit)
	}
	return s.gh.SearchIssues(ctx, intent.Query, intent.Limit)
}

// fillRepoStars resolves star counts for candidates whose search results did
// not include repository metadata. One lookup per distinct repository.
func (s *matchService) fillRepoStars(ctx context.Context, candidates []match.Candidate) error {
	missing := make(map[string][]int)
	for i, c := range candidates {
		if c.Issue.RepoStars == 0 && c.Issue.RepositoryName != "" {
			missing[c.Issue.RepositoryName] = append(missing[c.Issue.RepositoryName], i)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	type starred struct {
		repo  string
		stars int
	}
	resolved := make(chan starred, len(missing))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for repo := range missing {
		g.Go(func() error {
			summary, err := s.gh.GetRepo(gctx, repo)
			if err != nil {
				if isAbortWorthy(err) {
					return err
				}
				s.log.Debug("skipping repo stars", zap.String("repo", repo), zap.Error(err))
				return nil
			}
			resolved <- starred{repo: repo, stars: summary.Stars}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	close(resolved)

	for r := range resolved {
		for _, i := range missing[r.repo] {
			candidates[i].Issue.RepoStars = r.stars
		}
	}
	return nil
}

// isAbortWorthy separates failures that must cancel the whole pipeline from
// per-query noise.
func isAbortWorthy(err error) bool {
	var rl *github.RateLimitError
	return errors.As(err, &rl) || errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}
