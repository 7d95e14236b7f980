package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ahmednasr/issue-scout/internal/models"
	"github.com/ahmednasr/issue-scout/internal/skills"
)

// maxReposToAnalyze bounds how many of a user's repositories feed the profile.
const maxReposToAnalyze = 50

// ---- GitHub contract -------------------------------------------------------

// GitHubAPI is the slice of the GitHub client the services depend on.
type GitHubAPI interface {
	GetUser(ctx context.Context, username string) (models.Account, error)
	ListUserRepos(ctx context.Context, username string, limit int) ([]models.RepoSummary, error)
	ListRepoLanguages(ctx context.Context, fullName string) (map[string]int64, error)
	GetRepo(ctx context.Context, fullName string) (models.RepoSummary, error)
	ListRepoIssues(ctx context.Context, fullName string, labels []string, limit int) ([]models.Issue, error)
	SearchIssues(ctx context.Context, query string, limit int) ([]models.Issue, error)
}

// ---- Service interface + implementation ------------------------------------

// ProfileService derives a SkillProfile from a GitHub account.
type ProfileService interface {
	AnalyzeUser(ctx context.Context, username string) (models.SkillProfile, error)
}

type profileService struct {
	gh          GitHubAPI
	builder     *skills.Builder
	concurrency int
	log         *zap.Logger
	now         func() time.Time
}

// NewProfileService wires the GitHub client and the profile builder.
func NewProfileService(gh GitHubAPI, builder *skills.Builder, concurrency int, log *zap.Logger) ProfileService {
	if concurrency < 1 {
		concurrency = 1
	}
	return &profileService{
		gh:          gh,
		builder:     builder,
		concurrency: concurrency,
		log:         log,
		now:         time.Now,
	}
}

// AnalyzeUser fetches the account record and its repositories, fills in the
// per-repository language byte maps, and builds the profile. A missing user
// surfaces github.ErrNotFound before any profile work happens.
func (s *profileService) AnalyzeUser(ctx context.Context, username string) (models.SkillProfile, error) {
	acct, err := s.gh.GetUser(ctx, username)
	if err != nil {
		return models.SkillProfile{}, fmt.Errorf("fetching user %q: %w", username, err)
	}

	repos, err := s.gh.ListUserRepos(ctx, username, maxReposToAnalyze)
	if err != nil {
		return models.SkillProfile{}, fmt.Errorf("listing repos for %q: %w", username, err)
	}

	// Language byte maps are one extra call per repository; fetch them
	// concurrently within the configured limit. A repo whose languages call
	// fails just contributes no bytes.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i := range repos {
		g.Go(func() error {
			languages, err := s.gh.ListRepoLanguages(gctx, repos[i].FullName)
			if err != nil {
				if isAbortWorthy(err) {
					return err
				}
				s.log.Debug("skipping repo languages",
					zap.String("repo", repos[i].FullName), zap.Error(err))
				return nil
			}
			repos[i].Languages = languages
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return models.SkillProfile{}, err
	}

	profile := s.builder.Build(acct, repos, s.now())
	s.log.Info("analyzed user",
		zap.String("username", username),
		zap.Int("repos", len(repos)),
		zap.Int("languages", len(profile.Languages)),
		zap.Int("technologies", len(profile.Technologies)),
		zap.String("experience_level", string(profile.ExperienceLevel)))
	return profile, nil
}
