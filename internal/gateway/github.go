// Package gateway provides a gateway to the GitHub API,
// abstracting away the underlying REST and GraphQL clients.
package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v62/github"
	"github.com/shurcooL/githubv4"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"

	"github.com/naka-gawa/github-activity/internal/domain"
)

// Fetcher defines the behavior of a gateway for fetching information from GitHub.
type Fetcher interface {
	FetchEvents(ctx context.Context, user string) FetchResult
	FetchContributions(ctx context.Context, user string) (*domain.Contributions, error)
}

// Options configures the HTTP stack of a GitHubGateway.
type Options struct {
	// Token enables authenticated requests when non-empty.
	Token string
	// WaitRateLimit sleeps through secondary rate limits instead of failing.
	WaitRateLimit bool
	// APIURL overrides the REST base URL, e.g. for GitHub Enterprise.
	APIURL string
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
type GitHubGateway struct {
	restClient    *github.Client
	graphqlClient *githubv4.Client
	logger        *zap.Logger
}

// contributionsQuery fetches the contribution totals of a single user.
type contributionsQuery struct {
	User struct {
		ContributionsCollection struct {
			TotalCommitContributions            int
			TotalIssueContributions             int
			TotalPullRequestContributions       int
			TotalPullRequestReviewContributions int
		}
	} `graphql:"user(login: $login)"`
}

// NewGitHubGateway is a constructor that creates a new instance of GitHubGateway.
func NewGitHubGateway(opts Options, logger *zap.Logger) (*GitHubGateway, error) {
	var transport http.RoundTripper = http.DefaultTransport
	if opts.WaitRateLimit {
		rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(transport, github_ratelimit.WithSingleSleepLimit(1*time.Hour, nil))
		if err != nil {
			return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
		}
		transport = rateLimitWaiter
	}
	if opts.Token != "" {
		transport = &oauth2.Transport{
			Base:   transport,
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: opts.Token}),
		}
	}
	httpClient := &http.Client{Transport: transport}

	restClient := github.NewClient(httpClient)
	graphqlClient := githubv4.NewClient(httpClient)
	if opts.APIURL != "" {
		baseURL, err := url.Parse(strings.TrimSuffix(opts.APIURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("failed to parse API URL %q: %w", opts.APIURL, err)
		}
		restClient.BaseURL = baseURL
		graphqlClient = githubv4.NewEnterpriseClient(baseURL.String()+"graphql", httpClient)
	}

	return &GitHubGateway{
		restClient:    restClient,
		graphqlClient: graphqlClient,
		logger:        logger,
	}, nil
}

// FetchEvents performs a single GET on the user's public events feed and
// classifies the outcome. It never retries.
func (g *GitHubGateway) FetchEvents(ctx context.Context, user string) FetchResult {
	path := fmt.Sprintf("users/%s/events", url.PathEscape(user))
	g.logger.Debug("fetching activity feed", zap.String("user", user), zap.String("path", path))

	req, err := g.restClient.NewRequest(http.MethodGet, path, nil)
	if err != nil {
		return transportFailure(fmt.Errorf("failed to create request: %w", err))
	}

	var raws []json.RawMessage
	resp, err := g.restClient.Do(ctx, req, &raws)
	if resp == nil {
		// No response at all: DNS, refused connection, reset, cancelled context.
		g.logger.Debug("activity feed request failed", zap.String("user", user), zap.Error(err))
		return transportFailure(err)
	}

	g.logger.Debug("activity feed response",
		zap.String("user", user),
		zap.Int("status", resp.StatusCode),
		zap.Int("remaining", resp.Rate.Remaining),
	)

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return FetchResult{Status: FetchNotFound, StatusCode: resp.StatusCode}
	case resp.StatusCode != http.StatusOK:
		return FetchResult{Status: FetchRemoteError, StatusCode: resp.StatusCode}
	case err != nil:
		return transportFailure(fmt.Errorf("failed to decode events response: %w", err))
	}

	events, malformed := domain.DecodeEvents(raws)
	for _, m := range malformed {
		g.logger.Debug("skipping malformed event", zap.String("user", user), zap.Error(m))
	}
	g.logger.Debug("activity feed decoded",
		zap.String("user", user),
		zap.Int("events", len(events)),
		zap.Int("malformed", len(malformed)),
	)

	return FetchResult{
		Status:     FetchSucceeded,
		StatusCode: resp.StatusCode,
		Events:     events,
		Malformed:  malformed,
	}
}

// FetchContributions fetches the user's contribution totals with the GraphQL API.
// The GraphQL API always requires an authenticated client.
func (g *GitHubGateway) FetchContributions(ctx context.Context, user string) (*domain.Contributions, error) {
	g.logger.Debug("fetching contributions using GraphQL API...", zap.String("user", user))

	var q contributionsQuery
	variables := map[string]interface{}{"login": githubv4.String(user)}
	if err := g.graphqlClient.Query(ctx, &q, variables); err != nil {
		return nil, fmt.Errorf("failed to execute GraphQL query for contributions: %w", err)
	}

	c := q.User.ContributionsCollection
	g.logger.Debug("completed fetching contributions", zap.String("user", user))
	return &domain.Contributions{
		Commits:      c.TotalCommitContributions,
		Issues:       c.TotalIssueContributions,
		PullRequests: c.TotalPullRequestContributions,
		Reviews:      c.TotalPullRequestReviewContributions,
	}, nil
}
