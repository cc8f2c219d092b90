// Package gateway provides a gateway to the GitHub API,
// abstracting away the underlying REST and GraphQL clients.
package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"
	"github.com/google/go-github/v62/github"
	"github.com/naka-gawa/ghstats/internal/config"
	"github.com/naka-gawa/ghstats/internal/domain"
	"github.com/shurcooL/githubv4"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
)

// Fetcher defines the behavior of a gateway for fetching information from GitHub.
type Fetcher interface {
	FetchUserActivity(ctx context.Context, q ActivityQuery) (*domain.UserActivity, error)
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
type GitHubGateway struct {
	restClient    *github.Client
	graphqlClient *githubv4.Client
	recorder      *payloadRecorder
	logger        logrus.FieldLogger
}

var _ Fetcher = (*GitHubGateway)(nil)

// NewGitHubGateway is a constructor that creates a new instance of GitHubGateway.
// Requests carry conf.GithubAPIToken as a bearer token.
func NewGitHubGateway(conf *config.Config, logger logrus.FieldLogger) (*GitHubGateway, error) {
	var base http.RoundTripper = http.DefaultTransport
	if conf.WaitSecondaryRateLimit {
		rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(1*time.Hour, nil))
		if err != nil {
			return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
		}
		base = rateLimitWaiter
	}

	recorder := newPayloadRecorder(newLimitedTransport(base, conf.RequestRate))
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: conf.GithubAPIToken, TokenType: "Bearer"})
	httpClient := &http.Client{
		Transport: &oauth2.Transport{
			Base:   recorder,
			Source: ts,
		},
	}

	restClient := github.NewClient(httpClient)
	baseURL, err := url.Parse(conf.GithubRESTAddress)
	if err != nil {
		return nil, &domain.ConfigError{Msg: "invalid GITHUB_REST_URL", Err: err}
	}
	restClient.BaseURL = baseURL

	return &GitHubGateway{
		restClient:    restClient,
		graphqlClient: githubv4.NewEnterpriseClient(conf.GithubGraphQLAddress, httpClient),
		recorder:      recorder,
		logger:        logger,
	}, nil
}

// responseEnvelope is the top level shape of every GraphQL response.
type responseEnvelope struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"errors"`
}

// reportedBy tells whether err is the errors array of the response itself.
// The client only returns that array once data decoded cleanly; any other
// error means the data did not match the query.
func (e responseEnvelope) reportedBy(err error) bool {
	return len(e.Errors) > 0 && err.Error() == e.Errors[0].Message
}

// FetchUserActivity runs the activity query for a single login.
// A response without a data entry is returned as *domain.UpstreamError and a
// null user as *domain.UnknownLoginError, both carrying the raw payload.
func (g *GitHubGateway) FetchUserActivity(ctx context.Context, q ActivityQuery) (*domain.UserActivity, error) {
	log := g.logger.WithField("login", q.Login)
	log.WithField("window", q.Window.String()).Debug("Fetching user activity using GraphQL API...")

	var resp userActivityQuery
	g.recorder.reset()
	queryErr := g.graphqlClient.Query(ctx, &resp, q.Variables())
	payload, transportErr := g.recorder.last()
	if transportErr != nil {
		return nil, &domain.TransportError{Login: q.Login, Err: transportErr}
	}
	if payload == nil && queryErr != nil {
		// The request never reached the transport.
		return nil, &domain.TransportError{Login: q.Login, Err: queryErr}
	}

	var env responseEnvelope
	if err := json.Unmarshal(payload, &env); err != nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil, &domain.UpstreamError{Login: q.Login, Payload: payload}
	}
	if resp.User == nil {
		return nil, &domain.UnknownLoginError{Login: q.Login, Payload: payload}
	}
	if queryErr != nil {
		if !env.reportedBy(queryErr) {
			return nil, fmt.Errorf("failed to decode GraphQL response for %q: %w", q.Login, queryErr)
		}
		for _, e := range env.Errors {
			log.WithField("type", e.Type).Warn("GraphQL response carries an error: " + e.Message)
		}
	}

	log.Debug("Completed fetching user activity.")
	return resp.User.toUserActivity(), nil
}

// FetchRateLimits returns the remaining request budget of the token.
func (g *GitHubGateway) FetchRateLimits(ctx context.Context) ([]domain.RateBudget, error) {
	g.logger.Debug("Fetching rate limits using REST API...")
	limits, _, err := g.restClient.RateLimit.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rate limits with REST API: %w", err)
	}

	var budgets []domain.RateBudget
	for _, r := range []struct {
		resource string
		rate     *github.Rate
	}{
		{"core", limits.Core},
		{"graphql", limits.GraphQL},
		{"search", limits.Search},
	} {
		if r.rate == nil {
			continue
		}
		budgets = append(budgets, domain.RateBudget{
			Resource:  r.resource,
			Limit:     r.rate.Limit,
			Remaining: r.rate.Remaining,
			Reset:     r.rate.Reset.Time.UTC(),
		})
	}
	return budgets, nil
}
