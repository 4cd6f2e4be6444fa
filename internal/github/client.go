// Package github is the profile source: it lists a user's repositories
// through the GitHub REST API, transparently waiting out secondary rate
// limits.
package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"
	gh "github.com/google/go-github/v62/github"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/gitsight/gitsight/internal/analyzer"
)

// ErrProfileNotFound is returned when the username does not exist.
var ErrProfileNotFound = errors.New("profile not found")

// Profile identifies the fetched user.
type Profile struct {
	Username string
	URL      string
}

// Source yields a profile and its repository metadata. Forks are included
// in the listing; the caller decides what to skip.
type Source interface {
	FetchProfile(ctx context.Context, username string) (*Profile, []analyzer.RepositoryMetadata, error)
}

// Client implements Source against api.github.com.
type Client struct {
	rest *gh.Client
	log  *zap.Logger
}

// NewClient builds a Client. The token is optional; without it requests
// run against the anonymous rate limit.
func NewClient(token string, log *zap.Logger) (*Client, error) {
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil,
		github_ratelimit.WithSingleSleepLimit(1*time.Hour, nil))
	if err != nil {
		return nil, fmt.Errorf("create rate limit waiter: %w", err)
	}

	httpClient := &http.Client{Transport: rateLimitWaiter}
	if token != "" {
		httpClient.Transport = &oauth2.Transport{
			Base:   rateLimitWaiter,
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}),
		}
	}

	if log == nil {
		log = zap.NewNop()
	}
	return &Client{rest: gh.NewClient(httpClient), log: log}, nil
}

// FetchProfile resolves the user and lists all their repositories in API
// order, mapped to the analyzer's metadata shape.
func (c *Client) FetchProfile(ctx context.Context, username string) (*Profile, []analyzer.RepositoryMetadata, error) {
	user, _, err := c.rest.Users.Get(ctx, username)
	if err != nil {
		if isNotFound(err) {
			return nil, nil, fmt.Errorf("user %q: %w", username, ErrProfileNotFound)
		}
		return nil, nil, fmt.Errorf("fetch user %q: %w", username, err)
	}

	profile := &Profile{Username: user.GetLogin(), URL: user.GetHTMLURL()}

	var metas []analyzer.RepositoryMetadata
	opts := &gh.RepositoryListByUserOptions{
		ListOptions: gh.ListOptions{PerPage: 100},
	}
	for {
		repos, resp, err := c.rest.Repositories.ListByUser(ctx, username, opts)
		if err != nil {
			return nil, nil, fmt.Errorf("list repositories for %q: %w", username, err)
		}
		for _, r := range repos {
			metas = append(metas, analyzer.RepositoryMetadata{
				Name:        r.GetName(),
				URL:         r.GetHTMLURL(),
				CloneURL:    r.GetCloneURL(),
				Language:    r.GetLanguage(),
				Stars:       r.GetStargazersCount(),
				Forks:       r.GetForksCount(),
				Description: r.GetDescription(),
				Fork:        r.GetFork(),
			})
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
		c.log.Debug("fetching next repository page", zap.Int("page", resp.NextPage))
	}

	c.log.Info("profile fetched",
		zap.String("username", profile.Username),
		zap.Int("repositories", len(metas)))
	return profile, metas, nil
}

func isNotFound(err error) bool {
	var errResp *gh.ErrorResponse
	return errors.As(err, &errResp) &&
		errResp.Response != nil &&
		errResp.Response.StatusCode == http.StatusNotFound
}
