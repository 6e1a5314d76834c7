package github

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

const defaultBaseURL = "https://api.github.com"

var (
	// ErrNotFound means the requested user does not exist.
	ErrNotFound = errors.New("github: user not found")
	// ErrRateLimited means the API refused the request due to rate limiting.
	ErrRateLimited = errors.New("github: rate limited")
	// ErrUnavailable covers network failures and unexpected API responses.
	ErrUnavailable = errors.New("github: service unavailable")
)

// UserStats is the aggregated public activity for one account.
type UserStats struct {
	Login           string
	Name            string
	AvatarURL       string
	Bio             string
	PublicRepos     int
	TotalStars      int
	BestRepoStars   int
	BestRepoName    string
	MergedPRs       int
	AcceptedAnswers int
}

// Client fetches public user statistics from the GitHub REST API.
type Client struct {
	http    *retryablehttp.Client
	baseURL string
	token   string
	logger  *zap.Logger
}

// NewClient builds a stats client. The token is optional; without it the
// client works against the unauthenticated rate limit.
func NewClient(token string, logger *zap.Logger) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 2
	rc.HTTPClient.Timeout = 15 * time.Second
	rc.Logger = nil
	// Rate-limit responses must surface immediately, not after retries.
	rc.CheckRetry = func(ctx context.Context, resp *http.Response, err error) (bool, error) {
		if resp != nil && (resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusTooManyRequests) {
			return false, nil
		}
		return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
	}

	return &Client{
		http:    rc,
		baseURL: defaultBaseURL,
		token:   token,
		logger:  logger,
	}
}

// FetchUserStats resolves a username into aggregated statistics. The
// profile lookup is authoritative: if it fails, the whole fetch fails.
// The repo and search lookups are best-effort and degrade to zero.
func (c *Client) FetchUserStats(ctx context.Context, username string) (*UserStats, error) {
	profile, err := c.get(ctx, "/users/"+url.PathEscape(username))
	if err != nil {
		return nil, err
	}

	stats := &UserStats{
		Login:       profile.Get("login").String(),
		Name:        profile.Get("name").String(),
		AvatarURL:   profile.Get("avatar_url").String(),
		Bio:         profile.Get("bio").String(),
		PublicRepos: int(profile.Get("public_repos").Int()),
	}
	if stats.Name == "" {
		stats.Name = stats.Login
	}

	if repos, err := c.get(ctx, "/users/"+url.PathEscape(username)+"/repos?per_page=100&type=owner&sort=updated"); err != nil {
		c.logger.Warn("repo listing failed, star counts default to zero",
			zap.String("username", username), zap.Error(err))
	} else {
		repos.ForEach(func(_, repo gjson.Result) bool {
			stars := int(repo.Get("stargazers_count").Int())
			stats.TotalStars += stars
			if stars > stats.BestRepoStars {
				stats.BestRepoStars = stars
				stats.BestRepoName = repo.Get("name").String()
			}
			return true
		})
	}

	stats.MergedPRs = c.searchCount(ctx, username,
		fmt.Sprintf("type:pr+author:%s+is:merged", url.QueryEscape(username)))
	stats.AcceptedAnswers = c.searchCount(ctx, username,
		fmt.Sprintf("is:answer+author:%s", url.QueryEscape(username)))

	return stats, nil
}

// searchCount runs an issue search and returns its total_count, or zero
// when the search fails.
func (c *Client) searchCount(ctx context.Context, username, query string) int {
	result, err := c.get(ctx, "/search/issues?q="+query)
	if err != nil {
		c.logger.Warn("issue search failed, count defaults to zero",
			zap.String("username", username), zap.String("query", query), zap.Error(err))
		return 0
	}
	return int(result.Get("total_count").Int())
}

func (c *Client) get(ctx context.Context, path string) (gjson.Result, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return gjson.ParseBytes(body), nil
	case http.StatusNotFound:
		return gjson.Result{}, ErrNotFound
	case http.StatusForbidden, http.StatusTooManyRequests:
		return gjson.Result{}, ErrRateLimited
	default:
		return gjson.Result{}, fmt.Errorf("%w: unexpected status %d", ErrUnavailable, resp.StatusCode)
	}
}
