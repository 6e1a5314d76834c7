package github

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c := NewClient("", zap.NewNop())
	c.http.RetryMax = 0
	c.baseURL = server.URL
	return c
}

func TestFetchUserStats(t *testing.T) {
	handler := http.NewServeMux()
	handler.HandleFunc("/users/octocat", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"login":"octocat","name":"The Octocat","avatar_url":"https://example.com/a.png","bio":"hi","public_repos":8}`)
	})
	handler.HandleFunc("/users/octocat/repos", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "100", r.URL.Query().Get("per_page"))
		fmt.Fprint(w, `[
			{"name":"alpha","stargazers_count":5},
			{"name":"beta","stargazers_count":20},
			{"name":"gamma","stargazers_count":7}
		]`)
	})
	handler.HandleFunc("/search/issues", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("q")
		switch {
		case strings.Contains(q, "is:merged"):
			fmt.Fprint(w, `{"total_count":42}`)
		case strings.Contains(q, "is:answer"):
			fmt.Fprint(w, `{"total_count":3}`)
		default:
			t.Errorf("unexpected search query %q", q)
		}
	})

	c := newTestClient(t, handler)
	stats, err := c.FetchUserStats(context.Background(), "octocat")
	require.NoError(t, err)

	assert.Equal(t, "octocat", stats.Login)
	assert.Equal(t, "The Octocat", stats.Name)
	assert.Equal(t, "hi", stats.Bio)
	assert.Equal(t, 8, stats.PublicRepos)
	assert.Equal(t, 32, stats.TotalStars)
	assert.Equal(t, 20, stats.BestRepoStars)
	assert.Equal(t, "beta", stats.BestRepoName)
	assert.Equal(t, 42, stats.MergedPRs)
	assert.Equal(t, 3, stats.AcceptedAnswers)
}

func TestFetchUserStatsNameFallsBackToLogin(t *testing.T) {
	handler := http.NewServeMux()
	handler.HandleFunc("/users/ghost", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"login":"ghost","name":null,"public_repos":0}`)
	})
	handler.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"total_count":0}`)
	})

	c := newTestClient(t, handler)
	stats, err := c.FetchUserStats(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Equal(t, "ghost", stats.Name)
}

func TestFetchUserStatsUnknownUser(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := c.FetchUserStats(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFetchUserStatsRateLimited(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))

	_, err := c.FetchUserStats(context.Background(), "octocat")
	assert.ErrorIs(t, err, ErrRateLimited)
}

func TestFetchUserStatsDegradesOnPartialFailure(t *testing.T) {
	handler := http.NewServeMux()
	handler.HandleFunc("/users/octocat", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"login":"octocat","public_repos":2}`)
	})
	handler.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	c := newTestClient(t, handler)
	stats, err := c.FetchUserStats(context.Background(), "octocat")
	require.NoError(t, err, "profile success must carry the fetch even when aggregation fails")

	assert.Equal(t, 2, stats.PublicRepos)
	assert.Zero(t, stats.TotalStars)
	assert.Zero(t, stats.MergedPRs)
	assert.Zero(t, stats.AcceptedAnswers)
}

func TestAuthorizationHeader(t *testing.T) {
	var gotAuth string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/users/octocat" {
			gotAuth = r.Header.Get("Authorization")
		}
		fmt.Fprint(w, `{"login":"octocat","total_count":0}`)
	})

	server := httptest.NewServer(handler)
	defer server.Close()

	c := NewClient("secret-token", zap.NewNop())
	c.baseURL = server.URL

	_, err := c.FetchUserStats(context.Background(), "octocat")
	require.NoError(t, err)
	assert.Equal(t, "Bearer secret-token", gotAuth)
}
