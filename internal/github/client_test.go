package github

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	gh "github.com/google/go-github/v62/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	rest := gh.NewClient(nil)
	base, err := url.Parse(srv.URL + "/")
	require.NoError(t, err)
	rest.BaseURL = base

	return &Client{rest: rest, log: zap.NewNop()}
}

func TestFetchProfile(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/octocat", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"login":"octocat","html_url":"https://github.com/octocat"}`)
	})
	mux.HandleFunc("/users/octocat/repos", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `[
			{"name":"alpha","html_url":"https://github.com/octocat/alpha",
			 "clone_url":"https://github.com/octocat/alpha.git",
			 "language":"Python","stargazers_count":10,"forks_count":2,
			 "description":"scores things","fork":false},
			{"name":"mirror","fork":true}
		]`)
	})

	c := testClient(t, mux)
	profile, metas, err := c.FetchProfile(context.Background(), "octocat")
	require.NoError(t, err)

	assert.Equal(t, "octocat", profile.Username)
	assert.Equal(t, "https://github.com/octocat", profile.URL)

	require.Len(t, metas, 2)
	assert.Equal(t, "alpha", metas[0].Name)
	assert.Equal(t, "https://github.com/octocat/alpha.git", metas[0].CloneURL)
	assert.Equal(t, "Python", metas[0].Language)
	assert.Equal(t, 10, metas[0].Stars)
	assert.Equal(t, 2, metas[0].Forks)
	assert.Equal(t, "scores things", metas[0].Description)
	assert.False(t, metas[0].Fork)
	// Forks stay in the listing; filtering is the caller's call.
	assert.True(t, metas[1].Fork)
}

func TestFetchProfile_Pagination(t *testing.T) {
	var baseURL string
	mux := http.NewServeMux()
	mux.HandleFunc("/users/octocat", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"login":"octocat"}`)
	})
	mux.HandleFunc("/users/octocat/repos", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "2" {
			fmt.Fprint(w, `[{"name":"second"}]`)
			return
		}
		w.Header().Set("Link",
			fmt.Sprintf(`<%s/users/octocat/repos?page=2>; rel="next"`, baseURL))
		fmt.Fprint(w, `[{"name":"first"}]`)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	baseURL = srv.URL

	rest := gh.NewClient(nil)
	base, err := url.Parse(srv.URL + "/")
	require.NoError(t, err)
	rest.BaseURL = base
	c := &Client{rest: rest, log: zap.NewNop()}

	_, metas, err := c.FetchProfile(context.Background(), "octocat")
	require.NoError(t, err)

	require.Len(t, metas, 2)
	assert.Equal(t, "first", metas[0].Name)
	assert.Equal(t, "second", metas[1].Name)
}

func TestFetchProfile_NotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/ghost", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"message":"Not Found"}`)
	})

	c := testClient(t, mux)
	_, _, err := c.FetchProfile(context.Background(), "ghost")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestFetchProfile_ServerError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/octocat", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	c := testClient(t, mux)
	_, _, err := c.FetchProfile(context.Background(), "octocat")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrProfileNotFound)
}

func TestNewClient(t *testing.T) {
	c, err := NewClient("", nil)
	require.NoError(t, err)
	require.NotNil(t, c.rest)

	c, err = NewClient("ghp_token", zap.NewNop())
	require.NoError(t, err)
	require.NotNil(t, c.rest)
}
