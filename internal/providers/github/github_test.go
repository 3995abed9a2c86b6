package github_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/plugsync/internal/providers/github"
	"github.com/agentstation/plugsync/pkg/errors"
	"github.com/agentstation/plugsync/pkg/manifest"
)

func githubRepo() manifest.Repo {
	return manifest.Repo{Source: "github.com", Owner: "vuejs", Name: "vue-router"}
}

func TestRepoInfo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/repos/vuejs/vue-router", r.URL.Path)
		require.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{
			"stargazers_count": 19000,
			"owner": {
				"login": "vuejs",
				"html_url": "https://github.com/vuejs",
				"avatar_url": "https://avatars.githubusercontent.com/u/6128107"
			}
		}`))
	}))
	defer srv.Close()

	c := github.New("tok", github.WithBaseURL(srv.URL))
	info, err := c.RepoInfo(context.Background(), githubRepo())
	require.NoError(t, err)
	assert.Equal(t, 19000, info.Stars)
	assert.Equal(t, "vuejs", info.AuthorName)
	assert.Equal(t, "https://github.com/vuejs", info.AuthorLink)
	assert.NotEmpty(t, info.AuthorAvatar)
}

func TestRepoInfoUnsupportedHost(t *testing.T) {
	c := github.New("")
	_, err := c.RepoInfo(context.Background(), manifest.Repo{Source: "gitlab.com", Owner: "o", Name: "r"})
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrNotFound)
}

func TestReadmeRaw(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/repos/vuejs/vue-router/readme", r.URL.Path)
		require.Equal(t, "application/vnd.github.raw+json", r.Header.Get("Accept"))
		_, _ = w.Write([]byte("# vue-router\n\nThe official router."))
	}))
	defer srv.Close()

	c := github.New("", github.WithBaseURL(srv.URL))
	content, err := c.Readme(context.Background(), githubRepo())
	require.NoError(t, err)
	assert.Contains(t, content, "official router")
}

func TestReadmeMissingIsNoContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := github.New("", github.WithBaseURL(srv.URL))
	_, err := c.Readme(context.Background(), githubRepo())
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrNoContent)
}

func TestCommentThread(t *testing.T) {
	var createdBody, updatedBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/repos/vuejs/plugins/issues/7/comments":
			_, _ = w.Write([]byte(`[{"id": 100, "body": "hello"}]`))
		case r.Method == http.MethodPost && r.URL.Path == "/repos/vuejs/plugins/issues/7/comments":
			data, _ := io.ReadAll(r.Body)
			createdBody = string(data)
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{}`))
		case r.Method == http.MethodPatch && r.URL.Path == "/repos/vuejs/plugins/issues/comments/100":
			data, _ := io.ReadAll(r.Body)
			updatedBody = string(data)
			_, _ = w.Write([]byte(`{}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := github.New("tok", github.WithBaseURL(srv.URL))
	thread := github.NewCommentThread(c, "vuejs/plugins", 7)

	comments, err := thread.List(context.Background())
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "100", comments[0].ID)
	assert.Equal(t, "hello", comments[0].Body)

	require.NoError(t, thread.Create(context.Background(), "new summary"))
	assert.Contains(t, createdBody, "new summary")

	require.NoError(t, thread.Update(context.Background(), "100", "edited summary"))
	assert.Contains(t, updatedBody, "edited summary")
}
