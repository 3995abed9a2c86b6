package transport_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/plugsync/internal/transport"
	"github.com/agentstation/plugsync/pkg/errors"
)

func TestBearerAuthApplied(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"ok": true}`))
	}))
	defer srv.Close()

	c := transport.New("test", &transport.BearerAuth{Token: "tok-123"})
	var out map[string]bool
	require.NoError(t, c.Get(context.Background(), srv.URL, &out))
	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.True(t, out["ok"])
}

func TestHeaderAuthApplied(t *testing.T) {
	var app, key string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		app = r.Header.Get("X-Algolia-Application-Id")
		key = r.Header.Get("X-Algolia-API-Key")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := transport.New("algolia", &transport.HeaderAuth{Headers: map[string]string{
		"X-Algolia-Application-Id": "APP",
		"X-Algolia-API-Key":        "KEY",
	}})
	require.NoError(t, c.Get(context.Background(), srv.URL, nil))
	assert.Equal(t, "APP", app)
	assert.Equal(t, "KEY", key)
}

func TestStatusCodesMapToSentinels(t *testing.T) {
	tests := []struct {
		status   int
		sentinel error
	}{
		{http.StatusNotFound, errors.ErrNotFound},
		{http.StatusTooManyRequests, errors.ErrRateLimited},
		{http.StatusBadGateway, errors.ErrProviderUnavailable},
	}

	for _, tt := range tests {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(tt.status)
		}))

		c := transport.New("test", nil)
		err := c.Get(context.Background(), srv.URL, nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, tt.sentinel)
		srv.Close()
	}
}

func TestPostEncodesBody(t *testing.T) {
	var gotBody string
	var gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		gotBody = string(data)
		gotContentType = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c := transport.New("test", nil)
	err := c.Post(context.Background(), srv.URL, map[string]string{"name": "pinia"}, nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name": "pinia"}`, gotBody)
	assert.Equal(t, "application/json", gotContentType)
}

func TestGetText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/vnd.github.raw+json", r.Header.Get("Accept"))
		_, _ = w.Write([]byte("# readme body"))
	}))
	defer srv.Close()

	c := transport.New("github", nil)
	body, err := c.GetText(context.Background(), srv.URL, "application/vnd.github.raw+json")
	require.NoError(t, err)
	assert.Equal(t, "# readme body", body)
}
