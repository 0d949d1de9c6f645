package repository

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/google/go-github/v74/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMirror(t *testing.T, handler http.HandlerFunc) *githubMirrorRepository {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client := github.NewClient(nil)
	baseURL, err := url.Parse(server.URL + "/")
	require.NoError(t, err)
	client.BaseURL = baseURL
	return newGithubMirrorRepository(client, "firebase", "firebase-android-sdk")
}

func TestMirrorRepository_TagExists(t *testing.T) {
	ctx := context.Background()
	t.Run("Should find an existing tag", func(t *testing.T) {
		var gotPath string
		mirror := newTestMirror(t, func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"ref":"refs/tags/bom@1.2.3","object":{"sha":"abc123","type":"commit"}}`))
		})
		exists, err := mirror.TagExists(ctx, "bom@1.2.3")
		require.NoError(t, err)
		assert.True(t, exists)
		assert.True(t, strings.HasPrefix(gotPath, "/repos/firebase/firebase-android-sdk/git/ref/tags/"))
	})
	t.Run("Should report a missing tag", func(t *testing.T) {
		mirror := newTestMirror(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"Not Found"}`))
		})
		exists, err := mirror.TagExists(ctx, "bom@9.9.9")
		require.NoError(t, err)
		assert.False(t, exists)
	})
	t.Run("Should return other API errors", func(t *testing.T) {
		mirror := newTestMirror(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})
		_, err := mirror.TagExists(ctx, "bom@1.2.3")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "firebase/firebase-android-sdk")
	})
}

func TestNewMirrorRepository(t *testing.T) {
	t.Run("Should reject an invalid token", func(t *testing.T) {
		_, err := NewMirrorRepository("short", "firebase", "firebase-android-sdk")
		assert.Error(t, err)
	})
	t.Run("Should reject an invalid repository", func(t *testing.T) {
		_, err := NewMirrorRepository(strings.Repeat("a", 40), "-bad-", "repo")
		assert.Error(t, err)
	})
	t.Run("Should create a mirror for valid input", func(t *testing.T) {
		mirror, err := NewMirrorRepository(strings.Repeat("a", 40), "firebase", "firebase-android-sdk")
		require.NoError(t, err)
		assert.Equal(t, "firebase/firebase-android-sdk", mirror.Slug())
	})
}

func TestNoopMirrorRepository(t *testing.T) {
	mirror := NewNoopMirrorRepository("firebase", "firebase-android-sdk")
	_, err := mirror.TagExists(context.Background(), "bom@1.2.3")
	assert.True(t, errors.Is(err, ErrMirrorNotConfigured))
	assert.Equal(t, "firebase/firebase-android-sdk", mirror.Slug())
}
