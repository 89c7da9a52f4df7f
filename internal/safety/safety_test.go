package safety

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestChecker_AllowsSafeContent(t *testing.T) {
	var got moderationRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(moderationResponse{Safe: true, Score: 0.1})
	}))
	defer srv.Close()

	c := New(Config{APIURL: srv.URL, APIKey: "test-key", Strictness: 0.8}, zap.NewNop())
	err := c.EnsureSafe(context.Background(), []byte("media-bytes"), "image/jpeg")
	require.NoError(t, err)
	require.Equal(t, "image/jpeg", got.MimeType)
	require.Equal(t, 0.8, got.Strictness)
	require.NotEmpty(t, got.Data)
}

func TestChecker_RejectsUnsafeContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(moderationResponse{Safe: false, Score: 0.97, Labels: []string{"violence"}})
	}))
	defer srv.Close()

	c := New(Config{APIURL: srv.URL, APIKey: "test-key"}, zap.NewNop())
	err := c.EnsureSafe(context.Background(), []byte("media-bytes"), "image/jpeg")
	require.ErrorIs(t, err, ErrUnsafeContent)
}

func TestChecker_SkipsWhenUnconfigured(t *testing.T) {
	c := New(Config{}, zap.NewNop())
	err := c.EnsureSafe(context.Background(), []byte("media-bytes"), "image/jpeg")
	require.NoError(t, err)
}

func TestChecker_FailsOnAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := New(Config{APIURL: srv.URL, APIKey: "test-key"}, zap.NewNop())
	err := c.EnsureSafe(context.Background(), []byte("media-bytes"), "image/jpeg")
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrUnsafeContent)
}
