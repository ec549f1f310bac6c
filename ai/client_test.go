package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scoreServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "test-key", nil)
}

func TestGenerateCompatibilityScore(t *testing.T) {
	client := scoreServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/compatibility-score", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("api-key"))

		var req CompatibilityScoreRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Visual learning", req.StudentLearningPreferences)

		json.NewEncoder(w).Encode(CompatibilityScore{
			CompatibilityScore: 0.82,
			Justification:      "Strong subject overlap.",
		})
	})

	score, err := client.GenerateCompatibilityScore(context.Background(), "s1", "t1", CompatibilityScoreRequest{
		StudentLearningPreferences: "Visual learning",
	})
	require.NoError(t, err)
	assert.InDelta(t, 0.82, score.CompatibilityScore, 0.0001)
	assert.Equal(t, "Strong subject overlap.", score.Justification)
}

func TestGenerateCompatibilityScoreServerError(t *testing.T) {
	client := scoreServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model overloaded", http.StatusInternalServerError)
	})

	_, err := client.GenerateCompatibilityScore(context.Background(), "s1", "t1", CompatibilityScoreRequest{})
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestGenerateCompatibilityScoreMalformedResponse(t *testing.T) {
	client := scoreServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	})

	_, err := client.GenerateCompatibilityScore(context.Background(), "s1", "t1", CompatibilityScoreRequest{})
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestGenerateCompatibilityScoreOutOfRange(t *testing.T) {
	client := scoreServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(CompatibilityScore{CompatibilityScore: 1.7})
	})

	_, err := client.GenerateCompatibilityScore(context.Background(), "s1", "t1", CompatibilityScoreRequest{})
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestGenerateCompatibilityScoreUnreachableService(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", "", nil)

	_, err := client.GenerateCompatibilityScore(context.Background(), "s1", "t1", CompatibilityScoreRequest{})
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestSuggestTags(t *testing.T) {
	client := scoreServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/suggest-tags", r.URL.Path)

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "I teach calculus and statistics.", req["expertiseDescription"])

		json.NewEncoder(w).Encode(map[string][]string{
			"suggestedTags": {"Calculus", "Statistics", "Underwater Basket Weaving"},
		})
	})

	tags, err := client.SuggestTags(context.Background(), "I teach calculus and statistics.")
	require.NoError(t, err)
	assert.Equal(t, []string{"Calculus", "Statistics", "Underwater Basket Weaving"}, tags)
}
