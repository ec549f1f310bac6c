package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tutorlink/api/utils"
)

// ErrUnavailable wraps every failure mode of the external model service.
// Callers treat it as "no result", never as a reason to fail the request.
var ErrUnavailable = errors.New("ai service unavailable")

const (
	requestTimeout = 10 * time.Second
	scoreCacheTTL  = 24 * time.Hour
)

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	cache   *redis.Client // optional; nil disables score caching
}

func NewClient(baseURL, apiKey string, cache *redis.Client) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: requestTimeout},
		cache:   cache,
	}
}

type CompatibilityScoreRequest struct {
	StudentLearningPreferences  string `json:"studentLearningPreferences"`
	StudentSubjectInterests     string `json:"studentSubjectInterests"`
	TutorSubjectMatterExpertise string `json:"tutorSubjectMatterExpertise"`
	TutorTeachingStyle          string `json:"tutorTeachingStyle"`
}

type CompatibilityScore struct {
	CompatibilityScore float64 `json:"compatibilityScore"`
	Justification      string  `json:"justification"`
}

// GenerateCompatibilityScore asks the model service for a [0,1] affinity
// estimate between a student and a tutor. Results are cached per user pair so
// repeat profile views skip the round trip; a cache outage is ignored.
func (c *Client) GenerateCompatibilityScore(ctx context.Context, studentID, tutorID string, req CompatibilityScoreRequest) (*CompatibilityScore, error) {
	cacheKey := "compat:" + utils.ChatIDFromStrings(studentID, tutorID)

	if c.cache != nil {
		if cached, err := c.cache.Get(ctx, cacheKey).Result(); err == nil {
			var score CompatibilityScore
			if json.Unmarshal([]byte(cached), &score) == nil {
				return &score, nil
			}
		}
	}

	var score CompatibilityScore
	if err := c.post(ctx, "/v1/compatibility-score", req, &score); err != nil {
		return nil, err
	}
	if score.CompatibilityScore < 0 || score.CompatibilityScore > 1 {
		return nil, fmt.Errorf("%w: score %f out of range", ErrUnavailable, score.CompatibilityScore)
	}

	if c.cache != nil {
		if payload, err := json.Marshal(score); err == nil {
			if err := c.cache.Set(ctx, cacheKey, payload, scoreCacheTTL).Err(); err != nil {
				log.Printf("Failed to cache compatibility score for %s: %v", cacheKey, err)
			}
		}
	}

	return &score, nil
}

type suggestTagsRequest struct {
	ExpertiseDescription string `json:"expertiseDescription"`
}

type suggestTagsResponse struct {
	SuggestedTags []string `json:"suggestedTags"`
}

// SuggestTags asks the model service for 5-10 skill tags describing a tutor's
// expertise. The caller is responsible for filtering the result to the
// controlled subject vocabulary before display.
func (c *Client) SuggestTags(ctx context.Context, expertiseDescription string) ([]string, error) {
	var resp suggestTagsResponse
	err := c.post(ctx, "/v1/suggest-tags", suggestTagsRequest{ExpertiseDescription: expertiseDescription}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.SuggestedTags, nil
}

func (c *Client) post(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: marshal request: %v", ErrUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	req.Header.Set("content-type", "application/json")
	req.Header.Set("accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("api-key", c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: status %d: %s", ErrUnavailable, resp.StatusCode, string(raw))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %v", ErrUnavailable, err)
	}
	return nil
}
