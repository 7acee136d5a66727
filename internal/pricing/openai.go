package pricing

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const (
	apiURL = "https://api.openai.com/v1/chat/completions"

	// The advisor is a best-effort collaborator; keep the budget tight so a
	// slow upstream cannot stall a request.
	requestTimeout = 15 * time.Second

	rateLimit = 2 // requests per second
	rateBurst = 5
)

// OpenAIClient calls the chat completions API with rate limiting.
type OpenAIClient struct {
	apiURL      string
	apiKey      string
	model       string
	httpClient  *http.Client
	rateLimiter *rate.Limiter
}

func NewOpenAIClient(apiKey, model string) *OpenAIClient {
	return &OpenAIClient{
		apiURL:      apiURL,
		apiKey:      apiKey,
		model:       model,
		rateLimiter: rate.NewLimiter(rate.Limit(rateLimit), rateBurst),
		httpClient: &http.Client{
			Timeout: requestTimeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 5,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *OpenAIClient) AnalyzePricing(ctx context.Context, profile BusinessProfile, prices []ServicePrice) (*Analysis, error) {
	content, err := c.complete(ctx, buildAnalysisPrompt(profile, prices))
	if err != nil {
		return nil, err
	}
	var analysis Analysis
	if err := json.Unmarshal([]byte(content), &analysis); err != nil {
		return nil, fmt.Errorf("decode analysis: %w", err)
	}
	return &analysis, nil
}

func (c *OpenAIClient) RecommendServices(ctx context.Context, profile BusinessProfile) ([]ServiceRecommendation, error) {
	content, err := c.complete(ctx, buildRecommendationsPrompt(profile))
	if err != nil {
		return nil, err
	}
	var out struct {
		Recommendations []ServiceRecommendation `json:"recommendations"`
	}
	if err := json.Unmarshal([]byte(content), &out); err != nil {
		return nil, fmt.Errorf("decode recommendations: %w", err)
	}
	return out.Recommendations, nil
}

func (c *OpenAIClient) complete(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", errors.New("missing OPENAI_API_KEY")
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	body, err := json.Marshal(chatRequest{
		Model:       c.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: 0.2,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewBuffer(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("openai api error (%d): %s", resp.StatusCode, string(raw))
	}

	var result chatResponse
	if err := json.Unmarshal(raw, &result); err != nil {
		return "", err
	}
	if len(result.Choices) == 0 {
		return "", errors.New("empty completion response")
	}

	content := result.Choices[0].Message.Content
	if !json.Valid([]byte(content)) {
		return "", errors.New("model did not return valid JSON")
	}
	return content, nil
}
