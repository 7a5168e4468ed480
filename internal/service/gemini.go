package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"giftme/internal/config"
)

// Oracle adapter error kinds. Callers inside the pipeline check these with
// errors.Is and fall back to keyword-only behavior; they never reach the user.
var (
	ErrOracleUnavailable   = errors.New("oracle unavailable")
	ErrOracleEmptyResponse = errors.New("oracle returned empty response")
)

// Oracle is the text-completion collaborator used by the chat pipeline:
// one prompt in, one text reply out. No retries, no caching.
type Oracle interface {
	Ask(ctx context.Context, prompt string) (string, error)
}

// GeminiClient calls the Google Generative Language API
type GeminiClient struct {
	cfg        *config.GeminiConfig
	httpClient *http.Client
}

// Ensure GeminiClient implements Oracle
var _ Oracle = (*GeminiClient)(nil)

// NewGeminiClient creates a new Gemini API client
func NewGeminiClient(cfg *config.GeminiConfig) *GeminiClient {
	return &GeminiClient{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
	}
}

// IsEnabled returns whether the client is configured and ready
func (c *GeminiClient) IsEnabled() bool {
	return c.cfg.Enabled
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type generateContentRequest struct {
	Contents []geminiContent `json:"contents"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason,omitempty"`
	} `json:"candidates"`
}

// Ask sends one generateContent request and returns the reply text.
// Network, auth and quota problems surface as ErrOracleUnavailable; a reply
// without any candidate text surfaces as ErrOracleEmptyResponse.
func (c *GeminiClient) Ask(ctx context.Context, prompt string) (string, error) {
	if !c.cfg.Enabled {
		return "", fmt.Errorf("%w: GEMINI_API_KEY is not set", ErrOracleUnavailable)
	}

	reqBody, err := json.Marshal(generateContentRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.cfg.APIBase, c.cfg.Model)
	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(reqBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.cfg.APIKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrOracleUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: reading response: %v", ErrOracleUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d: %s", ErrOracleUnavailable, resp.StatusCode, truncate(string(body), 200))
	}

	var result generateContentResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("%w: unmarshaling response: %v", ErrOracleUnavailable, err)
	}

	var sb strings.Builder
	for _, cand := range result.Candidates {
		for _, part := range cand.Content.Parts {
			sb.WriteString(part.Text)
		}
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", ErrOracleEmptyResponse
	}

	return text, nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
