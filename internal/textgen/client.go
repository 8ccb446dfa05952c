package textgen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// Client is an HTTP client for the chat-completions API. The response text is
// stored verbatim by callers; nothing here interprets it.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	prompts    Prompts
	httpClient *http.Client

	// limiter throttles outbound calls so one busy instance stays inside the
	// upstream quota instead of burning it on 429 responses.
	limiter *rate.Limiter
}

// NewClient creates a new completion client from a validated Config.
func NewClient(cfg Config) *Client {
	return &Client{
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		baseURL: cfg.BaseURL,
		prompts: PromptsFor(cfg.Lang),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		limiter: rate.NewLimiter(rate.Every(time.Second), 3),
	}
}

// GenerateResume produces resume text from the applicant details.
func (c *Client) GenerateResume(ctx context.Context, details string) (string, error) {
	return c.Complete(ctx, c.prompts.ResumeWriter, details)
}

// FormatDocument rewrites raw text as formatted HTML.
func (c *Client) FormatDocument(ctx context.Context, content string) (string, error) {
	return c.Complete(ctx, c.prompts.DocumentFormatter, content)
}

// Complete sends one system/user instruction pair and returns the generated
// text. Timeouts, 429 and 5xx responses come back wrapped in ErrUnavailable;
// the caller must treat those as retryable and persist nothing.
func (c *Client) Complete(ctx context.Context, system, user string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	payload, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	LogRequest(c.model, len(system)+len(user))
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Covers client timeouts and context cancellation.
		LogError("complete", err)
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		LogError("complete", err)
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		err := fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
		LogError("complete", err)
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		var parsed chatResponse
		if json.Unmarshal(body, &parsed) == nil && parsed.Error != nil {
			return "", fmt.Errorf("completion failed: status %d: %s", resp.StatusCode, parsed.Error.Type)
		}
		return "", fmt.Errorf("completion failed: status %d", resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return "", ErrEmptyCompletion
	}

	text := parsed.Choices[0].Message.Content
	LogResponse(resp.StatusCode, time.Since(start), len(text))
	return text, nil
}
