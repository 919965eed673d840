// Package generator wraps the hosted text-generation endpoint behind a
// typed failure surface and runs the per-section
// generate -> validate -> regenerate loop.
package generator

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
)

// GenOptions are the generation parameters passed per request.
type GenOptions struct {
	Temperature float64
	MaxTokens   int
}

// Client is the AI generation collaborator. Implementations return the
// generated text or a typed failure the error classifier understands.
type Client interface {
	Generate(ctx context.Context, prompt string, opts GenOptions) (string, error)
}

// APIError is a failed generation call that reached the server.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("generation API returned status %d: %s", e.Status, e.Body)
}

// HTTPStatus implements the classifier's StatusCarrier.
func (e *APIError) HTTPStatus() int { return e.Status }

// ErrEmptyResponse marks a successful call that produced no text.
var ErrEmptyResponse = errors.New("empty response from generation API")

// HTTPClient calls a JSON generation endpoint.
type HTTPClient struct {
	endpoint string
	model    string
	client   *http.Client
}

func NewHTTPClient(endpoint, model string) *HTTPClient {
	return &HTTPClient{
		endpoint: endpoint,
		model:    model,
		client:   &http.Client{Timeout: 120 * time.Second},
	}
}

type generateRequest struct {
	Model   string          `json:"model"`
	Prompt  string          `json:"prompt"`
	Stream  bool            `json:"stream"`
	Options generateOptions `json:"options"`
}

type generateOptions struct {
	Temperature float64 `json:"temperature"`
	NumPredict  int     `json:"num_predict"`
}

type generateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// Generate posts the prompt and returns the generated text. Transport
// errors are returned as-is so net.Error classification still works;
// HTTP failures become *APIError.
func (c *HTTPClient) Generate(ctx context.Context, prompt string, opts GenOptions) (string, error) {
	payload := generateRequest{
		Model:  c.model,
		Prompt: prompt,
		Stream: false,
		Options: generateOptions{
			Temperature: opts.Temperature,
			NumPredict:  opts.MaxTokens,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal generation request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build generation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read generation response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", &APIError{Status: resp.StatusCode, Body: truncateBody(respBody)}
	}

	var parsed generateResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("failed to unmarshal generation response: %w", err)
	}

	text := strings.TrimSpace(parsed.Response)
	if !parsed.Done || text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

func truncateBody(b []byte) string {
	const limit = 200
	if len(b) > limit {
		b = b[:limit]
	}
	return string(b)
}
