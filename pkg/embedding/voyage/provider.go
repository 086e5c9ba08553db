package voyage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"quiltdex-be/pkg/httpretry"
)

// VoyageProvider calls the multimodal embedding endpoint. We only send text
// segments; the multimodal request shape is what the API dictates.
type VoyageProvider struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client

	// retries is 0 on the search path: a failed call there falls through to
	// text fallback instead of retrying. Maintenance tooling opts in.
	retries int
	timeout time.Duration
}

type segment struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type embeddingRequest struct {
	Model     string      `json:"model"`
	Inputs    [][]segment `json:"inputs"`
	InputType string      `json:"input_type"`
}

type embeddingResponse struct {
	Data []struct {
		Embedding []float32 `json:"embedding"`
	} `json:"data"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

type Option func(*VoyageProvider)

func WithRetries(n int) Option {
	return func(p *VoyageProvider) { p.retries = n }
}

func WithTimeout(d time.Duration) Option {
	return func(p *VoyageProvider) { p.timeout = d }
}

func WithBaseURL(url string) Option {
	return func(p *VoyageProvider) { p.baseURL = url }
}

func NewVoyageProvider(apiKey, baseURL, model string, opts ...Option) *VoyageProvider {
	p := &VoyageProvider{
		apiKey:  apiKey,
		baseURL: baseURL,
		model:   model,
		client:  &http.Client{},
		retries: 0,
		timeout: httpretry.DefaultTimeout,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *VoyageProvider) Generate(ctx context.Context, text string) ([]float32, error) {
	reqBody := embeddingRequest{
		Model:     p.model,
		Inputs:    [][]segment{{{Type: "text", Text: text}}},
		InputType: "query",
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	build := func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL, bytes.NewReader(jsonData))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", p.apiKey))
		return req, nil
	}

	// retries <= 0 maps to the single-attempt marker, not the fetch default.
	maxRetries := p.retries
	if maxRetries <= 0 {
		maxRetries = -1
	}

	res := httpretry.FetchWithRetry(ctx, p.client, build, httpretry.Options{
		MaxRetries: maxRetries,
		Timeout:    p.timeout,
	})
	if res.Err != nil {
		return nil, fmt.Errorf("embedding api error: %w", res.Err)
	}

	var parsed embeddingResponse
	if err := json.Unmarshal(res.Data, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if parsed.Error != nil {
		return nil, fmt.Errorf("embedding api returned error: %s", parsed.Error.Message)
	}
	if len(parsed.Data) == 0 || len(parsed.Data[0].Embedding) == 0 {
		return nil, fmt.Errorf("empty embedding from api")
	}

	return parsed.Data[0].Embedding, nil
}
