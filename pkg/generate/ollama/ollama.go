// Package ollama implements the Generator interface against Ollama's
// generate API, for local development without Google credentials.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/papercomputeco/crucible/pkg/generate"
)

const (
	// DefaultModel is the default model used for combinations.
	DefaultModel = "llama3.2"

	// DefaultBaseURL is the default Ollama API URL.
	DefaultBaseURL = "http://localhost:11434"
)

// Generator wraps Ollama's generate API.
type Generator struct {
	baseURL    string
	model      string
	httpClient *http.Client
}

// Config holds configuration for the Ollama generator.
type Config struct {
	// BaseURL is the Ollama API URL (e.g., "http://localhost:11434").
	// Defaults to DefaultBaseURL if empty.
	BaseURL string

	// Model is the model to use (e.g., "llama3.2", "mistral").
	// Defaults to DefaultModel if empty.
	Model string
}

// generateRequest is the request body for Ollama's generate API.
type generateRequest struct {
	Model   string          `json:"model"`
	Prompt  string          `json:"prompt"`
	System  string          `json:"system"`
	Stream  bool            `json:"stream"`
	Options generateOptions `json:"options"`
}

// generateOptions mirrors the sampling parameters the Gemini provider uses.
type generateOptions struct {
	Temperature float32 `json:"temperature"`
	TopP        float32 `json:"top_p"`
	TopK        int     `json:"top_k"`
	NumPredict  int     `json:"num_predict"`
}

// generateResponse is the response from Ollama's generate API.
type generateResponse struct {
	Response string `json:"response"`
}

// New creates a new generator using Ollama's generate API.
func New(cfg Config) (*Generator, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	return &Generator{
		baseURL: baseURL,
		model:   model,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}, nil
}

// Generate asks the local model for a decorated combination name.
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	reqBody := generateRequest{
		Model:  g.model,
		Prompt: prompt,
		System: generate.SystemInstruction,
		Stream: false,
		Options: generateOptions{
			Temperature: 0.9,
			TopP:        1.0,
			TopK:        32,
			NumPredict:  15,
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", g.baseURL+"/api/generate", bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("ollama returned status %d: %s", resp.StatusCode, string(body))
	}

	var genResp generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}

	return genResp.Response, nil
}

// Name returns the provider name.
func (g *Generator) Name() string {
	return "ollama"
}

// Close releases resources held by the generator.
func (g *Generator) Close() error {
	// HTTP client doesn't require explicit cleanup
	return nil
}

var _ generate.Generator = (*Generator)(nil)
