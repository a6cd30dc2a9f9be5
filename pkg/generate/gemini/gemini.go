// Package gemini implements the Generator interface on Google's Gemini
// models via the google.golang.org/genai SDK. It supports both the
// Gemini API (API key) and Vertex AI (project + location) backends.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/papercomputeco/crucible/pkg/generate"
)

// DefaultModel is the default Gemini model used for combinations.
const DefaultModel = "gemini-1.5-flash-002"

// Config holds configuration for the Gemini generator.
type Config struct {
	// APIKey authenticates against the Gemini API. Ignored when Project
	// is set.
	APIKey string

	// Project and Location select the Vertex AI backend. Credentials are
	// resolved the usual way (GOOGLE_APPLICATION_CREDENTIALS or ambient
	// application default credentials).
	Project  string
	Location string

	// Model is the Gemini model name. Defaults to DefaultModel.
	Model string
}

// Generator wraps a genai client configured for short crafting completions.
type Generator struct {
	client *genai.Client
	model  string
}

// New creates a new Gemini-backed generator.
func New(ctx context.Context, cfg Config) (*Generator, error) {
	cc := &genai.ClientConfig{}
	if cfg.Project != "" {
		cc.Backend = genai.BackendVertexAI
		cc.Project = cfg.Project
		cc.Location = cfg.Location
	} else {
		cc.Backend = genai.BackendGeminiAPI
		cc.APIKey = cfg.APIKey
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	return &Generator{
		client: client,
		model:  model,
	}, nil
}

// Generate asks the model for a decorated combination name.
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, generationConfig())
	if err != nil {
		return "", fmt.Errorf("gemini generate failed: %w", err)
	}

	if resp.PromptFeedback != nil && blocked(resp.PromptFeedback.BlockReason) {
		return "", fmt.Errorf("%w: prompt blocked (%s)", generate.ErrRejected, resp.PromptFeedback.BlockReason)
	}

	if len(resp.Candidates) > 0 && resp.Candidates[0].FinishReason == genai.FinishReasonSafety {
		return "", fmt.Errorf("%w: completion stopped by safety filter", generate.ErrRejected)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", generate.ErrEmptyCompletion
	}

	return text, nil
}

// Name returns the provider name.
func (g *Generator) Name() string {
	return "gemini"
}

// Close releases resources held by the generator.
func (g *Generator) Close() error {
	// The genai client rides on an HTTP client and needs no explicit cleanup.
	return nil
}

// generationConfig carries the sampling parameters and safety thresholds
// for crafting completions: high temperature for variety, a tight output
// cap since a combination is at most a few words plus an emoji.
func generationConfig() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(generate.SystemInstruction, genai.RoleUser),
		Temperature:       genai.Ptr[float32](0.9),
		TopP:              genai.Ptr[float32](1.0),
		TopK:              genai.Ptr[float32](32),
		CandidateCount:    1,
		MaxOutputTokens:   15,
		SafetySettings: []*genai.SafetySetting{
			{Category: genai.HarmCategoryHarassment, Threshold: genai.HarmBlockThresholdBlockOnlyHigh},
			{Category: genai.HarmCategoryHateSpeech, Threshold: genai.HarmBlockThresholdBlockOnlyHigh},
			{Category: genai.HarmCategorySexuallyExplicit, Threshold: genai.HarmBlockThresholdBlockOnlyHigh},
			{Category: genai.HarmCategoryDangerousContent, Threshold: genai.HarmBlockThresholdBlockOnlyHigh},
		},
	}
}

func blocked(reason genai.BlockedReason) bool {
	return reason != "" && reason != genai.BlockedReasonUnspecified
}

var _ generate.Generator = (*Generator)(nil)
