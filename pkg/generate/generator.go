// Package generate defines the narrow adapter interface for the external
// text-generation service that invents new element combinations.
//
// The service is treated as opaque and non-deterministic: it takes a short
// free-text prompt and returns a single short completion. All cleanup and
// dedup logic lives in the resolver so it can be tested against a scripted
// fake generator.
package generate

import (
	"context"
	"errors"
)

// ErrEmptyCompletion is returned when the service produced no usable text.
// An empty or whitespace-only completion is a generation failure, never a
// storable result.
var ErrEmptyCompletion = errors.New("generation returned an empty completion")

// ErrRejected is returned when the service declined to answer the prompt,
// e.g. because a safety filter blocked it.
var ErrRejected = errors.New("generation request was rejected")

// Generator produces a raw decorated-name candidate for a prompt built
// from two element names.
type Generator interface {
	// Generate returns the raw completion for the prompt. The call is
	// network-bound; implementations must honor ctx cancellation.
	Generate(ctx context.Context, prompt string) (string, error)

	// Name returns the canonical provider name (e.g. "gemini", "ollama").
	Name() string

	// Close releases resources held by the generator.
	Close() error
}

// Prompt builds the generation prompt from the two literal element names.
func Prompt(element1, element2 string) string {
	return element1 + " " + element2
}

// SystemInstruction is the crafting instruction shared by all providers.
// It pins the output contract: one simple combination name followed by a
// single decorative emoji (or two for complex creations) with no space
// between the name and the emoji.
const SystemInstruction = "You will be given two elements/items, you will be crafting them together " +
	"and outputting the combination of the two along with a single associated emoji " +
	"or two if it's a complex creation. Avoid using compound names and keep the new " +
	"item simple. Don't have any spaces between the end of the element name and the " +
	"emoji. You cannot respond with anything except a combination. Here are some examples: " +
	"User input: Stone + Fire; Output: Lava🌋 " +
	"User input: Palace + President; Output: White House🏛️ " +
	"User input: Water + Earth; Output: Mud💩"
