package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/papercomputeco/crucible/pkg/generate"
)

// ErrorResponse is the uniform error body returned by all handlers.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ScoreRequest is the body of POST /submit-score.
type ScoreRequest struct {
	Score *float64 `json:"score"`
}

// ScoreResponse acknowledges an accepted score.
type ScoreResponse struct {
	Message string  `json:"message"`
	Score   float64 `json:"score"`
}

// handlePing returns a simple health check response.
func (s *Server) handlePing(c *fiber.Ctx) error {
	return c.JSON("pong")
}

// handleGetCombination resolves the combination of two elements, generating
// and persisting a fresh result on a cache miss.
func (s *Server) handleGetCombination(c *fiber.Ctx) error {
	element1 := c.Query("element1")
	element2 := c.Query("element2")

	if element1 == "" || element2 == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "Missing element1 or element2"})
	}

	combo, err := s.resolver.Resolve(c.Context(), element1, element2)
	if err != nil {
		if errors.Is(err, generate.ErrRejected) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(ErrorResponse{Error: "combination rejected"})
		}

		s.logger.Error("resolving combination",
			"request_id", c.Locals("request_id"),
			"element1", element1,
			"element2", element2,
			"error", err,
		)
		return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{Error: "failed to generate combination"})
	}

	return c.JSON(combo)
}

// handleStats returns statistics about the combination store.
func (s *Server) handleStats(c *fiber.Ctx) error {
	count, err := s.storer.Count(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "failed to count combinations"})
	}

	return c.JSON(fiber.Map{
		"total_combinations": count,
	})
}

// handleSubmitScore accepts a player score and acknowledges it.
// Scores are logged, not persisted.
func (s *Server) handleSubmitScore(c *fiber.Ctx) error {
	var req ScoreRequest
	if err := c.BodyParser(&req); err != nil || req.Score == nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "No score provided"})
	}

	s.logger.Info("score received",
		"request_id", c.Locals("request_id"),
		"score", *req.Score,
	)

	return c.JSON(ScoreResponse{
		Message: "Score received successfully",
		Score:   *req.Score,
	})
}
