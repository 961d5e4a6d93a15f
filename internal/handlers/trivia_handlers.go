package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"scripture_site_echo/internal/trivia"
)

const maxTriviaLimit = 50

// TriviaHandler serves the trivia dataset as JSON
type TriviaHandler struct {
	bank *trivia.Bank
}

// NewTriviaHandler creates a new TriviaHandler
func NewTriviaHandler(bank *trivia.Bank) *TriviaHandler {
	return &TriviaHandler{bank: bank}
}

// Questions returns questions filtered by difficulty and category
func (h *TriviaHandler) Questions(c echo.Context) error {
	var difficulty trivia.Difficulty
	if raw := c.QueryParam("difficulty"); raw != "" {
		d, err := trivia.ParseDifficulty(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "difficulty must be one of easy, medium, hard, expert")
		}
		difficulty = d
	}

	limit := maxTriviaLimit
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be a positive number")
		}
		limit = min(n, maxTriviaLimit)
	}

	questions := h.bank.Filter(difficulty, c.QueryParam("category"), limit)
	return c.JSON(http.StatusOK, map[string]interface{}{
		"count":     len(questions),
		"questions": questions,
	})
}
