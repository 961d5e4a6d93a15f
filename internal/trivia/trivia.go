package trivia

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Difficulty is how hard a question is
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
	DifficultyExpert Difficulty = "expert"
)

var (
	// ErrInvalidDifficulty is returned for a difficulty outside
	// easy/medium/hard/expert.
	ErrInvalidDifficulty = errors.New("invalid difficulty")

	// ErrInvalidQuestion is returned when a record fails validation.
	ErrInvalidQuestion = errors.New("invalid question")

	//go:embed questions.json
	questionsJSON []byte
)

// ParseDifficulty validates a difficulty name. It's case-insensitive.
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyExpert:
		return d, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidDifficulty, s)
	}
}

// Question is one trivia record
type Question struct {
	Question      string     `json:"question"`
	CorrectAnswer string     `json:"correctAnswer"`
	Options       [4]string  `json:"options"`
	Reference     string     `json:"reference"`
	Difficulty    Difficulty `json:"difficulty"`
	Points        int        `json:"points"`
	Category      string     `json:"category"`
}

// Validate checks the record is usable in a quiz.
func (q Question) Validate() error {
	if strings.TrimSpace(q.Question) == "" {
		return fmt.Errorf("%w: empty question", ErrInvalidQuestion)
	}
	if _, err := ParseDifficulty(string(q.Difficulty)); err != nil {
		return fmt.Errorf("%w: %q: %w", ErrInvalidQuestion, q.Question, err)
	}
	for _, opt := range q.Options {
		if opt == "" {
			return fmt.Errorf("%w: %q has an empty option", ErrInvalidQuestion, q.Question)
		}
	}
	if !slices.Contains(q.Options[:], q.CorrectAnswer) {
		return fmt.Errorf("%w: %q: correct answer is not an option", ErrInvalidQuestion, q.Question)
	}
	if q.Points < 0 {
		return fmt.Errorf("%w: %q has negative points", ErrInvalidQuestion, q.Question)
	}
	return nil
}

// Bank is a validated, read-only set of questions
type Bank struct {
	questions []Question
}

// Load parses the dataset embedded in the binary.
func Load() (*Bank, error) {
	return Parse(questionsJSON)
}

// Parse decodes and validates a JSON array of questions.
func Parse(data []byte) (*Bank, error) {
	var questions []Question
	if err := json.Unmarshal(data, &questions); err != nil {
		return nil, fmt.Errorf("failed to decode questions: %w", err)
	}
	for _, q := range questions {
		if err := q.Validate(); err != nil {
			return nil, err
		}
	}
	return &Bank{questions: questions}, nil
}

// Len returns the number of questions in the bank.
func (b *Bank) Len() int {
	return len(b.questions)
}

// Categories returns the distinct categories, sorted.
func (b *Bank) Categories() []string {
	var out []string
	for _, q := range b.questions {
		if !slices.Contains(out, q.Category) {
			out = append(out, q.Category)
		}
	}
	slices.Sort(out)
	return out
}

// Filter returns questions matching difficulty and category, in dataset
// order. Empty filters match everything; limit < 1 means no limit.
func (b *Bank) Filter(difficulty Difficulty, category string, limit int) []Question {
	out := []Question{}
	for _, q := range b.questions {
		if difficulty != "" && q.Difficulty != difficulty {
			continue
		}
		if category != "" && !strings.EqualFold(q.Category, category) {
			continue
		}
		out = append(out, q)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}
