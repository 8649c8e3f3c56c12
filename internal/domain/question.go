package domain

import (
	"context"
	"errors"
)

// Common errors
var (
	ErrQuestionNotFound = errors.New("question not found")
)

// QuestionRepository defines the interface for question-related operations
type QuestionRepository interface {
	// List returns one page of questions matching the filter, ordered by ID,
	// together with the total number of matches
	List(ctx context.Context, filter QuestionFilter, page Page) ([]Question, int, error)

	// GetByID retrieves a question by its ID
	GetByID(ctx context.Context, id int) (*Question, error)

	// Create inserts a question and assigns its ID
	Create(ctx context.Context, question *Question) error

	// Delete deletes a question
	Delete(ctx context.Context, id int) error

	// BulkCreate inserts multiple questions in a single transaction
	BulkCreate(ctx context.Context, questions []*Question) error

	// RandomExcluding picks a random question whose ID is not in exclude.
	// A zero category means every category. Returns nil when nothing is left.
	RandomExcluding(ctx context.Context, category int, exclude []int) (*Question, error)
}

// Question represents a trivia question
type Question struct {
	ID         int    `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Category   int    `json:"category"`
	Difficulty int    `json:"difficulty"`
}

// QuestionFilter narrows a question listing. The zero value matches everything.
type QuestionFilter struct {
	// Search is a case-insensitive substring of the question text; nil disables it
	Search *string
	// Category restricts to one category; 0 disables it
	Category int
}

// Matches reports whether q passes the filter
func (f QuestionFilter) Matches(q Question) bool {
	if f.Category != 0 && q.Category != f.Category {
		return false
	}
	if f.Search != nil && !ContainsFold(q.Question, *f.Search) {
		return false
	}
	return true
}

// Quiz is a request for the next quiz question
type Quiz struct {
	// Category is 0 for every category
	Category int
	// Previous holds the IDs already served to the player
	Previous []int
}
