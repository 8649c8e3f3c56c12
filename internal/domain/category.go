package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrCacheMiss        = errors.New("cache miss")
)

// Category groups questions under a label such as "Science"
type Category struct {
	ID   int    `json:"id"`
	Type string `json:"type"`
}

// CategoryMap maps a category ID to its label. It encodes as a JSON object
// keyed by the decimal ID.
type CategoryMap map[int]string

// NewCategoryMap builds the ID to label mapping
func NewCategoryMap(categories []Category) CategoryMap {
	m := make(CategoryMap, len(categories))
	for _, c := range categories {
		m[c.ID] = c.Type
	}
	return m
}

// CategoryRepository defines the interface for category-related operations.
// Categories are read-only through the API; Create only serves seeding.
type CategoryRepository interface {
	List(ctx context.Context) ([]Category, error)
	GetByID(ctx context.Context, id int) (*Category, error)
	Create(ctx context.Context, category *Category) error
}

// CategoryCache stores the category mapping between requests
type CategoryCache interface {
	// GetCategories returns ErrCacheMiss when nothing is stored
	GetCategories(ctx context.Context) (CategoryMap, error)
	SetCategories(ctx context.Context, categories CategoryMap, ttl time.Duration) error
}
