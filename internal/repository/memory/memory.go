// Package memory keeps questions and categories in process memory. It backs
// the "memory" database driver and the handler tests.
package memory

import (
	"context"
	"math/rand"
	"slices"
	"strings"
	"sync"

	"github.com/zizouhuweidi/trivia/internal/domain"
)

// Store holds both tables so the question side can check category references
type Store struct {
	mu         sync.RWMutex
	questions  []domain.Question
	categories []domain.Category
	nextQID    int
	nextCID    int
}

func NewStore() *Store {
	return &Store{nextQID: 1, nextCID: 1}
}

// Questions returns the question repository view of the store
func (s *Store) Questions() *QuestionRepository { return &QuestionRepository{s: s} }

// Categories returns the category repository view of the store
func (s *Store) Categories() *CategoryRepository { return &CategoryRepository{s: s} }

func (s *Store) hasCategory(id int) bool {
	return slices.ContainsFunc(s.categories, func(c domain.Category) bool { return c.ID == id })
}

// QuestionRepository implements domain.QuestionRepository
type QuestionRepository struct {
	s *Store
}

func (r *QuestionRepository) List(_ context.Context, filter domain.QuestionFilter, page domain.Page) ([]domain.Question, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var matches []domain.Question
	for _, q := range r.s.questions {
		if filter.Matches(q) {
			matches = append(matches, q)
		}
	}
	return append([]domain.Question{}, domain.Slice(matches, page)...), len(matches), nil
}

func (r *QuestionRepository) GetByID(_ context.Context, id int) (*domain.Question, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	i := r.s.indexOf(id)
	if i < 0 {
		return nil, domain.ErrQuestionNotFound
	}
	q := r.s.questions[i]
	return &q, nil
}

func (r *QuestionRepository) Create(_ context.Context, question *domain.Question) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.insert(question)
}

func (r *QuestionRepository) Delete(_ context.Context, id int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	i := r.s.indexOf(id)
	if i < 0 {
		return domain.ErrQuestionNotFound
	}
	r.s.questions = slices.Delete(r.s.questions, i, i+1)
	return nil
}

// BulkCreate inserts all questions or none
func (r *QuestionRepository) BulkCreate(_ context.Context, questions []*domain.Question) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	saved, next := len(r.s.questions), r.s.nextQID
	for _, q := range questions {
		if err := r.s.insert(q); err != nil {
			r.s.questions, r.s.nextQID = r.s.questions[:saved], next
			return err
		}
	}
	return nil
}

func (r *QuestionRepository) RandomExcluding(_ context.Context, category int, exclude []int) (*domain.Question, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	filter := domain.QuestionFilter{Category: category}
	var candidates []domain.Question
	for _, q := range r.s.questions {
		if filter.Matches(q) && !slices.Contains(exclude, q.ID) {
			candidates = append(candidates, q)
		}
	}
	if len(candidates) == 0 {
		return nil, nil
	}
	q := candidates[rand.Intn(len(candidates))]
	return &q, nil
}

// insert mirrors the table constraints of the postgres schema
func (s *Store) insert(q *domain.Question) error {
	fields := map[string]string{}
	if strings.TrimSpace(q.Question) == "" {
		fields["question"] = "required"
	}
	if strings.TrimSpace(q.Answer) == "" {
		fields["answer"] = "required"
	}
	if q.Difficulty < 1 || q.Difficulty > 5 {
		fields["difficulty"] = "out of range"
	}
	if !s.hasCategory(q.Category) {
		fields["category"] = "does not exist"
	}
	if len(fields) > 0 {
		return domain.InvalidInput("create question", "constraint violation", fields)
	}

	q.ID = s.nextQID
	s.nextQID++
	s.questions = append(s.questions, *q)
	return nil
}

// indexOf relies on questions being kept in ID order
func (s *Store) indexOf(id int) int {
	i, found := slices.BinarySearchFunc(s.questions, id, func(q domain.Question, id int) int { return q.ID - id })
	if !found {
		return -1
	}
	return i
}

// CategoryRepository implements domain.CategoryRepository
type CategoryRepository struct {
	s *Store
}

func (r *CategoryRepository) List(_ context.Context) ([]domain.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return append([]domain.Category{}, r.s.categories...), nil
}

func (r *CategoryRepository) GetByID(_ context.Context, id int) (*domain.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, c := range r.s.categories {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, domain.ErrCategoryNotFound
}

func (r *CategoryRepository) Create(_ context.Context, category *domain.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if strings.TrimSpace(category.Type) == "" {
		return domain.InvalidInput("create category", "constraint violation", map[string]string{"type": "required"})
	}
	category.ID = r.s.nextCID
	r.s.nextCID++
	r.s.categories = append(r.s.categories, *category)
	return nil
}
