package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/zizouhuweidi/trivia/internal/domain"
)

// TriviaService implements the trivia question operations
type TriviaService struct {
	questions  domain.QuestionRepository
	categories domain.CategoryRepository
	cache      domain.CategoryCache
	cacheTTL   time.Duration
	events     domain.EventPublisher
	log        *zap.Logger
}

// Option configures optional collaborators of TriviaService
type Option func(*TriviaService)

// WithCategoryCache keeps the category mapping in cache for ttl
func WithCategoryCache(cache domain.CategoryCache, ttl time.Duration) Option {
	return func(s *TriviaService) {
		s.cache = cache
		s.cacheTTL = ttl
	}
}

// WithEvents publishes question changes to events
func WithEvents(events domain.EventPublisher) Option {
	return func(s *TriviaService) {
		s.events = events
	}
}

// NewTriviaService creates a new trivia service
func NewTriviaService(questions domain.QuestionRepository, categories domain.CategoryRepository, log *zap.Logger, opts ...Option) *TriviaService {
	s := &TriviaService{
		questions:  questions,
		categories: categories,
		log:        log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// QuestionPage is one page of a question listing
type QuestionPage struct {
	Questions []domain.Question
	// Total counts every match, not only this page
	Total      int
	Categories domain.CategoryMap
	// CurrentCategory is set when the listing is restricted to one category
	CurrentCategory *domain.Category
}

// Categories returns the mapping of every category ID to its label
func (s *TriviaService) Categories(ctx context.Context) (domain.CategoryMap, error) {
	const op = "list categories"

	if s.cache != nil {
		categories, err := s.cache.GetCategories(ctx)
		if err == nil {
			return categories, nil
		}
		if !errors.Is(err, domain.ErrCacheMiss) {
			s.log.Warn("category cache read failed", zap.Error(err))
		}
	}

	list, err := s.categories.List(ctx)
	if err != nil {
		return nil, s.fail(op, err)
	}
	categories := domain.NewCategoryMap(list)

	if s.cache != nil {
		if err := s.cache.SetCategories(ctx, categories, s.cacheTTL); err != nil {
			s.log.Warn("category cache write failed", zap.Error(err))
		}
	}
	return categories, nil
}

// ListQuestions returns a page of every question ordered by ID. An empty
// page is reported as not found.
func (s *TriviaService) ListQuestions(ctx context.Context, page int) (*QuestionPage, error) {
	const op = "list questions"

	result, err := s.page(ctx, op, domain.QuestionFilter{}, page)
	if err != nil {
		return nil, err
	}
	if len(result.Questions) == 0 {
		return nil, domain.NotFound(op, nil)
	}

	if result.Categories, err = s.Categories(ctx); err != nil {
		return nil, err
	}
	return result, nil
}

// GetQuestion retrieves a single question
func (s *TriviaService) GetQuestion(ctx context.Context, id int) (*domain.Question, error) {
	q, err := s.questions.GetByID(ctx, id)
	if err != nil {
		return nil, s.fail("get question", err)
	}
	return q, nil
}

// DeleteQuestion removes a question
func (s *TriviaService) DeleteQuestion(ctx context.Context, id int) error {
	if err := s.questions.Delete(ctx, id); err != nil {
		return s.fail("delete question", err)
	}

	s.publish(domain.EventQuestionDeleted, map[string]int{"id": id})
	return nil
}

// CreateQuestion stores q, assigning its ID, and returns the requested page
// of all questions afterwards
func (s *TriviaService) CreateQuestion(ctx context.Context, q *domain.Question, page int) (*QuestionPage, error) {
	const op = "create question"

	if err := s.questions.Create(ctx, q); err != nil {
		return nil, s.fail(op, err)
	}
	s.publish(domain.EventQuestionCreated, q)

	return s.page(ctx, op, domain.QuestionFilter{}, page)
}

// SearchQuestions finds questions whose text contains term, ignoring case.
// No match is reported as not found.
func (s *TriviaService) SearchQuestions(ctx context.Context, term string, page int) (*QuestionPage, error) {
	const op = "search questions"

	result, err := s.page(ctx, op, domain.QuestionFilter{Search: &term}, page)
	if err != nil {
		return nil, err
	}
	if len(result.Questions) == 0 {
		return nil, domain.NotFound(op, nil)
	}
	return result, nil
}

// QuestionsByCategory returns a page of the questions in one category
func (s *TriviaService) QuestionsByCategory(ctx context.Context, categoryID, page int) (*QuestionPage, error) {
	const op = "list questions by category"

	category, err := s.categories.GetByID(ctx, categoryID)
	if err != nil {
		return nil, s.fail(op, err)
	}

	result, err := s.page(ctx, op, domain.QuestionFilter{Category: categoryID}, page)
	if err != nil {
		return nil, err
	}
	// an empty category still lists its first page
	if len(result.Questions) == 0 && (page != 1 || result.Total > 0) {
		return nil, domain.NotFound(op, nil)
	}
	result.CurrentCategory = category

	if result.Categories, err = s.Categories(ctx); err != nil {
		return nil, err
	}
	return result, nil
}

// NextQuizQuestion picks a random question the player has not seen yet.
// It returns nil when the pool is exhausted.
func (s *TriviaService) NextQuizQuestion(ctx context.Context, quiz domain.Quiz) (*domain.Question, error) {
	const op = "next quiz question"

	if quiz.Category != 0 {
		if _, err := s.categories.GetByID(ctx, quiz.Category); err != nil {
			return nil, s.fail(op, err)
		}
	}

	q, err := s.questions.RandomExcluding(ctx, quiz.Category, quiz.Previous)
	if err != nil {
		return nil, s.fail(op, err)
	}
	return q, nil
}

// AnswerCheck is the verdict on a quiz guess
type AnswerCheck struct {
	Correct bool
	// Answer is the stored answer, revealed with the verdict
	Answer string
}

// CheckAnswer judges a player's guess for a question. Small typos are
// forgiven.
func (s *TriviaService) CheckAnswer(ctx context.Context, questionID int, guess string) (*AnswerCheck, error) {
	q, err := s.questions.GetByID(ctx, questionID)
	if err != nil {
		return nil, s.fail("check answer", err)
	}
	return &AnswerCheck{
		Correct: domain.MatchAnswer(q.Answer, guess),
		Answer:  q.Answer,
	}, nil
}

func (s *TriviaService) page(ctx context.Context, op string, filter domain.QuestionFilter, n int) (*QuestionPage, error) {
	questions, total, err := s.questions.List(ctx, filter, domain.NewPage(n))
	if err != nil {
		return nil, s.fail(op, err)
	}
	return &QuestionPage{Questions: questions, Total: total}, nil
}

func (s *TriviaService) publish(eventType string, payload any) {
	if s.events != nil {
		s.events.Publish(eventType, payload)
	}
}

// fail classifies err for op, logging the ones the caller cannot act on
func (s *TriviaService) fail(op string, err error) error {
	var derr *domain.Error
	if errors.As(err, &derr) {
		return err
	}

	switch domain.KindOf(err) {
	case domain.KindNotFound:
		return domain.NotFound(op, err)
	default:
		s.log.Error("storage failure", zap.String("op", op), zap.Error(err))
		return domain.Internal(op, err)
	}
}
