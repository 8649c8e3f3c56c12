package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/zizouhuweidi/trivia/internal/domain"
	"github.com/zizouhuweidi/trivia/internal/service"
)

// TriviaHandler handles the question and quiz HTTP requests
type TriviaHandler struct {
	trivia *service.TriviaService
}

// NewTriviaHandler creates a new trivia handler
func NewTriviaHandler(trivia *service.TriviaService) *TriviaHandler {
	return &TriviaHandler{trivia: trivia}
}

// Register registers the trivia routes
func (h *TriviaHandler) Register(e *echo.Echo) {
	e.GET("/categories", h.ListCategories)
	e.GET("/categories/:id/questions", h.ListCategoryQuestions)
	e.GET("/questions", h.ListQuestions)
	e.POST("/questions", h.CreateQuestion)
	e.GET("/questions/:id", h.GetQuestion)
	e.DELETE("/questions/:id", h.DeleteQuestion)
	e.POST("/search", h.SearchQuestions)
	e.POST("/quizzes", h.NextQuizQuestion)
	e.POST("/quizzes/answer", h.CheckAnswer)
}

// CreateQuestionRequest represents the request to create a new question
type CreateQuestionRequest struct {
	Question   string  `json:"question" validate:"required,notblank"`
	Answer     string  `json:"answer" validate:"required,notblank"`
	Category   FlexInt `json:"category" validate:"required,gt=0"`
	Difficulty FlexInt `json:"difficulty" validate:"required,min=1,max=5"`
}

// SearchRequest represents the request body for a question search
type SearchRequest struct {
	SearchTerm *string `json:"searchTerm" validate:"required"`
}

// QuizCategory identifies the quiz category; an ID of 0 means every category
type QuizCategory struct {
	ID   FlexInt `json:"id" validate:"gte=0"`
	Type string  `json:"type"`
}

// QuizRequest represents the request body for the next quiz question
type QuizRequest struct {
	QuizCategory      *QuizCategory `json:"quiz_category"`
	PreviousQuestions []int         `json:"previous_questions"`
}

// AnswerRequest represents a player's guess for a quiz question
type AnswerRequest struct {
	QuestionID int    `json:"question_id" validate:"required,gt=0"`
	Answer     string `json:"answer" validate:"required,notblank"`
}

type questionListResponse struct {
	Success         bool               `json:"success"`
	Questions       []domain.Question  `json:"questions"`
	TotalQuestions  int                `json:"total_questions"`
	Categories      domain.CategoryMap `json:"categories"`
	CurrentCategory *string            `json:"current_category"`
}

// ListCategories returns every category keyed by ID
func (h *TriviaHandler) ListCategories(c echo.Context) error {
	categories, err := h.trivia.Categories(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":    true,
		"categories": categories,
	})
}

// ListQuestions returns one page of all questions
func (h *TriviaHandler) ListQuestions(c echo.Context) error {
	page, err := h.trivia.ListQuestions(c.Request().Context(), pageParam(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, questionListResponse{
		Success:        true,
		Questions:      page.Questions,
		TotalQuestions: page.Total,
		Categories:     page.Categories,
	})
}

// ListCategoryQuestions returns one page of the questions in a category
func (h *TriviaHandler) ListCategoryQuestions(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	page, err := h.trivia.QuestionsByCategory(c.Request().Context(), id, pageParam(c))
	if err != nil {
		return err
	}

	resp := questionListResponse{
		Success:        true,
		Questions:      page.Questions,
		TotalQuestions: page.Total,
		Categories:     page.Categories,
	}
	if page.CurrentCategory != nil {
		resp.CurrentCategory = &page.CurrentCategory.Type
	}
	return c.JSON(http.StatusOK, resp)
}

// GetQuestion returns a single question
func (h *TriviaHandler) GetQuestion(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	q, err := h.trivia.GetQuestion(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":  true,
		"question": q,
	})
}

// DeleteQuestion removes a question
func (h *TriviaHandler) DeleteQuestion(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.trivia.DeleteQuestion(c.Request().Context(), id); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"deleted": id,
	})
}

// CreateQuestion stores a new question and returns the first page of all
// questions
func (h *TriviaHandler) CreateQuestion(c echo.Context) error {
	var req CreateQuestionRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	q := &domain.Question{
		Question:   strings.TrimSpace(req.Question),
		Answer:     strings.TrimSpace(req.Answer),
		Category:   int(req.Category),
		Difficulty: int(req.Difficulty),
	}
	page, err := h.trivia.CreateQuestion(c.Request().Context(), q, 1)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":         true,
		"created":         q.ID,
		"questions":       page.Questions,
		"total_questions": page.Total,
	})
}

// SearchQuestions returns one page of the questions matching a search term
func (h *TriviaHandler) SearchQuestions(c echo.Context) error {
	var req SearchRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	page, err := h.trivia.SearchQuestions(c.Request().Context(), *req.SearchTerm, pageParam(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":          true,
		"questions":        page.Questions,
		"total_questions":  page.Total,
		"current_category": nil,
	})
}

// NextQuizQuestion returns a random question the player has not seen, or a
// null question once the pool is exhausted
func (h *TriviaHandler) NextQuizQuestion(c echo.Context) error {
	var req QuizRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	quiz := domain.Quiz{Previous: req.PreviousQuestions}
	if req.QuizCategory != nil {
		quiz.Category = int(req.QuizCategory.ID)
	}

	q, err := h.trivia.NextQuizQuestion(c.Request().Context(), quiz)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":  true,
		"question": q,
	})
}

// CheckAnswer judges a player's guess and reveals the stored answer
func (h *TriviaHandler) CheckAnswer(c echo.Context) error {
	var req AnswerRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	check, err := h.trivia.CheckAnswer(c.Request().Context(), req.QuestionID, req.Answer)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"correct": check.Correct,
		"answer":  check.Answer,
	})
}
