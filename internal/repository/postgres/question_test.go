package postgres

import (
	"context"
	"errors"
	"math"
	"regexp"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zizouhuweidi/trivia/internal/domain"
)

var questionCols = []string{"id", "question", "answer", "category", "difficulty"}

func TestQuestionRepository_List(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewQuestionRepository(mock)
	ctx := context.Background()

	t.Run("FirstPage", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM questions")).
			WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(12))
		mock.ExpectQuery(regexp.QuoteMeta("SELECT id, question, answer, category, difficulty FROM questions ORDER BY id LIMIT $1 OFFSET $2")).
			WithArgs(10, 0).
			WillReturnRows(pgxmock.NewRows(questionCols).
				AddRow(1, "Whose autobiography is entitled 'I Know Why the Caged Bird Sings'?", "Maya Angelou", 4, 2).
				AddRow(2, "What boxer's original name is Cassius Clay?", "Muhammad Ali", 4, 1))

		questions, total, err := repo.List(ctx, domain.QuestionFilter{}, domain.NewPage(1))
		require.NoError(t, err)
		assert.Equal(t, 12, total)
		require.Len(t, questions, 2)
		assert.Equal(t, "Maya Angelou", questions[0].Answer)
		assert.Equal(t, 4, questions[1].Category)
	})

	t.Run("PageBeyondEnd", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM questions")).
			WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(12))

		questions, total, err := repo.List(ctx, domain.QuestionFilter{}, domain.NewPage(3))
		require.NoError(t, err)
		assert.Equal(t, 12, total)
		assert.Empty(t, questions)
	})

	t.Run("OffsetOverflow", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM questions")).
			WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(12))

		questions, total, err := repo.List(ctx, domain.QuestionFilter{}, domain.NewPage(math.MaxInt))
		require.NoError(t, err)
		assert.Equal(t, 12, total)
		assert.Empty(t, questions)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("SearchAndCategory", func(t *testing.T) {
		term := "50%_off"
		mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM questions WHERE question ILIKE $1 AND category = $2")).
			WithArgs(`%50\%\_off%`, 3).
			WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectQuery(regexp.QuoteMeta("WHERE question ILIKE $1 AND category = $2 ORDER BY id LIMIT $3 OFFSET $4")).
			WithArgs(`%50\%\_off%`, 3, 10, 0).
			WillReturnRows(pgxmock.NewRows(questionCols).AddRow(7, "Is 50%_off a deal?", "Yes", 3, 1))

		questions, total, err := repo.List(ctx, domain.QuestionFilter{Search: &term, Category: 3}, domain.NewPage(1))
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, questions, 1)
		assert.Equal(t, 7, questions[0].ID)
	})

	t.Run("CountFails", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM questions")).
			WillReturnError(errors.New("connection reset"))

		_, _, err := repo.List(ctx, domain.QuestionFilter{}, domain.NewPage(1))
		assert.ErrorContains(t, err, "failed to count questions")
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestQuestionRepository_GetByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewQuestionRepository(mock)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, question, answer, category, difficulty").
			WithArgs(5).
			WillReturnRows(pgxmock.NewRows(questionCols).AddRow(5, "What is the heaviest organ in the human body?", "The Liver", 1, 4))

		q, err := repo.GetByID(ctx, 5)
		require.NoError(t, err)
		assert.Equal(t, "The Liver", q.Answer)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, question, answer, category, difficulty").
			WithArgs(99).
			WillReturnRows(pgxmock.NewRows(questionCols))

		q, err := repo.GetByID(ctx, 99)
		assert.Nil(t, q)
		assert.ErrorIs(t, err, domain.ErrQuestionNotFound)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestQuestionRepository_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewQuestionRepository(mock)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO questions").
			WithArgs("What is 2+2?", "4", 1, 1).
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(24))

		q := &domain.Question{Question: "What is 2+2?", Answer: "4", Category: 1, Difficulty: 1}
		require.NoError(t, repo.Create(ctx, q))
		assert.Equal(t, 24, q.ID)
	})

	t.Run("UnknownCategory", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO questions").
			WithArgs("What is 2+2?", "4", 42, 1).
			WillReturnError(&pgconn.PgError{Code: codeForeignKeyViolation})

		q := &domain.Question{Question: "What is 2+2?", Answer: "4", Category: 42, Difficulty: 1}
		err := repo.Create(ctx, q)
		require.Error(t, err)
		assert.Equal(t, domain.KindInvalidInput, domain.KindOf(err))

		var derr *domain.Error
		require.ErrorAs(t, err, &derr)
		assert.Contains(t, derr.Fields, "category")
	})

	t.Run("CheckViolation", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO questions").
			WithArgs("Q", "A", 1, 9).
			WillReturnError(&pgconn.PgError{Code: codeCheckViolation, ConstraintName: "difficulty"})

		err := repo.Create(ctx, &domain.Question{Question: "Q", Answer: "A", Category: 1, Difficulty: 9})
		assert.Equal(t, domain.KindInvalidInput, domain.KindOf(err))
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestQuestionRepository_Delete(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewQuestionRepository(mock)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM questions").
			WithArgs(5).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))

		assert.NoError(t, repo.Delete(ctx, 5))
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM questions").
			WithArgs(1000).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		assert.ErrorIs(t, repo.Delete(ctx, 1000), domain.ErrQuestionNotFound)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestQuestionRepository_BulkCreate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewQuestionRepository(mock)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO questions").
		WithArgs("Q1", "A1", 1, 1).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery("INSERT INTO questions").
		WithArgs("Q2", "A2", 2, 3).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(2))
	mock.ExpectCommit()

	questions := []*domain.Question{
		{Question: "Q1", Answer: "A1", Category: 1, Difficulty: 1},
		{Question: "Q2", Answer: "A2", Category: 2, Difficulty: 3},
	}
	require.NoError(t, repo.BulkCreate(context.Background(), questions))
	assert.Equal(t, 1, questions[0].ID)
	assert.Equal(t, 2, questions[1].ID)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestQuestionRepository_RandomExcluding(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewQuestionRepository(mock)
	ctx := context.Background()

	t.Run("NilExcludeBecomesEmptyArray", func(t *testing.T) {
		mock.ExpectQuery("ORDER BY RANDOM").
			WithArgs([]int{}, 0).
			WillReturnRows(pgxmock.NewRows(questionCols).AddRow(3, "Q", "A", 2, 2))

		q, err := repo.RandomExcluding(ctx, 0, nil)
		require.NoError(t, err)
		require.NotNil(t, q)
		assert.Equal(t, 3, q.ID)
	})

	t.Run("Exhausted", func(t *testing.T) {
		mock.ExpectQuery("ORDER BY RANDOM").
			WithArgs([]int{3, 4}, 2).
			WillReturnRows(pgxmock.NewRows(questionCols))

		q, err := repo.RandomExcluding(ctx, 2, []int{3, 4})
		require.NoError(t, err)
		assert.Nil(t, q)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}
