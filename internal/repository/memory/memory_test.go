package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zizouhuweidi/trivia/internal/domain"
)

func seeded(t *testing.T) *Store {
	t.Helper()
	s := NewStore()
	ctx := context.Background()
	for _, name := range []string{"Science", "Art"} {
		require.NoError(t, s.Categories().Create(ctx, &domain.Category{Type: name}))
	}
	questions := []*domain.Question{
		{Question: "What is the heaviest organ?", Answer: "Liver", Category: 1, Difficulty: 4},
		{Question: "Who discovered penicillin?", Answer: "Fleming", Category: 1, Difficulty: 3},
		{Question: "Who painted the Mona Lisa?", Answer: "Da Vinci", Category: 2, Difficulty: 2},
	}
	require.NoError(t, s.Questions().BulkCreate(ctx, questions))
	return s
}

func TestQuestionRepository_List(t *testing.T) {
	repo := seeded(t).Questions()
	ctx := context.Background()

	t.Run("All", func(t *testing.T) {
		qs, total, err := repo.List(ctx, domain.QuestionFilter{}, domain.NewPage(1))
		require.NoError(t, err)
		assert.Equal(t, 3, total)
		assert.Len(t, qs, 3)
		assert.Equal(t, 1, qs[0].ID)
	})

	t.Run("SearchIgnoresCase", func(t *testing.T) {
		term := "WHO"
		qs, total, err := repo.List(ctx, domain.QuestionFilter{Search: &term}, domain.NewPage(1))
		require.NoError(t, err)
		assert.Equal(t, 2, total)
		assert.Len(t, qs, 2)
	})

	t.Run("Category", func(t *testing.T) {
		qs, total, err := repo.List(ctx, domain.QuestionFilter{Category: 2}, domain.NewPage(1))
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		assert.Equal(t, "Da Vinci", qs[0].Answer)
	})

	t.Run("PageBeyondEnd", func(t *testing.T) {
		qs, total, err := repo.List(ctx, domain.QuestionFilter{}, domain.NewPage(2))
		require.NoError(t, err)
		assert.Equal(t, 3, total)
		assert.Empty(t, qs)
	})
}

func TestQuestionRepository_CreateAndDelete(t *testing.T) {
	repo := seeded(t).Questions()
	ctx := context.Background()

	q := &domain.Question{Question: "Largest planet?", Answer: "Jupiter", Category: 1, Difficulty: 2}
	require.NoError(t, repo.Create(ctx, q))
	assert.Equal(t, 4, q.ID)

	got, err := repo.GetByID(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, "Jupiter", got.Answer)

	require.NoError(t, repo.Delete(ctx, 2))
	_, err = repo.GetByID(ctx, 2)
	assert.ErrorIs(t, err, domain.ErrQuestionNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, 2), domain.ErrQuestionNotFound)

	// remaining lookups still work after a delete in the middle
	got, err = repo.GetByID(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, got.ID)
}

func TestQuestionRepository_CreateRejectsBadRows(t *testing.T) {
	repo := seeded(t).Questions()

	err := repo.Create(context.Background(), &domain.Question{Question: " ", Category: 9, Difficulty: 0})
	require.Error(t, err)

	var derr *domain.Error
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, domain.KindInvalidInput, derr.Kind)
	assert.Equal(t, map[string]string{
		"question":   "required",
		"answer":     "required",
		"difficulty": "out of range",
		"category":   "does not exist",
	}, derr.Fields)
}

func TestQuestionRepository_BulkCreateIsAllOrNothing(t *testing.T) {
	repo := seeded(t).Questions()
	ctx := context.Background()

	err := repo.BulkCreate(ctx, []*domain.Question{
		{Question: "Ok", Answer: "Ok", Category: 1, Difficulty: 1},
		{Question: "Bad", Answer: "Bad", Category: 7, Difficulty: 1},
	})
	require.Error(t, err)

	_, total, err := repo.List(ctx, domain.QuestionFilter{}, domain.NewPage(1))
	require.NoError(t, err)
	assert.Equal(t, 3, total)
}

func TestQuestionRepository_RandomExcluding(t *testing.T) {
	repo := seeded(t).Questions()
	ctx := context.Background()

	first, err := repo.RandomExcluding(ctx, 1, nil)
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, 1, first.Category)

	second, err := repo.RandomExcluding(ctx, 1, []int{first.ID})
	require.NoError(t, err)
	require.NotNil(t, second)
	assert.NotEqual(t, first.ID, second.ID)

	none, err := repo.RandomExcluding(ctx, 1, []int{first.ID, second.ID})
	require.NoError(t, err)
	assert.Nil(t, none)

	other, err := repo.RandomExcluding(ctx, 0, []int{1, 2})
	require.NoError(t, err)
	require.NotNil(t, other)
	assert.Equal(t, 3, other.ID)
}

func TestCategoryRepository(t *testing.T) {
	repo := seeded(t).Categories()
	ctx := context.Background()

	categories, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Category{{ID: 1, Type: "Science"}, {ID: 2, Type: "Art"}}, categories)

	_, err = repo.GetByID(ctx, 3)
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)

	err = repo.Create(ctx, &domain.Category{})
	assert.Equal(t, domain.KindInvalidInput, domain.KindOf(err))
}
