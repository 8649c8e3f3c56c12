package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"Plain", errors.New("boom"), KindInternal},
		{"QuestionSentinel", fmt.Errorf("lookup: %w", ErrQuestionNotFound), KindNotFound},
		{"CategorySentinel", ErrCategoryNotFound, KindNotFound},
		{"Typed", InvalidInput("create", "bad", nil), KindInvalidInput},
		{"WrappedTyped", fmt.Errorf("outer: %w", &Error{Kind: KindConflict}), KindConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestError(t *testing.T) {
	cause := errors.New("connection refused")
	err := Internal("list questions", cause)

	assert.Equal(t, "list questions: internal: connection refused", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "not_found", KindNotFound.String())
}
